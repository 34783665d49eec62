package dispatch

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/taskhub/internal/todo/domain"
	"github.com/aussiebroadwan/taskhub/internal/todo/protocol"
	"github.com/aussiebroadwan/taskhub/internal/todo/service"
	"github.com/aussiebroadwan/taskhub/pkg/idx"
)

// Dispatcher is the protocol state machine. Given a connection's session
// state and a parsed command it selects and invokes the right domain
// operation, or rejects the command with a protocol-level warning. Domain
// failures are converted into response envelopes at this boundary; only a
// persistence failure escapes as an error, which the caller treats as
// fatal.
type Dispatcher struct {
	svc      *service.Service
	registry *Registry
	logger   *slog.Logger
}

func New(svc *service.Service, registry *Registry, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{svc: svc, registry: registry, logger: logger}
}

// Disconnect discards the session state of a closed connection.
func (d *Dispatcher) Disconnect(conn idx.ID) {
	d.registry.Drop(conn)
}

// Execute runs one raw request line for the given connection and returns the
// response payload.
func (d *Dispatcher) Execute(conn idx.ID, raw string) (string, error) {
	d.registry.Touch(conn)

	cmd := protocol.Parse(raw)
	d.logger.Debug("command received",
		slog.String("conn_id", conn.String()),
		slog.String("verb", cmd.Verb),
	)

	if !d.registry.Accessible(conn) {
		switch cmd.Verb {
		case protocol.VerbRegister:
			return d.register(cmd.Args)
		case protocol.VerbLogin:
			return d.login(conn, cmd.Args)
		default:
			// Authenticated-only verbs are indistinguishable from unknown
			// ones before login.
			return protocol.Warningf("Unknown command"), nil
		}
	}

	u := d.registry.User(conn)

	switch cmd.Verb {
	case protocol.VerbRegister:
		return protocol.Warningf("Already in session! To register a new account logout of the current one"), nil
	case protocol.VerbLogin:
		return protocol.Warningf("Already in session ! You are already logged in!"), nil
	case protocol.VerbLogout:
		return d.logout(conn)
	case protocol.VerbAddTask:
		return d.addTask(u, cmd.Args)
	case protocol.VerbUpdateTask:
		return d.updateTask(u, cmd.Args)
	case protocol.VerbListTasks:
		return d.listTasks(u, cmd.Args)
	case protocol.VerbDeleteTask:
		return d.deleteTask(u, cmd.Args)
	case protocol.VerbGetTask:
		return d.getTask(u, cmd.Args)
	case protocol.VerbListDashboard:
		return d.listDashboard(u)
	case protocol.VerbFinishTask:
		return d.finishTask(u, cmd.Args)
	case protocol.VerbAddCollaboration:
		return d.addCollaboration(u, cmd.Args)
	case protocol.VerbListCollaborations:
		return d.svc.ListCollaborations(u), nil
	case protocol.VerbAddUserToCollaboration:
		return d.addUserToCollaboration(u, cmd.Args)
	case protocol.VerbDeleteCollaboration:
		return d.deleteCollaboration(u, cmd.Args)
	case protocol.VerbAssignTaskCollab:
		return d.assignTask(cmd.Args)
	case protocol.VerbListTasksCollab:
		return d.listCollaborationTasks(cmd.Args)
	case protocol.VerbListUsersCollab:
		return d.listCollaborationMembers(cmd.Args)
	default:
		return protocol.Warningf("Unknown command"), nil
	}
}

func (d *Dispatcher) register(args []string) (string, error) {
	if len(args) != 2 || !validCredential(args[0]) || !validCredential(args[1]) {
		return protocol.Errorf("Password or username is not available"), nil
	}

	if err := d.svc.Register(args[0], args[1]); err != nil {
		return convert(err)
	}
	return protocol.Successf("User %s has been added to the data base", args[0]), nil
}

func (d *Dispatcher) login(conn idx.ID, args []string) (string, error) {
	if len(args) != 2 || !validCredential(args[0]) || !validCredential(args[1]) {
		return protocol.Errorf("Password or username is not available"), nil
	}

	u, err := d.svc.Authenticate(args[0], args[1])
	if err != nil {
		return convert(err)
	}

	if d.registry.LoggedIn(u.Username) {
		return convert(domain.Errorf(domain.KindSession,
			"User (%s) is already logged in. Wait until the user has logged off to use this account", u.Username))
	}

	d.registry.Bind(conn, u)
	d.logger.Info("session opened",
		slog.String("conn_id", conn.String()),
		slog.String("username", u.Username),
	)
	return protocol.Successf("User (%s) has logged in", args[0]), nil
}

func (d *Dispatcher) logout(conn idx.ID) (string, error) {
	username := d.registry.User(conn).Username
	d.registry.Unbind(conn)
	d.logger.Info("session closed",
		slog.String("conn_id", conn.String()),
		slog.String("username", username),
	)
	return protocol.Successf("User (%s) has logged off", username), nil
}

func (d *Dispatcher) addTask(u *domain.User, args []string) (string, error) {
	if len(args) == 0 {
		return protocol.Errorf("Name of a task must be provided"), nil
	}

	if err := d.svc.AddTask(u, args); err != nil {
		return convert(err)
	}
	return protocol.Successf("Task has been added to (%s)'s list of tasks", u.Username), nil
}

func (d *Dispatcher) updateTask(u *domain.User, args []string) (string, error) {
	if len(args) == 0 {
		return protocol.Errorf("Name of a task must be provided"), nil
	}

	if err := d.svc.UpdateTask(u, args); err != nil {
		return convert(err)
	}
	return protocol.Successf("Task has been updated in (%s)'s list of tasks", u.Username), nil
}

func (d *Dispatcher) listTasks(u *domain.User, args []string) (string, error) {
	switch len(args) {
	case 0:
		return u.ListTasks(), nil
	case 2:
		switch args[0] {
		case "completed":
			switch args[1] {
			case "true":
				return u.ListTasksByCompletion(true), nil
			case "false":
				return u.ListTasksByCompletion(false), nil
			default:
				return protocol.Errorf("Completed can only be followed by true or false parameter"), nil
			}
		case "date":
			date, err := domain.ParseDate(args[1])
			if err != nil {
				return protocol.Errorf("Date must be in valid format : (%s)", domain.DatePattern), nil
			}
			rendered, err := u.ListDashboard(date)
			if err != nil {
				return convert(err)
			}
			return rendered, nil
		default:
			return protocol.Errorf("Unavailable specifiers has been used (you can list only by completion or date)"), nil
		}
	default:
		return protocol.Errorf("Undefined number of specifiers have been provided (only one is available)"), nil
	}
}

func (d *Dispatcher) deleteTask(u *domain.User, args []string) (string, error) {
	if len(args) == 0 {
		return protocol.Errorf("Name of a task must be provided"), nil
	}
	if !validCredential(args[0]) {
		return protocol.Errorf("Invalid arguments for deleting a task"), nil
	}

	if err := d.svc.DeleteTask(u, args[0]); err != nil {
		return convert(err)
	}
	return protocol.Successf("Task has been deleted from (%s)'s list of tasks", u.Username), nil
}

func (d *Dispatcher) getTask(u *domain.User, args []string) (string, error) {
	if len(args) == 0 {
		return protocol.Errorf("Name of a task must be provided"), nil
	}
	if !validCredential(args[0]) {
		return protocol.Errorf("Invalid arguments for getting a task"), nil
	}

	rendered, err := u.RenderTask(args[0])
	if err != nil {
		return convert(err)
	}
	return rendered, nil
}

func (d *Dispatcher) listDashboard(u *domain.User) (string, error) {
	y, m, day := time.Now().Date()
	rendered, err := u.ListDashboard(time.Date(y, m, day, 0, 0, 0, 0, time.UTC))
	if err != nil {
		return convert(err)
	}
	return rendered, nil
}

func (d *Dispatcher) finishTask(u *domain.User, args []string) (string, error) {
	if len(args) == 0 {
		return protocol.Errorf("Name of a task must be provided"), nil
	}
	if !validCredential(args[0]) {
		return protocol.Errorf("Invalid arguments for finishing a task"), nil
	}

	if err := d.svc.FinishTask(u, args[0]); err != nil {
		return convert(err)
	}
	return protocol.Successf("Task has been finished from (%s)'s list of tasks", u.Username), nil
}

func (d *Dispatcher) addCollaboration(u *domain.User, args []string) (string, error) {
	if len(args) == 0 {
		return protocol.Errorf("Name of a collaboration must be provided"), nil
	}
	if !validCredential(args[0]) {
		return protocol.Errorf("Invalid arguments for creating a collaboration"), nil
	}

	if err := d.svc.AddCollaboration(args[0], u); err != nil {
		return convert(err)
	}
	return protocol.Successf("Collaboration has been created by (%s)", u.Username), nil
}

func (d *Dispatcher) addUserToCollaboration(u *domain.User, args []string) (string, error) {
	if len(args) != 2 {
		return protocol.Errorf("Collaboration name and account's username must be provided"), nil
	}
	if !validCredential(args[0]) || !validCredential(args[1]) {
		return protocol.Errorf("Invalid arguments for searching a collaboration"), nil
	}

	if err := d.svc.AddUserToCollaboration(u, args[0], args[1]); err != nil {
		return convert(err)
	}
	return protocol.Successf("User (%s) has been added to collaboration (%s)", args[1], args[0]), nil
}

func (d *Dispatcher) deleteCollaboration(u *domain.User, args []string) (string, error) {
	if len(args) == 0 {
		return protocol.Errorf("Name of a collaboration must be provided"), nil
	}
	if !validCredential(args[0]) {
		return protocol.Errorf("Invalid arguments for deleting a collaboration"), nil
	}

	if err := d.svc.DeleteCollaboration(args[0], u); err != nil {
		return convert(err)
	}
	return protocol.Successf("Collaboration (%s) has been deleted", args[0]), nil
}

func (d *Dispatcher) assignTask(args []string) (string, error) {
	if len(args) < 3 {
		return protocol.Errorf("Collaboration name, account's username and task name must be provided"), nil
	}
	if !validCredential(args[0]) || !validCredential(args[1]) || !validCredential(args[2]) {
		return protocol.Errorf("Invalid arguments for searching a collaboration"), nil
	}

	if err := d.svc.AssignTask(args[0], args[1], args[2:]); err != nil {
		return convert(err)
	}
	return protocol.Successf("Task has been assigned to user (%s) from collaboration (%s)", args[1], args[0]), nil
}

func (d *Dispatcher) listCollaborationTasks(args []string) (string, error) {
	if len(args) == 0 {
		return protocol.Errorf("Name of a collaboration must be provided"), nil
	}
	if !validCredential(args[0]) {
		return protocol.Errorf("Invalid arguments for listing tasks from collaboration"), nil
	}

	rendered, err := d.svc.RenderCollaborationTasks(args[0])
	if err != nil {
		return convert(err)
	}
	return rendered, nil
}

func (d *Dispatcher) listCollaborationMembers(args []string) (string, error) {
	if len(args) == 0 {
		return protocol.Errorf("Collaboration name must be provided"), nil
	}
	if !validCredential(args[0]) {
		return protocol.Errorf("Invalid arguments for listing users from collaboration"), nil
	}

	rendered, err := d.svc.RenderCollaborationMembers(args[0])
	if err != nil {
		return convert(err)
	}
	return rendered, nil
}

// convert maps a typed domain failure into a response envelope. Anything
// else (a persistence failure) is passed through for the event loop to
// treat as fatal.
func convert(err error) (string, error) {
	var derr *domain.Error
	if errors.As(err, &derr) {
		return protocol.Format(statusFor(derr.Kind), derr.Msg), nil
	}
	return "", err
}

func statusFor(kind domain.Kind) protocol.Status {
	switch kind {
	case domain.KindSession, domain.KindProtocol:
		return protocol.StatusWarning
	default:
		return protocol.StatusError
	}
}

func validCredential(s string) bool {
	return strings.TrimSpace(s) != ""
}
