package protocol

// Command verbs. Register and Login are the only verbs reachable before a
// session is authenticated.
const (
	VerbRegister = "register"
	VerbLogin    = "login"
	VerbLogout   = "logout"

	VerbAddTask       = "add-task"
	VerbUpdateTask    = "update-task"
	VerbListTasks     = "list-tasks"
	VerbDeleteTask    = "delete-task"
	VerbGetTask       = "get-task"
	VerbListDashboard = "list-dashboard"
	VerbFinishTask    = "finish-task"

	VerbAddCollaboration       = "add-collaboration"
	VerbListCollaborations     = "list-collaborations"
	VerbAddUserToCollaboration = "add-user-to-collaboration"
	VerbDeleteCollaboration    = "delete-collaboration"
	VerbAssignTaskCollab       = "assign-task-collaboration"
	VerbListTasksCollab        = "list-tasks-collaboration"
	VerbListUsersCollab        = "list-users-collaboration"
)
