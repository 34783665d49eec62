// Package dispatch holds the per-connection session state machine and the
// dispatcher that routes parsed commands to domain operations. Like the
// service layer, it runs entirely on the dispatch goroutine.
package dispatch

import (
	"github.com/aussiebroadwan/taskhub/internal/todo/domain"
	"github.com/aussiebroadwan/taskhub/pkg/idx"
)

// Registry tracks session state: an accessibility flag and, once
// authenticated, the bound account per connection, plus one process-wide
// logged-in flag per account. The account flag is the sole mechanism
// preventing one account from holding two live sessions.
type Registry struct {
	accessible map[idx.ID]bool
	users      map[idx.ID]*domain.User
	loggedIn   map[string]bool
}

func NewRegistry() *Registry {
	return &Registry{
		accessible: make(map[idx.ID]bool),
		users:      make(map[idx.ID]*domain.User),
		loggedIn:   make(map[string]bool),
	}
}

// Touch registers the connection as unauthenticated if it is not known yet.
func (r *Registry) Touch(conn idx.ID) {
	if _, ok := r.accessible[conn]; !ok {
		r.accessible[conn] = false
	}
}

// Accessible reports whether the connection has an authenticated session.
func (r *Registry) Accessible(conn idx.ID) bool {
	return r.accessible[conn]
}

// User returns the account bound to the connection, or nil.
func (r *Registry) User(conn idx.ID) *domain.User {
	return r.users[conn]
}

// LoggedIn reports whether the account is authenticated on any connection.
func (r *Registry) LoggedIn(username string) bool {
	return r.loggedIn[username]
}

// Bind promotes the connection to authenticated and sets the account's
// logged-in flag.
func (r *Registry) Bind(conn idx.ID, u *domain.User) {
	r.accessible[conn] = true
	r.users[conn] = u
	r.loggedIn[u.Username] = true
}

// Unbind demotes the connection back to unauthenticated and clears the
// account's logged-in flag.
func (r *Registry) Unbind(conn idx.ID) {
	if u := r.users[conn]; u != nil {
		r.loggedIn[u.Username] = false
	}
	r.accessible[conn] = false
	delete(r.users, conn)
}

// Drop discards all session state for a closed connection, releasing the
// account's logged-in flag if one was bound.
func (r *Registry) Drop(conn idx.ID) {
	r.Unbind(conn)
	delete(r.accessible, conn)
}
