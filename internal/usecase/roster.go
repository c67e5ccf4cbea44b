package usecase

import (
	"context"
	"sync"

	"go-recruitment-console/internal/domain"
	"go-recruitment-console/internal/session"
	"go-recruitment-console/pkg/apperror"
	"go-recruitment-console/pkg/logger"
)

// RosterAction is an admin action available on one user row.
type RosterAction int

const (
	ActionAssignRecruiter RosterAction = iota
	ActionRevokeRecruiter
	ActionDeleteUser
)

// Success messages after mutating actions.
const (
	msgRecruiterAssigned = "Recruiter role assigned successfully"
	msgRecruiterRevoked  = "Recruiter role revoked successfully"
	msgUserDeleted       = "User deleted successfully"
)

// RosterState is a point-in-time snapshot of the admin console.
type RosterState struct {
	Users         []domain.UserRecord
	Filter        domain.Role // "" lists all roles
	Loading       bool
	ActionPending bool
	Error         string
	Success       string
}

// RosterUsecase manages the admin user list and its role-mutation
// cycle. Every mutation re-reads server truth via a full refetch rather
// than patching local state. A failed fetch keeps the previous list
// visible.
type RosterUsecase struct {
	dir  domain.DirectoryService
	sess *session.Session

	mu         sync.Mutex
	users      []domain.UserRecord
	filter     domain.Role
	loading    bool
	acting     bool
	errMsg     string
	successMsg string
}

func NewRosterUsecase(dir domain.DirectoryService, sess *session.Session) *RosterUsecase {
	return &RosterUsecase{dir: dir, sess: sess}
}

// LoadUsers fetches the roster scoped by the current filter. On success
// the list is replaced wholesale and the error cleared; on failure the
// stale list stays and the error is surfaced. A success message from a
// preceding mutation survives the refetch.
//
// Returns apperror.Forbidden for non-admins so the caller can redirect
// away; no fetch is issued in that case.
func (u *RosterUsecase) LoadUsers(ctx context.Context) error {
	if err := u.requireAdmin(); err != nil {
		return err
	}

	u.mu.Lock()
	if u.loading || u.acting {
		u.mu.Unlock()
		return nil
	}
	u.loading = true
	u.errMsg = ""
	filter := u.filter
	u.mu.Unlock()

	users, err := u.dir.ListUsers(ctx, filter)

	u.mu.Lock()
	defer u.mu.Unlock()
	u.loading = false
	if err != nil {
		logger.Log.Error("roster fetch failed", "filter", filter, "error", err)
		u.errMsg = err.Error()
		return nil
	}
	u.users = users
	return nil
}

// SetFilter changes the role filter and refetches immediately.
func (u *RosterUsecase) SetFilter(ctx context.Context, role domain.Role) error {
	u.mu.Lock()
	u.filter = role
	u.mu.Unlock()
	return u.LoadUsers(ctx)
}

func (u *RosterUsecase) AssignRecruiter(ctx context.Context, userID int64) error {
	return u.mutate(ctx, ActionAssignRecruiter, userID)
}

func (u *RosterUsecase) RevokeRecruiter(ctx context.Context, userID int64) error {
	return u.mutate(ctx, ActionRevokeRecruiter, userID)
}

// DeleteUser removes a user. Confirmation is a precondition, not an
// error: an unconfirmed call is a no-op so the caller can gate it on an
// explicit prompt.
func (u *RosterUsecase) DeleteUser(ctx context.Context, userID int64, confirmed bool) error {
	if !confirmed {
		return nil
	}
	return u.mutate(ctx, ActionDeleteUser, userID)
}

// CanDelete reports whether the delete action may be offered for a
// user. The signed-in admin's own record and any admin record are
// excluded.
func (u *RosterUsecase) CanDelete(target domain.UserRecord) bool {
	if target.Role == domain.RoleAdmin {
		return false
	}
	if current := u.sess.User(); current != nil && current.ID == target.ID {
		return false
	}
	return true
}

// ActionsFor lists the actions to render for one user row.
func (u *RosterUsecase) ActionsFor(target domain.UserRecord) []RosterAction {
	var actions []RosterAction
	switch target.Role {
	case domain.RoleCandidate:
		actions = append(actions, ActionAssignRecruiter)
	case domain.RoleRecruiter:
		actions = append(actions, ActionRevokeRecruiter)
	}
	if u.CanDelete(target) {
		actions = append(actions, ActionDeleteUser)
	}
	return actions
}

// State snapshots the roster for rendering.
func (u *RosterUsecase) State() RosterState {
	u.mu.Lock()
	defer u.mu.Unlock()
	return RosterState{
		Users:         u.users,
		Filter:        u.filter,
		Loading:       u.loading,
		ActionPending: u.acting,
		Error:         u.errMsg,
		Success:       u.successMsg,
	}
}

// mutate runs one role mutation: clear both messages, issue the
// request, and on success refetch with the current filter. A failure
// sets the error and skips the refetch. The in-flight guard is released
// on every path.
func (u *RosterUsecase) mutate(ctx context.Context, action RosterAction, userID int64) error {
	if err := u.requireAdmin(); err != nil {
		return err
	}

	u.mu.Lock()
	if u.loading || u.acting {
		u.mu.Unlock()
		return nil
	}
	if action == ActionDeleteUser {
		if target, ok := u.findUser(userID); ok && !u.CanDelete(target) {
			u.mu.Unlock()
			return apperror.Forbidden("This user cannot be deleted")
		}
	}
	u.acting = true
	u.errMsg = ""
	u.successMsg = ""
	u.mu.Unlock()

	var err error
	var success string
	switch action {
	case ActionAssignRecruiter:
		err = u.dir.AssignRecruiter(ctx, userID)
		success = msgRecruiterAssigned
	case ActionRevokeRecruiter:
		err = u.dir.RevokeRecruiter(ctx, userID)
		success = msgRecruiterRevoked
	case ActionDeleteUser:
		err = u.dir.DeleteUser(ctx, userID)
		success = msgUserDeleted
	}

	u.mu.Lock()
	u.acting = false
	if err != nil {
		logger.Log.Error("roster mutation failed", "action", action, "user", userID, "error", err)
		u.errMsg = err.Error()
		u.mu.Unlock()
		return nil
	}
	u.successMsg = success
	u.mu.Unlock()

	logger.Log.Info("roster mutation applied", "action", action, "user", userID)
	return u.LoadUsers(ctx)
}

// findUser looks up a user in the last fetched list. Caller must hold
// the lock.
func (u *RosterUsecase) findUser(userID int64) (domain.UserRecord, bool) {
	for _, rec := range u.users {
		if rec.ID == userID {
			return rec, true
		}
	}
	return domain.UserRecord{}, false
}

func (u *RosterUsecase) requireAdmin() error {
	if !u.sess.Can(domain.CapManageUsers) {
		return apperror.Forbidden("Admin access required")
	}
	return nil
}
