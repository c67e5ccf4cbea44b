package domain

import "context"

// Role determines feature visibility and admin-action eligibility.
type Role string

const (
	RoleCandidate Role = "candidate"
	RoleRecruiter Role = "recruiter"
	RoleAdmin     Role = "admin"
)

// Capability is a feature the current user may exercise. Gating checks
// capabilities instead of scattering role string comparisons.
type Capability int

const (
	// CapRankCandidates covers the two-step ranking workflow:
	// job-description ingestion and resume batch submission.
	CapRankCandidates Capability = iota
	// CapManageUsers covers the admin console: listing users and
	// assigning, revoking, or deleting accounts.
	CapManageUsers
)

var roleCapabilities = map[Role]map[Capability]bool{
	RoleCandidate: {},
	RoleRecruiter: {CapRankCandidates: true},
	RoleAdmin:     {CapRankCandidates: true, CapManageUsers: true},
}

// Can reports whether the role grants the capability. Unknown roles
// grant nothing.
func (r Role) Can(c Capability) bool {
	return roleCapabilities[r][c]
}

func (r Role) Valid() bool {
	switch r {
	case RoleCandidate, RoleRecruiter, RoleAdmin:
		return true
	}
	return false
}

// UserRecord mirrors the user shape returned by the ranking service.
type UserRecord struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Role     Role   `json:"role" validate:"required,oneof=candidate recruiter admin"`
	IsActive bool   `json:"is_active"`
}

// DirectoryService is the admin-facing surface of the ranking service.
// A role value of "" lists all users.
type DirectoryService interface {
	ListUsers(ctx context.Context, role Role) ([]UserRecord, error)
	AssignRecruiter(ctx context.Context, userID int64) error
	RevokeRecruiter(ctx context.Context, userID int64) error
	DeleteUser(ctx context.Context, userID int64) error
}
