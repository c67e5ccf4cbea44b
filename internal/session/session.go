package session

import (
	"strings"
	"sync"

	"github.com/golang-jwt/jwt/v5"

	"go-recruitment-console/internal/domain"
	"go-recruitment-console/pkg/apperror"
)

// Session holds the signed-in user and bearer credential for one
// console run. It is read-only to the rest of the core: only Init and
// Teardown mutate it.
type Session struct {
	mu    sync.RWMutex
	user  *domain.UserRecord
	token string
}

func New() *Session {
	return &Session{}
}

// Init derives the current user from the bearer token's claims and
// stores both. The token is decoded without signature verification:
// the ranking service is the verifier and re-checks every request, the
// client only needs display identity and feature gating.
func (s *Session) Init(token string) error {
	token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
	if token == "" {
		return apperror.Unauthorized("Empty credential")
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return apperror.Unauthorized("Malformed credential: " + err.Error())
	}

	user := &domain.UserRecord{IsActive: true}
	if sub, _ := claims["sub"].(string); sub != "" {
		user.Email = sub
	}
	if name, _ := claims["name"].(string); name != "" {
		user.FullName = name
	}
	if id, ok := claims["uid"].(float64); ok {
		user.ID = int64(id)
	}
	role, _ := claims["role"].(string)
	user.Role = domain.Role(role)
	if !user.Role.Valid() {
		user.Role = domain.RoleCandidate // fallback, mirrors the server
	}

	s.mu.Lock()
	s.user = user
	s.token = token
	s.mu.Unlock()
	return nil
}

// InitWithUser stores an externally supplied user record and credential.
func (s *Session) InitWithUser(user *domain.UserRecord, token string) {
	s.mu.Lock()
	s.user = user
	s.token = token
	s.mu.Unlock()
}

// Teardown clears the session on sign-out.
func (s *Session) Teardown() {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()
}

// User returns a copy of the current user, or nil when signed out.
func (s *Session) User() *domain.UserRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Token returns the bearer credential, or "" when signed out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// IsRecruiter reports whether the user may run the ranking workflow.
// Admins qualify.
func (s *Session) IsRecruiter() bool {
	return s.Can(domain.CapRankCandidates)
}

func (s *Session) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.user.Role == domain.RoleAdmin
}

// Can reports whether the signed-in user's role grants the capability.
func (s *Session) Can(c domain.Capability) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.user.Role.Can(c)
}
