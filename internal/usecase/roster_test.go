package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"go-recruitment-console/internal/domain"
	"go-recruitment-console/internal/session"
	"go-recruitment-console/internal/usecase"
	"go-recruitment-console/pkg/apperror"
)

type MockDirectoryService struct {
	mock.Mock
}

func (m *MockDirectoryService) ListUsers(ctx context.Context, role domain.Role) ([]domain.UserRecord, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserRecord), args.Error(1)
}

func (m *MockDirectoryService) AssignRecruiter(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockDirectoryService) RevokeRecruiter(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockDirectoryService) DeleteUser(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

func adminSession() *session.Session {
	s := session.New()
	s.InitWithUser(&domain.UserRecord{
		ID:       1,
		FullName: "Root Admin",
		Email:    "admin@example.com",
		Role:     domain.RoleAdmin,
		IsActive: true,
	}, "admin-token")
	return s
}

func fiveUsers() []domain.UserRecord {
	return []domain.UserRecord{
		{ID: 1, FullName: "Root Admin", Email: "admin@example.com", Role: domain.RoleAdmin, IsActive: true},
		{ID: 2, FullName: "Cara Candidate", Email: "cara@example.com", Role: domain.RoleCandidate, IsActive: true},
		{ID: 3, FullName: "Carl Candidate", Email: "carl@example.com", Role: domain.RoleCandidate, IsActive: true},
		{ID: 4, FullName: "Rita Recruiter", Email: "rita@example.com", Role: domain.RoleRecruiter, IsActive: true},
		{ID: 5, FullName: "Ray Recruiter", Email: "ray@example.com", Role: domain.RoleRecruiter, IsActive: false},
	}
}

func TestRosterGuard(t *testing.T) {
	ctx := context.Background()

	t.Run("Should refuse non-admins without fetching", func(t *testing.T) {
		dir := new(MockDirectoryService)
		s := session.New()
		s.InitWithUser(&domain.UserRecord{ID: 4, Role: domain.RoleRecruiter}, "tok")
		uc := usecase.NewRosterUsecase(dir, s)

		err := uc.LoadUsers(ctx)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Admin access required")
		dir.AssertNotCalled(t, "ListUsers")
	})

	t.Run("Should fail safe when signed out", func(t *testing.T) {
		dir := new(MockDirectoryService)
		uc := usecase.NewRosterUsecase(dir, session.New())

		assert.Error(t, uc.LoadUsers(ctx))
		assert.Error(t, uc.AssignRecruiter(ctx, 2))
		dir.AssertNotCalled(t, "ListUsers")
		dir.AssertNotCalled(t, "AssignRecruiter")
	})
}

func TestLoadUsers(t *testing.T) {
	ctx := context.Background()

	t.Run("Should replace the list wholesale on success", func(t *testing.T) {
		dir := new(MockDirectoryService)
		dir.On("ListUsers", mock.Anything, domain.Role("")).Return(fiveUsers(), nil)
		uc := usecase.NewRosterUsecase(dir, adminSession())

		require.NoError(t, uc.LoadUsers(ctx))

		st := uc.State()
		assert.Len(t, st.Users, 5)
		assert.False(t, st.Loading)
		assert.Empty(t, st.Error)
	})

	t.Run("Should keep the stale list on failure", func(t *testing.T) {
		dir := new(MockDirectoryService)
		dir.On("ListUsers", mock.Anything, domain.Role("")).Return(fiveUsers(), nil).Once()
		dir.On("ListUsers", mock.Anything, domain.Role("")).Return(nil, apperror.New(500, "directory unavailable", nil)).Once()
		uc := usecase.NewRosterUsecase(dir, adminSession())

		require.NoError(t, uc.LoadUsers(ctx))
		require.NoError(t, uc.LoadUsers(ctx))

		st := uc.State()
		assert.Len(t, st.Users, 5)
		assert.Equal(t, "directory unavailable", st.Error)
		assert.False(t, st.Loading)
	})

	t.Run("Should refetch with the new filter on filter change", func(t *testing.T) {
		all := fiveUsers()
		recruiters := []domain.UserRecord{all[3], all[4]}
		dir := new(MockDirectoryService)
		dir.On("ListUsers", mock.Anything, domain.Role("")).Return(all, nil)
		dir.On("ListUsers", mock.Anything, domain.RoleRecruiter).Return(recruiters, nil)
		uc := usecase.NewRosterUsecase(dir, adminSession())

		require.NoError(t, uc.LoadUsers(ctx))
		require.NoError(t, uc.SetFilter(ctx, domain.RoleRecruiter))

		st := uc.State()
		assert.Equal(t, domain.RoleRecruiter, st.Filter)
		require.Len(t, st.Users, 2)
		assert.Equal(t, domain.RoleRecruiter, st.Users[0].Role)
	})
}

func TestRosterMutations(t *testing.T) {
	ctx := context.Background()

	t.Run("Should refetch after a successful assignment", func(t *testing.T) {
		before := fiveUsers()
		after := fiveUsers()
		after[1].Role = domain.RoleRecruiter
		dir := new(MockDirectoryService)
		dir.On("ListUsers", mock.Anything, domain.Role("")).Return(before, nil).Once()
		dir.On("AssignRecruiter", mock.Anything, int64(2)).Return(nil)
		dir.On("ListUsers", mock.Anything, domain.Role("")).Return(after, nil).Once()
		uc := usecase.NewRosterUsecase(dir, adminSession())

		require.NoError(t, uc.LoadUsers(ctx))
		require.NoError(t, uc.AssignRecruiter(ctx, 2))

		st := uc.State()
		assert.Equal(t, "Recruiter role assigned successfully", st.Success)
		assert.Empty(t, st.Error)
		assert.Equal(t, domain.RoleRecruiter, st.Users[1].Role)
		dir.AssertNumberOfCalls(t, "ListUsers", 2)
	})

	t.Run("Should skip the refetch on a failed mutation", func(t *testing.T) {
		dir := new(MockDirectoryService)
		dir.On("ListUsers", mock.Anything, domain.Role("")).Return(fiveUsers(), nil).Once()
		dir.On("RevokeRecruiter", mock.Anything, int64(4)).Return(apperror.New(409, "last recruiter", nil))
		uc := usecase.NewRosterUsecase(dir, adminSession())

		require.NoError(t, uc.LoadUsers(ctx))
		require.NoError(t, uc.RevokeRecruiter(ctx, 4))

		st := uc.State()
		assert.Equal(t, "last recruiter", st.Error)
		assert.Empty(t, st.Success)
		assert.False(t, st.ActionPending)
		dir.AssertNumberOfCalls(t, "ListUsers", 1)
	})

	t.Run("Should clear the previous message on every new action", func(t *testing.T) {
		dir := new(MockDirectoryService)
		dir.On("ListUsers", mock.Anything, domain.Role("")).Return(fiveUsers(), nil)
		dir.On("AssignRecruiter", mock.Anything, int64(2)).Return(nil).Once()
		dir.On("AssignRecruiter", mock.Anything, int64(3)).Return(apperror.New(500, "boom", nil)).Once()
		uc := usecase.NewRosterUsecase(dir, adminSession())

		require.NoError(t, uc.LoadUsers(ctx))
		require.NoError(t, uc.AssignRecruiter(ctx, 2))
		require.NotEmpty(t, uc.State().Success)

		require.NoError(t, uc.AssignRecruiter(ctx, 3))

		st := uc.State()
		assert.Empty(t, st.Success)
		assert.Equal(t, "boom", st.Error)
	})
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Should be a no-op without confirmation", func(t *testing.T) {
		dir := new(MockDirectoryService)
		dir.On("ListUsers", mock.Anything, domain.Role("")).Return(fiveUsers(), nil)
		uc := usecase.NewRosterUsecase(dir, adminSession())

		require.NoError(t, uc.LoadUsers(ctx))
		require.NoError(t, uc.DeleteUser(ctx, 2, false))

		dir.AssertNotCalled(t, "DeleteUser")
	})

	t.Run("Should delete and refetch when confirmed", func(t *testing.T) {
		before := fiveUsers()
		after := append([]domain.UserRecord{}, before[0], before[2], before[3], before[4])
		dir := new(MockDirectoryService)
		dir.On("ListUsers", mock.Anything, domain.Role("")).Return(before, nil).Once()
		dir.On("DeleteUser", mock.Anything, int64(2)).Return(nil)
		dir.On("ListUsers", mock.Anything, domain.Role("")).Return(after, nil).Once()
		uc := usecase.NewRosterUsecase(dir, adminSession())

		require.NoError(t, uc.LoadUsers(ctx))
		require.NoError(t, uc.DeleteUser(ctx, 2, true))

		st := uc.State()
		assert.Equal(t, "User deleted successfully", st.Success)
		assert.Len(t, st.Users, 4)
	})

	t.Run("Should never offer deleting self or another admin", func(t *testing.T) {
		dir := new(MockDirectoryService)
		dir.On("ListUsers", mock.Anything, domain.Role("")).Return(fiveUsers(), nil)
		uc := usecase.NewRosterUsecase(dir, adminSession())
		require.NoError(t, uc.LoadUsers(ctx))

		self := fiveUsers()[0]
		assert.False(t, uc.CanDelete(self))
		assert.NotContains(t, uc.ActionsFor(self), usecase.ActionDeleteUser)

		otherAdmin := domain.UserRecord{ID: 9, Role: domain.RoleAdmin}
		assert.False(t, uc.CanDelete(otherAdmin))

		candidate := fiveUsers()[1]
		assert.True(t, uc.CanDelete(candidate))
		assert.Contains(t, uc.ActionsFor(candidate), usecase.ActionDeleteUser)

		// Defense in depth: a confirmed delete against a protected
		// record is still refused before any request goes out.
		err := uc.DeleteUser(ctx, 1, true)
		require.Error(t, err)
		dir.AssertNotCalled(t, "DeleteUser")
	})
}

func TestActionsFor(t *testing.T) {
	dir := new(MockDirectoryService)
	uc := usecase.NewRosterUsecase(dir, adminSession())

	assert.Equal(t,
		[]usecase.RosterAction{usecase.ActionAssignRecruiter, usecase.ActionDeleteUser},
		uc.ActionsFor(domain.UserRecord{ID: 2, Role: domain.RoleCandidate}))
	assert.Equal(t,
		[]usecase.RosterAction{usecase.ActionRevokeRecruiter, usecase.ActionDeleteUser},
		uc.ActionsFor(domain.UserRecord{ID: 4, Role: domain.RoleRecruiter}))
	assert.Empty(t, uc.ActionsFor(domain.UserRecord{ID: 9, Role: domain.RoleAdmin}))
}
