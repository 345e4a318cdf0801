package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/uniteam-dev/uniteam/internal/modules/model"
)

// MockGroupRepo is a mock implementation of repo.GroupRepo
type MockGroupRepo struct {
	mock.Mock
}

func (m *MockGroupRepo) Create(ctx context.Context, g *model.Group) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockGroupRepo) Get(ctx context.Context, id uuid.UUID) (*model.Group, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Group), args.Error(1)
}

func (m *MockGroupRepo) ListByName(ctx context.Context) ([]model.Group, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Group), args.Error(1)
}

func (m *MockGroupRepo) ListMembers(ctx context.Context, groupID uuid.UUID) ([]model.GroupMember, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.GroupMember), args.Error(1)
}

func (m *MockGroupRepo) CreateMember(ctx context.Context, gm *model.GroupMember) error {
	args := m.Called(ctx, gm)
	return args.Error(0)
}

func (m *MockGroupRepo) CreateMembers(ctx context.Context, ms []model.GroupMember) error {
	args := m.Called(ctx, ms)
	return args.Error(0)
}

// MockProfileRepo is a mock implementation of repo.ProfileRepo
type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) ListByUserIDs(ctx context.Context, ids []uuid.UUID) ([]model.Profile, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Profile), args.Error(1)
}

func (m *MockProfileRepo) ListByStudentIDs(ctx context.Context, studentIDs []string) ([]model.Profile, error) {
	args := m.Called(ctx, studentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Profile), args.Error(1)
}

// MockStageRepo is a mock implementation of repo.StageRepo
type MockStageRepo struct {
	mock.Mock
}

func (m *MockStageRepo) Create(ctx context.Context, s *model.Stage) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStageRepo) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]model.Stage, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Stage), args.Error(1)
}

// MockTaskRepo is a mock implementation of repo.TaskRepo
type MockTaskRepo struct {
	mock.Mock
}

func (m *MockTaskRepo) Create(ctx context.Context, t *model.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTaskRepo) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]model.Task, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepo) ListAssignmentsByTasks(ctx context.Context, taskIDs []uuid.UUID) ([]model.TaskAssignment, error) {
	args := m.Called(ctx, taskIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TaskAssignment), args.Error(1)
}

func (m *MockTaskRepo) ListScoresByTasks(ctx context.Context, taskIDs []uuid.UUID) ([]model.TaskScore, error) {
	args := m.Called(ctx, taskIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TaskScore), args.Error(1)
}

func (m *MockTaskRepo) ListSubmissionsByTasks(ctx context.Context, taskIDs []uuid.UUID) ([]model.Submission, error) {
	args := m.Called(ctx, taskIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Submission), args.Error(1)
}

func (m *MockTaskRepo) CreateAssignments(ctx context.Context, as []model.TaskAssignment) error {
	args := m.Called(ctx, as)
	return args.Error(0)
}

func (m *MockTaskRepo) CreateScores(ctx context.Context, ss []model.TaskScore) error {
	args := m.Called(ctx, ss)
	return args.Error(0)
}

func (m *MockTaskRepo) CreateSubmissions(ctx context.Context, ss []model.Submission) error {
	args := m.Called(ctx, ss)
	return args.Error(0)
}

// MockMessageRepo is a mock implementation of repo.MessageRepo
type MockMessageRepo struct {
	mock.Mock
}

func (m *MockMessageRepo) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]model.ProjectMessage, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProjectMessage), args.Error(1)
}

func (m *MockMessageRepo) CreateBatch(ctx context.Context, ms []model.ProjectMessage) error {
	args := m.Called(ctx, ms)
	return args.Error(0)
}

// MockObjectStore is a mock implementation of ObjectStore
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) Download(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockObjectStore) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	args := m.Called(ctx, key, data, contentType)
	return args.Error(0)
}

// MockNotifier is a mock implementation of Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) PublishJSON(ctx context.Context, payload any) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}
