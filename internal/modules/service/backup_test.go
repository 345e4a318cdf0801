package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/uniteam-dev/uniteam/internal/modules/model"
	"github.com/uniteam-dev/uniteam/internal/pkg/archive"
	"go.uber.org/zap"
)

type backupMocks struct {
	groups   *MockGroupRepo
	profiles *MockProfileRepo
	stages   *MockStageRepo
	tasks    *MockTaskRepo
	messages *MockMessageRepo
	store    *MockObjectStore
}

func newBackupMocks() *backupMocks {
	return &backupMocks{
		groups:   new(MockGroupRepo),
		profiles: new(MockProfileRepo),
		stages:   new(MockStageRepo),
		tasks:    new(MockTaskRepo),
		messages: new(MockMessageRepo),
		store:    new(MockObjectStore),
	}
}

func (m *backupMocks) service() BackupService {
	return NewBackupService(m.groups, m.profiles, m.stages, m.tasks, m.messages, m.store, zap.NewNop())
}

func strp(s string) *string { return &s }

func testGroup(id uuid.UUID) *model.Group {
	return &model.Group{
		ID:        id,
		Name:      "Capstone Team",
		Slug:      "capstone-team-abc12345",
		CreatedBy: uuid.New(),
		CreatedAt: time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, 1, 12, 8, 0, 0, 0, time.UTC),
	}
}

func openArchive(t *testing.T, data []byte) *archive.Reader {
	t.Helper()
	rd, err := archive.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	return rd
}

func TestBackupService_Export_MinimalProject(t *testing.T) {
	groupID := uuid.New()
	leaderID := uuid.New()
	m := newBackupMocks()

	m.groups.On("Get", mock.Anything, groupID).Return(testGroup(groupID), nil)
	m.groups.On("ListMembers", mock.Anything, groupID).Return([]model.GroupMember{
		{GroupID: groupID, UserID: leaderID, Role: model.RoleLeader, JoinedAt: time.Now()},
	}, nil)
	m.stages.On("ListByGroup", mock.Anything, groupID).Return([]model.Stage{}, nil)
	m.tasks.On("ListByGroup", mock.Anything, groupID).Return([]model.Task{
		{ID: uuid.New(), GroupID: groupID, Title: "Only task", Status: model.TaskStatusTodo},
	}, nil)
	m.messages.On("ListByGroup", mock.Anything, groupID).Return([]model.ProjectMessage{}, nil)
	m.profiles.On("ListByUserIDs", mock.Anything, []uuid.UUID{leaderID}).Return([]model.Profile{
		{ID: leaderID, StudentID: "SV001"},
	}, nil)
	m.tasks.On("ListAssignmentsByTasks", mock.Anything, mock.Anything).Return(nil, nil)
	m.tasks.On("ListScoresByTasks", mock.Anything, mock.Anything).Return(nil, nil)
	m.tasks.On("ListSubmissionsByTasks", mock.Anything, mock.Anything).Return(nil, nil)

	out, err := m.service().Export(context.Background(), ExportInput{GroupID: groupID})
	require.NoError(t, err)

	assert.Equal(t, "Capstone Team", out.ProjectName)
	assert.Zero(t, out.FileCount)
	assert.Zero(t, out.MessageCount)
	assert.True(t, strings.HasPrefix(out.FileName, "Capstone_Team_"))
	assert.True(t, strings.HasSuffix(out.FileName, ".zip"))

	mf := openArchive(t, out.Archive).Manifest()
	assert.Equal(t, archive.Version, mf.Version)
	assert.Equal(t, "Capstone Team", mf.Group.Name)
	assert.Nil(t, mf.Group.LeaderID)
	require.Len(t, mf.Members, 1)
	assert.Equal(t, "SV001", mf.Members[0].Profile.StudentID)
	assert.Empty(t, mf.Stages)
	require.Len(t, mf.Tasks, 1)
	assert.Nil(t, mf.Tasks[0].StageName)
	assert.Empty(t, mf.Tasks[0].Assignments)
	assert.Empty(t, mf.Files)
	assert.Empty(t, mf.Messages)

	// Export is strictly read-only; no write method is registered on any
	// mock, so a write would have panicked above. Spell the key ones out
	// anyway.
	m.groups.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	m.tasks.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	m.store.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBackupService_Export_GroupNotFound(t *testing.T) {
	groupID := uuid.New()
	m := newBackupMocks()
	m.groups.On("Get", mock.Anything, groupID).Return(nil, errors.New("record not found"))

	out, err := m.service().Export(context.Background(), ExportInput{GroupID: groupID})
	assert.Error(t, err)
	assert.Nil(t, out)
}

func TestBackupService_Export_NaturalKeys(t *testing.T) {
	groupID := uuid.New()
	userID := uuid.New()
	stageID := uuid.New()
	taskID := uuid.New()

	group := testGroup(groupID)
	m := newBackupMocks()

	m.groups.On("Get", mock.Anything, groupID).Return(group, nil)
	m.groups.On("ListMembers", mock.Anything, groupID).Return([]model.GroupMember{
		{GroupID: groupID, UserID: userID, Role: model.RoleLeader, JoinedAt: time.Now()},
	}, nil)
	m.stages.On("ListByGroup", mock.Anything, groupID).Return([]model.Stage{
		{ID: stageID, GroupID: groupID, Name: "Sprint 1", OrderIndex: 1},
	}, nil)
	m.tasks.On("ListByGroup", mock.Anything, groupID).Return([]model.Task{
		{ID: taskID, GroupID: groupID, StageID: &stageID, Title: "Write report", Status: model.TaskStatusDone},
	}, nil)
	m.messages.On("ListByGroup", mock.Anything, groupID).Return([]model.ProjectMessage{
		{GroupID: groupID, UserID: userID, Content: "hello", SourceType: model.MessageSourceChat, CreatedAt: time.Now()},
	}, nil)
	m.profiles.On("ListByUserIDs", mock.Anything, []uuid.UUID{userID}).Return([]model.Profile{
		{ID: userID, StudentID: "SV001", FullName: "An Nguyen", Email: "an@example.com"},
	}, nil)
	m.tasks.On("ListAssignmentsByTasks", mock.Anything, []uuid.UUID{taskID}).Return([]model.TaskAssignment{
		{TaskID: taskID, UserID: userID},
	}, nil)
	m.tasks.On("ListScoresByTasks", mock.Anything, []uuid.UUID{taskID}).Return([]model.TaskScore{
		{TaskID: taskID, UserID: userID, BaseScore: 9, FinalScore: 8.5},
	}, nil)
	m.tasks.On("ListSubmissionsByTasks", mock.Anything, []uuid.UUID{taskID}).Return([]model.Submission{}, nil)

	out, err := m.service().Export(context.Background(), ExportInput{GroupID: groupID})
	require.NoError(t, err)

	mf := openArchive(t, out.Archive).Manifest()

	require.Len(t, mf.Members, 1)
	assert.Equal(t, "SV001", mf.Members[0].Profile.StudentID)
	assert.Equal(t, model.RoleLeader, mf.Members[0].Role)

	require.Len(t, mf.Tasks, 1)
	require.NotNil(t, mf.Tasks[0].StageName)
	assert.Equal(t, "Sprint 1", *mf.Tasks[0].StageName)
	require.Len(t, mf.Tasks[0].Assignments, 1)
	assert.Equal(t, "SV001", mf.Tasks[0].Assignments[0].StudentID)
	require.Len(t, mf.Tasks[0].Scores, 1)
	assert.Equal(t, "SV001", mf.Tasks[0].Scores[0].StudentID)
	assert.Equal(t, 8.5, mf.Tasks[0].Scores[0].FinalScore)

	require.Len(t, mf.Messages, 1)
	assert.Equal(t, "SV001", mf.Messages[0].StudentID)
	assert.Equal(t, model.MessageSourceChat, mf.Messages[0].SourceType)
	assert.Equal(t, 1, out.MessageCount)
}

func TestBackupService_Export_DeduplicatesFiles(t *testing.T) {
	groupID := uuid.New()
	userID := uuid.New()
	taskID := uuid.New()
	link := `[{"type":"file","file_path":"u/g/report.pdf","file_name":"report.pdf","file_size":10}]`

	m := newBackupMocks()
	m.groups.On("Get", mock.Anything, groupID).Return(testGroup(groupID), nil)
	m.groups.On("ListMembers", mock.Anything, groupID).Return([]model.GroupMember{}, nil)
	m.stages.On("ListByGroup", mock.Anything, groupID).Return([]model.Stage{}, nil)
	m.tasks.On("ListByGroup", mock.Anything, groupID).Return([]model.Task{
		{ID: taskID, GroupID: groupID, Title: "t", Status: model.TaskStatusTodo, SubmissionLink: strp(link)},
	}, nil)
	m.messages.On("ListByGroup", mock.Anything, groupID).Return([]model.ProjectMessage{}, nil)
	m.profiles.On("ListByUserIDs", mock.Anything, mock.Anything).Return(nil, nil)
	m.tasks.On("ListAssignmentsByTasks", mock.Anything, mock.Anything).Return(nil, nil)
	m.tasks.On("ListScoresByTasks", mock.Anything, mock.Anything).Return(nil, nil)
	// The submission history row references the same storage path as the
	// task payload.
	m.tasks.On("ListSubmissionsByTasks", mock.Anything, mock.Anything).Return([]model.Submission{
		{TaskID: taskID, UserID: userID, SubmissionLink: strp(link), SubmissionType: model.SubmissionTypeFile},
	}, nil)

	m.store.On("Download", mock.Anything, "u/g/report.pdf").Return([]byte("pdf"), nil).Once()

	out, err := m.service().Export(context.Background(), ExportInput{GroupID: groupID})
	require.NoError(t, err)

	assert.Equal(t, 1, out.FileCount)
	m.store.AssertExpectations(t)

	rd := openArchive(t, out.Archive)
	mf := rd.Manifest()
	require.Len(t, mf.Files, 1)
	assert.Equal(t, "u/g/report.pdf", mf.Files[0].OriginalPath)
	assert.Equal(t, "files/u_g_report.pdf", mf.Files[0].ZipPath)

	content, err := rd.ReadFile(mf.Files[0].ZipPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("pdf"), content)
}

func TestBackupService_Export_SkipsFailedDownload(t *testing.T) {
	groupID := uuid.New()
	taskID := uuid.New()
	link := `[{"type":"file","file_path":"u/g/good.pdf","file_name":"good.pdf"},{"type":"file","file_path":"u/g/bad.pdf","file_name":"bad.pdf"}]`

	m := newBackupMocks()
	m.groups.On("Get", mock.Anything, groupID).Return(testGroup(groupID), nil)
	m.groups.On("ListMembers", mock.Anything, groupID).Return([]model.GroupMember{}, nil)
	m.stages.On("ListByGroup", mock.Anything, groupID).Return([]model.Stage{}, nil)
	m.tasks.On("ListByGroup", mock.Anything, groupID).Return([]model.Task{
		{ID: taskID, GroupID: groupID, Title: "t", Status: model.TaskStatusTodo, SubmissionLink: strp(link)},
	}, nil)
	m.messages.On("ListByGroup", mock.Anything, groupID).Return([]model.ProjectMessage{}, nil)
	m.profiles.On("ListByUserIDs", mock.Anything, mock.Anything).Return(nil, nil)
	m.tasks.On("ListAssignmentsByTasks", mock.Anything, mock.Anything).Return(nil, nil)
	m.tasks.On("ListScoresByTasks", mock.Anything, mock.Anything).Return(nil, nil)
	m.tasks.On("ListSubmissionsByTasks", mock.Anything, mock.Anything).Return(nil, nil)

	m.store.On("Download", mock.Anything, "u/g/good.pdf").Return([]byte("ok"), nil)
	m.store.On("Download", mock.Anything, "u/g/bad.pdf").Return(nil, errors.New("object gone"))

	out, err := m.service().Export(context.Background(), ExportInput{GroupID: groupID})
	require.NoError(t, err)

	assert.Equal(t, 1, out.FileCount)
	mf := openArchive(t, out.Archive).Manifest()
	require.Len(t, mf.Files, 1)
	assert.Equal(t, "u/g/good.pdf", mf.Files[0].OriginalPath)
}

func TestBackupService_Export_ProgressMilestones(t *testing.T) {
	groupID := uuid.New()
	taskID := uuid.New()
	link := `[{"type":"file","file_path":"u/g/a.bin","file_name":"a.bin"}]`

	m := newBackupMocks()
	m.groups.On("Get", mock.Anything, groupID).Return(testGroup(groupID), nil)
	m.groups.On("ListMembers", mock.Anything, groupID).Return([]model.GroupMember{}, nil)
	m.stages.On("ListByGroup", mock.Anything, groupID).Return([]model.Stage{}, nil)
	m.tasks.On("ListByGroup", mock.Anything, groupID).Return([]model.Task{
		{ID: taskID, GroupID: groupID, Title: "t", Status: model.TaskStatusTodo, SubmissionLink: strp(link)},
	}, nil)
	m.messages.On("ListByGroup", mock.Anything, groupID).Return([]model.ProjectMessage{}, nil)
	m.profiles.On("ListByUserIDs", mock.Anything, mock.Anything).Return(nil, nil)
	m.tasks.On("ListAssignmentsByTasks", mock.Anything, mock.Anything).Return(nil, nil)
	m.tasks.On("ListScoresByTasks", mock.Anything, mock.Anything).Return(nil, nil)
	m.tasks.On("ListSubmissionsByTasks", mock.Anything, mock.Anything).Return(nil, nil)
	m.store.On("Download", mock.Anything, "u/g/a.bin").Return([]byte("x"), nil)

	var milestones []int
	_, err := m.service().Export(context.Background(), ExportInput{
		GroupID:  groupID,
		Progress: func(p int) { milestones = append(milestones, p) },
	})
	require.NoError(t, err)

	assert.Equal(t, []int{10, 30, 50, 80, 85, 95, 100}, milestones)
}

// buildArchive produces archive bytes for import tests.
func buildArchive(t *testing.T, m *archive.Manifest, files map[string][]byte) []byte {
	t.Helper()
	w := archive.NewWriter()
	for path, data := range files {
		_, err := w.AddFile(path, data)
		require.NoError(t, err)
	}
	data, err := w.Finalize(m)
	require.NoError(t, err)
	return data
}

func TestBackupService_Import_InvalidArchive(t *testing.T) {
	m := newBackupMocks()
	junk := []byte("not a zip at all")

	out, err := m.service().Import(context.Background(), ImportInput{
		Archive: bytes.NewReader(junk),
		Size:    int64(len(junk)),
		UserID:  uuid.New(),
	})
	assert.Error(t, err)
	assert.Nil(t, out)
	m.groups.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBackupService_Import_GroupCreateFails(t *testing.T) {
	m := newBackupMocks()
	data := buildArchive(t, &archive.Manifest{
		Version:     archive.Version,
		ProjectName: "Demo",
		Group:       archive.Group{Name: "Demo"},
	}, nil)

	m.groups.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

	out, err := m.service().Import(context.Background(), ImportInput{
		Archive: bytes.NewReader(data),
		Size:    int64(len(data)),
		UserID:  uuid.New(),
	})
	assert.Error(t, err)
	assert.Nil(t, out)
	m.groups.AssertNotCalled(t, "CreateMember", mock.Anything, mock.Anything)
}

func TestBackupService_Import_FullRestore(t *testing.T) {
	importer := uuid.New()
	groupID := uuid.New()
	memberID := uuid.New()

	desc := "first sprint"
	stageName := "Sprint 1"
	taskLink := `[{"type":"file","file_path":"old/u/report.pdf","file_name":"report.pdf","file_size":3}]`
	manifest := &archive.Manifest{
		Version:     archive.Version,
		ExportedAt:  "2026-02-01T09:00:00Z",
		ProjectName: "Capstone Team",
		Group: archive.Group{
			Name:        "Capstone Team",
			Description: &desc,
			CreatedBy:   uuid.NewString(),
			CreatedAt:   "2026-01-10T08:00:00Z",
			UpdatedAt:   "2026-01-12T08:00:00Z",
		},
		Members: []archive.Member{
			{UserID: uuid.NewString(), Role: model.RoleMember, Profile: archive.MemberProfile{StudentID: "SV001"}},
			{UserID: uuid.NewString(), Role: model.RoleLeader, Profile: archive.MemberProfile{StudentID: "SV999"}},
		},
		Stages: []archive.Stage{
			{Name: stageName, OrderIndex: 1, StartDate: strp("2026-01-10"), Tasks: []archive.Task{}},
		},
		Tasks: []archive.Task{
			{
				Title:          "Write report",
				Status:         model.TaskStatusDone,
				StageName:      &stageName,
				SubmissionLink: strp(taskLink),
				Assignments: []archive.Assignment{
					{StudentID: "SV001"},
					{StudentID: "SV999"},
				},
				Scores: []archive.Score{
					{StudentID: "SV001", BaseScore: 9, FinalScore: 8.5},
					{StudentID: "SV999", BaseScore: 7, FinalScore: 7},
				},
				Submissions: []archive.Submission{
					{
						StudentID:      "SV001",
						SubmissionType: model.SubmissionTypeFile,
						FilePath:       strp("old/u/report.pdf"),
						FileName:       strp("report.pdf"),
						SubmittedAt:    "2026-01-11T10:00:00Z",
					},
				},
			},
		},
		Messages: []archive.Message{
			{StudentID: "SV001", Content: "done", SourceType: model.MessageSourceDirect, CreatedAt: "2026-01-11T11:00:00Z"},
			{StudentID: "SV999", Content: "dropped", CreatedAt: "2026-01-11T12:00:00Z"},
		},
		Files: []archive.FileEntry{
			{OriginalPath: "old/u/report.pdf", FileName: "report.pdf", FileSize: 3, ZipPath: "files/old_u_report.pdf"},
		},
	}
	data := buildArchive(t, manifest, map[string][]byte{"old/u/report.pdf": []byte("pdf")})

	m := newBackupMocks()

	m.groups.On("Create", mock.Anything, mock.MatchedBy(func(g *model.Group) bool {
		return g.Name == "Capstone Team (copy)" &&
			g.LeaderID != nil && *g.LeaderID == importer &&
			g.CreatedBy == importer && g.Slug != ""
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Group).ID = groupID
	}).Return(nil)

	// SV001 resolves to an existing profile; SV999 does not.
	m.profiles.On("ListByStudentIDs", mock.Anything, []string{"SV001", "SV999"}).Return([]model.Profile{
		{ID: memberID, StudentID: "SV001"},
	}, nil)

	m.groups.On("CreateMember", mock.Anything, mock.MatchedBy(func(gm *model.GroupMember) bool {
		return gm.GroupID == groupID && gm.UserID == importer && gm.Role == model.RoleLeader
	})).Return(nil)

	var restoredMembers []model.GroupMember
	m.groups.On("CreateMembers", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		restoredMembers = args.Get(1).([]model.GroupMember)
	}).Return(nil)

	var uploadedKey string
	m.store.On("Upload", mock.Anything, mock.Anything, []byte("pdf"), "").Run(func(args mock.Arguments) {
		uploadedKey = args.String(1)
	}).Return(nil)

	var createdStage *model.Stage
	m.stages.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		createdStage = args.Get(1).(*model.Stage)
	}).Return(nil)

	var createdTask *model.Task
	m.tasks.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		createdTask = args.Get(1).(*model.Task)
		createdTask.ID = uuid.New()
	}).Return(nil)

	var assignments []model.TaskAssignment
	m.tasks.On("CreateAssignments", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		assignments = args.Get(1).([]model.TaskAssignment)
	}).Return(nil)

	var scores []model.TaskScore
	m.tasks.On("CreateScores", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		scores = args.Get(1).([]model.TaskScore)
	}).Return(nil)

	var submissions []model.Submission
	m.tasks.On("CreateSubmissions", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		submissions = args.Get(1).([]model.Submission)
	}).Return(nil)

	var messages []model.ProjectMessage
	m.messages.On("CreateBatch", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		messages = args.Get(1).([]model.ProjectMessage)
	}).Return(nil)

	var steps []string
	out, err := m.service().Import(context.Background(), ImportInput{
		Archive:  bytes.NewReader(data),
		Size:     int64(len(data)),
		UserID:   importer,
		Progress: func(step string) { steps = append(steps, step) },
	})
	require.NoError(t, err)

	assert.Equal(t, groupID, out.GroupID)
	assert.Equal(t, "Capstone Team", out.ProjectName)
	assert.Equal(t, 1, out.FilesRestored)
	assert.Equal(t, 1, out.MessagesRestored)

	// Only the resolvable archived member is re-linked; the unresolved one
	// and the importer themselves are dropped from the batch insert.
	require.Len(t, restoredMembers, 1)
	assert.Equal(t, memberID, restoredMembers[0].UserID)
	assert.Equal(t, model.RoleMember, restoredMembers[0].Role)

	// The attachment lands under a fresh key owned by the importer.
	assert.True(t, strings.HasPrefix(uploadedKey, fmt.Sprintf("%s/%s/", importer, groupID)))
	assert.True(t, strings.HasSuffix(uploadedKey, ".pdf"))
	assert.NotContains(t, uploadedKey, "report")

	require.NotNil(t, createdStage)
	assert.Equal(t, stageName, createdStage.Name)
	assert.Equal(t, groupID, createdStage.GroupID)
	require.NotNil(t, createdStage.StartDate)

	require.NotNil(t, createdTask)
	assert.Equal(t, model.TaskOriginRestored, createdTask.Origin)
	assert.Equal(t, importer, createdTask.CreatedBy)
	require.NotNil(t, createdTask.StageID)
	assert.Equal(t, createdStage.ID, *createdTask.StageID)

	// The JSON submission payload now points at the re-uploaded key.
	require.NotNil(t, createdTask.SubmissionLink)
	var items []map[string]any
	require.NoError(t, json.Unmarshal([]byte(*createdTask.SubmissionLink), &items))
	require.Len(t, items, 1)
	assert.Equal(t, uploadedKey, items[0]["file_path"])

	require.Len(t, assignments, 1)
	assert.Equal(t, memberID, assignments[0].UserID)
	require.Len(t, scores, 1)
	assert.Equal(t, 8.5, scores[0].FinalScore)
	require.Len(t, submissions, 1)
	require.NotNil(t, submissions[0].FilePath)
	assert.Equal(t, uploadedKey, *submissions[0].FilePath)
	assert.Equal(t, time.Date(2026, 1, 11, 10, 0, 0, 0, time.UTC), submissions[0].SubmittedAt.UTC())

	require.Len(t, messages, 1)
	assert.Equal(t, "done", messages[0].Content)
	assert.Equal(t, memberID, messages[0].UserID)

	assert.Equal(t, []string{
		"reading archive", "creating project", "adding members",
		"restoring files", "creating stages", "restoring tasks",
		"restoring messages", "done",
	}, steps)
}

func TestBackupService_Import_UnknownStageAndUnmappedPath(t *testing.T) {
	importer := uuid.New()
	groupID := uuid.New()

	missing := "Never Exported"
	link := `[{"type":"file","file_path":"gone/elsewhere.png","file_name":"elsewhere.png"}]`
	manifest := &archive.Manifest{
		Version:     archive.Version,
		ProjectName: "Demo",
		Group:       archive.Group{Name: "Demo"},
		Tasks: []archive.Task{
			{Title: "Loose task", Status: model.TaskStatusTodo, StageName: &missing, SubmissionLink: strp(link)},
		},
	}
	data := buildArchive(t, manifest, nil)

	m := newBackupMocks()
	m.groups.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Group).ID = groupID
	}).Return(nil)
	m.profiles.On("ListByStudentIDs", mock.Anything, mock.Anything).Return(nil, nil)
	m.groups.On("CreateMember", mock.Anything, mock.Anything).Return(nil)
	m.groups.On("CreateMembers", mock.Anything, mock.Anything).Return(nil)

	var createdTask *model.Task
	m.tasks.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		createdTask = args.Get(1).(*model.Task)
	}).Return(nil)
	m.tasks.On("CreateAssignments", mock.Anything, mock.Anything).Return(nil)
	m.tasks.On("CreateScores", mock.Anything, mock.Anything).Return(nil)
	m.tasks.On("CreateSubmissions", mock.Anything, mock.Anything).Return(nil)

	out, err := m.service().Import(context.Background(), ImportInput{
		Archive: bytes.NewReader(data),
		Size:    int64(len(data)),
		UserID:  importer,
	})
	require.NoError(t, err)
	assert.Zero(t, out.FilesRestored)
	assert.Zero(t, out.MessagesRestored)

	// A stage name with no restored stage leaves the task unstaged, and a
	// path with no mapping keeps its original value byte for byte.
	require.NotNil(t, createdTask)
	assert.Nil(t, createdTask.StageID)
	require.NotNil(t, createdTask.SubmissionLink)
	assert.Equal(t, link, *createdTask.SubmissionLink)

	m.messages.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestBackupService_Import_TaskCreateFailureSkipsChildren(t *testing.T) {
	importer := uuid.New()
	groupID := uuid.New()
	memberID := uuid.New()

	manifest := &archive.Manifest{
		Version:     archive.Version,
		ProjectName: "Demo",
		Group:       archive.Group{Name: "Demo"},
		Members: []archive.Member{
			{UserID: uuid.NewString(), Role: model.RoleMember, Profile: archive.MemberProfile{StudentID: "SV001"}},
		},
		Tasks: []archive.Task{
			{
				Title:       "Broken",
				Status:      model.TaskStatusTodo,
				Assignments: []archive.Assignment{{StudentID: "SV001"}},
			},
		},
	}
	data := buildArchive(t, manifest, nil)

	m := newBackupMocks()
	m.groups.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Group).ID = groupID
	}).Return(nil)
	m.profiles.On("ListByStudentIDs", mock.Anything, mock.Anything).Return([]model.Profile{
		{ID: memberID, StudentID: "SV001"},
	}, nil)
	m.groups.On("CreateMember", mock.Anything, mock.Anything).Return(nil)
	m.groups.On("CreateMembers", mock.Anything, mock.Anything).Return(nil)
	m.tasks.On("Create", mock.Anything, mock.Anything).Return(errors.New("constraint violation"))

	out, err := m.service().Import(context.Background(), ImportInput{
		Archive: bytes.NewReader(data),
		Size:    int64(len(data)),
		UserID:  importer,
	})
	require.NoError(t, err)
	assert.Equal(t, groupID, out.GroupID)

	m.tasks.AssertNotCalled(t, "CreateAssignments", mock.Anything, mock.Anything)
	m.tasks.AssertNotCalled(t, "CreateScores", mock.Anything, mock.Anything)
	m.tasks.AssertNotCalled(t, "CreateSubmissions", mock.Anything, mock.Anything)
}

func TestNewStorageName(t *testing.T) {
	assert.True(t, strings.HasSuffix(newStorageName("report.PDF"), ".pdf"))
	assert.True(t, strings.HasSuffix(newStorageName("no-extension"), ".bin"))
	assert.NotEqual(t, newStorageName("a.txt"), newStorageName("a.txt"))
}
