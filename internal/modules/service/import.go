package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/uniteam-dev/uniteam/internal/modules/model"
	"github.com/uniteam-dev/uniteam/internal/pkg/archive"
	"github.com/uniteam-dev/uniteam/internal/pkg/utils"
)

// ImportStageFunc receives human-readable step descriptions while an import
// run advances.
type ImportStageFunc func(step string)

type ImportInput struct {
	Archive io.ReaderAt
	Size    int64

	// UserID is the invoking user; they own the new group and are always
	// added as leader regardless of their role in the archive.
	UserID uuid.UUID

	Progress ImportStageFunc
}

type ImportOutput struct {
	GroupID          uuid.UUID
	ProjectName      string
	FilesRestored    int
	MessagesRestored int
}

// Import reconstructs a brand-new group from an archive. Everything up to
// and including group creation is fatal; after that each entity class is
// best-effort per item, so a run can finish partially populated. Members are
// re-linked by student id; unresolved members and everything attributed to
// them are silently dropped.
func (s *backupService) Import(ctx context.Context, in ImportInput) (*ImportOutput, error) {
	report := in.Progress
	if report == nil {
		report = func(string) {}
	}

	report("reading archive")
	rd, err := archive.NewReader(in.Archive, in.Size)
	if err != nil {
		return nil, err
	}
	m := rd.Manifest()

	report("creating project")
	group, err := s.createGroupCopy(ctx, m, in.UserID)
	if err != nil {
		return nil, err
	}

	report("adding members")
	userByStudent := s.restoreMembers(ctx, m, group.ID, in.UserID)

	report("restoring files")
	pathMap := s.restoreFiles(ctx, rd, m, group.ID, in.UserID)

	report("creating stages")
	stageByName := s.restoreStages(ctx, m, group.ID)

	report("restoring tasks")
	s.restoreTasks(ctx, m, group.ID, in.UserID, userByStudent, stageByName, pathMap)

	report("restoring messages")
	messagesRestored := s.restoreMessages(ctx, m, group.ID, userByStudent)

	report("done")
	return &ImportOutput{
		GroupID:          group.ID,
		ProjectName:      m.ProjectName,
		FilesRestored:    len(pathMap),
		MessagesRestored: messagesRestored,
	}, nil
}

func (s *backupService) createGroupCopy(ctx context.Context, m *archive.Manifest, userID uuid.UUID) (*model.Group, error) {
	slug, err := utils.Slugify(m.Group.Name)
	if err != nil {
		return nil, fmt.Errorf("generate slug: %w", err)
	}

	group := &model.Group{
		Name:            m.Group.Name + " (copy)",
		Description:     m.Group.Description,
		ClassCode:       m.Group.ClassCode,
		InstructorName:  m.Group.InstructorName,
		InstructorEmail: m.Group.InstructorEmail,
		AdditionalInfo:  m.Group.AdditionalInfo,
		ChatLink:        m.Group.ChatLink,
		ImageURL:        m.Group.ImageURL,
		Slug:            slug,
		LeaderID:        &userID,
		CreatedBy:       userID,
	}
	if err := s.groups.Create(ctx, group); err != nil {
		return nil, fmt.Errorf("create group copy: %w", err)
	}
	return group, nil
}

// restoreMembers resolves archived members against existing profiles by
// student id and inserts the resolvable ones. The invoking user always joins
// as leader; archived members that resolve to them are skipped as
// duplicates, unresolved ones are dropped without error.
func (s *backupService) restoreMembers(ctx context.Context, m *archive.Manifest, groupID, userID uuid.UUID) map[string]uuid.UUID {
	studentIDs := make([]string, 0, len(m.Members))
	for _, mem := range m.Members {
		if mem.Profile.StudentID != "" {
			studentIDs = append(studentIDs, mem.Profile.StudentID)
		}
	}

	userByStudent := make(map[string]uuid.UUID)
	profiles, err := s.profiles.ListByStudentIDs(ctx, studentIDs)
	if err != nil {
		s.log.Sugar().Warnw("could not resolve member profiles", "err", err)
	}
	for _, p := range profiles {
		userByStudent[p.StudentID] = p.ID
	}

	if err := s.groups.CreateMember(ctx, &model.GroupMember{
		GroupID: groupID,
		UserID:  userID,
		Role:    model.RoleLeader,
	}); err != nil {
		s.log.Sugar().Warnw("could not add importing user as leader", "err", err)
	}

	inserts := make([]model.GroupMember, 0, len(m.Members))
	for _, mem := range m.Members {
		uid, ok := userByStudent[mem.Profile.StudentID]
		if !ok || uid == userID {
			continue
		}
		inserts = append(inserts, model.GroupMember{
			GroupID: groupID,
			UserID:  uid,
			Role:    mem.Role,
		})
	}
	if err := s.groups.CreateMembers(ctx, inserts); err != nil {
		s.log.Sugar().Warnw("could not restore members", "err", err)
	}

	return userByStudent
}

// newStorageName keeps only the extension of the original file name; the
// rest of the key is a fresh uuid so storage never sees the archived
// character set again.
func newStorageName(originalName string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(originalName), "."))
	if ext == "" {
		ext = "bin"
	}
	return fmt.Sprintf("%s.%s", uuid.New(), ext)
}

// restoreFiles re-uploads every archived attachment under a fresh storage
// key and returns the original->new path map. A failed extract or upload
// just leaves that path unmapped; downstream references then keep their
// original, now-dangling value.
func (s *backupService) restoreFiles(ctx context.Context, rd *archive.Reader, m *archive.Manifest, groupID, userID uuid.UUID) map[string]string {
	pathMap := make(map[string]string)
	for _, f := range m.Files {
		data, err := rd.ReadFile(f.ZipPath)
		if err != nil {
			s.log.Sugar().Warnw("could not restore file, skipping", "file", f.FileName, "err", err)
			continue
		}
		newPath := fmt.Sprintf("%s/%s/%s", userID, groupID, newStorageName(f.FileName))
		if err := s.store.Upload(ctx, newPath, data, ""); err != nil {
			s.log.Sugar().Warnw("could not upload file, skipping", "file", f.FileName, "err", err)
			continue
		}
		pathMap[f.OriginalPath] = newPath
	}
	return pathMap
}

func (s *backupService) restoreStages(ctx context.Context, m *archive.Manifest, groupID uuid.UUID) map[string]uuid.UUID {
	stageByName := make(map[string]uuid.UUID, len(m.Stages))
	for _, st := range m.Stages {
		stage := &model.Stage{
			ID:          uuid.New(),
			GroupID:     groupID,
			Name:        st.Name,
			Description: st.Description,
			OrderIndex:  st.OrderIndex,
			StartDate:   parseTimePtr(st.StartDate),
			EndDate:     parseTimePtr(st.EndDate),
		}
		if err := s.stages.Create(ctx, stage); err != nil {
			s.log.Sugar().Warnw("could not restore stage, skipping", "stage", st.Name, "err", err)
			continue
		}
		stageByName[st.Name] = stage.ID
	}
	return stageByName
}

func (s *backupService) restoreTasks(
	ctx context.Context,
	m *archive.Manifest,
	groupID, userID uuid.UUID,
	userByStudent map[string]uuid.UUID,
	stageByName map[string]uuid.UUID,
	pathMap map[string]string,
) {
	for _, t := range m.Tasks {
		var stageID *uuid.UUID
		if t.StageName != nil {
			if id, ok := stageByName[*t.StageName]; ok {
				sid := id
				stageID = &sid
			}
		}

		slug, err := utils.Slugify(t.Title)
		if err != nil {
			s.log.Sugar().Warnw("could not restore task, skipping", "task", t.Title, "err", err)
			continue
		}

		task := &model.Task{
			GroupID:        groupID,
			StageID:        stageID,
			Title:          t.Title,
			Description:    t.Description,
			Status:         t.Status,
			Deadline:       parseTimePtr(t.Deadline),
			SubmissionLink: archive.RewriteSubmissionLink(t.SubmissionLink, pathMap),
			Slug:           slug,
			CreatedBy:      userID,
			Origin:         model.TaskOriginRestored,
		}
		if err := s.tasks.Create(ctx, task); err != nil {
			s.log.Sugar().Warnw("could not restore task, skipping", "task", t.Title, "err", err)
			continue
		}

		assignments := make([]model.TaskAssignment, 0, len(t.Assignments))
		for _, a := range t.Assignments {
			if uid, ok := userByStudent[a.StudentID]; ok {
				assignments = append(assignments, model.TaskAssignment{TaskID: task.ID, UserID: uid})
			}
		}
		if err := s.tasks.CreateAssignments(ctx, assignments); err != nil {
			s.log.Sugar().Warnw("could not restore assignments", "task", t.Title, "err", err)
		}

		scores := make([]model.TaskScore, 0, len(t.Scores))
		for _, sc := range t.Scores {
			uid, ok := userByStudent[sc.StudentID]
			if !ok {
				continue
			}
			scores = append(scores, model.TaskScore{
				TaskID:         task.ID,
				UserID:         uid,
				BaseScore:      sc.BaseScore,
				LatePenalty:    sc.LatePenalty,
				ReviewPenalty:  sc.ReviewPenalty,
				ReviewCount:    sc.ReviewCount,
				EarlyBonus:     sc.EarlyBonus,
				BugHunterBonus: sc.BugHunterBonus,
				FinalScore:     sc.FinalScore,
			})
		}
		if err := s.tasks.CreateScores(ctx, scores); err != nil {
			s.log.Sugar().Warnw("could not restore scores", "task", t.Title, "err", err)
		}

		subs := make([]model.Submission, 0, len(t.Submissions))
		for _, sub := range t.Submissions {
			uid, ok := userByStudent[sub.StudentID]
			if !ok {
				continue
			}
			filePath := sub.FilePath
			if filePath != nil {
				if np, ok := pathMap[*filePath]; ok {
					npCopy := np
					filePath = &npCopy
				}
			}
			subType := sub.SubmissionType
			if subType == "" {
				subType = model.SubmissionTypeLink
			}
			item := model.Submission{
				TaskID:         task.ID,
				UserID:         uid,
				SubmissionLink: archive.RewriteSubmissionLink(sub.SubmissionLink, pathMap),
				Note:           sub.Note,
				SubmissionType: subType,
				FilePath:       filePath,
				FileName:       sub.FileName,
				FileSize:       sub.FileSize,
			}
			if t := parseTime(sub.SubmittedAt); !t.IsZero() {
				item.SubmittedAt = t
			}
			subs = append(subs, item)
		}
		if err := s.tasks.CreateSubmissions(ctx, subs); err != nil {
			s.log.Sugar().Warnw("could not restore submissions", "task", t.Title, "err", err)
		}
	}
}

func (s *backupService) restoreMessages(ctx context.Context, m *archive.Manifest, groupID uuid.UUID, userByStudent map[string]uuid.UUID) int {
	inserts := make([]model.ProjectMessage, 0, len(m.Messages))
	for _, msg := range m.Messages {
		uid, ok := userByStudent[msg.StudentID]
		if !ok {
			continue
		}
		source := msg.SourceType
		if source == "" {
			source = model.MessageSourceDirect
		}
		item := model.ProjectMessage{
			GroupID:    groupID,
			UserID:     uid,
			Content:    msg.Content,
			SourceType: source,
		}
		if t := parseTime(msg.CreatedAt); !t.IsZero() {
			item.CreatedAt = t
		}
		inserts = append(inserts, item)
	}
	if len(inserts) == 0 {
		return 0
	}
	if err := s.messages.CreateBatch(ctx, inserts); err != nil {
		s.log.Sugar().Warnw("could not restore messages", "err", err)
		return 0
	}
	return len(inserts)
}
