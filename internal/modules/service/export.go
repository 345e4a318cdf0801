package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uniteam-dev/uniteam/internal/modules/model"
	"github.com/uniteam-dev/uniteam/internal/pkg/archive"
	"github.com/uniteam-dev/uniteam/internal/pkg/progress"
	"github.com/uniteam-dev/uniteam/internal/pkg/utils"
	"golang.org/x/sync/errgroup"
)

type ExportInput struct {
	GroupID uuid.UUID

	// Progress receives coarse percentage milestones; nil means no reporting.
	Progress progress.Func
}

type ExportOutput struct {
	Archive      []byte
	FileName     string
	ProjectName  string
	FileCount    int
	MessageCount int
}

type exportFile struct {
	Path string
	Name string
	Size int64
}

// Export assembles a point-in-time snapshot of one group into a zip archive.
// Reads only; a missing group is fatal, a failed attachment download just
// drops that attachment from the archive.
func (s *backupService) Export(ctx context.Context, in ExportInput) (*ExportOutput, error) {
	report := in.Progress
	if report == nil {
		report = progress.Noop
	}

	group, err := s.groups.Get(ctx, in.GroupID)
	if err != nil {
		return nil, fmt.Errorf("load group: %w", err)
	}
	report(10)

	// Members, stages, tasks and messages are independent reads; fetch them
	// as one fan-out batch and join.
	var (
		members []model.GroupMember
		stages  []model.Stage
		tasks   []model.Task
		msgs    []model.ProjectMessage
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { members, err = s.groups.ListMembers(gctx, in.GroupID); return })
	g.Go(func() (err error) { stages, err = s.stages.ListByGroup(gctx, in.GroupID); return })
	g.Go(func() (err error) { tasks, err = s.tasks.ListByGroup(gctx, in.GroupID); return })
	g.Go(func() (err error) { msgs, err = s.messages.ListByGroup(gctx, in.GroupID); return })
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load group data: %w", err)
	}
	report(30)

	memberIDs := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		memberIDs = append(memberIDs, m.UserID)
	}
	profiles, err := s.profiles.ListByUserIDs(ctx, memberIDs)
	if err != nil {
		return nil, fmt.Errorf("load profiles: %w", err)
	}
	profileByID := make(map[uuid.UUID]model.Profile, len(profiles))
	studentID := make(map[uuid.UUID]string, len(profiles))
	for _, p := range profiles {
		profileByID[p.ID] = p
		studentID[p.ID] = p.StudentID
	}

	taskIDs := make([]uuid.UUID, 0, len(tasks))
	for _, t := range tasks {
		taskIDs = append(taskIDs, t.ID)
	}
	var (
		assignments []model.TaskAssignment
		scores      []model.TaskScore
		submissions []model.Submission
	)
	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() (err error) { assignments, err = s.tasks.ListAssignmentsByTasks(gctx, taskIDs); return })
	g.Go(func() (err error) { scores, err = s.tasks.ListScoresByTasks(gctx, taskIDs); return })
	g.Go(func() (err error) { submissions, err = s.tasks.ListSubmissionsByTasks(gctx, taskIDs); return })
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load task data: %w", err)
	}
	report(50)

	files := collectFiles(tasks, submissions)

	// Sequential transfer so the running percentage stays meaningful.
	w := archive.NewWriter()
	mapping := make([]archive.FileEntry, 0, len(files))
	for i, f := range files {
		data, err := s.store.Download(ctx, f.Path)
		if err != nil {
			s.log.Sugar().Warnw("could not download file, skipping", "path", f.Path, "err", err)
		} else {
			zipPath, err := w.AddFile(f.Path, data)
			if err != nil {
				s.log.Sugar().Warnw("could not add file to archive, skipping", "path", f.Path, "err", err)
			} else {
				mapping = append(mapping, archive.FileEntry{
					OriginalPath: f.Path,
					FileName:     f.Name,
					FileSize:     f.Size,
					ZipPath:      zipPath,
				})
			}
		}
		report(60 + (i+1)*20/len(files))
	}
	report(85)

	manifest := s.composeManifest(group, members, profileByID, studentID, stages, tasks, assignments, scores, submissions, msgs, mapping)

	data, err := w.Finalize(manifest)
	if err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}
	report(95)

	fileName := fmt.Sprintf("%s_%s.zip", utils.SanitizeName(group.Name), time.Now().UTC().Format(dateLayout))
	report(100)

	return &ExportOutput{
		Archive:      data,
		FileName:     fileName,
		ProjectName:  group.Name,
		FileCount:    len(mapping),
		MessageCount: len(manifest.Messages),
	}, nil
}

// collectFiles scans task submission payloads and submission-history rows
// for attachment paths and deduplicates by path. Order follows first
// appearance; the recorded name and size follow the last appearance.
func collectFiles(tasks []model.Task, submissions []model.Submission) []exportFile {
	var order []string
	byPath := make(map[string]exportFile)
	add := func(f exportFile) {
		if f.Path == "" {
			return
		}
		if _, seen := byPath[f.Path]; !seen {
			order = append(order, f.Path)
		}
		byPath[f.Path] = f
	}

	for _, t := range tasks {
		for _, it := range archive.ParseSubmissionItems(t.SubmissionLink) {
			add(exportFile{Path: it.FilePath, Name: it.FileName, Size: it.FileSize})
		}
	}
	for _, sub := range submissions {
		if sub.FilePath != nil && sub.FileName != nil {
			var size int64
			if sub.FileSize != nil {
				size = *sub.FileSize
			}
			add(exportFile{Path: *sub.FilePath, Name: *sub.FileName, Size: size})
		}
		for _, it := range archive.ParseSubmissionItems(sub.SubmissionLink) {
			add(exportFile{Path: it.FilePath, Name: it.FileName, Size: it.FileSize})
		}
	}

	out := make([]exportFile, 0, len(order))
	for _, p := range order {
		out = append(out, byPath[p])
	}
	return out
}

// composeManifest re-expresses every row through natural keys: people by
// student id, stages by name, attachments by storage path. Surrogate ids do
// not cross the archive boundary (the member user_id is carried as advisory
// legacy data only).
func (s *backupService) composeManifest(
	group *model.Group,
	members []model.GroupMember,
	profileByID map[uuid.UUID]model.Profile,
	studentID map[uuid.UUID]string,
	stages []model.Stage,
	tasks []model.Task,
	assignments []model.TaskAssignment,
	scores []model.TaskScore,
	submissions []model.Submission,
	msgs []model.ProjectMessage,
	mapping []archive.FileEntry,
) *archive.Manifest {
	m := &archive.Manifest{
		Version:     archive.Version,
		ExportedAt:  formatTime(time.Now()),
		ProjectName: group.Name,
		Group: archive.Group{
			Name:            group.Name,
			Description:     group.Description,
			ClassCode:       group.ClassCode,
			InstructorName:  group.InstructorName,
			InstructorEmail: group.InstructorEmail,
			AdditionalInfo:  group.AdditionalInfo,
			ChatLink:        group.ChatLink,
			LeaderID:        nil,
			CreatedBy:       group.CreatedBy.String(),
			CreatedAt:       formatTime(group.CreatedAt),
			UpdatedAt:       formatTime(group.UpdatedAt),
			ImageURL:        group.ImageURL,
		},
		Files: mapping,
	}

	m.Members = make([]archive.Member, 0, len(members))
	for _, mem := range members {
		p := profileByID[mem.UserID]
		m.Members = append(m.Members, archive.Member{
			UserID:   mem.UserID.String(),
			Role:     mem.Role,
			JoinedAt: formatTime(mem.JoinedAt),
			Profile: archive.MemberProfile{
				StudentID: p.StudentID,
				FullName:  p.FullName,
				Email:     p.Email,
			},
		})
	}

	stageName := make(map[uuid.UUID]string, len(stages))
	m.Stages = make([]archive.Stage, 0, len(stages))
	for _, st := range stages {
		stageName[st.ID] = st.Name
		m.Stages = append(m.Stages, archive.Stage{
			Name:        st.Name,
			Description: st.Description,
			OrderIndex:  st.OrderIndex,
			StartDate:   formatDatePtr(st.StartDate),
			EndDate:     formatDatePtr(st.EndDate),
			Tasks:       []archive.Task{},
		})
	}

	assignmentsByTask := make(map[uuid.UUID][]model.TaskAssignment)
	for _, a := range assignments {
		assignmentsByTask[a.TaskID] = append(assignmentsByTask[a.TaskID], a)
	}
	scoresByTask := make(map[uuid.UUID][]model.TaskScore)
	for _, sc := range scores {
		scoresByTask[sc.TaskID] = append(scoresByTask[sc.TaskID], sc)
	}
	submissionsByTask := make(map[uuid.UUID][]model.Submission)
	for _, sub := range submissions {
		submissionsByTask[sub.TaskID] = append(submissionsByTask[sub.TaskID], sub)
	}

	m.Tasks = make([]archive.Task, 0, len(tasks))
	for _, t := range tasks {
		var sn *string
		if t.StageID != nil {
			if name, ok := stageName[*t.StageID]; ok {
				sn = &name
			}
		}

		at := archive.Task{
			Title:          t.Title,
			Description:    t.Description,
			Status:         t.Status,
			Deadline:       formatTimePtr(t.Deadline),
			SubmissionLink: t.SubmissionLink,
			StageName:      sn,
			Assignments:    []archive.Assignment{},
			Scores:         []archive.Score{},
			Submissions:    []archive.Submission{},
		}
		for _, a := range assignmentsByTask[t.ID] {
			at.Assignments = append(at.Assignments, archive.Assignment{StudentID: studentID[a.UserID]})
		}
		for _, sc := range scoresByTask[t.ID] {
			at.Scores = append(at.Scores, archive.Score{
				StudentID:      studentID[sc.UserID],
				BaseScore:      sc.BaseScore,
				LatePenalty:    sc.LatePenalty,
				ReviewPenalty:  sc.ReviewPenalty,
				ReviewCount:    sc.ReviewCount,
				EarlyBonus:     sc.EarlyBonus,
				BugHunterBonus: sc.BugHunterBonus,
				FinalScore:     sc.FinalScore,
			})
		}
		for _, sub := range submissionsByTask[t.ID] {
			at.Submissions = append(at.Submissions, archive.Submission{
				StudentID:      studentID[sub.UserID],
				SubmissionLink: sub.SubmissionLink,
				Note:           sub.Note,
				SubmittedAt:    formatTime(sub.SubmittedAt),
				SubmissionType: sub.SubmissionType,
				FilePath:       sub.FilePath,
				FileName:       sub.FileName,
				FileSize:       sub.FileSize,
			})
		}
		m.Tasks = append(m.Tasks, at)
	}

	m.Messages = make([]archive.Message, 0, len(msgs))
	for _, msg := range msgs {
		m.Messages = append(m.Messages, archive.Message{
			StudentID:  studentID[msg.UserID],
			Content:    msg.Content,
			SourceType: msg.SourceType,
			CreatedAt:  formatTime(msg.CreatedAt),
		})
	}

	return m
}
