package service

import (
	"context"
	"time"

	"github.com/uniteam-dev/uniteam/internal/modules/repo"
	"go.uber.org/zap"
)

// ObjectStore is the attachment transfer surface the backup pipeline needs
// from object storage. blob.S3Deps satisfies it.
type ObjectStore interface {
	Download(ctx context.Context, key string) ([]byte, error)
	Upload(ctx context.Context, key string, data []byte, contentType string) error
}

// BackupService packages a full project snapshot into a portable archive and
// reconstructs a fresh, independent project from one. Export is read-only;
// import is additive and never touches an existing project.
type BackupService interface {
	Export(ctx context.Context, in ExportInput) (*ExportOutput, error)
	Import(ctx context.Context, in ImportInput) (*ImportOutput, error)
}

type backupService struct {
	groups   repo.GroupRepo
	profiles repo.ProfileRepo
	stages   repo.StageRepo
	tasks    repo.TaskRepo
	messages repo.MessageRepo
	store    ObjectStore
	log      *zap.Logger
}

func NewBackupService(
	groups repo.GroupRepo,
	profiles repo.ProfileRepo,
	stages repo.StageRepo,
	tasks repo.TaskRepo,
	messages repo.MessageRepo,
	store ObjectStore,
	log *zap.Logger,
) BackupService {
	return &backupService{
		groups:   groups,
		profiles: profiles,
		stages:   stages,
		tasks:    tasks,
		messages: messages,
		store:    store,
		log:      log,
	}
}

const (
	dateLayout = "2006-01-02"
)

func formatTime(t time.Time) string { return t.UTC().Format(time.RFC3339) }

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(dateLayout)
	return &s
}

// parseTime accepts RFC3339 or date-only values; the zero time signals an
// unparseable or empty input.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t
	}
	return time.Time{}
}

func parseTimePtr(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t := parseTime(*s)
	if t.IsZero() {
		return nil
	}
	return &t
}
