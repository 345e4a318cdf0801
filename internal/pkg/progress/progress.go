// Package progress tracks coarse backup job progress so the UI can poll a
// percentage while a run is in flight. Values are advisory only; they carry
// no correctness weight.
package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Func receives percentage milestones (0-100). Services accept it as an
// injected dependency so tests can record call order without real I/O.
type Func func(percent int)

// Noop discards progress updates.
func Noop(int) {}

// Store keeps per-job percentages in redis with a short TTL.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb, ttl: 30 * time.Minute}
}

func key(jobID string) string { return fmt.Sprintf("backup:progress:%s", jobID) }

// Set records the current percentage for a job. Errors are returned so the
// caller can log them; a failed update never aborts the run.
func (s *Store) Set(ctx context.Context, jobID string, percent int) error {
	return s.rdb.Set(ctx, key(jobID), percent, s.ttl).Err()
}

// Get returns the last recorded percentage, or -1 when the job is unknown.
func (s *Store) Get(ctx context.Context, jobID string) (int, error) {
	v, err := s.rdb.Get(ctx, key(jobID)).Int()
	if err == redis.Nil {
		return -1, nil
	}
	if err != nil {
		return 0, err
	}
	return v, nil
}

// Tracker adapts a Store into a Func bound to one job id.
func (s *Store) Tracker(ctx context.Context, jobID string) Func {
	return func(percent int) {
		_ = s.Set(ctx, jobID, percent)
	}
}
