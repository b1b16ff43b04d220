package worker

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ewilliams-labs/enisai/internal/core/domain"
)

type recordingRepo struct {
	mu      sync.Mutex
	saved   []string
	saveErr error
	block   chan struct{}
}

func (r *recordingRepo) Save(ctx context.Context, a domain.Analysis) error {
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved = append(r.saved, a.ID)
	return nil
}

func (r *recordingRepo) GetByID(ctx context.Context, id string) (domain.Analysis, error) {
	return domain.Analysis{}, domain.ErrNotFound
}

func (r *recordingRepo) List(ctx context.Context, limit int) ([]domain.Analysis, error) {
	return nil, nil
}

func (r *recordingRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.saved)
}

func TestPool_RecordAndStopDrains(t *testing.T) {
	repo := &recordingRepo{}
	p := NewPool(repo, 10, nil)
	p.Start(2)

	for _, id := range []string{"a", "b", "c"} {
		p.Record(domain.Analysis{ID: id})
	}
	p.Stop()

	if got := repo.count(); got != 3 {
		t.Fatalf("expected 3 saved analyses, got %d", got)
	}
}

func TestPool_DropsWhenFull(t *testing.T) {
	repo := &recordingRepo{block: make(chan struct{})}
	p := NewPool(repo, 1, nil)

	// No workers yet: the first job fills the queue, the second is dropped.
	p.Record(domain.Analysis{ID: "kept"})
	p.Record(domain.Analysis{ID: "dropped"})

	close(repo.block)
	p.Start(1)
	p.Stop()

	if got := repo.count(); got != 1 {
		t.Fatalf("expected 1 saved analysis, got %d", got)
	}
}

func TestPool_RecordAfterStop(t *testing.T) {
	repo := &recordingRepo{}
	p := NewPool(repo, 1, nil)
	p.Start(1)
	p.Stop()
	p.Stop()

	p.Record(domain.Analysis{ID: "late"})
	if got := repo.count(); got != 0 {
		t.Fatalf("expected nothing saved after stop, got %d", got)
	}
}

func TestPool_SaveErrorDoesNotStopWorkers(t *testing.T) {
	repo := &recordingRepo{saveErr: errors.New("db down")}
	p := NewPool(repo, 4, nil)
	p.Start(1)
	p.Record(domain.Analysis{ID: "x"})
	p.Record(domain.Analysis{ID: "y"})
	p.Stop()

	if got := repo.count(); got != 0 {
		t.Fatalf("expected no saved analyses, got %d", got)
	}
}
