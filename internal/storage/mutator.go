package storage

import (
	"context"

	"github.com/sandeepkv93/trackd/internal/engine"
	"github.com/sandeepkv93/trackd/internal/model"
)

// ApplicationMutator exposes the repository's per-record writes through
// the engine's bulk-action contract.
type ApplicationMutator struct {
	Repo Repository
}

var _ engine.Mutator = ApplicationMutator{}

func (m ApplicationMutator) SetStatus(ctx context.Context, id string, status model.Status) error {
	return m.Repo.SetApplicationStatus(ctx, id, string(status))
}

func (m ApplicationMutator) SetPriority(ctx context.Context, id string, priority model.Priority) error {
	return m.Repo.SetApplicationPriority(ctx, id, string(priority))
}

func (m ApplicationMutator) Delete(ctx context.Context, id string) error {
	return m.Repo.DeleteApplication(ctx, id)
}
