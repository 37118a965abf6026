// Package runlog records build runs.
//
// Every successful build appends a Record tying the run id to the scene it
// ran against, the digest of the plan that produced it, and the assembled
// stacks. Records make builds auditable and reproducible: the digest
// identifies the exact plan, and the seed replays the exact draws.
//
// # Usage
//
// Create a store and append a record after a build:
//
//	store, err := runlog.NewFileStore("")
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	err = store.Append(ctx, runlog.FromResult(res, scenePath, p.Digest()))
//
// List records newest first:
//
//	records, err := store.List(ctx)
package runlog

import (
	"context"
	"time"

	"github.com/scenestack/scenestack/pkg/stack"
)

// Record describes one build run.
type Record struct {
	ID         string        `json:"id"`
	CreatedAt  time.Time     `json:"created_at"`
	Scene      string        `json:"scene"`
	PlanDigest string        `json:"plan_digest"`
	Seed       uint64        `json:"seed"`
	Stacks     []stack.Stack `json:"stacks"`
}

// FromResult builds a record for a finished run.
func FromResult(res *stack.Result, scene, planDigest string) *Record {
	return &Record{
		ID:         res.RunID,
		CreatedAt:  time.Now(),
		Scene:      scene,
		PlanDigest: planDigest,
		Seed:       res.Seed,
		Stacks:     res.Stacks,
	}
}

// Store is the interface for run record storage backends.
type Store interface {
	// Append stores a record.
	Append(ctx context.Context, rec *Record) error

	// Get retrieves a record by run id.
	// Returns a NOT_FOUND_RUN error if no such record exists.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns all records, newest first.
	List(ctx context.Context) ([]*Record, error)

	// Prune removes all but the keep newest records.
	Prune(ctx context.Context, keep int) error

	// Close releases store resources.
	Close() error
}
