package runlog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/scenestack/scenestack/pkg/errors"
	"github.com/scenestack/scenestack/pkg/stack"
)

func testStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func record(id string, created time.Time) *Record {
	return &Record{
		ID:         id,
		CreatedAt:  created,
		Scene:      "scene.json",
		PlanDigest: "digest",
		Seed:       42,
		Stacks:     []stack.Stack{{Group: "stack001", Members: []string{"stack001_base"}}},
	}
}

func TestAppendGet(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	rec := record("run-a", time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	if err := store.Append(ctx, rec); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	got, err := store.Get(ctx, "run-a")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ID != "run-a" || got.Scene != "scene.json" || got.Seed != 42 {
		t.Errorf("Get() = %+v, want stored record", got)
	}
	if len(got.Stacks) != 1 || got.Stacks[0].Group != "stack001" {
		t.Errorf("Get() stacks = %+v, want stack001", got.Stacks)
	}
	if !got.CreatedAt.Equal(rec.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, rec.CreatedAt)
	}
}

func TestGetMissing(t *testing.T) {
	store := testStore(t)

	_, err := store.Get(context.Background(), "nope")
	if err == nil {
		t.Fatal("Get() expected error for missing run")
	}
	if got := errors.GetCode(err); got != errors.ErrCodeRunNotFound {
		t.Errorf("GetCode() = %v, want %v", got, errors.ErrCodeRunNotFound)
	}
}

func TestAppendBadID(t *testing.T) {
	store := testStore(t)

	err := store.Append(context.Background(), record("../evil", time.Now()))
	if err == nil {
		t.Fatal("Append() expected error for path-breaking id")
	}
	if got := errors.GetCode(err); got != errors.ErrCodeInvalidInput {
		t.Errorf("GetCode() = %v, want %v", got, errors.ErrCodeInvalidInput)
	}
}

func TestListNewestFirst(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for _, rec := range []*Record{
		record("run-a", base),
		record("run-c", base.Add(2*time.Hour)),
		record("run-b", base.Add(time.Hour)),
	} {
		if err := store.Append(ctx, rec); err != nil {
			t.Fatalf("Append(%q) error = %v", rec.ID, err)
		}
	}

	records, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	var ids []string
	for _, rec := range records {
		ids = append(ids, rec.ID)
	}
	want := []string{"run-c", "run-b", "run-a"}
	if len(ids) != len(want) {
		t.Fatalf("List() returned %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}

func TestListSkipsJunk(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if err := store.Append(ctx, record("run-a", time.Now())); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	junk := filepath.Join(store.Path(), "junk.json")
	if err := os.WriteFile(junk, []byte("not json"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	records, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(records) != 1 || records[0].ID != "run-a" {
		t.Errorf("List() = %+v, want only run-a", records)
	}
}

func TestPrune(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"run-a", "run-b", "run-c"} {
		if err := store.Append(ctx, record(id, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("Append(%q) error = %v", id, err)
		}
	}

	if err := store.Prune(ctx, 1); err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	records, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(records) != 1 || records[0].ID != "run-c" {
		t.Errorf("List() after Prune(1) = %+v, want only run-c", records)
	}

	if err := store.Prune(ctx, 0); err != nil {
		t.Fatalf("Prune(0) error = %v", err)
	}
	records, err = store.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("List() after Prune(0) = %+v, want empty", records)
	}

	if err := store.Prune(ctx, 5); err != nil {
		t.Fatalf("Prune(5) on empty store error = %v", err)
	}
}

func TestPruneNegative(t *testing.T) {
	store := testStore(t)

	err := store.Prune(context.Background(), -1)
	if err == nil {
		t.Fatal("Prune() expected error for negative keep")
	}
	if got := errors.GetCode(err); got != errors.ErrCodeInvalidInput {
		t.Errorf("GetCode() = %v, want %v", got, errors.ErrCodeInvalidInput)
	}
}

func TestFromResult(t *testing.T) {
	res := &stack.Result{
		RunID: "run-x",
		Seed:  7,
		Stacks: []stack.Stack{
			{Group: "stack001", Members: []string{"stack001_base", "stack001_top"}},
		},
	}

	rec := FromResult(res, "scene.json", "abc123")
	if rec.ID != "run-x" || rec.Seed != 7 || rec.Scene != "scene.json" || rec.PlanDigest != "abc123" {
		t.Errorf("FromResult() = %+v, want result fields copied", rec)
	}
	if rec.CreatedAt.IsZero() {
		t.Error("FromResult() CreatedAt is zero")
	}
	if len(rec.Stacks) != 1 {
		t.Errorf("len(Stacks) = %d, want 1", len(rec.Stacks))
	}
}
