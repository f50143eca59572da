package migration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrNoChanges is returned when the applied policy matches the stored one
var ErrNoChanges = errors.New("no changes detected")

// Store persists versioned policy models
type Store interface {
	InitializeSchema(ctx context.Context) error
	CurrentVersion(ctx context.Context) (int, error)
	LoadModel(ctx context.Context) (*PolicyModel, error)
	ApplyModel(ctx context.Context, version int, description string, model *PolicyModel) error
	RecordHistory(ctx context.Context, version int, success bool, errorMsg, diff string) error
}

// Migrator applies policy models to a store
type Migrator struct {
	store  Store
	logger *slog.Logger
}

// NewMigrator creates a new migrator
func NewMigrator(store Store, logger *slog.Logger) *Migrator {
	return &Migrator{store: store, logger: logger}
}

// Result describes an applied migration
type Result struct {
	Version int
	Diff    *ModelDiff
}

// Apply diffs the model against the stored one and stores it as a new
// version. It returns ErrNoChanges without writing when they match.
func (m *Migrator) Apply(ctx context.Context, model *PolicyModel, description string) (*Result, error) {
	currentVersion, err := m.store.CurrentVersion(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current version: %w", err)
	}

	currentModel, err := m.store.LoadModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load current model: %w", err)
	}

	diff := GenerateDiff(currentModel, model)
	if diff.IsEmpty() {
		m.logger.Info("policy unchanged, migration skipped", "version", currentVersion)
		return &Result{Version: currentVersion, Diff: diff}, ErrNoChanges
	}

	newVersion := currentVersion + 1
	diffText := diff.String()

	if err := m.store.ApplyModel(ctx, newVersion, description, model); err != nil {
		m.recordHistory(ctx, newVersion, false, err.Error(), diffText)
		return nil, fmt.Errorf("failed to apply model: %w", err)
	}

	m.recordHistory(ctx, newVersion, true, "", diffText)
	m.logger.Info("policy migrated", "version", newVersion, "source", model.Source)

	return &Result{Version: newVersion, Diff: diff}, nil
}

func (m *Migrator) recordHistory(ctx context.Context, version int, success bool, errorMsg, diff string) {
	if err := m.store.RecordHistory(ctx, version, success, errorMsg, diff); err != nil {
		m.logger.Error("failed to record migration history", "version", version, "error", err)
	}
}
