package migration_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/dangerclosesec/polar/policy/migration"
	"github.com/dangerclosesec/polar/policy/migration/mocks"
	"github.com/dangerclosesec/polar/policy/parser"
	"github.com/dangerclosesec/polar/policy/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func policyModel(t *testing.T, policy string) *migration.PolicyModel {
	t.Helper()
	src := term.NewSource("policy.polar", policy)
	lines, err := parser.ParseString(src)
	require.NoError(t, err)
	return migration.BuildModel(lines, src)
}

func TestMigratorApply(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()
	stored := policyModel(t, "f(1);")
	updated := policyModel(t, "f(1);\nf(2);")

	t.Run("applies a new version", func(t *testing.T) {
		store := mocks.NewMockStore(ctrl)
		gomock.InOrder(
			store.EXPECT().CurrentVersion(gomock.Any()).Return(3, nil),
			store.EXPECT().LoadModel(gomock.Any()).Return(stored, nil),
			store.EXPECT().ApplyModel(gomock.Any(), 4, "add f(2)", updated).Return(nil),
			store.EXPECT().RecordHistory(gomock.Any(), 4, true, "", gomock.Any()).Return(nil),
		)

		result, err := migration.NewMigrator(store, logger).Apply(ctx, updated, "add f(2)")
		require.NoError(t, err)
		assert.Equal(t, 4, result.Version)
		assert.Contains(t, result.Diff.Rules.Modified, "f/1")
	})

	t.Run("skips an unchanged policy", func(t *testing.T) {
		store := mocks.NewMockStore(ctrl)
		store.EXPECT().CurrentVersion(gomock.Any()).Return(3, nil)
		store.EXPECT().LoadModel(gomock.Any()).Return(policyModel(t, "f(1);"), nil)

		result, err := migration.NewMigrator(store, logger).Apply(ctx, stored, "noop")
		assert.ErrorIs(t, err, migration.ErrNoChanges)
		assert.Equal(t, 3, result.Version)
		assert.True(t, result.Diff.IsEmpty())
	})

	t.Run("records a failed apply", func(t *testing.T) {
		store := mocks.NewMockStore(ctrl)
		applyErr := errors.New("connection reset")
		gomock.InOrder(
			store.EXPECT().CurrentVersion(gomock.Any()).Return(0, nil),
			store.EXPECT().LoadModel(gomock.Any()).Return(migration.NewPolicyModel(), nil),
			store.EXPECT().ApplyModel(gomock.Any(), 1, "initial", updated).Return(applyErr),
			store.EXPECT().RecordHistory(gomock.Any(), 1, false, "connection reset", gomock.Any()).Return(errors.New("history unavailable")),
		)

		result, err := migration.NewMigrator(store, logger).Apply(ctx, updated, "initial")
		assert.ErrorIs(t, err, applyErr)
		assert.Nil(t, result)
	})

	t.Run("fails when the version is unavailable", func(t *testing.T) {
		store := mocks.NewMockStore(ctrl)
		store.EXPECT().CurrentVersion(gomock.Any()).Return(0, errors.New("no table"))

		_, err := migration.NewMigrator(store, logger).Apply(ctx, updated, "initial")
		assert.ErrorContains(t, err, "failed to get current version")
	})
}
