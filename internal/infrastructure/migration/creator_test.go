package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMigrationWritesPair(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "Add Stock Index", "index on inventory_movements")
	require.NoError(t, err)

	assert.Len(t, mf.Version, 14)
	assert.Equal(t, filepath.Join(dir, mf.Version+"_add_stock_index.up.sql"), mf.UpPath)
	assert.Equal(t, filepath.Join(dir, mf.Version+"_add_stock_index.down.sql"), mf.DownPath)

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "-- Migration: Add Stock Index")
	assert.Contains(t, string(up), "-- Description: index on inventory_movements")

	down, err := os.ReadFile(mf.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "(Rollback)")
}

func TestCreateMigrationCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "migrations")

	_, err := CreateMigration(dir, "init", "")
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"20260101000001_init.up.sql",
		"20260101000001_init.down.sql",
		"20260102000001_add_debts.up.sql",
		"20260102000001_add_debts.down.sql",
		"notes.txt",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("--"), 0644))
	}

	names, err := ListMigrations(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"20260101000001_init", "20260102000001_add_debts"}, names)
}

func TestListMigrationsMissingDir(t *testing.T) {
	names, err := ListMigrations(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "add_users_table", slugify("Add Users Table"))
	assert.Equal(t, "fix_fk", slugify("fix--fk!!"))
	assert.Equal(t, "a_b", slugify("  a   b  "))
}
