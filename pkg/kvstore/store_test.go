package kvstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenplan_backend/internal/model"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestSetGetItem(t *testing.T) {
	s := setupTestStore(t)

	require.NoError(t, s.SetItem("theme", "dark"))
	v, ok := s.GetItem("theme")
	assert.True(t, ok)
	assert.Equal(t, "dark", v)

	_, ok = s.GetItem("missing")
	assert.False(t, ok)
}

func TestSetItemOverwrites(t *testing.T) {
	s := setupTestStore(t)

	require.NoError(t, s.SetItem("streak", "3"))
	require.NoError(t, s.SetItem("streak", "4"))
	v, _ := s.GetItem("streak")
	assert.Equal(t, "4", v)
}

func TestUserKeyNamespacing(t *testing.T) {
	s := setupTestStore(t)

	require.NoError(t, s.SetItem(UserKey("alice", KeyTheme), "dark"))
	require.NoError(t, s.SetItem(UserKey("bob", KeyTheme), "light"))

	v, _ := s.GetItem(UserKey("alice", KeyTheme))
	assert.Equal(t, "dark", v)
	v, _ = s.GetItem(UserKey("bob", KeyTheme))
	assert.Equal(t, "light", v)
}

func TestRemoveItemIdempotent(t *testing.T) {
	s := setupTestStore(t)

	require.NoError(t, s.SetItem("x", "1"))
	require.NoError(t, s.RemoveItem("x"))
	require.NoError(t, s.RemoveItem("x"))
	_, ok := s.GetItem("x")
	assert.False(t, ok)
}

func TestCollectionRoundTrip(t *testing.T) {
	// 存后再取得到等价集合
	s := setupTestStore(t)
	tasks := []model.Task{
		{ID: "a", Title: "write report", Status: model.TaskPending, Progress: 40, CreatedAt: 1000},
		{ID: "b", Title: "review", Status: model.TaskCompleted, Progress: 100, CreatedAt: 2000, LastUpdated: 3000},
	}

	SaveCollection(s, UserKey("alice", KeyTasks), tasks)
	got := LoadCollection[model.Task](s, UserKey("alice", KeyTasks))
	assert.Equal(t, tasks, got)
}

func TestLoadCollectionAbsentKey(t *testing.T) {
	s := setupTestStore(t)
	got := LoadCollection[model.Task](s, "nothing-here")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLoadCollectionMalformedFailsSoft(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, s.SetItem("tasks", "{not json["))

	got := LoadCollection[model.Task](s, "tasks")
	assert.Empty(t, got)
}

func TestDurableAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, s.SetItem("streak", "9"))

	reopened, err := New(dir)
	require.NoError(t, err)
	v, ok := reopened.GetItem("streak")
	assert.True(t, ok)
	assert.Equal(t, "9", v)
}

func TestNoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, s.SetItem("theme", "light"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "theme", filepath.Base(entries[0].Name()))
}
