package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenplan_backend/internal/model"
	"zenplan_backend/internal/util"
	"zenplan_backend/pkg/kvstore"
)

// fakeDocumentStore 记录所有写入，便于断言归并管线的远程副作用。
type fakeDocumentStore struct {
	mu       sync.Mutex
	doc      *model.UserDocument
	fetchErr error
	mergeErr error
	merges   []map[string]interface{}
}

func (f *fakeDocumentStore) Fetch(ctx context.Context, uid string) (*model.UserDocument, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	if f.doc == nil {
		return nil, util.ErrDocumentNotFound
	}
	return f.doc, nil
}

func (f *fakeDocumentStore) MergeSet(ctx context.Context, uid string, partial map[string]json.RawMessage) error {
	return f.mergeErr
}

func (f *fakeDocumentStore) MergeSetFields(ctx context.Context, uid string, fields map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mergeErr != nil {
		return f.mergeErr
	}
	f.merges = append(f.merges, fields)
	return nil
}

func (f *fakeDocumentStore) mergeCalls() []map[string]interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]map[string]interface{}, len(f.merges))
	copy(out, f.merges)
	return out
}

func newTestStore(t *testing.T) *kvstore.Store {
	t.Helper()
	kv, err := kvstore.New(t.TempDir())
	require.NoError(t, err)
	return kv
}

func seedTasks(t *testing.T, kv *kvstore.Store, uid string, tasks []model.Task) {
	t.Helper()
	kvstore.SaveCollection(kv, kvstore.UserKey(uid, kvstore.KeyTasks), tasks)
}

func TestOnIdentityChangeAnonymous(t *testing.T) {
	kv := newTestStore(t)
	docs := &fakeDocumentStore{}
	svc := NewSyncService(kv, docs)

	snap := svc.OnIdentityChange(context.Background(), nil)

	assert.Equal(t, PhaseAnonymous, snap.Phase)
	assert.Nil(t, snap.Identity)
	assert.Empty(t, snap.Tasks)
	assert.Empty(t, docs.mergeCalls())
}

func TestOnIdentityChangeFirstLoginUploadsLocal(t *testing.T) {
	kv := newTestStore(t)
	docs := &fakeDocumentStore{}
	svc := NewSyncService(kv, docs)

	local := []model.Task{
		{ID: "t1", Title: "早课", Status: model.TaskPending, CreatedAt: 1000},
	}
	seedTasks(t, kv, "u1", local)

	snap := svc.OnIdentityChange(context.Background(), &Identity{UID: "u1"})

	assert.Equal(t, PhaseReady, snap.Phase)
	assert.Len(t, snap.Tasks, 1)

	calls := docs.mergeCalls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0], "tasks")
	assert.Contains(t, calls[0], "streak")
}

func TestOnIdentityChangeMergeKeepsNewerVersion(t *testing.T) {
	kv := newTestStore(t)
	docs := &fakeDocumentStore{
		doc: &model.UserDocument{
			UID: "u1",
			Tasks: []model.Task{
				{ID: "t1", Title: "远端较新", CreatedAt: 1000, LastUpdated: 5000},
			},
		},
	}
	svc := NewSyncService(kv, docs)
	seedTasks(t, kv, "u1", []model.Task{
		{ID: "t1", Title: "本地较旧", CreatedAt: 1000, LastUpdated: 2000},
	})

	snap := svc.OnIdentityChange(context.Background(), &Identity{UID: "u1"})

	require.Len(t, snap.Tasks, 1)
	assert.Equal(t, "远端较新", snap.Tasks[0].Title)
	// 归并没有新增条目，不应回写
	assert.Empty(t, docs.mergeCalls())
}

func TestOnIdentityChangeLocalOnlyTriggersWriteBack(t *testing.T) {
	kv := newTestStore(t)
	docs := &fakeDocumentStore{
		doc: &model.UserDocument{
			UID: "u1",
			Tasks: []model.Task{
				{ID: "t1", Title: "远端已有", CreatedAt: 1000},
			},
		},
	}
	svc := NewSyncService(kv, docs)
	seedTasks(t, kv, "u1", []model.Task{
		{ID: "t2", Title: "仅本地", CreatedAt: 2000},
	})

	snap := svc.OnIdentityChange(context.Background(), &Identity{UID: "u1"})

	assert.Len(t, snap.Tasks, 2)

	calls := docs.mergeCalls()
	require.Len(t, calls, 1)
	tasks, ok := calls[0]["tasks"].([]model.Task)
	require.True(t, ok)
	assert.Len(t, tasks, 2)

	// 归并结果也要落地本地
	persisted := kvstore.LoadCollection[model.Task](kv, kvstore.UserKey("u1", kvstore.KeyTasks))
	assert.Len(t, persisted, 2)
}

func TestOnIdentityChangeAssignsMissingIDs(t *testing.T) {
	kv := newTestStore(t)
	docs := &fakeDocumentStore{
		doc: &model.UserDocument{UID: "u1"},
	}
	svc := NewSyncService(kv, docs)
	seedTasks(t, kv, "u1", []model.Task{
		{Title: "历史数据没有 id", CreatedAt: 1000},
	})

	snap := svc.OnIdentityChange(context.Background(), &Identity{UID: "u1"})

	require.Len(t, snap.Tasks, 1)
	assert.NotEmpty(t, snap.Tasks[0].ID)
}

func TestOnIdentityChangeRemoteFailureKeepsLocal(t *testing.T) {
	kv := newTestStore(t)
	docs := &fakeDocumentStore{fetchErr: errors.New("connection refused")}
	svc := NewSyncService(kv, docs)
	seedTasks(t, kv, "u1", []model.Task{
		{ID: "t1", Title: "离线任务", CreatedAt: 1000},
	})

	snap := svc.OnIdentityChange(context.Background(), &Identity{UID: "u1"})

	assert.Equal(t, PhaseReady, snap.Phase)
	require.Len(t, snap.Tasks, 1)
	assert.Equal(t, "离线任务", snap.Tasks[0].Title)
	assert.Empty(t, docs.mergeCalls())
}

func TestOnIdentityChangeThemeFallsBackToRemote(t *testing.T) {
	kv := newTestStore(t)
	docs := &fakeDocumentStore{
		doc: &model.UserDocument{UID: "u1", Theme: "dark"},
	}
	svc := NewSyncService(kv, docs)

	snap := svc.OnIdentityChange(context.Background(), &Identity{UID: "u1"})

	assert.Equal(t, "dark", snap.Theme)
}

func TestSubscribePublishesLoadingThenReady(t *testing.T) {
	kv := newTestStore(t)
	docs := &fakeDocumentStore{}
	svc := NewSyncService(kv, docs)

	var phases []SyncPhase
	svc.Subscribe(func(snap StateSnapshot) {
		phases = append(phases, snap.Phase)
	})

	svc.OnIdentityChange(context.Background(), &Identity{UID: "u1"})

	assert.Equal(t, []SyncPhase{PhaseLoading, PhaseReady}, phases)
}
