package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenplan_backend/internal/model"
)

func task(id string, createdAt, lastUpdated int64) model.Task {
	return model.Task{ID: id, Title: "t-" + id, Status: model.TaskPending, CreatedAt: createdAt, LastUpdated: lastUpdated}
}

func TestMergeRemoteOnly(t *testing.T) {
	remote := []model.Task{task("a", 1, 0), task("b", 2, 0)}

	merged, report := MergeByID[model.Task](remote, nil)
	require.Len(t, merged, 2)
	assert.Equal(t, "a", merged[0].ID)
	assert.False(t, report.WriteBackNeeded())
}

func TestMergeKeepsLocalOnlyEntries(t *testing.T) {
	remote := []model.Task{task("a", 1, 0)}
	local := []model.Task{task("a", 1, 0), task("b", 2, 0)}

	merged, report := MergeByID[model.Task](remote, local)
	require.Len(t, merged, 2)
	assert.True(t, report.WriteBackNeeded(), "locally created entries must reach the cloud")
}

func TestMergeConflictNewerVersionWins(t *testing.T) {
	remote := []model.Task{task("a", 10, 100)}
	localWin := task("a", 10, 200)
	localWin.Title = "edited locally"

	merged, _ := MergeByID[model.Task](remote, []model.Task{localWin})
	require.Len(t, merged, 1)
	assert.Equal(t, "edited locally", merged[0].Title)

	// older local version loses
	localLose := task("a", 10, 50)
	localLose.Title = "stale"
	merged, _ = MergeByID[model.Task](remote, []model.Task{localLose})
	assert.Equal(t, "t-a", merged[0].Title)
}

func TestMergeVersionFallsBackToCreatedAt(t *testing.T) {
	remote := []model.Task{task("a", 10, 0)}
	local := []model.Task{task("a", 20, 0)}
	local[0].Title = "newer created"

	merged, _ := MergeByID[model.Task](remote, local)
	assert.Equal(t, "newer created", merged[0].Title)
}

func TestMergeAssignsMissingLocalIDs(t *testing.T) {
	local := []model.Task{{Title: "legacy record", CreatedAt: 5}}

	merged, report := MergeByID[model.Task](nil, local)
	require.Len(t, merged, 1)
	assert.NotEmpty(t, merged[0].ID)
	assert.True(t, report.WriteBackNeeded())
}

func TestMergeIdempotent(t *testing.T) {
	// 集合与自身归并不产生变化
	set := []model.Task{task("a", 1, 3), task("b", 2, 0)}

	merged, report := MergeByID[model.Task](set, set)
	assert.Equal(t, set, merged)
	assert.False(t, report.WriteBackNeeded())
}

func TestMergeNeverDropsEntities(t *testing.T) {
	// 归并结果的条目数不少于任一输入
	remote := []model.Task{task("a", 1, 0), task("b", 2, 0), task("c", 3, 0)}
	local := []model.Task{task("b", 2, 9), task("d", 4, 0)}

	merged, _ := MergeByID[model.Task](remote, local)
	ids := map[string]bool{}
	for _, m := range merged {
		ids[m.ID] = true
	}
	for _, want := range []string{"a", "b", "c", "d"} {
		assert.True(t, ids[want], "missing %s", want)
	}
	assert.GreaterOrEqual(t, len(merged), 3)
}

func TestMergeOrderRemoteFirst(t *testing.T) {
	remote := []model.Task{task("r1", 1, 0), task("r2", 2, 0)}
	local := []model.Task{task("l1", 3, 0), task("r1", 1, 0)}

	merged, _ := MergeByID[model.Task](remote, local)
	require.Len(t, merged, 3)
	assert.Equal(t, []string{"r1", "r2", "l1"}, []string{merged[0].ID, merged[1].ID, merged[2].ID})
}

func TestMergeGoals(t *testing.T) {
	remote := []model.WeeklyGoal{{ID: "g1", Title: "cloud", CreatedAt: 10}}
	local := []model.WeeklyGoal{{ID: "g1", Title: "local newer", CreatedAt: 20}, {ID: "g2", CreatedAt: 5}}

	merged, report := MergeByID[model.WeeklyGoal](remote, local)
	require.Len(t, merged, 2)
	assert.Equal(t, "local newer", merged[0].Title)
	assert.True(t, report.WriteBackNeeded())
}
