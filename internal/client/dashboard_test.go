package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasktracker/internal/models"
)

func newDashboard(t *testing.T) (*Dashboard, context.Context) {
	t.Helper()
	ts := newTestServer(t)
	c, session := registered(t, ts.URL, "a@x.com")
	d := NewDashboard(c, session.User)
	ctx := context.Background()
	require.NoError(t, d.Load(ctx))
	return d, ctx
}

func TestDashboard_LoadEmpty(t *testing.T) {
	d, _ := newDashboard(t)

	assert.Empty(t, d.Projects)
	assert.Empty(t, d.Tasks)
	assert.Equal(t, map[models.TaskStatus]int{
		models.StatusNotStarted: 0,
		models.StatusInProgress: 0,
		models.StatusDone:       0,
	}, d.StatusCounts())
}

func TestDashboard_CreateKeepsNewestFirst(t *testing.T) {
	d, ctx := newDashboard(t)

	first, err := d.CreateProject(ctx, "First", "", "")
	require.NoError(t, err)
	second, err := d.CreateProject(ctx, "Second", "", "#EF4444")
	require.NoError(t, err)

	require.Len(t, d.Projects, 2)
	if second.CreatedAt.After(first.CreatedAt) {
		assert.Equal(t, second.ID, d.Projects[0].ID)
	}

	a, err := d.CreateTask(ctx, NewTask{Title: "a", ProjectID: first.ID})
	require.NoError(t, err)
	b, err := d.CreateTask(ctx, NewTask{Title: "b", ProjectID: second.ID, Status: "done"})
	require.NoError(t, err)
	require.Len(t, d.Tasks, 2)
	if b.CreatedAt.After(a.CreatedAt) {
		assert.Equal(t, b.ID, d.Tasks[0].ID)
	}

	local := append([]models.Task(nil), d.Tasks...)
	require.NoError(t, d.Load(ctx))
	if b.CreatedAt.After(a.CreatedAt) {
		assert.Equal(t, local[0].ID, d.Tasks[0].ID, "a reload keeps the local order")
	}

	counts := d.StatusCounts()
	assert.Equal(t, 1, counts[models.StatusNotStarted])
	assert.Equal(t, 1, counts[models.StatusDone])
	assert.Len(t, d.TasksByStatus(models.StatusDone), 1)
	assert.Len(t, d.ProjectTasks(first.ID), 1)
}

func TestDashboard_FormValidationSkipsServer(t *testing.T) {
	d, ctx := newDashboard(t)

	_, err := d.CreateProject(ctx, "x", "", "")
	require.ErrorIs(t, err, ErrProjectNameLength)

	_, err = d.CreateTask(ctx, NewTask{Title: "  ", ProjectID: "p"})
	require.ErrorIs(t, err, ErrTitleRequired)

	assert.Empty(t, d.Projects)
	assert.Empty(t, d.Tasks)
}

func TestDashboard_UpdateReplacesLocalCopy(t *testing.T) {
	d, ctx := newDashboard(t)
	p, err := d.CreateProject(ctx, "Site", "", "")
	require.NoError(t, err)
	task, err := d.CreateTask(ctx, NewTask{Title: "Copy", ProjectID: p.ID})
	require.NoError(t, err)

	name := "Site v2"
	_, err = d.UpdateProject(ctx, p.ID, ProjectUpdate{Name: &name})
	require.NoError(t, err)
	got, ok := d.Project(p.ID)
	require.True(t, ok)
	assert.Equal(t, "Site v2", got.Name)

	status := "done"
	_, err = d.UpdateTask(ctx, task.ID, TaskUpdate{Status: &status})
	require.NoError(t, err)
	gotTask, ok := d.Task(task.ID[:8])
	require.True(t, ok)
	assert.Equal(t, models.StatusDone, gotTask.Status)
	assert.Len(t, d.Tasks, 1)
}

func TestDashboard_FailedMutationKeepsState(t *testing.T) {
	d, ctx := newDashboard(t)
	p, err := d.CreateProject(ctx, "Site", "", "")
	require.NoError(t, err)
	task, err := d.CreateTask(ctx, NewTask{Title: "Copy", ProjectID: p.ID})
	require.NoError(t, err)

	bad := "blocked"
	_, err = d.UpdateTask(ctx, task.ID, TaskUpdate{Status: &bad})
	require.True(t, IsStatus(err, http.StatusBadRequest))
	assert.Equal(t, models.StatusNotStarted, d.Tasks[0].Status)

	require.True(t, IsStatus(d.DeleteProject(ctx, "missing"), http.StatusNotFound))
	assert.Len(t, d.Projects, 1)
	assert.Len(t, d.Tasks, 1)

	d.api.SetToken("broken")
	require.Error(t, d.Load(ctx))
	assert.Len(t, d.Projects, 1, "a failed reload keeps the previous state")
}

func TestDashboard_DeleteProjectDropsItsTasks(t *testing.T) {
	d, ctx := newDashboard(t)
	doomed, err := d.CreateProject(ctx, "Doomed", "", "")
	require.NoError(t, err)
	kept, err := d.CreateProject(ctx, "Kept", "", "")
	require.NoError(t, err)
	_, err = d.CreateTask(ctx, NewTask{Title: "one", ProjectID: doomed.ID})
	require.NoError(t, err)
	survivor, err := d.CreateTask(ctx, NewTask{Title: "two", ProjectID: kept.ID})
	require.NoError(t, err)

	require.NoError(t, d.DeleteProject(ctx, doomed.ID))
	require.Len(t, d.Projects, 1)
	require.Len(t, d.Tasks, 1)
	assert.Equal(t, survivor.ID, d.Tasks[0].ID)

	require.NoError(t, d.DeleteTask(ctx, survivor.ID))
	assert.Empty(t, d.Tasks)
}

func TestFindByRef(t *testing.T) {
	ids := []string{"abc123", "abd456", "xyz"}
	id := func(s string) string { return s }

	assert.Equal(t, 0, findByRef(ids, "abc123", id))
	assert.Equal(t, 0, findByRef(ids, "abc", id))
	assert.Equal(t, 2, findByRef(ids, "x", id))
	assert.Equal(t, -1, findByRef(ids, "ab", id), "ambiguous prefix")
	assert.Equal(t, -1, findByRef(ids, "q", id))
	assert.Equal(t, -1, findByRef(ids, "", id))
}
