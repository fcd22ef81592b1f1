package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasktracker/internal/auth"
	"tasktracker/internal/client"
	"tasktracker/internal/models"
	"tasktracker/internal/server"
	"tasktracker/internal/storage"
)

func newTestApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := storage.Open(storage.DriverSQLite, storage.MemoryDSN, logger)
	require.NoError(t, err)
	tokens, err := auth.NewIssuer([]byte("test-secret"), time.Hour, store)
	require.NoError(t, err)
	ts := httptest.NewServer(server.New(store, tokens, logger, server.Options{}).Engine())
	t.Cleanup(func() {
		ts.Close()
		_ = store.Close()
	})

	var out bytes.Buffer
	return New(client.New(ts.URL, nil), strings.NewReader(""), &out), &out
}

// feed replaces the pending input of the app.
func feed(a *App, lines ...string) {
	a.reader = rdr(strings.Join(lines, "\n") + "\n")
}

func TestRun_RequiresLogin(t *testing.T) {
	a, out := newTestApp(t)
	feed(a, "projects", "help", "bogus", "exit", "never reached")

	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, out.String(), "please login or register first")
	assert.Contains(t, out.String(), "Available commands: register, login, exit")
	assert.NotContains(t, out.String(), "never reached")
}

func TestRun_EOFEndsSession(t *testing.T) {
	a, _ := newTestApp(t)
	a.reader = rdr("help")
	require.NoError(t, a.Run(context.Background()))
}

func TestRun_RegisterValidatesForm(t *testing.T) {
	a, out := newTestApp(t)
	feed(a, "register", "Alice", "not-an-email", "password123", "exit")

	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, out.String(), client.ErrEmailInvalid.Error())
	assert.False(t, a.isLoggedIn())
}

func TestSession(t *testing.T) {
	a, out := newTestApp(t)
	ctx := context.Background()

	feed(a, "register", "Alice", "alice@example.com", "password123",
		"project add", "Website", "Landing page", "",
		"exit")
	require.NoError(t, a.Run(ctx))
	require.True(t, a.isLoggedIn())
	assert.Contains(t, out.String(), "Welcome back, Alice!")
	assert.Contains(t, out.String(), "Project created:")
	require.Len(t, a.dash.Projects, 1)
	project := a.dash.Projects[0]
	assert.Equal(t, models.DefaultProjectColor, project.Color)

	feed(a, "Write copy", project.ID[:8], "Hero text", "high", "2024-06-01")
	require.NoError(t, a.Execute(ctx, "task", []string{"add"}))
	require.Len(t, a.dash.Tasks, 1)
	task := a.dash.Tasks[0]
	assert.Equal(t, models.PriorityHigh, task.Priority)
	require.NotNil(t, task.DueDate)

	require.NoError(t, a.Execute(ctx, "task", []string{"status", task.ID[:8], "in-progress"}))
	assert.Equal(t, models.StatusInProgress, a.dash.Tasks[0].Status)
	assert.Contains(t, out.String(), "Write copy -> In Progress")

	require.Error(t, a.Execute(ctx, "task", []string{"status", task.ID, "blocked"}))

	// keep everything except the title, clear the due date
	feed(a, "Write hero copy", "", "", "", "-")
	require.NoError(t, a.Execute(ctx, "task", []string{"edit", task.ID}))
	edited := a.dash.Tasks[0]
	assert.Equal(t, "Write hero copy", edited.Title)
	assert.Equal(t, "Hero text", edited.Description)
	assert.Equal(t, models.StatusInProgress, edited.Status)
	assert.Nil(t, edited.DueDate)

	out.Reset()
	require.NoError(t, a.Execute(ctx, "tasks", nil))
	assert.Contains(t, out.String(), "Write hero copy")
	assert.Contains(t, out.String(), "Website")

	out.Reset()
	require.NoError(t, a.Execute(ctx, "stats", nil))
	assert.Contains(t, out.String(), "Total Projects")

	feed(a, "Website v2", "", "#EF4444")
	require.NoError(t, a.Execute(ctx, "project", []string{"edit", project.ID}))
	assert.Equal(t, "Website v2", a.dash.Projects[0].Name)
	assert.Equal(t, "#EF4444", a.dash.Projects[0].Color)
	assert.Equal(t, "Landing page", a.dash.Projects[0].Description)

	require.NoError(t, a.Execute(ctx, "project", []string{"rm", project.ID}))
	assert.Empty(t, a.dash.Projects)
	assert.Empty(t, a.dash.Tasks)

	out.Reset()
	require.NoError(t, a.Execute(ctx, "projects", nil))
	assert.Contains(t, out.String(), "No projects")

	require.NoError(t, a.Execute(ctx, "logout", nil))
	assert.False(t, a.isLoggedIn())
	assert.Empty(t, a.api.Token())

	feed(a, "alice@example.com", "password123")
	require.NoError(t, a.Execute(ctx, "login", nil))
	assert.True(t, a.isLoggedIn())
}

func TestSession_UnknownReferences(t *testing.T) {
	a, _ := newTestApp(t)
	ctx := context.Background()
	feed(a, "Bob", "bob@example.com", "password123")
	require.NoError(t, a.Execute(ctx, "register", nil))

	require.Error(t, a.Execute(ctx, "project", []string{"rm", "nope"}))
	require.Error(t, a.Execute(ctx, "project", nil))
	require.Error(t, a.Execute(ctx, "task", []string{"rm"}))
	require.Error(t, a.Execute(ctx, "tasks", []string{"nope"}))

	feed(a, "x", "", "")
	require.Error(t, a.Execute(ctx, "project", []string{"add"}), "project names need two characters")
	assert.Empty(t, a.dash.Projects)
}
