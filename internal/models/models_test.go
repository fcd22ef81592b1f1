package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTaskStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want TaskStatus
		ok   bool
	}{
		{"not-started", StatusNotStarted, true},
		{"todo", StatusNotStarted, true},
		{"in-progress", StatusInProgress, true},
		{"done", StatusDone, true},
		{"Done", "", false},
		{"blocked", "", false},
		{"", "", false},
	}
	for _, tc := range tests {
		got, ok := ParseTaskStatus(tc.raw)
		assert.Equal(t, tc.ok, ok, tc.raw)
		assert.Equal(t, tc.want, got, tc.raw)
	}
}

func TestParseTaskPriority(t *testing.T) {
	for _, raw := range []string{"low", "medium", "high"} {
		p, ok := ParseTaskPriority(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, TaskPriority(raw), p)
	}
	_, ok := ParseTaskPriority("urgent")
	assert.False(t, ok)
}

func TestValidColor(t *testing.T) {
	for _, c := range ProjectPalette {
		assert.True(t, ValidColor(c), c)
	}
	assert.True(t, ValidColor("#abcdef"))
	assert.False(t, ValidColor("3B82F6"))
	assert.False(t, ValidColor("#3B82F"))
	assert.False(t, ValidColor("#GGGGGG"))
	assert.False(t, ValidColor("blue"))
}

func TestUserJSONOmitsPassword(t *testing.T) {
	u := User{ID: "1", Email: "a@example.com", Name: "A", PasswordHash: "secret-hash", CreatedAt: time.Now()}
	raw, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret-hash")
	assert.Equal(t, PublicUser{ID: "1", Email: "a@example.com", Name: "A"}, u.Public())
}

func TestTaskJSONOmitsEmptyDueDate(t *testing.T) {
	raw, err := json.Marshal(Task{ID: "t1", Status: StatusDone})
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "due_date")
	assert.Contains(t, string(raw), `"status":"done"`)
}
