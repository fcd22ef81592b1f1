package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"tasktracker/internal/models"
)

type taskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"due_date"`
	ProjectID   *string `json:"project_id"`
}

// handleListTasks lists the caller's tasks, optionally filtered by
// project_id, status and priority. Unknown status or priority values are
// rejected like on create and update.
func (s *Server) handleListTasks(c *gin.Context) {
	filter := models.TaskFilter{ProjectID: c.Query("project_id")}
	if raw := c.Query("status"); raw != "" {
		st, ok := models.ParseTaskStatus(raw)
		if !ok {
			badRequest(c, fmt.Sprintf("unknown status %q", raw))
			return
		}
		filter.Status = st
	}
	if raw := c.Query("priority"); raw != "" {
		p, ok := models.ParseTaskPriority(raw)
		if !ok {
			badRequest(c, fmt.Sprintf("unknown priority %q", raw))
			return
		}
		filter.Priority = p
	}

	tasks, err := s.store.ListTasks(c.Request.Context(), userID(c), filter)
	if err != nil {
		s.respondError(c, err, "task", "Failed to fetch tasks")
		return
	}
	respondSuccess(c, http.StatusOK, tasks)
}

// handleGetTask returns one task of the caller.
func (s *Server) handleGetTask(c *gin.Context) {
	task, err := s.store.GetTask(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		s.respondError(c, err, "task", "Failed to fetch task")
		return
	}
	respondSuccess(c, http.StatusOK, task)
}

// handleCreateTask inserts a task into one of the caller's projects.
func (s *Server) handleCreateTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if deref(req.Title) == "" || deref(req.ProjectID) == "" {
		badRequest(c, "Title and project_id are required")
		return
	}

	task := models.Task{
		Title:       *req.Title,
		Description: deref(req.Description),
		Status:      models.TaskStatus(deref(req.Status)),
		Priority:    models.TaskPriority(deref(req.Priority)),
		ProjectID:   *req.ProjectID,
	}
	if raw := deref(req.DueDate); raw != "" {
		due, err := parseDueDate(raw)
		if err != nil {
			badRequest(c, "due_date must be a date (YYYY-MM-DD) or RFC 3339 timestamp")
			return
		}
		task.DueDate = &due
	}

	created, err := s.store.CreateTask(c.Request.Context(), userID(c), task)
	if err != nil {
		s.respondError(c, err, "task", "Failed to create task")
		return
	}
	respondSuccess(c, http.StatusCreated, created)
}

// handleUpdateTask updates the fields present in the body. An empty
// due_date clears it.
func (s *Server) handleUpdateTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	changes := models.TaskChanges{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		st := models.TaskStatus(*req.Status)
		changes.Status = &st
	}
	if req.Priority != nil {
		p := models.TaskPriority(*req.Priority)
		changes.Priority = &p
	}
	if req.DueDate != nil {
		if strings.TrimSpace(*req.DueDate) == "" {
			changes.ClearDueDate = true
		} else {
			due, err := parseDueDate(*req.DueDate)
			if err != nil {
				badRequest(c, "due_date must be a date (YYYY-MM-DD) or RFC 3339 timestamp")
				return
			}
			changes.DueDate = &due
		}
	}

	task, err := s.store.UpdateTask(c.Request.Context(), userID(c), c.Param("id"), changes)
	if err != nil {
		s.respondError(c, err, "task", "Failed to update task")
		return
	}
	respondSuccess(c, http.StatusOK, task)
}

// handleDeleteTask removes a task completely.
func (s *Server) handleDeleteTask(c *gin.Context) {
	if err := s.store.DeleteTask(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		s.respondError(c, err, "task", "Failed to delete task")
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

func parseDueDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}
