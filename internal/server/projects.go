package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tasktracker/internal/models"
)

type projectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

// handleListProjects returns the caller's projects, newest first.
func (s *Server) handleListProjects(c *gin.Context) {
	projects, err := s.store.ListProjects(c.Request.Context(), userID(c))
	if err != nil {
		s.respondError(c, err, "project", "Failed to fetch projects")
		return
	}
	respondSuccess(c, http.StatusOK, projects)
}

// handleGetProject returns one project of the caller.
func (s *Server) handleGetProject(c *gin.Context) {
	project, err := s.store.GetProject(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		s.respondError(c, err, "project", "Failed to fetch project")
		return
	}
	respondSuccess(c, http.StatusOK, project)
}

// handleCreateProject creates a new project entity.
func (s *Server) handleCreateProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if req.Name == nil || *req.Name == "" {
		badRequest(c, "Project name is required")
		return
	}

	project, err := s.store.CreateProject(c.Request.Context(), userID(c), *req.Name, deref(req.Description), deref(req.Color))
	if err != nil {
		s.respondError(c, err, "project", "Failed to create project")
		return
	}
	respondSuccess(c, http.StatusCreated, project)
}

// handleUpdateProject renames, redescribes or recolors a project. Fields
// missing from the body keep their value.
func (s *Server) handleUpdateProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	project, err := s.store.UpdateProject(c.Request.Context(), userID(c), c.Param("id"), models.ProjectChanges{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		s.respondError(c, err, "project", "Failed to update project")
		return
	}
	respondSuccess(c, http.StatusOK, project)
}

// handleDeleteProject removes a project and all related tasks.
func (s *Server) handleDeleteProject(c *gin.Context) {
	if err := s.store.DeleteProject(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		s.respondError(c, err, "project", "Failed to delete project")
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"message": "Project deleted successfully"})
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
