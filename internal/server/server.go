package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"tasktracker/internal/auth"
	"tasktracker/internal/common"
	"tasktracker/internal/models"
)

// Store is the persistence the handlers depend on. Every project and task
// method is scoped to the acting user's id.
type Store interface {
	CreateUser(ctx context.Context, email, name, passwordHash string) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)

	ListProjects(ctx context.Context, userID string) ([]models.Project, error)
	GetProject(ctx context.Context, userID, id string) (models.Project, error)
	CreateProject(ctx context.Context, userID, name, description, color string) (models.Project, error)
	UpdateProject(ctx context.Context, userID, id string, changes models.ProjectChanges) (models.Project, error)
	DeleteProject(ctx context.Context, userID, id string) error

	ListTasks(ctx context.Context, userID string, filter models.TaskFilter) ([]models.Task, error)
	GetTask(ctx context.Context, userID, id string) (models.Task, error)
	CreateTask(ctx context.Context, userID string, t models.Task) (models.Task, error)
	UpdateTask(ctx context.Context, userID, id string, changes models.TaskChanges) (models.Task, error)
	DeleteTask(ctx context.Context, userID, id string) error

	RevokeToken(ctx context.Context, tokenID, userID string, expiresAt *time.Time) error

	Ping(ctx context.Context) error
}

// Options tunes the HTTP surface.
type Options struct {
	StaticDir   string
	CORSOrigins []string
}

// Server provides the HTTP handlers of the tracker API.
type Server struct {
	engine    *gin.Engine
	store     Store
	tokens    *auth.Issuer
	logger    *slog.Logger
	staticDir string
}

// New constructs the HTTP server with routes and middleware configured.
func New(store Store, tokens *auth.Issuer, logger *slog.Logger, opts Options) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithWriter(gin.DefaultWriter, "/api/health"))
	router.Use(cors.New(corsConfig(opts.CORSOrigins)))

	srv := &Server{
		engine:    router,
		store:     store,
		tokens:    tokens,
		logger:    logger,
		staticDir: opts.StaticDir,
	}

	srv.registerRoutes()
	return srv
}

// Engine exposes the underlying Gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// registerRoutes wires all API and static handlers together.
func (s *Server) registerRoutes() {
	api := s.engine.Group("/api")
	{
		api.GET("/health", s.handleHealth)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", s.handleRegister)
			authGroup.POST("/login", s.handleLogin)
			authGroup.GET("/me", s.requireAuth(), s.handleMe)
			authGroup.POST("/logout", s.requireAuth(), s.handleLogout)
		}

		protected := api.Group("", s.requireAuth())

		projects := protected.Group("/projects")
		{
			projects.GET("", s.handleListProjects)
			projects.POST("", s.handleCreateProject)
			projects.GET(":id", s.handleGetProject)
			projects.PUT(":id", s.handleUpdateProject)
			projects.DELETE(":id", s.handleDeleteProject)
		}

		tasks := protected.Group("/tasks")
		{
			tasks.GET("", s.handleListTasks)
			tasks.POST("", s.handleCreateTask)
			tasks.GET(":id", s.handleGetTask)
			tasks.PUT(":id", s.handleUpdateTask)
			tasks.DELETE(":id", s.handleDeleteTask)
		}
	}

	s.mountStatic()
}

// handleHealth reports liveness and whether the database answers. An
// unreachable database turns the answer into 503.
func (s *Server) handleHealth(c *gin.Context) {
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	if err := s.store.Ping(c.Request.Context()); err != nil {
		s.logger.Error("database ping failed", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "ERROR", "db": "down", "timestamp": timestamp})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "OK", "db": "up", "timestamp": timestamp})
}

// respondError maps err onto the error taxonomy and writes {"error": msg}.
// kind names the entity for not-found messages; internalMsg replaces the
// raw error for anything unexpected.
func (s *Server) respondError(c *gin.Context, err error, kind, internalMsg string) {
	status, msg := http.StatusInternalServerError, internalMsg

	var invalid *common.ValidationError
	switch {
	case errors.As(err, &invalid):
		status, msg = http.StatusBadRequest, invalid.Msg
	case errors.Is(err, common.ErrNotFound):
		status, msg = http.StatusNotFound, notFoundMessage(kind)
	case errors.Is(err, common.ErrDuplicate):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, common.ErrInvalidCredentials):
		status, msg = http.StatusUnauthorized, "Invalid credentials"
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", slog.String("path", c.FullPath()), slog.String("error", err.Error()))
	} else {
		s.logger.Debug("request rejected", slog.String("path", c.FullPath()), slog.Int("status", status), slog.String("error", err.Error()))
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

func notFoundMessage(kind string) string {
	if kind == "" {
		return "Not found"
	}
	return strings.ToUpper(kind[:1]) + kind[1:] + " not found"
}

// badRequest answers 400 with msg.
func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg})
}

// respondSuccess writes payload as JSON, or only the status when payload is nil.
func respondSuccess(c *gin.Context, status int, payload any) {
	if payload == nil {
		c.Status(status)
		return
	}
	c.JSON(status, payload)
}
