package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"movingday/internal/assessment"
	"movingday/internal/auth"
	"movingday/internal/config"
	"movingday/internal/engine"
	"movingday/internal/task"
)

// Deps are the engine and stores the handlers work against; wired in
// cmd/server and injected here so handler tests can swap in fakes.
type Deps struct {
	Generator *engine.Generator
	Tasks     task.Store
	Answers   assessment.Store
}

func SetupRouter(cfg *config.Config, rdb *redis.Client, deps Deps) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	group := r.Group(cfg.Server.Subpath)
	{
		group.GET("/health", healthHandler)
		group.GET("/config", configHandler(cfg))

		// Setup: only if no users
		group.POST("/setup", SetupHandler())

		// Auth
		group.POST("/auth/login", LoginHandler(cfg, rdb))
		group.POST("/auth/logout", auth.AuthMiddleware(cfg, rdb, false), LogoutHandler(rdb))
		group.GET("/auth/me", auth.AuthMiddleware(cfg, rdb, false), MeHandler())

		// Assessment completion drives task generation
		group.POST("/assessments", auth.AuthMiddleware(cfg, rdb, false), SubmitAssessmentHandler(deps))
		group.POST("/assessments/mini/:parentId", auth.AuthMiddleware(cfg, rdb, false), CompleteMiniAssessmentHandler(deps))

		// Generated checklist
		group.GET("/tasks", auth.AuthMiddleware(cfg, rdb, false), ListTasksHandler(deps))
		group.PATCH("/tasks/:id/status", auth.AuthMiddleware(cfg, rdb, false), UpdateTaskStatusHandler(deps))
	}
	return r
}
