package httpserver

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"orderbot/internal/dialog"
	"orderbot/internal/domain"
)

type dialogEngine interface {
	HandleEvent(ctx context.Context, ev dialog.Event) ([]dialog.Render, error)
}

type orderService interface {
	Recent(ctx context.Context, limit int) ([]domain.Order, error)
	SetStatus(ctx context.Context, id, status string) error
}

// Deps carries the collaborators the routes need.
type Deps struct {
	Engine dialogEngine
	Orders orderService
	// OpsAPIKeyHash is the bcrypt hash the operator routes check X-API-Key
	// against. Empty disables the operator routes.
	OpsAPIKeyHash string
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "X-API-Key")
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	v1 := router.Group("/v1")
	v1.POST("/events", eventsHandler(deps.Engine, logger))

	ops := v1.Group("", apiKeyMiddleware(deps.OpsAPIKeyHash))
	ops.GET("/orders", listOrdersHandler(deps.Orders))
	ops.PATCH("/orders/:id/status", setOrderStatusHandler(deps.Orders))

	return router
}
