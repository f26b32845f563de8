package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tableside/internal/config"
	"tableside/internal/handlers"
	"tableside/internal/llm"
	"tableside/internal/services"
	"tableside/internal/store"
	"tableside/internal/tools"
	"tableside/internal/ws"
	middleware "tableside/pkg/middlewares"
)

// NewApp wires dependencies, builds the Gin engine, and returns an
// *http.Server and a cleanup func. Configuration comes from environment
// variables via config.Load.
func NewApp(ctx context.Context, logger *zap.Logger) (*http.Server, func(), error) {
	cfg, err := config.Load(logger)
	if err != nil {
		return nil, nil, err
	}

	menuItems, err := services.LoadMenu(cfg.MenuPath)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("menu loaded", zap.String("path", cfg.MenuPath), zap.Int("items", len(menuItems)))

	// Shared order state plus the realtime channel it feeds.
	hub := ws.NewHub(logger)
	orderService := services.NewOrderService(logger, store.New(), hub)
	menuService := services.NewMenuService(logger, menuItems)

	// Single capability table behind all three surfaces.
	registry := tools.NewRegistry(orderService, menuService)

	var engine llm.Client
	if cfg.OpenAIAPIKey != "" {
		engine = llm.NewHTTPClient(logger, cfg.OpenAIBaseURL, cfg.OpenAIAPIKey,
			time.Duration(cfg.AssistantTimeout)*time.Second)
	} else {
		logger.Warn("no completion engine configured, assistant runs in echo mode")
	}
	assistantService := services.NewAssistantService(logger, engine, registry, cfg.OpenAIModel)

	baseHandler := handlers.NewBaseHandler(logger)
	orderHandler := handlers.NewOrderHandler(logger, orderService, menuService)
	assistantHandler := handlers.NewAssistantHandler(logger, assistantService)
	toolHandler := handlers.NewToolHandler(logger, registry)
	wsHandler := handlers.NewWSHandler(logger, hub, orderService)

	// Router
	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.TraceID())
	r.Use(middleware.Metrics())

	api := r.Group("/api")
	orderHandler.RegisterRoutes(api)
	assistantHandler.RegisterRoutes(r)
	toolHandler.RegisterRoutes(r)
	wsHandler.RegisterRoutes(r)
	baseHandler.RegisterRoutes(r)

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	cleanup := func() {
		// drop realtime subscribers before the listener goes away
		hub.Close()
	}

	return srv, cleanup, nil
}
