package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"nexttodo/internal/config"
	v1 "nexttodo/internal/delivery/http/v1"
	"nexttodo/internal/services"
)

func MustListenAndServeHTTP() {
	cfg := config.Global()
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := cfg.HTTP

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(newCORSMiddleware(cfg.CORS))
	registerRoutes(router)

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: router,
	}

	go func() {
		globalLogger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	// Wait for the interrupt signal to gracefully
	// shut down the server with a timeout.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	globalLogger.Info().
		Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	globalLogger.Info().Msg("shut down http server")
}

func registerRoutes(router gin.IRouter) {
	cfg := config.Global()
	jwtCfg := cfg.JWT

	todoService := services.NewTodoService(globalLogger, globalPostgresPool)
	authService := services.NewAuthService(
		globalLogger,
		jwtCfg.Issuer,
		jwtCfg.SigningKey,
		jwtCfg.TokenTTL,
		jwtCfg.RememberTTL,
	)
	v1Handler := v1.New(globalLogger, todoService, authService)

	router.POST("/login", v1Handler.HandleLogin)

	todosRouter := router.Group("/todos", v1Handler.HandleRequestIDMiddleware, v1Handler.HandleIdentityMiddleware)
	todosRouter.GET("", v1Handler.HandleListTodos)
	todosRouter.POST("", v1Handler.HandleCreateTodo)
	todosRouter.PUT("/:id", v1Handler.HandleUpdateTodo)
	todosRouter.DELETE("/:id", v1Handler.HandleDeleteTodo)
}

func newCORSMiddleware(corsCfg config.CORSConfig) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Requested-With"}

	origins := corsCfg.Origins()
	if len(origins) == 1 && origins[0] == "*" {
		cfg.AllowAllOrigins = true
		globalLogger.Info().
			Msg("CORS_ALLOWED_ORIGINS not set, allowing all origins")
	} else {
		cfg.AllowOrigins = origins
		globalLogger.Info().
			Strs("origins", origins).
			Msg("configured cors origins")
	}
	return cors.New(cfg)
}
