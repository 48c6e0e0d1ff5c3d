// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"board/internal/delivery/http/middleware"
	"board/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	MemberHandler  *handler.MemberHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	memberHandler  *handler.MemberHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		memberHandler:  params.MemberHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	memberGroup := e.Group("/api/member")
	{
		memberGroup.POST("/signup", r.memberHandler.Signup)
		memberGroup.GET("/check", r.memberHandler.Check)
		memberGroup.POST("/token", r.memberHandler.Token)
	}

	// Member routes that require authentication
	protectedGroup := e.Group("/api/member")
	protectedGroup.Use(r.authMiddleware.Authenticate)
	{
		protectedGroup.GET("/list", r.memberHandler.List)
		protectedGroup.GET("/:id", r.memberHandler.Get)
		protectedGroup.PUT("/edit", r.memberHandler.Edit)
		protectedGroup.DELETE("/:id", r.memberHandler.Delete)
	}
}
