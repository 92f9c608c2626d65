package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/mkravets/todokeeper-server/internal/api/http/handler"
	"github.com/mkravets/todokeeper-server/internal/api/http/middleware"
	"github.com/mkravets/todokeeper-server/internal/logger"
	"github.com/mkravets/todokeeper-server/internal/model"
	"github.com/mkravets/todokeeper-server/internal/service"
)

// Router wires handlers and middleware onto the HTTP mux. Auth endpoints
// are public behind a rate limit; everything else sits behind the
// authentication middleware.
type Router struct {
	authService    *service.Auth
	todoService    *service.Todo
	userService    *service.User
	guard          *service.Guard
	tokenManager   model.TokenManager
	userStore      model.UserStore
	contextManager model.ContextManager
	logger         *logger.Logger
	loginRate      float64
	loginBurst     int
}

// New creates a new Router instance.
func New(
	authService *service.Auth,
	todoService *service.Todo,
	userService *service.User,
	guard *service.Guard,
	tokenManager model.TokenManager,
	userStore model.UserStore,
	contextManager model.ContextManager,
	logger *logger.Logger,
	loginRate float64,
	loginBurst int,
) *Router {
	return &Router{
		authService:    authService,
		todoService:    todoService,
		userService:    userService,
		guard:          guard,
		tokenManager:   tokenManager,
		userStore:      userStore,
		contextManager: contextManager,
		logger:         logger,
		loginRate:      loginRate,
		loginBurst:     loginBurst,
	}
}

// Register builds the echo instance with all routes and middleware.
func (r *Router) Register() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	logging := middleware.NewLogging(r.logger)
	e.Use(echomw.Recover())
	e.Use(logging.Handle)

	authenticate := middleware.NewAuthenticate(r.tokenManager, r.userStore, r.contextManager, r.logger)
	throttle := middleware.NewRateLimit(r.loginRate, r.loginBurst)

	authHandler := handler.NewAuth(r.authService, r.logger)
	auth := e.Group("/api/auth", throttle.Handle)
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)

	todoHandler := handler.NewTodo(r.todoService, r.contextManager, r.logger)
	todos := e.Group("/todos", authenticate.Handle)
	todos.POST("", todoHandler.Create)
	todos.GET("", todoHandler.List)
	todos.GET("/:id", todoHandler.Get)
	todos.PUT("/:id", todoHandler.Update)
	todos.DELETE("/:id", todoHandler.Delete)

	userHandler := handler.NewUser(r.userService, r.guard, r.contextManager, r.logger)
	user := e.Group("/api/user", authenticate.Handle)
	user.GET("/me", userHandler.Me)
	user.PUT("/me", userHandler.UpdateMe)

	adminHandler := handler.NewAdmin(r.userService, r.guard, r.contextManager, r.logger)
	admin := e.Group("/api/admin", authenticate.Handle)
	admin.GET("/users", adminHandler.ListUsers)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.PATCH("/users/:id/status", adminHandler.UpdateUserStatus)

	return e
}
