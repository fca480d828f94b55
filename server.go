package main

import (
	"noteshare/handler"
	"noteshare/middleware"
	"noteshare/repository"
	"noteshare/usecase"
	"noteshare/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps carries everything the router needs. Storage is interface-typed
// so the mongo repos and the in-memory fallback wire identically.
type Deps struct {
	Users    repository.UsersRepository
	Notes    repository.NotesRepository
	Sessions repository.SessionsRepository
	Images   usecase.ImageStore
	Hub      *ws.Hub
}

func setupRouter(deps Deps) *gin.Engine {
	router := gin.Default()

	userService := &usecase.UserService{
		UsersRepo: deps.Users,
	}
	notesService := &usecase.NotesService{
		NotesRepo: deps.Notes,
		UsersRepo: deps.Users,
		Images:    deps.Images,
	}
	if deps.Hub != nil {
		notesService.Publisher = deps.Hub
	}

	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.MetricsMiddleware())

	router.GET("/health", handler.HealthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if deps.Hub != nil {
		router.GET("/ws/public-notes", func(c *gin.Context) {
			deps.Hub.ServeFeed(c.Writer, c.Request)
		})
	}

	// Public routes (no authentication required)
	public := router.Group("/api")
	{
		public.POST("/register", func(c *gin.Context) {
			handler.RegistrationHandler(c, userService)
		})
		public.POST("/login", func(c *gin.Context) {
			handler.LoginHandler(c, userService, deps.Sessions)
		})
		public.GET("/public-notes", func(c *gin.Context) {
			handler.GetPublicNotesHandler(c, notesService)
		})
		public.GET("/public-notes/:id", func(c *gin.Context) {
			handler.GetPublicNoteHandler(c, notesService)
		})
	}

	// Protected routes (authentication required)
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	protected.Use(middleware.SessionMiddleware(deps.Sessions))
	{
		notes := protected.Group("/notes")
		{
			notes.GET("", func(c *gin.Context) {
				handler.GetUserNotesHandler(c, notesService)
			})
			notes.GET("/:id", func(c *gin.Context) {
				handler.GetNoteHandler(c, notesService)
			})
			notes.POST("", func(c *gin.Context) {
				handler.CreateNoteHandler(c, notesService)
			})
			notes.PUT("/:id", func(c *gin.Context) {
				handler.UpdateNoteHandler(c, notesService)
			})
			notes.DELETE("/:id", func(c *gin.Context) {
				handler.DeleteNoteHandler(c, notesService)
			})
		}
	}

	return router
}
