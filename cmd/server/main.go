package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"

	"github.com/hearthhq/hearth-api/internal/calendar"
	"github.com/hearthhq/hearth-api/internal/config"
	"github.com/hearthhq/hearth-api/internal/constants"
	"github.com/hearthhq/hearth-api/internal/database"
	"github.com/hearthhq/hearth-api/internal/handlers"
	"github.com/hearthhq/hearth-api/internal/middleware"
	"github.com/hearthhq/hearth-api/internal/repository"
	"github.com/hearthhq/hearth-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction, // true in production (HTTPS), false in development
		SameSite: 2,            // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	familyRepo := repository.NewFamilyRepository(db)
	choreRepo := repository.NewChoreRepository(db)
	todoRepo := repository.NewTodoRepository(db)
	chatRepo := repository.NewChatRepository(db)

	// Initialize calendar client
	var calClient *calendar.Client
	if cfg.CalendarBaseURL != "" {
		calClient = calendar.NewClient(cfg.CalendarBaseURL, cfg.CalendarAPIKey)
	}

	// Initialize assistant
	var assistant *services.AssistantService
	if cfg.OpenAIAPIKey != "" {
		assistant = services.NewAssistantService(cfg.OpenAIAPIKey)
	}

	// Initialize services
	authService := services.NewAuthService(userRepo)
	familyService := services.NewFamilyService(familyRepo, choreRepo)
	choreService := services.NewChoreService(choreRepo, familyRepo)
	todoService := services.NewTodoService(todoRepo, familyRepo)
	var chatCalClient services.CalendarClient
	if calClient != nil {
		chatCalClient = calClient
	}
	chatService := services.NewChatService(chatRepo, familyRepo, todoRepo, choreRepo, assistant, chatCalClient)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	familyHandler := handlers.NewFamilyHandler(familyService)
	choreHandler := handlers.NewChoreHandler(choreService)
	todoHandler := handlers.NewTodoHandler(todoService)
	calendarHandler := handlers.NewCalendarHandler(calClient)
	chatHandler := handlers.NewChatHandler(chatService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Hearth API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Family routes (protected)
		families := api.Group("/families")
		families.Use(middleware.RequireAuth())
		{
			families.POST("", familyHandler.CreateFamily)
			families.GET("", familyHandler.ListFamilies)
			families.POST("/join", familyHandler.JoinFamily)
			families.POST("/invitations/accept", familyHandler.AcceptInvitation)
			families.GET("/:id", middleware.RequireFamilyAccess(), familyHandler.GetFamily)
			families.PATCH("/:id", middleware.RequireFamilyAccess(), middleware.RequireFamilyParent(), familyHandler.UpdateFamily)
			families.DELETE("/:id", middleware.RequireFamilyAccess(), middleware.RequireFamilyParent(), familyHandler.DeleteFamily)
			families.POST("/:id/regenerate-code", middleware.RequireFamilyAccess(), middleware.RequireFamilyParent(), familyHandler.RegenerateInviteCode)
			families.GET("/:id/members", middleware.RequireFamilyAccess(), familyHandler.ListMembers)
			families.DELETE("/:id/members/:userId", middleware.RequireFamilyAccess(), middleware.RequireFamilyParent(), familyHandler.RemoveMember)
			families.POST("/:id/invitations", middleware.RequireFamilyAccess(), middleware.RequireFamilyParent(), familyHandler.InviteMember)
			families.DELETE("/:id/invitations/:invitationId", middleware.RequireFamilyAccess(), middleware.RequireFamilyParent(), familyHandler.RevokeInvitation)

			// Family-scoped chores and todos
			families.GET("/:id/chores", middleware.RequireFamilyAccess(), choreHandler.ListChores)
			families.POST("/:id/chores", middleware.RequireFamilyAccess(), choreHandler.CreateChore)
			families.GET("/:id/todos", middleware.RequireFamilyAccess(), todoHandler.ListTodos)
			families.POST("/:id/todos", middleware.RequireFamilyAccess(), todoHandler.CreateTodo)

			// Calendar proxy
			families.GET("/:id/events", middleware.RequireFamilyAccess(), calendarHandler.ListEvents)
			families.POST("/:id/events", middleware.RequireFamilyAccess(), calendarHandler.CreateEvent)
			families.PUT("/:id/events/:eventId", middleware.RequireFamilyAccess(), calendarHandler.UpdateEvent)
			families.DELETE("/:id/events/:eventId", middleware.RequireFamilyAccess(), calendarHandler.DeleteEvent)

			// Assistant chat
			families.GET("/:id/chat", middleware.RequireFamilyAccess(), chatHandler.GetHistory)
			families.POST("/:id/chat", middleware.RequireFamilyAccess(), chatHandler.SendMessage)
		}

		// Chore routes (protected)
		chores := api.Group("/chores")
		chores.Use(middleware.RequireAuth())
		{
			chores.GET("/:id", middleware.RequireChoreAccess(), choreHandler.GetChore)
			chores.PATCH("/:id", middleware.RequireChoreAccess(), choreHandler.UpdateChore)
			chores.DELETE("/:id", middleware.RequireChoreAccess(), choreHandler.DeleteChore)
			chores.POST("/:id/complete", middleware.RequireChoreAccess(), choreHandler.CompleteChore)
		}

		// Todo routes (protected)
		todos := api.Group("/todos")
		todos.Use(middleware.RequireAuth())
		{
			todos.GET("/:id", middleware.RequireTodoAccess(), todoHandler.GetTodo)
			todos.PATCH("/:id", middleware.RequireTodoAccess(), todoHandler.UpdateTodo)
			todos.DELETE("/:id", middleware.RequireTodoAccess(), todoHandler.DeleteTodo)
			todos.POST("/:id/toggle", middleware.RequireTodoAccess(), todoHandler.ToggleTodo)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
