package app

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"

	"github.com/sahan-deakin/something-awesome/internal/auth"
	"github.com/sahan-deakin/something-awesome/internal/cache"
	"github.com/sahan-deakin/something-awesome/internal/chatbot"
	"github.com/sahan-deakin/something-awesome/internal/config"
	"github.com/sahan-deakin/something-awesome/internal/handlers"
	"github.com/sahan-deakin/something-awesome/internal/repo"
	"github.com/sahan-deakin/something-awesome/internal/service"
	"github.com/sahan-deakin/something-awesome/internal/session"
)

// Setup registers all routes on the given engine. rdb may be nil; the app
// then runs with in-memory sessions and no chat transcripts.
func Setup(r *gin.Engine, cfg config.Config, db *pgxpool.Pool, rdb *redis.Client) {
	var sessions session.Store
	var history *cache.ChatHistory
	if rdb != nil {
		sessions = session.NewRedisStore(rdb, cfg.Auth.SessionTTL.Duration())
		history = cache.NewChatHistory(rdb, cfg.Auth.SessionTTL.Duration(), cfg.Chat.HistoryLimit)
	} else {
		sessions = session.NewMemoryStore()
	}

	hasher := auth.NewHasher(cfg.Auth.BcryptCost)
	userRepo := repo.NewPGUserRepo(db)
	userSvc := service.NewUserService(userRepo, hasher)
	chatSvc := service.NewChatService(chatbot.NewDefaultMatcher(), history)

	pageHandler := handlers.NewPageHandler()
	authHandler := handlers.NewAuthHandler(sessions, userSvc, chatSvc)
	chatHandler := handlers.NewChatHandler(chatSvc)

	r.Use(auth.CurrentUser(sessions))

	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))

	r.GET("/", pageHandler.Index)
	r.GET("/login", pageHandler.LoginPage)
	r.GET("/register", pageHandler.RegisterPage)
	r.POST("/login", authHandler.Login)
	r.POST("/register", authHandler.Register)
	r.POST("/logout", authHandler.Logout)
	r.POST("/chat", chatHandler.Respond)

	protected := r.Group("", auth.RequireSession())
	protected.GET("/profile", pageHandler.Profile)
	protected.GET("/chat/history", chatHandler.History)
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}
