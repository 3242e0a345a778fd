package api

import (
	"github.com/gin-gonic/gin"
	"github.com/wfunc/monopoly-game/internal/game"
	"github.com/wfunc/monopoly-game/internal/middleware"
	"github.com/wfunc/monopoly-game/internal/repository"
	"github.com/wfunc/monopoly-game/internal/service"
	"github.com/wfunc/monopoly-game/internal/websocket"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Router API路由器
type Router struct {
	engine         *gin.Engine
	db             *gorm.DB
	authHandler    *AuthHandler
	gameHandler    *GameHandler
	wsHandler      *WebSocketHandler
	authMiddleware *middleware.AuthMiddleware
	log            *zap.Logger
}

// NewRouter 创建路由器
func NewRouter(
	db *gorm.DB,
	turnEngine *game.TurnEngine,
	authService service.AuthService,
	hub *websocket.Hub,
	log *zap.Logger,
) *Router {
	engine := gin.New()

	// 全局中间件
	engine.Use(gin.Recovery())
	engine.Use(gin.Logger())

	router := &Router{
		engine:         engine,
		db:             db,
		authHandler:    NewAuthHandler(authService, repository.NewUserRepository(db)),
		gameHandler:    NewGameHandler(turnEngine, log),
		wsHandler:      NewWebSocketHandler(hub, log),
		authMiddleware: middleware.NewAuthMiddleware(authService),
		log:            log,
	}

	router.setupRoutes()

	return router
}

// setupRoutes 设置路由
func (r *Router) setupRoutes() {
	// 健康检查
	r.engine.GET("/health", r.healthCheck)

	// API v1路由组
	v1 := r.engine.Group("/api/v1")
	{
		// 认证相关路由（不需要认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
			auth.POST("/refresh", r.authHandler.RefreshToken)

			// 需要认证的路由
			authRequired := auth.Group("")
			authRequired.Use(r.authMiddleware.RequireAuth())
			{
				authRequired.POST("/logout", r.authHandler.Logout)
				authRequired.GET("/profile", r.authHandler.GetProfile)
			}
		}

		// 对局相关路由（需要认证）
		games := v1.Group("/games")
		games.Use(r.authMiddleware.RequireAuth())
		{
			games.POST("", r.gameHandler.CreateGame)
			games.GET("", r.gameHandler.ListGames)
			games.GET("/:id", r.gameHandler.GetGame)
			games.POST("/:id/roll", r.gameHandler.RollDice)
			games.POST("/:id/buy", r.gameHandler.BuyProperty)
			games.POST("/:id/skip", r.gameHandler.SkipBuying)
			games.POST("/:id/pay", r.gameHandler.PayRent)
		}
	}

	// WebSocket路由（令牌通过query传递）
	ws := r.engine.Group("/ws")
	ws.Use(r.authMiddleware.RequireAuth())
	{
		ws.GET("/games/:id", r.wsHandler.Subscribe)
	}

	// 404处理
	r.engine.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"code":    "NOT_FOUND",
			"message": "接口不存在",
		})
	})
}

// healthCheck 健康检查
func (r *Router) healthCheck(c *gin.Context) {
	sqlDB, err := r.db.DB()
	if err != nil || sqlDB.Ping() != nil {
		c.JSON(503, gin.H{
			"status":   "unhealthy",
			"database": "down",
		})
		return
	}

	c.JSON(200, gin.H{
		"status":   "healthy",
		"database": "up",
	})
}

// Engine 返回Gin引擎
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
