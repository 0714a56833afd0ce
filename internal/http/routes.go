package http

import (
	"net/http"
	"time"

	"github.com/Gbothemy/crypto-earning/internal/config"
	"github.com/Gbothemy/crypto-earning/internal/http/handlers"
	"github.com/Gbothemy/crypto-earning/internal/http/middleware"
	"github.com/Gbothemy/crypto-earning/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// RegisterRoutes wires every endpoint onto the gin engine.
func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, rdb *redis.Client, hub *ws.Hub, cfg *config.Config, version string) {
	h := handlers.NewHandler(db, rdb, hub)
	healthHandler := handlers.NewHealthHandler(db, version)

	apiRateWindow := time.Duration(cfg.APIRateWindow) * time.Second

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.Metrics())
	v1.Use(middleware.RedisRateLimit(cfg.APIRateLimit, apiRateWindow))

	// Auth (tighter per-IP limit than the rest of the API)
	v1.POST("/auth/login", middleware.RedisRateLimit(cfg.AuthRateLimit, time.Minute), h.Login)

	// Profile
	v1.GET("/me", middleware.JWT(), h.Me)
	v1.PATCH("/me", middleware.JWT(), h.UpdateProfile)
	v1.GET("/me/activity", middleware.JWT(), h.MyActivity)

	// VIP tiers and conversion
	v1.GET("/vip/tiers", h.ListVIPTiers)
	v1.POST("/convert", middleware.JWT(), h.Convert)
	v1.GET("/convert/history", middleware.JWT(), h.ConversionHistory)

	// Withdrawals
	v1.GET("/withdrawals/options", h.WithdrawalOptions)
	v1.POST("/withdrawals/estimate", middleware.JWT(), h.EstimateWithdrawal)
	v1.POST("/withdrawals", middleware.JWT(), h.RequestWithdrawal)
	v1.GET("/withdrawals", middleware.JWT(), h.MyWithdrawals)

	// Tasks and achievements
	v1.GET("/tasks", middleware.JWT(), h.ListTasks)
	v1.POST("/tasks/:id/progress", middleware.JWT(), h.AddTaskProgress)
	v1.POST("/tasks/:id/claim", middleware.JWT(), h.ClaimTask)
	v1.GET("/achievements", middleware.JWT(), h.ListAchievements)
	v1.POST("/achievements/check", middleware.JWT(), h.CheckAchievements)

	// Daily rewards and games
	v1.POST("/rewards/daily/claim", middleware.JWT(), middleware.UserRateLimit(10, time.Minute), h.ClaimDaily)
	v1.GET("/rewards/history", middleware.JWT(), h.RewardHistory)
	v1.POST("/games/:type/spin", middleware.JWT(), middleware.UserRateLimit(30, time.Minute), h.SpinWheel)
	v1.POST("/games/:type/play", middleware.JWT(), h.RecordGamePlay)

	// Notifications
	v1.GET("/notifications", middleware.JWT(), h.ListNotifications)
	v1.POST("/notifications/:id/read", middleware.JWT(), h.MarkNotificationRead)
	v1.DELETE("/notifications/:id", middleware.JWT(), h.DeleteNotification)

	// Leaderboards
	v1.GET("/leaderboard", h.GetLeaderboard)

	// Admin console
	admin := v1.Group("/admin")
	admin.Use(middleware.JWT(), middleware.RequireAdmin(db))
	{
		admin.GET("/stats", h.AdminStats)
		admin.GET("/users", h.AdminListUsers)
		admin.GET("/users/:id", h.AdminGetUser)
		admin.PATCH("/users/:id", h.AdminEditUser)
		admin.GET("/withdrawals", h.AdminListWithdrawals)
		admin.POST("/withdrawals/:id", h.AdminResolveWithdrawal)
		admin.POST("/withdrawals/:id/complete", h.AdminCompleteWithdrawal)
		admin.GET("/config", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"poll_seconds": cfg.AdminPollSeconds})
		})
	}

	// WebSocket feed for the admin console (token via query string)
	v1.GET("/admin/ws", h.AdminFeed)
}
