package handlers

import (
	"errors"
	"net/http"

	"github.com/Gbothemy/crypto-earning/internal/domain"
	"github.com/Gbothemy/crypto-earning/internal/service"
	"github.com/Gbothemy/crypto-earning/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	DB            *pgxpool.Pool
	Auth          *service.AuthService
	Conversion    *service.ConversionService
	Withdrawal    *service.WithdrawalService
	Tasks         *service.TaskService
	Achievements  *service.AchievementService
	Rewards       *service.RewardService
	Notifications *service.NotificationService
	Leaderboard   *service.LeaderboardService
	Admin         *service.AdminService
	Hub           *ws.Hub
}

func NewHandler(db *pgxpool.Pool, rdb *redis.Client, hub *ws.Hub) *Handler {
	return &Handler{
		DB:            db,
		Auth:          service.NewAuthService(db),
		Conversion:    service.NewConversionService(db),
		Withdrawal:    service.NewWithdrawalService(db, hub),
		Tasks:         service.NewTaskService(db),
		Achievements:  service.NewAchievementService(db),
		Rewards:       service.NewRewardService(db),
		Notifications: service.NewNotificationService(db),
		Leaderboard:   service.NewLeaderboardService(db, rdb),
		Admin:         service.NewAdminService(db),
		Hub:           hub,
	}
}

// getUserID extracts the authenticated user id set by the JWT middleware.
func getUserID(c *gin.Context) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch v := uidVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}

// respondErr maps service errors onto HTTP status codes.
func respondErr(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrInsufficientFunds):
		status = http.StatusPaymentRequired
	case errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrBelowMinimum),
		errors.Is(err, service.ErrInvalidAddress),
		errors.Is(err, service.ErrInvalidNetwork),
		errors.Is(err, service.ErrInvalidDecision),
		errors.Is(err, domain.ErrInvalidCurrency):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrAlreadyClaimed),
		errors.Is(err, service.ErrNotCompleted),
		errors.Is(err, service.ErrAlreadyResolved):
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
