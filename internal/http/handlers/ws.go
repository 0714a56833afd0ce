package handlers

import (
	"net/http"
	"os"

	"github.com/Gbothemy/crypto-earning/internal/logger"
	"github.com/Gbothemy/crypto-earning/internal/service"
	"github.com/Gbothemy/crypto-earning/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// AdminFeed upgrades the connection to the live admin event feed. The token
// comes from the query string since browsers cannot set headers on websocket
// requests. Admin status is re-checked against the user row.
func (h *Handler) AdminFeed(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token required"})
		return
	}

	userID, err := service.ParseJWT(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	var isAdmin bool
	if err := h.DB.QueryRow(c.Request.Context(),
		`SELECT is_admin FROM users WHERE id = $1`, userID).Scan(&isAdmin); err != nil || !isAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
		return
	}

	allowedOrigin := os.Getenv("ALLOWED_ORIGIN")
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if allowedOrigin == "" {
				return true
			}
			return r.Header.Get("Origin") == allowedOrigin
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error("ws upgrade failed", "error", err)
		return
	}

	client := ws.NewClient(userID, conn, h.Hub)
	go client.Run()
}
