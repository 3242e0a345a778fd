package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"
	"github.com/wfunc/monopoly-game/internal/middleware"
	"github.com/wfunc/monopoly-game/internal/websocket"
	"go.uber.org/zap"
)

// WebSocketHandler 对局状态推送处理器
type WebSocketHandler struct {
	hub *websocket.Hub
	log *zap.Logger

	upgrader gorillaws.Upgrader
}

// NewWebSocketHandler 创建WebSocket处理器
func NewWebSocketHandler(hub *websocket.Hub, log *zap.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub: hub,
		log: log,
		upgrader: gorillaws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				// 客户端部署域不固定，放开跨域握手
				return true
			},
		},
	}
}

// Subscribe 订阅对局状态推送
func (h *WebSocketHandler) Subscribe(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Code:    "UNAUTHORIZED",
			Message: "未登录",
		})
		return
	}

	gameID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "INVALID_GAME_ID",
			Message: "无效的对局ID",
		})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error("WebSocket升级失败", zap.Error(err))
		return
	}

	client := websocket.NewClient(h.hub, conn, userID, uint(gameID))
	client.Register()

	go client.WritePump()
	go client.ReadPump()
}
