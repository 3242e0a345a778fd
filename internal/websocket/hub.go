package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/wfunc/monopoly-game/internal/game"
	"go.uber.org/zap"
)

// Hub WebSocket连接管理中心，按对局分组推送状态
type Hub struct {
	// 客户端连接池
	clients   map[string]*Client
	clientsMu sync.RWMutex

	// 对局ID到订阅客户端的映射
	gameClients map[uint][]*Client
	gameMu      sync.RWMutex

	// 注册/注销通道
	register   chan *Client
	unregister chan *Client

	// 消息广播通道
	broadcast chan *Message

	done chan struct{}

	logger *zap.Logger
}

// Message WebSocket消息
type Message struct {
	Type      string          `json:"type"`
	GameID    uint            `json:"game_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

// 消息类型
const (
	MessageTypeConnected = "connected"
	MessageTypePing      = "ping"
	MessageTypePong      = "pong"
	MessageTypeError     = "error"
	MessageTypeGameState = "game_state"
)

// NewHub 创建Hub
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:     make(map[string]*Client),
		gameClients: make(map[uint][]*Client),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		broadcast:   make(chan *Message, 256),
		done:        make(chan struct{}),
		logger:      logger,
	}
}

// Run 运行Hub事件循环
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)

		case <-h.done:
			return
		}
	}
}

// Stop 停止Hub并断开全部连接
func (h *Hub) Stop() {
	close(h.done)

	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()
	for _, client := range h.clients {
		close(client.Send)
	}
	h.clients = make(map[string]*Client)

	h.gameMu.Lock()
	h.gameClients = make(map[uint][]*Client)
	h.gameMu.Unlock()
}

// GameUpdated 对局状态变化回调，向订阅该对局的客户端推送完整视图。
// 由回合引擎在事务提交后调用。
func (h *Hub) GameUpdated(view *game.GameView) {
	data, err := json.Marshal(view)
	if err != nil {
		h.logger.Error("序列化对局视图失败",
			zap.Uint("game_id", view.ID), zap.Error(err))
		return
	}

	message := &Message{
		Type:      MessageTypeGameState,
		GameID:    view.ID,
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
	}

	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn("广播通道已满，丢弃对局状态推送",
			zap.Uint("game_id", view.ID))
	}
}

// registerClient 注册客户端
func (h *Hub) registerClient(client *Client) {
	h.clientsMu.Lock()
	h.clients[client.ID] = client
	h.clientsMu.Unlock()

	h.gameMu.Lock()
	h.gameClients[client.GameID] = append(h.gameClients[client.GameID], client)
	h.gameMu.Unlock()

	h.logger.Info("WebSocket客户端连接",
		zap.String("client_id", client.ID),
		zap.Uint("user_id", client.UserID),
		zap.Uint("game_id", client.GameID))

	client.sendMessage(&Message{
		Type:      MessageTypeConnected,
		GameID:    client.GameID,
		Timestamp: time.Now().UnixMilli(),
	})
}

// unregisterClient 注销客户端
func (h *Hub) unregisterClient(client *Client) {
	h.clientsMu.Lock()
	if _, ok := h.clients[client.ID]; !ok {
		h.clientsMu.Unlock()
		return
	}
	delete(h.clients, client.ID)
	h.clientsMu.Unlock()

	h.gameMu.Lock()
	subscribers := h.gameClients[client.GameID]
	for i, c := range subscribers {
		if c.ID == client.ID {
			h.gameClients[client.GameID] = append(subscribers[:i], subscribers[i+1:]...)
			break
		}
	}
	if len(h.gameClients[client.GameID]) == 0 {
		delete(h.gameClients, client.GameID)
	}
	h.gameMu.Unlock()

	close(client.Send)

	h.logger.Info("WebSocket客户端断开",
		zap.String("client_id", client.ID),
		zap.Uint("game_id", client.GameID))
}

// broadcastMessage 向订阅对局的客户端分发消息
func (h *Hub) broadcastMessage(message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("序列化消息失败", zap.Error(err))
		return
	}

	h.gameMu.RLock()
	subscribers := make([]*Client, len(h.gameClients[message.GameID]))
	copy(subscribers, h.gameClients[message.GameID])
	h.gameMu.RUnlock()

	for _, client := range subscribers {
		select {
		case client.Send <- data:
		default:
			// 发送缓冲已满的客户端视为失联
			h.logger.Warn("客户端发送缓冲已满",
				zap.String("client_id", client.ID))
		}
	}
}

// SubscriberCount 对局当前订阅数
func (h *Hub) SubscriberCount(gameID uint) int {
	h.gameMu.RLock()
	defer h.gameMu.RUnlock()
	return len(h.gameClients[gameID])
}
