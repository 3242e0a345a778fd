package websocket

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WebSocket配置
const (
	// 写超时
	writeWait = 10 * time.Second

	// 读取pong超时
	pongWait = 60 * time.Second

	// ping发送周期（必须小于pongWait）
	pingPeriod = (pongWait * 9) / 10

	// 最大消息大小
	maxMessageSize = 4 * 1024
)

// Client WebSocket客户端，订阅单个对局
type Client struct {
	ID     string
	UserID uint
	GameID uint
	Hub    *Hub
	Conn   *websocket.Conn
	Send   chan []byte
}

// NewClient 创建新客户端
func NewClient(hub *Hub, conn *websocket.Conn, userID, gameID uint) *Client {
	return &Client{
		ID:     uuid.NewString(),
		UserID: userID,
		GameID: gameID,
		Hub:    hub,
		Conn:   conn,
		Send:   make(chan []byte, 64),
	}
}

// Register 将客户端注册进Hub
func (c *Client) Register() {
	c.Hub.register <- c
}

// ReadPump 读取消息
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Error("WebSocket读取错误",
					zap.String("client_id", c.ID),
					zap.Error(err))
			}
			break
		}

		c.handleMessage(data)
	}
}

// WritePump 写入消息
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage 处理客户端发来的消息
func (c *Client) handleMessage(data []byte) {
	var message Message
	if err := json.Unmarshal(data, &message); err != nil {
		c.sendMessage(&Message{
			Type:      MessageTypeError,
			Timestamp: time.Now().UnixMilli(),
		})
		return
	}

	switch message.Type {
	case MessageTypePing:
		c.sendMessage(&Message{
			Type:      MessageTypePong,
			Timestamp: time.Now().UnixMilli(),
		})
	default:
		// 状态推送是单向的，其余客户端消息忽略
	}
}

// sendMessage 序列化并投递到发送通道
func (c *Client) sendMessage(message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		return
	}
	select {
	case c.Send <- data:
	default:
	}
}
