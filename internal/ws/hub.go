package ws

import (
	"sync"

	"go.uber.org/zap"
)

// Hub WebSocket 连接注册与事件扇出中心
// 所有已连接前端收到同一份广播事件；录卡事件例外，
// 只定向推给持有对应录卡令牌的那一个连接。
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	// 录卡令牌 → 连接。前端带令牌建连或在连上发 START_RFID_ENROLLMENT
	// 绑定令牌，设备刷到的卡号据此推回发起录卡的页面
	mu         sync.RWMutex
	enrollment map[string]*Client

	logger *zap.Logger
}

// NewHub 创建事件扇出中心
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		enrollment: make(map[string]*Client),
		logger:     logger,
	}
}

// Run 主循环，应在独立 goroutine 中运行
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.BindEnrollment(client.enrollmentToken, client)
			h.logger.Debug("WebSocket 客户端接入",
				zap.Int("total", len(h.clients)))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				h.drop(client)
				h.logger.Debug("WebSocket 客户端断开",
					zap.Int("total", len(h.clients)))
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// 发送缓冲已满的慢客户端直接踢掉，不阻塞广播
					h.drop(client)
				}
			}
		}
	}
}

// drop 移除一个连接并关闭其发送通道
// 注销与慢客户端剔除共用此路径；该连接名下的录卡令牌
// 必须一并清理，否则令牌仍指向已关闭的通道。
func (h *Hub) drop(client *Client) {
	delete(h.clients, client)
	close(client.send)

	h.mu.Lock()
	for token, c := range h.enrollment {
		if c == client {
			delete(h.enrollment, token)
		}
	}
	h.mu.Unlock()
}

// BindEnrollment 将录卡令牌绑定到指定连接，空令牌忽略
func (h *Hub) BindEnrollment(token string, client *Client) {
	if token == "" {
		return
	}
	h.mu.Lock()
	h.enrollment[token] = client
	h.mu.Unlock()
}

// UnbindEnrollment 解除录卡令牌绑定
// 仅当令牌确属该连接时生效，防止误删他人的绑定
func (h *Hub) UnbindEnrollment(token string, client *Client) {
	h.mu.Lock()
	if h.enrollment[token] == client {
		delete(h.enrollment, token)
	}
	h.mu.Unlock()
}

// Broadcast 向所有连接广播一个事件
func (h *Hub) Broadcast(event *Event) {
	b := event.Encode()
	if b == nil {
		h.logger.Warn("事件序列化失败，放弃广播", zap.String("type", event.Type))
		return
	}
	h.broadcast <- b
}

// SendToEnrollment 把事件定向推给持有指定录卡令牌的连接
// 令牌无人持有时静默丢弃（页面已关闭或令牌过期）
func (h *Hub) SendToEnrollment(token string, event *Event) {
	b := event.Encode()
	if b == nil {
		return
	}

	h.mu.RLock()
	client, ok := h.enrollment[token]
	h.mu.RUnlock()
	if !ok {
		h.logger.Debug("录卡令牌无对应连接，事件丢弃", zap.String("type", event.Type))
		return
	}

	select {
	case client.send <- b:
	default:
	}
}
