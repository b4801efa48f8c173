package ws

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// 前端只发短小的控制消息，读上限给小即可
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// 浏览器跨域握手由 CORS 中间件之外单独放行（面向局域网内前端）
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Client 一个已升级的 WebSocket 连接
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	// enrollmentToken 非空表示该连接在等待录卡事件
	enrollmentToken string
}

// ServeWS 升级 HTTP 连接并注册到 Hub
// enrollmentToken 取自握手请求的 token 查询参数，可为空
func ServeWS(hub *Hub, w http.ResponseWriter, r *http.Request, sendBuffer int) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := &Client{
		hub:             hub,
		conn:            conn,
		send:            make(chan []byte, sendBuffer),
		enrollmentToken: r.URL.Query().Get("token"),
	}
	hub.register <- client

	go client.writePump()
	go client.readPump()
	return nil
}

// readPump 消费对端消息并及时感知断连从 Hub 注销。
// 前端会在连上发录卡控制消息（START/STOP_RFID_ENROLLMENT），
// 其余内容一律忽略。
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Debug("WebSocket 连接异常关闭", zap.Error(err))
			}
			return
		}
		c.handleMessage(data)
	}
}

// handleMessage 处理一条上行控制消息，无法解析的内容直接丢弃
func (c *Client) handleMessage(data []byte) {
	var msg clientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}

	switch msg.Type {
	case MessageStartRFIDEnrollment:
		c.hub.BindEnrollment(msg.Token, c)
	case MessageStopRFIDEnrollment:
		c.hub.UnbindEnrollment(msg.Token, c)
	}
}

// writePump 将 send 通道中的事件写给对端，并周期性发 ping 保活
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
