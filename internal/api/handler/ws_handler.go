package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/NASVIPS/rfid-attendance-system/internal/ws"
)

// WSHandler WebSocket 接入接口
type WSHandler struct {
	hub        *ws.Hub
	sendBuffer int
	logger     *zap.Logger
}

// Serve 升级连接并注册到 Hub
// GET /ws?token=<录卡令牌，可选>
func (h *WSHandler) Serve(c *gin.Context) {
	if err := ws.ServeWS(h.hub, c.Writer, c.Request, h.sendBuffer); err != nil {
		h.logger.Warn("WebSocket 升级失败", zap.Error(err))
	}
}
