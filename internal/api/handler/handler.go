package handler

import (
	"go.uber.org/zap"

	"github.com/NASVIPS/rfid-attendance-system/config"
	"github.com/NASVIPS/rfid-attendance-system/internal/service"
	"github.com/NASVIPS/rfid-attendance-system/internal/ws"
)

// Handler 所有 HTTP 处理器的聚合入口
// 处理器在业务写操作成功后向 Hub 发布推送事件，服务层不感知 WebSocket
type Handler struct {
	Auth           *AuthHandler
	Session        *SessionHandler
	Scan           *ScanHandler
	Attendance     *AttendanceHandler
	Device         *DeviceHandler
	ScheduledClass *ScheduledClassHandler
	Directory      *DirectoryHandler
	Report         *ReportHandler
	WS             *WSHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service, hub *ws.Hub, cfg *config.Config, logger *zap.Logger) *Handler {
	return &Handler{
		Auth:           &AuthHandler{svc: svc, logger: logger},
		Session:        &SessionHandler{svc: svc, hub: hub, logger: logger},
		Scan:           &ScanHandler{svc: svc, hub: hub, logger: logger},
		Attendance:     &AttendanceHandler{svc: svc, logger: logger},
		Device:         &DeviceHandler{svc: svc, hub: hub, logger: logger},
		ScheduledClass: &ScheduledClassHandler{svc: svc, logger: logger},
		Directory:      &DirectoryHandler{svc: svc, logger: logger},
		Report:         &ReportHandler{svc: svc, logger: logger},
		WS:             &WSHandler{hub: hub, sendBuffer: cfg.WebSocket.SendBuffer, logger: logger},
	}
}
