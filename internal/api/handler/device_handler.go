package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/NASVIPS/rfid-attendance-system/internal/api/middleware"
	"github.com/NASVIPS/rfid-attendance-system/internal/dto"
	"github.com/NASVIPS/rfid-attendance-system/internal/service"
	"github.com/NASVIPS/rfid-attendance-system/internal/ws"
	"github.com/NASVIPS/rfid-attendance-system/pkg/response"
)

// DeviceHandler 刷卡设备管理与设备侧接口
type DeviceHandler struct {
	svc    *service.Service
	hub    *ws.Hub
	logger *zap.Logger
}

// Register 注册新设备
// POST /api/device（仅 ADMIN）
func (h *DeviceHandler) Register(c *gin.Context) {
	var req dto.RegisterDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "请求参数错误")
		return
	}

	device, err := h.svc.Device.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrDeviceExists) {
			response.Conflict(c, 20201, err.Error())
			return
		}
		h.logger.Error("设备注册失败", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.Created(c, device)
}

// List 查询全部设备
// GET /api/device
func (h *DeviceHandler) List(c *gin.Context) {
	devices, err := h.svc.Device.List(c.Request.Context())
	if err != nil {
		h.logger.Error("设备查询失败", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, devices)
}

// Heartbeat 设备上线心跳
// POST /api/device/heartbeat（设备认证）
// 刷新 LastBootAt 并向前端广播设备状态变化
func (h *DeviceHandler) Heartbeat(c *gin.Context) {
	mac := c.GetString(middleware.CtxDeviceMac)

	device, err := h.svc.Device.Heartbeat(c.Request.Context(), mac)
	if err != nil {
		if errors.Is(err, service.ErrDeviceNotFound) {
			response.NotFound(c, 20202, err.Error())
			return
		}
		h.logger.Error("设备心跳处理失败", zap.Error(err))
		response.InternalError(c)
		return
	}

	h.hub.Broadcast(&ws.Event{
		Type: ws.EventDeviceAuthStatusUpdate,
		Payload: gin.H{
			"mac_addr":     device.MacAddr,
			"last_boot_at": device.LastBootAt,
			"online":       true,
		},
	})

	response.OK(c, device)
}

// TeacherAuth 教师在设备上刷工牌的身份握手
// POST /api/device/auth-teacher（设备认证）
// 成功后设备进入该教师的操作上下文（开课/签到），并广播给前端
func (h *DeviceHandler) TeacherAuth(c *gin.Context) {
	var req dto.TeacherAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "请求参数错误")
		return
	}

	faculty, err := h.svc.Device.AuthenticateTeacherRFID(c.Request.Context(), req.TeacherRFIDUid)
	if err != nil {
		if errors.Is(err, service.ErrTeacherCardUnknown) {
			response.NotFound(c, 20203, err.Error())
			return
		}
		h.logger.Error("教师刷卡认证失败", zap.Error(err))
		response.InternalError(c)
		return
	}

	// 前端据此把设备状态面板切到该教师的上下文
	h.hub.Broadcast(&ws.Event{
		Type: ws.EventDeviceAuthStatusUpdate,
		Payload: gin.H{
			"mac_addr": c.GetString(middleware.CtxDeviceMac),
			"teacher": gin.H{
				"id":     faculty.FacultyID,
				"name":   faculty.Name,
				"emp_id": faculty.EmpID,
			},
		},
	})

	response.OK(c, dto.TeacherAuthResponse{
		Teacher: &dto.TeacherBrief{
			ID:    faculty.FacultyID,
			Name:  faculty.Name,
			EmpID: faculty.EmpID,
		},
	})
}
