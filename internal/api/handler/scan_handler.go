package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/NASVIPS/rfid-attendance-system/internal/api/middleware"
	"github.com/NASVIPS/rfid-attendance-system/internal/dto"
	"github.com/NASVIPS/rfid-attendance-system/internal/service"
	"github.com/NASVIPS/rfid-attendance-system/internal/ws"
	"github.com/NASVIPS/rfid-attendance-system/pkg/response"
)

// ScanHandler 设备刷卡上报接口（设备认证保护）
type ScanHandler struct {
	svc    *service.Service
	hub    *ws.Hub
	logger *zap.Logger
}

// RFID 签到刷卡
// POST /api/scan/rfid
// 签到成功后推送最新到课快照；重复刷卡返回 409，不产生第二条记录；
// 课堂不存在或已关闭返回 400
func (h *ScanHandler) RFID(c *gin.Context) {
	var req dto.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "请求参数错误")
		return
	}

	deviceMac := c.GetString(middleware.CtxDeviceMac)
	deviceID := c.GetString(middleware.CtxDeviceID)
	log, student, err := h.svc.Attendance.RecordScan(c.Request.Context(), &req, deviceMac, deviceID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCardNotEnrolled):
			response.NotFound(c, 20101, err.Error())
		// 设备端把课堂失效（不存在或已下课）当作无效请求处理
		case errors.Is(err, service.ErrSessionNotFound):
			response.BadRequest(c, 20102, err.Error())
		case errors.Is(err, service.ErrSessionClosed):
			response.BadRequest(c, 20103, err.Error())
		case errors.Is(err, service.ErrStudentNotInSection):
			response.BadRequest(c, 20104, err.Error())
		case errors.Is(err, service.ErrAlreadyMarked):
			response.Conflict(c, 20105, err.Error())
		default:
			h.logger.Error("签到处理失败", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	// 快照生成失败不影响签到结果，只是这一次不推送
	if snapshot, snapErr := h.svc.Attendance.Snapshot(c.Request.Context(), req.SessionID); snapErr == nil {
		h.hub.Broadcast(&ws.Event{
			Type: ws.EventAttendanceSnapshotUpdate,
			Payload: gin.H{
				"session_id": req.SessionID,
				"snapshot":   snapshot,
			},
		})
	}

	response.OK(c, dto.AttendanceResponse{
		ID:        log.AttendanceLogID,
		SessionID: log.SessionID,
		Student: &dto.StudentBrief{
			ID:           student.StudentID,
			Name:         student.Name,
			EnrollmentNo: student.EnrollmentNo,
		},
		Timestamp:     log.Timestamp.Format(time.RFC3339),
		Status:        log.Status,
		DeviceMacAddr: log.DeviceMacAddr,
	})
}

// EnrollmentRFID 录卡刷卡
// POST /api/scan/enrollment-rfid
// 不落库，只把卡号定向推给持有录卡令牌的前端页面
func (h *ScanHandler) EnrollmentRFID(c *gin.Context) {
	var req dto.EnrollmentScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "请求参数错误")
		return
	}

	h.hub.SendToEnrollment(req.Token, &ws.Event{
		Type: ws.EventRFIDScanned,
		Payload: gin.H{
			"rfid_uid": req.RFIDUid,
		},
	})

	h.logger.Info("录卡刷卡已转发",
		zap.String("device_mac", c.GetString(middleware.CtxDeviceMac)))

	response.OK(c, gin.H{"forwarded": true})
}
