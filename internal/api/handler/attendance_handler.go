package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/NASVIPS/rfid-attendance-system/internal/dto"
	"github.com/NASVIPS/rfid-attendance-system/internal/service"
	"github.com/NASVIPS/rfid-attendance-system/pkg/response"
)

// AttendanceHandler 到课快照与出勤查询接口
type AttendanceHandler struct {
	svc    *service.Service
	logger *zap.Logger
}

func (h *AttendanceHandler) handleAttendanceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrSectionNotFound):
		response.NotFound(c, 20106, err.Error())
	default:
		h.logger.Error("出勤查询失败", zap.Error(err))
		response.InternalError(c)
	}
}

// Snapshot 查询课堂实时到课快照
// GET /api/attendance/snapshot/:sessionId
func (h *AttendanceHandler) Snapshot(c *gin.Context) {
	snapshot, err := h.svc.Attendance.Snapshot(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}
	response.OK(c, snapshot)
}

// ListBySession 查询课堂全部签到记录
// GET /api/attendance/session/:sessionId
func (h *AttendanceHandler) ListBySession(c *gin.Context) {
	logs, err := h.svc.Attendance.ListBySession(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}
	response.OK(c, logs)
}

// AggregatedReport 班级出勤汇总
// GET /api/attendance/report/aggregated?section_id=&subject_id=&start_date=&end_date=
func (h *AttendanceHandler) AggregatedReport(c *gin.Context) {
	var req dto.AggregatedReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "请求参数错误")
		return
	}

	summaries, err := h.svc.Attendance.AggregatedReport(c.Request.Context(), &req)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}
	response.OK(c, summaries)
}
