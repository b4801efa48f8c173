package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/NASVIPS/rfid-attendance-system/internal/dto"
	"github.com/NASVIPS/rfid-attendance-system/internal/service"
	"github.com/NASVIPS/rfid-attendance-system/pkg/response"
)

// ScheduledClassHandler 周课表管理接口
type ScheduledClassHandler struct {
	svc    *service.Service
	logger *zap.Logger
}

func (h *ScheduledClassHandler) handleScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSubjectInstNotFound),
		errors.Is(err, service.ErrFacultyNotFound),
		errors.Is(err, service.ErrScheduledClassNotFound):
		response.NotFound(c, 20301, err.Error())
	case errors.Is(err, service.ErrBadTimeRange):
		response.BadRequest(c, 20302, err.Error())
	case errors.Is(err, service.ErrScheduleSlotExists):
		response.Conflict(c, 20303, err.Error())
	default:
		h.logger.Error("课表操作失败", zap.Error(err))
		response.InternalError(c)
	}
}

// Create 创建课表时段
// POST /api/scheduled-classes
func (h *ScheduledClassHandler) Create(c *gin.Context) {
	var req dto.CreateScheduledClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "请求参数错误")
		return
	}

	sc, err := h.svc.ScheduledClass.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.Created(c, sc)
}

// List 查询全部课表时段
// GET /api/scheduled-classes
func (h *ScheduledClassHandler) List(c *gin.Context) {
	classes, err := h.svc.ScheduledClass.List(c.Request.Context())
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.OK(c, classes)
}

// GetByID 查询课表时段详情
// GET /api/scheduled-classes/:id
func (h *ScheduledClassHandler) GetByID(c *gin.Context) {
	sc, err := h.svc.ScheduledClass.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.OK(c, sc)
}

// ListByFacultyAndDay 查询某教师某天的课表
// GET /api/scheduled-classes/faculty/:facultyId/day/:dayOfWeek
func (h *ScheduledClassHandler) ListByFacultyAndDay(c *gin.Context) {
	classes, err := h.svc.ScheduledClass.ListByFacultyAndDay(
		c.Request.Context(), c.Param("facultyId"), c.Param("dayOfWeek"))
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.OK(c, classes)
}

// Delete 删除课表时段
// DELETE /api/scheduled-classes/:id
func (h *ScheduledClassHandler) Delete(c *gin.Context) {
	if err := h.svc.ScheduledClass.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.OK(c, nil)
}
