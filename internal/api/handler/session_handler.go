package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/NASVIPS/rfid-attendance-system/internal/api/middleware"
	"github.com/NASVIPS/rfid-attendance-system/internal/dto"
	"github.com/NASVIPS/rfid-attendance-system/internal/model"
	"github.com/NASVIPS/rfid-attendance-system/internal/service"
	"github.com/NASVIPS/rfid-attendance-system/internal/ws"
	"github.com/NASVIPS/rfid-attendance-system/pkg/response"
)

// SessionHandler 课堂生命周期接口
type SessionHandler struct {
	svc    *service.Service
	hub    *ws.Hub
	logger *zap.Logger
}

func (h *SessionHandler) handleSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrFacultyNotFound),
		errors.Is(err, service.ErrScheduledClassNotFound),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrNoActiveSession):
		response.NotFound(c, 20001, err.Error())
	case errors.Is(err, service.ErrNoClassNow),
		errors.Is(err, service.ErrOutsideGraceWindow):
		response.BadRequest(c, 20002, err.Error())
	case errors.Is(err, service.ErrSessionAlreadyOpen),
		errors.Is(err, service.ErrSessionClosed):
		response.Conflict(c, 20003, err.Error())
	case errors.Is(err, service.ErrNotScheduledTeacher),
		errors.Is(err, service.ErrNotSessionOwner):
		response.Forbidden(c, 10003, err.Error())
	default:
		h.logger.Error("课堂操作失败", zap.Error(err))
		response.InternalError(c)
	}
}

// Start 开始上课
// POST /api/session/start
// 教师只能以自己的身份开课；ADMIN/PCOORD 可代任意教师开课
func (h *SessionHandler) Start(c *gin.Context) {
	var req dto.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "请求参数错误")
		return
	}

	role := c.GetString(middleware.CtxRole)
	if role == model.RoleTeacher && req.FacultyID != c.GetString(middleware.CtxFacultyID) {
		response.Forbidden(c, 10003, "教师只能以本人身份开课")
		return
	}

	session, err := h.svc.Session.StartSession(c.Request.Context(), &req)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	resp := toSessionResponse(session)
	h.hub.Broadcast(&ws.Event{Type: ws.EventSessionStatusUpdate, Payload: resp})
	response.Created(c, resp)
}

// Close 下课
// POST /api/session/close/:sessionId
func (h *SessionHandler) Close(c *gin.Context) {
	sessionID := c.Param("sessionId")

	session, err := h.svc.Session.CloseSession(
		c.Request.Context(),
		sessionID,
		c.GetString(middleware.CtxRole),
		c.GetString(middleware.CtxFacultyID),
	)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	resp := toSessionResponse(session)
	h.hub.Broadcast(&ws.Event{Type: ws.EventSessionStatusUpdate, Payload: resp})
	response.OK(c, resp)
}

// GetByID 查询课堂详情
// GET /api/session/:sessionId
// 教师只能查看自己的课堂；管理角色不受限
func (h *SessionHandler) GetByID(c *gin.Context) {
	session, err := h.svc.Session.GetByID(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		h.handleSessionError(c, err)
		return
	}
	if c.GetString(middleware.CtxRole) == model.RoleTeacher &&
		session.TeacherID != c.GetString(middleware.CtxFacultyID) {
		response.Forbidden(c, 10003, "无权查看他人的课堂")
		return
	}
	response.OK(c, toSessionResponse(session))
}

// ListActive 查询全部进行中课堂
// GET /api/session/active
func (h *SessionHandler) ListActive(c *gin.Context) {
	sessions, err := h.svc.Session.ListActive(c.Request.Context())
	if err != nil {
		h.handleSessionError(c, err)
		return
	}
	response.OK(c, toSessionResponses(sessions))
}

// GetActiveByTeacher 查询某教师当前进行中的课堂
// GET /api/session/active-by-teacher/:teacherId
func (h *SessionHandler) GetActiveByTeacher(c *gin.Context) {
	session, err := h.svc.Session.GetActiveByTeacher(c.Request.Context(), c.Param("teacherId"))
	if err != nil {
		h.handleSessionError(c, err)
		return
	}
	response.OK(c, toSessionResponse(session))
}
