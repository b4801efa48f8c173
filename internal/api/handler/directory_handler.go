package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/NASVIPS/rfid-attendance-system/internal/dto"
	"github.com/NASVIPS/rfid-attendance-system/internal/service"
	"github.com/NASVIPS/rfid-attendance-system/pkg/response"
)

// DirectoryHandler 学籍目录管理接口（专业/学期/班级/科目/师生档案）
type DirectoryHandler struct {
	svc    *service.Service
	logger *zap.Logger
}

func (h *DirectoryHandler) handleDirectoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCourseNotFound),
		errors.Is(err, service.ErrSemesterNotFound),
		errors.Is(err, service.ErrSectionNotFound),
		errors.Is(err, service.ErrSubjectNotFound),
		errors.Is(err, service.ErrStudentNotFound),
		errors.Is(err, service.ErrFacultyNotFound):
		response.NotFound(c, 20401, err.Error())
	case errors.Is(err, service.ErrDuplicateEntry),
		errors.Is(err, service.ErrSubjectInstExists):
		response.Conflict(c, 20402, err.Error())
	default:
		h.logger.Error("学籍目录操作失败", zap.Error(err))
		response.InternalError(c)
	}
}

// ── 专业 ──

// CreateCourse POST /api/courses
func (h *DirectoryHandler) CreateCourse(c *gin.Context) {
	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "请求参数错误")
		return
	}
	course, err := h.svc.Directory.CreateCourse(c.Request.Context(), &req)
	if err != nil {
		h.handleDirectoryError(c, err)
		return
	}
	response.Created(c, course)
}

// ListCourses GET /api/courses
func (h *DirectoryHandler) ListCourses(c *gin.Context) {
	courses, err := h.svc.Directory.ListCourses(c.Request.Context())
	if err != nil {
		h.handleDirectoryError(c, err)
		return
	}
	response.OK(c, courses)
}

// DeleteCourse DELETE /api/courses/:id
func (h *DirectoryHandler) DeleteCourse(c *gin.Context) {
	if err := h.svc.Directory.DeleteCourse(c.Request.Context(), c.Param("id")); err != nil {
		h.handleDirectoryError(c, err)
		return
	}
	response.OK(c, nil)
}

// ── 学期 ──

// CreateSemester POST /api/semesters
func (h *DirectoryHandler) CreateSemester(c *gin.Context) {
	var req dto.CreateSemesterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "请求参数错误")
		return
	}
	semester, err := h.svc.Directory.CreateSemester(c.Request.Context(), &req)
	if err != nil {
		h.handleDirectoryError(c, err)
		return
	}
	response.Created(c, semester)
}

// ListSemestersByCourse GET /api/courses/:id/semesters
func (h *DirectoryHandler) ListSemestersByCourse(c *gin.Context) {
	semesters, err := h.svc.Directory.ListSemestersByCourse(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleDirectoryError(c, err)
		return
	}
	response.OK(c, semesters)
}

// ── 班级 ──

// CreateSection POST /api/sections
func (h *DirectoryHandler) CreateSection(c *gin.Context) {
	var req dto.CreateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "请求参数错误")
		return
	}
	section, err := h.svc.Directory.CreateSection(c.Request.Context(), &req)
	if err != nil {
		h.handleDirectoryError(c, err)
		return
	}
	response.Created(c, section)
}

// ListSectionsBySemester GET /api/semesters/:id/sections
func (h *DirectoryHandler) ListSectionsBySemester(c *gin.Context) {
	sections, err := h.svc.Directory.ListSectionsBySemester(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleDirectoryError(c, err)
		return
	}
	response.OK(c, sections)
}

// ── 科目 ──

// CreateSubject POST /api/subjects
func (h *DirectoryHandler) CreateSubject(c *gin.Context) {
	var req dto.CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "请求参数错误")
		return
	}
	subject, err := h.svc.Directory.CreateSubject(c.Request.Context(), &req)
	if err != nil {
		h.handleDirectoryError(c, err)
		return
	}
	response.Created(c, subject)
}

// ListSubjects GET /api/subjects
func (h *DirectoryHandler) ListSubjects(c *gin.Context) {
	subjects, err := h.svc.Directory.ListSubjects(c.Request.Context())
	if err != nil {
		h.handleDirectoryError(c, err)
		return
	}
	response.OK(c, subjects)
}

// AssignSemesterSubject POST /api/semester-subjects
func (h *DirectoryHandler) AssignSemesterSubject(c *gin.Context) {
	var req dto.AssignSemesterSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "请求参数错误")
		return
	}
	ss, err := h.svc.Directory.AssignSemesterSubject(c.Request.Context(), &req)
	if err != nil {
		h.handleDirectoryError(c, err)
		return
	}
	response.Created(c, ss)
}

// ── 授课关系 ──

// CreateSubjectInstance POST /api/subject-instances
func (h *DirectoryHandler) CreateSubjectInstance(c *gin.Context) {
	var req dto.CreateSubjectInstanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "请求参数错误")
		return
	}
	inst, err := h.svc.Directory.CreateSubjectInstance(c.Request.Context(), &req)
	if err != nil {
		h.handleDirectoryError(c, err)
		return
	}
	response.Created(c, inst)
}

// ListSubjectInstancesByFaculty GET /api/faculties/:id/subject-instances
func (h *DirectoryHandler) ListSubjectInstancesByFaculty(c *gin.Context) {
	insts, err := h.svc.Directory.ListSubjectInstancesByFaculty(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleDirectoryError(c, err)
		return
	}
	response.OK(c, insts)
}

// ── 学生 ──

// CreateStudent POST /api/students
func (h *DirectoryHandler) CreateStudent(c *gin.Context) {
	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "请求参数错误")
		return
	}
	student, err := h.svc.Directory.CreateStudent(c.Request.Context(), &req)
	if err != nil {
		h.handleDirectoryError(c, err)
		return
	}
	response.Created(c, student)
}

// UpdateStudent PATCH /api/students/:id
// 录卡流程最后一步：把设备推来的卡号写进学生档案
func (h *DirectoryHandler) UpdateStudent(c *gin.Context) {
	var req dto.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "请求参数错误")
		return
	}
	student, err := h.svc.Directory.UpdateStudent(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleDirectoryError(c, err)
		return
	}
	response.OK(c, student)
}

// ListStudentsBySection GET /api/sections/:id/students
func (h *DirectoryHandler) ListStudentsBySection(c *gin.Context) {
	students, err := h.svc.Directory.ListStudentsBySection(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleDirectoryError(c, err)
		return
	}
	response.OK(c, students)
}

// DeleteStudent DELETE /api/students/:id
func (h *DirectoryHandler) DeleteStudent(c *gin.Context) {
	if err := h.svc.Directory.DeleteStudent(c.Request.Context(), c.Param("id")); err != nil {
		h.handleDirectoryError(c, err)
		return
	}
	response.OK(c, nil)
}

// ── 教师 ──

// CreateFaculty POST /api/faculties
func (h *DirectoryHandler) CreateFaculty(c *gin.Context) {
	var req dto.CreateFacultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "请求参数错误")
		return
	}
	faculty, err := h.svc.Directory.CreateFaculty(c.Request.Context(), &req)
	if err != nil {
		h.handleDirectoryError(c, err)
		return
	}
	response.Created(c, faculty)
}

// UpdateFaculty PATCH /api/faculties/:id
func (h *DirectoryHandler) UpdateFaculty(c *gin.Context) {
	var req dto.UpdateFacultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "请求参数错误")
		return
	}
	faculty, err := h.svc.Directory.UpdateFaculty(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleDirectoryError(c, err)
		return
	}
	response.OK(c, faculty)
}

// ListFaculties GET /api/faculties
func (h *DirectoryHandler) ListFaculties(c *gin.Context) {
	faculties, err := h.svc.Directory.ListFaculties(c.Request.Context())
	if err != nil {
		h.handleDirectoryError(c, err)
		return
	}
	response.OK(c, faculties)
}
