package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/NASVIPS/rfid-attendance-system/config"
	"github.com/NASVIPS/rfid-attendance-system/internal/api/handler"
	"github.com/NASVIPS/rfid-attendance-system/internal/api/middleware"
	"github.com/NASVIPS/rfid-attendance-system/internal/model"
	"github.com/NASVIPS/rfid-attendance-system/internal/service"
	"github.com/NASVIPS/rfid-attendance-system/pkg/jwt"
	"github.com/NASVIPS/rfid-attendance-system/pkg/redis"
)

// Setup 组装路由
// 三类访问面：设备接口走设备认证，管理接口走 JWT + 角色，
// WebSocket 与健康检查公开
func Setup(
	h *handler.Handler,
	svc *service.Service,
	jwtMgr *jwt.Manager,
	cache *redis.Client,
	cfg *config.Config,
	logger *zap.Logger,
) *gin.Engine {
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.SecurityHeaders(),
		middleware.CORS(&cfg.Server.CORS),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/ws", h.WS.Serve)

	api := r.Group("/api")

	// ── 认证 ──
	auth := api.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimit(cache, 10, time.Minute), h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)

		authed := auth.Group("", middleware.JWTAuth(jwtMgr, cache))
		{
			authed.POST("/logout", h.Auth.Logout)
			authed.GET("/profile", h.Auth.Profile)
			authed.POST("/register", middleware.RoleAuth(model.RoleAdmin), h.Auth.RegisterUser)
		}
	}

	// ── 设备侧接口（MAC + 密钥认证）──
	deviceAuthed := api.Group("", middleware.DeviceAuth(svc.Device))
	{
		deviceAuthed.POST("/scan/rfid", h.Scan.RFID)
		deviceAuthed.POST("/scan/enrollment-rfid", h.Scan.EnrollmentRFID)
		deviceAuthed.POST("/device/heartbeat", h.Device.Heartbeat)
		deviceAuthed.POST("/device/auth-teacher", h.Device.TeacherAuth)
		// 设备在教师刷工牌后据此恢复该教师的进行中课堂
		deviceAuthed.GET("/session/active-by-teacher/:teacherId", h.Session.GetActiveByTeacher)
	}

	// ── 管理接口（JWT 认证）──
	authed := api.Group("", middleware.JWTAuth(jwtMgr, cache))

	session := authed.Group("/session")
	{
		session.POST("/start", h.Session.Start)
		session.POST("/close/:sessionId", h.Session.Close)
		session.GET("/active", middleware.RoleAuth(model.RoleAdmin, model.RolePCoord), h.Session.ListActive)
		session.GET("/:sessionId", h.Session.GetByID)
	}

	attendance := authed.Group("/attendance")
	{
		attendance.GET("/snapshot/:sessionId", h.Attendance.Snapshot)
		attendance.GET("/session/:sessionId", h.Attendance.ListBySession)
		attendance.GET("/report/aggregated", h.Attendance.AggregatedReport)
	}

	authed.GET("/report/export", h.Report.Export)
	authed.GET("/report/session/:sessionId/export", h.Report.ExportSession)

	// 课表与学籍目录的写操作仅限管理角色
	admin := authed.Group("", middleware.RoleAuth(model.RoleAdmin, model.RolePCoord))

	schedule := authed.Group("/scheduled-classes")
	{
		schedule.GET("", h.ScheduledClass.List)
		schedule.GET("/:id", h.ScheduledClass.GetByID)
		schedule.GET("/faculty/:facultyId/day/:dayOfWeek", h.ScheduledClass.ListByFacultyAndDay)
	}
	adminSchedule := admin.Group("/scheduled-classes")
	{
		adminSchedule.POST("", h.ScheduledClass.Create)
		adminSchedule.DELETE("/:id", h.ScheduledClass.Delete)
	}

	device := authed.Group("/device")
	{
		device.GET("", h.Device.List)
	}
	admin.POST("/device", middleware.RoleAuth(model.RoleAdmin), h.Device.Register)

	// 学籍目录
	{
		authed.GET("/courses", h.Directory.ListCourses)
		authed.GET("/courses/:id/semesters", h.Directory.ListSemestersByCourse)
		authed.GET("/semesters/:id/sections", h.Directory.ListSectionsBySemester)
		authed.GET("/subjects", h.Directory.ListSubjects)
		authed.GET("/sections/:id/students", h.Directory.ListStudentsBySection)
		authed.GET("/faculties", h.Directory.ListFaculties)
		authed.GET("/faculties/:id/subject-instances", h.Directory.ListSubjectInstancesByFaculty)

		admin.POST("/courses", h.Directory.CreateCourse)
		admin.DELETE("/courses/:id", h.Directory.DeleteCourse)
		admin.POST("/semesters", h.Directory.CreateSemester)
		admin.POST("/sections", h.Directory.CreateSection)
		admin.POST("/subjects", h.Directory.CreateSubject)
		admin.POST("/semester-subjects", h.Directory.AssignSemesterSubject)
		admin.POST("/subject-instances", h.Directory.CreateSubjectInstance)
		admin.POST("/students", h.Directory.CreateStudent)
		admin.PATCH("/students/:id", h.Directory.UpdateStudent)
		admin.DELETE("/students/:id", h.Directory.DeleteStudent)
		admin.POST("/faculties", h.Directory.CreateFaculty)
		admin.PATCH("/faculties/:id", h.Directory.UpdateFaculty)
	}

	return r
}
