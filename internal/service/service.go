package service

import (
	"go.uber.org/zap"

	"github.com/NASVIPS/rfid-attendance-system/internal/repository"
	"github.com/NASVIPS/rfid-attendance-system/pkg/jwt"
	"github.com/NASVIPS/rfid-attendance-system/pkg/redis"
)

// Service 所有业务服务的聚合入口
type Service struct {
	Auth           *AuthService
	Session        *SessionService
	Attendance     *AttendanceService
	Device         *DeviceService
	ScheduledClass *ScheduledClassService
	Directory      *DirectoryService
	Report         *ReportService
}

// NewService 创建 Service 聚合
func NewService(repo *repository.Repository, jwtMgr *jwt.Manager, cache *redis.Client, logger *zap.Logger) *Service {
	sessionSvc := NewSessionService(repo.ClassSession, repo.ScheduledClass, repo.Faculty, logger)
	attendanceSvc := NewAttendanceService(repo.AttendanceLog, repo.ClassSession, repo.Student, repo.Section, logger)
	directorySvc := NewDirectoryService(repo, logger)

	return &Service{
		Auth:           NewAuthService(repo.User, jwtMgr, cache, logger),
		Session:        sessionSvc,
		Attendance:     attendanceSvc,
		Device:         NewDeviceService(repo.Device, repo.Faculty, logger),
		ScheduledClass: NewScheduledClassService(repo.ScheduledClass, repo.SubjectInstance, repo.Faculty, logger),
		Directory:      directorySvc,
		Report:         NewReportService(attendanceSvc, sessionSvc, directorySvc, logger),
	}
}
