package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/NASVIPS/rfid-attendance-system/internal/dto"
	"github.com/NASVIPS/rfid-attendance-system/internal/model"
	"github.com/NASVIPS/rfid-attendance-system/internal/repository"
	pkgerrors "github.com/NASVIPS/rfid-attendance-system/pkg/errors"
)

// 课堂模块业务错误
var (
	ErrFacultyNotFound        = errors.New("教师不存在")
	ErrScheduledClassNotFound = errors.New("课表时段不存在")
	ErrNoClassNow             = errors.New("当前时间没有该教师的排课")
	ErrOutsideGraceWindow     = errors.New("当前时间不在该课的开课时间窗内")
	ErrNotScheduledTeacher    = errors.New("该课表时段不属于此教师")
	ErrSessionAlreadyOpen     = errors.New("该班级的此课程已有进行中的课堂")
	ErrSessionNotFound        = errors.New("课堂不存在")
	ErrSessionClosed          = errors.New("课堂已关闭")
	ErrNoActiveSession        = errors.New("该教师当前没有进行中的课堂")
	ErrNotSessionOwner        = errors.New("无权操作他人的课堂")
)

// graceWindowMinutes 开课时间窗的前后宽限（分钟）。
// 教师可在课表开始前 15 分钟到结束后 15 分钟之间发起开课。
const graceWindowMinutes = 15

// SessionService 课堂生命周期业务逻辑
// 开课 → 签到 → 关闭；同一授课关系至多一个进行中课堂
type SessionService struct {
	sessionRepo  repository.ClassSessionRepository
	scheduleRepo repository.ScheduledClassRepository
	facultyRepo  repository.FacultyRepository
	logger       *zap.Logger
	now          func() time.Time // 便于测试注入固定时钟
}

// NewSessionService 创建课堂服务
func NewSessionService(
	sessionRepo repository.ClassSessionRepository,
	scheduleRepo repository.ScheduledClassRepository,
	facultyRepo repository.FacultyRepository,
	logger *zap.Logger,
) *SessionService {
	return &SessionService{
		sessionRepo:  sessionRepo,
		scheduleRepo: scheduleRepo,
		facultyRepo:  facultyRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// parseHHMM 解析 "HH:MM" 为当日零点起的分钟数
func parseHHMM(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("时间格式错误: %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("时间格式错误: %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("时间格式错误: %q", s)
	}
	return h*60 + m, nil
}

// withinGraceWindow 判断当前分钟数是否落在 [start-15, end+15] 闭区间内
func withinGraceWindow(nowMin, startMin, endMin int) bool {
	return nowMin >= startMin-graceWindowMinutes && nowMin <= endMin+graceWindowMinutes
}

// matchesNow 判断课表时段在当前时刻是否可开课（星期相同且落在宽限窗内）
func matchesNow(sc *model.ScheduledClass, now time.Time) bool {
	if sc.DayOfWeek != model.DayOfWeekOf(now) {
		return false
	}
	startMin, err := parseHHMM(sc.StartTime)
	if err != nil {
		return false
	}
	endMin, err := parseHHMM(sc.EndTime)
	if err != nil {
		return false
	}
	nowMin := now.Hour()*60 + now.Minute()
	return withinGraceWindow(nowMin, startMin, endMin)
}

// StartSession 发起开课
// 指定 ScheduledClassID 时校验其归属与时间窗；未指定时按当前时刻
// 自动推断该教师此刻的课（命中多个时取开始时间最早的一个）。
// "同一授课关系至多一个进行中课堂"由存储层部分唯一索引保证，
// 并发重复开课在插入时失败并映射为 ErrSessionAlreadyOpen。
func (s *SessionService) StartSession(ctx context.Context, req *dto.StartSessionRequest) (*model.ClassSession, error) {
	if _, err := s.facultyRepo.GetByID(ctx, req.FacultyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFacultyNotFound
		}
		return nil, err
	}

	now := s.now()

	var sc *model.ScheduledClass
	if req.ScheduledClassID != nil {
		found, err := s.scheduleRepo.GetByID(ctx, *req.ScheduledClassID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrScheduledClassNotFound
			}
			return nil, err
		}
		if found.FacultyID != req.FacultyID {
			return nil, ErrNotScheduledTeacher
		}
		if !matchesNow(found, now) {
			return nil, ErrOutsideGraceWindow
		}
		sc = found
	} else {
		candidates, err := s.scheduleRepo.ListByFacultyAndDay(ctx, req.FacultyID, model.DayOfWeekOf(now))
		if err != nil {
			return nil, err
		}
		// 列表按开始时间升序，取首个命中者即最早开始的课
		for i := range candidates {
			if matchesNow(&candidates[i], now) {
				sc = &candidates[i]
				break
			}
		}
		if sc == nil {
			return nil, ErrNoClassNow
		}
	}

	session := &model.ClassSession{
		SubjectInstID: sc.SubjectInstID,
		TeacherID:     req.FacultyID,
		StartAt:       now,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return nil, ErrSessionAlreadyOpen
		}
		return nil, err
	}

	s.logger.Info("课堂已开启",
		zap.String("session_id", session.SessionID),
		zap.String("subject_inst_id", sc.SubjectInstID),
		zap.String("teacher_id", req.FacultyID))

	// 重新读取以携带科目/班级/教师关联
	return s.sessionRepo.GetByID(ctx, session.SessionID)
}

// CloseSession 关闭课堂
// 任课教师只能关自己的课堂；ADMIN 与 PCOORD 可关闭任意课堂。
// 关闭是幂等终态操作的入口：已关闭的课堂再次关闭返回 ErrSessionClosed。
func (s *SessionService) CloseSession(ctx context.Context, sessionID, actorRole, actorFacultyID string) (*model.ClassSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session.IsClosed {
		return nil, ErrSessionClosed
	}
	if actorRole != model.RoleAdmin && actorRole != model.RolePCoord {
		if session.TeacherID != actorFacultyID {
			return nil, ErrNotSessionOwner
		}
	}

	endAt := s.now()
	if err := s.sessionRepo.Close(ctx, sessionID, endAt); err != nil {
		return nil, err
	}

	s.logger.Info("课堂已关闭",
		zap.String("session_id", sessionID),
		zap.String("closed_by_role", actorRole))

	session.IsClosed = true
	session.EndAt = &endAt
	return session, nil
}

// GetByID 查询课堂详情
func (s *SessionService) GetByID(ctx context.Context, sessionID string) (*model.ClassSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

// ListActive 查询全部进行中课堂
func (s *SessionService) ListActive(ctx context.Context) ([]model.ClassSession, error) {
	return s.sessionRepo.ListActive(ctx)
}

// GetActiveByTeacher 查询某教师当前进行中的课堂
func (s *SessionService) GetActiveByTeacher(ctx context.Context, teacherID string) (*model.ClassSession, error) {
	session, err := s.sessionRepo.GetActiveByTeacher(ctx, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveSession
		}
		return nil, err
	}
	return session, nil
}
