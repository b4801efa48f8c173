package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/NASVIPS/rfid-attendance-system/internal/dto"
	"github.com/NASVIPS/rfid-attendance-system/internal/model"
	"github.com/NASVIPS/rfid-attendance-system/internal/repository"
	pkgerrors "github.com/NASVIPS/rfid-attendance-system/pkg/errors"
)

// 签到模块业务错误
var (
	ErrCardNotEnrolled     = errors.New("该卡未绑定任何学生")
	ErrStudentNotInSection = errors.New("学生不属于该课堂的班级")
	ErrAlreadyMarked       = errors.New("该学生本节课已签到")
	ErrSectionNotFound     = errors.New("班级不存在")
)

// AttendanceService 签到与到课快照业务逻辑
type AttendanceService struct {
	attendanceRepo repository.AttendanceLogRepository
	sessionRepo    repository.ClassSessionRepository
	studentRepo    repository.StudentRepository
	sectionRepo    repository.SectionRepository
	logger         *zap.Logger
	now            func() time.Time
}

// NewAttendanceService 创建签到服务
func NewAttendanceService(
	attendanceRepo repository.AttendanceLogRepository,
	sessionRepo repository.ClassSessionRepository,
	studentRepo repository.StudentRepository,
	sectionRepo repository.SectionRepository,
	logger *zap.Logger,
) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		sessionRepo:    sessionRepo,
		studentRepo:    studentRepo,
		sectionRepo:    sectionRepo,
		logger:         logger,
		now:            time.Now,
	}
}

// RecordScan 处理设备上报的一次刷卡
// 校验顺序：课堂存在且未关闭 → 卡号已绑定 → 学生属于课堂班级。
// 重复刷卡不做"先查后插"，直接插入并由 (session_id, student_id)
// 唯一约束拒绝，冲突映射为 ErrAlreadyMarked，保证并发下恰好一条记录。
func (s *AttendanceService) RecordScan(ctx context.Context, req *dto.ScanRequest, deviceMac, deviceID string) (*model.AttendanceLog, *model.Student, error) {
	session, err := s.sessionRepo.GetByID(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrSessionNotFound
		}
		return nil, nil, err
	}
	if session.IsClosed {
		return nil, nil, ErrSessionClosed
	}

	student, err := s.studentRepo.GetByRFIDUid(ctx, req.RFIDUid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrCardNotEnrolled
		}
		return nil, nil, err
	}
	if session.SubjectInst == nil || student.SectionID != session.SubjectInst.SectionID {
		return nil, nil, ErrStudentNotInSection
	}

	log := &model.AttendanceLog{
		SessionID:     session.SessionID,
		StudentID:     student.StudentID,
		Timestamp:     s.now(),
		Status:        model.AttendanceStatusPresent,
		DeviceMacAddr: deviceMac,
	}
	if deviceID != "" {
		log.DeviceID = &deviceID
	}
	if err := s.attendanceRepo.Create(ctx, log); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return nil, nil, ErrAlreadyMarked
		}
		return nil, nil, err
	}

	s.logger.Info("签到成功",
		zap.String("session_id", session.SessionID),
		zap.String("student_id", student.StudentID),
		zap.String("device_mac", deviceMac))

	return log, student, nil
}

// Snapshot 生成课堂实时到课快照
// 以班级名册为全集做划分：已刷卡的进 Present（按刷卡先后），
// 其余进 Absent（名册本身按姓名升序）。两边人数之和恒等于名册总数。
func (s *AttendanceService) Snapshot(ctx context.Context, sessionID string) (*dto.SnapshotResponse, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session.SubjectInst == nil {
		return nil, ErrSessionNotFound
	}

	roster, err := s.studentRepo.ListBySection(ctx, session.SubjectInst.SectionID)
	if err != nil {
		return nil, err
	}
	logs, err := s.attendanceRepo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	rosterByID := make(map[string]*model.Student, len(roster))
	for i := range roster {
		rosterByID[roster[i].StudentID] = &roster[i]
	}

	present := make([]dto.PresentStudent, 0, len(logs))
	marked := make(map[string]struct{}, len(logs))
	for i := range logs {
		student, ok := rosterByID[logs[i].StudentID]
		if !ok {
			// 签到后被移出班级的学生不再计入快照
			continue
		}
		present = append(present, dto.PresentStudent{
			ID:           student.StudentID,
			Name:         student.Name,
			EnrollmentNo: student.EnrollmentNo,
			Timestamp:    logs[i].Timestamp.Format(time.RFC3339),
			Status:       logs[i].Status,
		})
		marked[student.StudentID] = struct{}{}
	}

	absent := make([]dto.AbsentStudent, 0, len(roster)-len(present))
	for i := range roster {
		if _, ok := marked[roster[i].StudentID]; ok {
			continue
		}
		absent = append(absent, dto.AbsentStudent{
			ID:           roster[i].StudentID,
			Name:         roster[i].Name,
			EnrollmentNo: roster[i].EnrollmentNo,
			Status:       "ABSENT",
		})
	}

	return &dto.SnapshotResponse{
		Present:        present,
		Absent:         absent,
		TotalInSection: len(roster),
		PresentCount:   len(present),
		AbsentCount:    len(absent),
	}, nil
}

// ListBySession 查询某课堂全部签到记录
func (s *AttendanceService) ListBySession(ctx context.Context, sessionID string) ([]model.AttendanceLog, error) {
	if _, err := s.sessionRepo.GetByID(ctx, sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return s.attendanceRepo.ListBySession(ctx, sessionID)
}

// AggregatedReport 班级出勤汇总报表
// 统计口径：查询范围内该班级每个已关闭课堂计一次课，
// 学生在该课堂有签到记录计一次出勤。
func (s *AttendanceService) AggregatedReport(ctx context.Context, req *dto.AggregatedReportRequest) ([]dto.StudentAttendanceSummary, error) {
	if _, err := s.sectionRepo.GetByID(ctx, req.SectionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectionNotFound
		}
		return nil, err
	}

	var start, end *time.Time
	if req.StartDate != nil {
		t, err := time.ParseInLocation("2006-01-02", *req.StartDate, time.Local)
		if err == nil {
			start = &t
		}
	}
	if req.EndDate != nil {
		t, err := time.ParseInLocation("2006-01-02", *req.EndDate, time.Local)
		if err == nil {
			// 含当天：查询上界推到次日零点前
			t = t.Add(24*time.Hour - time.Second)
			end = &t
		}
	}

	sessions, err := s.sessionRepo.ListClosedForReport(ctx, req.SectionID, req.SubjectID, start, end)
	if err != nil {
		return nil, err
	}

	roster, err := s.studentRepo.ListBySection(ctx, req.SectionID)
	if err != nil {
		return nil, err
	}

	presentCount := make(map[string]int, len(roster))
	if len(sessions) > 0 {
		ids := make([]string, len(sessions))
		for i := range sessions {
			ids[i] = sessions[i].SessionID
		}
		logs, err := s.attendanceRepo.ListBySessionIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for i := range logs {
			presentCount[logs[i].StudentID]++
		}
	}

	total := len(sessions)
	summaries := make([]dto.StudentAttendanceSummary, 0, len(roster))
	for i := range roster {
		p := presentCount[roster[i].StudentID]
		var pct float64
		if total > 0 {
			pct = float64(p) / float64(total) * 100
		}
		summaries = append(summaries, dto.StudentAttendanceSummary{
			StudentID:            roster[i].StudentID,
			Name:                 roster[i].Name,
			EnrollmentNo:         roster[i].EnrollmentNo,
			PresentCount:         p,
			AbsentCount:          total - p,
			TotalClasses:         total,
			AttendancePercentage: pct,
		})
	}
	return summaries, nil
}
