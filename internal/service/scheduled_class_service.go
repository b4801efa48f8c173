package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/NASVIPS/rfid-attendance-system/internal/dto"
	"github.com/NASVIPS/rfid-attendance-system/internal/model"
	"github.com/NASVIPS/rfid-attendance-system/internal/repository"
	pkgerrors "github.com/NASVIPS/rfid-attendance-system/pkg/errors"
)

// 课表模块业务错误
var (
	ErrSubjectInstNotFound = errors.New("授课关系不存在")
	ErrBadTimeRange        = errors.New("时间格式错误或开始时间不早于结束时间")
	ErrScheduleSlotExists  = errors.New("该时段已存在相同的排课")
)

// ScheduledClassService 周课表业务逻辑
type ScheduledClassService struct {
	scheduleRepo repository.ScheduledClassRepository
	instRepo     repository.SubjectInstanceRepository
	facultyRepo  repository.FacultyRepository
	logger       *zap.Logger
}

// NewScheduledClassService 创建课表服务
func NewScheduledClassService(
	scheduleRepo repository.ScheduledClassRepository,
	instRepo repository.SubjectInstanceRepository,
	facultyRepo repository.FacultyRepository,
	logger *zap.Logger,
) *ScheduledClassService {
	return &ScheduledClassService{
		scheduleRepo: scheduleRepo,
		instRepo:     instRepo,
		facultyRepo:  facultyRepo,
		logger:       logger,
	}
}

// Create 创建课表时段
// 科目/班级冗余列取自授课关系；教师默认同授课关系，可显式覆盖（代课）。
// 同一时段重复排课由组合唯一约束拒绝，映射为 ErrScheduleSlotExists。
func (s *ScheduledClassService) Create(ctx context.Context, req *dto.CreateScheduledClassRequest) (*model.ScheduledClass, error) {
	inst, err := s.instRepo.GetByID(ctx, req.SubjectInstID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectInstNotFound
		}
		return nil, err
	}

	facultyID := inst.FacultyID
	if req.FacultyID != nil {
		if _, err := s.facultyRepo.GetByID(ctx, *req.FacultyID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrFacultyNotFound
			}
			return nil, err
		}
		facultyID = *req.FacultyID
	}

	startMin, err := parseHHMM(req.StartTime)
	if err != nil {
		return nil, ErrBadTimeRange
	}
	endMin, err := parseHHMM(req.EndTime)
	if err != nil {
		return nil, ErrBadTimeRange
	}
	if startMin >= endMin {
		return nil, ErrBadTimeRange
	}

	sc := &model.ScheduledClass{
		SubjectInstID: inst.SubjectInstID,
		SubjectID:     inst.SubjectID,
		SectionID:     inst.SectionID,
		FacultyID:     facultyID,
		DayOfWeek:     req.DayOfWeek,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
	}
	if err := s.scheduleRepo.Create(ctx, sc); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return nil, ErrScheduleSlotExists
		}
		return nil, err
	}

	s.logger.Info("课表时段创建成功",
		zap.String("scheduled_class_id", sc.ScheduledClassID),
		zap.String("day_of_week", sc.DayOfWeek),
		zap.String("start_time", sc.StartTime))

	return sc, nil
}

// GetByID 查询课表时段
func (s *ScheduledClassService) GetByID(ctx context.Context, id string) (*model.ScheduledClass, error) {
	sc, err := s.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduledClassNotFound
		}
		return nil, err
	}
	return sc, nil
}

// List 查询全部课表时段
func (s *ScheduledClassService) List(ctx context.Context) ([]model.ScheduledClass, error) {
	return s.scheduleRepo.List(ctx)
}

// ListByFacultyAndDay 查询某教师某天的课表
func (s *ScheduledClassService) ListByFacultyAndDay(ctx context.Context, facultyID, dayOfWeek string) ([]model.ScheduledClass, error) {
	return s.scheduleRepo.ListByFacultyAndDay(ctx, facultyID, dayOfWeek)
}

// Delete 删除课表时段
func (s *ScheduledClassService) Delete(ctx context.Context, id string) error {
	if _, err := s.scheduleRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrScheduledClassNotFound
		}
		return err
	}
	return s.scheduleRepo.Delete(ctx, id)
}
