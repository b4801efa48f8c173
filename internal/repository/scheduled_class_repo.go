package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/NASVIPS/rfid-attendance-system/internal/model"
)

// ScheduledClassRepository 周课表数据访问接口
type ScheduledClassRepository interface {
	// Create 依赖组合唯一约束 (day_of_week, subject_id, section_id, start_time, end_time)
	// 拒绝重复时段；冲突以唯一约束错误形式返回
	Create(ctx context.Context, sc *model.ScheduledClass) error
	GetByID(ctx context.Context, id string) (*model.ScheduledClass, error)
	// ListByFacultyAndDay 查询某教师某天的全部时段，按开始时间升序
	// （自动推断"现在该上哪节课"依赖该顺序做稳定决胜）
	ListByFacultyAndDay(ctx context.Context, facultyID, dayOfWeek string) ([]model.ScheduledClass, error)
	ListBySubjectInst(ctx context.Context, subjectInstID string) ([]model.ScheduledClass, error)
	List(ctx context.Context) ([]model.ScheduledClass, error)
	Delete(ctx context.Context, id string) error
}

type scheduledClassRepo struct {
	db *gorm.DB
}

func NewScheduledClassRepo(db *gorm.DB) ScheduledClassRepository {
	return &scheduledClassRepo{db: db}
}

func (r *scheduledClassRepo) Create(ctx context.Context, sc *model.ScheduledClass) error {
	return r.db.WithContext(ctx).Create(sc).Error
}

func (r *scheduledClassRepo) GetByID(ctx context.Context, id string) (*model.ScheduledClass, error) {
	var sc model.ScheduledClass
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Preload("Section").
		Preload("Faculty").
		Where("scheduled_class_id = ?", id).
		First(&sc).Error
	if err != nil {
		return nil, err
	}
	return &sc, nil
}

func (r *scheduledClassRepo) ListByFacultyAndDay(ctx context.Context, facultyID, dayOfWeek string) ([]model.ScheduledClass, error) {
	var classes []model.ScheduledClass
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Preload("Section").
		Where("faculty_id = ? AND day_of_week = ?", facultyID, dayOfWeek).
		Order("start_time ASC").
		Find(&classes).Error
	return classes, err
}

func (r *scheduledClassRepo) ListBySubjectInst(ctx context.Context, subjectInstID string) ([]model.ScheduledClass, error) {
	var classes []model.ScheduledClass
	err := r.db.WithContext(ctx).
		Where("subject_inst_id = ?", subjectInstID).
		Order("day_of_week ASC, start_time ASC").
		Find(&classes).Error
	return classes, err
}

func (r *scheduledClassRepo) List(ctx context.Context) ([]model.ScheduledClass, error) {
	var classes []model.ScheduledClass
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Preload("Section").
		Preload("Faculty").
		Order("day_of_week ASC, start_time ASC").
		Find(&classes).Error
	return classes, err
}

func (r *scheduledClassRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("scheduled_class_id = ?", id).
		Delete(&model.ScheduledClass{}).Error
}
