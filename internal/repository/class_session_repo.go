package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/NASVIPS/rfid-attendance-system/internal/model"
)

// ClassSessionRepository 课堂数据访问接口
type ClassSessionRepository interface {
	// Create 依赖部分唯一索引 uniq_open_session_per_subject_inst 拒绝并发重复开课；
	// 冲突以唯一约束错误形式返回，调用方据此映射为业务冲突
	Create(ctx context.Context, session *model.ClassSession) error
	GetByID(ctx context.Context, id string) (*model.ClassSession, error)
	// Close 将课堂置为已关闭并记录下课时间；只更新这两列
	Close(ctx context.Context, id string, endAt time.Time) error
	ListActive(ctx context.Context) ([]model.ClassSession, error)
	// GetActiveByTeacher 返回教师当前进行中课堂；
	// 若不变量被破坏存在多条，取最近开始的一条
	GetActiveByTeacher(ctx context.Context, teacherID string) (*model.ClassSession, error)
	// ListClosedForReport 汇总报表用：按班级（可选科目）与时间范围查询已关闭课堂
	ListClosedForReport(ctx context.Context, sectionID string, subjectID *string, start, end *time.Time) ([]model.ClassSession, error)
}

type classSessionRepo struct {
	db *gorm.DB
}

func NewClassSessionRepo(db *gorm.DB) ClassSessionRepository {
	return &classSessionRepo{db: db}
}

func (r *classSessionRepo) Create(ctx context.Context, session *model.ClassSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *classSessionRepo) GetByID(ctx context.Context, id string) (*model.ClassSession, error) {
	var session model.ClassSession
	err := r.db.WithContext(ctx).
		Preload("SubjectInst").
		Preload("SubjectInst.Subject").
		Preload("SubjectInst.Section").
		Preload("SubjectInst.Faculty").
		Preload("Teacher").
		Where("session_id = ?", id).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *classSessionRepo) Close(ctx context.Context, id string, endAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.ClassSession{}).
		Where("session_id = ?", id).
		Updates(map[string]interface{}{
			"is_closed": true,
			"end_at":    endAt,
		}).Error
}

func (r *classSessionRepo) ListActive(ctx context.Context) ([]model.ClassSession, error) {
	var sessions []model.ClassSession
	err := r.db.WithContext(ctx).
		Preload("SubjectInst").
		Preload("SubjectInst.Subject").
		Preload("SubjectInst.Section").
		Preload("Teacher").
		Where("is_closed = ?", false).
		Order("start_at ASC").
		Find(&sessions).Error
	return sessions, err
}

func (r *classSessionRepo) GetActiveByTeacher(ctx context.Context, teacherID string) (*model.ClassSession, error) {
	var session model.ClassSession
	err := r.db.WithContext(ctx).
		Preload("SubjectInst").
		Preload("SubjectInst.Subject").
		Preload("SubjectInst.Section").
		Preload("Teacher").
		Where("teacher_id = ? AND is_closed = ?", teacherID, false).
		Order("start_at DESC").
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *classSessionRepo) ListClosedForReport(ctx context.Context, sectionID string, subjectID *string, start, end *time.Time) ([]model.ClassSession, error) {
	db := r.db.WithContext(ctx).
		Joins("JOIN subject_instances si ON si.subject_inst_id = class_sessions.subject_inst_id").
		Where("si.section_id = ?", sectionID).
		Where("class_sessions.is_closed = ?", true)

	if subjectID != nil {
		db = db.Where("si.subject_id = ?", *subjectID)
	}
	if start != nil {
		db = db.Where("class_sessions.start_at >= ?", *start)
	}
	if end != nil {
		db = db.Where("class_sessions.start_at <= ?", *end)
	}

	var sessions []model.ClassSession
	err := db.Order("class_sessions.start_at ASC").Find(&sessions).Error
	return sessions, err
}
