package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/NASVIPS/rfid-attendance-system/internal/model"
)

// AttendanceLogRepository 签到记录数据访问接口
type AttendanceLogRepository interface {
	// Create 直接插入，不做"先查后插"——重复签到由 (session_id, student_id)
	// 唯一约束在存储层拒绝，并发重复刷卡不会产生双份记录
	Create(ctx context.Context, log *model.AttendanceLog) error
	// ListBySession 返回某课堂全部签到记录，按刷卡时间升序，附带学生信息
	ListBySession(ctx context.Context, sessionID string) ([]model.AttendanceLog, error)
	// ListBySessionIDs 汇总报表用：批量查询多个课堂的签到记录
	ListBySessionIDs(ctx context.Context, sessionIDs []string) ([]model.AttendanceLog, error)
}

type attendanceLogRepo struct {
	db *gorm.DB
}

func NewAttendanceLogRepo(db *gorm.DB) AttendanceLogRepository {
	return &attendanceLogRepo{db: db}
}

func (r *attendanceLogRepo) Create(ctx context.Context, log *model.AttendanceLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *attendanceLogRepo) ListBySession(ctx context.Context, sessionID string) ([]model.AttendanceLog, error) {
	var logs []model.AttendanceLog
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("session_id = ?", sessionID).
		Order("timestamp ASC").
		Find(&logs).Error
	return logs, err
}

func (r *attendanceLogRepo) ListBySessionIDs(ctx context.Context, sessionIDs []string) ([]model.AttendanceLog, error) {
	if len(sessionIDs) == 0 {
		return nil, nil
	}
	var logs []model.AttendanceLog
	err := r.db.WithContext(ctx).
		Where("session_id IN ?", sessionIDs).
		Order("timestamp ASC").
		Find(&logs).Error
	return logs, err
}
