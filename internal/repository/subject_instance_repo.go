package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/NASVIPS/rfid-attendance-system/internal/model"
)

// SubjectInstanceRepository 授课关系数据访问接口
type SubjectInstanceRepository interface {
	Create(ctx context.Context, inst *model.SubjectInstance) error
	GetByID(ctx context.Context, id string) (*model.SubjectInstance, error)
	// GetByTriple 按 科目×班级×教师 三元组查找授课关系
	GetByTriple(ctx context.Context, subjectID, sectionID, facultyID string) (*model.SubjectInstance, error)
	ListByFaculty(ctx context.Context, facultyID string) ([]model.SubjectInstance, error)
	Delete(ctx context.Context, id string) error
}

type subjectInstanceRepo struct {
	db *gorm.DB
}

func NewSubjectInstanceRepo(db *gorm.DB) SubjectInstanceRepository {
	return &subjectInstanceRepo{db: db}
}

func (r *subjectInstanceRepo) Create(ctx context.Context, inst *model.SubjectInstance) error {
	return r.db.WithContext(ctx).Create(inst).Error
}

func (r *subjectInstanceRepo) GetByID(ctx context.Context, id string) (*model.SubjectInstance, error) {
	var inst model.SubjectInstance
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Preload("Section").
		Preload("Faculty").
		Where("subject_inst_id = ?", id).
		First(&inst).Error
	if err != nil {
		return nil, err
	}
	return &inst, nil
}

func (r *subjectInstanceRepo) GetByTriple(ctx context.Context, subjectID, sectionID, facultyID string) (*model.SubjectInstance, error) {
	var inst model.SubjectInstance
	err := r.db.WithContext(ctx).
		Where("subject_id = ? AND section_id = ? AND faculty_id = ?", subjectID, sectionID, facultyID).
		First(&inst).Error
	if err != nil {
		return nil, err
	}
	return &inst, nil
}

func (r *subjectInstanceRepo) ListByFaculty(ctx context.Context, facultyID string) ([]model.SubjectInstance, error) {
	var insts []model.SubjectInstance
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Preload("Section").
		Where("faculty_id = ?", facultyID).
		Find(&insts).Error
	return insts, err
}

func (r *subjectInstanceRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("subject_inst_id = ?", id).
		Delete(&model.SubjectInstance{}).Error
}
