package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/NASVIPS/rfid-attendance-system/internal/model"
)

// CourseRepository 专业数据访问接口
type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	GetByID(ctx context.Context, id string) (*model.Course, error)
	List(ctx context.Context) ([]model.Course, error)
	Delete(ctx context.Context, id string) error
}

// SemesterRepository 学期数据访问接口
type SemesterRepository interface {
	Create(ctx context.Context, semester *model.Semester) error
	GetByID(ctx context.Context, id string) (*model.Semester, error)
	ListByCourse(ctx context.Context, courseID string) ([]model.Semester, error)
	Delete(ctx context.Context, id string) error
}

// SectionRepository 班级数据访问接口
type SectionRepository interface {
	Create(ctx context.Context, section *model.Section) error
	GetByID(ctx context.Context, id string) (*model.Section, error)
	ListBySemester(ctx context.Context, semesterID string) ([]model.Section, error)
	Delete(ctx context.Context, id string) error
}

// SubjectRepository 科目数据访问接口
type SubjectRepository interface {
	Create(ctx context.Context, subject *model.Subject) error
	GetByID(ctx context.Context, id string) (*model.Subject, error)
	List(ctx context.Context) ([]model.Subject, error)
	Delete(ctx context.Context, id string) error
}

// SemesterSubjectRepository 学期-科目关联数据访问接口
type SemesterSubjectRepository interface {
	Create(ctx context.Context, ss *model.SemesterSubject) error
	ListBySemester(ctx context.Context, semesterID string) ([]model.SemesterSubject, error)
	Delete(ctx context.Context, id string) error
}

// ── Course Repository 实现 ──

type courseRepo struct {
	db *gorm.DB
}

func NewCourseRepo(db *gorm.DB) CourseRepository {
	return &courseRepo{db: db}
}

func (r *courseRepo) Create(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepo) GetByID(ctx context.Context, id string) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Where("course_id = ?", id).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) List(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.WithContext(ctx).Order("name ASC").Find(&courses).Error
	return courses, err
}

func (r *courseRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("course_id = ?", id).
		Delete(&model.Course{}).Error
}

// ── Semester Repository 实现 ──

type semesterRepo struct {
	db *gorm.DB
}

func NewSemesterRepo(db *gorm.DB) SemesterRepository {
	return &semesterRepo{db: db}
}

func (r *semesterRepo) Create(ctx context.Context, semester *model.Semester) error {
	return r.db.WithContext(ctx).Create(semester).Error
}

func (r *semesterRepo) GetByID(ctx context.Context, id string) (*model.Semester, error) {
	var semester model.Semester
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("semester_id = ?", id).
		First(&semester).Error
	if err != nil {
		return nil, err
	}
	return &semester, nil
}

func (r *semesterRepo) ListByCourse(ctx context.Context, courseID string) ([]model.Semester, error) {
	var semesters []model.Semester
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("number ASC").
		Find(&semesters).Error
	return semesters, err
}

func (r *semesterRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("semester_id = ?", id).
		Delete(&model.Semester{}).Error
}

// ── Section Repository 实现 ──

type sectionRepo struct {
	db *gorm.DB
}

func NewSectionRepo(db *gorm.DB) SectionRepository {
	return &sectionRepo{db: db}
}

func (r *sectionRepo) Create(ctx context.Context, section *model.Section) error {
	return r.db.WithContext(ctx).Create(section).Error
}

func (r *sectionRepo) GetByID(ctx context.Context, id string) (*model.Section, error) {
	var section model.Section
	err := r.db.WithContext(ctx).
		Preload("Semester").Preload("Semester.Course").
		Where("section_id = ?", id).
		First(&section).Error
	if err != nil {
		return nil, err
	}
	return &section, nil
}

func (r *sectionRepo) ListBySemester(ctx context.Context, semesterID string) ([]model.Section, error) {
	var sections []model.Section
	err := r.db.WithContext(ctx).
		Where("semester_id = ?", semesterID).
		Order("name ASC").
		Find(&sections).Error
	return sections, err
}

func (r *sectionRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("section_id = ?", id).
		Delete(&model.Section{}).Error
}

// ── Subject Repository 实现 ──

type subjectRepo struct {
	db *gorm.DB
}

func NewSubjectRepo(db *gorm.DB) SubjectRepository {
	return &subjectRepo{db: db}
}

func (r *subjectRepo) Create(ctx context.Context, subject *model.Subject) error {
	return r.db.WithContext(ctx).Create(subject).Error
}

func (r *subjectRepo) GetByID(ctx context.Context, id string) (*model.Subject, error) {
	var subject model.Subject
	err := r.db.WithContext(ctx).
		Where("subject_id = ?", id).
		First(&subject).Error
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *subjectRepo) List(ctx context.Context) ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.db.WithContext(ctx).Order("name ASC").Find(&subjects).Error
	return subjects, err
}

func (r *subjectRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("subject_id = ?", id).
		Delete(&model.Subject{}).Error
}

// ── SemesterSubject Repository 实现 ──

type semesterSubjectRepo struct {
	db *gorm.DB
}

func NewSemesterSubjectRepo(db *gorm.DB) SemesterSubjectRepository {
	return &semesterSubjectRepo{db: db}
}

func (r *semesterSubjectRepo) Create(ctx context.Context, ss *model.SemesterSubject) error {
	return r.db.WithContext(ctx).Create(ss).Error
}

func (r *semesterSubjectRepo) ListBySemester(ctx context.Context, semesterID string) ([]model.SemesterSubject, error) {
	var list []model.SemesterSubject
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Where("semester_id = ?", semesterID).
		Find(&list).Error
	return list, err
}

func (r *semesterSubjectRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("semester_subject_id = ?", id).
		Delete(&model.SemesterSubject{}).Error
}
