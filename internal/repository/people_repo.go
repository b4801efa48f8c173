package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/NASVIPS/rfid-attendance-system/internal/model"
)

// FacultyRepository 教师数据访问接口
type FacultyRepository interface {
	Create(ctx context.Context, faculty *model.Faculty) error
	GetByID(ctx context.Context, id string) (*model.Faculty, error)
	GetByRFIDUid(ctx context.Context, rfidUID string) (*model.Faculty, error)
	List(ctx context.Context) ([]model.Faculty, error)
	Update(ctx context.Context, faculty *model.Faculty) error
	Delete(ctx context.Context, id string) error
}

// StudentRepository 学生数据访问接口
type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) error
	GetByID(ctx context.Context, id string) (*model.Student, error)
	GetByRFIDUid(ctx context.Context, rfidUID string) (*model.Student, error)
	// ListBySection 返回班级名册，按姓名升序（快照缺席列表依赖该顺序）
	ListBySection(ctx context.Context, sectionID string) ([]model.Student, error)
	Update(ctx context.Context, student *model.Student) error
	Delete(ctx context.Context, id string) error
}

// UserRepository 登录账号数据访问接口
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// ── Faculty Repository 实现 ──

type facultyRepo struct {
	db *gorm.DB
}

func NewFacultyRepo(db *gorm.DB) FacultyRepository {
	return &facultyRepo{db: db}
}

func (r *facultyRepo) Create(ctx context.Context, faculty *model.Faculty) error {
	return r.db.WithContext(ctx).Create(faculty).Error
}

func (r *facultyRepo) GetByID(ctx context.Context, id string) (*model.Faculty, error) {
	var faculty model.Faculty
	err := r.db.WithContext(ctx).
		Where("faculty_id = ?", id).
		First(&faculty).Error
	if err != nil {
		return nil, err
	}
	return &faculty, nil
}

func (r *facultyRepo) GetByRFIDUid(ctx context.Context, rfidUID string) (*model.Faculty, error) {
	var faculty model.Faculty
	err := r.db.WithContext(ctx).
		Where("rfid_uid = ?", rfidUID).
		First(&faculty).Error
	if err != nil {
		return nil, err
	}
	return &faculty, nil
}

func (r *facultyRepo) List(ctx context.Context) ([]model.Faculty, error) {
	var faculties []model.Faculty
	err := r.db.WithContext(ctx).Order("name ASC").Find(&faculties).Error
	return faculties, err
}

func (r *facultyRepo) Update(ctx context.Context, faculty *model.Faculty) error {
	return r.db.WithContext(ctx).Save(faculty).Error
}

func (r *facultyRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("faculty_id = ?", id).
		Delete(&model.Faculty{}).Error
}

// ── Student Repository 实现 ──

type studentRepo struct {
	db *gorm.DB
}

func NewStudentRepo(db *gorm.DB) StudentRepository {
	return &studentRepo{db: db}
}

func (r *studentRepo) Create(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepo) GetByID(ctx context.Context, id string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Preload("Section").
		Where("student_id = ?", id).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) GetByRFIDUid(ctx context.Context, rfidUID string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Where("rfid_uid = ?", rfidUID).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) ListBySection(ctx context.Context, sectionID string) ([]model.Student, error) {
	var students []model.Student
	err := r.db.WithContext(ctx).
		Where("section_id = ?", sectionID).
		Order("name ASC").
		Find(&students).Error
	return students, err
}

func (r *studentRepo) Update(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Save(student).Error
}

func (r *studentRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("student_id = ?", id).
		Delete(&model.Student{}).Error
}

// ── User Repository 实现 ──

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("Faculty").
		Where("user_id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("Faculty").
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}
