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

// 学籍目录模块业务错误
var (
	ErrCourseNotFound   = errors.New("专业不存在")
	ErrSemesterNotFound = errors.New("学期不存在")
	ErrSubjectNotFound  = errors.New("科目不存在")
	ErrStudentNotFound  = errors.New("学生不存在")
	ErrDuplicateEntry   = errors.New("记录已存在（编号或卡号冲突）")
	ErrSubjectInstExists = errors.New("该授课关系已存在")
)

// DirectoryService 学籍目录（专业/学期/班级/科目/师生档案）业务逻辑
// 基本为薄 CRUD，统一负责外键存在性校验与唯一冲突映射
type DirectoryService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDirectoryService 创建学籍目录服务
func NewDirectoryService(repo *repository.Repository, logger *zap.Logger) *DirectoryService {
	return &DirectoryService{repo: repo, logger: logger}
}

// ── 专业 ──

func (s *DirectoryService) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*model.Course, error) {
	course := &model.Course{Name: req.Name, Code: req.Code}
	if err := s.repo.Course.Create(ctx, course); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return nil, ErrDuplicateEntry
		}
		return nil, err
	}
	return course, nil
}

func (s *DirectoryService) ListCourses(ctx context.Context) ([]model.Course, error) {
	return s.repo.Course.List(ctx)
}

func (s *DirectoryService) DeleteCourse(ctx context.Context, id string) error {
	if _, err := s.repo.Course.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseNotFound
		}
		return err
	}
	return s.repo.Course.Delete(ctx, id)
}

// ── 学期 ──

func (s *DirectoryService) CreateSemester(ctx context.Context, req *dto.CreateSemesterRequest) (*model.Semester, error) {
	if _, err := s.repo.Course.GetByID(ctx, req.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	semester := &model.Semester{CourseID: req.CourseID, Number: req.Number}
	if req.StartDate != nil {
		if t, err := time.ParseInLocation("2006-01-02", *req.StartDate, time.Local); err == nil {
			semester.StartDate = &t
		}
	}
	if req.EndDate != nil {
		if t, err := time.ParseInLocation("2006-01-02", *req.EndDate, time.Local); err == nil {
			semester.EndDate = &t
		}
	}
	if err := s.repo.Semester.Create(ctx, semester); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return nil, ErrDuplicateEntry
		}
		return nil, err
	}
	return semester, nil
}

func (s *DirectoryService) ListSemestersByCourse(ctx context.Context, courseID string) ([]model.Semester, error) {
	return s.repo.Semester.ListByCourse(ctx, courseID)
}

// ── 班级 ──

func (s *DirectoryService) CreateSection(ctx context.Context, req *dto.CreateSectionRequest) (*model.Section, error) {
	if _, err := s.repo.Semester.GetByID(ctx, req.SemesterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSemesterNotFound
		}
		return nil, err
	}

	section := &model.Section{SemesterID: req.SemesterID, Name: req.Name}
	if err := s.repo.Section.Create(ctx, section); err != nil {
		return nil, err
	}
	return section, nil
}

func (s *DirectoryService) ListSectionsBySemester(ctx context.Context, semesterID string) ([]model.Section, error) {
	return s.repo.Section.ListBySemester(ctx, semesterID)
}

func (s *DirectoryService) GetSection(ctx context.Context, id string) (*model.Section, error) {
	section, err := s.repo.Section.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectionNotFound
		}
		return nil, err
	}
	return section, nil
}

// ── 科目 ──

func (s *DirectoryService) CreateSubject(ctx context.Context, req *dto.CreateSubjectRequest) (*model.Subject, error) {
	subject := &model.Subject{Name: req.Name, Code: req.Code}
	if err := s.repo.Subject.Create(ctx, subject); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return nil, ErrDuplicateEntry
		}
		return nil, err
	}
	return subject, nil
}

func (s *DirectoryService) ListSubjects(ctx context.Context) ([]model.Subject, error) {
	return s.repo.Subject.List(ctx)
}

// AssignSemesterSubject 把科目挂入学期
func (s *DirectoryService) AssignSemesterSubject(ctx context.Context, req *dto.AssignSemesterSubjectRequest) (*model.SemesterSubject, error) {
	if _, err := s.repo.Semester.GetByID(ctx, req.SemesterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSemesterNotFound
		}
		return nil, err
	}
	if _, err := s.repo.Subject.GetByID(ctx, req.SubjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}

	ss := &model.SemesterSubject{SemesterID: req.SemesterID, SubjectID: req.SubjectID}
	if err := s.repo.SemesterSubject.Create(ctx, ss); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return nil, ErrDuplicateEntry
		}
		return nil, err
	}
	return ss, nil
}

// ── 授课关系 ──

// CreateSubjectInstance 创建 科目×班级×教师 授课关系
func (s *DirectoryService) CreateSubjectInstance(ctx context.Context, req *dto.CreateSubjectInstanceRequest) (*model.SubjectInstance, error) {
	if _, err := s.repo.Subject.GetByID(ctx, req.SubjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}
	if _, err := s.repo.Section.GetByID(ctx, req.SectionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectionNotFound
		}
		return nil, err
	}
	if _, err := s.repo.Faculty.GetByID(ctx, req.FacultyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFacultyNotFound
		}
		return nil, err
	}

	inst := &model.SubjectInstance{
		SubjectID: req.SubjectID,
		SectionID: req.SectionID,
		FacultyID: req.FacultyID,
	}
	if err := s.repo.SubjectInstance.Create(ctx, inst); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return nil, ErrSubjectInstExists
		}
		return nil, err
	}
	return inst, nil
}

func (s *DirectoryService) ListSubjectInstancesByFaculty(ctx context.Context, facultyID string) ([]model.SubjectInstance, error) {
	return s.repo.SubjectInstance.ListByFaculty(ctx, facultyID)
}

// ── 学生 ──

func (s *DirectoryService) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*model.Student, error) {
	if _, err := s.repo.Section.GetByID(ctx, req.SectionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectionNotFound
		}
		return nil, err
	}

	student := &model.Student{
		SectionID:    req.SectionID,
		Name:         req.Name,
		EnrollmentNo: req.EnrollmentNo,
		RFIDUid:      req.RFIDUid,
	}
	if err := s.repo.Student.Create(ctx, student); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return nil, ErrDuplicateEntry
		}
		return nil, err
	}
	return student, nil
}

// UpdateStudent 更新学生档案，录卡流程在此把卡号写入 RFIDUid
func (s *DirectoryService) UpdateStudent(ctx context.Context, id string, req *dto.UpdateStudentRequest) (*model.Student, error) {
	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		student.Name = *req.Name
	}
	if req.SectionID != nil {
		if _, err := s.repo.Section.GetByID(ctx, *req.SectionID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSectionNotFound
			}
			return nil, err
		}
		student.SectionID = *req.SectionID
	}
	if req.RFIDUid != nil {
		student.RFIDUid = req.RFIDUid
	}

	if err := s.repo.Student.Update(ctx, student); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return nil, ErrDuplicateEntry
		}
		return nil, err
	}
	return student, nil
}

func (s *DirectoryService) ListStudentsBySection(ctx context.Context, sectionID string) ([]model.Student, error) {
	return s.repo.Student.ListBySection(ctx, sectionID)
}

func (s *DirectoryService) DeleteStudent(ctx context.Context, id string) error {
	if _, err := s.repo.Student.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		return err
	}
	return s.repo.Student.Delete(ctx, id)
}

// ── 教师 ──

func (s *DirectoryService) CreateFaculty(ctx context.Context, req *dto.CreateFacultyRequest) (*model.Faculty, error) {
	faculty := &model.Faculty{
		Name:    req.Name,
		EmpID:   req.EmpID,
		RFIDUid: req.RFIDUid,
	}
	if err := s.repo.Faculty.Create(ctx, faculty); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return nil, ErrDuplicateEntry
		}
		return nil, err
	}
	return faculty, nil
}

func (s *DirectoryService) UpdateFaculty(ctx context.Context, id string, req *dto.UpdateFacultyRequest) (*model.Faculty, error) {
	faculty, err := s.repo.Faculty.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFacultyNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		faculty.Name = *req.Name
	}
	if req.RFIDUid != nil {
		faculty.RFIDUid = req.RFIDUid
	}

	if err := s.repo.Faculty.Update(ctx, faculty); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return nil, ErrDuplicateEntry
		}
		return nil, err
	}
	return faculty, nil
}

func (s *DirectoryService) ListFaculties(ctx context.Context) ([]model.Faculty, error) {
	return s.repo.Faculty.List(ctx)
}
