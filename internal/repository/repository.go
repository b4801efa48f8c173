package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Course          CourseRepository
	Semester        SemesterRepository
	Section         SectionRepository
	Subject         SubjectRepository
	SemesterSubject SemesterSubjectRepository
	Faculty         FacultyRepository
	Student         StudentRepository
	User            UserRepository
	Device          DeviceRepository
	SubjectInstance SubjectInstanceRepository
	ScheduledClass  ScheduledClassRepository
	ClassSession    ClassSessionRepository
	AttendanceLog   AttendanceLogRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Course:          NewCourseRepo(db),
		Semester:        NewSemesterRepo(db),
		Section:         NewSectionRepo(db),
		Subject:         NewSubjectRepo(db),
		SemesterSubject: NewSemesterSubjectRepo(db),
		Faculty:         NewFacultyRepo(db),
		Student:         NewStudentRepo(db),
		User:            NewUserRepo(db),
		Device:          NewDeviceRepo(db),
		SubjectInstance: NewSubjectInstanceRepo(db),
		ScheduledClass:  NewScheduledClassRepo(db),
		ClassSession:    NewClassSessionRepo(db),
		AttendanceLog:   NewAttendanceLogRepo(db),
	}
}
