package dto

// ── 学籍目录 DTO ──

// CreateCourseRequest 创建专业请求
type CreateCourseRequest struct {
	Name string `json:"name" binding:"required,max=100"`
	Code string `json:"code" binding:"required,max=20"`
}

// CreateSemesterRequest 创建学期请求
type CreateSemesterRequest struct {
	CourseID  string  `json:"course_id"  binding:"required,uuid"`
	Number    int     `json:"number"     binding:"required,min=1,max=12"`
	StartDate *string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"end_date"   binding:"omitempty,datetime=2006-01-02"`
}

// CreateSectionRequest 创建班级请求
type CreateSectionRequest struct {
	SemesterID string `json:"semester_id" binding:"required,uuid"`
	Name       string `json:"name"        binding:"required,max=50"`
}

// CreateSubjectRequest 创建科目请求
type CreateSubjectRequest struct {
	Name string `json:"name" binding:"required,max=100"`
	Code string `json:"code" binding:"required,max=20"`
}

// AssignSemesterSubjectRequest 将科目挂入学期请求
type AssignSemesterSubjectRequest struct {
	SemesterID string `json:"semester_id" binding:"required,uuid"`
	SubjectID  string `json:"subject_id"  binding:"required,uuid"`
}

// CreateSubjectInstanceRequest 创建授课关系请求
type CreateSubjectInstanceRequest struct {
	SubjectID string `json:"subject_id" binding:"required,uuid"`
	SectionID string `json:"section_id" binding:"required,uuid"`
	FacultyID string `json:"faculty_id" binding:"required,uuid"`
}

// CreateScheduledClassRequest 创建课表时段请求
// FacultyID 可覆盖授课关系中的教师（代课场景）；省略时取授课关系的教师
type CreateScheduledClassRequest struct {
	SubjectInstID string  `json:"subject_inst_id" binding:"required,uuid"`
	FacultyID     *string `json:"faculty_id"      binding:"omitempty,uuid"`
	DayOfWeek     string  `json:"day_of_week"     binding:"required,oneof=MONDAY TUESDAY WEDNESDAY THURSDAY FRIDAY SATURDAY SUNDAY"`
	StartTime     string  `json:"start_time"      binding:"required,len=5"`
	EndTime       string  `json:"end_time"        binding:"required,len=5"`
}
