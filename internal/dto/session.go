package dto

// ── 课堂模块 DTO ──

// StartSessionRequest 开始上课请求
// ScheduledClassID 省略时由服务端按当前时间自动推断该教师此刻的课
type StartSessionRequest struct {
	FacultyID        string  `json:"faculty_id"         binding:"required,uuid"`
	ScheduledClassID *string `json:"scheduled_class_id" binding:"omitempty,uuid"`
}

// SubjectBrief 科目简要信息
type SubjectBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// SectionBrief 班级简要信息
type SectionBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TeacherBrief 教师简要信息
type TeacherBrief struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	EmpID string `json:"emp_id"`
}

// SessionResponse 课堂响应
type SessionResponse struct {
	ID            string        `json:"id"`
	SubjectInstID string        `json:"subject_inst_id"`
	Subject       *SubjectBrief `json:"subject,omitempty"`
	Section       *SectionBrief `json:"section,omitempty"`
	Teacher       *TeacherBrief `json:"teacher,omitempty"`
	StartAt       string        `json:"start_at"`
	EndAt         *string       `json:"end_at,omitempty"`
	IsClosed      bool          `json:"is_closed"`
}
