package dto

// ── 师生档案 DTO ──

// CreateStudentRequest 创建学生请求
type CreateStudentRequest struct {
	SectionID    string  `json:"section_id"    binding:"required,uuid"`
	Name         string  `json:"name"          binding:"required,max=100"`
	EnrollmentNo string  `json:"enrollment_no" binding:"required,max=30"`
	RFIDUid      *string `json:"rfid_uid"      binding:"omitempty,max=64"`
}

// UpdateStudentRequest 更新学生请求（录卡时写入 RFIDUid）
type UpdateStudentRequest struct {
	Name      *string `json:"name"       binding:"omitempty,max=100"`
	SectionID *string `json:"section_id" binding:"omitempty,uuid"`
	RFIDUid   *string `json:"rfid_uid"   binding:"omitempty,max=64"`
}

// CreateFacultyRequest 创建教师请求
type CreateFacultyRequest struct {
	Name    string  `json:"name"     binding:"required,max=100"`
	EmpID   string  `json:"emp_id"   binding:"required,max=30"`
	RFIDUid *string `json:"rfid_uid" binding:"omitempty,max=64"`
}

// UpdateFacultyRequest 更新教师请求
type UpdateFacultyRequest struct {
	Name    *string `json:"name"     binding:"omitempty,max=100"`
	RFIDUid *string `json:"rfid_uid" binding:"omitempty,max=64"`
}
