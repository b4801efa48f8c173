package dto

// ── 签到模块 DTO ──

// ScanRequest 设备上报刷卡请求
type ScanRequest struct {
	RFIDUid   string `json:"rfid_uid"   binding:"required"`
	SessionID string `json:"session_id" binding:"required,uuid"`
}

// EnrollmentScanRequest 录卡刷卡请求（设备侧）
// Token 为前端发起录卡时生成的一次性令牌，用于把卡号定向推回该页面
type EnrollmentScanRequest struct {
	RFIDUid string `json:"rfid_uid" binding:"required"`
	Token   string `json:"token"    binding:"required"`
}

// StudentBrief 学生简要信息
type StudentBrief struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	EnrollmentNo string `json:"enrollment_no"`
}

// AttendanceResponse 单条签到记录响应
type AttendanceResponse struct {
	ID            string        `json:"id"`
	SessionID     string        `json:"session_id"`
	Student       *StudentBrief `json:"student,omitempty"`
	Timestamp     string        `json:"timestamp"`
	Status        string        `json:"status"`
	DeviceMacAddr string        `json:"device_mac_addr,omitempty"`
}

// PresentStudent 到场学生（携带刷卡时间，顺序为刷卡先后）
type PresentStudent struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	EnrollmentNo string `json:"enrollment_no"`
	Timestamp    string `json:"timestamp"`
	Status       string `json:"status"`
}

// AbsentStudent 缺席学生（按姓名字母序）
type AbsentStudent struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	EnrollmentNo string `json:"enrollment_no"`
	Status       string `json:"status"`
}

// SnapshotResponse 课堂实时到课快照
// 恒有 PresentCount + AbsentCount == TotalInSection
type SnapshotResponse struct {
	Present        []PresentStudent `json:"present"`
	Absent         []AbsentStudent  `json:"absent"`
	TotalInSection int              `json:"total_in_section"`
	PresentCount   int              `json:"present_count"`
	AbsentCount    int              `json:"absent_count"`
}

// AggregatedReportRequest 汇总报表查询参数
type AggregatedReportRequest struct {
	SectionID string  `form:"section_id" binding:"required,uuid"`
	SubjectID *string `form:"subject_id" binding:"omitempty,uuid"`
	StartDate *string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   *string `form:"end_date"   binding:"omitempty,datetime=2006-01-02"`
}

// StudentAttendanceSummary 汇总报表中单个学生的出勤统计
type StudentAttendanceSummary struct {
	StudentID            string  `json:"student_id"`
	Name                 string  `json:"name"`
	EnrollmentNo         string  `json:"enrollment_no"`
	PresentCount         int     `json:"present_count"`
	AbsentCount          int     `json:"absent_count"`
	TotalClasses         int     `json:"total_classes"`
	AttendancePercentage float64 `json:"attendance_percentage"`
}
