package dto

// ── 设备模块 DTO ──

// RegisterDeviceRequest 设备注册请求
type RegisterDeviceRequest struct {
	MacAddr  string `json:"mac_addr" binding:"required,mac"`
	Secret   string `json:"secret"   binding:"required,min=8"`
	Name     string `json:"name"     binding:"omitempty,max=100"`
	Location string `json:"location" binding:"omitempty,max=100"`
}

// TeacherAuthRequest 教师刷工牌认证请求（设备侧）
type TeacherAuthRequest struct {
	TeacherRFIDUid string `json:"teacher_rfid_uid" binding:"required"`
}

// TeacherAuthResponse 教师认证响应
type TeacherAuthResponse struct {
	Teacher *TeacherBrief `json:"teacher"`
}
