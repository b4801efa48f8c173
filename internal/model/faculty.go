package model

// Faculty 教师表 — 对应 faculties
// RFIDUid 为教师工牌卡号，用于在刷卡设备上做教师身份握手；可为空（未录入）
type Faculty struct {
	FacultyID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"faculty_id"`
	Name      string  `gorm:"type:varchar(100);not null"                     json:"name"`
	EmpID     string  `gorm:"type:varchar(30);not null;uniqueIndex"          json:"emp_id"`
	RFIDUid   *string `gorm:"column:rfid_uid;type:varchar(64);uniqueIndex"   json:"rfid_uid,omitempty"`
	BaseModel
}

func (Faculty) TableName() string { return "faculties" }
