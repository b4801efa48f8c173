package model

// Student 学生表 — 对应 students
// RFIDUid 为学生卡号；未录入时为空，刷卡签到前必须先完成录入
type Student struct {
	StudentID    string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"student_id"`
	SectionID    string  `gorm:"type:uuid;not null;index"                       json:"section_id"`
	Name         string  `gorm:"type:varchar(100);not null"                     json:"name"`
	EnrollmentNo string  `gorm:"type:varchar(30);not null;uniqueIndex"          json:"enrollment_no"`
	RFIDUid      *string `gorm:"column:rfid_uid;type:varchar(64);uniqueIndex"   json:"rfid_uid,omitempty"`
	BaseModel

	// 关联
	Section *Section `gorm:"foreignKey:SectionID;references:SectionID" json:"section,omitempty"`
}

func (Student) TableName() string { return "students" }
