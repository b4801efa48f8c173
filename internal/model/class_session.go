package model

import "time"

// ClassSession 课堂表 — 对应 class_sessions
// 一次实际授课。生命周期 OPEN → CLOSED：创建即 OPEN，关闭后不可再写入签到。
// 同一 SubjectInstID 至多一个 is_closed=false 的行，
// 由部分唯一索引 uniq_open_session_per_subject_inst 在存储层保证。
type ClassSession struct {
	SessionID     string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"session_id"`
	SubjectInstID string     `gorm:"type:uuid;not null"                             json:"subject_inst_id"`
	TeacherID     string     `gorm:"type:uuid;not null"                             json:"teacher_id"`
	StartAt       time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"start_at"`
	EndAt         *time.Time `json:"end_at,omitempty"`
	IsClosed      bool       `gorm:"not null;default:false"                         json:"is_closed"`
	BaseModel

	// 关联
	SubjectInst *SubjectInstance `gorm:"foreignKey:SubjectInstID;references:SubjectInstID" json:"subject_inst,omitempty"`
	Teacher     *Faculty         `gorm:"foreignKey:TeacherID;references:FacultyID"         json:"teacher,omitempty"`
}

func (ClassSession) TableName() string { return "class_sessions" }
