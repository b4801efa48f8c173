package model

import "time"

// AttendanceStatusPresent 目前唯一会被写入的签到状态。
// 缺席从不落库，由快照按名册差集推导。
const AttendanceStatusPresent = "PRESENT"

// AttendanceLog 签到记录表 — 对应 attendance_logs
// 只追加不修改。(session_id, student_id) 唯一约束使重复刷卡成为幂等冲突。
type AttendanceLog struct {
	AttendanceLogID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"attendance_log_id"`
	SessionID       string    `gorm:"type:uuid;not null;index"                       json:"session_id"`
	StudentID       string    `gorm:"type:uuid;not null"                             json:"student_id"`
	Timestamp       time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"timestamp"`
	Status          string    `gorm:"type:varchar(10);not null;default:'PRESENT'"    json:"status"`
	DeviceMacAddr   string    `gorm:"type:varchar(17)"                               json:"device_mac_addr,omitempty"`
	DeviceID        *string   `gorm:"type:uuid"                                      json:"device_id,omitempty"`
	CreatedAt       time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`

	// 关联
	Session *ClassSession `gorm:"foreignKey:SessionID;references:SessionID" json:"session,omitempty"`
	Student *Student      `gorm:"foreignKey:StudentID;references:StudentID" json:"student,omitempty"`
}

func (AttendanceLog) TableName() string { return "attendance_logs" }
