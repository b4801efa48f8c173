package model

import "time"

// 星期枚举（与前端及设备固件约定的大写英文格式）
const (
	Monday    = "MONDAY"
	Tuesday   = "TUESDAY"
	Wednesday = "WEDNESDAY"
	Thursday  = "THURSDAY"
	Friday    = "FRIDAY"
	Saturday  = "SATURDAY"
	Sunday    = "SUNDAY"
)

// DayOfWeekOf 将 time.Weekday 转为本系统的星期枚举值
func DayOfWeekOf(t time.Time) string {
	switch t.Weekday() {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// ScheduledClass 周课表表 — 对应 scheduled_classes
// 每行是一个每周重复的时间槽；subject/section/faculty 为冗余列，
// 与 SubjectInstance 保持一致，用于组合唯一约束
// (day_of_week, subject_id, section_id, start_time, end_time)
type ScheduledClass struct {
	ScheduledClassID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"scheduled_class_id"`
	SubjectInstID    string `gorm:"type:uuid;not null"                             json:"subject_inst_id"`
	SubjectID        string `gorm:"type:uuid;not null"                             json:"subject_id"`
	SectionID        string `gorm:"type:uuid;not null"                             json:"section_id"`
	FacultyID        string `gorm:"type:uuid;not null"                             json:"faculty_id"`
	DayOfWeek        string `gorm:"type:varchar(10);not null"                      json:"day_of_week"`
	StartTime        string `gorm:"type:varchar(5);not null"                       json:"start_time"` // "HH:MM"
	EndTime          string `gorm:"type:varchar(5);not null"                       json:"end_time"`
	BaseModel

	// 关联
	SubjectInst *SubjectInstance `gorm:"foreignKey:SubjectInstID;references:SubjectInstID" json:"subject_inst,omitempty"`
	Subject     *Subject         `gorm:"foreignKey:SubjectID;references:SubjectID"         json:"subject,omitempty"`
	Section     *Section         `gorm:"foreignKey:SectionID;references:SectionID"         json:"section,omitempty"`
	Faculty     *Faculty         `gorm:"foreignKey:FacultyID;references:FacultyID"         json:"faculty,omitempty"`
}

func (ScheduledClass) TableName() string { return "scheduled_classes" }
