package model

import "time"

// Semester 学期表 — 对应 semesters
type Semester struct {
	SemesterID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"semester_id"`
	CourseID   string     `gorm:"type:uuid;not null"                             json:"course_id"`
	Number     int        `gorm:"type:smallint;not null"                         json:"number"`
	StartDate  *time.Time `gorm:"type:date"                                      json:"start_date,omitempty"`
	EndDate    *time.Time `gorm:"type:date"                                      json:"end_date,omitempty"`
	BaseModel

	// 关联
	Course *Course `gorm:"foreignKey:CourseID;references:CourseID" json:"course,omitempty"`
}

func (Semester) TableName() string { return "semesters" }
