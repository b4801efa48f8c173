package model

// Course 专业/课程体系表 — 对应 courses
type Course struct {
	CourseID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"course_id"`
	Name     string `gorm:"type:varchar(100);not null"                     json:"name"`
	Code     string `gorm:"type:varchar(20);not null;uniqueIndex"          json:"code"`
	BaseModel
}

func (Course) TableName() string { return "courses" }
