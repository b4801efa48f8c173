package model

// Section 班级表 — 对应 sections
type Section struct {
	SectionID  string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"section_id"`
	SemesterID string `gorm:"type:uuid;not null"                             json:"semester_id"`
	Name       string `gorm:"type:varchar(50);not null"                      json:"name"`
	BaseModel

	// 关联
	Semester *Semester `gorm:"foreignKey:SemesterID;references:SemesterID" json:"semester,omitempty"`
}

func (Section) TableName() string { return "sections" }
