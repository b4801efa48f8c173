package model

// SubjectInstance 授课关系表 — 对应 subject_instances
// 科目 × 班级 × 教师 三元组，唯一确定"谁在哪个班教什么"；
// 课堂(ClassSession)与课表(ScheduledClass)都挂在该三元组之下
type SubjectInstance struct {
	SubjectInstID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"subject_inst_id"`
	SubjectID     string `gorm:"type:uuid;not null"                             json:"subject_id"`
	SectionID     string `gorm:"type:uuid;not null"                             json:"section_id"`
	FacultyID     string `gorm:"type:uuid;not null"                             json:"faculty_id"`
	BaseModel

	// 关联
	Subject *Subject `gorm:"foreignKey:SubjectID;references:SubjectID"   json:"subject,omitempty"`
	Section *Section `gorm:"foreignKey:SectionID;references:SectionID"   json:"section,omitempty"`
	Faculty *Faculty `gorm:"foreignKey:FacultyID;references:FacultyID"   json:"faculty,omitempty"`
}

func (SubjectInstance) TableName() string { return "subject_instances" }
