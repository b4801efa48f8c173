package model

// Subject 科目表 — 对应 subjects
type Subject struct {
	SubjectID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"subject_id"`
	Name      string `gorm:"type:varchar(100);not null"                     json:"name"`
	Code      string `gorm:"type:varchar(20);not null;uniqueIndex"          json:"code"`
	BaseModel
}

func (Subject) TableName() string { return "subjects" }

// SemesterSubject 学期-科目关联表 — 对应 semester_subjects
type SemesterSubject struct {
	SemesterSubjectID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"semester_subject_id"`
	SemesterID        string `gorm:"type:uuid;not null"                             json:"semester_id"`
	SubjectID         string `gorm:"type:uuid;not null"                             json:"subject_id"`
	BaseModel

	// 关联
	Semester *Semester `gorm:"foreignKey:SemesterID;references:SemesterID" json:"semester,omitempty"`
	Subject  *Subject  `gorm:"foreignKey:SubjectID;references:SubjectID"   json:"subject,omitempty"`
}

func (SemesterSubject) TableName() string { return "semester_subjects" }
