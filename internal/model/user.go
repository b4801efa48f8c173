package model

// 系统角色
const (
	RoleAdmin   = "ADMIN"
	RolePCoord  = "PCOORD"
	RoleTeacher = "TEACHER"
)

// User 登录账号表 — 对应 users
// 教师账号通过 FacultyID 关联到教师档案；管理角色可不关联
type User struct {
	UserID       string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Email        string  `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash string  `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string  `gorm:"type:varchar(20);not null;default:'TEACHER'"    json:"role"`
	FacultyID    *string `gorm:"type:uuid"                                      json:"faculty_id,omitempty"`
	BaseModel

	// 关联
	Faculty *Faculty `gorm:"foreignKey:FacultyID;references:FacultyID" json:"faculty,omitempty"`
}

func (User) TableName() string { return "users" }
