package dto

// ── 认证模块 DTO ──

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest 刷新令牌请求
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RegisterUserRequest 创建登录账号请求（仅管理员）
type RegisterUserRequest struct {
	Email     string  `json:"email"      binding:"required,email"`
	Password  string  `json:"password"   binding:"required,min=8"`
	Role      string  `json:"role"       binding:"required,oneof=ADMIN PCOORD TEACHER"`
	FacultyID *string `json:"faculty_id" binding:"omitempty,uuid"`
}

// UserBrief 账号简要信息
type UserBrief struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	FacultyID *string `json:"faculty_id,omitempty"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	User         UserBrief `json:"user"`
}
