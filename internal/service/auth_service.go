package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/NASVIPS/rfid-attendance-system/internal/dto"
	"github.com/NASVIPS/rfid-attendance-system/internal/model"
	"github.com/NASVIPS/rfid-attendance-system/internal/repository"
	pkgerrors "github.com/NASVIPS/rfid-attendance-system/pkg/errors"
	"github.com/NASVIPS/rfid-attendance-system/pkg/jwt"
	"github.com/NASVIPS/rfid-attendance-system/pkg/redis"
)

// 认证模块业务错误
var (
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrEmailExists        = errors.New("该邮箱已注册")
	ErrInvalidRefresh     = errors.New("refresh token 无效或已失效")
	ErrUserNotFound       = errors.New("账号不存在")
)

// AuthService 登录认证业务逻辑
type AuthService struct {
	userRepo repository.UserRepository
	jwtMgr   *jwt.Manager
	cache    *redis.Client
	logger   *zap.Logger
}

// NewAuthService 创建认证服务
func NewAuthService(
	userRepo repository.UserRepository,
	jwtMgr *jwt.Manager,
	cache *redis.Client,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		jwtMgr:   jwtMgr,
		cache:    cache,
		logger:   logger,
	}
}

func (s *AuthService) issueTokens(user *model.User) (*dto.LoginResponse, error) {
	facultyID := ""
	if user.FacultyID != nil {
		facultyID = *user.FacultyID
	}

	accessToken, err := s.jwtMgr.GenerateAccessToken(user.UserID, user.Role, facultyID)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtMgr.GenerateRefreshToken(user.UserID, user.Role, facultyID)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: dto.UserBrief{
			ID:        user.UserID,
			Email:     user.Email,
			Role:      user.Role,
			FacultyID: user.FacultyID,
		},
	}, nil
}

// Login 邮箱密码登录
// 查不到账号与密码错误返回同一个错误，不泄露邮箱是否已注册
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("用户登录成功",
		zap.String("user_id", user.UserID),
		zap.String("role", user.Role))

	return s.issueTokens(user)
}

// Refresh 用 refresh token 换取新的一对令牌
// 旧 refresh token 立即拉黑，防止重放
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	claims, err := s.jwtMgr.ParseToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefresh
	}
	if claims.TokenType != "refresh" {
		return nil, ErrInvalidRefresh
	}

	blacklisted, err := s.cache.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if blacklisted {
		return nil, ErrInvalidRefresh
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefresh
		}
		return nil, err
	}

	if claims.ExpiresAt != nil {
		_ = s.cache.BlacklistToken(ctx, claims.ID, time.Until(claims.ExpiresAt.Time))
	}

	return s.issueTokens(user)
}

// Logout 注销：把当前 access token 拉黑到其自然过期
func (s *AuthService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if claims.ExpiresAt == nil {
		return nil
	}
	return s.cache.BlacklistToken(ctx, claims.ID, time.Until(claims.ExpiresAt.Time))
}

// RegisterUser 创建登录账号（仅管理员调用）
func (s *AuthService) RegisterUser(ctx context.Context, req *dto.RegisterUserRequest) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		FacultyID:    req.FacultyID,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	s.logger.Info("账号创建成功",
		zap.String("user_id", user.UserID),
		zap.String("role", user.Role))

	return user, nil
}

// GetProfile 查询当前账号信息
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
