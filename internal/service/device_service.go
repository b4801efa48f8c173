package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/NASVIPS/rfid-attendance-system/internal/dto"
	"github.com/NASVIPS/rfid-attendance-system/internal/model"
	"github.com/NASVIPS/rfid-attendance-system/internal/repository"
	pkgerrors "github.com/NASVIPS/rfid-attendance-system/pkg/errors"
)

// 设备模块业务错误
var (
	ErrDeviceExists       = errors.New("该 MAC 地址已注册")
	ErrDeviceNotFound     = errors.New("设备不存在")
	ErrDeviceAuthFailed   = errors.New("设备认证失败")
	ErrTeacherCardUnknown = errors.New("该卡未绑定任何教师")
)

// DeviceService 刷卡设备管理与认证业务逻辑
// 设备密钥落库前经 bcrypt 散列，认证时比对散列值
type DeviceService struct {
	deviceRepo  repository.DeviceRepository
	facultyRepo repository.FacultyRepository
	logger      *zap.Logger
}

// NewDeviceService 创建设备服务
func NewDeviceService(
	deviceRepo repository.DeviceRepository,
	facultyRepo repository.FacultyRepository,
	logger *zap.Logger,
) *DeviceService {
	return &DeviceService{
		deviceRepo:  deviceRepo,
		facultyRepo: facultyRepo,
		logger:      logger,
	}
}

// Register 注册新设备
// MAC 地址统一转小写存储；重复注册由唯一约束拒绝
func (s *DeviceService) Register(ctx context.Context, req *dto.RegisterDeviceRequest) (*model.Device, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	device := &model.Device{
		MacAddr:  strings.ToLower(req.MacAddr),
		Secret:   string(hash),
		Name:     req.Name,
		Location: req.Location,
	}
	if err := s.deviceRepo.Create(ctx, device); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return nil, ErrDeviceExists
		}
		return nil, err
	}

	s.logger.Info("设备注册成功",
		zap.String("device_id", device.DeviceID),
		zap.String("mac_addr", device.MacAddr))

	return device, nil
}

// Authenticate 按 MAC + 密钥认证设备（请求头认证用）
// 查不到设备与密钥不符返回同一个错误，不泄露 MAC 是否已注册
func (s *DeviceService) Authenticate(ctx context.Context, macAddr, secret string) (*model.Device, error) {
	device, err := s.deviceRepo.GetByMac(ctx, strings.ToLower(macAddr))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeviceAuthFailed
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(device.Secret), []byte(secret)) != nil {
		return nil, ErrDeviceAuthFailed
	}
	return device, nil
}

// Heartbeat 设备上线心跳，刷新 LastBootAt
func (s *DeviceService) Heartbeat(ctx context.Context, macAddr string) (*model.Device, error) {
	device, err := s.deviceRepo.GetByMac(ctx, strings.ToLower(macAddr))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeviceNotFound
		}
		return nil, err
	}

	now := time.Now()
	device.LastBootAt = &now
	if err := s.deviceRepo.Update(ctx, device); err != nil {
		return nil, err
	}
	return device, nil
}

// List 查询全部设备
func (s *DeviceService) List(ctx context.Context) ([]model.Device, error) {
	return s.deviceRepo.List(ctx)
}

// AuthenticateTeacherRFID 教师在设备上刷工牌的身份握手
func (s *DeviceService) AuthenticateTeacherRFID(ctx context.Context, rfidUID string) (*model.Faculty, error) {
	faculty, err := s.facultyRepo.GetByRFIDUid(ctx, rfidUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherCardUnknown
		}
		return nil, err
	}
	return faculty, nil
}
