package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/NASVIPS/rfid-attendance-system/internal/model"
)

// DeviceRepository 刷卡设备数据访问接口
type DeviceRepository interface {
	Create(ctx context.Context, device *model.Device) error
	GetByID(ctx context.Context, id string) (*model.Device, error)
	GetByMac(ctx context.Context, macAddr string) (*model.Device, error)
	List(ctx context.Context) ([]model.Device, error)
	Update(ctx context.Context, device *model.Device) error
}

type deviceRepo struct {
	db *gorm.DB
}

func NewDeviceRepo(db *gorm.DB) DeviceRepository {
	return &deviceRepo{db: db}
}

func (r *deviceRepo) Create(ctx context.Context, device *model.Device) error {
	return r.db.WithContext(ctx).Create(device).Error
}

func (r *deviceRepo) GetByID(ctx context.Context, id string) (*model.Device, error) {
	var device model.Device
	err := r.db.WithContext(ctx).
		Where("device_id = ?", id).
		First(&device).Error
	if err != nil {
		return nil, err
	}
	return &device, nil
}

func (r *deviceRepo) GetByMac(ctx context.Context, macAddr string) (*model.Device, error) {
	var device model.Device
	err := r.db.WithContext(ctx).
		Where("mac_addr = ?", macAddr).
		First(&device).Error
	if err != nil {
		return nil, err
	}
	return &device, nil
}

func (r *deviceRepo) List(ctx context.Context) ([]model.Device, error) {
	var devices []model.Device
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&devices).Error
	return devices, err
}

func (r *deviceRepo) Update(ctx context.Context, device *model.Device) error {
	return r.db.WithContext(ctx).Save(device).Error
}
