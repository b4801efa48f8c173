package model

import "time"

// Device 刷卡设备表 — 对应 devices
// 设备凭 MacAddr + Secret 通过请求头认证；LastBootAt 由心跳接口刷新
type Device struct {
	DeviceID   string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"device_id"`
	MacAddr    string     `gorm:"type:varchar(17);not null;uniqueIndex"          json:"mac_addr"`
	Secret     string     `gorm:"type:varchar(128);not null"                     json:"-"`
	Name       string     `gorm:"type:varchar(100)"                              json:"name,omitempty"`
	Location   string     `gorm:"type:varchar(100)"                              json:"location,omitempty"`
	LastBootAt *time.Time `json:"last_boot_at,omitempty"`
	BaseModel
}

func (Device) TableName() string { return "devices" }
