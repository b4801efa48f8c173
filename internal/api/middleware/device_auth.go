package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/NASVIPS/rfid-attendance-system/internal/service"
	"github.com/NASVIPS/rfid-attendance-system/pkg/response"
)

// 设备认证请求头（与固件约定）
const (
	HeaderDeviceMac    = "x-device-mac"
	HeaderDeviceSecret = "x-device-secret"

	CtxDeviceMac = "device_mac"
	CtxDeviceID  = "device_id"
)

// DeviceAuth 校验刷卡设备身份
// 设备每次请求都带 MAC 与密钥，无状态认证，不发 Token
func DeviceAuth(deviceSvc *service.DeviceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		mac := c.GetHeader(HeaderDeviceMac)
		secret := c.GetHeader(HeaderDeviceSecret)
		if mac == "" || secret == "" {
			response.Unauthorized(c, 10002, "缺少设备认证信息")
			c.Abort()
			return
		}

		device, err := deviceSvc.Authenticate(c.Request.Context(), mac, secret)
		if err != nil {
			response.Unauthorized(c, 10002, "设备认证失败")
			c.Abort()
			return
		}

		c.Set(CtxDeviceMac, device.MacAddr)
		c.Set(CtxDeviceID, device.DeviceID)
		c.Next()
	}
}
