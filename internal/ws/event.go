package ws

import "encoding/json"

// 推送事件类型（与前端约定）
const (
	EventSessionStatusUpdate      = "SESSION_STATUS_UPDATE"
	EventAttendanceSnapshotUpdate = "ATTENDANCE_SNAPSHOT_UPDATE"
	EventDeviceAuthStatusUpdate   = "DEVICE_AUTH_STATUS_UPDATE"
	EventRFIDScanned              = "RFID_SCANNED"
)

// 前端上行的控制消息类型
const (
	MessageStartRFIDEnrollment = "START_RFID_ENROLLMENT"
	MessageStopRFIDEnrollment  = "STOP_RFID_ENROLLMENT"
)

// clientMessage 前端上行控制消息
// 录卡页面通过它在已建立的连接上绑定或解绑录卡令牌
type clientMessage struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

// Event WebSocket 推送事件信封
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// Encode 将事件序列化为 JSON 字节流
// 序列化失败返回 nil，调用方据此放弃本次推送
func (e *Event) Encode() []byte {
	b, err := json.Marshal(e)
	if err != nil {
		return nil
	}
	return b
}
