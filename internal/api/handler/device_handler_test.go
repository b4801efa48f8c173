package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/NASVIPS/rfid-attendance-system/internal/api/middleware"
	"github.com/NASVIPS/rfid-attendance-system/internal/dto"
	"github.com/NASVIPS/rfid-attendance-system/internal/model"
	"github.com/NASVIPS/rfid-attendance-system/internal/repository"
	"github.com/NASVIPS/rfid-attendance-system/internal/service"
	"github.com/NASVIPS/rfid-attendance-system/internal/ws"
)

type stubFacultyRepo struct {
	repository.FacultyRepository
	faculty *model.Faculty
}

func (s *stubFacultyRepo) GetByRFIDUid(_ context.Context, rfidUID string) (*model.Faculty, error) {
	if s.faculty != nil && s.faculty.RFIDUid != nil && *s.faculty.RFIDUid == rfidUID {
		return s.faculty, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// 教师刷工牌握手成功后，前端应收到带设备与教师信息的状态广播
func TestTeacherAuth_广播设备认证事件(t *testing.T) {
	hub := ws.NewHub(zap.NewNop())
	go hub.Run()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws", func(c *gin.Context) {
		_ = ws.ServeWS(hub, c.Writer, c.Request, 8)
	})
	server := httptest.NewServer(r)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("WebSocket 连接失败: %v", err)
	}
	defer conn.Close()
	// 等连接完成 Hub 注册
	time.Sleep(100 * time.Millisecond)

	badge := "BADGE-7"
	faculty := &model.Faculty{FacultyID: "fac-1", Name: "王老师", EmpID: "EMP001", RFIDUid: &badge}
	h := &DeviceHandler{
		svc:    &service.Service{Device: service.NewDeviceService(nil, &stubFacultyRepo{faculty: faculty}, zap.NewNop())},
		hub:    hub,
		logger: zap.NewNop(),
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, err := json.Marshal(dto.TeacherAuthRequest{TeacherRFIDUid: badge})
	if err != nil {
		t.Fatalf("构造请求失败: %v", err)
	}
	c.Request = httptest.NewRequest(http.MethodPost, "/api/device/auth-teacher", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.CtxDeviceMac, "aa:bb:cc:dd:ee:ff")

	h.TeacherAuth(c)
	if w.Code != http.StatusOK {
		t.Fatalf("教师认证应成功，实际 %d: %s", w.Code, w.Body.String())
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("等待广播超时: %v", err)
	}

	var event struct {
		Type    string `json:"type"`
		Payload struct {
			MacAddr string `json:"mac_addr"`
			Teacher struct {
				Name string `json:"name"`
			} `json:"teacher"`
		} `json:"payload"`
	}
	if err := json.Unmarshal(msg, &event); err != nil {
		t.Fatalf("广播内容不是合法 JSON: %v", err)
	}
	if event.Type != ws.EventDeviceAuthStatusUpdate {
		t.Errorf("事件类型不符，期望 %s，实际 %s", ws.EventDeviceAuthStatusUpdate, event.Type)
	}
	if event.Payload.MacAddr != "aa:bb:cc:dd:ee:ff" || event.Payload.Teacher.Name != "王老师" {
		t.Errorf("广播内容不符: %s", msg)
	}
}
