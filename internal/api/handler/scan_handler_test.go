package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/NASVIPS/rfid-attendance-system/internal/api/middleware"
	"github.com/NASVIPS/rfid-attendance-system/internal/dto"
	"github.com/NASVIPS/rfid-attendance-system/internal/model"
	"github.com/NASVIPS/rfid-attendance-system/internal/repository"
	"github.com/NASVIPS/rfid-attendance-system/internal/service"
)

// stubSessionRepo 只支撑按 ID 查询，其余方法在这些用例中不会被调用
type stubSessionRepo struct {
	repository.ClassSessionRepository
	sessions map[string]*model.ClassSession
}

func (s *stubSessionRepo) GetByID(_ context.Context, id string) (*model.ClassSession, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return sess, nil
}

func newScanContext(t *testing.T, sessionID string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, err := json.Marshal(dto.ScanRequest{RFIDUid: "CARD-A", SessionID: sessionID})
	if err != nil {
		t.Fatalf("构造请求失败: %v", err)
	}
	c.Request = httptest.NewRequest(http.MethodPost, "/api/scan/rfid", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.CtxDeviceMac, "aa:bb:cc:dd:ee:ff")
	c.Set(middleware.CtxDeviceID, "device-1")
	return c, w
}

// 设备端把课堂失效当作无效请求，应收到 400 而非 404/409
func TestScanRFID_课堂失效返回400(t *testing.T) {
	closedID := "11111111-1111-1111-1111-111111111111"
	end := time.Now()
	repo := &stubSessionRepo{sessions: map[string]*model.ClassSession{
		closedID: {SessionID: closedID, IsClosed: true, EndAt: &end},
	}}
	h := &ScanHandler{
		svc:    &service.Service{Attendance: service.NewAttendanceService(nil, repo, nil, nil, zap.NewNop())},
		logger: zap.NewNop(),
	}

	c, w := newScanContext(t, closedID)
	h.RFID(c)
	if w.Code != http.StatusBadRequest {
		t.Errorf("已关闭课堂刷卡应返回 400，实际 %d", w.Code)
	}
	var resp struct {
		Code int `json:"code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("响应不是合法 JSON: %v", err)
	}
	if resp.Code != 20103 {
		t.Errorf("业务码应为 20103，实际 %d", resp.Code)
	}

	c2, w2 := newScanContext(t, "22222222-2222-2222-2222-222222222222")
	h.RFID(c2)
	if w2.Code != http.StatusBadRequest {
		t.Errorf("不存在课堂刷卡应返回 400，实际 %d", w2.Code)
	}
}
