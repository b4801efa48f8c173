package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/NASVIPS/rfid-attendance-system/internal/dto"
	"github.com/NASVIPS/rfid-attendance-system/internal/service"
	"github.com/NASVIPS/rfid-attendance-system/pkg/response"
)

// ReportHandler 出勤报表导出接口
type ReportHandler struct {
	svc    *service.Service
	logger *zap.Logger
}

// Export 导出班级出勤汇总 Excel
// GET /api/report/export?section_id=&subject_id=&start_date=&end_date=
func (h *ReportHandler) Export(c *gin.Context) {
	var req dto.AggregatedReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "请求参数错误")
		return
	}

	f, filename, err := h.svc.Report.ExportSectionReport(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrSectionNotFound) {
			response.NotFound(c, 20501, err.Error())
			return
		}
		h.logger.Error("报表导出失败", zap.Error(err))
		response.InternalError(c)
		return
	}

	h.writeWorkbook(c, f, filename)
}

// ExportSession 导出单节课堂的到课明细 Excel
// GET /api/report/session/:sessionId/export
func (h *ReportHandler) ExportSession(c *gin.Context) {
	sessionID := c.Param("sessionId")

	f, filename, err := h.svc.Report.ExportSessionReport(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			response.NotFound(c, 20502, err.Error())
			return
		}
		h.logger.Error("课堂明细导出失败", zap.Error(err))
		response.InternalError(c)
		return
	}

	h.writeWorkbook(c, f, filename)
}

// writeWorkbook 把生成的工作簿以附件形式写入响应流
func (h *ReportHandler) writeWorkbook(c *gin.Context, f *excelize.File, filename string) {
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	if err := f.Write(c.Writer); err != nil {
		h.logger.Error("报表写出失败", zap.Error(err))
		return
	}
	c.Status(http.StatusOK)
}
