package service

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/NASVIPS/rfid-attendance-system/internal/dto"
)

// ReportService 出勤报表导出业务逻辑
// 数据复用 AttendanceService 的统计口径与快照划分，这里只负责渲染 Excel
type ReportService struct {
	attendanceSvc *AttendanceService
	sessionSvc    *SessionService
	directorySvc  *DirectoryService
	logger        *zap.Logger
}

// NewReportService 创建报表服务
func NewReportService(attendanceSvc *AttendanceService, sessionSvc *SessionService, directorySvc *DirectoryService, logger *zap.Logger) *ReportService {
	return &ReportService{
		attendanceSvc: attendanceSvc,
		sessionSvc:    sessionSvc,
		directorySvc:  directorySvc,
		logger:        logger,
	}
}

// ExportSessionReport 导出单节课堂的到课明细为 Excel 文件
// 先列到场学生（按刷卡先后），再列缺席学生（按姓名）
func (s *ReportService) ExportSessionReport(ctx context.Context, sessionID string) (*excelize.File, string, error) {
	session, err := s.sessionSvc.GetByID(ctx, sessionID)
	if err != nil {
		return nil, "", err
	}

	snapshot, err := s.attendanceSvc.Snapshot(ctx, sessionID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	const sheet = "到课明细"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", err
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	headers := []string{"学号", "姓名", "状态", "刷卡时间"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, "", err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err == nil {
		_ = f.SetRowStyle(sheet, 1, 1, headerStyle)
	}

	r := 2
	for _, p := range snapshot.Present {
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", r), p.EnrollmentNo)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", r), p.Name)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", r), p.Status)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", r), p.Timestamp)
		r++
	}
	for _, a := range snapshot.Absent {
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", r), a.EnrollmentNo)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", r), a.Name)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", r), a.Status)
		r++
	}

	_ = f.SetColWidth(sheet, "A", "B", 18)
	_ = f.SetColWidth(sheet, "C", "D", 22)

	filename := fmt.Sprintf("attendance_session_%s.xlsx", session.StartAt.Format("20060102_1504"))

	s.logger.Info("课堂明细导出完成",
		zap.String("session_id", sessionID),
		zap.Int("present", snapshot.PresentCount),
		zap.Int("absent", snapshot.AbsentCount))

	return f, filename, nil
}

// ExportSectionReport 导出班级出勤汇总为 Excel 文件
// 返回的 *excelize.File 由调用方写入响应流并负责关闭
func (s *ReportService) ExportSectionReport(ctx context.Context, req *dto.AggregatedReportRequest) (*excelize.File, string, error) {
	section, err := s.directorySvc.GetSection(ctx, req.SectionID)
	if err != nil {
		return nil, "", err
	}

	summaries, err := s.attendanceSvc.AggregatedReport(ctx, req)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	const sheet = "出勤汇总"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", err
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	headers := []string{"学号", "姓名", "出勤次数", "缺勤次数", "总课次", "出勤率(%)"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, "", err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err == nil {
		_ = f.SetRowStyle(sheet, 1, 1, headerStyle)
	}

	for i, row := range summaries {
		r := i + 2
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", r), row.EnrollmentNo)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", r), row.Name)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", r), row.PresentCount)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", r), row.AbsentCount)
		_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", r), row.TotalClasses)
		_ = f.SetCellValue(sheet, fmt.Sprintf("F%d", r), fmt.Sprintf("%.1f", row.AttendancePercentage))
	}

	_ = f.SetColWidth(sheet, "A", "B", 18)
	_ = f.SetColWidth(sheet, "C", "F", 12)

	filename := fmt.Sprintf("attendance_%s.xlsx", section.Name)

	s.logger.Info("报表导出完成",
		zap.String("section_id", req.SectionID),
		zap.Int("rows", len(summaries)))

	return f, filename, nil
}
