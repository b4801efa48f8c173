package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/NASVIPS/rfid-attendance-system/internal/dto"
	"github.com/NASVIPS/rfid-attendance-system/internal/model"
)

func strPtr(s string) *string { return &s }

type attendanceFixture struct {
	svc            *AttendanceService
	sessionRepo    *mockSessionRepo
	studentRepo    *mockStudentRepo
	attendanceRepo *mockAttendanceRepo
	sectionRepo    *mockSectionRepo
	sessionID      string
	sectionID      string
	// 学生按姓名字母序: Alice < Bob < Charlie
	alice, bob, charlie *model.Student
}

// newAttendanceFixture 准备一个三人班级和一节进行中课堂
func newAttendanceFixture(t *testing.T) *attendanceFixture {
	t.Helper()

	sessionRepo := newMockSessionRepo()
	studentRepo := newMockStudentRepo()
	attendanceRepo := newMockAttendanceRepo()
	sectionRepo := newMockSectionRepo()

	section := &model.Section{SemesterID: "sem-1", Name: "CS-A"}
	if err := sectionRepo.Create(context.Background(), section); err != nil {
		t.Fatalf("准备班级失败: %v", err)
	}

	mk := func(name, enrollment, rfid string) *model.Student {
		s := &model.Student{
			SectionID:    section.SectionID,
			Name:         name,
			EnrollmentNo: enrollment,
			RFIDUid:      strPtr(rfid),
		}
		if err := studentRepo.Create(context.Background(), s); err != nil {
			t.Fatalf("准备学生失败: %v", err)
		}
		return s
	}
	alice := mk("Alice", "EN001", "CARD-A")
	bob := mk("Bob", "EN002", "CARD-B")
	charlie := mk("Charlie", "EN003", "CARD-C")

	session := &model.ClassSession{
		SubjectInstID: "inst-1",
		TeacherID:     "teacher-1",
		StartAt:       time.Now(),
		SubjectInst: &model.SubjectInstance{
			SubjectInstID: "inst-1",
			SubjectID:     "subj-1",
			SectionID:     section.SectionID,
			FacultyID:     "teacher-1",
		},
	}
	if err := sessionRepo.Create(context.Background(), session); err != nil {
		t.Fatalf("准备课堂失败: %v", err)
	}

	return &attendanceFixture{
		svc:            NewAttendanceService(attendanceRepo, sessionRepo, studentRepo, sectionRepo, zap.NewNop()),
		sessionRepo:    sessionRepo,
		studentRepo:    studentRepo,
		attendanceRepo: attendanceRepo,
		sectionRepo:    sectionRepo,
		sessionID:      session.SessionID,
		sectionID:      section.SectionID,
		alice:          alice,
		bob:            bob,
		charlie:        charlie,
	}
}

func (f *attendanceFixture) scan(t *testing.T, rfid string) (*model.AttendanceLog, error) {
	t.Helper()
	log, _, err := f.svc.RecordScan(context.Background(), &dto.ScanRequest{
		RFIDUid:   rfid,
		SessionID: f.sessionID,
	}, "aa:bb:cc:dd:ee:ff", "device-1")
	return log, err
}

func TestRecordScan_成功(t *testing.T) {
	f := newAttendanceFixture(t)

	log, err := f.scan(t, "CARD-A")
	if err != nil {
		t.Fatalf("签到失败: %v", err)
	}
	if log.StudentID != f.alice.StudentID {
		t.Errorf("签到学生不符，期望 %s，实际 %s", f.alice.StudentID, log.StudentID)
	}
	if log.Status != model.AttendanceStatusPresent {
		t.Errorf("签到状态应为 PRESENT，实际 %s", log.Status)
	}
	if log.DeviceMacAddr != "aa:bb:cc:dd:ee:ff" {
		t.Errorf("签到记录应带上报设备 MAC，实际 %q", log.DeviceMacAddr)
	}
	if log.DeviceID == nil || *log.DeviceID != "device-1" {
		t.Errorf("签到记录应带上报设备 ID，实际 %v", log.DeviceID)
	}
}

func TestRecordScan_重复刷卡幂等(t *testing.T) {
	f := newAttendanceFixture(t)

	if _, err := f.scan(t, "CARD-A"); err != nil {
		t.Fatalf("首次签到失败: %v", err)
	}
	_, err := f.scan(t, "CARD-A")
	if !errors.Is(err, ErrAlreadyMarked) {
		t.Fatalf("期望 ErrAlreadyMarked，实际 %v", err)
	}

	logs, err := f.attendanceRepo.ListBySession(context.Background(), f.sessionID)
	if err != nil {
		t.Fatalf("查询签到记录失败: %v", err)
	}
	if len(logs) != 1 {
		t.Errorf("重复刷卡后应只有一条记录，实际 %d 条", len(logs))
	}
}

func TestRecordScan_卡未绑定(t *testing.T) {
	f := newAttendanceFixture(t)

	_, err := f.scan(t, "CARD-UNKNOWN")
	if !errors.Is(err, ErrCardNotEnrolled) {
		t.Fatalf("期望 ErrCardNotEnrolled，实际 %v", err)
	}
}

func TestRecordScan_课堂已关闭(t *testing.T) {
	f := newAttendanceFixture(t)

	if err := f.sessionRepo.Close(context.Background(), f.sessionID, time.Now()); err != nil {
		t.Fatalf("关闭课堂失败: %v", err)
	}
	_, err := f.scan(t, "CARD-A")
	if !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("期望 ErrSessionClosed，实际 %v", err)
	}
}

func TestRecordScan_课堂校验先于卡号校验(t *testing.T) {
	f := newAttendanceFixture(t)

	if err := f.sessionRepo.Close(context.Background(), f.sessionID, time.Now()); err != nil {
		t.Fatalf("关闭课堂失败: %v", err)
	}

	// 未绑定的卡刷已关闭的课堂，应先报课堂状态错误
	_, err := f.scan(t, "CARD-UNKNOWN")
	if !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("期望 ErrSessionClosed，实际 %v", err)
	}

	_, _, err = f.svc.RecordScan(context.Background(), &dto.ScanRequest{
		RFIDUid:   "CARD-UNKNOWN",
		SessionID: "no-such-session",
	}, "aa:bb:cc:dd:ee:ff", "device-1")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("期望 ErrSessionNotFound，实际 %v", err)
	}
}

func TestRecordScan_跨班学生被拒(t *testing.T) {
	f := newAttendanceFixture(t)

	outsider := &model.Student{
		SectionID:    "other-section",
		Name:         "Dave",
		EnrollmentNo: "EN999",
		RFIDUid:      strPtr("CARD-D"),
	}
	if err := f.studentRepo.Create(context.Background(), outsider); err != nil {
		t.Fatalf("准备学生失败: %v", err)
	}

	_, err := f.scan(t, "CARD-D")
	if !errors.Is(err, ErrStudentNotInSection) {
		t.Fatalf("期望 ErrStudentNotInSection，实际 %v", err)
	}
}

func TestSnapshot_划分与计数(t *testing.T) {
	f := newAttendanceFixture(t)

	// Charlie 先刷，Alice 后刷；到场列表应保持刷卡先后
	base := time.Now()
	times := []time.Time{base, base.Add(time.Minute)}
	i := 0
	f.svc.now = func() time.Time { at := times[i]; i++; return at }

	if _, err := f.scan(t, "CARD-C"); err != nil {
		t.Fatalf("签到失败: %v", err)
	}
	if _, err := f.scan(t, "CARD-A"); err != nil {
		t.Fatalf("签到失败: %v", err)
	}

	snapshot, err := f.svc.Snapshot(context.Background(), f.sessionID)
	if err != nil {
		t.Fatalf("生成快照失败: %v", err)
	}

	if snapshot.PresentCount+snapshot.AbsentCount != snapshot.TotalInSection {
		t.Errorf("到场与缺席人数之和应等于名册总数: %d + %d != %d",
			snapshot.PresentCount, snapshot.AbsentCount, snapshot.TotalInSection)
	}
	if snapshot.TotalInSection != 3 {
		t.Errorf("名册总数应为 3，实际 %d", snapshot.TotalInSection)
	}

	if len(snapshot.Present) != 2 {
		t.Fatalf("到场列表应有 2 人，实际 %d", len(snapshot.Present))
	}
	if snapshot.Present[0].Name != "Charlie" || snapshot.Present[1].Name != "Alice" {
		t.Errorf("到场列表应按刷卡先后排序，实际 %s, %s",
			snapshot.Present[0].Name, snapshot.Present[1].Name)
	}

	if len(snapshot.Absent) != 1 || snapshot.Absent[0].Name != "Bob" {
		t.Errorf("缺席列表应只有 Bob，实际 %+v", snapshot.Absent)
	}
	if snapshot.Absent[0].Status != "ABSENT" {
		t.Errorf("缺席状态应为 ABSENT，实际 %s", snapshot.Absent[0].Status)
	}
}

func TestSnapshot_无人签到(t *testing.T) {
	f := newAttendanceFixture(t)

	snapshot, err := f.svc.Snapshot(context.Background(), f.sessionID)
	if err != nil {
		t.Fatalf("生成快照失败: %v", err)
	}
	if snapshot.PresentCount != 0 || snapshot.AbsentCount != 3 {
		t.Errorf("空课堂应为全员缺席，实际到场 %d 缺席 %d",
			snapshot.PresentCount, snapshot.AbsentCount)
	}
	// 缺席列表继承名册的姓名字母序
	if snapshot.Absent[0].Name != "Alice" || snapshot.Absent[2].Name != "Charlie" {
		t.Errorf("缺席列表应按姓名排序，实际 %+v", snapshot.Absent)
	}
}

func TestSnapshot_课堂不存在(t *testing.T) {
	f := newAttendanceFixture(t)

	_, err := f.svc.Snapshot(context.Background(), "no-such-session")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("期望 ErrSessionNotFound，实际 %v", err)
	}
}

// 完整走一遍三人班级的上课流程：刷卡、重复刷卡、下课后刷卡
func TestAttendance_完整场景(t *testing.T) {
	f := newAttendanceFixture(t)

	base := time.Now()
	i := 0
	f.svc.now = func() time.Time { at := base.Add(time.Duration(i) * time.Minute); i++; return at }

	// A 刷卡
	if _, err := f.scan(t, "CARD-A"); err != nil {
		t.Fatalf("A 签到失败: %v", err)
	}
	snap, err := f.svc.Snapshot(context.Background(), f.sessionID)
	if err != nil {
		t.Fatalf("生成快照失败: %v", err)
	}
	if snap.PresentCount != 1 || snap.AbsentCount != 2 || snap.TotalInSection != 3 {
		t.Fatalf("快照计数不符: %+v", snap)
	}

	// A 重复刷卡：冲突，快照不变
	if _, err := f.scan(t, "CARD-A"); !errors.Is(err, ErrAlreadyMarked) {
		t.Fatalf("期望 ErrAlreadyMarked，实际 %v", err)
	}
	snap2, err := f.svc.Snapshot(context.Background(), f.sessionID)
	if err != nil {
		t.Fatalf("生成快照失败: %v", err)
	}
	if snap2.PresentCount != 1 {
		t.Errorf("重复刷卡后到场人数不应变化，实际 %d", snap2.PresentCount)
	}

	// B 刷卡：到场列表保持到场先后 A, B
	if _, err := f.scan(t, "CARD-B"); err != nil {
		t.Fatalf("B 签到失败: %v", err)
	}
	snap3, err := f.svc.Snapshot(context.Background(), f.sessionID)
	if err != nil {
		t.Fatalf("生成快照失败: %v", err)
	}
	if snap3.Present[0].Name != "Alice" || snap3.Present[1].Name != "Bob" {
		t.Errorf("到场顺序应为 Alice, Bob，实际 %+v", snap3.Present)
	}
	if len(snap3.Absent) != 1 || snap3.Absent[0].Name != "Charlie" {
		t.Errorf("缺席列表应只有 Charlie，实际 %+v", snap3.Absent)
	}

	// 下课后 C 刷卡被拒
	if err := f.sessionRepo.Close(context.Background(), f.sessionID, time.Now()); err != nil {
		t.Fatalf("关闭课堂失败: %v", err)
	}
	if _, err := f.scan(t, "CARD-C"); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("期望 ErrSessionClosed，实际 %v", err)
	}
}

func TestAggregatedReport_统计口径(t *testing.T) {
	f := newAttendanceFixture(t)

	inst := &model.SubjectInstance{
		SubjectInstID: "inst-1",
		SubjectID:     "subj-1",
		SectionID:     f.sectionID,
		FacultyID:     "teacher-1",
	}

	// 两节已关闭课堂：Alice 全勤，Bob 出勤一次，Charlie 全缺
	mkClosed := func(id string, startAt time.Time) {
		end := startAt.Add(time.Hour)
		s := &model.ClassSession{
			SessionID:     id,
			SubjectInstID: "inst-1",
			TeacherID:     "teacher-1",
			StartAt:       startAt,
			EndAt:         &end,
			IsClosed:      true,
			SubjectInst:   inst,
		}
		f.sessionRepo.sessions[id] = s
	}
	day1 := time.Date(2024, 3, 4, 9, 0, 0, 0, time.Local)
	day2 := day1.Add(24 * time.Hour)
	mkClosed("closed-1", day1)
	mkClosed("closed-2", day2)

	mark := func(sessionID, studentID string, at time.Time) {
		err := f.attendanceRepo.Create(context.Background(), &model.AttendanceLog{
			SessionID: sessionID,
			StudentID: studentID,
			Timestamp: at,
			Status:    model.AttendanceStatusPresent,
		})
		if err != nil {
			t.Fatalf("准备签到记录失败: %v", err)
		}
	}
	mark("closed-1", f.alice.StudentID, day1)
	mark("closed-2", f.alice.StudentID, day2)
	mark("closed-1", f.bob.StudentID, day1)

	summaries, err := f.svc.AggregatedReport(context.Background(), &dto.AggregatedReportRequest{
		SectionID: f.sectionID,
	})
	if err != nil {
		t.Fatalf("汇总报表失败: %v", err)
	}
	if len(summaries) != 3 {
		t.Fatalf("报表应覆盖全班 3 人，实际 %d", len(summaries))
	}

	byName := make(map[string]dto.StudentAttendanceSummary, len(summaries))
	for _, s := range summaries {
		byName[s.Name] = s
	}

	if got := byName["Alice"]; got.PresentCount != 2 || got.AttendancePercentage != 100 {
		t.Errorf("Alice 应全勤，实际 %+v", got)
	}
	if got := byName["Bob"]; got.PresentCount != 1 || got.AbsentCount != 1 || got.AttendancePercentage != 50 {
		t.Errorf("Bob 应出勤一半，实际 %+v", got)
	}
	if got := byName["Charlie"]; got.PresentCount != 0 || got.AttendancePercentage != 0 {
		t.Errorf("Charlie 应全缺，实际 %+v", got)
	}
	if got := byName["Alice"]; got.TotalClasses != 2 {
		t.Errorf("总课次应为 2，实际 %d", got.TotalClasses)
	}
}

func TestAggregatedReport_日期过滤(t *testing.T) {
	f := newAttendanceFixture(t)

	inst := &model.SubjectInstance{SubjectInstID: "inst-1", SectionID: f.sectionID}
	end1 := time.Date(2024, 3, 4, 10, 0, 0, 0, time.Local)
	end2 := time.Date(2024, 3, 11, 10, 0, 0, 0, time.Local)
	f.sessionRepo.sessions["s1"] = &model.ClassSession{
		SessionID: "s1", SubjectInstID: "inst-1", TeacherID: "t",
		StartAt: time.Date(2024, 3, 4, 9, 0, 0, 0, time.Local), EndAt: &end1,
		IsClosed: true, SubjectInst: inst,
	}
	f.sessionRepo.sessions["s2"] = &model.ClassSession{
		SessionID: "s2", SubjectInstID: "inst-1", TeacherID: "t",
		StartAt: time.Date(2024, 3, 11, 9, 0, 0, 0, time.Local), EndAt: &end2,
		IsClosed: true, SubjectInst: inst,
	}

	summaries, err := f.svc.AggregatedReport(context.Background(), &dto.AggregatedReportRequest{
		SectionID: f.sectionID,
		StartDate: strPtr("2024-03-10"),
		EndDate:   strPtr("2024-03-12"),
	})
	if err != nil {
		t.Fatalf("汇总报表失败: %v", err)
	}
	if summaries[0].TotalClasses != 1 {
		t.Errorf("日期过滤后总课次应为 1，实际 %d", summaries[0].TotalClasses)
	}
}
