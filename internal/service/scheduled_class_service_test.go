package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/NASVIPS/rfid-attendance-system/internal/dto"
	"github.com/NASVIPS/rfid-attendance-system/internal/model"
)

type scheduleFixture struct {
	svc         *ScheduledClassService
	instRepo    *mockSubjectInstanceRepo
	facultyRepo *mockFacultyRepo
	instID      string
	facultyID   string
}

func newScheduleFixture(t *testing.T) *scheduleFixture {
	t.Helper()

	scheduleRepo := newMockScheduleRepo()
	instRepo := newMockSubjectInstanceRepo()
	facultyRepo := newMockFacultyRepo()

	faculty := &model.Faculty{Name: "王老师", EmpID: "EMP001"}
	if err := facultyRepo.Create(context.Background(), faculty); err != nil {
		t.Fatalf("准备教师失败: %v", err)
	}

	inst := &model.SubjectInstance{
		SubjectID: "subj-1",
		SectionID: "sect-1",
		FacultyID: faculty.FacultyID,
	}
	if err := instRepo.Create(context.Background(), inst); err != nil {
		t.Fatalf("准备授课关系失败: %v", err)
	}

	return &scheduleFixture{
		svc:         NewScheduledClassService(scheduleRepo, instRepo, facultyRepo, zap.NewNop()),
		instRepo:    instRepo,
		facultyRepo: facultyRepo,
		instID:      inst.SubjectInstID,
		facultyID:   faculty.FacultyID,
	}
}

func TestScheduledClassCreate_冗余列取自授课关系(t *testing.T) {
	f := newScheduleFixture(t)

	sc, err := f.svc.Create(context.Background(), &dto.CreateScheduledClassRequest{
		SubjectInstID: f.instID,
		DayOfWeek:     model.Monday,
		StartTime:     "09:00",
		EndTime:       "10:00",
	})
	if err != nil {
		t.Fatalf("创建课表失败: %v", err)
	}
	if sc.SubjectID != "subj-1" || sc.SectionID != "sect-1" || sc.FacultyID != f.facultyID {
		t.Errorf("冗余列应取自授课关系，实际 %+v", sc)
	}
}

func TestScheduledClassCreate_代课教师覆盖(t *testing.T) {
	f := newScheduleFixture(t)

	sub := &model.Faculty{Name: "李老师", EmpID: "EMP002"}
	if err := f.facultyRepo.Create(context.Background(), sub); err != nil {
		t.Fatalf("准备教师失败: %v", err)
	}

	sc, err := f.svc.Create(context.Background(), &dto.CreateScheduledClassRequest{
		SubjectInstID: f.instID,
		FacultyID:     &sub.FacultyID,
		DayOfWeek:     model.Tuesday,
		StartTime:     "09:00",
		EndTime:       "10:00",
	})
	if err != nil {
		t.Fatalf("创建课表失败: %v", err)
	}
	if sc.FacultyID != sub.FacultyID {
		t.Errorf("显式指定的教师应覆盖授课关系中的教师，实际 %s", sc.FacultyID)
	}
}

func TestScheduledClassCreate_重复时段冲突(t *testing.T) {
	f := newScheduleFixture(t)

	req := &dto.CreateScheduledClassRequest{
		SubjectInstID: f.instID,
		DayOfWeek:     model.Monday,
		StartTime:     "09:00",
		EndTime:       "10:00",
	}
	if _, err := f.svc.Create(context.Background(), req); err != nil {
		t.Fatalf("首次创建失败: %v", err)
	}
	_, err := f.svc.Create(context.Background(), req)
	if !errors.Is(err, ErrScheduleSlotExists) {
		t.Fatalf("期望 ErrScheduleSlotExists，实际 %v", err)
	}
}

func TestScheduledClassCreate_非法时间范围(t *testing.T) {
	f := newScheduleFixture(t)

	cases := []struct {
		name  string
		start string
		end   string
	}{
		{"开始晚于结束", "10:00", "09:00"},
		{"开始等于结束", "09:00", "09:00"},
		{"格式非法", "9am", "10:00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Create(context.Background(), &dto.CreateScheduledClassRequest{
				SubjectInstID: f.instID,
				DayOfWeek:     model.Wednesday,
				StartTime:     tc.start,
				EndTime:       tc.end,
			})
			if !errors.Is(err, ErrBadTimeRange) {
				t.Fatalf("期望 ErrBadTimeRange，实际 %v", err)
			}
		})
	}
}

func TestScheduledClassCreate_授课关系不存在(t *testing.T) {
	f := newScheduleFixture(t)

	_, err := f.svc.Create(context.Background(), &dto.CreateScheduledClassRequest{
		SubjectInstID: "no-such-inst",
		DayOfWeek:     model.Monday,
		StartTime:     "09:00",
		EndTime:       "10:00",
	})
	if !errors.Is(err, ErrSubjectInstNotFound) {
		t.Fatalf("期望 ErrSubjectInstNotFound，实际 %v", err)
	}
}
