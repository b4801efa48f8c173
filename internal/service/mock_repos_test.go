package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/NASVIPS/rfid-attendance-system/internal/model"
)

// uniqueViolation 模拟 PostgreSQL 唯一约束冲突
func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505"}
}

// ── ClassSession mock ──

// mockSessionRepo 按存储层同样的规则拒绝写入：
// 同一授课关系至多一个未关闭课堂
type mockSessionRepo struct {
	sessions map[string]*model.ClassSession
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[string]*model.ClassSession)}
}

func (m *mockSessionRepo) Create(_ context.Context, session *model.ClassSession) error {
	for _, s := range m.sessions {
		if s.SubjectInstID == session.SubjectInstID && !s.IsClosed {
			return uniqueViolation()
		}
	}
	if session.SessionID == "" {
		session.SessionID = uuid.New().String()
	}
	cp := *session
	m.sessions[session.SessionID] = &cp
	return nil
}

func (m *mockSessionRepo) GetByID(_ context.Context, id string) (*model.ClassSession, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *mockSessionRepo) Close(_ context.Context, id string, endAt time.Time) error {
	s, ok := m.sessions[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.IsClosed = true
	s.EndAt = &endAt
	return nil
}

func (m *mockSessionRepo) ListActive(_ context.Context) ([]model.ClassSession, error) {
	var out []model.ClassSession
	for _, s := range m.sessions {
		if !s.IsClosed {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return out, nil
}

func (m *mockSessionRepo) GetActiveByTeacher(_ context.Context, teacherID string) (*model.ClassSession, error) {
	var latest *model.ClassSession
	for _, s := range m.sessions {
		if s.TeacherID == teacherID && !s.IsClosed {
			if latest == nil || s.StartAt.After(latest.StartAt) {
				latest = s
			}
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *latest
	return &cp, nil
}

func (m *mockSessionRepo) ListClosedForReport(_ context.Context, sectionID string, subjectID *string, start, end *time.Time) ([]model.ClassSession, error) {
	var out []model.ClassSession
	for _, s := range m.sessions {
		if !s.IsClosed || s.SubjectInst == nil || s.SubjectInst.SectionID != sectionID {
			continue
		}
		if subjectID != nil && s.SubjectInst.SubjectID != *subjectID {
			continue
		}
		if start != nil && s.StartAt.Before(*start) {
			continue
		}
		if end != nil && s.StartAt.After(*end) {
			continue
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return out, nil
}

// ── ScheduledClass mock ──

type mockScheduleRepo struct {
	classes map[string]*model.ScheduledClass
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{classes: make(map[string]*model.ScheduledClass)}
}

func (m *mockScheduleRepo) Create(_ context.Context, sc *model.ScheduledClass) error {
	for _, c := range m.classes {
		if c.DayOfWeek == sc.DayOfWeek && c.SubjectID == sc.SubjectID &&
			c.SectionID == sc.SectionID && c.StartTime == sc.StartTime && c.EndTime == sc.EndTime {
			return uniqueViolation()
		}
	}
	if sc.ScheduledClassID == "" {
		sc.ScheduledClassID = uuid.New().String()
	}
	cp := *sc
	m.classes[sc.ScheduledClassID] = &cp
	return nil
}

func (m *mockScheduleRepo) GetByID(_ context.Context, id string) (*model.ScheduledClass, error) {
	sc, ok := m.classes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *sc
	return &cp, nil
}

func (m *mockScheduleRepo) ListByFacultyAndDay(_ context.Context, facultyID, dayOfWeek string) ([]model.ScheduledClass, error) {
	var out []model.ScheduledClass
	for _, c := range m.classes {
		if c.FacultyID == facultyID && c.DayOfWeek == dayOfWeek {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out, nil
}

func (m *mockScheduleRepo) ListBySubjectInst(_ context.Context, subjectInstID string) ([]model.ScheduledClass, error) {
	var out []model.ScheduledClass
	for _, c := range m.classes {
		if c.SubjectInstID == subjectInstID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *mockScheduleRepo) List(_ context.Context) ([]model.ScheduledClass, error) {
	var out []model.ScheduledClass
	for _, c := range m.classes {
		out = append(out, *c)
	}
	return out, nil
}

func (m *mockScheduleRepo) Delete(_ context.Context, id string) error {
	delete(m.classes, id)
	return nil
}

// ── Faculty mock ──

type mockFacultyRepo struct {
	faculties map[string]*model.Faculty
}

func newMockFacultyRepo() *mockFacultyRepo {
	return &mockFacultyRepo{faculties: make(map[string]*model.Faculty)}
}

func (m *mockFacultyRepo) Create(_ context.Context, f *model.Faculty) error {
	if f.FacultyID == "" {
		f.FacultyID = uuid.New().String()
	}
	cp := *f
	m.faculties[f.FacultyID] = &cp
	return nil
}

func (m *mockFacultyRepo) GetByID(_ context.Context, id string) (*model.Faculty, error) {
	f, ok := m.faculties[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *f
	return &cp, nil
}

func (m *mockFacultyRepo) GetByRFIDUid(_ context.Context, rfidUID string) (*model.Faculty, error) {
	for _, f := range m.faculties {
		if f.RFIDUid != nil && *f.RFIDUid == rfidUID {
			cp := *f
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockFacultyRepo) List(_ context.Context) ([]model.Faculty, error) {
	var out []model.Faculty
	for _, f := range m.faculties {
		out = append(out, *f)
	}
	return out, nil
}

func (m *mockFacultyRepo) Update(_ context.Context, f *model.Faculty) error {
	cp := *f
	m.faculties[f.FacultyID] = &cp
	return nil
}

func (m *mockFacultyRepo) Delete(_ context.Context, id string) error {
	delete(m.faculties, id)
	return nil
}

// ── Student mock ──

type mockStudentRepo struct {
	students map[string]*model.Student
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{students: make(map[string]*model.Student)}
}

func (m *mockStudentRepo) Create(_ context.Context, s *model.Student) error {
	if s.StudentID == "" {
		s.StudentID = uuid.New().String()
	}
	cp := *s
	m.students[s.StudentID] = &cp
	return nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id string) (*model.Student, error) {
	s, ok := m.students[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *mockStudentRepo) GetByRFIDUid(_ context.Context, rfidUID string) (*model.Student, error) {
	for _, s := range m.students {
		if s.RFIDUid != nil && *s.RFIDUid == rfidUID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) ListBySection(_ context.Context, sectionID string) ([]model.Student, error) {
	var out []model.Student
	for _, s := range m.students {
		if s.SectionID == sectionID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return strings.Compare(out[i].Name, out[j].Name) < 0 })
	return out, nil
}

func (m *mockStudentRepo) Update(_ context.Context, s *model.Student) error {
	cp := *s
	m.students[s.StudentID] = &cp
	return nil
}

func (m *mockStudentRepo) Delete(_ context.Context, id string) error {
	delete(m.students, id)
	return nil
}

// ── AttendanceLog mock ──

// mockAttendanceRepo 模拟 (session_id, student_id) 唯一约束
type mockAttendanceRepo struct {
	logs []model.AttendanceLog
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{}
}

func (m *mockAttendanceRepo) Create(_ context.Context, log *model.AttendanceLog) error {
	for _, l := range m.logs {
		if l.SessionID == log.SessionID && l.StudentID == log.StudentID {
			return uniqueViolation()
		}
	}
	if log.AttendanceLogID == "" {
		log.AttendanceLogID = uuid.New().String()
	}
	m.logs = append(m.logs, *log)
	return nil
}

func (m *mockAttendanceRepo) ListBySession(_ context.Context, sessionID string) ([]model.AttendanceLog, error) {
	var out []model.AttendanceLog
	for _, l := range m.logs {
		if l.SessionID == sessionID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (m *mockAttendanceRepo) ListBySessionIDs(_ context.Context, sessionIDs []string) ([]model.AttendanceLog, error) {
	wanted := make(map[string]struct{}, len(sessionIDs))
	for _, id := range sessionIDs {
		wanted[id] = struct{}{}
	}
	var out []model.AttendanceLog
	for _, l := range m.logs {
		if _, ok := wanted[l.SessionID]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

// ── Section mock ──

type mockSectionRepo struct {
	sections map[string]*model.Section
}

func newMockSectionRepo() *mockSectionRepo {
	return &mockSectionRepo{sections: make(map[string]*model.Section)}
}

func (m *mockSectionRepo) Create(_ context.Context, s *model.Section) error {
	if s.SectionID == "" {
		s.SectionID = uuid.New().String()
	}
	cp := *s
	m.sections[s.SectionID] = &cp
	return nil
}

func (m *mockSectionRepo) GetByID(_ context.Context, id string) (*model.Section, error) {
	s, ok := m.sections[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *mockSectionRepo) ListBySemester(_ context.Context, semesterID string) ([]model.Section, error) {
	var out []model.Section
	for _, s := range m.sections {
		if s.SemesterID == semesterID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *mockSectionRepo) Delete(_ context.Context, id string) error {
	delete(m.sections, id)
	return nil
}

// ── SubjectInstance mock ──

type mockSubjectInstanceRepo struct {
	insts map[string]*model.SubjectInstance
}

func newMockSubjectInstanceRepo() *mockSubjectInstanceRepo {
	return &mockSubjectInstanceRepo{insts: make(map[string]*model.SubjectInstance)}
}

func (m *mockSubjectInstanceRepo) Create(_ context.Context, inst *model.SubjectInstance) error {
	for _, i := range m.insts {
		if i.SubjectID == inst.SubjectID && i.SectionID == inst.SectionID && i.FacultyID == inst.FacultyID {
			return uniqueViolation()
		}
	}
	if inst.SubjectInstID == "" {
		inst.SubjectInstID = uuid.New().String()
	}
	cp := *inst
	m.insts[inst.SubjectInstID] = &cp
	return nil
}

func (m *mockSubjectInstanceRepo) GetByID(_ context.Context, id string) (*model.SubjectInstance, error) {
	inst, ok := m.insts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *inst
	return &cp, nil
}

func (m *mockSubjectInstanceRepo) GetByTriple(_ context.Context, subjectID, sectionID, facultyID string) (*model.SubjectInstance, error) {
	for _, i := range m.insts {
		if i.SubjectID == subjectID && i.SectionID == sectionID && i.FacultyID == facultyID {
			cp := *i
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectInstanceRepo) ListByFaculty(_ context.Context, facultyID string) ([]model.SubjectInstance, error) {
	var out []model.SubjectInstance
	for _, i := range m.insts {
		if i.FacultyID == facultyID {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (m *mockSubjectInstanceRepo) Delete(_ context.Context, id string) error {
	delete(m.insts, id)
	return nil
}

// ── Device mock ──

type mockDeviceRepo struct {
	devices map[string]*model.Device
}

func newMockDeviceRepo() *mockDeviceRepo {
	return &mockDeviceRepo{devices: make(map[string]*model.Device)}
}

func (m *mockDeviceRepo) Create(_ context.Context, d *model.Device) error {
	for _, existing := range m.devices {
		if existing.MacAddr == d.MacAddr {
			return uniqueViolation()
		}
	}
	if d.DeviceID == "" {
		d.DeviceID = uuid.New().String()
	}
	cp := *d
	m.devices[d.DeviceID] = &cp
	return nil
}

func (m *mockDeviceRepo) GetByID(_ context.Context, id string) (*model.Device, error) {
	d, ok := m.devices[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *d
	return &cp, nil
}

func (m *mockDeviceRepo) GetByMac(_ context.Context, macAddr string) (*model.Device, error) {
	for _, d := range m.devices {
		if d.MacAddr == macAddr {
			cp := *d
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDeviceRepo) List(_ context.Context) ([]model.Device, error) {
	var out []model.Device
	for _, d := range m.devices {
		out = append(out, *d)
	}
	return out, nil
}

func (m *mockDeviceRepo) Update(_ context.Context, d *model.Device) error {
	cp := *d
	m.devices[d.DeviceID] = &cp
	return nil
}
