package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	m "trainingcenter_backend/internals/features/scheduling/sessions/model"
)

func sessionWithEnrolled(t *testing.T, n int) (*m.ClassSessionModel, []uuid.UUID) {
	t.Helper()
	cm := NewCapacityManager()
	s := newTestSession(n)
	s.ClassSessionDurationMinutes = 90
	ids := make([]uuid.UUID, 0, n)
	base := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		sid := uuid.New()
		if _, err := cm.Enroll(s, sid, m.EnrollmentEnrolled, false, base.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("seed enroll: %v", err)
		}
		ids = append(ids, sid)
	}
	return s, ids
}

func TestMarkRequiresEnrolled(t *testing.T) {
	as := NewAttendanceSynchronizer()
	s, _ := sessionWithEnrolled(t, 1)

	err := as.Mark(s, m.AttendanceRecord{StudentID: uuid.New(), Status: m.AttendancePresent})
	if !errors.Is(err, ErrNotEnrolled) {
		t.Fatalf("err = %v, want ErrNotEnrolled", err)
	}
	if len(s.ClassSessionAttendance) != 0 {
		t.Fatal("attendance tidak boleh berubah saat mark ditolak")
	}
}

func TestMarkWaitlistedStudentRejected(t *testing.T) {
	as := NewAttendanceSynchronizer()
	cm := NewCapacityManager()
	s, _ := sessionWithEnrolled(t, 1)

	w := uuid.New()
	st, err := cm.Enroll(s, w, m.EnrollmentEnrolled, false, time.Now().UTC())
	if err != nil || st != m.EnrollmentWaitlist {
		t.Fatalf("seed waitlist: status=%s err=%v", st, err)
	}

	// ada di waitlist saja tidak cukup untuk dicatat kehadirannya
	if err := as.Mark(s, m.AttendanceRecord{StudentID: w, Status: m.AttendancePresent}); !errors.Is(err, ErrNotEnrolled) {
		t.Fatalf("err = %v, want ErrNotEnrolled", err)
	}
}

func TestMarkReplacesExistingRecord(t *testing.T) {
	as := NewAttendanceSynchronizer()
	s, ids := sessionWithEnrolled(t, 1)
	sid := ids[0]

	if err := as.Mark(s, m.AttendanceRecord{StudentID: sid, Status: m.AttendanceAbsent}); err != nil {
		t.Fatalf("mark 1: %v", err)
	}
	if err := as.Mark(s, m.AttendanceRecord{StudentID: sid, Status: m.AttendanceLate, Notes: "macet"}); err != nil {
		t.Fatalf("mark 2: %v", err)
	}

	if len(s.ClassSessionAttendance) != 1 {
		t.Fatalf("attendance len = %d, want 1 (replace, bukan append)", len(s.ClassSessionAttendance))
	}
	got := s.ClassSessionAttendance[0]
	if got.Status != m.AttendanceLate || got.Notes != "macet" {
		t.Fatalf("record = %+v, want status late + notes", got)
	}
}

func TestBulkReplaceValidatesBeforeWriting(t *testing.T) {
	as := NewAttendanceSynchronizer()
	s, ids := sessionWithEnrolled(t, 2)

	// isi dulu supaya kelihatan kalau bulk yang gagal menyentuh data
	if err := as.Mark(s, m.AttendanceRecord{StudentID: ids[0], Status: m.AttendancePresent}); err != nil {
		t.Fatalf("seed mark: %v", err)
	}

	tests := []struct {
		name    string
		recs    []m.AttendanceRecord
		wantErr error
	}{
		{
			name: "ada student tidak enrolled",
			recs: []m.AttendanceRecord{
				{StudentID: ids[0], Status: m.AttendancePresent},
				{StudentID: uuid.New(), Status: m.AttendancePresent},
			},
			wantErr: ErrNotEnrolled,
		},
		{
			name: "record duplikat",
			recs: []m.AttendanceRecord{
				{StudentID: ids[0], Status: m.AttendancePresent},
				{StudentID: ids[0], Status: m.AttendanceAbsent},
			},
			wantErr: ErrDuplicateAttendance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// sentinel wajib: controller memetakan keduanya ke 400
			if err := as.BulkReplace(s, tt.recs); !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			// abort total: state lama utuh
			if len(s.ClassSessionAttendance) != 1 || s.ClassSessionAttendance[0].StudentID != ids[0] {
				t.Fatalf("attendance berubah setelah bulk gagal: %+v", s.ClassSessionAttendance)
			}
		})
	}
}

func TestBulkReplaceOverwritesAll(t *testing.T) {
	as := NewAttendanceSynchronizer()
	s, ids := sessionWithEnrolled(t, 3)

	if err := as.Mark(s, m.AttendanceRecord{StudentID: ids[0], Status: m.AttendanceAbsent}); err != nil {
		t.Fatalf("seed mark: %v", err)
	}

	recs := []m.AttendanceRecord{
		{StudentID: ids[1], Status: m.AttendancePresent},
		{StudentID: ids[2], Status: m.AttendanceLate},
	}
	if err := as.BulkReplace(s, recs); err != nil {
		t.Fatalf("bulk: %v", err)
	}

	if len(s.ClassSessionAttendance) != 2 {
		t.Fatalf("attendance len = %d, want 2 (full overwrite)", len(s.ClassSessionAttendance))
	}
	for i := range recs {
		if s.ClassSessionAttendance[i].StudentID != recs[i].StudentID {
			t.Fatalf("attendance[%d] = %s, want %s", i, s.ClassSessionAttendance[i].StudentID, recs[i].StudentID)
		}
	}
}

func TestProgressTasksOnlyPresentAndLate(t *testing.T) {
	as := NewAttendanceSynchronizer()
	s, ids := sessionWithEnrolled(t, 4)

	recs := []m.AttendanceRecord{
		{StudentID: ids[0], Status: m.AttendancePresent},
		{StudentID: ids[1], Status: m.AttendanceLate},
		{StudentID: ids[2], Status: m.AttendanceAbsent},
		{StudentID: ids[3], Status: m.AttendanceExcused},
	}
	tasks := as.ProgressTasks(s, recs)

	if len(tasks) != 2 {
		t.Fatalf("tasks len = %d, want 2 (hanya present/late)", len(tasks))
	}
	for _, task := range tasks {
		if task.CourseID != s.ClassSessionCourseID {
			t.Fatalf("course = %s, want %s", task.CourseID, s.ClassSessionCourseID)
		}
		if task.LessonsDelta != 1 {
			t.Fatalf("lessons delta = %d, want 1", task.LessonsDelta)
		}
		if task.HoursDelta != 1.5 { // 90 menit
			t.Fatalf("hours delta = %v, want 1.5", task.HoursDelta)
		}
	}
}
