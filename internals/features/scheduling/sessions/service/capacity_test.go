package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	m "trainingcenter_backend/internals/features/scheduling/sessions/model"
)

func newTestSession(maxEnroll int) *m.ClassSessionModel {
	return &m.ClassSessionModel{
		ClassSessionID:             uuid.New(),
		ClassSessionCourseID:       uuid.New(),
		ClassSessionInstructorID:   uuid.New(),
		ClassSessionCapacity:       maxEnroll,
		ClassSessionMaxEnrollments: maxEnroll,
		ClassSessionStatus:         m.SessionScheduled,
		ClassSessionEnrollments:    datatypes.JSONSlice[m.EnrollmentRecord]{},
		ClassSessionWaitlist:       datatypes.JSONSlice[m.WaitlistEntry]{},
		ClassSessionAttendance:     datatypes.JSONSlice[m.AttendanceRecord]{},
	}
}

func TestEnrollUntilFullThenWaitlist(t *testing.T) {
	cm := NewCapacityManager()
	s := newTestSession(2)
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	a, b, cc := uuid.New(), uuid.New(), uuid.New()

	for i, sid := range []uuid.UUID{a, b} {
		st, err := cm.Enroll(s, sid, m.EnrollmentEnrolled, false, now.Add(time.Duration(i)*time.Minute))
		if err != nil {
			t.Fatalf("enroll %d: unexpected error %v", i, err)
		}
		if st != m.EnrollmentEnrolled {
			t.Fatalf("enroll %d: status = %s, want enrolled", i, st)
		}
	}

	// penuh: C harus turun ke waitlist, bukan error
	st, err := cm.Enroll(s, cc, m.EnrollmentEnrolled, false, now.Add(2*time.Minute))
	if err != nil {
		t.Fatalf("enroll C: unexpected error %v", err)
	}
	if st != m.EnrollmentWaitlist {
		t.Fatalf("enroll C: status = %s, want waitlist", st)
	}
	if got := s.ClassSessionWaitlist[0].Position; got != 1 {
		t.Fatalf("waitlist position = %d, want 1", got)
	}
	if s.ClassSessionCurrentEnrollments != 2 {
		t.Fatalf("current enrollments = %d, want 2", s.ClassSessionCurrentEnrollments)
	}
}

func TestEnrollRequireEnrolledRejectsWhenFull(t *testing.T) {
	cm := NewCapacityManager()
	s := newTestSession(1)
	now := time.Now().UTC()

	if _, err := cm.Enroll(s, uuid.New(), m.EnrollmentEnrolled, false, now); err != nil {
		t.Fatalf("seed enroll: %v", err)
	}

	_, err := cm.Enroll(s, uuid.New(), m.EnrollmentEnrolled, true, now)
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("err = %v, want ErrCapacityExceeded", err)
	}
	if len(s.ClassSessionWaitlist) != 0 {
		t.Fatalf("waitlist len = %d, want 0 (reject, bukan downgrade)", len(s.ClassSessionWaitlist))
	}
}

func TestEnrollDuplicateRejected(t *testing.T) {
	cm := NewCapacityManager()
	now := time.Now().UTC()

	tests := []struct {
		name  string
		setup func(s *m.ClassSessionModel, sid uuid.UUID)
	}{
		{
			name: "sudah enrolled",
			setup: func(s *m.ClassSessionModel, sid uuid.UUID) {
				if _, err := cm.Enroll(s, sid, m.EnrollmentEnrolled, false, now); err != nil {
					t.Fatalf("setup: %v", err)
				}
			},
		},
		{
			name: "sudah di waitlist",
			setup: func(s *m.ClassSessionModel, sid uuid.UUID) {
				if _, err := cm.Enroll(s, sid, m.EnrollmentWaitlist, false, now); err != nil {
					t.Fatalf("setup: %v", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(5)
			sid := uuid.New()
			tt.setup(s, sid)

			if _, err := cm.Enroll(s, sid, m.EnrollmentEnrolled, false, now); !errors.Is(err, ErrAlreadyEnrolled) {
				t.Fatalf("err = %v, want ErrAlreadyEnrolled", err)
			}
		})
	}
}

func TestRemovePromotesWaitlistHead(t *testing.T) {
	cm := NewCapacityManager()
	s := newTestSession(2)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	a, b := uuid.New(), uuid.New()
	c1, c2 := uuid.New(), uuid.New()

	mustEnroll := func(sid uuid.UUID, offset time.Duration) {
		t.Helper()
		if _, err := cm.Enroll(s, sid, m.EnrollmentEnrolled, false, base.Add(offset)); err != nil {
			t.Fatalf("enroll %s: %v", sid, err)
		}
	}
	mustEnroll(a, 0)
	mustEnroll(b, time.Minute)
	mustEnroll(c1, 2*time.Minute) // waitlist pos 1
	mustEnroll(c2, 3*time.Minute) // waitlist pos 2

	removed, promoted := cm.Remove(s, a, base.Add(10*time.Minute))
	if !removed {
		t.Fatal("removed = false, want true")
	}
	if promoted == nil || *promoted != c1 {
		t.Fatalf("promoted = %v, want %s", promoted, c1)
	}
	if !s.IsEnrolled(c1) {
		t.Fatal("c1 harus enrolled setelah promosi")
	}

	// posisi waitlist harus rapat 1..N lagi
	if len(s.ClassSessionWaitlist) != 1 {
		t.Fatalf("waitlist len = %d, want 1", len(s.ClassSessionWaitlist))
	}
	if got := s.ClassSessionWaitlist[0]; got.StudentID != c2 || got.Position != 1 {
		t.Fatalf("waitlist[0] = {%s pos %d}, want {%s pos 1}", got.StudentID, got.Position, c2)
	}
	if s.ClassSessionCurrentEnrollments != 2 {
		t.Fatalf("current enrollments = %d, want 2", s.ClassSessionCurrentEnrollments)
	}
}

func TestRemoveIdempotent(t *testing.T) {
	cm := NewCapacityManager()
	s := newTestSession(2)
	now := time.Now().UTC()

	removed, promoted := cm.Remove(s, uuid.New(), now)
	if removed {
		t.Fatal("removed = true untuk student yang tidak terdaftar")
	}
	if promoted != nil {
		t.Fatalf("promoted = %v, want nil", promoted)
	}
}

func TestRemoveFromWaitlistNoPromotion(t *testing.T) {
	cm := NewCapacityManager()
	s := newTestSession(1)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	a, w1, w2 := uuid.New(), uuid.New(), uuid.New()
	for i, sid := range []uuid.UUID{a, w1, w2} {
		if _, err := cm.Enroll(s, sid, m.EnrollmentEnrolled, false, base.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("enroll: %v", err)
		}
	}

	// hapus w1 dari waitlist: tidak ada slot terbuka, tidak ada promosi
	removed, promoted := cm.Remove(s, w1, base.Add(time.Hour))
	if !removed {
		t.Fatal("removed = false, want true")
	}
	if promoted != nil {
		t.Fatalf("promoted = %v, want nil", promoted)
	}
	if got := s.ClassSessionWaitlist[0]; got.StudentID != w2 || got.Position != 1 {
		t.Fatalf("waitlist[0] = {%s pos %d}, want {%s pos 1}", got.StudentID, got.Position, w2)
	}
}
