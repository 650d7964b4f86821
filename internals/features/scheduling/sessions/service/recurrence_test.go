package service

import (
	"errors"
	"testing"
	"time"

	"gorm.io/datatypes"

	m "trainingcenter_backend/internals/features/scheduling/sessions/model"
)

func recurringSession(date time.Time, pat m.RecurrencePattern) *m.ClassSessionModel {
	s := newTestSession(10)
	s.ClassSessionDate = date
	s.ClassSessionStartTime = "09:00"
	s.ClassSessionEndTime = "11:00"
	s.ClassSessionDurationMinutes = 120
	s.ClassSessionIsRecurring = true
	jt := datatypes.NewJSONType(pat)
	s.ClassSessionRecurrence = &jt
	return s
}

func utcDate(y int, mo time.Month, d int) time.Time {
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}

func expandDates(t *testing.T, s *m.ClassSessionModel, end time.Time) []string {
	t.Helper()
	out, err := NewRecurrenceExpander().Expand(s, end)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	dates := make([]string, 0, len(out))
	for i := range out {
		dates = append(dates, out[i].ClassSessionDate.Format("2006-01-02"))
	}
	return dates
}

func assertDates(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("dates = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("dates[%d] = %s, want %s (full: %v)", i, got[i], want[i], got)
		}
	}
}

func TestExpandDaily(t *testing.T) {
	s := recurringSession(utcDate(2026, 3, 2), m.RecurrencePattern{
		Type:     m.RecurrenceDaily,
		Interval: 2,
	})
	got := expandDates(t, s, utcDate(2026, 3, 9))
	assertDates(t, got, []string{"2026-03-04", "2026-03-06", "2026-03-08"})
}

func TestExpandWeeklyOnWeekdays(t *testing.T) {
	// base Senin 2 Maret 2026; setiap Rabu (3) dan Jumat (5)
	s := recurringSession(utcDate(2026, 3, 2), m.RecurrencePattern{
		Type:     m.RecurrenceWeekly,
		Interval: 1,
		Weekdays: []int{3, 5},
	})
	got := expandDates(t, s, utcDate(2026, 3, 13))
	assertDates(t, got, []string{"2026-03-04", "2026-03-06", "2026-03-11", "2026-03-13"})
}

func TestExpandWeeklyNoWeekdaySet(t *testing.T) {
	s := recurringSession(utcDate(2026, 3, 6), m.RecurrencePattern{
		Type:     m.RecurrenceWeekly,
		Interval: 2,
	})
	got := expandDates(t, s, utcDate(2026, 4, 6))
	assertDates(t, got, []string{"2026-03-20", "2026-04-03"})
}

func TestExpandMonthlyClampsToMonthEnd(t *testing.T) {
	// 31 Januari: Februari di-clamp ke 28, dan Maret kembali ke 31
	// karena clamp dihitung dari tanggal base, bukan dari occurrence sebelumnya.
	s := recurringSession(utcDate(2026, 1, 31), m.RecurrencePattern{
		Type:     m.RecurrenceMonthly,
		Interval: 1,
	})
	got := expandDates(t, s, utcDate(2026, 4, 1))
	assertDates(t, got, []string{"2026-02-28", "2026-03-31"})
}

func TestExpandPatternEndDateWins(t *testing.T) {
	patternEnd := utcDate(2026, 3, 10)
	s := recurringSession(utcDate(2026, 3, 2), m.RecurrencePattern{
		Type:     m.RecurrenceDaily,
		Interval: 3,
		EndDate:  &patternEnd,
	})
	// target lebih jauh dari pattern end: pattern end yang menang
	got := expandDates(t, s, utcDate(2026, 3, 31))
	assertDates(t, got, []string{"2026-03-05", "2026-03-08"})
}

func TestExpandInstanceIsCleanCopy(t *testing.T) {
	s := recurringSession(utcDate(2026, 3, 2), m.RecurrencePattern{
		Type:     m.RecurrenceDaily,
		Interval: 1,
	})
	s.ClassSessionStatus = m.SessionInProgress
	s.ClassSessionEnrollments = append(s.ClassSessionEnrollments, m.EnrollmentRecord{})

	out, err := NewRecurrenceExpander().Expand(s, utcDate(2026, 3, 3))
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("len = %d, want 1", len(out))
	}
	inst := out[0]
	if inst.ClassSessionStatus != m.SessionScheduled {
		t.Fatalf("status = %s, want scheduled", inst.ClassSessionStatus)
	}
	if len(inst.ClassSessionEnrollments) != 0 || len(inst.ClassSessionWaitlist) != 0 || len(inst.ClassSessionAttendance) != 0 {
		t.Fatal("koleksi instance harus kosong")
	}
	if inst.ClassSessionStartTime != "09:00" || inst.ClassSessionEndTime != "11:00" {
		t.Fatalf("jam tidak tersalin: %s-%s", inst.ClassSessionStartTime, inst.ClassSessionEndTime)
	}
}

func TestExpandErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *m.ClassSessionModel)
		wantErr error
	}{
		{
			name:    "bukan sesi berulang",
			mutate:  func(s *m.ClassSessionModel) { s.ClassSessionIsRecurring = false },
			wantErr: ErrNotRecurring,
		},
		{
			name:    "pattern kosong",
			mutate:  func(s *m.ClassSessionModel) { s.ClassSessionRecurrence = nil },
			wantErr: ErrNotRecurring,
		},
		{
			name: "interval nol",
			mutate: func(s *m.ClassSessionModel) {
				jt := datatypes.NewJSONType(m.RecurrencePattern{Type: m.RecurrenceDaily, Interval: 0})
				s.ClassSessionRecurrence = &jt
			},
			wantErr: ErrInvalidRecurrence,
		},
		{
			name: "type tidak dikenal",
			mutate: func(s *m.ClassSessionModel) {
				jt := datatypes.NewJSONType(m.RecurrencePattern{Type: "yearly", Interval: 1})
				s.ClassSessionRecurrence = &jt
			},
			wantErr: ErrInvalidRecurrence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := recurringSession(utcDate(2026, 3, 2), m.RecurrencePattern{Type: m.RecurrenceDaily, Interval: 1})
			tt.mutate(s)
			if _, err := NewRecurrenceExpander().Expand(s, utcDate(2026, 4, 1)); !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
