// file: internals/features/scheduling/sessions/service/recurrence.go
package service

import (
	"errors"
	"time"

	"gorm.io/datatypes"

	m "trainingcenter_backend/internals/features/scheduling/sessions/model"
)

/* =========================
   Recurrence Expander
   ========================= */

var (
	ErrNotRecurring      = errors.New("sesi bukan sesi berulang atau pattern kosong")
	ErrInvalidRecurrence = errors.New("recurrence pattern tidak valid")
)

type RecurrenceExpander struct{}

func NewRecurrenceExpander() *RecurrenceExpander { return &RecurrenceExpander{} }

// Expand menghasilkan sesi-sesi baru dari base (base tidak termasuk),
// strictly setelah tanggal base sampai dan termasuk endDate. Setiap
// instance adalah structural copy dengan status di-reset ke scheduled
// dan koleksi enrollment/waitlist/attendance kosong.
func (re *RecurrenceExpander) Expand(base *m.ClassSessionModel, endDate time.Time) ([]m.ClassSessionModel, error) {
	if !base.ClassSessionIsRecurring {
		return nil, ErrNotRecurring
	}
	p := base.RecurrencePattern()
	if p == nil {
		return nil, ErrNotRecurring
	}
	if p.Interval < 1 {
		return nil, ErrInvalidRecurrence
	}
	switch p.Type {
	case m.RecurrenceDaily, m.RecurrenceWeekly, m.RecurrenceMonthly:
	default:
		return nil, ErrInvalidRecurrence
	}

	// pakai UTC midnight supaya konsisten dengan kolom DATE
	baseDate := dateOnly(base.ClassSessionDate)
	end := dateOnly(endDate)
	if p.EndDate != nil {
		if pe := dateOnly(*p.EndDate); pe.Before(end) {
			end = pe
		}
	}

	var out []m.ClassSessionModel
	cur := baseDate
	months := 0 // akumulasi khusus monthly; clamp selalu dari baseDate
	for {
		var next time.Time
		switch p.Type {
		case m.RecurrenceDaily:
			next = cur.AddDate(0, 0, p.Interval)
		case m.RecurrenceWeekly:
			next = nextWeekly(cur, p)
		case m.RecurrenceMonthly:
			months += p.Interval
			next = addMonthsClamp(baseDate, months)
		}
		if next.After(end) {
			break
		}
		out = append(out, re.instance(base, next))
		cur = next
	}
	return out, nil
}

// nextWeekly: tanpa weekday set → +interval minggu; dengan set → scan
// hari-per-hari ke tanggal terdekat (maks. 7 hari) yang weekday-nya masuk set.
func nextWeekly(cur time.Time, p *m.RecurrencePattern) time.Time {
	if len(p.Weekdays) == 0 {
		return cur.AddDate(0, 0, p.Interval*7)
	}
	set := make(map[int]struct{}, len(p.Weekdays))
	for _, wd := range p.Weekdays {
		set[wd] = struct{}{}
	}
	for i := 1; i <= 7; i++ {
		cand := cur.AddDate(0, 0, i)
		if _, ok := set[int(cand.Weekday())]; ok {
			return cand
		}
	}
	// set non-empty selalu ketemu dalam 7 hari; fallback defensif sesuai perilaku lama
	return cur.AddDate(0, 0, p.Interval*7)
}

// addMonthsClamp menambah bulan kalender dengan day-of-month dipertahankan
// dan di-clamp ke hari terakhir bulan target (31 Jan +1 bulan → 28/29 Feb,
// bukan normalisasi ala AddDate yang meluber ke bulan berikutnya).
func addMonthsClamp(t time.Time, months int) time.Time {
	y, mo, d := t.Date()
	first := time.Date(y, mo, 1, 0, 0, 0, 0, time.UTC).AddDate(0, months, 0)
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC)
}

func dateOnly(t time.Time) time.Time {
	y, mo, d := t.UTC().Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}

// instance membuat structural copy base pada tanggal occurrence.
func (re *RecurrenceExpander) instance(base *m.ClassSessionModel, date time.Time) m.ClassSessionModel {
	inst := m.ClassSessionModel{
		ClassSessionCourseID:     base.ClassSessionCourseID,
		ClassSessionInstructorID: base.ClassSessionInstructorID,
		ClassSessionVenueName:    base.ClassSessionVenueName,
		ClassSessionVenueAddress: base.ClassSessionVenueAddress,

		ClassSessionDate:            date,
		ClassSessionStartTime:       base.ClassSessionStartTime,
		ClassSessionEndTime:         base.ClassSessionEndTime,
		ClassSessionDurationMinutes: base.ClassSessionDurationMinutes,

		ClassSessionCapacity:       base.ClassSessionCapacity,
		ClassSessionMaxEnrollments: base.ClassSessionMaxEnrollments,

		ClassSessionStatus:      m.SessionScheduled,
		ClassSessionIsRecurring: base.ClassSessionIsRecurring,

		ClassSessionPrice:      base.ClassSessionPrice,
		ClassSessionObjectives: append(datatypes.JSONSlice[string]{}, base.ClassSessionObjectives...),
		ClassSessionTags:       append(datatypes.JSONSlice[string]{}, base.ClassSessionTags...),

		ClassSessionEnrollments: datatypes.JSONSlice[m.EnrollmentRecord]{},
		ClassSessionWaitlist:    datatypes.JSONSlice[m.WaitlistEntry]{},
		ClassSessionAttendance:  datatypes.JSONSlice[m.AttendanceRecord]{},
	}
	if base.ClassSessionRecurrence != nil {
		cp := datatypes.NewJSONType(base.ClassSessionRecurrence.Data())
		inst.ClassSessionRecurrence = &cp
	}
	return inst
}
