// file: internals/features/scheduling/sessions/dto/session_dto.go
package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	m "trainingcenter_backend/internals/features/scheduling/sessions/model"
	helper "trainingcenter_backend/internals/helpers"
)

const maxDurationMinutes = 480 // 8 jam, same-day

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("tanggal tidak valid (YYYY-MM-DD): %q", s)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

/* =========================================================
 * REQUESTS
 * ========================================================= */

type VenueAddressRequest struct {
	Line       string `json:"line" validate:"omitempty,max=200"`
	City       string `json:"city" validate:"omitempty,max=100"`
	PostalCode string `json:"postal_code" validate:"omitempty,max=20"`
}

type RecurrencePatternRequest struct {
	Type     string `json:"type" validate:"required,oneof=daily weekly monthly"`
	Interval int    `json:"interval" validate:"required,min=1"`
	EndDate  string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Weekdays []int  `json:"weekdays" validate:"omitempty,max=7,dive,min=0,max=6"`
}

// Create (JSON)
type CreateClassSessionRequest struct {
	ClassSessionCourseID     uuid.UUID `json:"class_session_course_id" validate:"required"`
	ClassSessionInstructorID uuid.UUID `json:"class_session_instructor_id" validate:"required"`

	ClassSessionVenueName    string              `json:"class_session_venue_name" validate:"required,max=200"`
	ClassSessionVenueAddress VenueAddressRequest `json:"class_session_venue_address"`

	ClassSessionDate      string `json:"class_session_date" validate:"required,datetime=2006-01-02"`
	ClassSessionStartTime string `json:"class_session_start_time" validate:"required"`
	ClassSessionEndTime   string `json:"class_session_end_time" validate:"required"`

	ClassSessionCapacity       int  `json:"class_session_capacity" validate:"required,min=1"`
	ClassSessionMaxEnrollments *int `json:"class_session_max_enrollments" validate:"omitempty,min=1,max=200"`

	ClassSessionIsRecurring bool                      `json:"class_session_is_recurring"`
	ClassSessionRecurrence  *RecurrencePatternRequest `json:"class_session_recurrence" validate:"omitempty"`

	ClassSessionPrice      float64  `json:"class_session_price" validate:"omitempty,gte=0"`
	ClassSessionObjectives []string `json:"class_session_objectives" validate:"omitempty,dive,max=300"`
	ClassSessionTags       []string `json:"class_session_tags" validate:"omitempty,dive,max=50"`
}

// ToModel menormalisasi jam, menghitung durasi, dan mengisi default
// max_enrollments = capacity. Error di sini = ValidationError.
func (r CreateClassSessionRequest) ToModel() (m.ClassSessionModel, error) {
	var out m.ClassSessionModel

	date, err := parseDate(r.ClassSessionDate)
	if err != nil {
		return out, err
	}
	start, err := helper.NormalizeTimeOfDay(r.ClassSessionStartTime)
	if err != nil {
		return out, err
	}
	end, err := helper.NormalizeTimeOfDay(r.ClassSessionEndTime)
	if err != nil {
		return out, err
	}
	dur, err := helper.DurationMinutes(start, end)
	if err != nil {
		return out, err
	}
	if dur > maxDurationMinutes {
		return out, fmt.Errorf("durasi sesi %d menit melebihi batas %d menit", dur, maxDurationMinutes)
	}

	maxEnroll := r.ClassSessionCapacity
	if r.ClassSessionMaxEnrollments != nil {
		maxEnroll = *r.ClassSessionMaxEnrollments
	}
	if maxEnroll < 1 || maxEnroll > 200 {
		return out, fmt.Errorf("max_enrollments harus 1..200, dapat %d", maxEnroll)
	}

	out = m.ClassSessionModel{
		ClassSessionCourseID:     r.ClassSessionCourseID,
		ClassSessionInstructorID: r.ClassSessionInstructorID,

		ClassSessionVenueName: strings.TrimSpace(r.ClassSessionVenueName),
		ClassSessionVenueAddress: datatypes.NewJSONType(m.VenueAddress{
			Line:       strings.TrimSpace(r.ClassSessionVenueAddress.Line),
			City:       strings.TrimSpace(r.ClassSessionVenueAddress.City),
			PostalCode: strings.TrimSpace(r.ClassSessionVenueAddress.PostalCode),
		}),

		ClassSessionDate:            date,
		ClassSessionStartTime:       start,
		ClassSessionEndTime:         end,
		ClassSessionDurationMinutes: dur,

		ClassSessionCapacity:       r.ClassSessionCapacity,
		ClassSessionMaxEnrollments: maxEnroll,

		ClassSessionStatus:      m.SessionScheduled,
		ClassSessionIsRecurring: r.ClassSessionIsRecurring,

		ClassSessionPrice:      r.ClassSessionPrice,
		ClassSessionObjectives: datatypes.NewJSONSlice(r.ClassSessionObjectives),
		ClassSessionTags:       datatypes.NewJSONSlice(r.ClassSessionTags),

		ClassSessionEnrollments: datatypes.JSONSlice[m.EnrollmentRecord]{},
		ClassSessionWaitlist:    datatypes.JSONSlice[m.WaitlistEntry]{},
		ClassSessionAttendance:  datatypes.JSONSlice[m.AttendanceRecord]{},
	}

	if r.ClassSessionIsRecurring {
		if r.ClassSessionRecurrence == nil {
			return out, fmt.Errorf("sesi berulang wajib menyertakan recurrence pattern")
		}
		pat, err := r.ClassSessionRecurrence.toPattern()
		if err != nil {
			return out, err
		}
		jt := datatypes.NewJSONType(pat)
		out.ClassSessionRecurrence = &jt
	}

	return out, nil
}

func (r RecurrencePatternRequest) toPattern() (m.RecurrencePattern, error) {
	pat := m.RecurrencePattern{
		Type:     m.RecurrenceType(r.Type),
		Interval: r.Interval,
		Weekdays: r.Weekdays,
	}
	if strings.TrimSpace(r.EndDate) != "" {
		ed, err := parseDate(r.EndDate)
		if err != nil {
			return pat, err
		}
		pat.EndDate = &ed
	}
	return pat, nil
}

// Update (partial JSON)
type UpdateClassSessionRequest struct {
	ClassSessionInstructorID *uuid.UUID           `json:"class_session_instructor_id"`
	ClassSessionVenueName    *string              `json:"class_session_venue_name" validate:"omitempty,max=200"`
	ClassSessionVenueAddress *VenueAddressRequest `json:"class_session_venue_address"`

	ClassSessionDate      *string `json:"class_session_date" validate:"omitempty,datetime=2006-01-02"`
	ClassSessionStartTime *string `json:"class_session_start_time"`
	ClassSessionEndTime   *string `json:"class_session_end_time"`

	ClassSessionCapacity       *int `json:"class_session_capacity" validate:"omitempty,min=1"`
	ClassSessionMaxEnrollments *int `json:"class_session_max_enrollments" validate:"omitempty,min=1,max=200"`

	ClassSessionPrice      *float64  `json:"class_session_price" validate:"omitempty,gte=0"`
	ClassSessionObjectives *[]string `json:"class_session_objectives" validate:"omitempty,dive,max=300"`
	ClassSessionTags       *[]string `json:"class_session_tags" validate:"omitempty,dive,max=50"`
}

// ApplyToModel menerapkan perubahan; return apakah field penentu konflik
// (tanggal/jam/instructor/venue) berubah sehingga perlu conflict re-check.
func (r UpdateClassSessionRequest) ApplyToModel(mdl *m.ClassSessionModel) (timingChanged bool, err error) {
	if r.ClassSessionInstructorID != nil && *r.ClassSessionInstructorID != mdl.ClassSessionInstructorID {
		mdl.ClassSessionInstructorID = *r.ClassSessionInstructorID
		timingChanged = true
	}
	if r.ClassSessionVenueName != nil {
		v := strings.TrimSpace(*r.ClassSessionVenueName)
		if v != mdl.ClassSessionVenueName {
			mdl.ClassSessionVenueName = v
			timingChanged = true
		}
	}
	if r.ClassSessionVenueAddress != nil {
		mdl.ClassSessionVenueAddress = datatypes.NewJSONType(m.VenueAddress{
			Line:       strings.TrimSpace(r.ClassSessionVenueAddress.Line),
			City:       strings.TrimSpace(r.ClassSessionVenueAddress.City),
			PostalCode: strings.TrimSpace(r.ClassSessionVenueAddress.PostalCode),
		})
	}
	if r.ClassSessionDate != nil {
		date, derr := parseDate(*r.ClassSessionDate)
		if derr != nil {
			return false, derr
		}
		if !date.Equal(mdl.ClassSessionDate) {
			mdl.ClassSessionDate = date
			timingChanged = true
		}
	}
	if r.ClassSessionStartTime != nil {
		start, terr := helper.NormalizeTimeOfDay(*r.ClassSessionStartTime)
		if terr != nil {
			return false, terr
		}
		if start != mdl.ClassSessionStartTime {
			mdl.ClassSessionStartTime = start
			timingChanged = true
		}
	}
	if r.ClassSessionEndTime != nil {
		end, terr := helper.NormalizeTimeOfDay(*r.ClassSessionEndTime)
		if terr != nil {
			return false, terr
		}
		if end != mdl.ClassSessionEndTime {
			mdl.ClassSessionEndTime = end
			timingChanged = true
		}
	}

	// durasi selalu diturunkan ulang dari jam final
	dur, derr := helper.DurationMinutes(mdl.ClassSessionStartTime, mdl.ClassSessionEndTime)
	if derr != nil {
		return false, derr
	}
	if dur > maxDurationMinutes {
		return false, fmt.Errorf("durasi sesi %d menit melebihi batas %d menit", dur, maxDurationMinutes)
	}
	mdl.ClassSessionDurationMinutes = dur

	if r.ClassSessionCapacity != nil {
		mdl.ClassSessionCapacity = *r.ClassSessionCapacity
	}
	if r.ClassSessionMaxEnrollments != nil {
		if enrolled := mdl.EnrolledCount(); *r.ClassSessionMaxEnrollments < enrolled {
			return false, fmt.Errorf("max_enrollments %d lebih kecil dari jumlah student enrolled saat ini (%d)",
				*r.ClassSessionMaxEnrollments, enrolled)
		}
		mdl.ClassSessionMaxEnrollments = *r.ClassSessionMaxEnrollments
	}
	if r.ClassSessionPrice != nil {
		mdl.ClassSessionPrice = *r.ClassSessionPrice
	}
	if r.ClassSessionObjectives != nil {
		mdl.ClassSessionObjectives = datatypes.NewJSONSlice(*r.ClassSessionObjectives)
	}
	if r.ClassSessionTags != nil {
		mdl.ClassSessionTags = datatypes.NewJSONSlice(*r.ClassSessionTags)
	}

	return timingChanged, nil
}

// Status transition (PATCH :id/status)
type UpdateSessionStatusRequest struct {
	ClassSessionStatus string `json:"class_session_status" validate:"required,oneof=scheduled in-progress completed cancelled rescheduled"`
}

// Generate series
type GenerateSeriesRequest struct {
	EndDate string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

func (r GenerateSeriesRequest) ParsedEndDate() (time.Time, error) {
	return parseDate(r.EndDate)
}

// Filter / List (query)
type ListClassSessionsRequest struct {
	CourseID     string `query:"course_id"`
	InstructorID string `query:"instructor_id"`
	Status       string `query:"status"`
	Venue        string `query:"venue"`
	StudentID    string `query:"student_id"` // enrolled student
	DateFrom     string `query:"date_from"`  // YYYY-MM-DD
	DateTo       string `query:"date_to"`    // YYYY-MM-DD
}

/* =========================================================
 * RESPONSES
 * ========================================================= */

type ClassSessionResponse struct {
	ClassSessionID uuid.UUID `json:"class_session_id"`

	ClassSessionCourseID     uuid.UUID      `json:"class_session_course_id"`
	ClassSessionInstructorID uuid.UUID      `json:"class_session_instructor_id"`
	ClassSessionVenueName    string         `json:"class_session_venue_name"`
	ClassSessionVenueAddress m.VenueAddress `json:"class_session_venue_address"`

	ClassSessionDate            string `json:"class_session_date"` // YYYY-MM-DD
	ClassSessionStartTime       string `json:"class_session_start_time"`
	ClassSessionEndTime         string `json:"class_session_end_time"`
	ClassSessionDurationMinutes int    `json:"class_session_duration_minutes"`

	ClassSessionCapacity       int `json:"class_session_capacity"`
	ClassSessionMaxEnrollments int `json:"class_session_max_enrollments"`

	ClassSessionStatus      m.SessionStatus      `json:"class_session_status"`
	ClassSessionIsRecurring bool                 `json:"class_session_is_recurring"`
	ClassSessionRecurrence  *m.RecurrencePattern `json:"class_session_recurrence,omitempty"`

	ClassSessionPrice      float64  `json:"class_session_price"`
	ClassSessionObjectives []string `json:"class_session_objectives,omitempty"`
	ClassSessionTags       []string `json:"class_session_tags,omitempty"`

	ClassSessionEnrollments []m.EnrollmentRecord `json:"class_session_enrollments"`
	ClassSessionWaitlist    []m.WaitlistEntry    `json:"class_session_waitlist"`
	ClassSessionAttendance  []m.AttendanceRecord `json:"class_session_attendance"`

	ClassSessionCurrentEnrollments int `json:"class_session_current_enrollments"`

	ClassSessionCreatedAt time.Time `json:"class_session_created_at"`
	ClassSessionUpdatedAt time.Time `json:"class_session_updated_at"`
}

func NewClassSessionResponse(mdl *m.ClassSessionModel) ClassSessionResponse {
	return ClassSessionResponse{
		ClassSessionID: mdl.ClassSessionID,

		ClassSessionCourseID:     mdl.ClassSessionCourseID,
		ClassSessionInstructorID: mdl.ClassSessionInstructorID,
		ClassSessionVenueName:    mdl.ClassSessionVenueName,
		ClassSessionVenueAddress: mdl.ClassSessionVenueAddress.Data(),

		ClassSessionDate:            mdl.ClassSessionDate.Format("2006-01-02"),
		ClassSessionStartTime:       mdl.ClassSessionStartTime,
		ClassSessionEndTime:         mdl.ClassSessionEndTime,
		ClassSessionDurationMinutes: mdl.ClassSessionDurationMinutes,

		ClassSessionCapacity:       mdl.ClassSessionCapacity,
		ClassSessionMaxEnrollments: mdl.ClassSessionMaxEnrollments,

		ClassSessionStatus:      mdl.ClassSessionStatus,
		ClassSessionIsRecurring: mdl.ClassSessionIsRecurring,
		ClassSessionRecurrence:  mdl.RecurrencePattern(),

		ClassSessionPrice:      mdl.ClassSessionPrice,
		ClassSessionObjectives: mdl.ClassSessionObjectives,
		ClassSessionTags:       mdl.ClassSessionTags,

		ClassSessionEnrollments: mdl.ClassSessionEnrollments,
		ClassSessionWaitlist:    mdl.ClassSessionWaitlist,
		ClassSessionAttendance:  mdl.ClassSessionAttendance,

		ClassSessionCurrentEnrollments: mdl.ClassSessionCurrentEnrollments,

		ClassSessionCreatedAt: mdl.ClassSessionCreatedAt,
		ClassSessionUpdatedAt: mdl.ClassSessionUpdatedAt,
	}
}

// SeriesOccurrenceResult: hasil per-instance saat generate series
// (partial success adalah perilaku normal, bukan error agregat).
type SeriesOccurrenceResult struct {
	Date           string     `json:"date"` // YYYY-MM-DD
	Created        bool       `json:"created"`
	ClassSessionID *uuid.UUID `json:"class_session_id,omitempty"`
	Error          string     `json:"error,omitempty"`
}
