// file: internals/features/scheduling/sessions/model/session_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* =======================================================
   Enum status sesi (session_status_enum)
   ======================================================= */

type SessionStatus string

const (
	SessionScheduled   SessionStatus = "scheduled"
	SessionInProgress  SessionStatus = "in-progress"
	SessionCompleted   SessionStatus = "completed"
	SessionCancelled   SessionStatus = "cancelled"
	SessionRescheduled SessionStatus = "rescheduled"
)

// IsTerminal: completed/cancelled tidak ikut conflict check dan
// tidak boleh ditransisikan lagi.
func (s SessionStatus) IsTerminal() bool {
	return s == SessionCompleted || s == SessionCancelled
}

// ActiveStatuses: status yang ikut conflict check.
var ActiveStatuses = []SessionStatus{SessionScheduled, SessionInProgress, SessionRescheduled}

/* =======================================================
   Embedded documents (JSONB)
   ======================================================= */

type EnrollmentStatus string

const (
	EnrollmentEnrolled  EnrollmentStatus = "enrolled"
	EnrollmentWaitlist  EnrollmentStatus = "waitlist"
	EnrollmentCancelled EnrollmentStatus = "cancelled"
)

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceExcused AttendanceStatus = "excused"
)

type EnrollmentRecord struct {
	StudentID  uuid.UUID        `json:"student_id"`
	EnrolledAt time.Time        `json:"enrolled_at"`
	Status     EnrollmentStatus `json:"status"`
}

type WaitlistEntry struct {
	StudentID    uuid.UUID `json:"student_id"`
	WaitlistedAt time.Time `json:"waitlisted_at"`
	Position     int       `json:"position"` // 1-based, rapat tanpa gap
}

type AttendanceRecord struct {
	StudentID uuid.UUID        `json:"student_id"`
	Status    AttendanceStatus `json:"status"`
	CheckIn   *time.Time       `json:"check_in,omitempty"`
	CheckOut  *time.Time       `json:"check_out,omitempty"`
	Notes     string           `json:"notes,omitempty"`
}

type RecurrenceType string

const (
	RecurrenceDaily   RecurrenceType = "daily"
	RecurrenceWeekly  RecurrenceType = "weekly"
	RecurrenceMonthly RecurrenceType = "monthly"
)

type RecurrencePattern struct {
	Type     RecurrenceType `json:"type"`
	Interval int            `json:"interval"`
	EndDate  *time.Time     `json:"end_date,omitempty"`
	// 0=Sunday..6=Saturday; hanya dipakai saat type=weekly
	Weekdays []int `json:"weekdays,omitempty"`
}

type VenueAddress struct {
	Line       string `json:"line,omitempty"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
}

/* =======================================================
   ClassSessionModel — map ke tabel class_sessions
   ======================================================= */

type ClassSessionModel struct {
	// PK
	ClassSessionID uuid.UUID `json:"class_session_id" gorm:"type:uuid;primaryKey;column:class_session_id;default:gen_random_uuid()"`

	// Scope
	ClassSessionCourseID     uuid.UUID `json:"class_session_course_id" gorm:"type:uuid;not null;index;column:class_session_course_id"`
	ClassSessionInstructorID uuid.UUID `json:"class_session_instructor_id" gorm:"type:uuid;not null;index;column:class_session_instructor_id"`

	ClassSessionVenueName    string                              `json:"class_session_venue_name" gorm:"type:varchar(200);not null;index;column:class_session_venue_name"`
	ClassSessionVenueAddress datatypes.JSONType[VenueAddress]    `json:"class_session_venue_address" gorm:"type:jsonb;column:class_session_venue_address"`

	// Timing (same-day; jam "HH:MM" ber-leading-zero supaya comparable)
	ClassSessionDate            time.Time `json:"class_session_date" gorm:"type:date;not null;index;column:class_session_date"`
	ClassSessionStartTime       string    `json:"class_session_start_time" gorm:"type:varchar(5);not null;column:class_session_start_time"`
	ClassSessionEndTime         string    `json:"class_session_end_time" gorm:"type:varchar(5);not null;column:class_session_end_time"`
	ClassSessionDurationMinutes int       `json:"class_session_duration_minutes" gorm:"type:int;not null;column:class_session_duration_minutes"`

	// Kapasitas
	ClassSessionCapacity       int `json:"class_session_capacity" gorm:"type:int;not null;column:class_session_capacity"`
	ClassSessionMaxEnrollments int `json:"class_session_max_enrollments" gorm:"type:int;not null;column:class_session_max_enrollments"`

	// Status & recurrence
	ClassSessionStatus      SessionStatus                               `json:"class_session_status" gorm:"type:text;not null;default:'scheduled';index;column:class_session_status"`
	ClassSessionIsRecurring bool                                        `json:"class_session_is_recurring" gorm:"type:boolean;not null;default:false;column:class_session_is_recurring"`
	ClassSessionRecurrence  *datatypes.JSONType[RecurrencePattern]      `json:"class_session_recurrence,omitempty" gorm:"type:jsonb;column:class_session_recurrence"`

	// Konten (ikut di-copy saat expand series)
	ClassSessionPrice      float64                     `json:"class_session_price" gorm:"type:numeric(12,2);not null;default:0;column:class_session_price"`
	ClassSessionObjectives datatypes.JSONSlice[string] `json:"class_session_objectives,omitempty" gorm:"type:jsonb;column:class_session_objectives"`
	ClassSessionTags       datatypes.JSONSlice[string] `json:"class_session_tags,omitempty" gorm:"type:jsonb;column:class_session_tags"`

	// Koleksi embedded (dokumen di kolom JSONB)
	ClassSessionEnrollments datatypes.JSONSlice[EnrollmentRecord] `json:"class_session_enrollments" gorm:"type:jsonb;column:class_session_enrollments"`
	ClassSessionWaitlist    datatypes.JSONSlice[WaitlistEntry]    `json:"class_session_waitlist" gorm:"type:jsonb;column:class_session_waitlist"`
	ClassSessionAttendance  datatypes.JSONSlice[AttendanceRecord] `json:"class_session_attendance" gorm:"type:jsonb;column:class_session_attendance"`

	// Derived: jumlah record enrollment berstatus enrolled.
	// Selalu direcompute, tidak pernah di-set langsung.
	ClassSessionCurrentEnrollments int `json:"class_session_current_enrollments" gorm:"type:int;not null;default:0;column:class_session_current_enrollments"`

	ClassSessionCreatedAt time.Time      `json:"class_session_created_at" gorm:"column:class_session_created_at;not null;autoCreateTime"`
	ClassSessionUpdatedAt time.Time      `json:"class_session_updated_at" gorm:"column:class_session_updated_at;not null;autoUpdateTime"`
	ClassSessionDeletedAt gorm.DeletedAt `json:"class_session_deleted_at,omitempty" gorm:"column:class_session_deleted_at;index"`
}

func (ClassSessionModel) TableName() string { return "class_sessions" }

/* =======================================================
   Read accessors koleksi
   ======================================================= */

// EnrolledCount menghitung record berstatus enrolled (sumber kebenaran
// untuk class_session_current_enrollments).
func (m *ClassSessionModel) EnrolledCount() int {
	n := 0
	for i := range m.ClassSessionEnrollments {
		if m.ClassSessionEnrollments[i].Status == EnrollmentEnrolled {
			n++
		}
	}
	return n
}

// FindEnrollment mengembalikan index record enrollment milik student, -1 jika tidak ada.
func (m *ClassSessionModel) FindEnrollment(studentID uuid.UUID) int {
	for i := range m.ClassSessionEnrollments {
		if m.ClassSessionEnrollments[i].StudentID == studentID {
			return i
		}
	}
	return -1
}

// FindWaitlist mengembalikan index entry waitlist milik student, -1 jika tidak ada.
func (m *ClassSessionModel) FindWaitlist(studentID uuid.UUID) int {
	for i := range m.ClassSessionWaitlist {
		if m.ClassSessionWaitlist[i].StudentID == studentID {
			return i
		}
	}
	return -1
}

// IsEnrolled: student punya record berstatus enrolled.
func (m *ClassSessionModel) IsEnrolled(studentID uuid.UUID) bool {
	i := m.FindEnrollment(studentID)
	return i >= 0 && m.ClassSessionEnrollments[i].Status == EnrollmentEnrolled
}

// RecurrencePattern meng-unwrap pointer JSONType, nil jika tidak ada.
func (m *ClassSessionModel) RecurrencePattern() *RecurrencePattern {
	if m.ClassSessionRecurrence == nil {
		return nil
	}
	p := m.ClassSessionRecurrence.Data()
	return &p
}
