// file: internals/features/scheduling/sessions/dto/attendance_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	m "trainingcenter_backend/internals/features/scheduling/sessions/model"
)

type MarkAttendanceRequest struct {
	ClassAttendanceStudentID uuid.UUID  `json:"class_attendance_student_id" validate:"required"`
	ClassAttendanceStatus    string     `json:"class_attendance_status" validate:"required,oneof=present absent late excused"`
	ClassAttendanceCheckIn   *time.Time `json:"class_attendance_check_in"`
	ClassAttendanceCheckOut  *time.Time `json:"class_attendance_check_out"`
	ClassAttendanceNotes     string     `json:"class_attendance_notes" validate:"omitempty,max=500"`
}

func (r MarkAttendanceRequest) ToRecord() m.AttendanceRecord {
	return m.AttendanceRecord{
		StudentID: r.ClassAttendanceStudentID,
		Status:    m.AttendanceStatus(r.ClassAttendanceStatus),
		CheckIn:   r.ClassAttendanceCheckIn,
		CheckOut:  r.ClassAttendanceCheckOut,
		Notes:     r.ClassAttendanceNotes,
	}
}

// BulkAttendanceRequest mengganti seluruh daftar kehadiran sesi
// (validasi semua dulu, tulis sekali).
type BulkAttendanceRequest struct {
	Records []MarkAttendanceRequest `json:"records" validate:"required,min=1,dive"`
}

func (r BulkAttendanceRequest) ToRecords() []m.AttendanceRecord {
	out := make([]m.AttendanceRecord, 0, len(r.Records))
	for _, rec := range r.Records {
		out = append(out, rec.ToRecord())
	}
	return out
}

/* ===== REPORT & SUMMARY ===== */

type AttendanceReportRow struct {
	StudentID        uuid.UUID          `json:"student_id"`
	EnrollmentStatus m.EnrollmentStatus `json:"enrollment_status"`
	AttendanceStatus string             `json:"attendance_status"` // "" = belum dicatat
	CheckIn          *time.Time         `json:"check_in,omitempty"`
	CheckOut         *time.Time         `json:"check_out,omitempty"`
	Notes            string             `json:"notes,omitempty"`
}

type AttendanceReportResponse struct {
	ClassSessionID uuid.UUID             `json:"class_session_id"`
	SessionDate    string                `json:"session_date"`
	TotalEnrolled  int                   `json:"total_enrolled"`
	TotalPresent   int                   `json:"total_present"`
	TotalLate      int                   `json:"total_late"`
	TotalAbsent    int                   `json:"total_absent"`
	TotalExcused   int                   `json:"total_excused"`
	TotalUnmarked  int                   `json:"total_unmarked"`
	Rows           []AttendanceReportRow `json:"rows"`
}

// SessionSummaryResponse: ringkasan operasional satu sesi
// (utilisasi kapasitas dan estimasi revenue dari harga course).
type SessionSummaryResponse struct {
	ClassSessionID     uuid.UUID       `json:"class_session_id"`
	ClassSessionStatus m.SessionStatus `json:"class_session_status"`
	SessionDate        string          `json:"session_date"`

	Capacity           int     `json:"capacity"`
	MaxEnrollments     int     `json:"max_enrollments"`
	CurrentEnrollments int     `json:"current_enrollments"`
	WaitlistCount      int     `json:"waitlist_count"`
	UtilizationPercent float64 `json:"utilization_percent"`

	CoursePrice      float64 `json:"course_price"`
	EstimatedRevenue float64 `json:"estimated_revenue"`

	AttendanceMarked int `json:"attendance_marked"`
}
