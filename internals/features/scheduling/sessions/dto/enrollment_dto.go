// file: internals/features/scheduling/sessions/dto/enrollment_dto.go
package dto

import (
	"github.com/google/uuid"

	m "trainingcenter_backend/internals/features/scheduling/sessions/model"
)

// EnrollStudentRequest: status kosong berarti "enrolled" (boleh turun
// otomatis ke waitlist saat penuh). RequireEnrolled=true menolak waitlist.
type EnrollStudentRequest struct {
	ClassEnrollmentStudentID uuid.UUID `json:"class_enrollment_student_id" validate:"required"`
	ClassEnrollmentStatus    string    `json:"class_enrollment_status" validate:"omitempty,oneof=enrolled waitlist"`
	RequireEnrolled          bool      `json:"require_enrolled"`
}

func (r EnrollStudentRequest) DesiredStatus() m.EnrollmentStatus {
	if r.ClassEnrollmentStatus == "" {
		return m.EnrollmentEnrolled
	}
	return m.EnrollmentStatus(r.ClassEnrollmentStatus)
}

type EnrollStudentResponse struct {
	ClassSessionID           uuid.UUID          `json:"class_session_id"`
	ClassEnrollmentStudentID uuid.UUID          `json:"class_enrollment_student_id"`
	ClassEnrollmentStatus    m.EnrollmentStatus `json:"class_enrollment_status"`
	WaitlistPosition         *int               `json:"waitlist_position,omitempty"`
	CurrentEnrollments       int                `json:"current_enrollments"`
}

type RemoveEnrollmentResponse struct {
	ClassSessionID     uuid.UUID  `json:"class_session_id"`
	RemovedStudentID   uuid.UUID  `json:"removed_student_id"`
	PromotedStudentID  *uuid.UUID `json:"promoted_student_id,omitempty"`
	CurrentEnrollments int        `json:"current_enrollments"`
}
