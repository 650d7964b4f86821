// file: internals/features/scheduling/sessions/service/errors.go
package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrAlreadyEnrolled: student sudah punya record enrollment atau waitlist.
	ErrAlreadyEnrolled = errors.New("student sudah terdaftar atau masuk waitlist di sesi ini")

	// ErrNotEnrolled: student tidak punya record enrolled (walau ada di waitlist).
	ErrNotEnrolled = errors.New("student tidak terdaftar (enrolled) di sesi ini")

	// ErrCapacityExceeded: hanya saat caller minta enrolled dan menolak downgrade.
	ErrCapacityExceeded = errors.New("kapasitas enrollment sesi sudah penuh")

	// ErrDuplicateAttendance: payload bulk berisi lebih dari satu record
	// untuk student yang sama.
	ErrDuplicateAttendance = errors.New("record attendance duplikat dalam satu payload")
)

// ConflictDimension: dimensi bentrok jadwal.
type ConflictDimension string

const (
	ConflictInstructor ConflictDimension = "instructor"
	ConflictVenue      ConflictDimension = "venue"
)

// SchedulingConflictError membawa identitas sesi yang bentrok beserta
// jendela waktunya, supaya caller bisa menampilkan detailnya.
type SchedulingConflictError struct {
	Dimension     ConflictDimension
	WithSessionID uuid.UUID
	Date          string // YYYY-MM-DD
	StartTime     string // HH:MM
	EndTime       string // HH:MM
}

func (e *SchedulingConflictError) Error() string {
	return fmt.Sprintf("bentrok jadwal %s dengan sesi %s pada %s %s-%s",
		e.Dimension, e.WithSessionID, e.Date, e.StartTime, e.EndTime)
}
