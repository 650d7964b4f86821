// file: internals/features/scheduling/sessions/service/conflict.go
package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	m "trainingcenter_backend/internals/features/scheduling/sessions/model"
)

/* =========================
   Conflict Checker
   ========================= */

// Overlaps: dua interval half-open [s1,e1) dan [s2,e2) pada tanggal yang sama.
// Jam sudah dinormalisasi "HH:MM" sehingga perbandingan string = perbandingan waktu.
func Overlaps(s1, e1, s2, e2 string) bool {
	return s1 < e2 && s2 < e1
}

type ConflictChecker struct{}

func NewConflictChecker() *ConflictChecker { return &ConflictChecker{} }

// LockScheduleKeys men-serialisasi check-then-act per (instructor,date) dan
// (venue,date) dengan pg_advisory_xact_lock; lock lepas otomatis saat commit/rollback.
func (cc *ConflictChecker) LockScheduleKeys(tx *gorm.DB, instructorID uuid.UUID, venueName string, date time.Time) error {
	d := date.Format("2006-01-02")
	if err := tx.Exec(
		"SELECT pg_advisory_xact_lock(hashtext(?))",
		"sched:instructor:"+instructorID.String()+":"+d,
	).Error; err != nil {
		return err
	}
	return tx.Exec(
		"SELECT pg_advisory_xact_lock(hashtext(?))",
		"sched:venue:"+venueName+":"+d,
	).Error
}

// CheckInstructor mencari sesi non-terminal milik instructor yang overlap.
// excludeID: sesi yang sedang di-update, dikecualikan dari pencarian.
func (cc *ConflictChecker) CheckInstructor(tx *gorm.DB, instructorID uuid.UUID, date time.Time, startTime, endTime string, excludeID *uuid.UUID) error {
	return cc.check(tx, "class_session_instructor_id = ?", instructorID, ConflictInstructor, date, startTime, endTime, excludeID)
}

// CheckVenue mencari sesi non-terminal di venue yang sama yang overlap.
func (cc *ConflictChecker) CheckVenue(tx *gorm.DB, venueName string, date time.Time, startTime, endTime string, excludeID *uuid.UUID) error {
	return cc.check(tx, "class_session_venue_name = ?", venueName, ConflictVenue, date, startTime, endTime, excludeID)
}

func (cc *ConflictChecker) check(tx *gorm.DB, subjectCond string, subject any, dim ConflictDimension, date time.Time, startTime, endTime string, excludeID *uuid.UUID) error {
	q := tx.Model(&m.ClassSessionModel{}).
		Where(subjectCond, subject).
		Where("class_session_date = ?", date).
		Where("class_session_status IN ?", m.ActiveStatuses).
		// standard interval overlap: s1 < e2 AND s2 < e1 (half-open)
		Where("class_session_start_time < ? AND class_session_end_time > ?", endTime, startTime)

	if excludeID != nil {
		q = q.Where("class_session_id <> ?", *excludeID)
	}

	var hit m.ClassSessionModel
	err := q.
		Select("class_session_id, class_session_date, class_session_start_time, class_session_end_time").
		Take(&hit).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	return &SchedulingConflictError{
		Dimension:     dim,
		WithSessionID: hit.ClassSessionID,
		Date:          hit.ClassSessionDate.Format("2006-01-02"),
		StartTime:     hit.ClassSessionStartTime,
		EndTime:       hit.ClassSessionEndTime,
	}
}
