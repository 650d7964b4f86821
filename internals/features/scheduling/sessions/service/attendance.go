// file: internals/features/scheduling/sessions/service/attendance.go
package service

import (
	"fmt"

	"gorm.io/datatypes"

	m "trainingcenter_backend/internals/features/scheduling/sessions/model"
)

/* =========================
   Attendance Synchronizer
   ========================= */

// AttendanceSynchronizer memutasi koleksi attendance in-memory; caller wajib
// memegang row lock sesi supaya bulk replace atomik.
type AttendanceSynchronizer struct{}

func NewAttendanceSynchronizer() *AttendanceSynchronizer { return &AttendanceSynchronizer{} }

// Mark mencatat kehadiran satu student. Student harus berstatus enrolled
// (ada di waitlist saja tidak cukup). Record lama milik student diganti —
// invariant: maksimal satu record per student per sesi.
func (as *AttendanceSynchronizer) Mark(s *m.ClassSessionModel, rec m.AttendanceRecord) error {
	if !s.IsEnrolled(rec.StudentID) {
		return fmt.Errorf("%w (student %s)", ErrNotEnrolled, rec.StudentID)
	}

	for i := range s.ClassSessionAttendance {
		if s.ClassSessionAttendance[i].StudentID == rec.StudentID {
			s.ClassSessionAttendance[i] = rec
			return nil
		}
	}
	s.ClassSessionAttendance = append(s.ClassSessionAttendance, rec)
	return nil
}

// BulkReplace memvalidasi SEMUA record dulu (abort di student pertama yang
// tidak enrolled atau duplikat, tanpa ada yang tertulis), lalu mengganti
// seluruh set attendance sesi (full overwrite, bukan merge).
func (as *AttendanceSynchronizer) BulkReplace(s *m.ClassSessionModel, recs []m.AttendanceRecord) error {
	seen := make(map[string]struct{}, len(recs))
	for i := range recs {
		sid := recs[i].StudentID
		if !s.IsEnrolled(sid) {
			return fmt.Errorf("%w (student %s)", ErrNotEnrolled, sid)
		}
		if _, dup := seen[sid.String()]; dup {
			return fmt.Errorf("%w (student %s)", ErrDuplicateAttendance, sid)
		}
		seen[sid.String()] = struct{}{}
	}

	s.ClassSessionAttendance = append(datatypes.JSONSlice[m.AttendanceRecord]{}, recs...)
	return nil
}

// ProgressTasks menyusun task sinkronisasi progress untuk record
// present/late: lesson-completed +1, hours += durasi/60.
// Dieksekusi best-effort oleh ProgressEmitter.
func (as *AttendanceSynchronizer) ProgressTasks(s *m.ClassSessionModel, recs []m.AttendanceRecord) []ProgressTask {
	var tasks []ProgressTask
	for i := range recs {
		if recs[i].Status != m.AttendancePresent && recs[i].Status != m.AttendanceLate {
			continue
		}
		tasks = append(tasks, ProgressTask{
			CourseID:     s.ClassSessionCourseID,
			StudentID:    recs[i].StudentID,
			LessonsDelta: 1,
			HoursDelta:   float64(s.ClassSessionDurationMinutes) / 60.0,
		})
	}
	return tasks
}
