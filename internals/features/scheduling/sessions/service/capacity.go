// file: internals/features/scheduling/sessions/service/capacity.go
package service

import (
	"sort"
	"time"

	"github.com/google/uuid"

	m "trainingcenter_backend/internals/features/scheduling/sessions/model"
)

/* =========================
   Capacity Manager
   ========================= */

// CapacityManager memutasi koleksi enrollment/waitlist in-memory; caller wajib
// memegang row lock sesi (FOR UPDATE) supaya enroll/remove/promote atomik.
type CapacityManager struct{}

func NewCapacityManager() *CapacityManager { return &CapacityManager{} }

// Enroll mendaftarkan student ke sesi.
//   - desired menentukan permintaan awal (enrolled/waitlist).
//   - Saat penuh dan desired=enrolled: di-downgrade diam-diam ke waitlist,
//     kecuali requireEnrolled=true → ErrCapacityExceeded.
//
// Return status final yang didapat student.
func (cm *CapacityManager) Enroll(s *m.ClassSessionModel, studentID uuid.UUID, desired m.EnrollmentStatus, requireEnrolled bool, now time.Time) (m.EnrollmentStatus, error) {
	if i := s.FindEnrollment(studentID); i >= 0 && s.ClassSessionEnrollments[i].Status == m.EnrollmentEnrolled {
		return "", ErrAlreadyEnrolled
	}
	if s.FindWaitlist(studentID) >= 0 {
		return "", ErrAlreadyEnrolled
	}

	if desired != m.EnrollmentWaitlist {
		desired = m.EnrollmentEnrolled
	}

	if desired == m.EnrollmentEnrolled && s.EnrolledCount() >= s.ClassSessionMaxEnrollments {
		if requireEnrolled {
			return "", ErrCapacityExceeded
		}
		// policy: downgrade ke waitlist, bukan error
		desired = m.EnrollmentWaitlist
	}

	switch desired {
	case m.EnrollmentEnrolled:
		s.ClassSessionEnrollments = append(s.ClassSessionEnrollments, m.EnrollmentRecord{
			StudentID:  studentID,
			EnrolledAt: now,
			Status:     m.EnrollmentEnrolled,
		})
	case m.EnrollmentWaitlist:
		s.ClassSessionWaitlist = append(s.ClassSessionWaitlist, m.WaitlistEntry{
			StudentID:    studentID,
			WaitlistedAt: now,
			Position:     len(s.ClassSessionWaitlist) + 1,
		})
	}

	cm.recount(s)
	return desired, nil
}

// Remove menghapus record enrollment dan/atau waitlist milik student
// (idempotent: bukan error kalau tidak ada), lalu mempromosikan kepala
// waitlist bila slot terbuka. Return apakah ada yang terhapus dan
// student yang dipromosikan (nil jika tidak ada).
func (cm *CapacityManager) Remove(s *m.ClassSessionModel, studentID uuid.UUID, now time.Time) (removed bool, promoted *uuid.UUID) {
	if i := s.FindEnrollment(studentID); i >= 0 {
		s.ClassSessionEnrollments = append(s.ClassSessionEnrollments[:i], s.ClassSessionEnrollments[i+1:]...)
		removed = true
	}
	if i := s.FindWaitlist(studentID); i >= 0 {
		s.ClassSessionWaitlist = append(s.ClassSessionWaitlist[:i], s.ClassSessionWaitlist[i+1:]...)
		removed = true
	}

	promoted = cm.promoteHead(s, now)
	cm.renumberWaitlist(s)
	cm.recount(s)
	return removed, promoted
}

// promoteHead memindahkan entry waitlist ber-posisi terendah ke enrolled
// selama masih ada slot di bawah max_enrollments.
func (cm *CapacityManager) promoteHead(s *m.ClassSessionModel, now time.Time) *uuid.UUID {
	if len(s.ClassSessionWaitlist) == 0 || s.EnrolledCount() >= s.ClassSessionMaxEnrollments {
		return nil
	}

	head := 0
	for i := range s.ClassSessionWaitlist {
		if s.ClassSessionWaitlist[i].Position < s.ClassSessionWaitlist[head].Position {
			head = i
		}
	}
	entry := s.ClassSessionWaitlist[head]
	s.ClassSessionWaitlist = append(s.ClassSessionWaitlist[:head], s.ClassSessionWaitlist[head+1:]...)

	s.ClassSessionEnrollments = append(s.ClassSessionEnrollments, m.EnrollmentRecord{
		StudentID:  entry.StudentID,
		EnrolledAt: now,
		Status:     m.EnrollmentEnrolled,
	})
	return &entry.StudentID
}

// renumberWaitlist menjaga invariant posisi 1..N rapat, urut waktu masuk.
func (cm *CapacityManager) renumberWaitlist(s *m.ClassSessionModel) {
	sort.SliceStable(s.ClassSessionWaitlist, func(i, j int) bool {
		return s.ClassSessionWaitlist[i].WaitlistedAt.Before(s.ClassSessionWaitlist[j].WaitlistedAt)
	})
	for i := range s.ClassSessionWaitlist {
		s.ClassSessionWaitlist[i].Position = i + 1
	}
}

func (cm *CapacityManager) recount(s *m.ClassSessionModel) {
	s.ClassSessionCurrentEnrollments = s.EnrolledCount()
}
