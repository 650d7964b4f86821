// file: internals/features/courses/service/progress_service.go
package service

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"trainingcenter_backend/internals/features/courses/model"
)

type ProgressService struct{}

func NewProgressService() *ProgressService { return &ProgressService{} }

/* ---------------------------------------------------
   Ensure: pastikan 1 baris per (course, student) (idempotent)
--------------------------------------------------- */
func (s *ProgressService) EnsureEnrollment(tx *gorm.DB, courseID, studentID uuid.UUID) error {
	row := model.CourseEnrollmentModel{
		CourseEnrollmentCourseID:  courseID,
		CourseEnrollmentStudentID: studentID,
		CourseEnrollmentCreatedAt: time.Now(),
	}
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "course_enrollment_course_id"},
			{Name: "course_enrollment_student_id"},
		},
		DoNothing: true,
	}).Create(&row).Error
}

/* ---------------------------------------------------
   Increment progress (anti minus)
--------------------------------------------------- */
func (s *ProgressService) IncrementProgress(tx *gorm.DB, courseID, studentID uuid.UUID, lessonsDelta int, hoursDelta float64) error {
	if err := s.EnsureEnrollment(tx, courseID, studentID); err != nil {
		return err
	}
	return tx.Model(&model.CourseEnrollmentModel{}).
		Where("course_enrollment_course_id = ? AND course_enrollment_student_id = ?", courseID, studentID).
		Updates(map[string]any{
			"course_enrollment_lessons_completed": gorm.Expr(
				"CASE WHEN course_enrollment_lessons_completed + ? < 0 THEN 0 ELSE course_enrollment_lessons_completed + ? END",
				lessonsDelta, lessonsDelta),
			"course_enrollment_hours_completed": gorm.Expr(
				"CASE WHEN course_enrollment_hours_completed + ? < 0 THEN 0 ELSE course_enrollment_hours_completed + ? END",
				hoursDelta, hoursDelta),
			"course_enrollment_updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}).Error
}
