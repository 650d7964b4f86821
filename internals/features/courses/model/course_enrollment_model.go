package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CourseEnrollmentModel: progress murid per course. Counter lessons/hours
// di-bump oleh attendance synchronizer (best-effort, lihat scheduling service).
type CourseEnrollmentModel struct {
	CourseEnrollmentID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:course_enrollment_id" json:"course_enrollment_id"`

	CourseEnrollmentCourseID  uuid.UUID `gorm:"type:uuid;not null;index:idx_course_enrollment_course_student,unique;column:course_enrollment_course_id" json:"course_enrollment_course_id"`
	CourseEnrollmentStudentID uuid.UUID `gorm:"type:uuid;not null;index:idx_course_enrollment_course_student,unique;column:course_enrollment_student_id" json:"course_enrollment_student_id"`

	CourseEnrollmentLessonsCompleted int     `gorm:"type:int;not null;default:0;column:course_enrollment_lessons_completed" json:"course_enrollment_lessons_completed"`
	CourseEnrollmentHoursCompleted   float64 `gorm:"type:numeric(8,2);not null;default:0;column:course_enrollment_hours_completed" json:"course_enrollment_hours_completed"`

	CourseEnrollmentCreatedAt time.Time      `gorm:"column:course_enrollment_created_at;not null;autoCreateTime" json:"course_enrollment_created_at"`
	CourseEnrollmentUpdatedAt time.Time      `gorm:"column:course_enrollment_updated_at;not null;autoUpdateTime" json:"course_enrollment_updated_at"`
	CourseEnrollmentDeletedAt gorm.DeletedAt `gorm:"column:course_enrollment_deleted_at;index" json:"course_enrollment_deleted_at,omitempty"`
}

func (CourseEnrollmentModel) TableName() string { return "course_enrollments" }
