package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CourseModel struct {
	CourseID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:course_id" json:"course_id"`

	CourseTitle       string  `gorm:"type:varchar(200);not null;column:course_title" json:"course_title"`
	CourseDescription *string `gorm:"type:text;column:course_description" json:"course_description,omitempty"`

	// dipakai summary revenue di sesi (harga per kursi)
	CoursePrice        float64 `gorm:"type:numeric(12,2);not null;default:0;column:course_price" json:"course_price"`
	CourseLessonsTotal int     `gorm:"type:int;not null;default:0;column:course_lessons_total" json:"course_lessons_total"`

	CourseTags     datatypes.JSONSlice[string] `gorm:"type:jsonb;column:course_tags" json:"course_tags,omitempty"`
	CourseIsActive bool                        `gorm:"type:boolean;not null;default:true;column:course_is_active" json:"course_is_active"`

	CourseCreatedAt time.Time      `gorm:"column:course_created_at;not null;autoCreateTime" json:"course_created_at"`
	CourseUpdatedAt time.Time      `gorm:"column:course_updated_at;not null;autoUpdateTime" json:"course_updated_at"`
	CourseDeletedAt gorm.DeletedAt `gorm:"column:course_deleted_at;index" json:"course_deleted_at,omitempty"`
}

func (CourseModel) TableName() string { return "courses" }
