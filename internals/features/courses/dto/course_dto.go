// file: internals/features/courses/dto/course_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	m "trainingcenter_backend/internals/features/courses/model"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

type CreateCourseRequest struct {
	CourseTitle        string   `json:"course_title" validate:"required,min=2,max=200"`
	CourseDescription  *string  `json:"course_description" validate:"omitempty,max=5000"`
	CoursePrice        float64  `json:"course_price" validate:"omitempty,gte=0"`
	CourseLessonsTotal int      `json:"course_lessons_total" validate:"omitempty,gte=0"`
	CourseTags         []string `json:"course_tags" validate:"omitempty,dive,max=50"`
}

type UpdateCourseRequest struct {
	CourseTitle        *string   `json:"course_title" validate:"omitempty,min=2,max=200"`
	CourseDescription  *string   `json:"course_description" validate:"omitempty,max=5000"`
	CoursePrice        *float64  `json:"course_price" validate:"omitempty,gte=0"`
	CourseLessonsTotal *int      `json:"course_lessons_total" validate:"omitempty,gte=0"`
	CourseTags         *[]string `json:"course_tags" validate:"omitempty,dive,max=50"`
	CourseIsActive     *bool     `json:"course_is_active"`
}

/* =========================================================
 * RESPONSE
 * ========================================================= */

type CourseResponse struct {
	CourseID           uuid.UUID `json:"course_id"`
	CourseTitle        string    `json:"course_title"`
	CourseDescription  *string   `json:"course_description,omitempty"`
	CoursePrice        float64   `json:"course_price"`
	CourseLessonsTotal int       `json:"course_lessons_total"`
	CourseTags         []string  `json:"course_tags,omitempty"`
	CourseIsActive     bool      `json:"course_is_active"`
	CourseCreatedAt    time.Time `json:"course_created_at"`
	CourseUpdatedAt    time.Time `json:"course_updated_at"`
}

/* =========================================================
 * HELPERS
 * ========================================================= */

func (r CreateCourseRequest) ToModel() m.CourseModel {
	return m.CourseModel{
		CourseTitle:        strings.TrimSpace(r.CourseTitle),
		CourseDescription:  r.CourseDescription,
		CoursePrice:        r.CoursePrice,
		CourseLessonsTotal: r.CourseLessonsTotal,
		CourseTags:         datatypes.NewJSONSlice(r.CourseTags),
		CourseIsActive:     true,
	}
}

func (r UpdateCourseRequest) ApplyToModel(mdl *m.CourseModel) {
	if r.CourseTitle != nil {
		mdl.CourseTitle = strings.TrimSpace(*r.CourseTitle)
	}
	if r.CourseDescription != nil {
		mdl.CourseDescription = r.CourseDescription
	}
	if r.CoursePrice != nil {
		mdl.CoursePrice = *r.CoursePrice
	}
	if r.CourseLessonsTotal != nil {
		mdl.CourseLessonsTotal = *r.CourseLessonsTotal
	}
	if r.CourseTags != nil {
		mdl.CourseTags = datatypes.NewJSONSlice(*r.CourseTags)
	}
	if r.CourseIsActive != nil {
		mdl.CourseIsActive = *r.CourseIsActive
	}
}

func NewCourseResponse(mdl *m.CourseModel) CourseResponse {
	return CourseResponse{
		CourseID:           mdl.CourseID,
		CourseTitle:        mdl.CourseTitle,
		CourseDescription:  mdl.CourseDescription,
		CoursePrice:        mdl.CoursePrice,
		CourseLessonsTotal: mdl.CourseLessonsTotal,
		CourseTags:         mdl.CourseTags,
		CourseIsActive:     mdl.CourseIsActive,
		CourseCreatedAt:    mdl.CourseCreatedAt,
		CourseUpdatedAt:    mdl.CourseUpdatedAt,
	}
}
