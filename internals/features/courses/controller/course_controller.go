// file: internals/features/courses/controller/course_controller.go
package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	d "trainingcenter_backend/internals/features/courses/dto"
	m "trainingcenter_backend/internals/features/courses/model"
	helper "trainingcenter_backend/internals/helpers"
)

/* =========================
   Controller & Constructor
   ========================= */

type CourseController struct {
	DB *gorm.DB
}

func NewCourseController(db *gorm.DB) *CourseController {
	return &CourseController{DB: db}
}

var validate = validator.New()

type pgSQLErr interface{ SQLState() string }

func mapPGError(err error) (int, string) {
	// 23505 unique_violation, 23503 foreign_key_violation
	var pgErr pgSQLErr
	if errors.As(err, &pgErr) {
		switch pgErr.SQLState() {
		case "23505":
			return http.StatusConflict, "Data duplikat (unique violation)."
		case "23503":
			return http.StatusBadRequest, "Referensi tidak ditemukan (FK violation)."
		}
	}
	return http.StatusInternalServerError, err.Error()
}

func writePGError(c *fiber.Ctx, err error) error {
	code, msg := mapPGError(err)
	return helper.JsonError(c, code, msg)
}

/* =========================
   Create
   ========================= */

func (ctl *CourseController) Create(c *fiber.Ctx) error {
	var req d.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	row := req.ToModel()
	if err := ctl.DB.Create(&row).Error; err != nil {
		return writePGError(c, err)
	}

	return helper.JsonCreated(c, "Course berhasil dibuat", d.NewCourseResponse(&row))
}

/* =========================
   GetByID
   ========================= */

func (ctl *CourseController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "ID tidak valid")
	}

	var row m.CourseModel
	if err := ctl.DB.Where("course_id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "Course tidak ditemukan")
		}
		return writePGError(c, err)
	}

	return helper.JsonOK(c, "ok", d.NewCourseResponse(&row))
}

/* =========================
   List
   ========================= */

// GET /api/a/courses?active=&search=&page=&per_page=
func (ctl *CourseController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 25, 200)

	db := ctl.DB.Model(&m.CourseModel{})

	if v := strings.TrimSpace(c.Query("active")); v != "" {
		db = db.Where("course_is_active = ?", strings.EqualFold(v, "true"))
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		db = db.Where("course_title ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return writePGError(c, err)
	}

	var rows []m.CourseModel
	if err := db.
		Order("course_created_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return writePGError(c, err)
	}

	out := make([]d.CourseResponse, 0, len(rows))
	for i := range rows {
		out = append(out, d.NewCourseResponse(&rows[i]))
	}
	return helper.JsonList(c, "ok", out, helper.BuildPaginationFromPage(total, p.Page, p.PerPage, len(out)))
}

/* =========================
   Update (partial)
   ========================= */

func (ctl *CourseController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "ID tidak valid")
	}

	var existing m.CourseModel
	if err := ctl.DB.Where("course_id = ?", id).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "Course tidak ditemukan")
		}
		return writePGError(c, err)
	}

	var req d.UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	req.ApplyToModel(&existing)
	if err := ctl.DB.Save(&existing).Error; err != nil {
		return writePGError(c, err)
	}

	return helper.JsonUpdated(c, "Course berhasil diubah", d.NewCourseResponse(&existing))
}

/* =========================
   Soft Delete
   ========================= */

func (ctl *CourseController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "ID tidak valid")
	}

	var existing m.CourseModel
	if err := ctl.DB.Where("course_id = ?", id).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "Course tidak ditemukan")
		}
		return writePGError(c, err)
	}

	if err := ctl.DB.Delete(&existing).Error; err != nil {
		return writePGError(c, err)
	}

	return helper.JsonDeleted(c, "Course berhasil dihapus", fiber.Map{"course_id": id})
}
