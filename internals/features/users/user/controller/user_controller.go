// file: internals/features/users/user/controller/user_controller.go
package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"trainingcenter_backend/internals/features/users/user/dto"
	"trainingcenter_backend/internals/features/users/user/model"
	helper "trainingcenter_backend/internals/helpers"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// pgSQLErr cocok dengan error driver Postgres tanpa import driver langsung.
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

/* ===================== GET BY ID ===================== */
// GET /api/a/users/:id
func (ctl *UserController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "ID tidak valid")
	}

	var row model.UserModel
	if err := ctl.DB.Where("user_id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "User tidak ditemukan")
		}
		return writePGError(c, err)
	}

	return helper.JsonOK(c, "ok", dto.NewUserResponse(&row))
}

/* ===================== LIST ===================== */
// GET /api/a/users?role=&search=&page=&per_page=
func (ctl *UserController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 25, 200)

	db := ctl.DB.Model(&model.UserModel{})

	if role := strings.TrimSpace(c.Query("role")); role != "" {
		db = db.Where("user_role = ?", role)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + search + "%"
		db = db.Where("user_name ILIKE ? OR user_email ILIKE ?", like, like)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return writePGError(c, err)
	}

	var rows []model.UserModel
	if err := db.
		Order("user_created_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return writePGError(c, err)
	}

	out := make([]dto.UserResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.NewUserResponse(&rows[i]))
	}
	return helper.JsonList(c, "ok", out, helper.BuildPaginationFromPage(total, p.Page, p.PerPage, len(out)))
}
