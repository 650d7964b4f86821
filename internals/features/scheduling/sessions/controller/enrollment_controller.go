// file: internals/features/scheduling/sessions/controller/enrollment_controller.go
package controller

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"trainingcenter_backend/internals/constants"
	courseservice "trainingcenter_backend/internals/features/courses/service"
	d "trainingcenter_backend/internals/features/scheduling/sessions/dto"
	m "trainingcenter_backend/internals/features/scheduling/sessions/model"
	svc "trainingcenter_backend/internals/features/scheduling/sessions/service"
	userModel "trainingcenter_backend/internals/features/users/user/model"
	helper "trainingcenter_backend/internals/helpers"
)

type EnrollmentController struct {
	DB       *gorm.DB
	Capacity *svc.CapacityManager
	Progress *courseservice.ProgressService
}

func NewEnrollmentController(db *gorm.DB) *EnrollmentController {
	return &EnrollmentController{
		DB:       db,
		Capacity: svc.NewCapacityManager(),
		Progress: courseservice.NewProgressService(),
	}
}

// lockSession memuat sesi dengan FOR UPDATE; semua mutasi koleksi embedded
// (enrollments/waitlist/attendance) wajib lewat sini agar serial per sesi.
func lockSession(tx *gorm.DB, id uuid.UUID) (*m.ClassSessionModel, error) {
	var row m.ClassSessionModel
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&row, "class_session_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func validateStudent(tx *gorm.DB, studentID uuid.UUID) (int, string) {
	var student userModel.UserModel
	if err := tx.First(&student, "user_id = ?", studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return http.StatusBadRequest, "Student tidak ditemukan"
		}
		return http.StatusInternalServerError, err.Error()
	}
	if student.UserRole != constants.RoleStudent {
		return http.StatusBadRequest, "User tersebut bukan student"
	}
	if !student.UserIsActive {
		return http.StatusBadRequest, "Student sudah tidak aktif"
	}
	return 0, ""
}

/* =========================
   Enroll
   ========================= */

func (ctl *EnrollmentController) Enroll(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "ID tidak valid")
	}

	var req d.EnrollStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var (
		row    *m.ClassSessionModel
		status m.EnrollmentStatus
	)
	txErr := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var lerr error
		row, lerr = lockSession(tx, sessionID)
		if lerr != nil {
			return lerr
		}
		if row.ClassSessionStatus.IsTerminal() {
			return fiber.NewError(http.StatusConflict,
				"Sesi sudah "+string(row.ClassSessionStatus)+", tidak menerima pendaftaran")
		}
		if code, msg := validateStudent(tx, req.ClassEnrollmentStudentID); code != 0 {
			return fiber.NewError(code, msg)
		}

		var serr error
		status, serr = ctl.Capacity.Enroll(row, req.ClassEnrollmentStudentID, req.DesiredStatus(), req.RequireEnrolled, time.Now().UTC())
		if serr != nil {
			return serr
		}

		// pendaftaran course-level dibuat sekali, progress mulai dari nol
		if status == m.EnrollmentEnrolled {
			if err := ctl.Progress.EnsureEnrollment(tx, row.ClassSessionCourseID, req.ClassEnrollmentStudentID); err != nil {
				return err
			}
		}

		return tx.Save(row).Error
	})
	if txErr != nil {
		var fe *fiber.Error
		if errors.As(txErr, &fe) {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		if errors.Is(txErr, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "Sesi tidak ditemukan")
		}
		return writeSchedulingError(c, txErr)
	}

	log.Printf("[ENROLL] session=%s student=%s status=%s by=%s",
		row.ClassSessionID, req.ClassEnrollmentStudentID, status, actorID)

	resp := d.EnrollStudentResponse{
		ClassSessionID:           row.ClassSessionID,
		ClassEnrollmentStudentID: req.ClassEnrollmentStudentID,
		ClassEnrollmentStatus:    status,
		CurrentEnrollments:       row.ClassSessionCurrentEnrollments,
	}
	if status == m.EnrollmentWaitlist {
		if idx := row.FindWaitlist(req.ClassEnrollmentStudentID); idx >= 0 {
			pos := row.ClassSessionWaitlist[idx].Position
			resp.WaitlistPosition = &pos
		}
	}

	msg := "Student berhasil didaftarkan"
	if status == m.EnrollmentWaitlist {
		msg = "Sesi penuh, student masuk waitlist"
	}
	return helper.JsonCreated(c, msg, resp)
}

/* =========================
   Remove (unenroll)
   ========================= */

func (ctl *EnrollmentController) Remove(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "ID tidak valid")
	}
	studentID, err := uuid.Parse(c.Params("student_id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "student_id tidak valid")
	}

	var (
		row      *m.ClassSessionModel
		removed  bool
		promoted *uuid.UUID
	)
	txErr := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var lerr error
		row, lerr = lockSession(tx, sessionID)
		if lerr != nil {
			return lerr
		}

		removed, promoted = ctl.Capacity.Remove(row, studentID, time.Now().UTC())
		if !removed {
			return nil // 404 di luar transaksi, tidak ada yang perlu disimpan
		}

		if promoted != nil {
			if err := ctl.Progress.EnsureEnrollment(tx, row.ClassSessionCourseID, *promoted); err != nil {
				return err
			}
		}

		return tx.Save(row).Error
	})
	if txErr != nil {
		if errors.Is(txErr, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "Sesi tidak ditemukan")
		}
		return writeSchedulingError(c, txErr)
	}
	if !removed {
		return helper.JsonError(c, http.StatusNotFound, "Student tidak terdaftar di sesi ini")
	}

	log.Printf("[UNENROLL] session=%s student=%s promoted=%v by=%s",
		row.ClassSessionID, studentID, promoted, actorID)

	return helper.JsonOK(c, "Pendaftaran student berhasil dihapus", d.RemoveEnrollmentResponse{
		ClassSessionID:     row.ClassSessionID,
		RemovedStudentID:   studentID,
		PromotedStudentID:  promoted,
		CurrentEnrollments: row.ClassSessionCurrentEnrollments,
	})
}
