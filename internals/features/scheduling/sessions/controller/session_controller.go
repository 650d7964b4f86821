// file: internals/features/scheduling/sessions/controller/session_controller.go
package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"trainingcenter_backend/internals/constants"
	courseModel "trainingcenter_backend/internals/features/courses/model"
	d "trainingcenter_backend/internals/features/scheduling/sessions/dto"
	m "trainingcenter_backend/internals/features/scheduling/sessions/model"
	svc "trainingcenter_backend/internals/features/scheduling/sessions/service"
	userModel "trainingcenter_backend/internals/features/users/user/model"
	helper "trainingcenter_backend/internals/helpers"
)

/* =========================
   Controller & Constructor
   ========================= */

type ClassSessionController struct {
	DB        *gorm.DB
	Conflicts *svc.ConflictChecker
	Expander  *svc.RecurrenceExpander
}

func NewClassSessionController(db *gorm.DB) *ClassSessionController {
	return &ClassSessionController{
		DB:        db,
		Conflicts: svc.NewConflictChecker(),
		Expander:  svc.NewRecurrenceExpander(),
	}
}

var validate = validator.New()

type pgSQLErr interface{ SQLState() string }

func mapPGError(err error) (int, string) {
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

// writeSchedulingError memetakan error domain scheduling ke HTTP.
func writeSchedulingError(c *fiber.Ctx, err error) error {
	var conflict *svc.SchedulingConflictError
	switch {
	case errors.As(err, &conflict):
		return helper.JsonError(c, http.StatusConflict, conflict.Error())
	case errors.Is(err, svc.ErrAlreadyEnrolled),
		errors.Is(err, svc.ErrCapacityExceeded):
		return helper.JsonError(c, http.StatusConflict, err.Error())
	case errors.Is(err, svc.ErrNotEnrolled),
		errors.Is(err, svc.ErrDuplicateAttendance):
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, svc.ErrNotRecurring),
		errors.Is(err, svc.ErrInvalidRecurrence):
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, gorm.ErrRecordNotFound):
		return helper.JsonError(c, http.StatusNotFound, "Sesi tidak ditemukan")
	}
	return writePGError(c, err)
}

// validateParticipants memastikan course aktif dan instructor punya role
// yang benar sebelum sesi dibuat/dipindah-tangankan.
func (ctl *ClassSessionController) validateParticipants(tx *gorm.DB, courseID, instructorID uuid.UUID) (int, string) {
	var course courseModel.CourseModel
	if err := tx.First(&course, "course_id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return http.StatusBadRequest, "Course tidak ditemukan"
		}
		return http.StatusInternalServerError, err.Error()
	}
	if !course.CourseIsActive {
		return http.StatusBadRequest, "Course sudah tidak aktif"
	}

	var instructor userModel.UserModel
	if err := tx.First(&instructor, "user_id = ?", instructorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return http.StatusBadRequest, "Instructor tidak ditemukan"
		}
		return http.StatusInternalServerError, err.Error()
	}
	if instructor.UserRole != constants.RoleInstructor {
		return http.StatusBadRequest, "User tersebut bukan instructor"
	}
	if !instructor.UserIsActive {
		return http.StatusBadRequest, "Instructor sudah tidak aktif"
	}
	return 0, ""
}

/* =========================
   Create
   ========================= */

func (ctl *ClassSessionController) Create(c *fiber.Ctx) error {
	var req d.CreateClassSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	row, err := req.ToModel()
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	txErr := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if code, msg := ctl.validateParticipants(tx, row.ClassSessionCourseID, row.ClassSessionInstructorID); code != 0 {
			return fiber.NewError(code, msg)
		}

		// advisory lock menutup celah check-then-act antar request paralel
		if err := ctl.Conflicts.LockScheduleKeys(tx, row.ClassSessionInstructorID, row.ClassSessionVenueName, row.ClassSessionDate); err != nil {
			return err
		}
		if err := ctl.Conflicts.CheckInstructor(tx, row.ClassSessionInstructorID, row.ClassSessionDate, row.ClassSessionStartTime, row.ClassSessionEndTime, nil); err != nil {
			return err
		}
		if err := ctl.Conflicts.CheckVenue(tx, row.ClassSessionVenueName, row.ClassSessionDate, row.ClassSessionStartTime, row.ClassSessionEndTime, nil); err != nil {
			return err
		}
		return tx.Create(&row).Error
	})
	if txErr != nil {
		var fe *fiber.Error
		if errors.As(txErr, &fe) {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return writeSchedulingError(c, txErr)
	}

	return helper.JsonCreated(c, "Sesi kelas berhasil dibuat", d.NewClassSessionResponse(&row))
}

/* =========================
   GetByID
   ========================= */

func (ctl *ClassSessionController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "ID tidak valid")
	}

	var row m.ClassSessionModel
	if err := ctl.DB.First(&row, "class_session_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "Sesi tidak ditemukan")
		}
		return writePGError(c, err)
	}

	return helper.JsonOK(c, "OK", d.NewClassSessionResponse(&row))
}

/* =========================
   List (filter + paging)
   ========================= */

func (ctl *ClassSessionController) List(c *fiber.Ctx) error {
	var q d.ListClassSessionsRequest
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "Query tidak valid")
	}
	p := helper.ResolvePaging(c, 20, 100)

	dbq := ctl.DB.Model(&m.ClassSessionModel{})

	if s := strings.TrimSpace(q.CourseID); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "course_id tidak valid")
		}
		dbq = dbq.Where("class_session_course_id = ?", id)
	}
	if s := strings.TrimSpace(q.InstructorID); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "instructor_id tidak valid")
		}
		dbq = dbq.Where("class_session_instructor_id = ?", id)
	}
	if s := strings.TrimSpace(q.Status); s != "" {
		dbq = dbq.Where("class_session_status = ?", s)
	}
	if s := strings.TrimSpace(q.Venue); s != "" {
		dbq = dbq.Where("class_session_venue_name ILIKE ?", "%"+s+"%")
	}
	if s := strings.TrimSpace(q.StudentID); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "student_id tidak valid")
		}
		// containment JSONB: sesi yang punya enrollment record student ini
		dbq = dbq.Where(
			`class_session_enrollments @> ?::jsonb`,
			`[{"student_id":"`+id.String()+`"}]`,
		)
	}
	if s := strings.TrimSpace(q.DateFrom); s != "" {
		dbq = dbq.Where("class_session_date >= ?", s)
	}
	if s := strings.TrimSpace(q.DateTo); s != "" {
		dbq = dbq.Where("class_session_date <= ?", s)
	}

	var total int64
	if err := dbq.Count(&total).Error; err != nil {
		return writePGError(c, err)
	}

	var rows []m.ClassSessionModel
	if err := dbq.
		Order("class_session_date ASC, class_session_start_time ASC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return writePGError(c, err)
	}

	resp := make([]d.ClassSessionResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, d.NewClassSessionResponse(&rows[i]))
	}

	return helper.JsonList(c, "OK", resp,
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage, len(resp)))
}

/* =========================
   Update (partial)
   ========================= */

func (ctl *ClassSessionController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "ID tidak valid")
	}

	var req d.UpdateClassSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var row m.ClassSessionModel
	txErr := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&row, "class_session_id = ?", id).Error; err != nil {
			return err
		}
		if row.ClassSessionStatus.IsTerminal() {
			return fiber.NewError(http.StatusConflict, "Sesi sudah "+string(row.ClassSessionStatus)+", tidak bisa diubah")
		}

		timingChanged, aerr := req.ApplyToModel(&row)
		if aerr != nil {
			return fiber.NewError(http.StatusBadRequest, aerr.Error())
		}

		if timingChanged {
			if req.ClassSessionInstructorID != nil {
				if code, msg := ctl.validateParticipants(tx, row.ClassSessionCourseID, row.ClassSessionInstructorID); code != 0 {
					return fiber.NewError(code, msg)
				}
			}
			if err := ctl.Conflicts.LockScheduleKeys(tx, row.ClassSessionInstructorID, row.ClassSessionVenueName, row.ClassSessionDate); err != nil {
				return err
			}
			excl := row.ClassSessionID
			if err := ctl.Conflicts.CheckInstructor(tx, row.ClassSessionInstructorID, row.ClassSessionDate, row.ClassSessionStartTime, row.ClassSessionEndTime, &excl); err != nil {
				return err
			}
			if err := ctl.Conflicts.CheckVenue(tx, row.ClassSessionVenueName, row.ClassSessionDate, row.ClassSessionStartTime, row.ClassSessionEndTime, &excl); err != nil {
				return err
			}
		}

		return tx.Save(&row).Error
	})
	if txErr != nil {
		var fe *fiber.Error
		if errors.As(txErr, &fe) {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return writeSchedulingError(c, txErr)
	}

	return helper.JsonUpdated(c, "Sesi kelas berhasil diperbarui", d.NewClassSessionResponse(&row))
}

/* =========================
   Update Status (state machine)
   ========================= */

var allowedTransitions = map[m.SessionStatus][]m.SessionStatus{
	m.SessionScheduled:   {m.SessionInProgress, m.SessionCancelled, m.SessionRescheduled},
	m.SessionRescheduled: {m.SessionScheduled, m.SessionInProgress, m.SessionCancelled},
	m.SessionInProgress:  {m.SessionCompleted, m.SessionCancelled},
	// completed/cancelled terminal
}

func transitionAllowed(from, to m.SessionStatus) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (ctl *ClassSessionController) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "ID tidak valid")
	}

	var req d.UpdateSessionStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	target := m.SessionStatus(req.ClassSessionStatus)

	var row m.ClassSessionModel
	txErr := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&row, "class_session_id = ?", id).Error; err != nil {
			return err
		}
		if row.ClassSessionStatus == target {
			return nil // idempotent
		}
		if !transitionAllowed(row.ClassSessionStatus, target) {
			return fiber.NewError(http.StatusConflict,
				"Transisi status "+string(row.ClassSessionStatus)+" -> "+string(target)+" tidak diizinkan")
		}
		row.ClassSessionStatus = target
		return tx.Save(&row).Error
	})
	if txErr != nil {
		var fe *fiber.Error
		if errors.As(txErr, &fe) {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return writeSchedulingError(c, txErr)
	}

	return helper.JsonUpdated(c, "Status sesi berhasil diperbarui", d.NewClassSessionResponse(&row))
}

/* =========================
   Delete (soft)
   ========================= */

func (ctl *ClassSessionController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "ID tidak valid")
	}

	res := ctl.DB.Where("class_session_id = ?", id).Delete(&m.ClassSessionModel{})
	if res.Error != nil {
		return writePGError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, http.StatusNotFound, "Sesi tidak ditemukan")
	}

	return helper.JsonDeleted(c, "Sesi kelas berhasil dihapus", fiber.Map{"class_session_id": id})
}

/* =========================
   Generate Series
   ========================= */

// GenerateSeries mengekspansi sesi berulang menjadi instance konkrit.
// Partial success: tiap occurrence dicoba dalam transaksi sendiri, yang
// bentrok dilewati dengan keterangan, sisanya tetap dibuat.
func (ctl *ClassSessionController) GenerateSeries(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "ID tidak valid")
	}

	var req d.GenerateSeriesRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	endDate, err := req.ParsedEndDate()
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	var base m.ClassSessionModel
	if err := ctl.DB.First(&base, "class_session_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "Sesi tidak ditemukan")
		}
		return writePGError(c, err)
	}

	instances, err := ctl.Expander.Expand(&base, endDate)
	if err != nil {
		return writeSchedulingError(c, err)
	}

	results := make([]d.SeriesOccurrenceResult, 0, len(instances))
	created := 0
	for i := range instances {
		select {
		case <-c.Context().Done():
			return helper.JsonError(c, http.StatusRequestTimeout, "Request dibatalkan saat generate series")
		default:
		}

		inst := instances[i]
		dateStr := inst.ClassSessionDate.Format("2006-01-02")

		txErr := ctl.DB.Transaction(func(tx *gorm.DB) error {
			if err := ctl.Conflicts.LockScheduleKeys(tx, inst.ClassSessionInstructorID, inst.ClassSessionVenueName, inst.ClassSessionDate); err != nil {
				return err
			}
			if err := ctl.Conflicts.CheckInstructor(tx, inst.ClassSessionInstructorID, inst.ClassSessionDate, inst.ClassSessionStartTime, inst.ClassSessionEndTime, nil); err != nil {
				return err
			}
			if err := ctl.Conflicts.CheckVenue(tx, inst.ClassSessionVenueName, inst.ClassSessionDate, inst.ClassSessionStartTime, inst.ClassSessionEndTime, nil); err != nil {
				return err
			}
			return tx.Create(&inst).Error
		})

		if txErr != nil {
			results = append(results, d.SeriesOccurrenceResult{
				Date:    dateStr,
				Created: false,
				Error:   txErr.Error(),
			})
			continue
		}

		sid := inst.ClassSessionID
		results = append(results, d.SeriesOccurrenceResult{
			Date:           dateStr,
			Created:        true,
			ClassSessionID: &sid,
		})
		created++
	}

	return helper.JsonCreated(c, "Generate series selesai", fiber.Map{
		"base_session_id": base.ClassSessionID,
		"requested":       len(instances),
		"created":         created,
		"skipped":         len(instances) - created,
		"results":         results,
	})
}
