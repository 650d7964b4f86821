// file: internals/features/scheduling/sessions/controller/attendance_controller.go
package controller

import (
	"errors"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	courseModel "trainingcenter_backend/internals/features/courses/model"
	d "trainingcenter_backend/internals/features/scheduling/sessions/dto"
	m "trainingcenter_backend/internals/features/scheduling/sessions/model"
	svc "trainingcenter_backend/internals/features/scheduling/sessions/service"
	helper "trainingcenter_backend/internals/helpers"
)

type AttendanceController struct {
	DB      *gorm.DB
	Sync    *svc.AttendanceSynchronizer
	Emitter *svc.ProgressEmitter
}

func NewAttendanceController(db *gorm.DB, emitter *svc.ProgressEmitter) *AttendanceController {
	return &AttendanceController{
		DB:      db,
		Sync:    svc.NewAttendanceSynchronizer(),
		Emitter: emitter,
	}
}

/* =========================
   Mark (single)
   ========================= */

func (ctl *AttendanceController) Mark(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "ID tidak valid")
	}

	var req d.MarkAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	rec := req.ToRecord()

	var row *m.ClassSessionModel
	txErr := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var lerr error
		row, lerr = lockSession(tx, sessionID)
		if lerr != nil {
			return lerr
		}
		if err := ctl.Sync.Mark(row, rec); err != nil {
			return err
		}
		return tx.Save(row).Error
	})
	if txErr != nil {
		if errors.Is(txErr, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "Sesi tidak ditemukan")
		}
		return writeSchedulingError(c, txErr)
	}

	// sinkron progress course berjalan async, gagal tidak membatalkan respons
	ctl.Emitter.EmitAll(ctl.Sync.ProgressTasks(row, []m.AttendanceRecord{rec}))

	log.Printf("[ATTENDANCE] session=%s student=%s status=%s by=%s",
		row.ClassSessionID, rec.StudentID, rec.Status, actorID)

	return helper.JsonUpdated(c, "Kehadiran berhasil dicatat", d.NewClassSessionResponse(row))
}

/* =========================
   Bulk (replace all)
   ========================= */

func (ctl *AttendanceController) BulkMark(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "ID tidak valid")
	}

	var req d.BulkAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	recs := req.ToRecords()

	var row *m.ClassSessionModel
	txErr := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var lerr error
		row, lerr = lockSession(tx, sessionID)
		if lerr != nil {
			return lerr
		}
		if err := ctl.Sync.BulkReplace(row, recs); err != nil {
			return err
		}
		return tx.Save(row).Error
	})
	if txErr != nil {
		if errors.Is(txErr, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "Sesi tidak ditemukan")
		}
		return writeSchedulingError(c, txErr)
	}

	ctl.Emitter.EmitAll(ctl.Sync.ProgressTasks(row, recs))

	log.Printf("[ATTENDANCE-BULK] session=%s records=%d by=%s",
		row.ClassSessionID, len(recs), actorID)

	return helper.JsonUpdated(c, "Kehadiran massal berhasil dicatat", d.NewClassSessionResponse(row))
}

/* =========================
   Attendance report
   ========================= */

func (ctl *AttendanceController) Report(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "ID tidak valid")
	}

	var row m.ClassSessionModel
	if err := ctl.DB.First(&row, "class_session_id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "Sesi tidak ditemukan")
		}
		return writePGError(c, err)
	}

	byStudent := make(map[uuid.UUID]m.AttendanceRecord, len(row.ClassSessionAttendance))
	for _, a := range row.ClassSessionAttendance {
		byStudent[a.StudentID] = a
	}

	report := d.AttendanceReportResponse{
		ClassSessionID: row.ClassSessionID,
		SessionDate:    row.ClassSessionDate.Format("2006-01-02"),
		Rows:           make([]d.AttendanceReportRow, 0, len(row.ClassSessionEnrollments)),
	}

	for _, e := range row.ClassSessionEnrollments {
		if e.Status != m.EnrollmentEnrolled {
			continue
		}
		report.TotalEnrolled++
		rowOut := d.AttendanceReportRow{
			StudentID:        e.StudentID,
			EnrollmentStatus: e.Status,
		}
		if a, ok := byStudent[e.StudentID]; ok {
			rowOut.AttendanceStatus = string(a.Status)
			rowOut.CheckIn = a.CheckIn
			rowOut.CheckOut = a.CheckOut
			rowOut.Notes = a.Notes
			switch a.Status {
			case m.AttendancePresent:
				report.TotalPresent++
			case m.AttendanceLate:
				report.TotalLate++
			case m.AttendanceAbsent:
				report.TotalAbsent++
			case m.AttendanceExcused:
				report.TotalExcused++
			}
		} else {
			report.TotalUnmarked++
		}
		report.Rows = append(report.Rows, rowOut)
	}

	return helper.JsonOK(c, "OK", report)
}

/* =========================
   Session summary
   ========================= */

func (ctl *AttendanceController) Summary(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "ID tidak valid")
	}

	var row m.ClassSessionModel
	if err := ctl.DB.First(&row, "class_session_id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "Sesi tidak ditemukan")
		}
		return writePGError(c, err)
	}

	var course courseModel.CourseModel
	coursePrice := row.ClassSessionPrice
	if err := ctl.DB.First(&course, "course_id = ?", row.ClassSessionCourseID).Error; err == nil {
		coursePrice = course.CoursePrice
	}

	enrolled := row.EnrolledCount()
	utilization := 0.0
	if row.ClassSessionMaxEnrollments > 0 {
		utilization = float64(enrolled) / float64(row.ClassSessionMaxEnrollments) * 100
	}

	return helper.JsonOK(c, "OK", d.SessionSummaryResponse{
		ClassSessionID:     row.ClassSessionID,
		ClassSessionStatus: row.ClassSessionStatus,
		SessionDate:        row.ClassSessionDate.Format("2006-01-02"),

		Capacity:           row.ClassSessionCapacity,
		MaxEnrollments:     row.ClassSessionMaxEnrollments,
		CurrentEnrollments: enrolled,
		WaitlistCount:      len(row.ClassSessionWaitlist),
		UtilizationPercent: utilization,

		CoursePrice:      coursePrice,
		EstimatedRevenue: coursePrice * float64(enrolled),

		AttendanceMarked: len(row.ClassSessionAttendance),
	})
}
