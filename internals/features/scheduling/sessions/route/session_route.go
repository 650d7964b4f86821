// file: internals/features/scheduling/sessions/route/session_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"trainingcenter_backend/internals/constants"
	sessionController "trainingcenter_backend/internals/features/scheduling/sessions/controller"
	svc "trainingcenter_backend/internals/features/scheduling/sessions/service"
	authMw "trainingcenter_backend/internals/middlewares/auth"
)

// ClassSessionRoutes memasang seluruh endpoint scheduling di bawah grup
// terproteksi (AuthMiddleware sudah terpasang di level /api/a).
func ClassSessionRoutes(api fiber.Router, db *gorm.DB, emitter *svc.ProgressEmitter) {
	sessionCtl := sessionController.NewClassSessionController(db)
	enrollCtl := sessionController.NewEnrollmentController(db)
	attendCtl := sessionController.NewAttendanceController(db, emitter)

	grp := api.Group("/class-sessions")

	// baca: semua role terotentikasi
	grp.Get("/", sessionCtl.List)
	grp.Get("/:id", sessionCtl.GetByID)
	grp.Get("/:id/attendance-report", attendCtl.Report)
	grp.Get("/:id/summary", attendCtl.Summary)

	// kelola jadwal: admin
	adminOnly := authMw.OnlyRoles(constants.RoleErrorAdmin("class scheduling"), constants.RoleAdmin)
	grp.Post("/", adminOnly, sessionCtl.Create)
	grp.Put("/:id", adminOnly, sessionCtl.Update)
	grp.Patch("/:id/status", adminOnly, sessionCtl.UpdateStatus)
	grp.Delete("/:id", adminOnly, sessionCtl.Delete)
	grp.Post("/:id/generate-series", adminOnly, sessionCtl.GenerateSeries)

	// pendaftaran & kehadiran: admin atau instructor
	staffOnly := authMw.OnlyRoles(constants.RoleErrorInstructor("class scheduling"), constants.StaffRoles...)
	grp.Post("/:id/enroll", staffOnly, enrollCtl.Enroll)
	grp.Delete("/:id/enroll/:student_id", staffOnly, enrollCtl.Remove)
	grp.Post("/:id/attendance", staffOnly, attendCtl.Mark)
	grp.Put("/:id/attendance", staffOnly, attendCtl.BulkMark)
}
