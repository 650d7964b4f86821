// file: internals/route/index.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	courseRoute "trainingcenter_backend/internals/features/courses/route"
	sessionRoute "trainingcenter_backend/internals/features/scheduling/sessions/route"
	svc "trainingcenter_backend/internals/features/scheduling/sessions/service"
	userRoute "trainingcenter_backend/internals/features/users/user/route"
	authMw "trainingcenter_backend/internals/middlewares/auth"
)

// SetupRoutes merakit seluruh route aplikasi.
// /api/auth publik; /api/a/* wajib JWT.
func SetupRoutes(app *fiber.App, db *gorm.DB, emitter *svc.ProgressEmitter) {
	userRoute.AuthRoutes(app, db)

	api := app.Group("/api/a", authMw.AuthMiddleware())

	userRoute.UserRoutes(api, db)
	courseRoute.CourseRoutes(api, db)
	sessionRoute.ClassSessionRoutes(api, db, emitter)
}
