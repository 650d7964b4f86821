// file: internals/features/courses/route/course_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"trainingcenter_backend/internals/constants"
	courseController "trainingcenter_backend/internals/features/courses/controller"
	authMw "trainingcenter_backend/internals/middlewares/auth"
)

func CourseRoutes(api fiber.Router, db *gorm.DB) {
	ctl := courseController.NewCourseController(db)

	grp := api.Group("/courses")
	grp.Get("/", ctl.List)
	grp.Get("/:id", ctl.GetByID)

	adminOnly := authMw.OnlyRoles(constants.RoleErrorAdmin("course catalog"), constants.RoleAdmin)
	grp.Post("/", adminOnly, ctl.Create)
	grp.Put("/:id", adminOnly, ctl.Update)
	grp.Delete("/:id", adminOnly, ctl.Delete)
}
