// file: internals/features/users/user/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userController "trainingcenter_backend/internals/features/users/user/controller"
	"trainingcenter_backend/internals/middlewares"
)

// AuthRoutes: register/login (public, dengan limiter masing-masing).
func AuthRoutes(app *fiber.App, db *gorm.DB) {
	ctl := userController.NewAuthController(db)

	grp := app.Group("/api/auth")
	grp.Post("/register", middlewares.RegisterRateLimiter(), ctl.Register)
	grp.Post("/login", middlewares.LoginRateLimiter(), ctl.Login)
}

// UserRoutes: lookup user (dipakai facade utk cek role instructor/student).
func UserRoutes(api fiber.Router, db *gorm.DB) {
	ctl := userController.NewUserController(db)

	grp := api.Group("/users")
	grp.Get("/", ctl.List)
	grp.Get("/:id", ctl.GetByID)
}
