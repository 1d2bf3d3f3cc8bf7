package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	studentcontroller "schoolpay_backend/internals/features/school/students/controller"
)

// StudentRoutes mounts student management under an authenticated group.
func StudentRoutes(r fiber.Router, db *gorm.DB) {
	h := &studentcontroller.StudentHandler{DB: db}

	students := r.Group("/students")
	students.Get("/", h.List)
	students.Post("/", h.Create)
	students.Get("/:id", h.Get)
	students.Patch("/:id", h.Update)
	students.Delete("/:id", h.Delete)

	r.Get("/students-by-class/:id", h.ByClass)
}
