package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classcontroller "schoolpay_backend/internals/features/school/classes/controller"
)

// ClassRoutes mounts school class management under an authenticated group.
func ClassRoutes(r fiber.Router, db *gorm.DB) {
	h := &classcontroller.SchoolClassHandler{DB: db}

	classes := r.Group("/school_class")
	classes.Get("/", h.List)
	classes.Post("/", h.Create)
	classes.Get("/:id", h.Get)
	classes.Patch("/:id", h.Update)
	classes.Delete("/:id", h.Delete)
}
