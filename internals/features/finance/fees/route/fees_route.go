package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	feecontroller "schoolpay_backend/internals/features/finance/fees/controller"
)

// FeeRoutes mounts fee structures, fee item additions, and student fee
// assignments under an authenticated group.
func FeeRoutes(r fiber.Router, db *gorm.DB) {
	fs := &feecontroller.FeeStructureHandler{DB: db}

	structures := r.Group("/fee_structure")
	structures.Get("/", fs.List)
	structures.Post("/", fs.Create)
	structures.Post("/bulk", fs.Bulk)
	structures.Get("/:id", fs.Get)
	structures.Put("/:id", fs.Update)
	structures.Patch("/:id", fs.Patch)
	structures.Delete("/:id", fs.Delete)

	// additions only; existing items never change through this endpoint
	r.Post("/fee_item", fs.AppendItems)

	sf := &feecontroller.StudentFeeHandler{DB: db}

	studentFees := r.Group("/student_fee")
	studentFees.Get("/", sf.List)
	studentFees.Post("/", sf.Create)
	studentFees.Get("/:id", sf.Get)
}
