package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	paycontroller "schoolpay_backend/internals/features/finance/payments/controller"
	paysvc "schoolpay_backend/internals/features/finance/payments/service"
)

// PaymentRoutes mounts payment management under an authenticated group.
func PaymentRoutes(r fiber.Router, db *gorm.DB, gateway paysvc.Gateway) {
	h := &paycontroller.PaymentHandler{DB: db, Gateway: gateway}

	payments := r.Group("/payments")
	payments.Get("/", h.List)
	payments.Get("/stats", h.Stats)
	payments.Get("/export", h.Export)
	payments.Post("/manual", h.CreateManual)
	payments.Get("/:id", h.Get)
	payments.Patch("/:id", h.Patch)
	payments.Post("/:id/verify", h.Verify)
}
