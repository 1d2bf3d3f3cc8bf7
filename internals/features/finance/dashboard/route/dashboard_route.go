package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dashcontroller "schoolpay_backend/internals/features/finance/dashboard/controller"
)

// DashboardRoutes mounts the admin landing page widgets under an
// authenticated group.
func DashboardRoutes(r fiber.Router, db *gorm.DB) {
	h := &dashcontroller.DashboardHandler{DB: db}

	dash := r.Group("/dashboard")
	dash.Get("/overview", h.Overview)
	dash.Get("/recent-payments-grouped", h.RecentPaymentsGrouped)
	dash.Get("/outstanding-students", h.OutstandingStudents)
	dash.Get("/class-summary", h.ClassSummary)
	dash.Get("/stats", h.Stats)

	r.Get("/class-overview", h.ClassOverview)
}
