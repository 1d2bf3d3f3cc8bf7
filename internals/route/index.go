package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dashroute "schoolpay_backend/internals/features/finance/dashboard/route"
	feeroute "schoolpay_backend/internals/features/finance/fees/route"
	payroute "schoolpay_backend/internals/features/finance/payments/route"
	paysvc "schoolpay_backend/internals/features/finance/payments/service"
	classroute "schoolpay_backend/internals/features/school/classes/route"
	studentroute "schoolpay_backend/internals/features/school/students/route"
	authroute "schoolpay_backend/internals/features/users/auth/route"
	authmw "schoolpay_backend/internals/middlewares/auth"
)

// SetupRoutes wires every feature under /api/main. Token endpoints stay
// open; everything else requires a valid access token.
func SetupRoutes(app *fiber.App, db *gorm.DB, gateway paysvc.Gateway) {
	main := app.Group("/api/main")
	authroute.AuthRoutes(main, db)

	protected := main.Group("", authmw.AuthMiddleware(db))

	classroute.ClassRoutes(protected, db)
	studentroute.StudentRoutes(protected, db)
	feeroute.FeeRoutes(protected, db)
	payroute.PaymentRoutes(protected, db, gateway)
	dashroute.DashboardRoutes(protected, db)
}
