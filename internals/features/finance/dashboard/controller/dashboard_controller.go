package controller

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	dashsvc "schoolpay_backend/internals/features/finance/dashboard/service"
	feemodel "schoolpay_backend/internals/features/finance/fees/model"
	paymodel "schoolpay_backend/internals/features/finance/payments/model"
	classmodel "schoolpay_backend/internals/features/school/classes/model"
	studentmodel "schoolpay_backend/internals/features/school/students/model"
	helper "schoolpay_backend/internals/helpers"
)

// DashboardHandler serves the admin landing page widgets. Every endpoint
// degrades to an empty/zeroed payload when there is no data yet; the
// dashboard never errors on an empty school.
type DashboardHandler struct {
	DB *gorm.DB
}

// -----------------------------------------
// Overview (GET /dashboard/overview)
// -----------------------------------------
func (h *DashboardHandler) Overview(c *fiber.Ctx) error {
	var totalStudents int64
	if err := h.DB.Model(&studentmodel.Student{}).Count(&totalStudents).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var totalClasses int64
	if err := h.DB.Model(&classmodel.SchoolClass{}).Count(&totalClasses).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	type sums struct {
		Due  decimal.Decimal
		Paid decimal.Decimal
	}
	var s sums
	if err := h.DB.Model(&feemodel.StudentFee{}).
		Select("COALESCE(SUM(student_fee_amount_due), 0) AS due, COALESCE(SUM(student_fee_amount_paid), 0) AS paid").
		Scan(&s).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var pending int64
	if err := h.DB.Model(&paymodel.Payment{}).
		Where("payment_status = ?", paymodel.PaymentStatusPending).
		Count(&pending).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "ok", dashsvc.BuildOverview(totalStudents, totalClasses, s.Due, s.Paid, pending))
}

// -----------------------------------------
// Stats (GET /dashboard/stats)
// The header cards page; same payload as the overview widget.
// -----------------------------------------
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	return h.Overview(c)
}

// -----------------------------------------
// RecentPaymentsGrouped (GET /dashboard/recent-payments-grouped)
// One row per student, newest payment first. ?days= window (default 30),
// ?limit= rows (default 10).
// -----------------------------------------
func (h *DashboardHandler) RecentPaymentsGrouped(c *fiber.Ctx) error {
	days := queryInt(c, "days", 30)
	limit := queryInt(c, "limit", 10)
	since := time.Now().AddDate(0, 0, -days)

	var list []paymodel.Payment
	if err := h.DB.Preload("Student").
		Where("payment_status = ? AND payment_is_verified = true", paymodel.PaymentStatusSuccessful).
		Where("payment_date_paid >= ?", since).
		Order("payment_date_paid DESC").
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	rows := make([]dashsvc.PaymentRow, 0, len(list))
	for _, p := range list {
		r := dashsvc.PaymentRow{
			StudentID: p.PaymentStudentID,
			Amount:    p.PaymentAmount,
			DatePaid:  p.PaymentDatePaid,
		}
		if p.Student != nil {
			r.StudentName = p.Student.FullName()
		}
		rows = append(rows, r)
	}

	return helper.JsonOK(c, "ok", dashsvc.GroupRecentPayments(rows, limit))
}

// -----------------------------------------
// OutstandingStudents (GET /dashboard/outstanding-students)
// Ranked by balance descending. average_balance always covers every
// outstanding student; ?limit= only truncates the list (default: all).
// -----------------------------------------
func (h *DashboardHandler) OutstandingStudents(c *fiber.Ctx) error {
	limit := queryInt(c, "limit", 0)

	balances, err := h.studentBalances()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	ranked, avg := dashsvc.OutstandingReport(balances, limit)
	return helper.JsonOK(c, "ok", fiber.Map{
		"students":        ranked,
		"average_balance": avg,
	})
}

// -----------------------------------------
// ClassSummary (GET /dashboard/class-summary)
// -----------------------------------------
func (h *DashboardHandler) ClassSummary(c *fiber.Ctx) error {
	rows, err := h.classAggregates()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", dashsvc.SummarizeClasses(rows))
}

// -----------------------------------------
// ClassOverview (GET /class-overview)
// The per-class cards page; same rollup as the summary widget.
// -----------------------------------------
func (h *DashboardHandler) ClassOverview(c *fiber.Ctx) error {
	return h.ClassSummary(c)
}

/* ===================== Queries ===================== */

func (h *DashboardHandler) classAggregates() ([]dashsvc.ClassAggregate, error) {
	var rows []dashsvc.ClassAggregate
	err := h.DB.Table("school_classes AS sc").
		Select(`sc.school_class_id AS class_id,
			sc.school_class_name AS class_name,
			COUNT(DISTINCT s.student_id) AS student_count,
			COALESCE(SUM(sf.student_fee_amount_due), 0) AS total_due,
			COALESCE(SUM(sf.student_fee_amount_paid), 0) AS total_paid`).
		Joins("LEFT JOIN students s ON s.student_school_class_id = sc.school_class_id AND s.student_deleted_at IS NULL").
		Joins("LEFT JOIN student_fees sf ON sf.student_fee_student_id = s.student_id AND sf.student_fee_deleted_at IS NULL").
		Where("sc.school_class_deleted_at IS NULL").
		Group("sc.school_class_id, sc.school_class_name").
		Scan(&rows).Error
	return rows, err
}

func (h *DashboardHandler) studentBalances() ([]dashsvc.StudentBalance, error) {
	var rows []dashsvc.StudentBalance
	err := h.DB.Table("student_fees AS sf").
		Select(`s.student_id AS student_id,
			s.student_first_name || ' ' || s.student_last_name AS student_name,
			sc.school_class_name AS class_name,
			COALESCE(SUM(sf.student_fee_amount_due), 0) AS total_due,
			COALESCE(SUM(sf.student_fee_amount_paid), 0) AS total_paid`).
		Joins("JOIN students s ON s.student_id = sf.student_fee_student_id AND s.student_deleted_at IS NULL").
		Joins("JOIN school_classes sc ON sc.school_class_id = s.student_school_class_id").
		Where("sf.student_fee_deleted_at IS NULL").
		Group("s.student_id, s.student_first_name, s.student_last_name, sc.school_class_name").
		Scan(&rows).Error
	return rows, err
}

func queryInt(c *fiber.Ctx, key string, def int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil || n < 1 {
		return def
	}
	return n
}
