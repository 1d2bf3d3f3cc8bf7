package controller

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	feemodel "schoolpay_backend/internals/features/finance/fees/model"
	"schoolpay_backend/internals/features/finance/payments/dto"
	paymodel "schoolpay_backend/internals/features/finance/payments/model"
	"schoolpay_backend/internals/features/finance/payments/service"
	helper "schoolpay_backend/internals/helpers"
)

type PaymentHandler struct {
	DB      *gorm.DB
	Gateway service.Gateway
}

// -----------------------------------------
// List (GET /payments)
// Query filters: status, student, date_from, date_to (date_paid range),
// page, page_size
// -----------------------------------------
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "date_paid", "desc", helper.DefaultOpts)

	q := h.filteredQuery(c)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	order, err := p.SafeOrderClause(map[string]string{
		"date_paid":  "payment_date_paid",
		"amount":     "payment_amount",
		"status":     "payment_status",
		"created_at": "payment_created_at",
	}, "date_paid")
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var list []paymodel.Payment
	if err := q.Preload("Student").Preload("StudentFee.FeeItem").
		Order(order).
		Limit(p.Limit()).
		Offset(p.Offset()).
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, dto.ToPaymentResponses(list), helper.BuildMeta(total, p))
}

// -----------------------------------------
// Get (GET /payments/:id)
// -----------------------------------------
func (h *PaymentHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var m paymodel.Payment
	if err := h.DB.Preload("Student").Preload("StudentFee.FeeItem").
		First(&m, "payment_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "payment not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", dto.ToPaymentResponse(m))
}

// -----------------------------------------
// CreateManual (POST /payments/manual)
// A target StudentFee is mandatory while the student still has unpaid
// fees; a payment without a target is only allowed as general credit
// when nothing is outstanding.
// -----------------------------------------
func (h *PaymentHandler) CreateManual(c *fiber.Ctx) error {
	var in dto.PaymentManualCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate(in); err != nil {
		return helper.ValidationError(c, err)
	}
	if !in.Amount.IsPositive() {
		return helper.JsonErrorWithDetails(c, fiber.StatusBadRequest, "Validation failed",
			map[string]string{"amount": "amount must be greater than 0"})
	}
	if !paymodel.IsValidPaymentStatus(in.Status) {
		return helper.JsonErrorWithDetails(c, fiber.StatusBadRequest, "Validation failed",
			map[string]string{"status": "invalid payment status"})
	}

	if in.StudentFeeID == nil {
		var outstanding int64
		if err := h.DB.Model(&feemodel.StudentFee{}).
			Where("student_fee_student_id = ?", in.StudentID).
			Where("student_fee_amount_due - student_fee_amount_paid > 0").
			Count(&outstanding).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
		if outstanding > 0 {
			return helper.JsonError(c, fiber.StatusBadRequest,
				"a fee item must be selected while the student has unpaid fees")
		}
	} else {
		var fee feemodel.StudentFee
		if err := h.DB.First(&fee, "student_fee_id = ?", *in.StudentFeeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.JsonError(c, fiber.StatusBadRequest, "student fee not found")
			}
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
		if fee.StudentFeeStudentID != in.StudentID {
			return helper.JsonError(c, fiber.StatusBadRequest, "student fee does not belong to this student")
		}
	}

	m := paymodel.Payment{
		PaymentStudentID:    in.StudentID,
		PaymentStudentFeeID: in.StudentFeeID,
		PaymentAmount:       in.Amount,
		PaymentCurrency:     "GHS",
		PaymentStatus:       in.Status,
		PaymentIsVerified:   in.IsVerified,
		PaymentMethod:       paymodel.PaymentMethodManual,
		PaymentDatePaid:     time.Now(),
	}
	if err := service.CreateAndApply(h.DB, &m); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonCreated(c, "payment recorded", dto.ToPaymentResponse(m))
}

// -----------------------------------------
// Patch (PATCH /payments/:id)
// Status / verification edits go through the transition engine so that
// leaving (successful, verified) reverses the applied amount.
// -----------------------------------------
func (h *PaymentHandler) Patch(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var in dto.PaymentPatchDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if in.Status == nil && in.IsVerified == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "nothing to update")
	}

	var m paymodel.Payment
	if err := h.DB.First(&m, "payment_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "payment not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	newStatus := m.PaymentStatus
	if in.Status != nil {
		newStatus = *in.Status
	}
	newVerified := m.PaymentIsVerified
	if in.IsVerified != nil {
		newVerified = *in.IsVerified
	}

	if err := service.Transition(h.DB, &m, newStatus, newVerified); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "updated", dto.ToPaymentResponse(m))
}

// -----------------------------------------
// Verify (POST /payments/:id/verify)
// Re-queries the gateway for the reference; a confirmed success flips
// (successful, verified) and applies exactly once — verifying an
// already-verified payment is a no-op.
// -----------------------------------------
func (h *PaymentHandler) Verify(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var in dto.PaymentVerifyDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate(in); err != nil {
		return helper.ValidationError(c, err)
	}

	var m paymodel.Payment
	if err := h.DB.First(&m, "payment_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "payment not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	result, err := h.Gateway.CheckReference(in.Reference)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadGateway, "gateway verification failed: "+err.Error())
	}

	if err := service.ApplyVerification(h.DB, &m, result); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "verified", dto.ToPaymentResponse(m))
}

// -----------------------------------------
// Stats (GET /payments/stats)
// -----------------------------------------
func (h *PaymentHandler) Stats(c *fiber.Ctx) error {
	var out dto.PaymentStatsResponse

	type row struct {
		Status string
		N      int64
	}
	var rows []row
	if err := h.DB.Model(&paymodel.Payment{}).
		Select("payment_status AS status, COUNT(*) AS n").
		Group("payment_status").
		Scan(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	for _, r := range rows {
		switch r.Status {
		case paymodel.PaymentStatusPending:
			out.PendingCount = r.N
		case paymodel.PaymentStatusSuccessful:
			out.SuccessfulCount = r.N
		case paymodel.PaymentStatusFailed:
			out.FailedCount = r.N
		case paymodel.PaymentStatusRefunded:
			out.RefundedCount = r.N
		}
	}

	var collected []paymodel.Payment
	if err := h.DB.Select("payment_amount").
		Where("payment_status = ? AND payment_is_verified = true", paymodel.PaymentStatusSuccessful).
		Find(&collected).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	for _, p := range collected {
		out.TotalCollected = out.TotalCollected.Add(p.PaymentAmount)
	}

	return helper.JsonOK(c, "ok", out)
}

// -----------------------------------------
// Export (GET /payments/export)
// Streams an xlsx of the currently filtered payment set.
// -----------------------------------------
func (h *PaymentHandler) Export(c *fiber.Ctx) error {
	var list []paymodel.Payment
	if err := h.filteredQuery(c).
		Preload("Student").Preload("StudentFee.FeeItem").
		Order("payment_date_paid DESC").
		Limit(helper.ExportOpts.AllHardCap).
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	f := excelize.NewFile()
	sheetName := "Payments"
	index, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Date Paid", "Student", "Fee Item", "Amount (GH₵)", "Status", "Verified", "Reference"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	for i, p := range list {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), p.PaymentDatePaid.Format("02.01.2006"))
		if p.Student != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), p.Student.FullName())
		}
		if p.StudentFee != nil && p.StudentFee.FeeItem != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), p.StudentFee.FeeItem.FeeItemName)
		}
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), p.PaymentAmount.StringFixed(2))
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), p.PaymentStatus)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), p.PaymentIsVerified)
		if p.PaymentReference != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), *p.PaymentReference)
		}
	}

	fileName := fmt.Sprintf("payments_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+fileName)
	if err := f.Write(c.Response().BodyWriter()); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to write spreadsheet")
	}
	return nil
}

func (h *PaymentHandler) filteredQuery(c *fiber.Ctx) *gorm.DB {
	q := h.DB.Model(&paymodel.Payment{})

	if v := c.Query("status"); v != "" {
		q = q.Where("payment_status = ?", v)
	}
	if v := c.Query("student"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			q = q.Where("payment_student_id = ?", id)
		}
	}
	if v := c.Query("date_from"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			q = q.Where("payment_date_paid >= ?", t)
		}
	}
	if v := c.Query("date_to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			q = q.Where("payment_date_paid < ?", t.AddDate(0, 0, 1))
		}
	}
	return q
}
