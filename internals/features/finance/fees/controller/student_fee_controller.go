package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"schoolpay_backend/internals/features/finance/fees/dto"
	feemodel "schoolpay_backend/internals/features/finance/fees/model"
	helper "schoolpay_backend/internals/helpers"
)

type StudentFeeHandler struct {
	DB *gorm.DB
}

// -----------------------------------------
// List (GET /student_fee)
// Query filters: student, fee_structure, balance__gt (the payment form
// asks for balance__gt=0 to list a student's unpaid fees), status
// -----------------------------------------
func (h *StudentFeeHandler) List(c *fiber.Ctx) error {
	// validate the numeric filter before any query is built
	var balanceGt *decimal.Decimal
	if v := strings.TrimSpace(c.Query("balance__gt")); v != "" {
		parsed, err := decimal.NewFromString(v)
		if err != nil {
			return helper.JsonErrorWithDetails(c, fiber.StatusBadRequest, "Validation failed",
				map[string]string{"balance__gt": "must be a number"})
		}
		balanceGt = &parsed
	}

	q := h.DB.Model(&feemodel.StudentFee{}).Preload("FeeItem")

	if v := c.Query("student"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			q = q.Where("student_fee_student_id = ?", id)
		}
	}
	if v := c.Query("fee_structure"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			q = q.Where("student_fee_fee_structure_id = ?", id)
		}
	}
	if balanceGt != nil {
		q = q.Where("student_fee_amount_due - student_fee_amount_paid > ?", *balanceGt)
	}

	var list []feemodel.StudentFee
	if err := q.Order("student_fee_created_at ASC").Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	resp := dto.ToStudentFeeResponses(list)
	// status filter is derived, so it is applied after the fetch
	if v := strings.TrimSpace(c.Query("status")); v != "" {
		filtered := resp[:0]
		for _, r := range resp {
			if r.PaymentStatus == v {
				filtered = append(filtered, r)
			}
		}
		resp = filtered
	}
	return helper.JsonOK(c, "ok", resp)
}

// -----------------------------------------
// Get (GET /student_fee/:id)
// -----------------------------------------
func (h *StudentFeeHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var m feemodel.StudentFee
	if err := h.DB.Preload("FeeItem").First(&m, "student_fee_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "student fee not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", dto.ToStudentFeeResponse(m))
}

// -----------------------------------------
// Create (POST /student_fee)
// amount_paid always starts at zero; it only moves through the payment
// application engine.
// -----------------------------------------
func (h *StudentFeeHandler) Create(c *fiber.Ctx) error {
	var in dto.StudentFeeCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate(in); err != nil {
		return helper.ValidationError(c, err)
	}
	if !in.AmountDue.IsPositive() {
		return helper.JsonErrorWithDetails(c, fiber.StatusBadRequest, "Validation failed",
			map[string]string{"amount_due": "amount must be greater than 0"})
	}

	m := feemodel.StudentFee{
		StudentFeeStudentID:      in.StudentID,
		StudentFeeFeeItemID:      in.FeeItemID,
		StudentFeeFeeStructureID: in.FeeStructureID,
		StudentFeeAmountDue:      in.AmountDue,
	}
	if err := h.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "created", dto.ToStudentFeeResponse(m))
}
