package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	feedto "schoolpay_backend/internals/features/finance/fees/dto"
	paymodel "schoolpay_backend/internals/features/finance/payments/model"
)

////////////////////////////////////////////////////////////////////////////////
// PAYMENTS — DTO
////////////////////////////////////////////////////////////////////////////////

// ManualCreate mirrors the admin form: {student, student_fee?, amount,
// status, is_verified}.
type PaymentManualCreateDTO struct {
	StudentID    uuid.UUID       `json:"student" validate:"required"`
	StudentFeeID *uuid.UUID      `json:"student_fee,omitempty"`
	Amount       decimal.Decimal `json:"amount" validate:"required"`
	Status       string          `json:"status" validate:"required"`
	IsVerified   bool            `json:"is_verified"`
}

// Patch routes status/verification edits through the application engine.
type PaymentPatchDTO struct {
	Status     *string `json:"status,omitempty"`
	IsVerified *bool   `json:"is_verified,omitempty"`
}

type PaymentVerifyDTO struct {
	Reference string `json:"reference" validate:"required"`
}

type PaymentResponse struct {
	ID           uuid.UUID                  `json:"id"`
	StudentID    uuid.UUID                  `json:"student_id"`
	StudentName  string                     `json:"student_name,omitempty"`
	StudentFee   *feedto.StudentFeeResponse `json:"student_fee,omitempty"`
	Amount       decimal.Decimal            `json:"amount"`
	Currency     string                     `json:"currency"`
	Status       string                     `json:"status"`
	IsVerified   bool                       `json:"is_verified"`
	Method       string                     `json:"method"`
	Reference    *string                    `json:"payment_reference,omitempty"`
	DatePaid     time.Time                  `json:"date_paid"`
	CreatedAt    time.Time                  `json:"created_at"`
}

func ToPaymentResponse(m paymodel.Payment) PaymentResponse {
	resp := PaymentResponse{
		ID:         m.PaymentID,
		StudentID:  m.PaymentStudentID,
		Amount:     m.PaymentAmount,
		Currency:   m.PaymentCurrency,
		Status:     m.PaymentStatus,
		IsVerified: m.PaymentIsVerified,
		Method:     m.PaymentMethod,
		Reference:  m.PaymentReference,
		DatePaid:   m.PaymentDatePaid,
		CreatedAt:  m.CreatedAt,
	}
	if m.Student != nil {
		resp.StudentName = m.Student.FullName()
	}
	if m.StudentFee != nil {
		sf := feedto.ToStudentFeeResponse(*m.StudentFee)
		resp.StudentFee = &sf
	}
	return resp
}

func ToPaymentResponses(list []paymodel.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToPaymentResponse(m))
	}
	return out
}

// Stats for the payment management header cards.
type PaymentStatsResponse struct {
	TotalCollected  decimal.Decimal `json:"total_collected"`
	PendingCount    int64           `json:"pending_count"`
	SuccessfulCount int64           `json:"successful_count"`
	FailedCount     int64           `json:"failed_count"`
	RefundedCount   int64           `json:"refunded_count"`
}
