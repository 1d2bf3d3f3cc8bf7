package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	feemodel "schoolpay_backend/internals/features/finance/fees/model"
	"schoolpay_backend/internals/features/finance/fees/service"
	classdto "schoolpay_backend/internals/features/school/classes/dto"
)

////////////////////////////////////////////////////////////////////////////////
// FEE STRUCTURE — DTO
////////////////////////////////////////////////////////////////////////////////

// Create
type FeeStructureCreateDTO struct {
	SchoolClassID uuid.UUID           `json:"school_class" validate:"required"`
	AcademicYear  string              `json:"academic_year" validate:"required,max=20"`
	Term          string              `json:"term" validate:"required"`
	Items         []service.ItemInput `json:"items" validate:"required,min=1"`
}

// Update (PUT) — class/year/term are immutable after creation; only
// items (append-only union) and is_active are honored.
type FeeStructureUpdateDTO struct {
	IsActive *bool               `json:"is_active,omitempty"`
	Items    []service.ItemInput `json:"items,omitempty"`
}

// Patch — bulk actions and the active toggle use this.
type FeeStructurePatchDTO struct {
	IsActive *bool `json:"is_active,omitempty"`
}

// Append (POST /fee_item)
type FeeItemsAppendDTO struct {
	FeeStructureID uuid.UUID           `json:"fee_structure" validate:"required"`
	Items          []service.ItemInput `json:"items" validate:"required,min=1"`
}

// Response — school_class and items come embedded, total_amount is
// always computed server-side.
type FeeItemResponse struct {
	ID     uuid.UUID       `json:"id"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

type FeeStructureResponse struct {
	ID           uuid.UUID                    `json:"id"`
	SchoolClass  *classdto.SchoolClassResponse `json:"school_class,omitempty"`
	AcademicYear string                       `json:"academic_year"`
	Term         string                       `json:"term"`
	IsActive     bool                         `json:"is_active"`
	Items        []FeeItemResponse            `json:"items"`
	TotalAmount  decimal.Decimal              `json:"total_amount"`
	CreatedAt    time.Time                    `json:"created_at"`
}

func ToFeeItemResponse(m feemodel.FeeItem) FeeItemResponse {
	return FeeItemResponse{ID: m.FeeItemID, Name: m.FeeItemName, Amount: m.FeeItemAmount}
}

func ToFeeStructureResponse(m feemodel.FeeStructure) FeeStructureResponse {
	items := make([]FeeItemResponse, 0, len(m.Items))
	for _, it := range m.Items {
		items = append(items, ToFeeItemResponse(it))
	}
	resp := FeeStructureResponse{
		ID:           m.FeeStructureID,
		AcademicYear: m.FeeStructureAcademicYear,
		Term:         m.FeeStructureTerm,
		IsActive:     m.FeeStructureIsActive,
		Items:        items,
		TotalAmount:  m.TotalAmount(),
		CreatedAt:    m.CreatedAt,
	}
	if m.SchoolClass != nil {
		sc := classdto.ToSchoolClassResponse(*m.SchoolClass)
		resp.SchoolClass = &sc
	}
	return resp
}

func ToFeeStructureResponses(list []feemodel.FeeStructure) []FeeStructureResponse {
	out := make([]FeeStructureResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToFeeStructureResponse(m))
	}
	return out
}

////////////////////////////////////////////////////////////////////////////////
// STUDENT FEE — DTO
////////////////////////////////////////////////////////////////////////////////

type StudentFeeCreateDTO struct {
	StudentID      uuid.UUID       `json:"student" validate:"required"`
	FeeItemID      uuid.UUID       `json:"fee_item" validate:"required"`
	FeeStructureID uuid.UUID       `json:"fee_structure" validate:"required"`
	AmountDue      decimal.Decimal `json:"amount_due" validate:"required"`
}

type StudentFeeResponse struct {
	ID            uuid.UUID        `json:"id"`
	StudentID     uuid.UUID        `json:"student_id"`
	FeeItem       *FeeItemResponse `json:"fee_item,omitempty"`
	AmountDue     decimal.Decimal  `json:"amount_due"`
	AmountPaid    decimal.Decimal  `json:"amount_paid"`
	Balance       decimal.Decimal  `json:"balance"`
	PaymentStatus string           `json:"payment_status"`
}

func ToStudentFeeResponse(m feemodel.StudentFee) StudentFeeResponse {
	resp := StudentFeeResponse{
		ID:            m.StudentFeeID,
		StudentID:     m.StudentFeeStudentID,
		AmountDue:     m.StudentFeeAmountDue,
		AmountPaid:    m.StudentFeeAmountPaid,
		Balance:       m.Balance(),
		PaymentStatus: m.PaymentStatus(),
	}
	if m.FeeItem != nil {
		fi := ToFeeItemResponse(*m.FeeItem)
		resp.FeeItem = &fi
	}
	return resp
}

func ToStudentFeeResponses(list []feemodel.StudentFee) []StudentFeeResponse {
	out := make([]StudentFeeResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToStudentFeeResponse(m))
	}
	return out
}
