package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	studentmodel "schoolpay_backend/internals/features/school/students/model"
)

/* ===================== Payment status (derived) ===================== */

const (
	FeeStatusUnpaid  = "unpaid"
	FeeStatusPartial = "partial"
	FeeStatusPaid    = "paid"
)

/* ===================== StudentFee ===================== */

// StudentFee is one student's obligation for one fee item.
// AmountPaid is the running sum of applied (successful, verified)
// payments; balance and payment_status are derived, never stored.
type StudentFee struct {
	StudentFeeID uuid.UUID `gorm:"column:student_fee_id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	StudentFeeStudentID      uuid.UUID `gorm:"column:student_fee_student_id;type:uuid;not null;index" json:"student_id"`
	StudentFeeFeeItemID      uuid.UUID `gorm:"column:student_fee_fee_item_id;type:uuid;not null;index" json:"fee_item_id"`
	StudentFeeFeeStructureID uuid.UUID `gorm:"column:student_fee_fee_structure_id;type:uuid;not null;index" json:"fee_structure_id"`

	StudentFeeAmountDue  decimal.Decimal `gorm:"column:student_fee_amount_due;type:numeric(12,2);not null" json:"amount_due"`
	StudentFeeAmountPaid decimal.Decimal `gorm:"column:student_fee_amount_paid;type:numeric(12,2);not null;default:0" json:"amount_paid"`

	CreatedAt time.Time      `gorm:"column:student_fee_created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:student_fee_updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:student_fee_deleted_at;index" json:"deleted_at,omitempty"`

	Student *studentmodel.Student `gorm:"foreignKey:StudentFeeStudentID;references:StudentID" json:"student,omitempty"`
	FeeItem *FeeItem              `gorm:"foreignKey:StudentFeeFeeItemID;references:FeeItemID" json:"fee_item,omitempty"`
}

func (StudentFee) TableName() string { return "student_fees" }

// Balance may go negative on over-payment; callers display it as-is.
func (sf *StudentFee) Balance() decimal.Decimal {
	return sf.StudentFeeAmountDue.Sub(sf.StudentFeeAmountPaid)
}

func (sf *StudentFee) PaymentStatus() string {
	switch {
	case sf.StudentFeeAmountPaid.IsZero() || sf.StudentFeeAmountPaid.IsNegative():
		return FeeStatusUnpaid
	case sf.StudentFeeAmountPaid.LessThan(sf.StudentFeeAmountDue):
		return FeeStatusPartial
	default:
		return FeeStatusPaid
	}
}

func (sf *StudentFee) IsOutstanding() bool {
	return sf.Balance().IsPositive()
}
