package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	feemodel "schoolpay_backend/internals/features/finance/fees/model"
	studentmodel "schoolpay_backend/internals/features/school/students/model"
)

/* ===================== Enums (string) ===================== */

const (
	PaymentStatusPending    = "pending"
	PaymentStatusSuccessful = "successful"
	PaymentStatusFailed     = "failed"
	PaymentStatusRefunded   = "refunded"
)

func IsValidPaymentStatus(s string) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusSuccessful, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	default:
		return false
	}
}

const (
	PaymentMethodManual  = "manual"
	PaymentMethodGateway = "gateway"
)

/* ===================== Model ===================== */

// Payment is a transaction against a student, optionally targeting one
// StudentFee. Only (successful, verified) payments affect balances.
type Payment struct {
	PaymentID uuid.UUID `gorm:"column:payment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	PaymentStudentID    uuid.UUID  `gorm:"column:payment_student_id;type:uuid;not null;index" json:"student_id"`
	PaymentStudentFeeID *uuid.UUID `gorm:"column:payment_student_fee_id;type:uuid;index" json:"student_fee_id,omitempty"`

	PaymentAmount   decimal.Decimal `gorm:"column:payment_amount;type:numeric(12,2);not null" json:"amount"`
	PaymentCurrency string          `gorm:"column:payment_currency;type:varchar(8);not null;default:GHS" json:"currency"`

	PaymentStatus     string `gorm:"column:payment_status;type:varchar(20);not null;default:'pending';index" json:"status"`
	PaymentIsVerified bool   `gorm:"column:payment_is_verified;not null;default:false" json:"is_verified"`
	PaymentMethod     string `gorm:"column:payment_method;type:varchar(20);not null;default:'manual'" json:"method"`

	PaymentReference *string `gorm:"column:payment_reference;index" json:"payment_reference,omitempty"`

	PaymentDatePaid time.Time         `gorm:"column:payment_date_paid;not null;index" json:"date_paid"`
	PaymentMeta     datatypes.JSONMap `gorm:"column:payment_meta;type:jsonb" json:"meta,omitempty"`

	CreatedAt time.Time      `gorm:"column:payment_created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:payment_updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:payment_deleted_at;index" json:"deleted_at,omitempty"`

	Student    *studentmodel.Student `gorm:"foreignKey:PaymentStudentID;references:StudentID" json:"student,omitempty"`
	StudentFee *feemodel.StudentFee  `gorm:"foreignKey:PaymentStudentFeeID;references:StudentFeeID" json:"student_fee,omitempty"`
}

func (Payment) TableName() string { return "payments" }

/* ===================== Helpers ===================== */

// IsApplied reports whether this payment currently counts toward the
// target fee's amount_paid.
func (p *Payment) IsApplied() bool {
	return p.PaymentStatus == PaymentStatusSuccessful && p.PaymentIsVerified
}

func (p *Payment) IsGeneralCredit() bool {
	return p.PaymentStudentFeeID == nil
}
