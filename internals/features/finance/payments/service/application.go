package service

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	feemodel "schoolpay_backend/internals/features/finance/fees/model"
	paymodel "schoolpay_backend/internals/features/finance/payments/model"
)

// AppliedAmount is the portion of a payment that counts toward its
// target fee: the full amount for (successful, verified), zero for
// every other combination.
func AppliedAmount(status string, verified bool, amount decimal.Decimal) decimal.Decimal {
	if status == paymodel.PaymentStatusSuccessful && verified {
		return amount
	}
	return decimal.Zero
}

// TransitionDelta is the signed change to amount_paid when a payment
// moves from its current (status, is_verified) to a new pair. Leaving
// (successful, verified) reverses exactly what was applied; entering it
// applies exactly once. Same-state transitions yield zero, which makes
// re-verification idempotent.
func TransitionDelta(p *paymodel.Payment, newStatus string, newVerified bool) decimal.Decimal {
	after := AppliedAmount(newStatus, newVerified, p.PaymentAmount)
	before := AppliedAmount(p.PaymentStatus, p.PaymentIsVerified, p.PaymentAmount)
	return after.Sub(before)
}

// Transition persists a payment state change and the resulting balance
// delta on the target StudentFee in one transaction. Payments without a
// target (general credit) only change their own state.
func Transition(db *gorm.DB, p *paymodel.Payment, newStatus string, newVerified bool) error {
	if !paymodel.IsValidPaymentStatus(newStatus) {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payment status")
	}
	delta := TransitionDelta(p, newStatus, newVerified)

	return db.Transaction(func(tx *gorm.DB) error {
		if p.PaymentStudentFeeID != nil && !delta.IsZero() {
			var fee feemodel.StudentFee
			if err := tx.First(&fee, "student_fee_id = ?", *p.PaymentStudentFeeID).Error; err != nil {
				return err
			}
			fee.StudentFeeAmountPaid = fee.StudentFeeAmountPaid.Add(delta)
			if err := tx.Model(&fee).
				Update("student_fee_amount_paid", fee.StudentFeeAmountPaid).Error; err != nil {
				return err
			}
		}
		p.PaymentStatus = newStatus
		p.PaymentIsVerified = newVerified
		return tx.Model(p).Updates(map[string]interface{}{
			"payment_status":      newStatus,
			"payment_is_verified": newVerified,
		}).Error
	})
}

// verificationMeta is the audit record a gateway check leaves on the
// payment's jsonb column.
func verificationMeta(v VerificationResult, at time.Time) datatypes.JSONMap {
	return datatypes.JSONMap{
		"gateway_status": v.RawStatus,
		"checked_at":     at.UTC().Format(time.RFC3339),
	}
}

// ApplyVerification persists the gateway's answer atomically: reference,
// raw-status metadata, and the state transition either all land or none
// do, so a failed transition never leaves a half-updated payment.
func ApplyVerification(db *gorm.DB, p *paymodel.Payment, v VerificationResult) error {
	return db.Transaction(func(tx *gorm.DB) error {
		meta := verificationMeta(v, time.Now())
		if err := tx.Model(p).Updates(map[string]interface{}{
			"payment_reference": v.Reference,
			"payment_meta":      meta,
		}).Error; err != nil {
			return err
		}
		p.PaymentReference = &v.Reference
		p.PaymentMeta = meta
		return Transition(tx, p, v.Status, v.Verified)
	})
}

// CreateAndApply inserts a new payment and, when it arrives already in
// (successful, verified), applies it to the target fee atomically.
func CreateAndApply(db *gorm.DB, p *paymodel.Payment) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		if p.PaymentStudentFeeID == nil || !p.IsApplied() {
			return nil
		}
		var fee feemodel.StudentFee
		if err := tx.First(&fee, "student_fee_id = ?", *p.PaymentStudentFeeID).Error; err != nil {
			return err
		}
		fee.StudentFeeAmountPaid = fee.StudentFeeAmountPaid.Add(p.PaymentAmount)
		return tx.Model(&fee).
			Update("student_fee_amount_paid", fee.StudentFeeAmountPaid).Error
	})
}
