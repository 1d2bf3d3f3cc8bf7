package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	paymodel "schoolpay_backend/internals/features/finance/payments/model"
)

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

func TestAppliedAmount_OnlySuccessfulAndVerifiedCounts(t *testing.T) {
	amount := d("200.00")

	assert.True(t, AppliedAmount(paymodel.PaymentStatusSuccessful, true, amount).Equal(amount))

	assert.True(t, AppliedAmount(paymodel.PaymentStatusSuccessful, false, amount).IsZero())
	assert.True(t, AppliedAmount(paymodel.PaymentStatusPending, true, amount).IsZero())
	assert.True(t, AppliedAmount(paymodel.PaymentStatusPending, false, amount).IsZero())
	assert.True(t, AppliedAmount(paymodel.PaymentStatusFailed, true, amount).IsZero())
	assert.True(t, AppliedAmount(paymodel.PaymentStatusRefunded, true, amount).IsZero())
}

func TestTransitionDelta_PendingToApplied(t *testing.T) {
	p := &paymodel.Payment{
		PaymentAmount:     d("200.00"),
		PaymentStatus:     paymodel.PaymentStatusPending,
		PaymentIsVerified: false,
	}
	delta := TransitionDelta(p, paymodel.PaymentStatusSuccessful, true)
	assert.True(t, delta.Equal(d("200.00")))
}

func TestTransitionDelta_PendingStaysUnapplied(t *testing.T) {
	p := &paymodel.Payment{
		PaymentAmount:     d("200.00"),
		PaymentStatus:     paymodel.PaymentStatusPending,
		PaymentIsVerified: false,
	}
	// pending -> failed: nothing was applied, nothing to reverse
	assert.True(t, TransitionDelta(p, paymodel.PaymentStatusFailed, false).IsZero())
	// successful but unverified still does not apply
	assert.True(t, TransitionDelta(p, paymodel.PaymentStatusSuccessful, false).IsZero())
}

func TestTransitionDelta_ReversalOnLeavingApplied(t *testing.T) {
	p := &paymodel.Payment{
		PaymentAmount:     d("200.00"),
		PaymentStatus:     paymodel.PaymentStatusSuccessful,
		PaymentIsVerified: true,
	}
	assert.True(t, TransitionDelta(p, paymodel.PaymentStatusRefunded, true).Equal(d("-200.00")))
	assert.True(t, TransitionDelta(p, paymodel.PaymentStatusFailed, false).Equal(d("-200.00")))
	// un-verifying alone also reverses
	assert.True(t, TransitionDelta(p, paymodel.PaymentStatusSuccessful, false).Equal(d("-200.00")))
}

func TestTransitionDelta_IdempotentReverify(t *testing.T) {
	p := &paymodel.Payment{
		PaymentAmount:     d("200.00"),
		PaymentStatus:     paymodel.PaymentStatusSuccessful,
		PaymentIsVerified: true,
	}
	assert.True(t, TransitionDelta(p, paymodel.PaymentStatusSuccessful, true).IsZero())
}

func TestVerificationMeta_RecordsRawGatewayStatus(t *testing.T) {
	at := time.Date(2026, 8, 28, 12, 30, 0, 0, time.UTC)
	meta := verificationMeta(VerificationResult{
		Reference: "ord-123",
		Status:    paymodel.PaymentStatusSuccessful,
		Verified:  true,
		RawStatus: "settlement",
	}, at)

	assert.Equal(t, "settlement", meta["gateway_status"])
	assert.Equal(t, "2026-08-28T12:30:00Z", meta["checked_at"])
}
