package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func fee(due, paid string) *StudentFee {
	d, _ := decimal.NewFromString(due)
	p, _ := decimal.NewFromString(paid)
	return &StudentFee{StudentFeeAmountDue: d, StudentFeeAmountPaid: p}
}

func TestStudentFee_PaymentStatus(t *testing.T) {
	assert.Equal(t, FeeStatusUnpaid, fee("600", "0").PaymentStatus())
	assert.Equal(t, FeeStatusPartial, fee("600", "200").PaymentStatus())
	assert.Equal(t, FeeStatusPaid, fee("600", "600").PaymentStatus())
	// over-payment still reads as paid
	assert.Equal(t, FeeStatusPaid, fee("600", "700").PaymentStatus())
	// a refunded-below-zero ledger reads as unpaid
	assert.Equal(t, FeeStatusUnpaid, fee("600", "-50").PaymentStatus())
}

func TestStudentFee_Balance(t *testing.T) {
	assert.True(t, fee("600", "200").Balance().Equal(decimal.NewFromInt(400)))
	// balance goes negative on over-payment
	assert.True(t, fee("600", "700").Balance().Equal(decimal.NewFromInt(-100)))
}

func TestStudentFee_IsOutstanding(t *testing.T) {
	assert.True(t, fee("600", "0").IsOutstanding())
	assert.False(t, fee("600", "600").IsOutstanding())
	assert.False(t, fee("600", "700").IsOutstanding())
}

func TestIsValidTerm(t *testing.T) {
	assert.True(t, IsValidTerm("Term 1"))
	assert.True(t, IsValidTerm("Term 2"))
	assert.True(t, IsValidTerm("Term 3"))
	assert.False(t, IsValidTerm("term 1"))
	assert.False(t, IsValidTerm("Term 4"))
	assert.False(t, IsValidTerm(""))
}
