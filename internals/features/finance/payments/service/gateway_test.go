package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	paymodel "schoolpay_backend/internals/features/finance/payments/model"
)

func TestMapMidtransStatus(t *testing.T) {
	cases := []struct {
		in       string
		status   string
		verified bool
	}{
		{"settlement", paymodel.PaymentStatusSuccessful, true},
		{"capture", paymodel.PaymentStatusSuccessful, true},
		{"pending", paymodel.PaymentStatusPending, false},
		{"authorize", paymodel.PaymentStatusPending, false},
		{"refund", paymodel.PaymentStatusRefunded, false},
		{"partial_refund", paymodel.PaymentStatusRefunded, false},
		{"deny", paymodel.PaymentStatusFailed, false},
		{"expire", paymodel.PaymentStatusFailed, false},
		{"cancel", paymodel.PaymentStatusFailed, false},
		{"something_new", paymodel.PaymentStatusFailed, false},
	}
	for _, tc := range cases {
		status, verified := mapMidtransStatus(tc.in)
		assert.Equal(t, tc.status, status, tc.in)
		assert.Equal(t, tc.verified, verified, tc.in)
	}
}

func TestMidtransGateway_EmptyReference(t *testing.T) {
	g := NewMidtransGateway("sb-server-key", false)
	_, err := g.CheckReference("")
	assert.Error(t, err)
}
