package service

import (
	"errors"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"

	paymodel "schoolpay_backend/internals/features/finance/payments/model"
)

// VerificationResult is the gateway's answer for one reference.
type VerificationResult struct {
	Reference string
	Status    string // mapped to the payment status enum
	Verified  bool
	RawStatus string // provider status as reported, kept for the audit trail
}

// Gateway re-queries the payment provider for a reference string.
// Controllers depend on this interface so tests can stub it.
type Gateway interface {
	CheckReference(reference string) (VerificationResult, error)
}

/* ===================== Midtrans ===================== */

type MidtransGateway struct {
	client coreapi.Client
}

func NewMidtransGateway(serverKey string, production bool) *MidtransGateway {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}
	g := &MidtransGateway{}
	g.client.New(serverKey, env)
	return g
}

func (g *MidtransGateway) CheckReference(reference string) (VerificationResult, error) {
	if reference == "" {
		return VerificationResult{}, errors.New("empty payment reference")
	}
	resp, err := g.client.CheckTransaction(reference)
	if err != nil {
		return VerificationResult{}, err
	}

	res := VerificationResult{Reference: reference, RawStatus: resp.TransactionStatus}
	res.Status, res.Verified = mapMidtransStatus(resp.TransactionStatus)
	return res, nil
}

// mapMidtransStatus folds midtrans transaction statuses into the
// payment status enum. Only settled money verifies.
func mapMidtransStatus(s string) (string, bool) {
	switch s {
	case "settlement", "capture":
		return paymodel.PaymentStatusSuccessful, true
	case "pending", "authorize":
		return paymodel.PaymentStatusPending, false
	case "refund", "partial_refund":
		return paymodel.PaymentStatusRefunded, false
	default: // deny, cancel, expire, failure
		return paymodel.PaymentStatusFailed, false
	}
}
