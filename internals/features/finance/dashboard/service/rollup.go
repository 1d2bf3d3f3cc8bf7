package service

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	helper "schoolpay_backend/internals/helpers"
)

////////////////////////////////////////////////////////////////////////////////
// DASHBOARD — ROLLUPS
//
// Pure aggregation over rows the controller fetched; nothing here touches
// the database, so every rollup is unit-testable.
////////////////////////////////////////////////////////////////////////////////

/* ===================== Class summary ===================== */

// ClassAggregate is one class's raw totals as they come out of the
// grouped query.
type ClassAggregate struct {
	ClassID      uuid.UUID       `json:"class_id"`
	ClassName    string          `json:"class_name"`
	StudentCount int64           `json:"student_count"`
	TotalDue     decimal.Decimal `json:"total_due"`
	TotalPaid    decimal.Decimal `json:"total_paid"`
}

type ClassSummaryRow struct {
	ClassAggregate
	Outstanding    decimal.Decimal `json:"outstanding"`
	CollectionRate decimal.Decimal `json:"collection_rate"`
}

// SummarizeClasses derives outstanding and collection rate per class.
// A class with nothing due reports a rate of 0, not a division error.
func SummarizeClasses(rows []ClassAggregate) []ClassSummaryRow {
	out := make([]ClassSummaryRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, ClassSummaryRow{
			ClassAggregate: r,
			Outstanding:    r.TotalDue.Sub(r.TotalPaid),
			CollectionRate: helper.RatePercent(r.TotalPaid, r.TotalDue),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ClassName < out[j].ClassName })
	return out
}

/* ===================== Outstanding students ===================== */

type StudentBalance struct {
	StudentID   uuid.UUID       `json:"student_id"`
	StudentName string          `json:"student_name"`
	ClassName   string          `json:"class_name"`
	TotalDue    decimal.Decimal `json:"total_due"`
	TotalPaid   decimal.Decimal `json:"total_paid"`
	Balance     decimal.Decimal `json:"balance"`
}

// RankOutstanding keeps students with a positive balance, ordered by
// balance descending, capped at limit (0 means no cap).
func RankOutstanding(rows []StudentBalance, limit int) []StudentBalance {
	out := make([]StudentBalance, 0, len(rows))
	for _, r := range rows {
		r.Balance = r.TotalDue.Sub(r.TotalPaid)
		if r.Balance.IsPositive() {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Balance.GreaterThan(out[j].Balance)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// OutstandingReport ranks outstanding students and computes the average
// balance over ALL of them; the limit only truncates the returned list,
// it never skews the average toward the largest balances.
func OutstandingReport(rows []StudentBalance, limit int) ([]StudentBalance, decimal.Decimal) {
	ranked := RankOutstanding(rows, 0)
	avg := AverageBalance(ranked)
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, avg
}

// AverageBalance is the mean of the given (already filtered) balances.
func AverageBalance(rows []StudentBalance) decimal.Decimal {
	if len(rows) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, r := range rows {
		sum = sum.Add(r.Balance)
	}
	return sum.Div(decimal.NewFromInt(int64(len(rows)))).Round(2)
}

/* ===================== Recent payments grouped ===================== */

// PaymentRow is the slice of a payment the grouping needs.
type PaymentRow struct {
	StudentID   uuid.UUID
	StudentName string
	Amount      decimal.Decimal
	DatePaid    time.Time
}

type PaymentGroup struct {
	StudentID    uuid.UUID       `json:"student_id"`
	StudentName  string          `json:"student_name"`
	PaymentCount int             `json:"payment_count"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	LatestPaid   time.Time       `json:"latest_date_paid"`
}

// GroupRecentPayments folds payments into one row per student, ordered
// by each student's most recent payment, capped at limit (0 = no cap).
func GroupRecentPayments(rows []PaymentRow, limit int) []PaymentGroup {
	byStudent := map[uuid.UUID]*PaymentGroup{}
	order := []uuid.UUID{}
	for _, r := range rows {
		g, ok := byStudent[r.StudentID]
		if !ok {
			g = &PaymentGroup{StudentID: r.StudentID, StudentName: r.StudentName}
			byStudent[r.StudentID] = g
			order = append(order, r.StudentID)
		}
		g.PaymentCount++
		g.TotalAmount = g.TotalAmount.Add(r.Amount)
		if r.DatePaid.After(g.LatestPaid) {
			g.LatestPaid = r.DatePaid
		}
	}

	out := make([]PaymentGroup, 0, len(order))
	for _, id := range order {
		out = append(out, *byStudent[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LatestPaid.After(out[j].LatestPaid)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

/* ===================== Overview ===================== */

type Overview struct {
	TotalStudents    int64           `json:"total_students"`
	TotalClasses     int64           `json:"total_classes"`
	TotalDue         decimal.Decimal `json:"total_due"`
	TotalCollected   decimal.Decimal `json:"total_collected"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
	CollectionRate   decimal.Decimal `json:"collection_rate"`
	PendingPayments  int64           `json:"pending_payments"`
}

func BuildOverview(totalStudents, totalClasses int64, due, paid decimal.Decimal, pendingPayments int64) Overview {
	return Overview{
		TotalStudents:    totalStudents,
		TotalClasses:     totalClasses,
		TotalDue:         due,
		TotalCollected:   paid,
		TotalOutstanding: due.Sub(paid),
		CollectionRate:   helper.RatePercent(paid, due),
		PendingPayments:  pendingPayments,
	}
}
