package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

func TestSummarizeClasses_RateAndOutstanding(t *testing.T) {
	rows := []ClassAggregate{
		{ClassName: "Grade 2", StudentCount: 10, TotalDue: d("1000"), TotalPaid: d("250")},
		{ClassName: "Grade 1", StudentCount: 5, TotalDue: d("600"), TotalPaid: d("600")},
	}

	out := SummarizeClasses(rows)
	require.Len(t, out, 2)

	// sorted by class name
	assert.Equal(t, "Grade 1", out[0].ClassName)
	assert.True(t, out[0].Outstanding.IsZero())
	assert.True(t, out[0].CollectionRate.Equal(d("100")))

	assert.Equal(t, "Grade 2", out[1].ClassName)
	assert.True(t, out[1].Outstanding.Equal(d("750")))
	assert.True(t, out[1].CollectionRate.Equal(d("25")))
}

func TestSummarizeClasses_EmptyClassRateIsZero(t *testing.T) {
	out := SummarizeClasses([]ClassAggregate{{ClassName: "Nursery"}})
	require.Len(t, out, 1)
	assert.True(t, out[0].CollectionRate.IsZero())
	assert.True(t, out[0].Outstanding.IsZero())
}

func TestRankOutstanding_OrderFilterAndLimit(t *testing.T) {
	rows := []StudentBalance{
		{StudentName: "Ama", TotalDue: d("600"), TotalPaid: d("600")},  // settled, dropped
		{StudentName: "Kofi", TotalDue: d("600"), TotalPaid: d("100")}, // 500
		{StudentName: "Esi", TotalDue: d("600"), TotalPaid: d("400")},  // 200
		{StudentName: "Yaw", TotalDue: d("600"), TotalPaid: d("0")},    // 600
	}

	out := RankOutstanding(rows, 2)
	require.Len(t, out, 2)
	assert.Equal(t, "Yaw", out[0].StudentName)
	assert.True(t, out[0].Balance.Equal(d("600")))
	assert.Equal(t, "Kofi", out[1].StudentName)
	assert.True(t, out[1].Balance.Equal(d("500")))
}

func TestRankOutstanding_OverpaymentNotOutstanding(t *testing.T) {
	out := RankOutstanding([]StudentBalance{
		{StudentName: "Ama", TotalDue: d("600"), TotalPaid: d("700")},
	}, 0)
	assert.Empty(t, out)
}

func TestOutstandingReport_AverageCoversAllOutstanding(t *testing.T) {
	rows := []StudentBalance{
		{StudentName: "Yaw", TotalDue: d("600"), TotalPaid: d("0")},   // 600
		{StudentName: "Kofi", TotalDue: d("500"), TotalPaid: d("0")},  // 500
		{StudentName: "Esi", TotalDue: d("100"), TotalPaid: d("0")},   // 100
		{StudentName: "Ama", TotalDue: d("300"), TotalPaid: d("300")}, // settled
	}

	ranked, avg := OutstandingReport(rows, 2)

	// list truncated for display
	require.Len(t, ranked, 2)
	assert.Equal(t, "Yaw", ranked[0].StudentName)
	assert.Equal(t, "Kofi", ranked[1].StudentName)

	// average over all three outstanding students, not just the two shown
	assert.True(t, avg.Equal(d("400.00")), "got %s", avg)
}

func TestOutstandingReport_NoLimitReturnsEveryone(t *testing.T) {
	rows := []StudentBalance{
		{StudentName: "Yaw", TotalDue: d("600"), TotalPaid: d("0")},
		{StudentName: "Esi", TotalDue: d("100"), TotalPaid: d("0")},
	}
	ranked, avg := OutstandingReport(rows, 0)
	assert.Len(t, ranked, 2)
	assert.True(t, avg.Equal(d("350.00")))
}

func TestAverageBalance(t *testing.T) {
	rows := []StudentBalance{
		{Balance: d("600")},
		{Balance: d("200")},
	}
	assert.True(t, AverageBalance(rows).Equal(d("400.00")))
	assert.True(t, AverageBalance(nil).IsZero())
}

func TestGroupRecentPayments_GroupsPerStudent(t *testing.T) {
	ama, kofi := uuid.New(), uuid.New()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	rows := []PaymentRow{
		{StudentID: ama, StudentName: "Ama", Amount: d("100"), DatePaid: base},
		{StudentID: kofi, StudentName: "Kofi", Amount: d("50"), DatePaid: base.Add(48 * time.Hour)},
		{StudentID: ama, StudentName: "Ama", Amount: d("150"), DatePaid: base.Add(24 * time.Hour)},
	}

	out := GroupRecentPayments(rows, 0)
	require.Len(t, out, 2)

	// Kofi paid most recently, so he leads
	assert.Equal(t, "Kofi", out[0].StudentName)
	assert.Equal(t, 1, out[0].PaymentCount)

	assert.Equal(t, "Ama", out[1].StudentName)
	assert.Equal(t, 2, out[1].PaymentCount)
	assert.True(t, out[1].TotalAmount.Equal(d("250")))
	assert.Equal(t, base.Add(24*time.Hour), out[1].LatestPaid)
}

func TestGroupRecentPayments_Limit(t *testing.T) {
	rows := []PaymentRow{
		{StudentID: uuid.New(), StudentName: "Ama", Amount: d("10"), DatePaid: time.Now()},
		{StudentID: uuid.New(), StudentName: "Kofi", Amount: d("10"), DatePaid: time.Now()},
	}
	assert.Len(t, GroupRecentPayments(rows, 1), 1)
}

func TestBuildOverview(t *testing.T) {
	out := BuildOverview(42, 6, d("1000"), d("400"), 3)
	assert.Equal(t, int64(42), out.TotalStudents)
	assert.Equal(t, int64(6), out.TotalClasses)
	assert.True(t, out.TotalOutstanding.Equal(d("600")))
	assert.True(t, out.CollectionRate.Equal(d("40")))
	assert.Equal(t, int64(3), out.PendingPayments)
}

func TestBuildOverview_EmptySchool(t *testing.T) {
	out := BuildOverview(0, 0, decimal.Zero, decimal.Zero, 0)
	assert.True(t, out.CollectionRate.IsZero())
	assert.True(t, out.TotalOutstanding.IsZero())
	assert.Equal(t, int64(0), out.TotalClasses)
}
