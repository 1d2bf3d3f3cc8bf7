package service

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	feemodel "schoolpay_backend/internals/features/finance/fees/model"
)

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

func TestTotalAmount_SumsItems(t *testing.T) {
	items := []ItemInput{
		{Name: "Tuition", Amount: d("500.00")},
		{Name: "Books", Amount: d("100.00")},
	}
	assert.True(t, TotalAmount(items).Equal(d("600.00")))
}

func TestTotalAmount_EmptyIsZero(t *testing.T) {
	assert.True(t, TotalAmount(nil).IsZero())
}

func TestValidateItems_EmptyList(t *testing.T) {
	errs := ValidateItems(nil)
	require.Len(t, errs, 1)
	assert.Contains(t, errs, "items")
}

func TestValidateItems_BlankNameAndNonPositiveAmount(t *testing.T) {
	errs := ValidateItems([]ItemInput{
		{Name: "Tuition", Amount: d("500")},
		{Name: "  ", Amount: d("100")},
		{Name: "PTA Dues", Amount: decimal.Zero},
		{Name: "Uniform", Amount: d("-5")},
	})
	assert.Contains(t, errs, "items[1].name")
	assert.Contains(t, errs, "items[2].amount")
	assert.Contains(t, errs, "items[3].amount")
	assert.NotContains(t, errs, "items[0].name")
	assert.NotContains(t, errs, "items[0].amount")
}

func TestValidateItems_AllValid(t *testing.T) {
	errs := ValidateItems([]ItemInput{{Name: "Tuition", Amount: d("500")}})
	assert.Empty(t, errs)
}

func TestMergeItems_AppendOnly(t *testing.T) {
	structureID := uuid.New()
	existing := []feemodel.FeeItem{
		{FeeItemFeeStructureID: structureID, FeeItemName: "Tuition", FeeItemAmount: d("500.00")},
	}

	merged := MergeItems(existing, structureID, []ItemInput{{Name: " Books ", Amount: d("100.00")}})

	require.Len(t, merged, 2)
	// existing item untouched
	assert.Equal(t, "Tuition", merged[0].FeeItemName)
	assert.True(t, merged[0].FeeItemAmount.Equal(d("500.00")))
	// new item appended with name trimmed
	assert.Equal(t, "Books", merged[1].FeeItemName)
	assert.True(t, merged[1].FeeItemAmount.Equal(d("100.00")))
	assert.Equal(t, structureID, merged[1].FeeItemFeeStructureID)
}

func TestMapDuplicate_UniqueViolationBecomes409(t *testing.T) {
	err := MapDuplicate(gorm.ErrDuplicatedKey)
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusConflict, fe.Code)
	assert.Contains(t, fe.Message, "already exists")
}

func TestMapDuplicate_OtherErrorsPassThrough(t *testing.T) {
	other := errors.New("connection reset")
	assert.Equal(t, other, MapDuplicate(other))
	assert.NoError(t, MapDuplicate(nil))
}

func TestMergeItems_NothingAdded(t *testing.T) {
	structureID := uuid.New()
	existing := []feemodel.FeeItem{
		{FeeItemFeeStructureID: structureID, FeeItemName: "Tuition", FeeItemAmount: d("500.00")},
	}
	merged := MergeItems(existing, structureID, nil)
	assert.Len(t, merged, 1)
}
