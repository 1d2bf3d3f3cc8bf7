package service

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	feemodel "schoolpay_backend/internals/features/finance/fees/model"
)

const duplicateStructureMsg = "a fee structure already exists for this class, academic year, and term combination"

// ItemInput is one candidate fee item from the create/append forms.
type ItemInput struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// ValidateItems rejects empty lists, blank names and non-positive
// amounts. Returns a field→message map usable as inline form errors.
func ValidateItems(items []ItemInput) map[string]string {
	errs := map[string]string{}
	if len(items) == 0 {
		errs["items"] = "at least one fee item is required"
		return errs
	}
	for i, it := range items {
		if strings.TrimSpace(it.Name) == "" {
			errs[itemField(i, "name")] = "item name is required"
		}
		if !it.Amount.IsPositive() {
			errs[itemField(i, "amount")] = "amount must be greater than 0"
		}
	}
	return errs
}

func itemField(i int, field string) string {
	return "items[" + strconv.Itoa(i) + "]." + field
}

// TotalAmount sums the candidate items; the stored structure never
// carries an independent total.
func TotalAmount(items []ItemInput) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Amount)
	}
	return total
}

// MergeItems implements the append-only "Add Items" rule: existing
// items are preserved unmodified and new items are concatenated.
func MergeItems(existing []feemodel.FeeItem, structureID uuid.UUID, added []ItemInput) []feemodel.FeeItem {
	out := make([]feemodel.FeeItem, 0, len(existing)+len(added))
	out = append(out, existing...)
	for _, it := range added {
		out = append(out, feemodel.FeeItem{
			FeeItemFeeStructureID: structureID,
			FeeItemName:           strings.TrimSpace(it.Name),
			FeeItemAmount:         it.Amount,
		})
	}
	return out
}

// CheckDuplicate is the friendly pre-check for at most one non-deleted
// structure per (class, year, term), matching academic_year and term
// case-sensitively. excludeID skips the structure being edited. The
// partial unique index uq_fee_structures_class_year_term is the real
// authority; MapDuplicate handles the race this check cannot.
func CheckDuplicate(db *gorm.DB, classID uuid.UUID, academicYear, term string, excludeID *uuid.UUID) error {
	q := db.Model(&feemodel.FeeStructure{}).
		Where("fee_structure_school_class_id = ?", classID).
		Where("fee_structure_academic_year = ?", academicYear).
		Where("fee_structure_term = ?", term)
	if excludeID != nil {
		q = q.Where("fee_structure_id <> ?", *excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if count > 0 {
		return fiber.NewError(fiber.StatusConflict, duplicateStructureMsg)
	}
	return nil
}

// MapDuplicate converts the unique-index violation raised when two
// creates race past CheckDuplicate into the same 409 the pre-check
// returns. Anything else passes through untouched.
func MapDuplicate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fiber.NewError(fiber.StatusConflict, duplicateStructureMsg)
	}
	return err
}
