package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	classmodel "schoolpay_backend/internals/features/school/classes/model"
)

/* ===================== Terms ===================== */
/* Exactly three academic terms exist; anything else is rejected. */

const (
	Term1 = "Term 1"
	Term2 = "Term 2"
	Term3 = "Term 3"
)

func IsValidTerm(term string) bool {
	switch term {
	case Term1, Term2, Term3:
		return true
	default:
		return false
	}
}

/* ===================== FeeStructure ===================== */

// FeeStructure bundles fee items for one (class, academic year, term).
// At most one non-deleted structure may exist per tuple.
type FeeStructure struct {
	FeeStructureID uuid.UUID `gorm:"column:fee_structure_id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	FeeStructureSchoolClassID uuid.UUID `gorm:"column:fee_structure_school_class_id;type:uuid;not null;uniqueIndex:uq_fee_structures_class_year_term,where:fee_structure_deleted_at IS NULL" json:"school_class_id"`
	FeeStructureAcademicYear  string    `gorm:"column:fee_structure_academic_year;type:varchar(20);not null;uniqueIndex:uq_fee_structures_class_year_term" json:"academic_year"`
	FeeStructureTerm          string    `gorm:"column:fee_structure_term;type:varchar(10);not null;uniqueIndex:uq_fee_structures_class_year_term" json:"term"`
	FeeStructureIsActive      bool      `gorm:"column:fee_structure_is_active;not null;default:true" json:"is_active"`

	CreatedAt time.Time      `gorm:"column:fee_structure_created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:fee_structure_updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:fee_structure_deleted_at;index" json:"deleted_at,omitempty"`

	SchoolClass *classmodel.SchoolClass `gorm:"foreignKey:FeeStructureSchoolClassID;references:SchoolClassID" json:"school_class,omitempty"`
	Items       []FeeItem               `gorm:"foreignKey:FeeItemFeeStructureID;references:FeeStructureID;constraint:OnDelete:CASCADE" json:"items"`
}

func (FeeStructure) TableName() string { return "fee_structures" }

// TotalAmount is always recomputed from the items, never stored.
func (fs *FeeStructure) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, it := range fs.Items {
		total = total.Add(it.FeeItemAmount)
	}
	return total
}

/* ===================== FeeItem ===================== */

// FeeItem is one named charge inside a structure.
type FeeItem struct {
	FeeItemID uuid.UUID `gorm:"column:fee_item_id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	FeeItemFeeStructureID uuid.UUID       `gorm:"column:fee_item_fee_structure_id;type:uuid;not null;index" json:"fee_structure_id"`
	FeeItemName           string          `gorm:"column:fee_item_name;type:varchar(120);not null" json:"name"`
	FeeItemAmount         decimal.Decimal `gorm:"column:fee_item_amount;type:numeric(12,2);not null" json:"amount"`

	CreatedAt time.Time `gorm:"column:fee_item_created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:fee_item_updated_at;autoUpdateTime" json:"updated_at"`
}

func (FeeItem) TableName() string { return "fee_items" }
