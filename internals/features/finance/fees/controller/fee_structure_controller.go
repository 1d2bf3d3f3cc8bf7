package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolpay_backend/internals/features/finance/fees/dto"
	feemodel "schoolpay_backend/internals/features/finance/fees/model"
	"schoolpay_backend/internals/features/finance/fees/service"
	helper "schoolpay_backend/internals/helpers"
)

type FeeStructureHandler struct {
	DB *gorm.DB
}

// -----------------------------------------
// List (GET /fee_structure)
// Query filters (optional): school_class, academic_year, term, is_active
// -----------------------------------------
func (h *FeeStructureHandler) List(c *fiber.Ctx) error {
	q := h.DB.Model(&feemodel.FeeStructure{}).
		Preload("SchoolClass").
		Preload("Items")

	if v := c.Query("school_class"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			q = q.Where("fee_structure_school_class_id = ?", id)
		}
	}
	if v := c.Query("academic_year"); v != "" {
		q = q.Where("fee_structure_academic_year = ?", v)
	}
	if v := c.Query("term"); v != "" {
		q = q.Where("fee_structure_term = ?", v)
	}
	if v := c.Query("is_active"); v != "" {
		q = q.Where("fee_structure_is_active = ?", strings.EqualFold(v, "true"))
	}

	var list []feemodel.FeeStructure
	if err := q.Order("fee_structure_created_at DESC").Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", dto.ToFeeStructureResponses(list))
}

// -----------------------------------------
// Get (GET /fee_structure/:id)
// -----------------------------------------
func (h *FeeStructureHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	m, err := h.load(id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.ToFeeStructureResponse(*m))
}

// -----------------------------------------
// Create (POST /fee_structure)
// Rejects a duplicate (class, academic_year, term) tuple with 409.
// Structure + items are persisted atomically; total_amount is computed.
// -----------------------------------------
func (h *FeeStructureHandler) Create(c *fiber.Ctx) error {
	var in dto.FeeStructureCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	in.AcademicYear = strings.TrimSpace(in.AcademicYear)
	if err := helper.Validate(in); err != nil {
		return helper.ValidationError(c, err)
	}
	if !feemodel.IsValidTerm(in.Term) {
		return helper.JsonErrorWithDetails(c, fiber.StatusBadRequest, "Validation failed",
			map[string]string{"term": "term must be one of Term 1, Term 2, Term 3"})
	}
	if errs := service.ValidateItems(in.Items); len(errs) > 0 {
		return helper.JsonErrorWithDetails(c, fiber.StatusBadRequest, "Validation failed", errs)
	}
	if err := service.CheckDuplicate(h.DB, in.SchoolClassID, in.AcademicYear, in.Term, nil); err != nil {
		return helper.FromFiberError(c, err)
	}

	m := feemodel.FeeStructure{
		FeeStructureSchoolClassID: in.SchoolClassID,
		FeeStructureAcademicYear:  in.AcademicYear,
		FeeStructureTerm:          in.Term,
		FeeStructureIsActive:      true,
	}
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		items := service.MergeItems(nil, m.FeeStructureID, in.Items)
		return tx.Create(&items).Error
	})
	if err != nil {
		// two creates racing past the pre-check hit the unique index
		return helper.FromFiberError(c, service.MapDuplicate(err))
	}

	created, ferr := h.load(m.FeeStructureID)
	if ferr != nil {
		return helper.FromFiberError(c, ferr)
	}
	return helper.JsonCreated(c, "created", dto.ToFeeStructureResponse(*created))
}

// -----------------------------------------
// Update (PUT /fee_structure/:id)
// class/year/term are immutable once created; the items payload is the
// union the client built — existing items are never modified, incoming
// items that do not match an existing (name, amount) pair are appended.
// -----------------------------------------
func (h *FeeStructureHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var in dto.FeeStructureUpdateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}

	m, ferr := h.load(id)
	if ferr != nil {
		return helper.FromFiberError(c, ferr)
	}

	var added []service.ItemInput
	if in.Items != nil {
		if errs := service.ValidateItems(in.Items); len(errs) > 0 {
			return helper.JsonErrorWithDetails(c, fiber.StatusBadRequest, "Validation failed", errs)
		}
		added = newItemsOnly(m.Items, in.Items)
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if in.IsActive != nil {
			if err := tx.Model(m).Update("fee_structure_is_active", *in.IsActive).Error; err != nil {
				return err
			}
		}
		if len(added) > 0 {
			items := service.MergeItems(nil, m.FeeStructureID, added)
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	updated, ferr := h.load(id)
	if ferr != nil {
		return helper.FromFiberError(c, ferr)
	}
	return helper.JsonOK(c, "updated", dto.ToFeeStructureResponse(*updated))
}

// -----------------------------------------
// Patch (PATCH /fee_structure/:id) — is_active toggle only
// -----------------------------------------
func (h *FeeStructureHandler) Patch(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var in dto.FeeStructurePatchDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if in.IsActive == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "is_active is required")
	}

	m, ferr := h.load(id)
	if ferr != nil {
		return helper.FromFiberError(c, ferr)
	}
	if err := h.DB.Model(m).Update("fee_structure_is_active", *in.IsActive).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	updated, ferr := h.load(id)
	if ferr != nil {
		return helper.FromFiberError(c, ferr)
	}
	return helper.JsonOK(c, "updated", dto.ToFeeStructureResponse(*updated))
}

// -----------------------------------------
// Delete (DELETE /fee_structure/:id) — hard delete, cascades to items
// -----------------------------------------
func (h *FeeStructureHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Delete(&feemodel.FeeItem{}, "fee_item_fee_structure_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&feemodel.FeeStructure{}, "fee_structure_id = ?", id).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "deleted", nil)
}

// -----------------------------------------
// AppendItems (POST /fee_item)
// Append-only: existing items are untouched, new items concatenated.
// -----------------------------------------
func (h *FeeStructureHandler) AppendItems(c *fiber.Ctx) error {
	var in dto.FeeItemsAppendDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate(in); err != nil {
		return helper.ValidationError(c, err)
	}
	if errs := service.ValidateItems(in.Items); len(errs) > 0 {
		return helper.JsonErrorWithDetails(c, fiber.StatusBadRequest, "Validation failed", errs)
	}

	m, ferr := h.load(in.FeeStructureID)
	if ferr != nil {
		return helper.FromFiberError(c, ferr)
	}

	items := service.MergeItems(nil, m.FeeStructureID, in.Items)
	if err := h.DB.Create(&items).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	updated, ferr := h.load(m.FeeStructureID)
	if ferr != nil {
		return helper.FromFiberError(c, ferr)
	}
	return helper.JsonCreated(c, "items added", dto.ToFeeStructureResponse(*updated))
}

// -----------------------------------------
// Bulk (POST /fee_structure/bulk)
// One result per id so partial failures are visible; the response is
// 207-style: 200 when everything succeeded, 502 otherwise.
// -----------------------------------------
type bulkRequest struct {
	Action string      `json:"action" validate:"required,oneof=activate deactivate delete"`
	IDs    []uuid.UUID `json:"ids" validate:"required,min=1"`
}

type bulkResult struct {
	ID    uuid.UUID `json:"id"`
	OK    bool      `json:"ok"`
	Error string    `json:"error,omitempty"`
}

func (h *FeeStructureHandler) Bulk(c *fiber.Ctx) error {
	var in bulkRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate(in); err != nil {
		return helper.ValidationError(c, err)
	}

	results := make([]bulkResult, 0, len(in.IDs))
	failed := 0
	for _, id := range in.IDs {
		var err error
		switch in.Action {
		case "activate":
			err = h.DB.Model(&feemodel.FeeStructure{}).
				Where("fee_structure_id = ?", id).
				Update("fee_structure_is_active", true).Error
		case "deactivate":
			err = h.DB.Model(&feemodel.FeeStructure{}).
				Where("fee_structure_id = ?", id).
				Update("fee_structure_is_active", false).Error
		case "delete":
			err = h.DB.Transaction(func(tx *gorm.DB) error {
				if e := tx.Unscoped().Delete(&feemodel.FeeItem{}, "fee_item_fee_structure_id = ?", id).Error; e != nil {
					return e
				}
				return tx.Unscoped().Delete(&feemodel.FeeStructure{}, "fee_structure_id = ?", id).Error
			})
		}
		r := bulkResult{ID: id, OK: err == nil}
		if err != nil {
			r.Error = err.Error()
			failed++
		}
		results = append(results, r)
	}

	if failed > 0 {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"code":    fiber.StatusBadGateway,
			"status":  "error",
			"message": "some items failed",
			"data":    results,
		})
	}
	return helper.JsonOK(c, "ok", results)
}

func (h *FeeStructureHandler) load(id uuid.UUID) (*feemodel.FeeStructure, error) {
	var m feemodel.FeeStructure
	err := h.DB.Preload("SchoolClass").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("fee_item_created_at ASC")
		}).
		First(&m, "fee_structure_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "fee structure not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return &m, nil
}

// newItemsOnly filters the incoming union down to the items that do not
// already exist on the structure (matched by name + amount).
func newItemsOnly(existing []feemodel.FeeItem, incoming []service.ItemInput) []service.ItemInput {
	type key struct{ name, amount string }
	seen := map[key]int{}
	for _, it := range existing {
		k := key{strings.TrimSpace(it.FeeItemName), it.FeeItemAmount.StringFixed(2)}
		seen[k]++
	}
	var added []service.ItemInput
	for _, it := range incoming {
		k := key{strings.TrimSpace(it.Name), it.Amount.StringFixed(2)}
		if seen[k] > 0 {
			seen[k]--
			continue
		}
		added = append(added, it)
	}
	return added
}
