package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	feemodel "schoolpay_backend/internals/features/finance/fees/model"
	"schoolpay_backend/internals/features/school/students/dto"
	studentmodel "schoolpay_backend/internals/features/school/students/model"
	helper "schoolpay_backend/internals/helpers"
)

type StudentHandler struct {
	DB *gorm.DB
}

// -----------------------------------------
// List (GET /students)
// Query filters: search (name or admission number), school_class
// -----------------------------------------
func (h *StudentHandler) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "last_name", "asc", helper.DefaultOpts)

	q := h.DB.Model(&studentmodel.Student{})
	if v := strings.TrimSpace(c.Query("search")); v != "" {
		like := "%" + v + "%"
		q = q.Where(
			"student_first_name ILIKE ? OR student_last_name ILIKE ? OR student_admission_number ILIKE ?",
			like, like, like,
		)
	}
	if v := c.Query("school_class"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			q = q.Where("student_school_class_id = ?", id)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	order, err := p.SafeOrderClause(map[string]string{
		"last_name":        "student_last_name",
		"first_name":       "student_first_name",
		"admission_number": "student_admission_number",
		"created_at":       "student_created_at",
	}, "last_name")
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var list []studentmodel.Student
	if err := q.Preload("SchoolClass").
		Order(order).
		Limit(p.Limit()).
		Offset(p.Offset()).
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	resp, err := h.withTotals(list)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, resp, helper.BuildMeta(total, p))
}

// -----------------------------------------
// Get (GET /students/:id)
// -----------------------------------------
func (h *StudentHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var m studentmodel.Student
	if err := h.DB.Preload("SchoolClass").First(&m, "student_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "student not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	resp, err := h.withTotals([]studentmodel.Student{m})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", resp[0])
}

// -----------------------------------------
// Create (POST /students)
// -----------------------------------------
func (h *StudentHandler) Create(c *fiber.Ctx) error {
	var in dto.StudentCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate(in); err != nil {
		return helper.ValidationError(c, err)
	}

	var dup int64
	if err := h.DB.Model(&studentmodel.Student{}).
		Where("student_admission_number = ?", in.AdmissionNumber).
		Count(&dup).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if dup > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "admission number already in use")
	}

	m := studentmodel.Student{
		StudentFirstName:       in.FirstName,
		StudentLastName:        in.LastName,
		StudentAdmissionNumber: in.AdmissionNumber,
		StudentSchoolClassID:   in.SchoolClassID,
		StudentParentName:      in.ParentName,
		StudentParentPhone:     in.ParentPhone,
		StudentParentEmail:     in.ParentEmail,
	}
	if err := h.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if err := h.DB.Preload("SchoolClass").First(&m, "student_id = ?", m.StudentID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "created", dto.ToStudentResponse(m, dto.FeeTotals{}))
}

// -----------------------------------------
// Update (PATCH /students/:id)
// -----------------------------------------
func (h *StudentHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var in dto.StudentUpdateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate(in); err != nil {
		return helper.ValidationError(c, err)
	}

	var m studentmodel.Student
	if err := h.DB.First(&m, "student_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "student not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	updates := map[string]interface{}{}
	if in.FirstName != nil {
		updates["student_first_name"] = *in.FirstName
	}
	if in.LastName != nil {
		updates["student_last_name"] = *in.LastName
	}
	if in.AdmissionNumber != nil && *in.AdmissionNumber != m.StudentAdmissionNumber {
		var dup int64
		if err := h.DB.Model(&studentmodel.Student{}).
			Where("student_admission_number = ? AND student_id <> ?", *in.AdmissionNumber, id).
			Count(&dup).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
		if dup > 0 {
			return helper.JsonError(c, fiber.StatusConflict, "admission number already in use")
		}
		updates["student_admission_number"] = *in.AdmissionNumber
	}
	if in.SchoolClassID != nil {
		updates["student_school_class_id"] = *in.SchoolClassID
	}
	if in.ParentName != nil {
		updates["student_parent_name"] = *in.ParentName
	}
	if in.ParentPhone != nil {
		updates["student_parent_phone"] = *in.ParentPhone
	}
	if in.ParentEmail != nil {
		updates["student_parent_email"] = *in.ParentEmail
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "nothing to update")
	}

	if err := h.DB.Model(&m).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if err := h.DB.Preload("SchoolClass").First(&m, "student_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	resp, err := h.withTotals([]studentmodel.Student{m})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "updated", resp[0])
}

// -----------------------------------------
// Delete (DELETE /students/:id) — soft delete
// -----------------------------------------
func (h *StudentHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	res := h.DB.Delete(&studentmodel.Student{}, "student_id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "student not found")
	}
	return helper.JsonOK(c, "deleted", fiber.Map{"id": id})
}

// -----------------------------------------
// ByClass (GET /students-by-class/:id)
// -----------------------------------------
func (h *StudentHandler) ByClass(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid class id")
	}

	var list []studentmodel.Student
	if err := h.DB.Preload("SchoolClass").
		Where("student_school_class_id = ?", classID).
		Order("student_last_name ASC, student_first_name ASC").
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	resp, err := h.withTotals(list)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", resp)
}

/* ===================== Derived totals ===================== */

// withTotals decorates students with their fee totals in one grouped
// query instead of a query per row.
func (h *StudentHandler) withTotals(list []studentmodel.Student) ([]dto.StudentResponse, error) {
	resp := make([]dto.StudentResponse, 0, len(list))
	if len(list) == 0 {
		return resp, nil
	}

	ids := make([]uuid.UUID, 0, len(list))
	for _, m := range list {
		ids = append(ids, m.StudentID)
	}

	type totalsRow struct {
		StudentID uuid.UUID
		Due       decimal.Decimal
		Paid      decimal.Decimal
	}
	var rows []totalsRow
	if err := h.DB.Model(&feemodel.StudentFee{}).
		Select("student_fee_student_id AS student_id, COALESCE(SUM(student_fee_amount_due), 0) AS due, COALESCE(SUM(student_fee_amount_paid), 0) AS paid").
		Where("student_fee_student_id IN ?", ids).
		Group("student_fee_student_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	byStudent := make(map[uuid.UUID]dto.FeeTotals, len(rows))
	for _, r := range rows {
		byStudent[r.StudentID] = dto.FeeTotals{
			TotalDue:     r.Due,
			TotalPaid:    r.Paid,
			TotalBalance: r.Due.Sub(r.Paid),
		}
	}

	for _, m := range list {
		resp = append(resp, dto.ToStudentResponse(m, byStudent[m.StudentID]))
	}
	return resp, nil
}
