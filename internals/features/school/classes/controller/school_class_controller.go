package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolpay_backend/internals/features/school/classes/dto"
	classmodel "schoolpay_backend/internals/features/school/classes/model"
	helper "schoolpay_backend/internals/helpers"
)

type SchoolClassHandler struct {
	DB *gorm.DB
}

// List (GET /school_class)
func (h *SchoolClassHandler) List(c *fiber.Ctx) error {
	var list []classmodel.SchoolClass
	q := h.DB.Model(&classmodel.SchoolClass{}).Order("school_class_name ASC")
	if v := strings.TrimSpace(c.Query("search")); v != "" {
		q = q.Where("LOWER(school_class_name) LIKE ?", "%"+strings.ToLower(v)+"%")
	}
	if err := q.Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", dto.ToSchoolClassResponses(list))
}

// Get (GET /school_class/:id)
func (h *SchoolClassHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var m classmodel.SchoolClass
	if err := h.DB.First(&m, "school_class_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "class not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", dto.ToSchoolClassResponse(m))
}

// Create (POST /school_class)
func (h *SchoolClassHandler) Create(c *fiber.Ctx) error {
	var in dto.SchoolClassCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := helper.Validate(in); err != nil {
		return helper.ValidationError(c, err)
	}

	var count int64
	if err := h.DB.Model(&classmodel.SchoolClass{}).
		Where("school_class_name = ?", in.Name).
		Count(&count).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if count > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "a class with this name already exists")
	}

	m := classmodel.SchoolClass{SchoolClassName: in.Name}
	if err := h.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "created", dto.ToSchoolClassResponse(m))
}

// Update (PATCH /school_class/:id)
func (h *SchoolClassHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var in dto.SchoolClassUpdateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate(in); err != nil {
		return helper.ValidationError(c, err)
	}

	var m classmodel.SchoolClass
	if err := h.DB.First(&m, "school_class_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "class not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return helper.JsonError(c, fiber.StatusBadRequest, "name must not be empty")
		}
		var count int64
		if err := h.DB.Model(&classmodel.SchoolClass{}).
			Where("school_class_name = ? AND school_class_id <> ?", name, id).
			Count(&count).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
		if count > 0 {
			return helper.JsonError(c, fiber.StatusConflict, "a class with this name already exists")
		}
		m.SchoolClassName = name
	}

	if err := h.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "updated", dto.ToSchoolClassResponse(m))
}

// Delete (DELETE /school_class/:id)
func (h *SchoolClassHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	if err := h.DB.Delete(&classmodel.SchoolClass{}, "school_class_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "deleted", nil)
}
