package dto

import (
	"time"

	"github.com/google/uuid"

	classmodel "schoolpay_backend/internals/features/school/classes/model"
)

type SchoolClassCreateDTO struct {
	Name string `json:"name" validate:"required,max=80"`
}

type SchoolClassUpdateDTO struct {
	Name *string `json:"name,omitempty" validate:"omitempty,max=80"`
}

type SchoolClassResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func ToSchoolClassResponse(m classmodel.SchoolClass) SchoolClassResponse {
	return SchoolClassResponse{
		ID:        m.SchoolClassID,
		Name:      m.SchoolClassName,
		CreatedAt: m.CreatedAt,
	}
}

func ToSchoolClassResponses(list []classmodel.SchoolClass) []SchoolClassResponse {
	out := make([]SchoolClassResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToSchoolClassResponse(m))
	}
	return out
}
