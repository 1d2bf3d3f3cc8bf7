package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	classdto "schoolpay_backend/internals/features/school/classes/dto"
	studentmodel "schoolpay_backend/internals/features/school/students/model"
)

type StudentCreateDTO struct {
	FirstName       string    `json:"first_name" validate:"required,max=80"`
	LastName        string    `json:"last_name" validate:"required,max=80"`
	AdmissionNumber string    `json:"admission_number" validate:"required,max=40"`
	SchoolClassID   uuid.UUID `json:"school_class" validate:"required"`
	ParentName      string    `json:"parent_name" validate:"omitempty,max=160"`
	ParentPhone     string    `json:"parent_phone" validate:"omitempty,max=30"`
	ParentEmail     string    `json:"parent_email" validate:"omitempty,email,max=160"`
}

type StudentUpdateDTO struct {
	FirstName       *string    `json:"first_name,omitempty" validate:"omitempty,max=80"`
	LastName        *string    `json:"last_name,omitempty" validate:"omitempty,max=80"`
	AdmissionNumber *string    `json:"admission_number,omitempty" validate:"omitempty,max=40"`
	SchoolClassID   *uuid.UUID `json:"school_class,omitempty"`
	ParentName      *string    `json:"parent_name,omitempty" validate:"omitempty,max=160"`
	ParentPhone     *string    `json:"parent_phone,omitempty" validate:"omitempty,max=30"`
	ParentEmail     *string    `json:"parent_email,omitempty" validate:"omitempty,email,max=160"`
}

// FeeTotals are derived from student_fees per student; never stored.
type FeeTotals struct {
	TotalDue     decimal.Decimal `json:"total_due"`
	TotalPaid    decimal.Decimal `json:"total_paid"`
	TotalBalance decimal.Decimal `json:"total_balance"`
}

type StudentResponse struct {
	ID              uuid.UUID                     `json:"id"`
	FirstName       string                        `json:"first_name"`
	LastName        string                        `json:"last_name"`
	FullName        string                        `json:"full_name"`
	AdmissionNumber string                        `json:"admission_number"`
	SchoolClass     *classdto.SchoolClassResponse `json:"school_class,omitempty"`
	ParentName      string                        `json:"parent_name,omitempty"`
	ParentPhone     string                        `json:"parent_phone,omitempty"`
	ParentEmail     string                        `json:"parent_email,omitempty"`
	FeeTotals
	CreatedAt time.Time `json:"created_at"`
}

func ToStudentResponse(m studentmodel.Student, totals FeeTotals) StudentResponse {
	resp := StudentResponse{
		ID:              m.StudentID,
		FirstName:       m.StudentFirstName,
		LastName:        m.StudentLastName,
		FullName:        m.FullName(),
		AdmissionNumber: m.StudentAdmissionNumber,
		ParentName:      m.StudentParentName,
		ParentPhone:     m.StudentParentPhone,
		ParentEmail:     m.StudentParentEmail,
		FeeTotals:       totals,
		CreatedAt:       m.CreatedAt,
	}
	if m.SchoolClass != nil {
		sc := classdto.ToSchoolClassResponse(*m.SchoolClass)
		resp.SchoolClass = &sc
	}
	return resp
}
