package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	classmodel "schoolpay_backend/internals/features/school/classes/model"
)

// Student belongs to a class; fee totals are derived from student_fees,
// never stored here.
type Student struct {
	StudentID uuid.UUID `gorm:"column:student_id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	StudentFirstName       string    `gorm:"column:student_first_name;type:varchar(80);not null" json:"first_name"`
	StudentLastName        string    `gorm:"column:student_last_name;type:varchar(80);not null" json:"last_name"`
	StudentAdmissionNumber string    `gorm:"column:student_admission_number;type:varchar(40);not null;uniqueIndex" json:"admission_number"`
	StudentSchoolClassID   uuid.UUID `gorm:"column:student_school_class_id;type:uuid;not null;index" json:"school_class_id"`

	StudentParentName  string `gorm:"column:student_parent_name;type:varchar(160)" json:"parent_name"`
	StudentParentPhone string `gorm:"column:student_parent_phone;type:varchar(30)" json:"parent_phone"`
	StudentParentEmail string `gorm:"column:student_parent_email;type:varchar(160)" json:"parent_email"`

	CreatedAt time.Time      `gorm:"column:student_created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:student_updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:student_deleted_at;index" json:"deleted_at,omitempty"`

	SchoolClass *classmodel.SchoolClass `gorm:"foreignKey:StudentSchoolClassID;references:SchoolClassID" json:"school_class,omitempty"`
}

func (Student) TableName() string { return "students" }

func (s *Student) FullName() string {
	return s.StudentFirstName + " " + s.StudentLastName
}
