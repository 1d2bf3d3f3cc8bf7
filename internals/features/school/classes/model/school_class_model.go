package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SchoolClass is a class group (e.g. "Grade 1"). Name is unique per school.
type SchoolClass struct {
	SchoolClassID uuid.UUID `gorm:"column:school_class_id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	SchoolClassName string `gorm:"column:school_class_name;type:varchar(80);not null;uniqueIndex" json:"name"`

	CreatedAt time.Time      `gorm:"column:school_class_created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:school_class_updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:school_class_deleted_at;index" json:"deleted_at,omitempty"`
}

func (SchoolClass) TableName() string { return "school_classes" }
