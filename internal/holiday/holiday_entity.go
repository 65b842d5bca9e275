package holiday

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Holiday struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name        string         `gorm:"size:100;not null;uniqueIndex:uq_holiday_date_name,priority:2,where:deleted_at IS NULL"`
	Date        time.Time      `gorm:"type:date;not null;index;uniqueIndex:uq_holiday_date_name,priority:1,where:deleted_at IS NULL"`
	Description string         `gorm:"type:text"`
	Recurring   bool           `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}
