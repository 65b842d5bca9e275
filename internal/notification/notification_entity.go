package notification

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_notification_user_created"`
	Kind        string     `gorm:"type:varchar(50);not null"`
	Title       string     `gorm:"size:200;not null"`
	Body        string     `gorm:"type:text;not null"`
	ReferenceID string     `gorm:"size:64"`
	DedupKey    string     `gorm:"size:200;not null;uniqueIndex:uq_notification_dedup"`
	ReadAt      *time.Time `gorm:"index"`
	CreatedAt   time.Time  `gorm:"autoCreateTime;index:idx_notification_user_created"`
}
