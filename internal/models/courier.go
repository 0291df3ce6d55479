package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Courier struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"not null;uniqueIndex:idx_couriers_name_lower,expression:lower(name)"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *Courier) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
