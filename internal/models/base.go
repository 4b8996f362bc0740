package models

import "time"

// BaseModel is the shared column set for all tables. Rows are hard-deleted;
// cascade constraints depend on DELETE actually reaching the database.
type BaseModel struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
