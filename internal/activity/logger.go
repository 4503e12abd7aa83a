package activity

import (
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Logger is the audit sink. Append failures are logged and swallowed: the
// lifecycle change an entry describes must not fail because the audit row
// could not be written.
type Logger struct {
	db *gorm.DB
}

func NewLogger(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

type Entry struct {
	UserID       uuid.UUID
	Action       string
	Entity       string
	EntityID     string
	Details      string
	DepartmentID *uuid.UUID
	LabID        *uuid.UUID
}

// Append writes one audit record, best-effort.
func (l *Logger) Append(e Entry) {
	record := ActivityLog{
		UserID:       e.UserID,
		Action:       e.Action,
		Entity:       e.Entity,
		EntityID:     e.EntityID,
		Details:      e.Details,
		DepartmentID: e.DepartmentID,
		LabID:        e.LabID,
	}
	if err := l.db.Create(&record).Error; err != nil {
		log.Printf("⚠️ Failed to append activity log (%s %s %s): %v", e.Action, e.Entity, e.EntityID, err)
	}
}
