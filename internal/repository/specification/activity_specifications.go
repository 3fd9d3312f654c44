package specification

import "gorm.io/gorm"

type ByEventType struct {
	EventType string
}

func (s ByEventType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("event_type = ?", s.EventType)
}
