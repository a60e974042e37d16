package models

import "time"

// CheckIn stores a single check-in row. Rows are append-only: the
// application never updates or deletes them.
type CheckIn struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	EventID         string    `gorm:"size:128;not null;index;index:idx_checkins_key,unique" json:"event_id"`
	Category        string    `gorm:"size:64;not null;index:idx_checkins_key,unique" json:"category"`
	ParticipantName string    `gorm:"size:128;not null;index;index:idx_checkins_key,unique" json:"participant_name"`
	ActivityDate    time.Time `gorm:"type:date;not null;index;index:idx_checkins_key,unique" json:"activity_date"`
	CheckedInAt     time.Time `gorm:"not null" json:"checked_in_at"`
	Points          int       `gorm:"not null;default:0" json:"points"`
	Note            string    `gorm:"size:255" json:"note"`
}

// DateString renders the activity date the way it is keyed and exported.
func (c *CheckIn) DateString() string {
	return c.ActivityDate.Format("2006-01-02")
}
