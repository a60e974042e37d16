package storage

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/ruei-yu/activity-checkin-points/models"
)

// Filter narrows Query and TotalPoints results. Zero values mean "no
// restriction". From/To bound the activity date, both inclusive.
type Filter struct {
	EventID     string
	Category    string
	Name        string
	Keyword     string // substring match against the event id
	From        *time.Time
	To          *time.Time
	NewestFirst bool
}

// LeaderboardEntry is one row of the points ranking.
type LeaderboardEntry struct {
	ParticipantName string `json:"participant_name"`
	TotalPoints     int    `json:"total_points"`
	CheckIns        int    `json:"check_ins"`
}

// CheckInStore is the single owner of check-in records: an append-only log
// with a uniqueness guard plus the read-only aggregations computed from it.
type CheckInStore interface {
	Append(record *models.CheckIn) error
	IsDuplicate(eventID, category string, date time.Time, name string) (bool, error)
	Query(f Filter) ([]models.CheckIn, error)
	Leaderboard(limit int) ([]LeaderboardEntry, error)
	TotalPoints(name string, f Filter) (int, error)
	Count() (int64, error)
}

// GormCheckInStore implements CheckInStore on a gorm-managed table.
type GormCheckInStore struct {
	db *gorm.DB
}

func NewGormCheckInStore(db *gorm.DB) *GormCheckInStore {
	return &GormCheckInStore{db: db}
}

// Append records a check-in. The duplicate guard runs first inside the same
// transaction as the insert, so a rejected call writes nothing. The
// composite unique index catches the remaining race between two
// near-simultaneous appends under the same key.
func (s *GormCheckInStore) Append(record *models.CheckIn) error {
	record.ParticipantName = strings.TrimSpace(record.ParticipantName)
	record.ActivityDate = DateOnly(record.ActivityDate)
	if record.CheckedInAt.IsZero() {
		record.CheckedInAt = time.Now()
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		dup, err := isDuplicate(tx, record.EventID, record.Category, record.ActivityDate, record.ParticipantName)
		if err != nil {
			return err
		}
		if dup {
			return ErrDuplicateCheckIn
		}
		if err := tx.Create(record).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateCheckIn
			}
			return err
		}
		return nil
	})
}

// IsDuplicate reports whether a record with the exact four-part key already
// exists. Comparison is literal apart from name trimming.
func (s *GormCheckInStore) IsDuplicate(eventID, category string, date time.Time, name string) (bool, error) {
	return isDuplicate(s.db, eventID, category, DateOnly(date), strings.TrimSpace(name))
}

func isDuplicate(tx *gorm.DB, eventID, category string, date time.Time, name string) (bool, error) {
	var count int64
	err := tx.Model(&models.CheckIn{}).
		Where("event_id = ? AND category = ? AND activity_date = ? AND participant_name = ?",
			eventID, category, date, name).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Query returns records matching the filter in insertion order, or newest
// first when requested. An empty result is not an error.
func (s *GormCheckInStore) Query(f Filter) ([]models.CheckIn, error) {
	q := applyFilter(s.db.Model(&models.CheckIn{}), f)
	if f.NewestFirst {
		q = q.Order("checked_in_at DESC, id DESC")
	} else {
		q = q.Order("id ASC")
	}

	var records []models.CheckIn
	if err := q.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Leaderboard groups all records by participant and sums points, descending
// by total. Ties go to whoever reached the total first, i.e. the earlier
// latest check-in. limit <= 0 returns every participant.
func (s *GormCheckInStore) Leaderboard(limit int) ([]LeaderboardEntry, error) {
	q := s.db.Model(&models.CheckIn{}).
		Select("participant_name, SUM(points) AS total_points, COUNT(*) AS check_ins, MAX(checked_in_at) AS reached_at").
		Group("participant_name").
		Order("total_points DESC, reached_at ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var entries []LeaderboardEntry
	if err := q.Scan(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// TotalPoints sums awarded points for one participant under the filter.
func (s *GormCheckInStore) TotalPoints(name string, f Filter) (int, error) {
	f.Name = strings.TrimSpace(name)
	var total int64
	err := applyFilter(s.db.Model(&models.CheckIn{}), f).
		Select("COALESCE(SUM(points), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return int(total), nil
}

// Count returns the number of stored records.
func (s *GormCheckInStore) Count() (int64, error) {
	var count int64
	err := s.db.Model(&models.CheckIn{}).Count(&count).Error
	return count, err
}

func applyFilter(q *gorm.DB, f Filter) *gorm.DB {
	if f.EventID != "" {
		q = q.Where("event_id = ?", f.EventID)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Name != "" {
		q = q.Where("participant_name = ?", f.Name)
	}
	if f.Keyword != "" {
		q = q.Where("event_id LIKE ?", "%"+f.Keyword+"%")
	}
	if f.From != nil {
		q = q.Where("activity_date >= ?", DateOnly(*f.From))
	}
	if f.To != nil {
		q = q.Where("activity_date <= ?", DateOnly(*f.To))
	}
	return q
}

// DateOnly truncates a timestamp to local midnight, the granularity the
// uniqueness key and the date filters work at.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
