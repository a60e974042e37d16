package storage

import "errors"

// ErrDuplicateCheckIn is returned by Append when a record with the same
// (event, category, date, name) key already exists.
var ErrDuplicateCheckIn = errors.New("already checked in for this event, category and date")
