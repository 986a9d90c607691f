package models

import "time"

// ScheduleUpdate is one computed date change waiting to be committed.
// Propagation produces a batch of these for a whole subtree and the store
// applies the batch atomically.
type ScheduleUpdate struct {
	TaskID     int64
	WriteStart bool // whether Start overwrites the stored start_date
	Start      *time.Time
	End        *time.Time
	Note       string // audit description for the change log
}
