package models

import "time"

// CapacityMode is the daily-throughput regime for a task.
type CapacityMode string

const (
	// Standard counts 7.5 hours per weekday; weekends and holidays are skipped.
	Standard CapacityMode = "standard"
	// Continuous counts 24 hours every day; only holidays are skipped.
	Continuous CapacityMode = "continuous"
)

// HoursPerDay returns the daily capacity for the mode.
func (m CapacityMode) HoursPerDay() float64 {
	if m == Continuous {
		return 24
	}
	return 7.5
}

// Valid reports whether m is a known capacity mode.
func (m CapacityMode) Valid() bool {
	return m == Standard || m == Continuous
}

// Status is the lifecycle state of a task.
type Status string

const (
	StatusPending  Status = "pending"
	StatusDone     Status = "done"
	StatusCanceled Status = "canceled"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusDone || s == StatusCanceled
}

// Project groups tasks that belong to one job order.
type Project struct {
	ID   int64
	Name string
}

// Workplace is a named work-cell that tasks occupy. Two tasks whose date
// ranges overlap on the same workplace are a collision.
type Workplace struct {
	ID   int64
	Name string
}

// Task is a single unit of work on a workplace.
//
// StartDate and EndDate are calendar dates at midnight UTC. EndDate is always
// derived from StartDate, Hours and Mode; it is nil whenever StartDate is nil
// or the task is canceled. CustomStart marks a start date that was set by
// hand rather than pushed down from a parent; propagation only honors it
// while the parent is done or canceled.
type Task struct {
	ID          int64
	ProjectID   int64
	WorkplaceID int64
	Hours       float64
	Mode        CapacityMode
	StartDate   *time.Time
	EndDate     *time.Time
	Status      Status
	Notes       string
	BodiesCount int
	IsActive    bool
	CustomStart bool
}

// Scheduled reports whether the task has both dates set.
func (t *Task) Scheduled() bool {
	return t.StartDate != nil && t.EndDate != nil
}

// ChangeEntry is one append-only audit record for a task mutation.
type ChangeEntry struct {
	ID          string
	TaskID      int64
	ChangeTime  time.Time
	Description string
	ChangedBy   string
}
