// Package engine implements the scheduling core: end-date computation,
// date propagation through the dependency forest, the cycle guard and the
// collision detector. It talks to the record store through the Store
// interface and attributes every mutation to an explicit actor.
package engine

import (
	"errors"
	"fmt"
	"time"

	"cellplan/internal/calendar"
	"cellplan/internal/dates"
	"cellplan/internal/models"
)

var (
	// ErrCycle indicates a dependency link that would close a cycle.
	ErrCycle = errors.New("dependency would create a cycle")
	// ErrStartManaged indicates a direct start-date edit on a task whose
	// start is owned by an active parent.
	ErrStartManaged = errors.New("start date is managed by the parent task")
	// ErrMissingRootStart indicates a project recalculation that found
	// roots without a start date.
	ErrMissingRootStart = errors.New("root tasks are missing a start date")
	// ErrInvalidMode indicates an unknown capacity mode.
	ErrInvalidMode = errors.New("invalid capacity mode")
	// ErrInvalidStatus indicates an unknown task status.
	ErrInvalidStatus = errors.New("invalid status")
)

// MissingRootStartError lists the roots that blocked a project
// recalculation.
type MissingRootStartError struct {
	ProjectID int64
	RootIDs   []int64
}

func (e *MissingRootStartError) Error() string {
	return fmt.Sprintf("project %d: roots missing a start date: %v", e.ProjectID, e.RootIDs)
}

func (e *MissingRootStartError) Unwrap() error {
	return ErrMissingRootStart
}

// Store is the record store the engine runs on. *db.DB implements it; the
// engine tests use an in-memory fake.
type Store interface {
	GetTask(id int64) (*models.Task, error)
	InsertTask(t *models.Task) (int64, error)
	UpdateTaskField(id int64, field string, value any) error
	DeleteTask(id int64) error
	TasksByProject(projectID int64) ([]models.Task, error)
	DatedTasks() ([]models.Task, error)
	DatedTasksOnWorkplace(workplaceID, excludeID int64) ([]models.Task, error)
	Parent(taskID int64) (*int64, error)
	Children(parentID int64) ([]int64, error)
	SetParent(taskID, parentID int64) error
	RemoveParent(taskID int64) error
	ApplySchedule(updates []models.ScheduleUpdate, actor string) error
	AppendChange(taskID int64, description, actor string) error
}

// Engine ties the scheduling operations to a store and an acting user.
type Engine struct {
	store Store
	actor string
}

// New creates an engine. The actor is recorded on every audit entry.
func New(store Store, actor string) *Engine {
	if actor == "" {
		actor = "system"
	}
	return &Engine{store: store, actor: actor}
}

// GetTask retrieves a task.
func (e *Engine) GetTask(id int64) (*models.Task, error) {
	return e.store.GetTask(id)
}

// Parent returns a task's parent id, or nil for roots.
func (e *Engine) Parent(id int64) (*int64, error) {
	return e.store.Parent(id)
}

// Children returns a task's direct children.
func (e *Engine) Children(id int64) ([]int64, error) {
	return e.store.Children(id)
}

// AddTask validates and inserts a task, records its parent edge and
// schedules the affected subtree. The caller picks the workplace; the
// engine only dates what was chosen.
func (e *Engine) AddTask(t models.Task, parentID *int64) (int64, error) {
	if t.Mode == "" {
		t.Mode = models.Standard
	}
	if !t.Mode.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMode, t.Mode)
	}
	if t.Status == "" {
		t.Status = models.StatusPending
	}
	if !t.Status.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidStatus, t.Status)
	}
	if t.BodiesCount == 0 {
		t.BodiesCount = 1
	}
	if t.StartDate != nil {
		t.CustomStart = parentID == nil || t.CustomStart
	}

	if parentID != nil {
		if _, err := e.store.GetTask(*parentID); err != nil {
			return 0, fmt.Errorf("parent: %w", err)
		}
		// The new task is not stored yet, so the edge itself cannot close a
		// cycle; still refuse to attach under an already-corrupt chain.
		cyclic, err := e.HasCycle(*parentID)
		if err != nil {
			return 0, err
		}
		if cyclic {
			return 0, fmt.Errorf("parent %d: %w", *parentID, ErrCycle)
		}
	}

	id, err := e.store.InsertTask(&t)
	if err != nil {
		return 0, err
	}
	if err := e.store.AppendChange(id, "created task", e.actor); err != nil {
		return 0, err
	}

	if parentID != nil {
		if err := e.store.SetParent(id, *parentID); err != nil {
			return 0, err
		}
		// Propagating from the parent hands the new child its start date.
		return id, e.Recalculate(*parentID)
	}
	if t.StartDate != nil {
		return id, e.Recalculate(id)
	}
	return id, nil
}

// SetTaskParent re-links an existing task under a new parent. The link is
// validated with the descendant-reachability check before anything is
// written.
func (e *Engine) SetTaskParent(taskID, parentID int64) error {
	if _, err := e.store.GetTask(taskID); err != nil {
		return err
	}
	if _, err := e.store.GetTask(parentID); err != nil {
		return fmt.Errorf("parent: %w", err)
	}
	cyclic, err := e.LinkWouldCycle(taskID, parentID)
	if err != nil {
		return err
	}
	if cyclic {
		return fmt.Errorf("linking %d under %d: %w", taskID, parentID, ErrCycle)
	}
	if err := e.store.SetParent(taskID, parentID); err != nil {
		return err
	}
	if err := e.store.AppendChange(taskID, fmt.Sprintf("attached under task %d", parentID), e.actor); err != nil {
		return err
	}
	return e.Recalculate(parentID)
}

// DetachTask removes a task's parent edge, making it a root. Its current
// dates are left alone until the next manual edit.
func (e *Engine) DetachTask(taskID int64) error {
	if err := e.store.RemoveParent(taskID); err != nil {
		return err
	}
	return e.store.AppendChange(taskID, "detached from parent", e.actor)
}

// SetStartDate sets a task's start date by hand. Refused while the task
// has a parent in the pending state: such starts are owned by propagation.
// A nil date unschedules the task.
func (e *Engine) SetStartDate(taskID int64, d *time.Time) error {
	parentID, err := e.store.Parent(taskID)
	if err != nil {
		return err
	}
	if parentID != nil {
		parent, err := e.store.GetTask(*parentID)
		if err != nil {
			return err
		}
		if parent.Status == models.StatusPending {
			return fmt.Errorf("task %d: %w", taskID, ErrStartManaged)
		}
	}
	if err := e.store.UpdateTaskField(taskID, "start_date", d); err != nil {
		return err
	}
	if err := e.store.UpdateTaskField(taskID, "custom_start", d != nil); err != nil {
		return err
	}
	if err := e.store.AppendChange(taskID,
		fmt.Sprintf("updated start_date to %s", orNull(dates.FormatISO(d))), e.actor); err != nil {
		return err
	}
	return e.Recalculate(taskID)
}

// SetHours updates a task's total effort and reschedules its subtree.
func (e *Engine) SetHours(taskID int64, hours float64) error {
	return e.setAndRecalculate(taskID, "hours", hours)
}

// SetCapacityMode updates a task's capacity mode and reschedules its
// subtree.
func (e *Engine) SetCapacityMode(taskID int64, mode models.CapacityMode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
	return e.setAndRecalculate(taskID, "capacity_mode", string(mode))
}

// SetStatus updates a task's status and reschedules its subtree.
// Cancelling clears the task's end date and unschedules its non-canceled
// children.
func (e *Engine) SetStatus(taskID int64, status models.Status) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return e.setAndRecalculate(taskID, "status", string(status))
}

// SetWorkplace moves a task to another workplace. Dates are unaffected;
// collisions are the caller's concern, checked before or after the move.
func (e *Engine) SetWorkplace(taskID, workplaceID int64) error {
	if err := e.store.UpdateTaskField(taskID, "workplace_id", workplaceID); err != nil {
		return err
	}
	return e.store.AppendChange(taskID,
		fmt.Sprintf("updated workplace_id to %d", workplaceID), e.actor)
}

// SetNotes updates a task's free-text notes.
func (e *Engine) SetNotes(taskID int64, notes string) error {
	if err := e.store.UpdateTaskField(taskID, "notes", notes); err != nil {
		return err
	}
	return e.store.AppendChange(taskID, "updated notes", e.actor)
}

// DeleteTask removes a task, its dependency edges and its audit trail.
// Children of the deleted task become roots.
func (e *Engine) DeleteTask(taskID int64) error {
	return e.store.DeleteTask(taskID)
}

func (e *Engine) setAndRecalculate(taskID int64, field string, value any) error {
	if err := e.store.UpdateTaskField(taskID, field, value); err != nil {
		return err
	}
	if err := e.store.AppendChange(taskID,
		fmt.Sprintf("updated %s to %v", field, value), e.actor); err != nil {
		return err
	}
	return e.Recalculate(taskID)
}

// endDateFor computes a task's end date from an explicit start, nil when
// the effort is non-positive.
func endDateFor(start time.Time, hours float64, mode models.CapacityMode) *time.Time {
	end := calendar.CalculateEndDate(start, hours, mode)
	if end.IsZero() {
		return nil
	}
	return &end
}

func orNull(s string) string {
	if s == "" {
		return "null"
	}
	return s
}
