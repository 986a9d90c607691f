package engine

import (
	"fmt"
	"time"

	"cellplan/internal/calendar"
	"cellplan/internal/dates"
	"cellplan/internal/models"
)

// workItem is one pending recomputation. When inherit is true the task's
// start date is overwritten with start (the value handed down by its
// parent); otherwise the stored start is used.
type workItem struct {
	id      int64
	inherit bool
	start   *time.Time
}

// Recalculate recomputes the end date of a task and pushes derived start
// dates through its descendants. The whole subtree is computed from reads
// first and committed as a single batch, so a failure never leaves part of
// the subtree updated.
func (e *Engine) Recalculate(taskID int64) error {
	updates, err := e.computeSubtree(workItem{id: taskID})
	if err != nil {
		return err
	}
	return e.store.ApplySchedule(updates, e.actor)
}

// RecalculateProject recalculates every root of a project. If any root
// lacks a start date the whole operation is aborted before a single write,
// and the error names the offending roots.
func (e *Engine) RecalculateProject(projectID int64) error {
	tasks, err := e.store.TasksByProject(projectID)
	if err != nil {
		return err
	}

	var roots []models.Task
	var missing []int64
	for _, t := range tasks {
		parentID, err := e.store.Parent(t.ID)
		if err != nil {
			return err
		}
		if parentID != nil {
			continue
		}
		roots = append(roots, t)
		if t.StartDate == nil {
			missing = append(missing, t.ID)
		}
	}
	if len(missing) > 0 {
		return &MissingRootStartError{ProjectID: projectID, RootIDs: missing}
	}

	var updates []models.ScheduleUpdate
	for _, root := range roots {
		sub, err := e.computeSubtree(workItem{id: root.ID})
		if err != nil {
			return err
		}
		updates = append(updates, sub...)
	}
	return e.store.ApplySchedule(updates, e.actor)
}

// computeSubtree walks the dependency forest breadth-first from one item
// and collects the date changes it implies. Nothing is written here. The
// worklist keeps the recursion depth off the call stack, so chain length
// is only bounded by memory.
func (e *Engine) computeSubtree(seed workItem) ([]models.ScheduleUpdate, error) {
	var updates []models.ScheduleUpdate
	queue := []workItem{seed}

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		task, err := e.store.GetTask(item.id)
		if err != nil {
			return nil, err
		}

		start := task.StartDate
		if item.inherit {
			start = item.start
		}

		// childStart is what the children inherit: the first working day
		// after this task's end, or nil when this task has no schedule.
		var end, childStart *time.Time
		switch {
		case task.Status == models.StatusCanceled:
			// Frozen: its own end clears, children become unscheduled.
		case start != nil:
			end = endDateFor(*start, task.Hours, task.Mode)
			if end != nil {
				next := calendar.NextWorkingDayAfter(*end, task.Mode)
				childStart = &next
			}
		}

		if update, changed := scheduleChange(task, item.inherit, start, end); changed {
			updates = append(updates, update)
		}

		children, err := e.store.Children(task.ID)
		if err != nil {
			return nil, err
		}
		for _, childID := range children {
			child, err := e.store.GetTask(childID)
			if err != nil {
				return nil, err
			}
			if child.Status == models.StatusCanceled {
				continue
			}
			if child.CustomStart && task.Status != models.StatusPending {
				// Manual override stays while the parent is done/canceled;
				// the child still recomputes from its own start.
				queue = append(queue, workItem{id: childID})
				continue
			}
			queue = append(queue, workItem{id: childID, inherit: true, start: childStart})
		}
	}
	return updates, nil
}

// scheduleChange builds the update for one task, or reports that the
// stored dates already match and nothing needs writing.
func scheduleChange(task *models.Task, writeStart bool, start, end *time.Time) (models.ScheduleUpdate, bool) {
	startChanged := writeStart && !sameDate(task.StartDate, start)
	endChanged := !sameDate(task.EndDate, end)
	if !startChanged && !endChanged {
		return models.ScheduleUpdate{}, false
	}

	note := ""
	if startChanged {
		note = fmt.Sprintf("updated start_date to %s", orNull(dates.FormatISO(start)))
	}
	if endChanged {
		if note != "" {
			note += ", "
		}
		note += fmt.Sprintf("updated end_date to %s", orNull(dates.FormatISO(end)))
	}
	return models.ScheduleUpdate{
		TaskID:     task.ID,
		WriteStart: writeStart,
		Start:      start,
		End:        end,
		Note:       note,
	}, true
}

func sameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
