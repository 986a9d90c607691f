package engine

import (
	"sort"
	"time"

	"cellplan/internal/models"
)

// overlaps is the inclusive interval test: two ranges collide unless one
// ends before the other starts.
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !(aEnd.Before(bStart) || aStart.After(bEnd))
}

// CollidingProjects returns the distinct project ids of other tasks that
// occupy the same workplace in a range overlapping the given task's.
// A task without both dates collides with nothing. Store read failures
// surface as errors, never as an empty result.
func (e *Engine) CollidingProjects(taskID int64) ([]int64, error) {
	task, err := e.store.GetTask(taskID)
	if err != nil {
		return nil, err
	}
	if !task.Scheduled() {
		return nil, nil
	}
	others, err := e.store.DatedTasksOnWorkplace(task.WorkplaceID, task.ID)
	if err != nil {
		return nil, err
	}
	return collectProjects(others, *task.StartDate, *task.EndDate), nil
}

// CollidingProjectsSimulated runs the same test for a hypothetical task
// occupying a workplace over [start, end], used to warn before insertion.
func (e *Engine) CollidingProjectsSimulated(workplaceID int64, start, end time.Time) ([]int64, error) {
	others, err := e.store.DatedTasksOnWorkplace(workplaceID, 0)
	if err != nil {
		return nil, err
	}
	return collectProjects(others, start, end), nil
}

func collectProjects(tasks []models.Task, start, end time.Time) []int64 {
	seen := map[int64]bool{}
	for _, other := range tasks {
		if overlaps(start, end, *other.StartDate, *other.EndDate) {
			seen[other.ProjectID] = true
		}
	}
	projects := make([]int64, 0, len(seen))
	for id := range seen {
		projects = append(projects, id)
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i] < projects[j] })
	return projects
}

// MarkAllCollisions reports, for every dated task, whether it collides
// with any other dated task. Tasks are grouped by workplace and swept in
// start-date order, so the cost stays near n log n instead of comparing
// every pair.
func (e *Engine) MarkAllCollisions() (map[int64]bool, error) {
	tasks, err := e.store.DatedTasks()
	if err != nil {
		return nil, err
	}

	marks := make(map[int64]bool, len(tasks))
	byWorkplace := map[int64][]models.Task{}
	for _, t := range tasks {
		marks[t.ID] = false
		byWorkplace[t.WorkplaceID] = append(byWorkplace[t.WorkplaceID], t)
	}

	for _, group := range byWorkplace {
		sort.Slice(group, func(i, j int) bool {
			return group[i].StartDate.Before(*group[j].StartDate)
		})
		for i := range group {
			for j := i + 1; j < len(group); j++ {
				if group[j].StartDate.After(*group[i].EndDate) {
					break
				}
				marks[group[i].ID] = true
				marks[group[j].ID] = true
			}
		}
	}
	return marks, nil
}
