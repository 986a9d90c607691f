package engine

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"cellplan/internal/models"
)

// memStore is an in-memory Store for engine tests. It mirrors the record
// sets of the real store: tasks by id, one optional parent per task, and
// an append-only change log.
type memStore struct {
	nextID  int64
	tasks   map[int64]*models.Task
	parents map[int64]int64
	changes []models.ChangeEntry
	batches [][]models.ScheduleUpdate

	failReads bool // when set, every read returns an error
}

var errStoreDown = errors.New("store unavailable")

func newMemStore() *memStore {
	return &memStore{
		tasks:   make(map[int64]*models.Task),
		parents: make(map[int64]int64),
	}
}

func (s *memStore) GetTask(id int64) (*models.Task, error) {
	if s.failReads {
		return nil, errStoreDown
	}
	t, ok := s.tasks[id]
	if !ok {
		return nil, fmt.Errorf("task %d not found", id)
	}
	copied := *t
	return &copied, nil
}

func (s *memStore) InsertTask(t *models.Task) (int64, error) {
	s.nextID++
	copied := *t
	copied.ID = s.nextID
	s.tasks[copied.ID] = &copied
	return copied.ID, nil
}

func (s *memStore) UpdateTaskField(id int64, field string, value any) error {
	t, ok := s.tasks[id]
	if !ok {
		return fmt.Errorf("task %d not found", id)
	}
	switch field {
	case "hours":
		t.Hours = value.(float64)
	case "capacity_mode":
		t.Mode = models.CapacityMode(value.(string))
	case "start_date":
		t.StartDate = cloneDate(value.(*time.Time))
	case "end_date":
		t.EndDate = cloneDate(value.(*time.Time))
	case "status":
		t.Status = models.Status(value.(string))
	case "notes":
		t.Notes = value.(string)
	case "workplace_id":
		t.WorkplaceID = value.(int64)
	case "custom_start":
		t.CustomStart = value.(bool)
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	return nil
}

func (s *memStore) DeleteTask(id int64) error {
	delete(s.tasks, id)
	delete(s.parents, id)
	for child, parent := range s.parents {
		if parent == id {
			delete(s.parents, child)
		}
	}
	kept := s.changes[:0]
	for _, c := range s.changes {
		if c.TaskID != id {
			kept = append(kept, c)
		}
	}
	s.changes = kept
	return nil
}

func (s *memStore) TasksByProject(projectID int64) ([]models.Task, error) {
	if s.failReads {
		return nil, errStoreDown
	}
	var out []models.Task
	for _, t := range s.tasks {
		if t.ProjectID == projectID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) DatedTasks() ([]models.Task, error) {
	if s.failReads {
		return nil, errStoreDown
	}
	var out []models.Task
	for _, t := range s.tasks {
		if t.Scheduled() {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) DatedTasksOnWorkplace(workplaceID, excludeID int64) ([]models.Task, error) {
	if s.failReads {
		return nil, errStoreDown
	}
	var out []models.Task
	for _, t := range s.tasks {
		if t.WorkplaceID == workplaceID && t.ID != excludeID && t.Scheduled() {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) Parent(taskID int64) (*int64, error) {
	if s.failReads {
		return nil, errStoreDown
	}
	parent, ok := s.parents[taskID]
	if !ok {
		return nil, nil
	}
	return &parent, nil
}

func (s *memStore) Children(parentID int64) ([]int64, error) {
	if s.failReads {
		return nil, errStoreDown
	}
	var ids []int64
	for child, parent := range s.parents {
		if parent == parentID {
			ids = append(ids, child)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (s *memStore) SetParent(taskID, parentID int64) error {
	s.parents[taskID] = parentID
	return nil
}

func (s *memStore) RemoveParent(taskID int64) error {
	delete(s.parents, taskID)
	return nil
}

func (s *memStore) ApplySchedule(updates []models.ScheduleUpdate, actor string) error {
	s.batches = append(s.batches, updates)
	for _, u := range updates {
		t, ok := s.tasks[u.TaskID]
		if !ok {
			return fmt.Errorf("task %d not found", u.TaskID)
		}
		if u.WriteStart {
			t.StartDate = cloneDate(u.Start)
		}
		t.EndDate = cloneDate(u.End)
		s.changes = append(s.changes, models.ChangeEntry{
			TaskID:      u.TaskID,
			ChangeTime:  time.Now(),
			Description: u.Note,
			ChangedBy:   actor,
		})
	}
	return nil
}

func (s *memStore) AppendChange(taskID int64, description, actor string) error {
	s.changes = append(s.changes, models.ChangeEntry{
		TaskID:      taskID,
		ChangeTime:  time.Now(),
		Description: description,
		ChangedBy:   actor,
	})
	return nil
}

// appliedUpdates counts the schedule updates across all committed batches.
func (s *memStore) appliedUpdates() int {
	n := 0
	for _, b := range s.batches {
		n += len(b)
	}
	return n
}

func cloneDate(d *time.Time) *time.Time {
	if d == nil {
		return nil
	}
	copied := *d
	return &copied
}
