package engine

import (
	"errors"
	"testing"
	"time"

	"cellplan/internal/models"
)

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

// addStored puts a task directly into the store, bypassing the engine.
func addStored(s *memStore, t models.Task) int64 {
	if t.Mode == "" {
		t.Mode = models.Standard
	}
	if t.Status == "" {
		t.Status = models.StatusPending
	}
	id, _ := s.InsertTask(&t)
	return id
}

func mustRecalc(t *testing.T, e *Engine, id int64) {
	t.Helper()
	if err := e.Recalculate(id); err != nil {
		t.Fatalf("Recalculate(%d): %v", id, err)
	}
}

func taskDates(t *testing.T, s *memStore, id int64) (start, end *time.Time) {
	t.Helper()
	task, err := s.GetTask(id)
	if err != nil {
		t.Fatalf("GetTask(%d): %v", id, err)
	}
	return task.StartDate, task.EndDate
}

func wantDate(t *testing.T, label string, got *time.Time, want *time.Time) {
	t.Helper()
	if !sameDate(got, want) {
		t.Fatalf("%s = %v, want %v", label, fmtDate(got), fmtDate(want))
	}
}

func fmtDate(d *time.Time) string {
	if d == nil {
		return "null"
	}
	return d.Format("2006-01-02")
}

// ---------------------------------------------------------------------------
// Single-task end dates
// ---------------------------------------------------------------------------

func TestRecalculateComputesEndDate(t *testing.T) {
	s := newMemStore()
	id := addStored(s, models.Task{ProjectID: 1, WorkplaceID: 1, Hours: 15,
		Mode: models.Standard, StartDate: day(2026, time.January, 5)})
	e := New(s, "tester")

	mustRecalc(t, e, id)

	_, end := taskDates(t, s, id)
	wantDate(t, "end", end, day(2026, time.January, 6))
}

func TestRecalculateContinuousMode(t *testing.T) {
	s := newMemStore()
	id := addStored(s, models.Task{ProjectID: 1, WorkplaceID: 1, Hours: 15,
		Mode: models.Continuous, StartDate: day(2026, time.January, 5)})
	e := New(s, "tester")

	mustRecalc(t, e, id)

	_, end := taskDates(t, s, id)
	wantDate(t, "end", end, day(2026, time.January, 5))
}

func TestRecalculateWithoutStartClearsEnd(t *testing.T) {
	s := newMemStore()
	id := addStored(s, models.Task{ProjectID: 1, WorkplaceID: 1, Hours: 15,
		EndDate: day(2026, time.January, 6)})
	e := New(s, "tester")

	mustRecalc(t, e, id)

	_, end := taskDates(t, s, id)
	wantDate(t, "end", end, nil)
}

// ---------------------------------------------------------------------------
// Parent-to-child propagation
// ---------------------------------------------------------------------------

func TestPropagationHandsChildNextWorkingDay(t *testing.T) {
	s := newMemStore()
	parent := addStored(s, models.Task{ProjectID: 1, WorkplaceID: 1, Hours: 15,
		StartDate: day(2026, time.January, 5)})
	child := addStored(s, models.Task{ProjectID: 1, WorkplaceID: 2, Hours: 7.5})
	s.SetParent(child, parent)
	e := New(s, "tester")

	mustRecalc(t, e, parent)

	start, end := taskDates(t, s, child)
	wantDate(t, "child start", start, day(2026, time.January, 7))
	wantDate(t, "child end", end, day(2026, time.January, 7))
}

func TestPropagationReachesGrandchildren(t *testing.T) {
	s := newMemStore()
	root := addStored(s, models.Task{ProjectID: 1, WorkplaceID: 1, Hours: 7.5,
		StartDate: day(2026, time.January, 5)})
	mid := addStored(s, models.Task{ProjectID: 1, WorkplaceID: 1, Hours: 7.5})
	leaf := addStored(s, models.Task{ProjectID: 1, WorkplaceID: 1, Hours: 7.5})
	s.SetParent(mid, root)
	s.SetParent(leaf, mid)
	e := New(s, "tester")

	mustRecalc(t, e, root)

	start, _ := taskDates(t, s, mid)
	wantDate(t, "mid start", start, day(2026, time.January, 6))
	start, _ = taskDates(t, s, leaf)
	wantDate(t, "leaf start", start, day(2026, time.January, 7))
}

func TestPropagationFanOut(t *testing.T) {
	// A fork: both children inherit the same derived start.
	s := newMemStore()
	parent := addStored(s, models.Task{ProjectID: 1, WorkplaceID: 1, Hours: 15,
		StartDate: day(2026, time.January, 5)})
	a := addStored(s, models.Task{ProjectID: 1, WorkplaceID: 2, Hours: 7.5})
	b := addStored(s, models.Task{ProjectID: 1, WorkplaceID: 3, Hours: 30})
	s.SetParent(a, parent)
	s.SetParent(b, parent)
	e := New(s, "tester")

	mustRecalc(t, e, parent)

	start, _ := taskDates(t, s, a)
	wantDate(t, "child a start", start, day(2026, time.January, 7))
	start, end := taskDates(t, s, b)
	wantDate(t, "child b start", start, day(2026, time.January, 7))
	wantDate(t, "child b end", end, day(2026, time.January, 12)) // 4 working days, over the weekend
}

func TestCancelClearsOwnEndAndChildStarts(t *testing.T) {
	s := newMemStore()
	parent := addStored(s, models.Task{ProjectID: 1, WorkplaceID: 1, Hours: 15,
		StartDate: day(2026, time.January, 5), Status: models.StatusCanceled})
	child := addStored(s, models.Task{ProjectID: 1, WorkplaceID: 2, Hours: 7.5,
		StartDate: day(2026, time.January, 7), EndDate: day(2026, time.January, 7)})
	s.SetParent(child, parent)
	e := New(s, "tester")

	mustRecalc(t, e, parent)

	_, end := taskDates(t, s, parent)
	wantDate(t, "parent end", end, nil)
	start, end := taskDates(t, s, child)
	wantDate(t, "child start", start, nil)
	wantDate(t, "child end", end, nil)
}

func TestCanceledChildIsFrozen(t *testing.T) {
	s := newMemStore()
	parent := addStored(s, models.Task{ProjectID: 1, WorkplaceID: 1, Hours: 15,
		StartDate: day(2026, time.January, 5)})
	child := addStored(s, models.Task{ProjectID: 1, WorkplaceID: 2, Hours: 7.5,
		Status: models.StatusCanceled, StartDate: day(2026, time.March, 2), EndDate: day(2026, time.March, 2)})
	s.SetParent(child, parent)
	e := New(s, "tester")

	mustRecalc(t, e, parent)

	start, end := taskDates(t, s, child)
	wantDate(t, "frozen child start", start, day(2026, time.March, 2))
	wantDate(t, "frozen child end", end, day(2026, time.March, 2))
}

func TestCustomStartHonoredWhileParentDone(t *testing.T) {
	s := newMemStore()
	parent := addStored(s, models.Task{ProjectID: 1, WorkplaceID: 1, Hours: 15,
		StartDate: day(2026, time.January, 5), Status: models.StatusDone})
	child := addStored(s, models.Task{ProjectID: 1, WorkplaceID: 2, Hours: 7.5,
		StartDate: day(2026, time.February, 2), CustomStart: true})
	s.SetParent(child, parent)
	e := New(s, "tester")

	mustRecalc(t, e, parent)

	start, end := taskDates(t, s, child)
	wantDate(t, "child start", start, day(2026, time.February, 2))
	wantDate(t, "child end", end, day(2026, time.February, 2))
}

func TestCustomStartOverwrittenWhileParentPending(t *testing.T) {
	s := newMemStore()
	parent := addStored(s, models.Task{ProjectID: 1, WorkplaceID: 1, Hours: 15,
		StartDate: day(2026, time.January, 5)})
	child := addStored(s, models.Task{ProjectID: 1, WorkplaceID: 2, Hours: 7.5,
		StartDate: day(2026, time.February, 2), CustomStart: true})
	s.SetParent(child, parent)
	e := New(s, "tester")

	mustRecalc(t, e, parent)

	start, _ := taskDates(t, s, child)
	wantDate(t, "child start", start, day(2026, time.January, 7))
}

func TestPropagationIdempotent(t *testing.T) {
	s := newMemStore()
	root := addStored(s, models.Task{ProjectID: 1, WorkplaceID: 1, Hours: 15,
		StartDate: day(2026, time.January, 5)})
	child := addStored(s, models.Task{ProjectID: 1, WorkplaceID: 2, Hours: 7.5})
	s.SetParent(child, root)
	e := New(s, "tester")

	mustRecalc(t, e, root)
	first := s.appliedUpdates()
	if first == 0 {
		t.Fatal("first pass should write something")
	}

	mustRecalc(t, e, root)
	if s.appliedUpdates() != first {
		t.Fatalf("second pass wrote %d extra updates, want 0", s.appliedUpdates()-first)
	}
}

func TestDeepChainPropagates(t *testing.T) {
	// Long dependency chains must not be limited by call-stack depth.
	s := newMemStore()
	root := addStored(s, models.Task{ProjectID: 1, WorkplaceID: 1, Hours: 1,
		Mode: models.Continuous, StartDate: day(2026, time.January, 1)})
	prev := root
	const depth = 500
	for i := 0; i < depth; i++ {
		id := addStored(s, models.Task{ProjectID: 1, WorkplaceID: 1, Hours: 1,
			Mode: models.Continuous})
		s.SetParent(id, prev)
		prev = id
	}
	e := New(s, "tester")

	mustRecalc(t, e, root)

	start, end := taskDates(t, s, prev)
	if start == nil || end == nil {
		t.Fatal("tail of the chain should be scheduled")
	}
}

// ---------------------------------------------------------------------------
// Project-wide recalculation
// ---------------------------------------------------------------------------

func TestRecalculateProjectAbortsOnMissingRootStart(t *testing.T) {
	s := newMemStore()
	dated := addStored(s, models.Task{ProjectID: 1, WorkplaceID: 1, Hours: 15,
		StartDate: day(2026, time.January, 5)})
	undated := addStored(s, models.Task{ProjectID: 1, WorkplaceID: 2, Hours: 7.5})
	e := New(s, "tester")

	err := e.RecalculateProject(1)
	if !errors.Is(err, ErrMissingRootStart) {
		t.Fatalf("want ErrMissingRootStart, got %v", err)
	}
	var missing *MissingRootStartError
	if !errors.As(err, &missing) {
		t.Fatal("error should carry the offending root ids")
	}
	if len(missing.RootIDs) != 1 || missing.RootIDs[0] != undated {
		t.Fatalf("missing roots = %v, want [%d]", missing.RootIDs, undated)
	}
	if s.appliedUpdates() != 0 {
		t.Fatal("aborted recalculation must not write anything")
	}
	_, end := taskDates(t, s, dated)
	wantDate(t, "dated root end", end, nil)
}

func TestRecalculateProjectSchedulesAllRoots(t *testing.T) {
	s := newMemStore()
	rootA := addStored(s, models.Task{ProjectID: 1, WorkplaceID: 1, Hours: 15,
		StartDate: day(2026, time.January, 5)})
	rootB := addStored(s, models.Task{ProjectID: 1, WorkplaceID: 2, Hours: 7.5,
		StartDate: day(2026, time.January, 8)})
	childA := addStored(s, models.Task{ProjectID: 1, WorkplaceID: 3, Hours: 7.5})
	s.SetParent(childA, rootA)
	// An undated root in another project must not block this one.
	addStored(s, models.Task{ProjectID: 2, WorkplaceID: 1, Hours: 7.5})
	e := New(s, "tester")

	if err := e.RecalculateProject(1); err != nil {
		t.Fatalf("RecalculateProject: %v", err)
	}

	_, end := taskDates(t, s, rootA)
	wantDate(t, "root A end", end, day(2026, time.January, 6))
	_, end = taskDates(t, s, rootB)
	wantDate(t, "root B end", end, day(2026, time.January, 8))
	start, _ := taskDates(t, s, childA)
	wantDate(t, "child start", start, day(2026, time.January, 7))
}

func TestRecalculateSurfacesReadErrors(t *testing.T) {
	s := newMemStore()
	id := addStored(s, models.Task{ProjectID: 1, WorkplaceID: 1, Hours: 15,
		StartDate: day(2026, time.January, 5)})
	s.failReads = true
	e := New(s, "tester")

	if err := e.Recalculate(id); !errors.Is(err, errStoreDown) {
		t.Fatalf("want store error, got %v", err)
	}
}
