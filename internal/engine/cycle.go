package engine

// LinkWouldCycle reports whether making childID a child of parentID would
// close a cycle. Because every task has at most one parent, it is enough
// to walk the ancestor chain of the prospective parent: the link is cyclic
// exactly when childID shows up there (or the two ids are the same task).
func (e *Engine) LinkWouldCycle(childID, parentID int64) (bool, error) {
	if childID == parentID {
		return true, nil
	}
	visited := map[int64]bool{}
	current := &parentID
	for current != nil {
		if *current == childID {
			return true, nil
		}
		if visited[*current] {
			// Corrupt stored chain; the link cannot make it worse but must
			// not be allowed either.
			return true, nil
		}
		visited[*current] = true
		next, err := e.store.Parent(*current)
		if err != nil {
			return false, err
		}
		current = next
	}
	return false, nil
}

// HasCycle walks the stored parent chain upward from id and reports
// whether it revisits a task. Stored data is expected to be acyclic; this
// guards against chains corrupted outside the engine.
func (e *Engine) HasCycle(id int64) (bool, error) {
	visited := map[int64]bool{}
	current := &id
	for current != nil {
		if visited[*current] {
			return true, nil
		}
		visited[*current] = true
		next, err := e.store.Parent(*current)
		if err != nil {
			return false, err
		}
		current = next
	}
	return false, nil
}
