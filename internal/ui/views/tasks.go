package views

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cellplan/internal/calendar"
	"cellplan/internal/dates"
	"cellplan/internal/db"
	"cellplan/internal/engine"
	"cellplan/internal/models"
	"cellplan/internal/ui/keys"
	"cellplan/internal/ui/styles"
)

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// TaskListView shows the schedule of one project: every task with its
// workplace, dates, status and collision marker.
type TaskListView struct {
	db      *db.DB
	eng     *engine.Engine
	project models.Project

	tasks      []models.Task
	workplaces []models.Workplace
	marks      map[int64]bool  // taskID -> collides with another dated task
	parents    map[int64]int64 // child -> parent

	styles *styles.Styles
	keys   keys.KeyMap

	width   int
	height  int
	cursor  int
	scrollY int

	// Task creation/editing
	editing      bool
	editingNew   bool
	editTaskID   int64
	editOriginal models.Task
	editWpIdx    int
	editMode     models.CapacityMode
	editHours    textinput.Model
	editStart    textinput.Model
	editNotes    textinput.Model
	editFocusIdx int // 0=workplace, 1=hours, 2=mode, 3=start, 4=notes, 5=save

	// Cross-project collision confirmation before inserting
	confirmingCollision bool
	pendingTask         models.Task
	collidingWith       []int64

	// Parent assignment
	settingParent bool
	parentInput   textinput.Model

	// Change history (read-only)
	viewingLog bool
	logEntries []models.ChangeEntry

	// Delete confirmation
	confirmingDelete bool
	deleteTargetID   int64

	errMsg  string
	infoMsg string
}

// NewTaskListView creates the schedule view for a project.
func NewTaskListView(database *db.DB, eng *engine.Engine, project models.Project) *TaskListView {
	s := styles.NewStyles()

	editHours := textinput.New()
	editHours.Placeholder = "Hours"
	editHours.CharLimit = 8

	editStart := textinput.New()
	editStart.Placeholder = "d.m.yyyy (empty = unscheduled)"
	editStart.CharLimit = 10

	editNotes := textinput.New()
	editNotes.Placeholder = "Notes"
	editNotes.CharLimit = 500

	parentInput := textinput.New()
	parentInput.Placeholder = "Parent task id (empty = root)"
	parentInput.CharLimit = 10

	return &TaskListView{
		db:          database,
		eng:         eng,
		project:     project,
		styles:      s,
		keys:        keys.DefaultKeyMap(),
		editHours:   editHours,
		editStart:   editStart,
		editNotes:   editNotes,
		parentInput: parentInput,
	}
}

func (v *TaskListView) Init() tea.Cmd {
	return tea.Batch(v.loadTasks, v.loadWorkplaces)
}

type tasksLoadedMsg struct {
	tasks   []models.Task
	marks   map[int64]bool
	parents map[int64]int64
}

type logLoadedMsg struct {
	entries []models.ChangeEntry
}

func (v *TaskListView) loadTasks() tea.Msg {
	tasks, err := v.db.TasksByProject(v.project.ID)
	if err != nil {
		return err
	}
	marks, err := v.eng.MarkAllCollisions()
	if err != nil {
		return err
	}
	parents := make(map[int64]int64)
	for _, t := range tasks {
		p, err := v.eng.Parent(t.ID)
		if err != nil {
			return err
		}
		if p != nil {
			parents[t.ID] = *p
		}
	}
	return tasksLoadedMsg{tasks: tasks, marks: marks, parents: parents}
}

func (v *TaskListView) loadWorkplaces() tea.Msg {
	workplaces, err := v.db.ListWorkplaces()
	if err != nil {
		return err
	}
	return workplacesLoadedMsg{workplaces: workplaces}
}

func (v *TaskListView) loadLog() tea.Msg {
	if len(v.tasks) == 0 {
		return nil
	}
	entries, err := v.db.ChangesForTask(v.tasks[v.cursor].ID)
	if err != nil {
		return err
	}
	return logLoadedMsg{entries: entries}
}

func (v *TaskListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tasksLoadedMsg:
		v.tasks = msg.tasks
		v.marks = msg.marks
		v.parents = msg.parents
		if v.cursor >= len(v.tasks) {
			v.cursor = max(0, len(v.tasks)-1)
		}
		return v, nil

	case workplacesLoadedMsg:
		v.workplaces = msg.workplaces
		return v, nil

	case logLoadedMsg:
		v.logEntries = msg.entries
		return v, nil

	case tea.KeyMsg:
		v.errMsg = ""
		v.infoMsg = ""

		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}
		if v.confirmingCollision {
			return v.updateConfirmCollision(msg)
		}
		if v.editing {
			return v.updateEditing(msg)
		}
		if v.settingParent {
			return v.updateSettingParent(msg)
		}
		if v.viewingLog {
			return v.updateViewingLog(msg)
		}
		return v.updateNormal(msg)
	}

	return v, nil
}

func (v *TaskListView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Back):
		return v, func() tea.Msg { return BackToProjects{} }

	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(v.tasks)-1 {
			v.cursor++
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.New):
		if len(v.workplaces) == 0 {
			v.errMsg = "create a workplace first (press w on the project list)"
			return v, nil
		}
		v.startNewTask()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Edit):
		if len(v.tasks) > 0 {
			v.startEditTask(v.tasks[v.cursor])
			return v, textinput.Blink
		}
		return v, nil

	case key.Matches(msg, v.keys.Delete):
		if len(v.tasks) > 0 {
			v.confirmingDelete = true
			v.deleteTargetID = v.tasks[v.cursor].ID
		}
		return v, nil

	case key.Matches(msg, v.keys.Status):
		if len(v.tasks) > 0 {
			return v, v.cycleStatus()
		}
		return v, nil

	case key.Matches(msg, v.keys.Parent):
		if len(v.tasks) > 0 {
			v.settingParent = true
			v.parentInput.Reset()
			if p, ok := v.parents[v.tasks[v.cursor].ID]; ok {
				v.parentInput.SetValue(strconv.FormatInt(p, 10))
			}
			v.parentInput.Focus()
			return v, textinput.Blink
		}
		return v, nil

	case key.Matches(msg, v.keys.Recalc):
		return v, v.recalculateProject()

	case key.Matches(msg, v.keys.Log):
		if len(v.tasks) > 0 {
			v.viewingLog = true
			v.logEntries = nil
			return v, v.loadLog
		}
		return v, nil
	}

	return v, nil
}

func (v *TaskListView) cycleStatus() tea.Cmd {
	task := v.tasks[v.cursor]
	var next models.Status
	switch task.Status {
	case models.StatusPending:
		next = models.StatusDone
	case models.StatusDone:
		next = models.StatusCanceled
	default:
		next = models.StatusPending
	}
	if err := v.eng.SetStatus(task.ID, next); err != nil {
		v.errMsg = err.Error()
		return nil
	}
	return v.loadTasks
}

func (v *TaskListView) recalculateProject() tea.Cmd {
	err := v.eng.RecalculateProject(v.project.ID)
	if err != nil {
		var missing *engine.MissingRootStartError
		if errors.As(err, &missing) {
			ids := make([]string, len(missing.RootIDs))
			for i, id := range missing.RootIDs {
				ids[i] = strconv.FormatInt(id, 10)
			}
			v.errMsg = "set a start date on task(s) " + strings.Join(ids, ", ") + " first"
		} else {
			v.errMsg = err.Error()
		}
		return nil
	}
	v.infoMsg = "schedule recalculated"
	return v.loadTasks
}

func (v *TaskListView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.confirmingDelete = false
		if err := v.eng.DeleteTask(v.deleteTargetID); err != nil {
			v.errMsg = err.Error()
			return v, nil
		}
		return v, v.loadTasks
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

func (v *TaskListView) updateConfirmCollision(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.confirmingCollision = false
		return v, v.insertPending()
	case "n", "N", "esc":
		v.confirmingCollision = false
		v.editing = true
		return v, nil
	}
	return v, nil
}

func (v *TaskListView) updateSettingParent(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.settingParent = false
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		v.settingParent = false
		taskID := v.tasks[v.cursor].ID
		raw := strings.TrimSpace(v.parentInput.Value())
		if raw == "" {
			if err := v.eng.DetachTask(taskID); err != nil {
				v.errMsg = err.Error()
				return v, nil
			}
			return v, v.loadTasks
		}
		parentID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			v.errMsg = "parent must be a task id"
			return v, nil
		}
		if err := v.eng.SetTaskParent(taskID, parentID); err != nil {
			if errors.Is(err, engine.ErrCycle) {
				v.errMsg = fmt.Sprintf("task %d depends on this one", parentID)
			} else {
				v.errMsg = err.Error()
			}
			return v, nil
		}
		return v, v.loadTasks
	}

	var cmd tea.Cmd
	v.parentInput, cmd = v.parentInput.Update(msg)
	return v, cmd
}

func (v *TaskListView) updateViewingLog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit
	default:
		v.viewingLog = false
		v.logEntries = nil
		return v, nil
	}
}

func (v *TaskListView) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.editing = false
		return v, nil

	case key.Matches(msg, v.keys.Tab):
		v.editFocusIdx = (v.editFocusIdx + 1) % 6
		v.updateEditFocus()
		return v, nil

	case msg.String() == "shift+tab":
		v.editFocusIdx = (v.editFocusIdx + 5) % 6
		v.updateEditFocus()
		return v, nil

	case msg.String() == "left", msg.String() == "right":
		switch v.editFocusIdx {
		case 0:
			n := len(v.workplaces)
			if n > 0 {
				if msg.String() == "left" {
					v.editWpIdx = (v.editWpIdx + n - 1) % n
				} else {
					v.editWpIdx = (v.editWpIdx + 1) % n
				}
			}
			return v, nil
		case 2:
			v.toggleEditMode()
			return v, nil
		}

	case key.Matches(msg, v.keys.Enter):
		if v.editFocusIdx == 2 {
			v.toggleEditMode()
			return v, nil
		}
		if v.editFocusIdx == 5 {
			return v, v.saveTask()
		}
		v.editFocusIdx = (v.editFocusIdx + 1) % 6
		v.updateEditFocus()
		return v, nil

	case msg.String() == "ctrl+s":
		return v, v.saveTask()
	}

	var cmd tea.Cmd
	switch v.editFocusIdx {
	case 1:
		v.editHours, cmd = v.editHours.Update(msg)
	case 3:
		v.editStart, cmd = v.editStart.Update(msg)
	case 4:
		v.editNotes, cmd = v.editNotes.Update(msg)
	}
	return v, cmd
}

func (v *TaskListView) toggleEditMode() {
	if v.editMode == models.Standard {
		v.editMode = models.Continuous
	} else {
		v.editMode = models.Standard
	}
}

func (v *TaskListView) startNewTask() {
	v.editing = true
	v.editingNew = true
	v.editFocusIdx = 0
	v.editWpIdx = 0
	v.editMode = models.Standard
	v.editHours.Reset()
	v.editStart.Reset()
	v.editNotes.Reset()
	v.updateEditFocus()
}

func (v *TaskListView) startEditTask(task models.Task) {
	v.editing = true
	v.editingNew = false
	v.editFocusIdx = 0
	v.editTaskID = task.ID
	v.editOriginal = task
	v.editWpIdx = 0
	for i, w := range v.workplaces {
		if w.ID == task.WorkplaceID {
			v.editWpIdx = i
			break
		}
	}
	v.editMode = task.Mode
	v.editHours.SetValue(strconv.FormatFloat(task.Hours, 'f', -1, 64))
	v.editStart.SetValue(dates.FormatDisplay(task.StartDate))
	v.editNotes.SetValue(task.Notes)
	v.updateEditFocus()
}

func (v *TaskListView) updateEditFocus() {
	v.editHours.Blur()
	v.editStart.Blur()
	v.editNotes.Blur()
	switch v.editFocusIdx {
	case 1:
		v.editHours.Focus()
	case 3:
		v.editStart.Focus()
	case 4:
		v.editNotes.Focus()
	}
}

func (v *TaskListView) saveTask() tea.Cmd {
	hours, err := strconv.ParseFloat(strings.TrimSpace(v.editHours.Value()), 64)
	if err != nil || hours <= 0 {
		v.errMsg = "hours must be a positive number"
		return nil
	}
	start, err := dates.Parse(v.editStart.Value())
	if err != nil {
		v.errMsg = "start date must look like 5.1.2026"
		return nil
	}
	if len(v.workplaces) == 0 {
		v.errMsg = "no workplaces defined"
		return nil
	}
	workplaceID := v.workplaces[v.editWpIdx].ID
	notes := strings.TrimSpace(v.editNotes.Value())

	if v.editingNew {
		return v.saveNewTask(workplaceID, hours, start, notes)
	}
	return v.saveEditedTask(workplaceID, hours, start, notes)
}

// saveNewTask checks the target workplace for date overlaps before the
// insert: overlap within the same project blocks the save, overlap with
// another project only asks for confirmation.
func (v *TaskListView) saveNewTask(workplaceID int64, hours float64, start *time.Time, notes string) tea.Cmd {
	task := models.Task{
		ProjectID:   v.project.ID,
		WorkplaceID: workplaceID,
		Hours:       hours,
		Mode:        v.editMode,
		StartDate:   start,
		Notes:       notes,
		IsActive:    true,
	}

	if start != nil {
		end := calendar.CalculateEndDate(*start, hours, v.editMode)
		if !end.IsZero() {
			colliding, err := v.eng.CollidingProjectsSimulated(workplaceID, *start, end)
			if err != nil {
				v.errMsg = err.Error()
				return nil
			}
			var foreign []int64
			for _, id := range colliding {
				if id == v.project.ID {
					v.errMsg = "this project already occupies the workplace in that range"
					return nil
				}
				foreign = append(foreign, id)
			}
			if len(foreign) > 0 {
				v.editing = false
				v.confirmingCollision = true
				v.pendingTask = task
				v.collidingWith = foreign
				return nil
			}
		}
	}

	v.pendingTask = task
	v.editing = false
	return v.insertPending()
}

func (v *TaskListView) insertPending() tea.Cmd {
	if _, err := v.eng.AddTask(v.pendingTask, nil); err != nil {
		v.errMsg = err.Error()
		return nil
	}
	return v.loadTasks
}

func (v *TaskListView) saveEditedTask(workplaceID int64, hours float64, start *time.Time, notes string) tea.Cmd {
	orig := v.editOriginal
	id := v.editTaskID

	if workplaceID != orig.WorkplaceID {
		if err := v.eng.SetWorkplace(id, workplaceID); err != nil {
			v.errMsg = err.Error()
			return nil
		}
	}
	if hours != orig.Hours {
		if err := v.eng.SetHours(id, hours); err != nil {
			v.errMsg = err.Error()
			return nil
		}
	}
	if v.editMode != orig.Mode {
		if err := v.eng.SetCapacityMode(id, v.editMode); err != nil {
			v.errMsg = err.Error()
			return nil
		}
	}
	if notes != orig.Notes {
		if err := v.eng.SetNotes(id, notes); err != nil {
			v.errMsg = err.Error()
			return nil
		}
	}
	if !sameDay(start, orig.StartDate) {
		if err := v.eng.SetStartDate(id, start); err != nil {
			if errors.Is(err, engine.ErrStartManaged) {
				v.errMsg = "start date is inherited from the parent task"
			} else {
				v.errMsg = err.Error()
			}
			v.editing = false
			return v.loadTasks
		}
	}

	v.editing = false
	return v.loadTasks
}

func sameDay(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func (v *TaskListView) ensureVisible() {
	availableHeight := v.height - 10
	if availableHeight < 1 {
		availableHeight = 1
	}
	if v.cursor < v.scrollY {
		v.scrollY = v.cursor
	} else if v.cursor >= v.scrollY+availableHeight {
		v.scrollY = v.cursor - availableHeight + 1
	}
}

func (v *TaskListView) workplaceName(id int64) string {
	for _, w := range v.workplaces {
		if w.ID == id {
			return w.Name
		}
	}
	return strconv.FormatInt(id, 10)
}

// View renders the view
func (v *TaskListView) View() string {
	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}
	if v.confirmingCollision {
		return v.renderCollisionConfirm()
	}
	if v.editing {
		return v.renderEditForm()
	}
	if v.settingParent {
		return v.renderParentForm()
	}
	if v.viewingLog {
		return v.renderLog()
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render(v.project.Name))
	b.WriteString("\n\n")
	b.WriteString(v.renderTaskTable())
	b.WriteString("\n")
	b.WriteString(v.renderHelp())
	if v.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.ErrorBar.Render(v.errMsg))
	} else if v.infoMsg != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.StatusBar.Render(v.infoMsg))
	}

	return styles.CenterView(b.String(), v.width, v.height)
}

func (v *TaskListView) renderTaskTable() string {
	s := v.styles

	if len(v.tasks) == 0 {
		return s.TitleMuted.Render("No tasks. Press 'n' to create one.")
	}

	header := fmt.Sprintf("%-4s %-6s %-14s %7s %-10s %-11s %-11s %-9s %s",
		"ID", "After", "Workplace", "Hours", "Mode", "Start", "End", "Status", "")

	availableHeight := v.height - 10
	if availableHeight < 1 {
		availableHeight = 1
	}
	endIdx := min(v.scrollY+availableHeight, len(v.tasks))

	rows := []string{s.TableHeader.Render(header)}
	for i := v.scrollY; i < endIdx; i++ {
		rows = append(rows, v.renderTaskRow(v.tasks[i], i == v.cursor))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (v *TaskListView) renderTaskRow(task models.Task, selected bool) string {
	s := v.styles

	after := ""
	if p, ok := v.parents[task.ID]; ok {
		after = "↳" + strconv.FormatInt(p, 10)
	}
	mark := " "
	if v.marks[task.ID] {
		mark = s.Collision.Render("!")
	}

	line := fmt.Sprintf("%-4d %-6s %-14.14s %7.1f %-10s %-11s %-11s %-9s %s",
		task.ID,
		after,
		v.workplaceName(task.WorkplaceID),
		task.Hours,
		task.Mode,
		dates.FormatDisplay(task.StartDate),
		dates.FormatDisplay(task.EndDate),
		task.Status,
		mark,
	)

	style := s.ListItem
	switch {
	case selected:
		style = s.ListSelected
	case task.Status == models.StatusDone:
		style = s.StatusDone.Padding(0, 1)
	case task.Status == models.StatusCanceled:
		style = s.StatusCanceled.Padding(0, 1)
	}
	return style.Render(line)
}

func (v *TaskListView) renderEditForm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	formTitle := "New Task"
	if !v.editingNew {
		formTitle = fmt.Sprintf("Edit Task %d", v.editTaskID)
	}

	wpStyle := s.Input
	hoursStyle := s.Input
	modeStyle := s.Input
	startStyle := s.Input
	notesStyle := s.Input
	btnStyle := s.Button

	switch v.editFocusIdx {
	case 0:
		wpStyle = s.InputFocused
	case 1:
		hoursStyle = s.InputFocused
	case 2:
		modeStyle = s.InputFocused
	case 3:
		startStyle = s.InputFocused
	case 4:
		notesStyle = s.InputFocused
	case 5:
		btnStyle = s.ButtonFocused
	}

	inputWidth := clamp(contentWidth-6, 20, 50)

	workplace := ""
	if len(v.workplaces) > 0 {
		workplace = "◀ " + v.workplaces[v.editWpIdx].Name + " ▶"
	}

	form := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render(formTitle),
		"",
		"Workplace:",
		wpStyle.Width(inputWidth).Render(workplace),
		"",
		"Hours:",
		hoursStyle.Width(12).Render(v.editHours.View()),
		"",
		"Mode:",
		modeStyle.Width(inputWidth).Render("◀ "+string(v.editMode)+" ▶"),
		"",
		"Start date:",
		startStyle.Width(inputWidth).Render(v.editStart.View()),
		"",
		"Notes:",
		notesStyle.Width(inputWidth).Render(v.editNotes.View()),
		"",
		btnStyle.Render(" Save "),
		"",
		s.TitleMuted.Render("Tab: next • ◀▶: choose • Ctrl+S: save • Esc: cancel"),
	)
	if v.errMsg != "" {
		form = lipgloss.JoinVertical(lipgloss.Left, form, "", s.ErrorBar.Render(v.errMsg))
	}

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TaskListView) renderParentForm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	task := v.tasks[v.cursor]

	form := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render(fmt.Sprintf("Task %d follows...", task.ID)),
		"",
		s.InputFocused.Width(clamp(contentWidth-6, 20, 40)).Render(v.parentInput.View()),
		"",
		s.TitleMuted.Render("↵: link • empty: make root • Esc: cancel"),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TaskListView) renderLog() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	task := v.tasks[v.cursor]

	var lines []string
	if len(v.logEntries) == 0 {
		lines = append(lines, s.TitleMuted.Render("No changes recorded"))
	}
	for _, e := range v.logEntries {
		lines = append(lines, fmt.Sprintf("%s  %s  %s",
			s.TitleMuted.Render(e.ChangeTime.Format("02.01.2006 15:04")),
			e.Description,
			s.TitleMuted.Render("("+e.ChangedBy+")"),
		))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		append([]string{s.Title.Render(fmt.Sprintf("History of task %d", task.ID)), ""}, lines...)...,
	)
	content = lipgloss.JoinVertical(lipgloss.Left, content, "",
		s.TitleMuted.Render("Press any key to close"))

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		s.Panel.Render(content),
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TaskListView) renderCollisionConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	ids := make([]string, len(v.collidingWith))
	for i, id := range v.collidingWith {
		ids[i] = strconv.FormatInt(id, 10)
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Warning).Render("Workplace Collision"),
		"",
		s.WarnBar.Render("Overlaps with project(s) "+strings.Join(ids, ", ")+" on this workplace."),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Save anyway "),
			"  ",
			s.Button.Render(" N - Back "),
		),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TaskListView) renderDeleteConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Delete Task?"),
		"",
		s.TitleMuted.Render(fmt.Sprintf("Task %d and its history will be removed; children become roots.", v.deleteTargetID)),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TaskListView) renderHelp() string {
	s := v.styles
	return s.Help.Render(
		fmt.Sprintf("%s new • %s edit • %s del • %s status • %s parent • %s recalc • %s history • %s back • %s quit",
			s.HelpKey.Render("n"),
			s.HelpKey.Render("e"),
			s.HelpKey.Render("d"),
			s.HelpKey.Render("x"),
			s.HelpKey.Render("p"),
			s.HelpKey.Render("r"),
			s.HelpKey.Render("l"),
			s.HelpKey.Render("esc"),
			s.HelpKey.Render("q"),
		),
	)
}
