package views

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cellplan/internal/db"
	"cellplan/internal/models"
	"cellplan/internal/ui/keys"
	"cellplan/internal/ui/styles"
)

// BackToProjects signals to go back to the project list.
type BackToProjects struct{}

type workplacesLoadedMsg struct {
	workplaces []models.Workplace
}

// WorkplaceListView manages the shared workplaces tasks are assigned to.
type WorkplaceListView struct {
	db         *db.DB
	workplaces []models.Workplace
	styles     *styles.Styles
	keys       keys.KeyMap

	width  int
	height int
	cursor int

	creating bool
	newName  textinput.Model

	confirmingDelete bool
	deleteTargetID   int64
	deleteTargetName string

	errMsg string
}

func NewWorkplaceListView(database *db.DB) *WorkplaceListView {
	s := styles.NewStyles()

	newName := textinput.New()
	newName.Placeholder = "Workplace name"
	newName.CharLimit = 100

	return &WorkplaceListView{
		db:      database,
		styles:  s,
		keys:    keys.DefaultKeyMap(),
		newName: newName,
	}
}

func (v *WorkplaceListView) Init() tea.Cmd {
	return v.loadWorkplaces
}

func (v *WorkplaceListView) loadWorkplaces() tea.Msg {
	workplaces, err := v.db.ListWorkplaces()
	if err != nil {
		return err
	}
	return workplacesLoadedMsg{workplaces: workplaces}
}

func (v *WorkplaceListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case workplacesLoadedMsg:
		v.workplaces = msg.workplaces
		if v.cursor >= len(v.workplaces) {
			v.cursor = max(0, len(v.workplaces)-1)
		}
		return v, nil

	case tea.KeyMsg:
		v.errMsg = ""

		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}
		if v.creating {
			return v.updateCreating(msg)
		}

		switch {
		case key.Matches(msg, v.keys.Quit):
			return v, tea.Quit
		case key.Matches(msg, v.keys.Back):
			return v, func() tea.Msg { return BackToProjects{} }
		case key.Matches(msg, v.keys.Up):
			if v.cursor > 0 {
				v.cursor--
			}
			return v, nil
		case key.Matches(msg, v.keys.Down):
			if v.cursor < len(v.workplaces)-1 {
				v.cursor++
			}
			return v, nil
		case key.Matches(msg, v.keys.New):
			v.creating = true
			v.newName.Reset()
			v.newName.Focus()
			return v, textinput.Blink
		case key.Matches(msg, v.keys.Delete):
			if len(v.workplaces) > 0 {
				v.confirmingDelete = true
				v.deleteTargetID = v.workplaces[v.cursor].ID
				v.deleteTargetName = v.workplaces[v.cursor].Name
			}
			return v, nil
		}
	}

	return v, nil
}

func (v *WorkplaceListView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.confirmingDelete = false
		if err := v.db.DeleteWorkplace(v.deleteTargetID); err != nil {
			if errors.Is(err, db.ErrWorkplaceInUse) {
				v.errMsg = fmt.Sprintf("\"%s\" still has tasks assigned", v.deleteTargetName)
			} else {
				v.errMsg = err.Error()
			}
			return v, nil
		}
		return v, v.loadWorkplaces
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

func (v *WorkplaceListView) updateCreating(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.creating = false
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		name := strings.TrimSpace(v.newName.Value())
		if name == "" {
			return v, nil
		}
		if _, err := v.db.CreateWorkplace(name); err != nil {
			v.errMsg = err.Error()
		}
		v.creating = false
		return v, v.loadWorkplaces
	}

	var cmd tea.Cmd
	v.newName, cmd = v.newName.Update(msg)
	return v, cmd
}

func (v *WorkplaceListView) View() string {
	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}
	if v.creating {
		return v.renderCreateForm()
	}

	s := v.styles
	var b strings.Builder

	b.WriteString(s.Title.Render("Workplaces"))
	b.WriteString("\n\n")

	if len(v.workplaces) == 0 {
		b.WriteString(s.TitleMuted.Render("No workplaces. Press 'n' to create one."))
	} else {
		contentWidth := styles.ContentWidth(v.width)
		width := max(contentWidth-4, 20)
		for i, w := range v.workplaces {
			line := fmt.Sprintf("%-4d %s", w.ID, w.Name)
			style := s.ListItem
			if i == v.cursor {
				style = s.ListSelected
			}
			b.WriteString(style.Width(width).Render(line))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(s.Help.Render(
		fmt.Sprintf("%s new • %s del • %s back • %s quit",
			s.HelpKey.Render("n"),
			s.HelpKey.Render("d"),
			s.HelpKey.Render("esc"),
			s.HelpKey.Render("q"),
		),
	))
	if v.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(s.ErrorBar.Render(v.errMsg))
	}

	return styles.CenterView(b.String(), v.width, v.height)
}

func (v *WorkplaceListView) renderCreateForm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	inputWidth := clamp(contentWidth-6, 20, 50)

	form := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("New Workplace"),
		"",
		"Name:",
		s.InputFocused.Width(inputWidth).Render(v.newName.View()),
		"",
		s.TitleMuted.Render("↵: create • Esc: cancel"),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *WorkplaceListView) renderDeleteConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Delete Workplace?"),
		"",
		s.TitleMuted.Render(fmt.Sprintf("\"%s\" will be removed if no task uses it.", v.deleteTargetName)),
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
