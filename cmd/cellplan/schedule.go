package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"cellplan/internal/dates"
	"cellplan/internal/engine"
)

// recalc
var recalcCmd = &cobra.Command{
	Use:   "recalc <project>",
	Short: "Recompute the schedule of a whole project",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecalc,
}

// collisions
var collisionsCmd = &cobra.Command{
	Use:   "collisions",
	Short: "Show workplace collisions between dated tasks",
	Args:  cobra.NoArgs,
	RunE:  runCollisions,
}

var collisionsAll bool

// simulate
var simulateCmd = &cobra.Command{
	Use:   "simulate <workplace> <start> <end>",
	Short: "Check which projects occupy a workplace in a date range",
	Args:  cobra.ExactArgs(3),
	RunE:  runSimulate,
}

// log
var logCmd = &cobra.Command{
	Use:   "log <task>",
	Short: "Show the change history of a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runLog,
}

func init() {
	collisionsCmd.Flags().BoolVar(&collisionsAll, "all", false, "list every dated task, not only the colliding ones")
}

func runRecalc(cmd *cobra.Command, args []string) error {
	database, eng, err := openEngine()
	if err != nil {
		return err
	}
	defer database.Close()

	projectID, err := parseID(args[0])
	if err != nil {
		return err
	}
	if _, err := database.GetProject(projectID); err != nil {
		return err
	}

	if err := eng.RecalculateProject(projectID); err != nil {
		var missing *engine.MissingRootStartError
		if errors.As(err, &missing) {
			ids := make([]string, len(missing.RootIDs))
			for i, id := range missing.RootIDs {
				ids[i] = fmt.Sprintf("%d", id)
			}
			return fmt.Errorf("set a start date on task(s) %s first", strings.Join(ids, ", "))
		}
		return err
	}
	fmt.Println("schedule recalculated")
	return nil
}

func runCollisions(cmd *cobra.Command, args []string) error {
	database, eng, err := openEngine()
	if err != nil {
		return err
	}
	defer database.Close()

	marks, err := eng.MarkAllCollisions()
	if err != nil {
		return err
	}
	tasks, err := database.DatedTasks()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TASK\tPROJECT\tWORKPLACE\tSTART\tEND\tCOLLIDES WITH")
	for _, t := range tasks {
		if !collisionsAll && !marks[t.ID] {
			continue
		}
		var with string
		if marks[t.ID] {
			projects, err := eng.CollidingProjects(t.ID)
			if err != nil {
				return err
			}
			parts := make([]string, len(projects))
			for i, id := range projects {
				parts[i] = fmt.Sprintf("%d", id)
			}
			with = strings.Join(parts, ", ")
		}
		fmt.Fprintf(w, "%d\t%d\t%d\t%s\t%s\t%s\n",
			t.ID, t.ProjectID, t.WorkplaceID,
			dates.FormatDisplay(t.StartDate), dates.FormatDisplay(t.EndDate), with)
	}
	return w.Flush()
}

func runSimulate(cmd *cobra.Command, args []string) error {
	database, eng, err := openEngine()
	if err != nil {
		return err
	}
	defer database.Close()

	workplaceID, err := parseID(args[0])
	if err != nil {
		return err
	}
	if _, err := database.GetWorkplace(workplaceID); err != nil {
		return err
	}
	start, err := dates.Parse(args[1])
	if err != nil || start == nil {
		return fmt.Errorf("start date %q: expected a form like 5.1.2026", args[1])
	}
	end, err := dates.Parse(args[2])
	if err != nil || end == nil {
		return fmt.Errorf("end date %q: expected a form like 5.1.2026", args[2])
	}

	projects, err := eng.CollidingProjectsSimulated(workplaceID, *start, *end)
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		fmt.Println("workplace is free in that range")
		return nil
	}
	parts := make([]string, len(projects))
	for i, id := range projects {
		parts[i] = fmt.Sprintf("%d", id)
	}
	fmt.Printf("occupied by project(s) %s\n", strings.Join(parts, ", "))
	return nil
}

func runLog(cmd *cobra.Command, args []string) error {
	database, eng, err := openEngine()
	if err != nil {
		return err
	}
	defer database.Close()

	taskID, err := parseID(args[0])
	if err != nil {
		return err
	}
	if _, err := eng.GetTask(taskID); err != nil {
		return err
	}
	entries, err := database.ChangesForTask(taskID)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tBY\tCHANGE")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			e.ChangeTime.Format("02.01.2006 15:04"), e.ChangedBy, e.Description)
	}
	return w.Flush()
}
