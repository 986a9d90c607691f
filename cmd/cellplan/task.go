package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"cellplan/internal/dates"
	"cellplan/internal/models"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
}

// task add
var taskAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a task to a project",
	Args:  cobra.NoArgs,
	RunE:  runTaskAdd,
}

var (
	taskAddProject   int64
	taskAddWorkplace int64
	taskAddHours     float64
	taskAddMode      string
	taskAddStart     string
	taskAddNotes     string
	taskAddBodies    int
	taskAddParent    int64
)

// task rm
var taskRmCmd = &cobra.Command{
	Use:   "rm <id>...",
	Short: "Delete one or more tasks (their children become roots)",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskRm,
}

// task ls
var taskLsCmd = &cobra.Command{
	Use:   "ls <project>",
	Short: "List the tasks of a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskLs,
}

func init() {
	taskAddCmd.Flags().Int64Var(&taskAddProject, "project", 0, "project id (required)")
	taskAddCmd.Flags().Int64Var(&taskAddWorkplace, "workplace", 0, "workplace id (required)")
	taskAddCmd.Flags().Float64Var(&taskAddHours, "hours", 0, "total effort in hours (required)")
	taskAddCmd.Flags().StringVar(&taskAddMode, "mode", "standard", "capacity mode: standard or continuous")
	taskAddCmd.Flags().StringVar(&taskAddStart, "start", "", "start date, e.g. 5.1.2026")
	taskAddCmd.Flags().StringVar(&taskAddNotes, "notes", "", "free-text notes")
	taskAddCmd.Flags().IntVar(&taskAddBodies, "bodies", 1, "number of pieces")
	taskAddCmd.Flags().Int64Var(&taskAddParent, "parent", 0, "parent task id")
	taskAddCmd.MarkFlagRequired("project")
	taskAddCmd.MarkFlagRequired("workplace")
	taskAddCmd.MarkFlagRequired("hours")

	taskCmd.AddCommand(taskAddCmd, taskRmCmd, taskLsCmd)
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	database, eng, err := openEngine()
	if err != nil {
		return err
	}
	defer database.Close()

	start, err := dates.Parse(taskAddStart)
	if err != nil {
		return fmt.Errorf("--start: %w", err)
	}
	if _, err := database.GetProject(taskAddProject); err != nil {
		return err
	}
	if _, err := database.GetWorkplace(taskAddWorkplace); err != nil {
		return err
	}

	task := models.Task{
		ProjectID:   taskAddProject,
		WorkplaceID: taskAddWorkplace,
		Hours:       taskAddHours,
		Mode:        models.CapacityMode(taskAddMode),
		StartDate:   start,
		Notes:       taskAddNotes,
		BodiesCount: taskAddBodies,
		IsActive:    true,
	}
	var parent *int64
	if taskAddParent != 0 {
		parent = &taskAddParent
	}

	id, err := eng.AddTask(task, parent)
	if err != nil {
		return err
	}
	fmt.Printf("created task %d\n", id)
	return nil
}

func runTaskRm(cmd *cobra.Command, args []string) error {
	database, eng, err := openEngine()
	if err != nil {
		return err
	}
	defer database.Close()

	for _, arg := range args {
		id, err := parseID(arg)
		if err != nil {
			return err
		}
		if _, err := eng.GetTask(id); err != nil {
			return err
		}
		if err := eng.DeleteTask(id); err != nil {
			return err
		}
		fmt.Printf("deleted task %d\n", id)
	}
	return nil
}

func runTaskLs(cmd *cobra.Command, args []string) error {
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
	tasks, err := database.TasksByProject(projectID)
	if err != nil {
		return err
	}
	marks, err := eng.MarkAllCollisions()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tAFTER\tWORKPLACE\tHOURS\tMODE\tSTART\tEND\tSTATUS\tCOLLIDES")
	for _, t := range tasks {
		after := ""
		if p, err := eng.Parent(t.ID); err == nil && p != nil {
			after = fmt.Sprintf("%d", *p)
		}
		collides := ""
		if marks[t.ID] {
			collides = "!"
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%.1f\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, after, t.WorkplaceID, t.Hours, t.Mode,
			dates.FormatDisplay(t.StartDate), dates.FormatDisplay(t.EndDate),
			t.Status, collides)
	}
	return w.Flush()
}
