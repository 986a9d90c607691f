package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
}

var projectAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a project",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runProjectAdd,
}

var projectLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List projects",
	Args:  cobra.NoArgs,
	RunE:  runProjectLs,
}

var projectRmCmd = &cobra.Command{
	Use:   "rm <id>...",
	Short: "Delete projects together with their tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runProjectRm,
}

func init() {
	projectCmd.AddCommand(projectAddCmd, projectLsCmd, projectRmCmd)
}

func runProjectAdd(cmd *cobra.Command, args []string) error {
	database, _, err := openEngine()
	if err != nil {
		return err
	}
	defer database.Close()

	project, err := database.CreateProject(strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Printf("created project %d\n", project.ID)
	return nil
}

func runProjectLs(cmd *cobra.Command, args []string) error {
	database, _, err := openEngine()
	if err != nil {
		return err
	}
	defer database.Close()

	projects, err := database.ListProjects()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME")
	for _, p := range projects {
		fmt.Fprintf(w, "%d\t%s\n", p.ID, p.Name)
	}
	return w.Flush()
}

func runProjectRm(cmd *cobra.Command, args []string) error {
	database, _, err := openEngine()
	if err != nil {
		return err
	}
	defer database.Close()

	for _, arg := range args {
		id, err := parseID(arg)
		if err != nil {
			return err
		}
		if _, err := database.GetProject(id); err != nil {
			return err
		}
		if err := database.DeleteProject(id); err != nil {
			return err
		}
		fmt.Printf("deleted project %d\n", id)
	}
	return nil
}
