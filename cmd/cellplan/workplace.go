package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var workplaceCmd = &cobra.Command{
	Use:   "workplace",
	Short: "Manage workplaces",
}

var workplaceAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a workplace",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runWorkplaceAdd,
}

var workplaceLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List workplaces",
	Args:  cobra.NoArgs,
	RunE:  runWorkplaceLs,
}

var workplaceRmCmd = &cobra.Command{
	Use:   "rm <id>...",
	Short: "Delete workplaces (refused while tasks reference them)",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runWorkplaceRm,
}

func init() {
	workplaceCmd.AddCommand(workplaceAddCmd, workplaceLsCmd, workplaceRmCmd)
}

func runWorkplaceAdd(cmd *cobra.Command, args []string) error {
	database, _, err := openEngine()
	if err != nil {
		return err
	}
	defer database.Close()

	workplace, err := database.CreateWorkplace(strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Printf("created workplace %d\n", workplace.ID)
	return nil
}

func runWorkplaceLs(cmd *cobra.Command, args []string) error {
	database, _, err := openEngine()
	if err != nil {
		return err
	}
	defer database.Close()

	workplaces, err := database.ListWorkplaces()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME")
	for _, wp := range workplaces {
		fmt.Fprintf(w, "%d\t%s\n", wp.ID, wp.Name)
	}
	return w.Flush()
}

func runWorkplaceRm(cmd *cobra.Command, args []string) error {
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
		if err := database.DeleteWorkplace(id); err != nil {
			return err
		}
		fmt.Printf("deleted workplace %d\n", id)
	}
	return nil
}
