package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/bnema/emergent-chefs/internal/application"
	"github.com/spf13/cobra"
)

func newAgentsCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "agents",
		Short: "List the configured chefs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "ID\tNAME\tSPECIALTY\tMODEL\tTEMP\tKEY INGREDIENTS")
			for _, entry := range application.Roster(app.cfg.Roster()) {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.1f\t%s\n",
					entry.ID, entry.Name, entry.Specialty, entry.Model, entry.Temperature, entry.Ingredients)
			}
			return w.Flush()
		},
	}
}

func newCoursesCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "courses",
		Short: "Print the challenge and the course order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, app.cfg.Task.Challenge)
			_, _ = fmt.Fprintln(out)
			for i, course := range app.cfg.Task.Courses {
				_, _ = fmt.Fprintf(out, "%d. %s\n", i+1, course)
			}
			return nil
		},
	}
}
