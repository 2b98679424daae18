package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/pablasso/hobbytrack/internal/backend"
	"github.com/pablasso/hobbytrack/internal/hobby"
)

func newHobbiesCmd(rt *runtime) *cobra.Command {
	var withGoals bool

	cmd := &cobra.Command{
		Use:   "hobbies",
		Short: "List the hobbies the backend suggests",
		Long:  `List every hobby in the backend catalog, the same list the wizard offers as suggestions.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHobbies(cmd, rt, withGoals)
		},
	}
	cmd.Flags().BoolVar(&withGoals, "goals", false, "Also count the goals filed under each hobby")
	return cmd
}

func runHobbies(cmd *cobra.Command, rt *runtime, withGoals bool) error {
	ctx := cmd.Context()
	client := backend.NewClient(rt.cfg.Backend.BaseURL, rt.cfg.BackendTimeout())

	if err := checkBackend(ctx, client); err != nil {
		return err
	}

	hobbies, err := client.ListHobbies(ctx)
	if err != nil {
		return fmt.Errorf("failed to list hobbies: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(hobbies) == 0 {
		fmt.Fprintln(out, "No hobbies yet.")
		return nil
	}

	var goalCounts map[string]int
	if withGoals {
		goals, err := client.ListGoals(ctx)
		if err != nil {
			return fmt.Errorf("failed to list goals: %w", err)
		}
		goalCounts = countGoals(goals)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if withGoals {
		fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tGOALS\tCREATED")
	} else {
		fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tCREATED")
	}

	for _, h := range hobbies {
		if withGoals {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", h.ID, h.Title, h.Category, goalCounts[h.ID], formatAge(h.CreatedAt))
		} else {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", h.ID, h.Title, h.Category, formatAge(h.CreatedAt))
		}
	}

	return w.Flush()
}

func countGoals(goals []hobby.Goal) map[string]int {
	counts := make(map[string]int, len(goals))
	for _, g := range goals {
		counts[g.HobbyID]++
	}
	return counts
}

// formatAge returns a human-readable relative time string.
func formatAge(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	duration := time.Since(t)

	if duration < time.Minute {
		return "just now"
	}

	minutes := int(duration.Minutes())
	if minutes < 60 {
		return fmt.Sprintf("%dm ago", minutes)
	}

	hours := int(duration.Hours())
	if hours < 24 {
		return fmt.Sprintf("%dh ago", hours)
	}

	return fmt.Sprintf("%dd ago", hours/24)
}
