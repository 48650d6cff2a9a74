package cmd

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/briolearn/brio/internal/mastery"
)

// Palette shared with the student-facing apps.
var (
	statTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8B5CF6"))

	statLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94A3B8"))

	statValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8FAFC"))

	statGood = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#22C55E")).
			Bold(true)

	barFilled = lipgloss.NewStyle().Background(lipgloss.Color("#14B8A6"))
	barEmpty  = lipgloss.NewStyle().Background(lipgloss.Color("#334155"))
)

var statsCmd = &cobra.Command{
	Use:   "stats <account>",
	Short: "Show a student's progression dashboard",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		ctx := cmd.Context()

		acc, err := st.GetAccount(ctx, args[0])
		if err != nil {
			return err
		}
		topics, err := st.ListTopicProgress(ctx, acc.ID)
		if err != nil {
			return err
		}
		earned, err := st.ListEarnedBadges(ctx, acc.ID)
		if err != nil {
			return err
		}

		fmt.Println(statTitle.Render(acc.Name))
		fmt.Printf("%s %s\n",
			statLabel.Render("Total XP:"),
			statValue.Render(fmt.Sprintf("%d", acc.TotalXP)))
		fmt.Printf("%s %s  %s %s\n",
			statLabel.Render("Weekly streak:"),
			statGood.Render(fmt.Sprintf("%d", acc.WeeklyStreak)),
			statLabel.Render("Daily streak:"),
			statGood.Render(fmt.Sprintf("%d", acc.DailyStreak)))
		fmt.Printf("%s %s  %s %s\n",
			statLabel.Render("This week:"),
			statValue.Render(fmt.Sprintf("%d/%d XP", acc.WeeklyXP, acc.WeeklyGoal)),
			statLabel.Render("Passes:"),
			statValue.Render(fmt.Sprintf("%d", acc.Passes)))

		if len(topics) > 0 {
			fmt.Println()
			fmt.Println(statTitle.Render("Topics"))
			for _, tp := range topics {
				tier := mastery.TierFor(tp.XP)
				pct := mastery.ProgressWithinTier(tp.XP)
				fmt.Printf("%-16s %s %s\n",
					tp.TopicID,
					renderBar(pct, 24),
					statLabel.Render(fmt.Sprintf("%s %d%%", tier.DisplayName(), pct)))
			}
		}

		if len(earned) > 0 {
			defs, err := st.ListBadges(ctx)
			if err != nil {
				return err
			}
			byID := make(map[string]string, len(defs))
			for _, d := range defs {
				byID[d.ID] = d.Name
			}

			fmt.Println()
			fmt.Println(statTitle.Render("Badges"))
			for _, e := range earned {
				name := byID[e.BadgeID]
				if name == "" {
					name = e.BadgeID
				}
				fmt.Printf("  %s %s\n", statGood.Render("★"), statValue.Render(name))
			}
		}
		return nil
	},
}

// renderBar draws a fixed-width progress bar for a percentage.
func renderBar(pct, width int) string {
	filled := width * pct / 100
	if filled > width {
		filled = width
	}
	return barFilled.Render(strings.Repeat(" ", filled)) +
		barEmpty.Render(strings.Repeat(" ", width-filled))
}
