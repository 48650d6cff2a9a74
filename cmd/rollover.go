package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rolloverCmd = &cobra.Command{
	Use:   "rollover <account>",
	Short: "Evaluate the weekly rollover without a completion",
	Long: `Runs the week-boundary check standalone, the way the dashboard does on
load, so streak status is current even if the student hasn't played yet
this week.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		led, err := newLedger(cmd, st)
		if err != nil {
			return err
		}

		out, err := led.EvaluateWeeklyRollover(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if !out.Applied {
			fmt.Printf("Week unchanged. Streak %d, goal %d XP, passes %d.\n",
				out.Streak, out.Goal, out.Passes)
			return nil
		}

		switch {
		case out.Initialized:
			fmt.Printf("First week started. Goal %d XP, passes %d.\n", out.Goal, out.Passes)
		case out.HolidayProtected:
			fmt.Printf("Holiday week — streak preserved at %d.\n", out.Streak)
		case out.PassConsumed:
			fmt.Printf("Goal missed — vacation pass used, %d left. Streak stays at %d.\n",
				out.Passes, out.Streak)
		case out.StreakReset:
			fmt.Printf("Goal missed with no passes — streak reset. New goal %d XP.\n", out.Goal)
		default:
			fmt.Printf("Goal met! Streak is now %d, new goal %d XP.\n", out.Streak, out.Goal)
		}
		return nil
	},
}

func init() {
	rolloverCmd.Flags().String("at", "", "Pin the reference instant (RFC 3339) instead of the host clock")
}
