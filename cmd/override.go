package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var overrideCmd = &cobra.Command{
	Use:   "override <account> <topic> <xp>",
	Short: "Set a topic's XP directly (admin)",
	Long: `Sets the cumulative XP for a topic without touching streaks or the
account total. Mastery is recomputed from the new value.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		xp, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("xp must be an integer: %w", err)
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		led, err := newLedger(cmd, st)
		if err != nil {
			return err
		}

		tp, err := led.OverrideTopicXP(cmd.Context(), args[0], args[1], xp)
		if err != nil {
			return err
		}

		fmt.Printf("%s set to %d XP (mastered: %v)\n", tp.TopicID, tp.XP, tp.Mastered)
		return nil
	},
}
