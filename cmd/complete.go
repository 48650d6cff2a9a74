package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/briolearn/brio/internal/badges"
)

var completeCmd = &cobra.Command{
	Use:   "complete <account> <topic> <xp>",
	Short: "Record a completed mission",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		accountID, topicID := args[0], args[1]
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
		ctx := cmd.Context()

		// The cap is a user-facing block checked before the ledger runs.
		if err := led.CheckDailyCap(ctx, accountID); err != nil {
			return err
		}

		res, err := led.ApplyMissionCompletion(ctx, accountID, topicID, xp)
		if err != nil {
			return err
		}

		fmt.Printf("+%d XP in %s (%s, %d%%)\n", xp, topicID, res.Tier.DisplayName(), res.TierPct)
		if res.MasteredNow {
			fmt.Printf("Topic mastered: %s!\n", topicID)
		}
		fmt.Printf("Daily streak: %d  Weekly: %d/%d XP toward goal\n",
			res.Account.DailyStreak, res.Account.WeeklyXP, res.Account.WeeklyGoal)

		switch {
		case res.Rollover.HolidayProtected:
			fmt.Println("New week — holiday protected, streak preserved.")
		case res.Rollover.PassConsumed:
			fmt.Printf("New week — vacation pass used, %d left.\n", res.Rollover.Passes)
		case res.Rollover.StreakReset:
			fmt.Println("New week — weekly goal missed, streak reset.")
		case res.Rollover.Applied && !res.Rollover.Initialized:
			fmt.Printf("New week — streak is now %d!\n", res.Rollover.Streak)
		}

		awarded, err := badges.NewService(st).CheckAndAward(ctx, accountID)
		if err != nil {
			return err
		}
		for _, a := range awarded {
			fmt.Printf("Badge earned: %s (%s)\n", a.Name, a.Kind.DisplayName())
		}
		return nil
	},
}

func init() {
	completeCmd.Flags().String("at", "", "Pin the reference instant (RFC 3339) instead of the host clock")
}
