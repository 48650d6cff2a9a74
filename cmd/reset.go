package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset <account>",
	Short: "Zero a student's progression counters",
	Long: `Resets XP, streaks, passes, and topic progress to zero. The account
itself and its earned badges are preserved.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.ResetAccount(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("Account reset.")
		return nil
	},
}
