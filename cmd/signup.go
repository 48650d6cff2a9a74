package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var signupCmd = &cobra.Command{
	Use:   "signup <name>",
	Short: "Create a student account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		premium, _ := cmd.Flags().GetBool("premium")
		acc, err := st.CreateAccount(cmd.Context(), args[0], premium)
		if err != nil {
			return err
		}

		fmt.Println(acc.ID)
		return nil
	},
}

func init() {
	signupCmd.Flags().Bool("premium", false, "Create the account on the paying tier (no daily mission cap)")
}
