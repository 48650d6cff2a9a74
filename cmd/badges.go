package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/briolearn/brio/internal/badges"
)

var badgesCmd = &cobra.Command{
	Use:   "badges <account>",
	Short: "Run the badge check and list earned badges",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		ctx := cmd.Context()

		awarded, err := badges.NewService(st).CheckAndAward(ctx, args[0])
		if err != nil {
			return err
		}
		for _, a := range awarded {
			fmt.Printf("Newly earned: %s (%s)\n", a.Name, a.Kind.DisplayName())
		}

		earned, err := st.ListEarnedBadges(ctx, args[0])
		if err != nil {
			return err
		}
		if len(earned) == 0 {
			fmt.Println("No badges yet.")
			return nil
		}

		defs, err := st.ListBadges(ctx)
		if err != nil {
			return err
		}
		byID := make(map[string]string, len(defs))
		for _, d := range defs {
			byID[d.ID] = d.Name
		}
		for _, e := range earned {
			name := byID[e.BadgeID]
			if name == "" {
				name = e.BadgeID
			}
			fmt.Printf("%s — earned %s\n", name, e.EarnedAt.Format("2006-01-02"))
		}
		return nil
	},
}
