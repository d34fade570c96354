package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	listLong   bool
	listScored bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored profiles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := newApplication()
		if err != nil {
			return err
		}

		var listErr error
		switch {
		case listScored:
			listErr = application.Ctl.ListAllScored(cmd.Context())
		case listLong:
			listErr = application.Ctl.ListAllLong()
		default:
			listErr = application.Ctl.ListAll()
		}
		if listErr != nil {
			return fmt.Errorf("cant list profiles: %w", listErr)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolVarP(&listLong, "long", "l", false, "Include output specs per profile")
	listCmd.Flags().BoolVar(&listScored, "scored", false, "Score profiles against the connected outputs, best first")
}
