package cmd

import (
	"fmt"

	"github.com/randrctl/randrctl/internal/ctl"
	"github.com/randrctl/randrctl/internal/profile"
	"github.com/spf13/cobra"
)

var (
	dumpToFile     bool
	dumpPriority   int
	dumpNoEdid     bool
	dumpNoSupports bool
	dumpNoPrefers  bool
	dumpNoRate     bool
	dumpJSON       bool
)

var dumpCmd = &cobra.Command{
	Use:   "dump <profile>",
	Short: "Capture the current output layout as a profile",
	Long:  "Reads the live xrandr state and renders it as a profile, matching rules included. By default the profile is printed; --save writes it into the preferred home.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := newApplication()
		if err != nil {
			return err
		}
		opts := ctl.DumpOptions{
			ToFile:               dumpToFile,
			IncludeEdidRule:      !dumpNoEdid,
			IncludeSupportsRule:  !dumpNoSupports,
			IncludePreferredRule: !dumpNoPrefers,
			IncludeRefreshRate:   !dumpNoRate,
			Priority:             dumpPriority,
			JSON:                 dumpJSON,
		}
		if err := application.Ctl.DumpCurrent(cmd.Context(), args[0], opts); err != nil {
			return fmt.Errorf("cant dump current state: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)

	dumpCmd.Flags().BoolVarP(&dumpToFile, "save", "s", false, "Write the profile into the preferred home instead of printing it")
	dumpCmd.Flags().IntVarP(&dumpPriority, "priority", "p", profile.DefaultPriority, "Profile priority, breaks ties between equally scored profiles")
	dumpCmd.Flags().BoolVar(&dumpNoEdid, "no-edid", false, "Do not include edid matching rules")
	dumpCmd.Flags().BoolVar(&dumpNoSupports, "no-supports", false, "Do not include supported-modes matching rules")
	dumpCmd.Flags().BoolVar(&dumpNoPrefers, "no-prefers", false, "Do not include preferred-mode matching rules")
	dumpCmd.Flags().BoolVar(&dumpNoRate, "no-rate", false, "Do not include refresh rates in output specs")
	dumpCmd.Flags().BoolVar(&dumpJSON, "json", false, "Render as JSON instead of YAML")
}
