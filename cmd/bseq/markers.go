// 18 Oct 2026

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bitbucket.org/nigevogen/bseq/pkg/markfilt"
)

var markerHelp = map[markfilt.Op]string{
	markfilt.Filter: "Remove alignment columns where a marker has one of the characters",
	markfilt.Keep:   "Keep only the alignment columns where every marker has one of the characters",
	markfilt.Mask:   "Overwrite alignment columns where a marker has one of the characters",
	markfilt.Coords: "List the runs of each marker character, zero based and half open",
	markfilt.Encode: "Write each marker in run length form",
}

// bindLocal binds the flags of the command being run. Several commands
// share flag names, so they cannot all be bound in init.
func bindLocal(cmd *cobra.Command, args []string) error {
	return viper.BindPFlags(cmd.Flags())
}

func markerRun(op markfilt.Op) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		conf, err := loadConf()
		if err != nil {
			return err
		}
		mfArgs := &markfilt.Args{
			OutFile: viper.GetString("out"),
			Conf:    conf,
			Op:      op,
			Markers: viper.GetStringSlice("marker"),
			Chars:   viper.GetString("chars"),
			Gaps:    viper.GetBool("gaps"),
			Verbose: viper.GetBool("verbose"),
		}
		if len(args) > 0 {
			mfArgs.InFile = args[0]
		}
		return exitWith(markfilt.MyMain(mfArgs))
	}
}

func init() {
	for _, op := range []markfilt.Op{markfilt.Filter, markfilt.Keep, markfilt.Mask, markfilt.Coords, markfilt.Encode} {
		cmd := &cobra.Command{
			Use:     op.String() + " [input]",
			Short:   markerHelp[op],
			Args:    cobra.MaximumNArgs(1),
			PreRunE: bindLocal,
			RunE:    markerRun(op),
		}
		cmd.Flags().StringSliceP("marker", "m", nil, "markers to use, all of them if not given")
		cmd.Flags().StringP("chars", "x", "", "marker characters to act on, the exclude_char setting if empty")
		cmd.Flags().BoolP("gaps", "g", false, `add a marker "gaps" made from the gaps in the alignment`)
		rootCmd.AddCommand(cmd)
	}
}
