// 18 Oct 2026

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bitbucket.org/nigevogen/bseq/pkg/squash"
)

// squashCmd removes the columns where a reference sequence has a gap.
var squashCmd = &cobra.Command{
	Use:   "squash reference [input]",
	Short: "Remove the columns where a reference sequence has a gap",
	Long: `Remove the columns where a reference sequence has a gap.
The reference is found by a string in its comment line, or by its number
counting from 1.`,
	Example: "  bseq squash 1 aln.fa\n  bseq squash 'homo sapiens' aln.fa -o squashed.fa",
	Args:    cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := loadConf()
		if err != nil {
			return err
		}
		var infile string
		if len(args) > 1 {
			infile = args[1]
		}
		return exitWith(squash.MyMain(args[0], infile, viper.GetString("out"), conf.LineWidth))
	},
}

func init() {
	rootCmd.AddCommand(squashCmd)
}
