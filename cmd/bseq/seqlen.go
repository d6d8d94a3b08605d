// 15 May 2025

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bitbucket.org/nigevogen/bseq/pkg/seqlen"
)

var seqlenCmd = &cobra.Command{
	Use:   "seqlen [input]",
	Short: "Write name, species, length and ungapped length of each sequence",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := loadConf()
		if err != nil {
			return err
		}
		stype, err := conf.Type()
		if err != nil {
			return err
		}
		var infile string
		if len(args) > 0 {
			infile = args[0]
		}
		return seqlen.Mymain(infile, viper.GetString("out"), stype)
	},
}

func init() {
	rootCmd.AddCommand(seqlenCmd)
}
