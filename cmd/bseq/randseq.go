// 31 July 2020

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bitbucket.org/nigevogen/bseq/pkg/randseq"
)

// randseqCmd makes random aligned sequences for testing the code.
var randseqCmd = &cobra.Command{
	Use:   "randseq nseq length",
	Short: "Write random aligned sequences, for testing",
	Long: `Write nseq random sequences, all of the same length.
We are most interested in benchmarking and parsing, so the content is
not so important. White space is sprinkled into sequence lines unless
--nowhite is given.`,
	Args:    cobra.ExactArgs(2),
	PreRunE: bindLocal,
	RunE: func(cmd *cobra.Command, args []string) error {
		const emsg = "failed converting %s to positive integer"
		nseq, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf(emsg, args[0])
		}
		length, err := strconv.ParseUint(args[1], 10, 32)
		if err != nil {
			return fmt.Errorf(emsg, args[1])
		}
		rArgs := randseq.RandSeqArgs{
			Iseed:   viper.GetInt64("seed"),
			Cmmt:    viper.GetString("cmmt"),
			Nseq:    int(nseq),
			Len:     int(length),
			NoGap:   viper.GetBool("nogap"),
			NoWhite: viper.GetBool("nowhite"),
			Wrtr:    os.Stdout,
		}
		if viper.GetBool("prot") {
			rArgs.Letters = randseq.Prot
		}
		if fname := viper.GetString("out"); fname != "" {
			fp, err := os.Create(fname)
			if err != nil {
				return fmt.Errorf("file for output: %w", err)
			}
			defer fp.Close()
			rArgs.Wrtr = fp
		}
		return randseq.RandSeqMain(&rArgs)
	},
}

func init() {
	const iseed int64 = 1637
	f := randseqCmd.Flags()
	f.Int64P("seed", "r", iseed, "random number seed")
	f.StringP("cmmt", "C", "random sequence", "comment for the sequences")
	f.BoolP("nogap", "G", false, "do not put gaps in sequences")
	f.BoolP("nowhite", "W", false, "do not put white space in sequence lines")
	f.BoolP("prot", "p", false, "protein rather than nucleotide sequences")
	rootCmd.AddCommand(randseqCmd)
}
