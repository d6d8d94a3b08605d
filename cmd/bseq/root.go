// 18 Oct 2026

package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bitbucket.org/nigevogen/bseq/pkg/config"
	. "bitbucket.org/nigevogen/bseq/pkg/seq/common"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:           "bseq",
	Short:         "Filter, mask and squash sequence alignments using column markers",
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if !viper.GetBool("verbose") {
			log.SetOutput(io.Discard)
		}
	},
}

// exitError carries an exit code out of a command.
type exitError int

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", int(e)) }

// exitWith turns the exit code of a MyMain into an error for cobra.
func exitWith(code int) error {
	if code == ExitSuccess {
		return nil
	}
	return exitError(code)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if e, ok := err.(exitError); ok {
			os.Exit(int(e))
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitUsageError)
	}
}

// loadConf reads the file named by --conf, or gives the defaults.
// Flags set on the command line beat the file.
func loadConf() (*config.Conf, error) {
	conf := config.DefaultConf
	c := &conf
	if fname := viper.GetString("conf"); fname != "" {
		var err error
		if c, err = config.ReadConf(fname); err != nil {
			return nil, err
		}
		log.Println("read settings from", fname)
	}
	if viper.IsSet("width") {
		c.LineWidth = viper.GetInt("width")
	}
	if viper.IsSet("type") {
		c.SeqType = viper.GetString("type")
		if _, err := c.Type(); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func init() {
	viper.SetEnvPrefix("BSEQ")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	pf := rootCmd.PersistentFlags()
	pf.StringP("conf", "c", "", "toml file with markers and settings")
	pf.StringP("out", "o", "", "output file name, stdout if empty")
	pf.IntP("width", "w", config.DefaultConf.LineWidth, "sequence line width, 0 for no breaks")
	pf.StringP("type", "t", config.DefaultConf.SeqType, "sequence type: nucleotide, protein or codon")
	pf.BoolP("verbose", "v", false, "log progress to stderr")
	for _, name := range []string{"conf", "out", "width", "type", "verbose"} {
		viper.BindPFlag(name, pf.Lookup(name))
	}
}
