package main

import (
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/cmd"
)

var rootCmd = &cobra.Command{
	Use:   "chaff",
	Short: "chaff - generate realistic, interlinked decoy files",
	Long: `chaff fills a directory with plausible business files: emails, reports,
spreadsheets and images that reference one another, with some of them
encoded or password protected and the passwords hinted at elsewhere.

Usage:
  chaff <command> [flags]

Available Commands:
  generate   Write a new set of chaff files
  plan       Preview what generate would write
  decode     Recover the original content of a chaff file
  clean      Remove the files written by a run
  config     Create and inspect settings

Run 'chaff help <command>' for more details on a specific command.
`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Print(figure.NewFigure("chaff", "", true).String())
		fmt.Println()
		fmt.Println("Run 'chaff --help' to see available commands.")
	},
}

func init() {
	cmd.Register(rootCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
