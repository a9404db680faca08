package commands

import (
	"fmt"

	"github.com/dyluth/lineblame/internal/printer"
	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string
)

// rootCmd represents the lineblame command; it takes no subcommands
var rootCmd = &cobra.Command{
	Use:   "lineblame FILE",
	Short: "Annotate the lines of a file with their recent Git history",
	Long: `lineblame prints, as a single JSON object keyed by line number, which
revision last changed each line of FILE, that revision's log message, and a
highlight color whose alpha decays with the age of the change.

Only revisions younger than the RecentDays preference are highlighted. The
first line of each recent revision carries the full record:

  {"text": "<git show output>", "start": <first line of block>, "color": "R G B A"}

Later lines of the same revision defer to an earlier line:

  {"alias": <line>}  or  {"alias": <line>, "start": <first line of block>}

Preferences (RecentDays, RecentColor) are read from the LineNumber defaults
domain on macOS, and from $LINEBLAME_CONFIG or
$XDG_CONFIG_HOME/lineblame/preferences.yml elsewhere.

Set LINEBLAME_DEBUG=1 to log progress to stderr.`,
	Version: version,
	Args:    fileArg,
	RunE:    runBlame,
	// Enable strict flag parsing - unknown flags will cause an error
	FParseErrWhitelist: cobra.FParseErrWhitelist{},
}

// Execute runs the root command.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	// Silence Cobra's default error and usage printing
	// We print formatted colored errors directly in the printer package
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

// fileArg accepts exactly one positional argument, reporting misuse the same
// way as other failures since cobra's own error output is silenced
func fileArg(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return printer.Error(
			"expected exactly one file",
			fmt.Sprintf("Got %d arguments.", len(args)),
			[]string{"Usage:\n  lineblame FILE"},
		)
	}
	return nil
}
