package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Track    *TrackCommand
	Report   *ReportCommand
	Status   *StatusCommand
	Classify *ClassifyCommand
	Prune    *PruneCommand
	Purge    *PurgeCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "sitelog"
	parser.LongDescription = "Measures time spent per website from the foreground browser window title. Runs the tracker when no command is given."
	parser.SubcommandsOptional = true

	cmds := &commands{
		Track:    &TrackCommand{globals: &globals, version: version},
		Report:   &ReportCommand{globals: &globals, version: version},
		Status:   &StatusCommand{globals: &globals, version: version},
		Classify: &ClassifyCommand{globals: &globals, version: version},
		Prune:    &PruneCommand{globals: &globals, version: version},
		Purge:    &PurgeCommand{globals: &globals, version: version},
	}

	parser.AddCommand("track", "Track browser time until interrupted (default)", "Sample the foreground browser window until Ctrl+C, then save daily totals and render charts.", cmds.Track)
	parser.AddCommand("report", "Render daily and weekly charts", "Render the daily share pie chart and the weekly hours bar chart from stored data.", cmds.Report)
	parser.AddCommand("status", "Show recorded totals", "Show today's and this week's per-site totals and storage statistics.", cmds.Status)
	parser.AddCommand("classify", "Classify window titles", "Print the site label each window title would be credited to.", cmds.Classify)
	parser.AddCommand("prune", "Delete old days", "Delete stored days older than the retention period.", cmds.Prune)
	parser.AddCommand("purge", "Delete ALL stored data", "Delete ALL stored data. Destructive operation with safety prompt.", cmds.Purge)

	return parser, &globals, cmds
}

// Run is the main entry point for the sitelog CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the
// matched subcommand, or the tracker when none is given.
func RunWithArgs(version string, args []string) error {
	// Handle --version before the parser so it never starts tracking.
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("sitelog %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, cmds := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	if parser.Active == nil {
		if err := cmds.Track.Execute(nil); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return err
		}
	}

	return nil
}
