package main

import (
	"fmt"

	"github.com/vemoo/ubi/internal/installer"
)

// extractOptions holds the parsed `ubi extract` flags.
type extractOptions struct {
	from     string // archive path
	to       string // install root
	verbose  bool
	showHelp bool
}

// runExtract handles the `ubi extract` subcommand
func runExtract(args []string) error {
	opts, err := parseExtractArgs(args)
	if err != nil {
		return err
	}
	if opts.showHelp {
		printExtractHelp()
		return nil
	}

	if opts.from == "" {
		return fmt.Errorf("no archive specified; run 'ubi extract --help' for usage")
	}
	if opts.to == "" {
		return fmt.Errorf("no target directory specified; run 'ubi extract --help' for usage")
	}

	log := &stderrLogger{verbose: opts.verbose}
	inst := installer.NewArchiveInstaller(opts.to, log)

	if err := inst.Install(installer.NewAsset(opts.from)); err != nil {
		return err
	}

	fmt.Printf("Extracted to %s\n", opts.to)
	return nil
}

// parseExtractArgs parses the extract subcommand's flags.
func parseExtractArgs(args []string) (extractOptions, error) {
	var opts extractOptions

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--help", "-h":
			opts.showHelp = true
		case "--verbose", "-v":
			opts.verbose = true
		case "--from", "--to":
			if i+1 >= len(args) {
				return opts, fmt.Errorf("%s requires a value; run 'ubi extract --help' for usage", arg)
			}
			i++
			if arg == "--from" {
				opts.from = args[i]
			} else {
				opts.to = args[i]
			}
		default:
			return opts, fmt.Errorf("unknown option: %s\nRun 'ubi extract --help' for usage", arg)
		}
	}

	return opts, nil
}

// printExtractHelp prints help for the extract command
func printExtractHelp() {
	fmt.Println("Usage: ubi extract [options]")
	fmt.Println()
	fmt.Println("Unpack an entire tarball or zip file into a directory. When the")
	fmt.Println("archive wraps everything in a single top-level directory, that")
	fmt.Println("wrapper is collapsed so the contents land directly in the target.")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -h, --help       Show this help message")
	fmt.Println("  -v, --verbose    Log each extraction step to stderr")
	fmt.Println("  --from <path>    Archive file to unpack (required)")
	fmt.Println("  --to <path>      Directory to unpack into (required)")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  ubi extract --from tool-1.0-linux.tar.gz --to ~/.local/tool")
	fmt.Println("  ubi extract --from tool.zip --to ./tool")
	fmt.Println()
}
