package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/vemoo/ubi/internal/installer"
	"github.com/vemoo/ubi/internal/platform"
)

// installOptions holds the parsed `ubi install` flags.
type installOptions struct {
	from       string // asset path
	to         string // install path for the executable
	exe        string // executable stem, derived from the asset name when empty
	windows    bool
	windowsSet bool // --windows was passed; otherwise detect the host
	verbose    bool
	showHelp   bool
}

// runInstall handles the `ubi install` subcommand
func runInstall(args []string) error {
	opts, err := parseInstallArgs(args)
	if err != nil {
		return err
	}
	if opts.showHelp {
		printInstallHelp()
		return nil
	}

	if opts.from == "" {
		return fmt.Errorf("no asset specified; run 'ubi install --help' for usage")
	}
	if opts.to == "" {
		return fmt.Errorf("no install path specified; run 'ubi install --help' for usage")
	}
	if opts.exe == "" {
		opts.exe = defaultExeStem(opts.from)
	}

	isWindows := opts.windows
	if !opts.windowsSet {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		info, err := platform.NewDetector().Detect(ctx)
		if err != nil {
			return fmt.Errorf("detect host platform: %w", err)
		}
		isWindows = info.IsWindows()
	}

	log := &stderrLogger{verbose: opts.verbose}
	inst := installer.NewExeInstaller(opts.to, opts.exe, isWindows, log)

	installed, err := inst.Install(installer.NewAsset(opts.from))
	if err != nil {
		return err
	}

	fmt.Printf("Installed %s\n", installed)
	return nil
}

// parseInstallArgs parses the install subcommand's flags.
func parseInstallArgs(args []string) (installOptions, error) {
	var opts installOptions

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--help", "-h":
			opts.showHelp = true
		case "--verbose", "-v":
			opts.verbose = true
		case "--windows":
			opts.windows = true
			opts.windowsSet = true
		case "--from", "--to", "--exe":
			if i+1 >= len(args) {
				return opts, fmt.Errorf("%s requires a value; run 'ubi install --help' for usage", arg)
			}
			i++
			switch arg {
			case "--from":
				opts.from = args[i]
			case "--to":
				opts.to = args[i]
			case "--exe":
				opts.exe = args[i]
			}
		default:
			return opts, fmt.Errorf("unknown option: %s\nRun 'ubi install --help' for usage", arg)
		}
	}

	return opts, nil
}

// defaultExeStem derives the executable stem from the asset's file
// name: the base name with its recognized extension removed. Names
// without a recognized extension are used as-is.
func defaultExeStem(assetPath string) string {
	base := filepath.Base(assetPath)
	ext, ok, err := installer.ExtensionFromPath(base)
	if err != nil || !ok {
		return base
	}
	return strings.TrimSuffix(base, ext.String())
}

// printInstallHelp prints help for the install command
func printInstallHelp() {
	fmt.Println("Usage: ubi install [options]")
	fmt.Println()
	fmt.Println("Install one executable from a release asset. The asset may be a")
	fmt.Println("tarball or zip containing the executable, a gzip/bzip2/xz")
	fmt.Println("compressed executable, or the executable itself.")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -h, --help       Show this help message")
	fmt.Println("  -v, --verbose    Log each extraction step to stderr")
	fmt.Println("  --from <path>    Asset file to install from (required)")
	fmt.Println("  --to <path>      Where to install the executable (required)")
	fmt.Println("  --exe <name>     Executable name to look for inside archives")
	fmt.Println("                   (default: asset name without its extension)")
	fmt.Println("  --windows        Use Windows matching rules (.exe/.bat names,")
	fmt.Println("                   no chmod); default follows the host platform")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  ubi install --from tool-linux-amd64.tar.gz --to ~/bin/tool")
	fmt.Println("  ubi install --from tool.zip --to ~/bin/tool --exe tool")
	fmt.Println("  ubi install --from tool.exe --to 'C:\\bin\\tool' --windows")
	fmt.Println()
	fmt.Println("Notes:")
	fmt.Println("  - Inside archives, an entry named exactly after --exe wins;")
	fmt.Println("    otherwise the first executable entry whose name starts with")
	fmt.Println("    the --exe value is used")
	fmt.Println("  - Self-contained formats (.AppImage, .pyz, .exe, .bat) keep")
	fmt.Println("    their extension on the installed file")
	fmt.Println()
}
