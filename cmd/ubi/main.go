package main

import (
	"fmt"
	"os"
)

// Version will be set at build time via -ldflags
var Version = "v0.0.1"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version":
			fmt.Printf("ubi %s\n", Version)
			return
		case "install":
			if err := runInstall(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		case "extract":
			if err := runExtract(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		case "platform":
			if err := runPlatform(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		}
	}

	// Default: show help
	fmt.Println("ubi - universal binary installer")
	fmt.Println()
	fmt.Println("Installs executables from downloaded release assets: archives,")
	fmt.Println("compressed files, or bare binaries.")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  ubi --version                Show version information")
	fmt.Println("  ubi install [options]        Install one executable from an asset")
	fmt.Println("  ubi extract [options]        Unpack an entire archive into a directory")
	fmt.Println("  ubi platform                 Show detected host platform")
	fmt.Println()
	fmt.Println("Run 'ubi <command> --help' for command options.")
}
