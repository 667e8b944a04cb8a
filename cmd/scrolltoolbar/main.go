// scrolltoolbar: a horizontally scrollable, animated toolbar with
// expandable subitem panels, hosted in the terminal.
//
// Usage:
//
//	scrolltoolbar <command> [flags]
//
// Commands:
//
//	run       Start the interactive toolbar
//	history   List recorded sessions and events
//	stats     Summarize toolbar usage
//	version   Print version information
package main

import (
	"os"

	"github.com/Mr-Dark-debug/scrolltoolbar/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
