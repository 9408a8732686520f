package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var preamble = `ohplaylistd ` + Version + `
Copyright (C) 2026 Michael Picht <https://gitlab.com/mipimipi/ohplaylistd>

ohplaylistd is an OpenHome Playlist service for UPnP media renderers.

Web site: https://gitlab.com/mipimipi/ohplaylistd/

ohplaylistd comes with ABSOLUTELY NO WARRANTY. This is free software, and
you are welcome to redistribute it under certain conditions. See the GNU
General Public Licence for details.`

var rootCmd = &cobra.Command{
	Use:     "ohplaylistd",
	Short:   "ohplaylistd OpenHome Playlist service",
	Long:    preamble,
	Version: Version,
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Printf("%v\n", err)
		os.Exit(1)
	}
}
