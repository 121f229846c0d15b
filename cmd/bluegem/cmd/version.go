package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/csbluegem-go/pkg/bluegem"
)

// Version is set at build time via ldflags.
var Version = "dev"

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("bluegem %s (library %s)\n", Version, bluegem.Version)
		},
	}
}
