package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/specular-eng/specular/display"
	"github.com/specular-eng/specular/version"
)

// VersionCmd shows version information.
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show specular version information",
	Long:  `Display version, build time, commit hash, and platform information for the specular binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		info := version.Get()

		if display.ShouldOutputJSON(cmd) {
			display.OutputJSON(info)
			return
		}

		fmt.Println(info.String())
		fmt.Printf("Platform: %s\n", info.Platform)
		fmt.Printf("Go: %s\n", info.GoVersion)
	},
}

func init() {
	VersionCmd.Flags().BoolP("json", "j", false, "Output version info as JSON")
}
