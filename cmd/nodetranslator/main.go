// Command nodetranslator inspects and visualizes struct layouts produced
// by internal/translator and cached by internal/driver. Declaration
// parsing is out of scope for this module (see decl.Decl's doc comment),
// so this CLI operates on the disk cache an embedding compiler writes to,
// not on .capnp source directly — the same way surge's CLI operates on an
// already-resolved project tree rather than re-implementing its own
// frontend in cmd/surge.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/simonzhangsm/capnproto/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "nodetranslator",
	Short: "Inspect struct layouts translated by the node translator",
	Long:  `nodetranslator renders and caches the output of a capnproto-style struct layout translator.`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(layoutCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("cache-dir", "", "override the disk cache directory (defaults to the manifest's cache.dir)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal, the same check
// surge's CLI makes before deciding whether --color=auto should colorize.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// resolveColor turns the --color flag plus TTY detection into a single
// boolean, mirroring surge's auto|on|off handling.
func resolveColor(cmd *cobra.Command) bool {
	mode, _ := cmd.Flags().GetString("color")
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(os.Stdout)
	}
}
