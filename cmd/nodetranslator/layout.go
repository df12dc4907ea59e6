package main

import (
	"encoding/hex"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/simonzhangsm/capnproto/internal/driver"
	"github.com/simonzhangsm/capnproto/internal/schema"
	"github.com/simonzhangsm/capnproto/internal/ui"
)

var layoutInteractive bool

func init() {
	layoutCmd.Flags().BoolVar(&layoutInteractive, "interactive", false, "open an interactive bit-map view instead of a static table")
}

var layoutCmd = &cobra.Command{
	Use:   "layout <digest-hex>",
	Short: "Render a cached struct's layout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, err := openCache(cmd)
		if err != nil {
			return err
		}
		raw, err := hex.DecodeString(args[0])
		if err != nil || len(raw) != len(driver.Digest{}) {
			return fmt.Errorf("%q is not a valid digest", args[0])
		}
		var key driver.Digest
		copy(key[:], raw)

		payload, ok, err := cache.Get(key)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no cache entry for %s", args[0])
		}

		if layoutInteractive {
			return runLayoutTUI(payload.Node)
		}
		return printLayout(cmd, payload.Node, payload.Groups)
	},
}

func printLayout(cmd *cobra.Command, node *schema.Node, groups []*schema.Node) error {
	useColor := resolveColor(cmd)
	fmt.Fprint(cmd.OutOrStdout(), ui.RenderTable(node, useColor))
	for _, g := range groups {
		fmt.Fprintln(cmd.OutOrStdout())
		fmt.Fprint(cmd.OutOrStdout(), ui.RenderTable(g, useColor))
	}
	return nil
}

func runLayoutTUI(node *schema.Node) error {
	_, err := tea.NewProgram(ui.NewLayoutModel(node)).Run()
	return err
}
