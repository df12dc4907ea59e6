package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simonzhangsm/capnproto/internal/config"
	"github.com/simonzhangsm/capnproto/internal/driver"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the disk cache of translated layouts",
}

var cacheShowCmd = &cobra.Command{
	Use:   "show <digest-hex>",
	Short: "Print the cached node and group layouts for a content digest",
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
		return printLayout(cmd, payload.Node, payload.Groups)
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop every cached layout",
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, err := openCache(cmd)
		if err != nil {
			return err
		}
		return cache.DropAll()
	},
}

func init() {
	cacheCmd.AddCommand(cacheShowCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}

func openCache(cmd *cobra.Command) (*driver.DiskCache, error) {
	dir, _ := cmd.Flags().GetString("cache-dir")
	if dir == "" {
		cfg, _, err := config.Load(".")
		if err != nil {
			return nil, err
		}
		dir = cfg.Cache.Dir
	}
	if dir == "" {
		dir = ".nodetranslator-cache"
	}
	return driver.OpenDiskCache(dir)
}
