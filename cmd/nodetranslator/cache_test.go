package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

func commandWithCacheDir(dir string) *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("cache-dir", dir, "")
	return cmd
}

func TestOpenCacheUsesExplicitFlag(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache-root")
	cache, err := openCache(commandWithCacheDir(dir))
	if err != nil {
		t.Fatalf("openCache: %v", err)
	}
	if cache == nil {
		t.Fatal("openCache returned a nil cache with no error")
	}
}

func TestOpenCacheCreatesDirectoryIfMissing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "does", "not", "exist", "yet")
	if _, err := openCache(commandWithCacheDir(dir)); err != nil {
		t.Fatalf("openCache: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("os.Stat(%s): %v", dir, err)
	}
	if !info.IsDir() {
		t.Fatalf("%s should be a directory", dir)
	}
}
