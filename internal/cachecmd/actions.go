// Package cachecmd implements the cache maintenance subcommands.
package cachecmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/blckbxtv/rumbledir/models"
	"github.com/blckbxtv/rumbledir/pkg/cache"
)

func cachePath(c *cli.Context) (string, string, error) {
	config, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return "", "", err
	}
	config.ApplyEnv()
	if c.IsSet("data-dir") {
		config.DataDir = c.String("data-dir")
	}
	return filepath.Join(config.DataDir, cache.DefaultFileName), config.DataDir, nil
}

// StatsAction prints the entry count per cache namespace.
func StatsAction(c *cli.Context) error {
	path, _, err := cachePath(c)
	if err != nil {
		return err
	}

	store := cache.Load(path)
	stats := store.Stats()
	if len(stats) == 0 {
		fmt.Println("Cache is empty")
		return nil
	}

	if info, err := os.Stat(path); err == nil {
		fmt.Printf("Cache file: %s (%d bytes)\n", path, info.Size())
	}
	for _, ns := range stats {
		fmt.Printf("  %-12s %d entries\n", ns.Name, ns.Entries)
	}
	return nil
}

// ClearAction wipes one namespace, or the whole cache file when no namespace
// is given. --subs also removes the materialized subtitle tree.
func ClearAction(c *cli.Context) error {
	path, dataDir, err := cachePath(c)
	if err != nil {
		return err
	}

	if namespace := c.Args().Get(0); namespace != "" {
		store := cache.Load(path)
		store.Invalidate(namespace)
		if err := store.Flush(path); err != nil {
			return fmt.Errorf("failed to persist cleared cache: %w", err)
		}
		fmt.Printf("Cleared namespace %s\n", namespace)
	} else {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove cache file: %w", err)
		}
		fmt.Println("Cleared cache")
	}

	if c.Bool("subs") {
		subsDir := filepath.Join(dataDir, "subs")
		if err := os.RemoveAll(subsDir); err != nil {
			return fmt.Errorf("failed to remove subtitles: %w", err)
		}
		fmt.Printf("Removed %s\n", subsDir)
	}
	return nil
}
