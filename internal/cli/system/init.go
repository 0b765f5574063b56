package system

import (
	"errors"
	"fmt"
	"os"

	"rollcall/internal/cli"
	"rollcall/internal/config"
)

type InitCmd struct {
	Force bool `help:"Force reset by deleting the existing database before initialization."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		dbPath := ctx.Store.GetConfigPath()
		if _, err := os.Stat(dbPath); err == nil {
			// Close first to prevent file locking issues.
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized rollcall storage at: %s\n", ctx.Store.GetConfigPath())

	// Write a default client config unless one already exists.
	configPath, err := config.Path()
	if err != nil {
		return fmt.Errorf("failed to locate config directory: %w", err)
	}
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		if err := config.Save(config.Default()); err != nil {
			return fmt.Errorf("failed to write default config: %w", err)
		}
		fmt.Printf("Wrote default config to: %s\n", configPath)
	}

	return nil
}
