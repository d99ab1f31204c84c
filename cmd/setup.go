package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/lrcdl/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup writes a config.toml from the embedded example configuration.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if err := shared.CreateConfigFile(configPath); err != nil {
		return fmt.Errorf("setup failed: %w", err)
	}

	r.logger.Info("config file created", "path", configPath)
	r.writePlain("Wrote %s - edit it to adjust the lyrics service and pacing settings\n", configPath)
	return nil
}
