// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/katalvlaran/invcache/internal/config"
)

// Meta is attached to every subcommand through its Metadata map.
type Meta struct {
	Args    []string
	Config  config.Type
	Context context.Context
}

// InitApp loads the optional config file and builds the root command.
// A missing config file is fine; a malformed one is an error.
func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	cfg, err := config.Load()
	if err != nil && !errors.Is(err, config.ErrNotFound) {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return NewApp(Meta{
		Args:    args,
		Config:  cfg,
		Context: ctx,
	}), nil
}

// NewApp builds the root command from meta.
func NewApp(meta Meta) *cli.Command {
	app := &cli.Command{
		Name:  "invcache",
		Usage: "invert matrices through a caching front-end",
	}

	app.Commands = append(app.Commands,
		InverseCommandBuilder(meta),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app
}

// GetMeta returns the Meta stored in the command's Metadata, or the zero
// value when it is missing.
func GetMeta(cmd *cli.Command) Meta {
	if cmd == nil || cmd.Metadata == nil {
		return Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(Meta); ok {
		return m
	}

	return Meta{}
}
