// SPDX-License-Identifier: MIT

// Command invcache prints the inverse of a matrix file, resolving it through
// a caching front-end.
//
//	invcache inverse [--engine lu|gonum] [--output text|yaml|json] [--check] FILE
//
// Set INVCACHE_LOG=debug to see cache hits and misses. Flag defaults can be
// placed under the "inverse" key of invcache.yaml (see INVCACHE_CFG).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/katalvlaran/invcache/internal/command"
	mylog "github.com/katalvlaran/invcache/internal/log"
)

func main() {
	os.Exit(realMain(context.Background(), os.Args))
}

// realMain returns 0 on success, 1 when the app cannot be built and 2 when
// the command fails.
func realMain(ctx context.Context, args []string) int {
	mylog.InitLogger()

	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "No command specified.")
		args = append(args, "--help")
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	return 0
}
