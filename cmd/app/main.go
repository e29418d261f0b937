// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package main

import (
	"context"
	"log"
	"os"

	"codeberg.org/oliverandrich/imagetext/internal/config"
	"codeberg.org/oliverandrich/imagetext/internal/server"
	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:   "imagetext",
		Usage:  "Image-to-text extraction service",
		Flags:  config.Flags(),
		Action: server.Run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
