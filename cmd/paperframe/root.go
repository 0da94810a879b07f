// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/GermanBionicSystems/paperframe/config"
)

var (
	storeKind string
	storePath string
	simulate  bool
	spiName   string
	simScale  int
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "paperframe",
	Short: "Drive a Waveshare 2.66\" e-paper frame.",
	Long: `paperframe shows packed 1-bit images on a Waveshare 2.66" e-paper ` +
		`panel, serves them over HTTP and edits the frame's runtime ` +
		`configuration.`,
	SilenceUsage: true,
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&storeKind, "store", "env", "configuration store: env or sqlite")
	f.StringVar(&storePath, "store-path", "", "configuration file, paperframe.env or paperframe.sqlite3 when empty")
	f.BoolVar(&simulate, "sim", false, "render to the terminal instead of the SPI panel")
	f.StringVar(&spiName, "spi", "", "SPI port to use, first available when empty")
	f.IntVar(&simScale, "sim-scale", 2, "pixels per terminal cell with --sim")

	rootCmd.AddCommand(showCmd, serveCmd, configCmd)
}

// openStore opens the store selected by the flags and closes it at exit.
func openStore() (config.Store, error) {
	var s config.Store
	switch storeKind {
	case "env":
		path := storePath
		if path == "" {
			path = "paperframe.env"
		}
		s = config.NewEnvStore(path)
	case "sqlite":
		path := storePath
		if path == "" {
			path = "paperframe.sqlite3"
		}
		db, err := config.OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		s = db
	default:
		return nil, fmt.Errorf("unknown store %q, want env or sqlite", storeKind)
	}

	atexit.Register(func() { s.Close() })

	return s, nil
}
