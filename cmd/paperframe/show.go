// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Show a packed 1-bit frame file on the panel.",
	Long: `Show reads a raw frame of 19 bytes per row and 296 rows, most ` +
		`significant bit first, set bits white, and shows it on the panel.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		frame, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		p, err := openPanel()
		if err != nil {
			return err
		}

		if err := p.show(frame); err != nil {
			return err
		}

		log.Printf("shown %s on %s", args[0], p.dev)
		return nil
	},
}
