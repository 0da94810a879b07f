// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/GermanBionicSystems/paperframe/config"
)

var showSecrets bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or edit the runtime configuration.",
}

var configGetCmd = &cobra.Command{
	Use:   "get [key...]",
	Short: "Print configuration values, all of them when no key is given.",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		r, err := s.Load()
		if err != nil {
			return err
		}
		return printConfig(cmd.OutOrStdout(), r, args)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set key=value...",
	Short: "Change configuration values.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		r, err := s.Load()
		if err != nil {
			return err
		}
		if err := applyAssignments(r, args); err != nil {
			return err
		}
		return s.Save(r)
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default configuration.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		return s.Save(config.Default())
	},
}

func init() {
	configGetCmd.Flags().BoolVar(&showSecrets, "show-secrets", false, "print the broker password")
	configCmd.AddCommand(configGetCmd, configSetCmd, configResetCmd)
}

// applyAssignments sets every key=value pair on r. The value "-" for user or
// password drops the broker credentials.
func applyAssignments(r *config.Record, args []string) error {
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("%q is not a key=value pair", arg)
		}
		if (key == config.KeyUser || key == config.KeyPassword) && value == "-" {
			r.ClearAuth()
			continue
		}
		if err := r.Set(key, value); err != nil {
			return err
		}
	}
	return nil
}

func printConfig(w io.Writer, r *config.Record, keys []string) error {
	all := len(keys) == 0
	if all {
		keys = config.Keys
	}
	for _, key := range keys {
		v, err := r.Get(key)
		if err != nil {
			// Auth keys are absent from version 1 records.
			if all {
				continue
			}
			return err
		}
		if key == config.KeyPassword && !showSecrets && v != "" {
			v = "********"
		}
		fmt.Fprintf(w, "%s=%s\n", key, v)
	}
	return nil
}
