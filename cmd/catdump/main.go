// Copyright 2014 The catalog-24x7 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Catdump dumps the performance counter events described by an
// hv-24x7 catalog.
//
// By default it prints each event's name and the
// domain/offset/starting_index/lpar lines needed to request its
// counter. Raising --debug adds structured record dumps and, at the
// highest tier, raw hex dumps.
package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jmesmon/catalog-24x7/catalog"
)

var debugLevel int

var rootCmd = &cobra.Command{
	Use:          "catdump <catalog-file>",
	Short:        "Dump the events in an hv-24x7 performance counter catalog",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger(debugLevel)

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		d := catalog.Decoder{Log: log}
		c, err := d.Decode(f)
		if err != nil {
			return err
		}

		p := catalog.Printer{W: os.Stdout, Debug: debugLevel, Log: log}
		p.PrintCatalog(c)
		return nil
	},
}

// newLogger builds the diagnostics logger. Rendered records go to
// stdout, diagnostics to stderr, so output stays pipeable.
func newLogger(debug int) zerolog.Logger {
	log := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()
	switch {
	case debug <= 0:
		return log.Level(zerolog.WarnLevel)
	case debug == 1:
		return log.Level(zerolog.DebugLevel)
	default:
		return log.Level(zerolog.TraceLevel)
	}
}

func main() {
	rootCmd.Flags().IntVarP(&debugLevel, "debug", "d", 0,
		"debug level (1 adds record dumps, 5 event structs, 100 hex dumps)")
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
