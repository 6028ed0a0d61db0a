/*
Command tsindex builds a search index over the lines of text files and
runs queries against it.

Usage:

	tsindex [-config tsindex.yaml] [-ws id] [-metrics] -q query [-q query ...] file ...

Every non-blank line of the input files is indexed, with "file:line" as its
item. Files are loaded concurrently; the number of workers, the index mode,
the writing systems and collation options are taken from the configuration
(see package internal/config).

License

This project is provided under the terms of the UNLICENSE or
the 3-Clause BSD license denoted by the following SPDX identifier:

SPDX-License-Identifier: 'Unlicense' OR 'BSD-3-Clause'

You may use the project under the terms of either license.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"
	"sync"
	"syscall"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing/logrusadapter"
	"github.com/npillmayer/textrun/index"
	"github.com/npillmayer/textrun/internal/config"
	"github.com/npillmayer/textrun/sortkey"
	"github.com/npillmayer/textrun/tokenize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"golang.org/x/sync/errgroup"
)

type queries []string

func (q *queries) String() string { return strings.Join(*q, ", ") }

func (q *queries) Set(s string) error {
	*q = append(*q, s)
	return nil
}

func main() {
	configPath := flag.String("config", "", "path to config file")
	wsID := flag.Int("ws", 0, "writing system of the input files (0: default)")
	dumpMetrics := flag.Bool("metrics", false, "print metrics after the queries")
	var qs queries
	flag.Var(&qs, "q", "query (may be repeated)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := gtrace.CreateTracers(logrusadapter.GetAdapter()); err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up tracing: %v\n", err)
		os.Exit(1)
	}
	gtrace.CoreTracer.SetTraceLevel(cfg.Tracing.TraceLevel())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	if err := run(ctx, cfg, *wsID, flag.Args(), qs, reg, os.Stdout); err != nil {
		gtrace.CoreTracer.Errorf("tsindex: %v", err)
		os.Exit(1)
	}
	if *dumpMetrics {
		if err := writeMetrics(reg, os.Stdout); err != nil {
			gtrace.CoreTracer.Errorf("tsindex: %v", err)
			os.Exit(1)
		}
	}
}

// run loads files into a fresh index and prints the results of qs to w.
func run(ctx context.Context, cfg *config.Config, wsID int, files, qs []string,
	reg prometheus.Registerer, w io.Writer) error {
	//
	systems, err := cfg.Registry()
	if err != nil {
		return err
	}
	ws, ok := systems.Lookup(wsID)
	if !ok {
		return fmt.Errorf("writing system %d not configured", wsID)
	}
	mode, err := index.ParseMode(cfg.Index.Mode)
	if err != nil {
		return err
	}
	coll := sortkey.NewCollation(systems, sortkey.WithCollateOptions(cfg.Collation.Options()...))
	idx := index.New[string](mode, coll, tokenize.Words{Registry: systems},
		index.WithMetrics(index.NewMetrics(reg)))
	gtrace.CoreTracer.Infof("tsindex: %s index for writing system %s", mode, ws)
	//
	var mu sync.Mutex // guards idx
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Index.Workers)
	for _, file := range files {
		g.Go(func() error {
			return load(ctx, file, func(item, line string) error {
				mu.Lock()
				defer mu.Unlock()
				return idx.AddString(item, 1, ws.ID, line)
			})
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	//
	for _, q := range qs {
		seq, err := idx.SearchString(1, ws.ID, q)
		if err != nil {
			return fmt.Errorf("query %q: %w", q, err)
		}
		items := slices.Sorted(seq)
		fmt.Fprintf(w, "%q: %d results\n", q, len(items))
		for _, item := range items {
			fmt.Fprintf(w, "\t%s\n", item)
		}
	}
	return nil
}

// load calls add for every non-blank line of file.
func load(ctx context.Context, file string, add func(item, line string) error) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	n, count := 0, 0
	for scanner.Scan() {
		n++
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := add(fmt.Sprintf("%s:%d", file, n), line); err != nil {
			return fmt.Errorf("%s:%d: %w", file, n, err)
		}
		count++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", file, err)
	}
	gtrace.CoreTracer.Debugf("tsindex: loaded %d lines from %s", count, file)
	return nil
}

func writeMetrics(g prometheus.Gatherer, w io.Writer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
