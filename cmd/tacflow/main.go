// Command tacflow runs the analysis pipeline over a small built-in fixture
// program and writes a report.Document as JSON. Real IR ingestion (parsing
// a host language into package ir's three-address form) is out of scope
// per spec §1 — the fixture loader here stands in for that external
// collaborator so the pipeline has something concrete to run over.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	tacflow "github.com/taclab/tacflow"
	"github.com/taclab/tacflow/ir"
	"github.com/taclab/tacflow/report"
	"github.com/taclab/tacflow/taint"
)

func main() {
	taintConfigPath := flag.String("taint-config", "", "path to a taint source/sink/transfer YAML document")
	flag.Parse()

	prog, entry, classes := fixtureProgram()

	var cfg *taint.Config
	if *taintConfigPath != "" {
		f, err := os.Open(*taintConfigPath)
		if err != nil {
			slog.Error("open taint config", "path", *taintConfigPath, "err", err)
			os.Exit(1)
		}
		defer f.Close()
		cfg, err = taint.LoadConfig(f)
		if err != nil {
			slog.Error("load taint config", "path", *taintConfigPath, "err", err)
			os.Exit(1)
		}
	}

	eng := &tacflow.Engine{Program: prog, Classes: classes, Entry: entry, TaintConfig: cfg}
	doc, err := eng.Run()
	if err != nil {
		slog.Error("run", "err", err)
		os.Exit(1)
	}

	if err := report.WriteJSON(os.Stdout, doc); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
