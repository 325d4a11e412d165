package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/wildstyl3r/dfrxsec/internal/config"
	"github.com/wildstyl3r/dfrxsec/internal/report"
	"github.com/wildstyl3r/dfrxsec/internal/utils"
)

func main() {
	dataFlags := report.NewDataFlags(flag.CommandLine)
	var configFileNamePointer = flag.String("input", "", "run configuration in toml format")
	var energies = flag.String("e", "", "comma separated probe energies of an ad hoc run, in the configured input units")
	var threads = flag.Int("t", 0, "number of concurrent goroutines (overrides configuration)")
	var verbose = flag.Bool("v", false, "verbose output")
	flag.Parse()

	startTime := time.Now()
	fmt.Printf("Current time: %s\n", startTime.UTC().Format(time.UnixDate))

	logger := log.New(io.Discard, "", 0)
	if *verbose {
		logger = log.New(os.Stderr, "ReinDFR: ", log.Lmsgprefix)
	}

	cfg, err := loadConfig(*configFileNamePointer, *energies)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	outputPath := ""
	if cfg.OutputDir != "" && cfg.OutputDir != "." {
		if err := os.MkdirAll(cfg.OutputDir, 0750); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		outputPath = cfg.OutputDir
	}
	dataFlags.SetOutputPath(outputPath)

	var summary utils.CSV
	failed := false
	for _, runName := range cfg.RunNames() {
		fmt.Println("\n" + runName)
		run, err := cfg.Unify(runName)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			failed = true
			continue
		}
		if *threads > 0 {
			run.Threads = *threads
		}
		de, err := report.NewDataExtractor(run, cfg.Store(run.Algorithm), logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "run %s: %v\n", runName, err)
			failed = true
			continue
		}
		for i, E := range run.Energies {
			fmt.Printf("E = %g GeV: sigma = %g 1E-38 cm2\n", E, de.Totals()[i]/config.XSecUnit)
		}
		if err := de.Save(runName, dataFlags, cfg.OutputUnits); err != nil {
			fmt.Fprintln(os.Stderr, err)
			failed = true
		}
		summary = append(summary, de.SummaryRow(runName, cfg.OutputUnits))
	}

	if len(summary) > 0 {
		file, err := os.Create(filepath.Join(outputPath, "summary.txt"))
		if err == nil {
			err = report.WriteSummary(file, summary)
			if cerr := file.Close(); err == nil {
				err = cerr
			}
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, "unable to save summary:", err)
			failed = true
		}
	}

	fmt.Printf("Elapsed time: %v\n", time.Since(startTime))
	if failed {
		os.Exit(1)
	}
}

func loadConfig(fileName, energies string) (config.Config, error) {
	var cfg config.Config
	if fileName != "" {
		var err error
		if cfg, err = config.LoadConfig(fileName); err != nil && (energies == "" || !errors.Is(err, config.ErrNoRuns)) {
			return cfg, err
		}
	} else {
		cfg = config.Default()
	}
	if energies != "" {
		var run config.RunParameters
		for _, field := range strings.Split(energies, ",") {
			E, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return cfg, fmt.Errorf("invalid energy %q: %w", field, err)
			}
			run.Energies = append(run.Energies, E)
		}
		cfg.AddRun("cli", run, "Energies")
	}
	if len(cfg.Runs) == 0 {
		return cfg, config.ErrNoRuns
	}
	return cfg, nil
}
