// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch

// guardia-parse is the operator tool for the extraction pipeline: it parses
// a local roster PDF for one region and prints the resulting schedule map as
// versioned JSON, the same shape the caching collaborator persists.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/farmaguardia/segovia/internal/config"
	"github.com/farmaguardia/segovia/internal/logger"
	"github.com/farmaguardia/segovia/internal/model"
	"github.com/farmaguardia/segovia/internal/strategy"
)

var (
	configPath = flag.String("config", "", "Path to YAML config file")
	pdfPath    = flag.String("pdf", "", "Roster PDF to parse")
	region     = flag.String("region", string(model.LocationSegoviaCapital), "Duty region identifier")
	sourceURL  = flag.String("url", "", "URL the PDF was downloaded from (used as a year hint)")
	outPath    = flag.String("out", "", "Write JSON output here instead of stdout")
	debug      = flag.Bool("debug", false, "Enable debug logging")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if _, err := logger.Init(cfg.LogFile); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	logger.SetDebug(*debug || cfg.Debug)

	if *pdfPath == "" {
		fmt.Fprintln(os.Stderr, "usage: guardia-parse -pdf <roster.pdf> [-region <id>] [-url <source-url>]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	loc := model.DutyLocation(*region)
	if _, ok := strategy.ForLocation(loc); !ok {
		logger.Fatalf("unknown region %q (known regions: %v)", *region, strategy.Locations())
	}

	raw, err := os.ReadFile(*pdfPath)
	if err != nil {
		logger.Fatalf("failed to read PDF: %v", err)
	}

	url := *sourceURL
	if url == "" {
		url = cfg.SourceURLs[*region]
	}

	runID := uuid.New().String()[:8]
	logger.Printf("[run %s] parsing %s as %s (%d bytes)", runID, *pdfPath, loc, len(raw))

	schedules := strategy.ParseRegion(loc, raw, url)

	data, err := schedules.MarshalCache()
	if err != nil {
		logger.Fatalf("[run %s] failed to serialize schedules: %v", runID, err)
	}

	if *outPath != "" {
		if err := os.WriteFile(*outPath, data, 0644); err != nil {
			logger.Fatalf("[run %s] failed to write output: %v", runID, err)
		}
		logger.Printf("[run %s] wrote %s", runID, *outPath)
	} else {
		fmt.Println(string(data))
	}
}
