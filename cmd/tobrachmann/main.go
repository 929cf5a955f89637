package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"linemod-brachmann/internal/batch"
	"linemod-brachmann/internal/config"
	"linemod-brachmann/internal/logging"
	"linemod-brachmann/internal/raster"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	dataDir := flag.String("data", "", "LINEMOD root holding one directory per object (default: .)")
	render := flag.Bool("render", false, "Also render seg/ and obj/ ground truth")
	logFile := flag.String("log-file", "", "Also write logs to this rotating file")
	verbose := flag.Bool("v", false, "Debug logging")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		DataDir: *dataDir,
		LogFile: *logFile,
		Render:  *render,
		Verbose: *verbose,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	runID := uuid.NewString()
	log := logger.WithField("run_id", runID)
	log.Infof("LINEMOD -> Brachmann: %s (render=%v)", cfg.DataDir, cfg.Render)

	batchCfg := batch.Config{
		DataDir:     cfg.DataDir,
		ColorExt:    cfg.ColorExt,
		ColorFormat: cfg.ColorFormat,
		Log:         log,
	}

	// The render target lives for the whole run and is shared by all objects.
	if cfg.Render {
		r := raster.NewRenderer()
		err := r.Init(raster.Config{
			Width:  cfg.RenderWidth,
			Height: cfg.RenderHeight,
			Fx:     cfg.Fx,
			Fy:     cfg.Fy,
			Cx:     cfg.Cx,
			Cy:     cfg.Cy,
			Near:   cfg.Near,
			Far:    cfg.Far,
		})
		if err != nil {
			log.WithError(err).Fatal("renderer init failed")
		}
		defer r.Teardown()
		batchCfg.Renderer = r
	}

	start := time.Now()
	results, err := batch.Run(batchCfg)
	if err != nil {
		log.WithError(err).Error("conversion aborted")
		os.Exit(1)
	}

	frames := 0
	for _, r := range results {
		frames += r.Frames
	}
	log.Infof("Converted %d objects, %d frames in %.1fs", len(results), frames, time.Since(start).Seconds())

	manifestPath := filepath.Join(cfg.DataDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, batch.NewManifest(runID, cfg.Render, results)); err != nil {
		log.WithError(err).Warn("manifest write failed")
	} else {
		log.Infof("Manifest: %s", manifestPath)
	}
}
