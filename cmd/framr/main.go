package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jamiealquiza/envy"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/framr/framr/internal/archive"
	"github.com/framr/framr/internal/batch"
	"github.com/framr/framr/internal/cache"
	"github.com/framr/framr/internal/cache/memory"
	"github.com/framr/framr/internal/cmd"
	"github.com/framr/framr/internal/compositor"
	"github.com/framr/framr/internal/geometry"
	"github.com/framr/framr/internal/hexcolor"
	"github.com/framr/framr/internal/image"
	"github.com/framr/framr/internal/image/native"
	"github.com/framr/framr/internal/logger"
	"github.com/framr/framr/internal/memguard"
	"github.com/framr/framr/internal/metrics"
	"github.com/framr/framr/internal/storage/file"
)

// Number of concurrent file reads during intake. Only the intake scan is
// parallel, processing itself keeps one image in flight.
const intakeWorkers = 4

// Commandline flags
var (
	// Global
	inputDir    = flag.String("input", ".", "directory containing the source images (positional arguments select files within it)")
	outputDir   = flag.String("output", ".", "directory to write the outputs to")
	zipOutput   = flag.Bool("zip", false, "pack all outputs into a single framr-export zip archive")
	debugListen = flag.String("debug-listen", "", "listen address for the debug http server (disabled when empty)")
	loglevel    = zap.LevelFlag("log-level", zap.InfoLevel, "log level (default \"info\") (debug, info, warn, error, dpanic, panic, fatal)")

	// Border
	borderWidth       = flag.Float64("border-width", 5, "border width")
	borderUnit        = flag.String("border-unit", "percent", "border width unit (px, percent)")
	borderColor       = flag.String("border-color", "#FFFFFF", "border fill color as a 3 or 6 digit hex value")
	borderAspectAware = flag.Bool("border-aspect-aware", false, "vary the border thickness per axis to match the image aspect ratio")

	// Resize
	resizeEnabled        = flag.Bool("resize", false, "resize the image before the border is applied")
	resizeWidth          = flag.Float64("resize-width", 0, "resize target width (0 to derive from the height)")
	resizeHeight         = flag.Float64("resize-height", 0, "resize target height (0 to derive from the width)")
	resizeUnit           = flag.String("resize-unit", "px", "resize target unit (px, percent)")
	resizeMaintainAspect = flag.Bool("resize-maintain-aspect", true, "fit inside the target dimensions, preserving the aspect ratio")

	// Output encoding
	outputFormat  = flag.String("format", "same", "output format (same, jpeg, png, webp)")
	outputQuality = flag.Int("quality", 90, "encode quality for lossy formats (1-100)")
)

func main() {
	// Parse environment variables
	envy.Parse("FRAMR")

	// Parse commandline flags
	flag.Parse()

	// Initialize the logger
	log := logger.New(*loglevel)
	defer log.Sync()

	// Set GOMAXPROCS
	maxprocs.Set(maxprocs.Logger(log.Infof))

	// Set up context for shutting down
	shutdownCtx, shutdown := context.WithCancel(context.Background())
	defer shutdown()

	if *debugListen != "" {
		go metrics.Serve(shutdownCtx, log, *debugListen)
	}

	config, err := batchConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %s", err)
	}

	codec := native.New()

	items, err := gatherItems(shutdownCtx, log, codec)
	if err != nil {
		log.Fatalf("error reading images: %s", err)
	}

	if len(items) == 0 {
		log.Fatalf("no images to process in %s", *inputDir)
	}

	warnOnFootprint(log, items)

	orchestrator := batch.New(shutdownCtx, log, codec)

	// An interrupt requests cancellation; the image in flight finishes first
	go func() {
		err := cmd.WaitForInterrupt(shutdownCtx)
		log.Infof("%s, stopping after the image in flight", err)
		orchestrator.Cancel()
	}()

	results, err := orchestrator.Run(shutdownCtx, items, config,
		func(itemID string, result *compositor.Result) {
			log.Infof("processed %s", result.FileName)
		},
		func(itemID string, message string) {
			log.Errorw("failed to process image",
				"item", itemID,
				"error", message,
			)
		},
	)
	if err != nil {
		log.Fatalf("error running batch: %s", err)
	}

	if len(results) == 0 {
		log.Warnf("no images were processed")
		return
	}

	// The queue is drained, clear it so the source bytes are reclaimable
	// before the packaging buffers are allocated
	for _, item := range items {
		item.Release()
	}

	if err := saveResults(log, results); err != nil {
		log.Fatalf("error saving results: %s", err)
	}
}

// batchConfig builds the batch configuration from the commandline flags
func batchConfig() (batch.Config, error) {
	borderUnit, err := parseUnit(*borderUnit)
	if err != nil {
		return batch.Config{}, err
	}

	resizeUnit, err := parseUnit(*resizeUnit)
	if err != nil {
		return batch.Config{}, err
	}

	color, err := hexcolor.Normalize(*borderColor)
	if err != nil {
		return batch.Config{}, err
	}

	format, ok := image.ParseFormat(*outputFormat)
	if !ok {
		return batch.Config{}, fmt.Errorf("invalid output format %q", *outputFormat)
	}

	if *outputQuality < 1 || *outputQuality > 100 {
		return batch.Config{}, fmt.Errorf("quality %d is out of range", *outputQuality)
	}

	return batch.Config{
		Border: geometry.BorderSpec{
			Width:       *borderWidth,
			Unit:        borderUnit,
			Color:       color,
			AspectAware: *borderAspectAware,
		},
		Resize: geometry.ResizeSpec{
			Enabled:        *resizeEnabled,
			Width:          *resizeWidth,
			Height:         *resizeHeight,
			Unit:           resizeUnit,
			MaintainAspect: *resizeMaintainAspect,
		},
		Format:  format,
		Quality: *outputQuality,
	}, nil
}

func parseUnit(s string) (geometry.Unit, error) {
	switch strings.ToLower(s) {
	case "px", "pixels":
		return geometry.Pixels, nil
	case "percent", "%":
		return geometry.Percent, nil
	}

	return geometry.Pixels, fmt.Errorf("invalid unit %q", s)
}

// gatherItems reads and probes the source images, skipping files that can't
// be identified as images
func gatherItems(ctx context.Context, log *logger.Logger, codec *native.Codec) ([]*batch.Item, error) {
	provider, err := file.New(*inputDir)
	if err != nil {
		return nil, err
	}

	// Front the storage provider with an in-memory cache: repeated reads of
	// the same id are served without touching disk, and concurrent loads of
	// one id collapse into a single read
	sources := &cache.Auto{
		Provider: memory.New(),
		Loader:   provider.Get,
	}
	defer sources.Provider.Shutdown()

	ids := flag.Args()
	if len(ids) == 0 {
		ids, err = provider.List(ctx)
		if err != nil {
			return nil, err
		}
	}

	slots := make([]*batch.Item, len(ids))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(intakeWorkers)

	for i, id := range ids {
		i, id := i, id
		group.Go(func() error {
			data, err := sources.Get(groupCtx, id)
			if err != nil {
				return fmt.Errorf("error reading %s: %w", id, err)
			}

			width, height, _, err := codec.Probe(data)
			if err != nil {
				log.Warnf("skipping %s: %s", id, err)
				return nil
			}

			slots[i] = batch.NewItem(id, data, width, height)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	// Keep submission order, drop the skipped files
	items := make([]*batch.Item, 0, len(slots))
	for _, item := range slots {
		if item != nil {
			items = append(items, item)
		}
	}

	return items, nil
}

// warnOnFootprint surfaces the advisory memory estimate for the queued
// images. Processing continues either way.
func warnOnFootprint(log *logger.Logger, items []*batch.Item) {
	dimensions := make([]geometry.Dimensions, len(items))
	for i, item := range items {
		dimensions[i] = geometry.Dimensions{Width: item.Width, Height: item.Height}
	}

	if memguard.ExceedsWarningThreshold(dimensions) {
		log.Warnf("the queued images may need around %d MiB of memory, consider smaller batches",
			memguard.EstimateFootprint(dimensions)>>20)
	}
}

// saveResults writes the outputs either as a single zip archive or as
// individual files, de-duplicating colliding filenames either way
func saveResults(log *logger.Logger, results []*compositor.Result) error {
	names := make([]string, len(results))
	for i, result := range results {
		names[i] = result.FileName
	}
	names = archive.DedupNames(names)

	if *zipOutput {
		name := archive.ExportName(time.Now())

		archiveFile, err := os.Create(filepath.Join(*outputDir, name))
		if err != nil {
			return err
		}
		defer archiveFile.Close()

		entries := make([]archive.Entry, len(results))
		for i, result := range results {
			entries[i] = archive.Entry{FileName: names[i], Data: result.Data}
		}

		if err := archive.Write(archiveFile, entries, func(progress int) {
			log.Debugf("packaging: %d%%", progress)
		}); err != nil {
			return err
		}

		log.Infof("saved %d images to %s", len(results), name)
		return nil
	}

	for i, result := range results {
		if err := os.WriteFile(filepath.Join(*outputDir, names[i]), result.Data, 0644); err != nil {
			return err
		}
	}

	log.Infof("saved %d images to %s", len(results), *outputDir)
	return nil
}
