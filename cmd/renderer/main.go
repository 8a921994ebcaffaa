// Command renderer traces one of the built-in demo scenes and writes the
// result as a PPM, PNG, or raw canvas file, locally or to Cloud Storage.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"
	"time"

	"row-major/phong/camera"
	"row-major/phong/render"
	"row-major/phong/transform"

	"cloud.google.com/go/profiler"
	"contrib.go.opencensus.io/exporter/stackdriver"
	cloudtrace "github.com/GoogleCloudPlatform/opentelemetry-operations-go/exporter/trace"
	"github.com/golang/glog"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"golang.org/x/term"
	"golang.org/x/time/rate"
)

var (
	sceneName    = flag.String("scene", "patterns", "Which built-in scene to render.")
	outputFile   = flag.String("output-file", "output.ppm", "Where to write the image.  The extension (.ppm, .png, .canvas) picks the format.  gs://bucket/object uploads to Cloud Storage.")
	overwrite    = flag.Bool("overwrite", false, "Replace an existing local output file?")
	outputCols   = flag.Int("output-cols", 1024, "Output image columns.")
	outputRows   = flag.Int("output-rows", 500, "Output image rows.")
	fieldOfView  = flag.Float64("fov", 1.0471975511965976, "Horizontal field of view, in radians.")
	workers      = flag.Int("workers", 0, "Bands traced concurrently.  Zero means one per CPU.")
	rowsPerChunk = flag.Int("rows-per-chunk", 0, "Rows in each band.  Zero picks automatically.")

	cpuProfile = flag.String("cpu-profile", "", "Write CPU profile to this file.")
	memProfile = flag.String("mem-profile", "", "Write memory profile to this file.")

	credentialsFile = flag.String("credentials-file", "", "Service account key used for gs:// output.  If empty, Application Default Credentials are used.")

	monitoring           = flag.Bool("monitoring", false, "Enable monitoring?")
	monitoringProject    = flag.String("monitoring-project", "", "Override project used for monitoring integration.  If not specified, the project associated with Application Default Credentials is used.")
	monitoringTraceRatio = flag.Float64("monitoring-trace-ratio", 1.0, "What ratio of traces should be exported?")
	enableProfiling      = flag.Bool("enable-profiling", false, "Enable the Cloud Profiler agent?")
)

func main() {
	flag.Parse()
	glog.CopyStandardLogTo("INFO")
	defer glog.Flush()

	glog.Infof("flags:")
	flag.VisitAll(func(f *flag.Flag) {
		glog.Infof("  %s=%s", f.Name, f.Value.String())
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		glog.Infof("Got %v, abandoning render", sig)
		cancel()
	}()

	if err := do(ctx); err != nil {
		glog.Exitf("Error: %v", err)
	}
}

func do(ctx context.Context) error {
	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			return fmt.Errorf("while creating CPU profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("while starting CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	if *enableProfiling {
		if err := profiler.Start(profiler.Config{
			Service:        "phong-renderer",
			ServiceVersion: "0.0.1",
			ProjectID:      *monitoringProject,
		}); err != nil {
			return fmt.Errorf("while starting profiler: %w", err)
		}
	}

	if *monitoring {
		traceOpts := []cloudtrace.Option{}
		if *monitoringProject != "" {
			traceOpts = append(traceOpts, cloudtrace.WithProjectID(*monitoringProject))
		}
		_, traceShutdown, err := cloudtrace.InstallNewPipeline(traceOpts, sdktrace.WithSampler(sdktrace.TraceIDRatioBased(*monitoringTraceRatio)))
		if err != nil {
			return fmt.Errorf("while installing Cloud Trace pipeline: %w", err)
		}
		defer traceShutdown()

		exporter, err := stackdriver.NewExporter(stackdriver.Options{
			ProjectID:         *monitoringProject,
			MetricPrefix:      "phong",
			ReportingInterval: 60 * time.Second,
		})
		if err != nil {
			return fmt.Errorf("while creating Stackdriver exporter: %w", err)
		}
		if err := exporter.StartMetricsExporter(); err != nil {
			return fmt.Errorf("while starting metrics exporter: %w", err)
		}
		defer exporter.StopMetricsExporter()
		defer exporter.Flush()

		if err := render.RegisterViews(); err != nil {
			return fmt.Errorf("while registering views: %w", err)
		}
	}

	if err := checkDestination(*outputFile, *overwrite); err != nil {
		return err
	}

	d, err := lookupDemo(*sceneName)
	if err != nil {
		return err
	}

	world, err := d.scene.Crush()
	if err != nil {
		return fmt.Errorf("while crushing scene: %w", err)
	}

	cam := camera.New(*outputCols, *outputRows, *fieldOfView)
	if err := cam.SetTransform(transform.ViewTransform(d.from, d.to, d.up)); err != nil {
		return fmt.Errorf("while aiming camera: %w", err)
	}

	options := &render.Options{
		Workers:      *workers,
		RowsPerChunk: *rowsPerChunk,
		Label:        *sceneName,
	}

	start := time.Now()
	im, err := render.Render(ctx, world, cam, options, progressReporter())
	if err != nil {
		return fmt.Errorf("while rendering: %w", err)
	}
	glog.Infof("Rendered %dx%d %q in %v", *outputCols, *outputRows, *sceneName, time.Since(start))

	if err := writeOutput(ctx, im, *outputFile, *credentialsFile); err != nil {
		return err
	}

	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			return fmt.Errorf("while creating memory profile: %w", err)
		}
		defer f.Close()
		if err := pprof.WriteHeapProfile(f); err != nil {
			return fmt.Errorf("while writing memory profile: %w", err)
		}
	}

	return nil
}

// progressReporter draws a progress line when stderr is a terminal, and
// otherwise logs at most every few seconds.
func progressReporter() render.ProgressFunction {
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return func(done, total int) {
			fmt.Fprintf(os.Stderr, "\r%d/%d %d%%", done, total, done*100/total)
			if done == total {
				fmt.Fprintf(os.Stderr, "\n")
			}
		}
	}

	limiter := rate.NewLimiter(rate.Every(5*time.Second), 1)
	return func(done, total int) {
		if done == total || limiter.Allow() {
			glog.Infof("Rendered %d/%d rows", done, total)
		}
	}
}
