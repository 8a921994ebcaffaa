// Package render turns a crushed world and a camera into an image.
//
// The image is split into bands of whole rows, and bands are traced
// concurrently.  Every pixel is a pure function of the world, the camera and
// its coordinates, so the result does not depend on how bands are scheduled.
package render

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"row-major/phong/camera"
	"row-major/phong/canvas"
	"row-major/phong/scene"

	"github.com/golang/glog"
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

var (
	sceneKey = tag.MustNewKey("scene")

	pixelCount   = stats.Int64("phong/pixels", "Pixels traced", stats.UnitDimensionless)
	chunkLatency = stats.Float64("phong/chunk_latency", "Wall time spent tracing one band of rows", stats.UnitMilliseconds)

	PixelCountView = &view.View{
		Name:        "phong/pixels",
		Description: "Total pixels traced",
		TagKeys:     []tag.Key{sceneKey},
		Measure:     pixelCount,
		Aggregation: view.Sum(),
	}

	ChunkLatencyView = &view.View{
		Name:        "phong/chunk_latency",
		Description: "Distribution of per-band trace times",
		TagKeys:     []tag.Key{sceneKey},
		Measure:     chunkLatency,
		Aggregation: view.Distribution(1, 5, 10, 50, 100, 500, 1000, 5000),
	}
)

// RegisterViews makes the renderer's metrics available to exporters.
func RegisterViews() error {
	return view.Register(PixelCountView, ChunkLatencyView)
}

type Options struct {
	// Workers bounds how many bands are traced at once.  Zero means one per
	// CPU.
	Workers int

	// RowsPerChunk is the height of a band.  Zero picks a size that gives each
	// worker a few bands.
	RowsPerChunk int

	// Label tags the metrics recorded for this render.
	Label string
}

// ProgressFunction is told how many rows are finished out of the total.  It
// is never called concurrently with itself.
type ProgressFunction func(done, total int)

type chunkWorker struct {
	world *scene.World
	cam   *camera.Camera

	rowSrc int
	rowLim int

	// Rows [rowSrc, rowLim) of the output.
	out *canvas.Canvas
}

func (c *chunkWorker) render(ctx context.Context) error {
	tracer := otel.Tracer("row-major/phong/render")
	var span trace.Span
	ctx, span = tracer.Start(ctx, "chunkWorker.render")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("rowSrc", int64(c.rowSrc)),
		attribute.Int64("rowLim", int64(c.rowLim)),
	)

	for y := c.rowSrc; y < c.rowLim; y++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for x := 0; x < c.out.Width; x++ {
			r := c.cam.RayForPixel(x, y)
			c.out.WritePixel(x, y-c.rowSrc, c.world.ColorAt(r))
		}
	}
	return nil
}

// Render traces one ray per pixel of cam through w.  It stops early, and
// returns the context's error, if ctx is cancelled.
func Render(ctx context.Context, w *scene.World, cam *camera.Camera, options *Options, progressFunction ProgressFunction) (*canvas.Canvas, error) {
	tracer := otel.Tracer("row-major/phong/render")
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Render")
	defer span.End()

	if options == nil {
		options = &Options{}
	}

	workers := options.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	rowsPerChunk := options.RowsPerChunk
	if rowsPerChunk <= 0 {
		rowsPerChunk = cam.VSize / (4 * workers)
		if rowsPerChunk < 1 {
			rowsPerChunk = 1
		}
	}

	span.SetAttributes(
		attribute.Int64("cols", int64(cam.HSize)),
		attribute.Int64("rows", int64(cam.VSize)),
		attribute.Int64("workers", int64(workers)),
		attribute.Int64("rowsPerChunk", int64(rowsPerChunk)),
		attribute.Int64("shapes", int64(w.Len())),
	)

	// Tagging once up front rejects a bad label before any tracing starts,
	// and every band records against the tagged context.
	ctx, err := tag.New(ctx, tag.Insert(sceneKey, options.Label))
	if err != nil {
		err = fmt.Errorf("while tagging render with label %q: %w", options.Label, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	out := canvas.New(cam.HSize, cam.VSize)

	// mu guards both out and curProgress.
	mu := sync.Mutex{}
	curProgress := 0

	start := time.Now()

	// Use errgroup and semaphore to limit concurrency.
	eg, egCtx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(int64(workers))

	var acquireErr error
	for rowSrc := 0; rowSrc < cam.VSize; rowSrc += rowsPerChunk {
		rowLim := rowSrc + rowsPerChunk
		if rowLim > cam.VSize {
			rowLim = cam.VSize
		}

		if err := sem.Acquire(egCtx, 1); err != nil {
			acquireErr = fmt.Errorf("while acquiring concurrency limiter semaphore: %w", err)
			break
		}

		mu.Lock()
		worker := &chunkWorker{
			world:  w,
			cam:    cam,
			rowSrc: rowSrc,
			rowLim: rowLim,
			out:    out.Cut(rowSrc, rowLim),
		}
		mu.Unlock()

		glog.V(2).Infof("Scheduling rows [%d, %d)", rowSrc, rowLim)

		eg.Go(func() error {
			defer sem.Release(1)

			chunkStart := time.Now()
			if err := worker.render(egCtx); err != nil {
				return fmt.Errorf("while rendering rows [%d, %d): %w", worker.rowSrc, worker.rowLim, err)
			}

			stats.Record(
				egCtx,
				pixelCount.M(int64(worker.out.Width*worker.out.Height)),
				chunkLatency.M(float64(time.Since(chunkStart))/float64(time.Millisecond)),
			)

			mu.Lock()
			defer mu.Unlock()

			out.Paste(worker.out, worker.rowSrc)
			curProgress += worker.rowLim - worker.rowSrc
			if progressFunction != nil {
				progressFunction(curProgress, cam.VSize)
			}
			return nil
		})
	}

	err = eg.Wait()
	if err == nil {
		err = acquireErr
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("while waiting for completion of errgroup: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	glog.V(1).Infof("Rendered %dx%d image in %v", cam.HSize, cam.VSize, time.Since(start))
	return out, nil
}
