package renderer

import (
	"context"
	"image"
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// ParallelConfig contains configuration for tiled parallel rendering
type ParallelConfig struct {
	TileSize   int // Size of each tile (32x32 recommended)
	NumWorkers int // Number of parallel workers (0 = use CPU count)
}

// DefaultParallelConfig returns sensible default values
func DefaultParallelConfig() ParallelConfig {
	return ParallelConfig{
		TileSize:   32,
		NumWorkers: 0, // Auto-detect CPU count
	}
}

// RenderParallel renders the frame with a pool of workers, one tile at a time per worker.
// Cancelling ctx stops further tiles from being rendered and returns ctx.Err().
func (rt *Raytracer) RenderParallel(ctx context.Context, config ParallelConfig, logger core.Logger) (*image.RGBA, RenderStats, error) {
	if config.TileSize <= 0 {
		config.TileSize = DefaultParallelConfig().TileSize
	}
	if logger == nil {
		logger = NewNopLogger()
	}

	img := image.NewRGBA(image.Rect(0, 0, rt.width, rt.height))
	tiles := NewTileGrid(rt.width, rt.height, config.TileSize)

	pool := NewWorkerPool(rt, img, len(tiles), config.NumWorkers)
	pool.Start(ctx)
	logger.Printf("Rendering %dx%d in %d tiles with %d workers\n",
		rt.width, rt.height, len(tiles), pool.GetNumWorkers())

	start := time.Now()
	submitted := 0
	for _, tile := range tiles {
		if ctx.Err() != nil {
			break
		}
		pool.SubmitTask(TileTask{Tile: tile, TaskID: tile.ID})
		submitted++
	}
	go pool.Stop()

	var stats RenderStats
	var renderErr error
	completed := 0
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		if result.Error != nil {
			renderErr = result.Error
			continue
		}
		stats.Merge(result.Stats)
		completed++
		if completed%max(1, len(tiles)/10) == 0 || completed == len(tiles) {
			logger.Printf("Tiles completed: %d/%d (%v)\n", completed, len(tiles), time.Since(start).Round(time.Millisecond))
		}
	}

	if renderErr == nil && submitted < len(tiles) {
		renderErr = ctx.Err()
	}
	return img, stats, renderErr
}
