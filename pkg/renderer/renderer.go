// Package renderer is the tile-parallel render driver (spec §4.I): it
// partitions a camera's pixel buffer into rectangular tiles, submits them to
// a worker pool, and assembles the results into a single buffer ready for
// an encoder.
package renderer

import (
	"sync"

	"github.com/basalt-render/raymarch/pkg/camera"
	"github.com/basalt-render/raymarch/pkg/mathx"
	"github.com/basalt-render/raymarch/pkg/shade"
	"github.com/basalt-render/raymarch/pkg/store"
)

// TileSize is the implementation-chosen tile edge length (spec §4.I).
const TileSize = 32

// tileTask is one unit of work popped by a render worker.
type tileTask struct {
	x0, y0, x1, y1 int
}

// ProgressFunc is invoked once per completed tile (SPEC_FULL §4.I
// supplement); it never changes pixel values, only notifies observers such
// as the CLI's progress log. May be nil (the interactive server passes nil).
type ProgressFunc func(completed, total int)

// Render rasterizes target using threads worker goroutines and returns a
// row-major buffer of target.Camera's dimensions. Pixel output is
// deterministic given the same scene, thread count, and sampler (spec §8
// invariant 5): tile partitioning and completion order never affect a
// pixel's value, only which worker computes it.
func Render(s *store.Store, target store.RenderTarget, threads int, onProgress ProgressFunc) []mathx.Color {
	cam := s.GetCamera(target.Camera)
	width, height := cam.Width, cam.Height
	buf := make([]mathx.Color, width*height)

	tasks := partitionTiles(width, height, TileSize)
	total := len(tasks)

	taskCh := make(chan tileTask, total)
	for _, t := range tasks {
		taskCh <- t
	}
	close(taskCh)

	var completed int
	var mu sync.Mutex
	var wg sync.WaitGroup

	if threads < 1 {
		threads = 1
	}
	for w := 0; w < threads; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range taskCh {
				renderTile(s, target, cam, width, buf, task)
				if onProgress != nil {
					mu.Lock()
					completed++
					n := completed
					mu.Unlock()
					onProgress(n, total)
				}
			}
		}()
	}
	wg.Wait()

	return buf
}

func renderTile(s *store.Store, target store.RenderTarget, cam *store.Camera, width int, buf []mathx.Color, task tileTask) {
	for py := task.y0; py < task.y1; py++ {
		for px := task.x0; px < task.x1; px++ {
			rays := camera.PrimaryRays(cam, target.Sampler, px, py)
			var sumR, sumG, sumB float64
			for _, ray := range rays {
				c := shade.Shade(s, target.Root, ray, shade.DefaultRecursionBudget)
				sumR += c.R
				sumG += c.G
				sumB += c.B
			}
			n := float64(len(rays))
			buf[py*width+px] = mathx.NewColor(sumR/n, sumG/n, sumB/n)
		}
	}
}

func partitionTiles(width, height, tileSize int) []tileTask {
	var tasks []tileTask
	for y := 0; y < height; y += tileSize {
		for x := 0; x < width; x += tileSize {
			x1, y1 := x+tileSize, y+tileSize
			if x1 > width {
				x1 = width
			}
			if y1 > height {
				y1 = height
			}
			tasks = append(tasks, tileTask{x0: x, y0: y, x1: x1, y1: y1})
		}
	}
	return tasks
}
