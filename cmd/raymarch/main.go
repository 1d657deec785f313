// Command raymarch is the CLI entry point: it parses a scene file, renders
// every declared target, and writes the outputs, or launches the
// interactive server (spec §4.K/§6).
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/basalt-render/raymarch/internal/platform"
	"github.com/basalt-render/raymarch/internal/server"
	"github.com/basalt-render/raymarch/pkg/build"
	"github.com/basalt-render/raymarch/pkg/encode"
	"github.com/basalt-render/raymarch/pkg/renderer"
	"github.com/basalt-render/raymarch/pkg/sexpr"
	"github.com/basalt-render/raymarch/pkg/store"
)

// Exit codes (spec §6): 0 success, 1 parse/build error, 2 I/O error writing
// an output, 3 internal error.
const (
	exitOK       = 0
	exitParse    = 1
	exitIO       = 2
	exitInternal = 3
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("raymarch", flag.ContinueOnError)
	threads := fs.Int("threads", 0, "worker thread count (default: RAYMARCH_THREADS env or available CPUs)")
	serve := fs.Bool("serve", false, "launch the interactive server instead of a single batch render")
	if err := fs.Parse(args); err != nil {
		return exitParse
	}

	cfg, err := platform.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "raymarch: load config: %v\n", err)
		return exitInternal
	}
	logger := platform.NewLogger(cfg)

	n := *threads
	if n == 0 {
		n = cfg.Threads
	}
	if n == 0 {
		n = runtime.NumCPU()
	}

	if fs.NArg() < 1 && !*serve {
		fmt.Fprintln(os.Stderr, "usage: raymarch [-threads N] [-serve] <scene-file>")
		return exitParse
	}

	if *serve {
		scenePath := ""
		if fs.NArg() >= 1 {
			scenePath = fs.Arg(0)
		}
		srv := server.New(cfg, logger, n, scenePath)
		if err := srv.ListenAndServe(); err != nil {
			logger.Printf("server error: %v", err)
			return exitInternal
		}
		return exitOK
	}

	scenePath := fs.Arg(0)
	s, err := loadScene(scenePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "raymarch: %v\n", err)
		return exitParse
	}

	for _, target := range s.Targets() {
		if err := renderAndWrite(s, target, n, logger); err != nil {
			fmt.Fprintf(os.Stderr, "raymarch: %v\n", err)
			return exitIO
		}
	}
	return exitOK
}

func loadScene(path string) (*store.Store, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene file: %w", err)
	}
	p, err := sexpr.NewParser(string(src))
	if err != nil {
		return nil, err
	}
	forms, err := p.ParseAll()
	if err != nil {
		return nil, err
	}
	return build.Build(forms)
}

func renderAndWrite(s *store.Store, target store.RenderTarget, threads int, logger platform.Logger) error {
	cam := s.GetCamera(target.Camera)
	progress := func(completed, total int) {
		logger.Printf("render progress: %d/%d tiles", completed, total)
	}
	buf := renderer.Render(s, target, threads, progress)

	switch target.Kind {
	case store.TargetFile:
		return encode.WritePNG(target.Path, cam.Width, cam.Height, buf)
	case store.TargetASCII:
		f := os.Stdout
		if target.Label != "" && target.Label != "-" {
			file, err := os.Create(target.Label)
			if err != nil {
				return err
			}
			defer file.Close()
			f = file
		}
		return encode.WriteASCII(f, cam.Width, cam.Height, buf)
	}
	return nil
}
