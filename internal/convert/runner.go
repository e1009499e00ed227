// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/pdiddy/docsmith/internal/container"
	"github.com/pdiddy/docsmith/pkg/types"
)

const pandocBin = "pandoc"

// Runner executes pandoc with args from dir. Paths in args are relative to
// dir so that local and container runners accept the same arguments.
type Runner interface {
	Name() string
	Run(ctx context.Context, dir string, args []string, out io.Writer) error
}

// imageRunner runs pandoc from a container image. The image entrypoint is
// expected to be pandoc itself.
type imageRunner struct {
	runtime container.Runtime
	image   string
}

func (r *imageRunner) Name() string { return r.runtime.Name() + " " + r.image }

func (r *imageRunner) Run(ctx context.Context, dir string, args []string, out io.Writer) error {
	return r.runtime.Run(ctx, r.image, dir, args, out)
}

// NewRunner selects a pandoc runner for the configured backend. The auto
// backend prefers a local binary and falls back to a container image.
func NewRunner(cfg types.ConversionConfig, log *slog.Logger) (Runner, error) {
	cfg = Defaults(cfg)
	local := container.NewLocal(pandocBin)

	switch cfg.Backend {
	case types.BackendLocal:
		if !local.Available() {
			return nil, fmt.Errorf("%s not found on PATH", pandocBin)
		}
		return local, nil
	case types.BackendContainer:
		return newImageRunner(cfg.Image)
	case types.BackendAuto:
		if local.Available() {
			log.Debug("using local pandoc")
			return local, nil
		}
		log.Debug("local pandoc not found, trying container", "image", cfg.Image)
		r, err := newImageRunner(cfg.Image)
		if err != nil {
			return nil, fmt.Errorf("%s not found on PATH and no container fallback: %w", pandocBin, err)
		}
		return r, nil
	default:
		return nil, fmt.Errorf("unknown conversion backend %q", cfg.Backend)
	}
}

func newImageRunner(image string) (*imageRunner, error) {
	rt, err := container.DetectRuntime()
	if err != nil {
		return nil, err
	}
	if err := rt.ImageExists(image); err != nil {
		return nil, fmt.Errorf("pandoc image not available in %s: %w", rt.Name(), err)
	}
	return &imageRunner{runtime: rt, image: image}, nil
}
