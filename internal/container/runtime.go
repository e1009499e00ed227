// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package container implements container runtime detection and execution.
// The conversion stage uses it to run pandoc from an image when no local
// binary is installed.
package container

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

const (
	binDocker = "docker"
	binPodman = "podman"

	// MountPoint is where the host directory is mounted inside the container.
	MountPoint = "/data"
)

// Runtime provides container operations: checking availability, verifying
// images, and running containers.
type Runtime interface {
	// Name returns the runtime name ("docker" or "podman").
	Name() string

	// Available reports whether the runtime binary exists on PATH and
	// responds to an info command.
	Available() bool

	// ImageExists checks whether the named image exists locally.
	// Returns nil when the image is found, or an error describing the failure.
	ImageExists(image string) error

	// Run executes image with args, mounting hostDir at MountPoint and using
	// it as the working directory. Combined output is written to out.
	Run(ctx context.Context, image, hostDir string, args []string, out io.Writer) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	RunCombined(ctx context.Context, dir, name string, args []string, out io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (o *osExecutor) RunCombined(ctx context.Context, dir, name string, args []string, out io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	err := cmd.Run()
	if out != nil {
		_, _ = out.Write(buf.Bytes())
	}
	if err != nil {
		if msg := strings.TrimSpace(buf.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}

// runtime implements Runtime for a specific container binary. Both Docker
// and Podman share the same logic; they differ only in binary name and the
// subcommand used to check image existence.
type runtime struct {
	bin           string
	imageCheckCmd []string // e.g. ["image", "inspect"] for docker
	exec          executor
}

func (r *runtime) Name() string { return r.bin }

func (r *runtime) Available() bool {
	if _, err := r.exec.LookPath(r.bin); err != nil {
		return false
	}
	return r.exec.RunSilent(r.bin, "info") == nil
}

func (r *runtime) ImageExists(image string) error {
	args := make([]string, 0, len(r.imageCheckCmd)+1)
	args = append(args, r.imageCheckCmd...)
	args = append(args, image)

	if err := r.exec.RunSilent(r.bin, args...); err != nil {
		return fmt.Errorf("image %s not found in %s: %w", image, r.bin, err)
	}
	return nil
}

// RunArgs returns the runtime arguments that run image over hostDir.
func RunArgs(image, hostDir string, args []string) []string {
	full := make([]string, 0, len(args)+8)
	full = append(full, "run", "--rm",
		"-v", hostDir+":"+MountPoint,
		"-w", MountPoint,
		image)
	return append(full, args...)
}

func (r *runtime) Run(ctx context.Context, image, hostDir string, args []string, out io.Writer) error {
	if err := r.exec.RunCombined(ctx, hostDir, r.bin, RunArgs(image, hostDir, args), out); err != nil {
		return fmt.Errorf("running %s container %s: %w", r.bin, image, err)
	}
	return nil
}

func newDockerRuntime(exec executor) *runtime {
	return &runtime{
		bin:           binDocker,
		imageCheckCmd: []string{"image", "inspect"},
		exec:          exec,
	}
}

func newPodmanRuntime(exec executor) *runtime {
	return &runtime{
		bin:           binPodman,
		imageCheckCmd: []string{"image", "exists"},
		exec:          exec,
	}
}

var defaultExec = &osExecutor{}

// DetectRuntime tries docker first, falls back to podman. Returns an error
// if neither runtime is available.
func DetectRuntime() (Runtime, error) {
	return detectRuntime(defaultExec)
}

func detectRuntime(exec executor) (Runtime, error) {
	docker := newDockerRuntime(exec)
	if docker.Available() {
		return docker, nil
	}

	podman := newPodmanRuntime(exec)
	if podman.Available() {
		return podman, nil
	}

	return nil, fmt.Errorf(
		"no container runtime available: neither %s nor %s found or operational",
		binDocker, binPodman,
	)
}

// Local runs a binary installed on the host. It shares the executor
// abstraction with the container runtimes so callers can treat both alike.
type Local struct {
	bin  string
	exec executor
}

// NewLocal returns a Local for bin.
func NewLocal(bin string) *Local {
	return &Local{bin: bin, exec: defaultExec}
}

// Name returns the binary name.
func (l *Local) Name() string { return l.bin }

// Available reports whether the binary is on PATH.
func (l *Local) Available() bool {
	_, err := l.exec.LookPath(l.bin)
	return err == nil
}

// Run executes the binary with args in dir.
func (l *Local) Run(ctx context.Context, dir string, args []string, out io.Writer) error {
	if err := l.exec.RunCombined(ctx, dir, l.bin, args, out); err != nil {
		return fmt.Errorf("running %s: %w", l.bin, err)
	}
	return nil
}
