package build

import (
	"context"
	"fmt"
	"time"

	"asset-size-action/domain/assets"
	"asset-size-action/domain/build"
	"asset-size-action/infrastructure/logging"
)

// Service installs dependencies, builds and measures one working tree
type Service struct {
	detector    build.LockfileDetector
	toolchain   build.Toolchain
	installer   build.Installer
	builder     build.Builder
	measurer    assets.Measurer
	skipInstall bool
	skipBuild   bool
}

// Option is a functional option for configuring Service
type Option func(*Service)

// WithSkipInstall leaves node_modules as they are
func WithSkipInstall(skip bool) Option {
	return func(s *Service) {
		s.skipInstall = skip
	}
}

// WithSkipBuild measures whatever build output already exists
func WithSkipBuild(skip bool) Option {
	return func(s *Service) {
		s.skipBuild = skip
	}
}

// NewService creates a new build service. The toolchain is detected once by
// the caller and reused for every working tree.
func NewService(
	detector build.LockfileDetector,
	toolchain build.Toolchain,
	installer build.Installer,
	builder build.Builder,
	measurer assets.Measurer,
	opts ...Option,
) *Service {
	s := &Service{
		detector:  detector,
		toolchain: toolchain,
		installer: installer,
		builder:   builder,
		measurer:  measurer,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Measure runs install, build and measure in dir. The lockfile is detected
// on every call because base and head may carry different ones.
func (s *Service) Measure(ctx context.Context, dir string) (assets.SizeMap, error) {
	start := time.Now()

	if !s.skipInstall {
		lock, err := s.detector.Detect(dir)
		if err != nil {
			return nil, fmt.Errorf("lockfile detection failed: %w", err)
		}

		plan := build.PlanInstall(lock, s.toolchain)
		if err := s.installer.Install(ctx, dir, plan); err != nil {
			return nil, fmt.Errorf("install failed: %w", err)
		}
	}

	if !s.skipBuild {
		if err := s.builder.Build(ctx, dir); err != nil {
			return nil, fmt.Errorf("build failed: %w", err)
		}
	}

	sizes, err := s.measurer.Measure(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("measure failed: %w", err)
	}

	logging.Info("measured assets",
		logging.String("dir", dir),
		logging.Int("files", len(sizes)),
		logging.Duration("elapsed", time.Since(start)))

	return sizes, nil
}
