package build

import (
	"context"
	"errors"
	"strings"
	"testing"

	"asset-size-action/domain/assets"
	"asset-size-action/domain/build"
)

// --- Mock implementations for testing ---

type mockDetector struct {
	lock build.Lockfile
	err  error
}

func (m *mockDetector) Detect(dir string) (build.Lockfile, error) {
	return m.lock, m.err
}

type mockInstaller struct {
	plans []build.InstallPlan
	err   error
}

func (m *mockInstaller) Install(ctx context.Context, dir string, plan build.InstallPlan) error {
	m.plans = append(m.plans, plan)
	return m.err
}

type mockBuilder struct {
	calls int
	err   error
}

func (m *mockBuilder) Build(ctx context.Context, dir string) error {
	m.calls++
	return m.err
}

type mockMeasurer struct {
	sizes assets.SizeMap
	err   error
}

func (m *mockMeasurer) Measure(ctx context.Context, dir string) (assets.SizeMap, error) {
	return m.sizes, m.err
}

func TestService_Measure(t *testing.T) {
	sizes := assets.SizeMap{"dist/assets/app.js": {Raw: 100, Gzip: 40}}

	tests := []struct {
		name        string
		detector    *mockDetector
		installer   *mockInstaller
		builder     *mockBuilder
		measurer    *mockMeasurer
		opts        []Option
		wantPlan    string
		wantBuilds  int
		errContains string
	}{
		{
			name:       "full pipeline",
			detector:   &mockDetector{lock: build.Lockfile{Kind: build.LockfileNPM, Version: 2}},
			installer:  &mockInstaller{},
			builder:    &mockBuilder{},
			measurer:   &mockMeasurer{sizes: sizes},
			wantPlan:   "npx npm@7 ci",
			wantBuilds: 1,
		},
		{
			name:       "skip install",
			detector:   &mockDetector{err: errors.New("should not be called")},
			installer:  &mockInstaller{},
			builder:    &mockBuilder{},
			measurer:   &mockMeasurer{sizes: sizes},
			opts:       []Option{WithSkipInstall(true)},
			wantBuilds: 1,
		},
		{
			name:      "skip build",
			detector:  &mockDetector{lock: build.Lockfile{Kind: build.LockfileYarn}},
			installer: &mockInstaller{},
			builder:   &mockBuilder{},
			measurer:  &mockMeasurer{sizes: sizes},
			opts:      []Option{WithSkipBuild(true)},
			wantPlan:  "yarn --frozen-lockfile",
		},
		{
			name:        "detection fails",
			detector:    &mockDetector{err: errors.New("bad json")},
			installer:   &mockInstaller{},
			builder:     &mockBuilder{},
			measurer:    &mockMeasurer{},
			errContains: "lockfile detection failed",
		},
		{
			name:        "install fails",
			detector:    &mockDetector{},
			installer:   &mockInstaller{err: errors.New("exit status 1")},
			builder:     &mockBuilder{},
			measurer:    &mockMeasurer{},
			wantPlan:    "npm install",
			errContains: "install failed",
		},
		{
			name:        "build fails",
			detector:    &mockDetector{lock: build.Lockfile{Kind: build.LockfileYarn}},
			installer:   &mockInstaller{},
			builder:     &mockBuilder{err: errors.New("exit status 1")},
			measurer:    &mockMeasurer{},
			wantPlan:    "yarn --frozen-lockfile",
			wantBuilds:  1,
			errContains: "build failed",
		},
		{
			name:        "measure fails",
			detector:    &mockDetector{lock: build.Lockfile{Kind: build.LockfileYarn}},
			installer:   &mockInstaller{},
			builder:     &mockBuilder{},
			measurer:    &mockMeasurer{err: errors.New("permission denied")},
			wantPlan:    "yarn --frozen-lockfile",
			wantBuilds:  1,
			errContains: "measure failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.detector, build.Toolchain{NPMVersion: "6.14.4"}, tt.installer, tt.builder, tt.measurer, tt.opts...)

			got, err := svc.Measure(context.Background(), ".")
			if tt.errContains != "" {
				if err == nil || !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("Measure() error = %v, want containing %q", err, tt.errContains)
				}
			} else {
				if err != nil {
					t.Fatalf("Measure() error = %v", err)
				}
				if len(got) != len(sizes) {
					t.Errorf("Measure() = %v, want %v", got, sizes)
				}
			}

			if tt.wantPlan == "" && len(tt.installer.plans) != 0 {
				t.Errorf("unexpected install %v", tt.installer.plans)
			}
			if tt.wantPlan != "" && (len(tt.installer.plans) != 1 || tt.installer.plans[0].Command.String() != tt.wantPlan) {
				t.Errorf("install plans = %v, want %q", tt.installer.plans, tt.wantPlan)
			}
			if tt.builder.calls != tt.wantBuilds {
				t.Errorf("builds = %d, want %d", tt.builder.calls, tt.wantBuilds)
			}
		})
	}
}
