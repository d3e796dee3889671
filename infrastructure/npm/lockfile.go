package npm

import (
	"path/filepath"

	"asset-size-action/domain/build"
	"asset-size-action/infrastructure/filesystem"
)

// FileChecker reports whether a path exists
type FileChecker interface {
	Exists(path string) bool
}

// Detector implements build.LockfileDetector
type Detector struct {
	files FileChecker
}

// DetectorOption is a functional option for configuring Detector
type DetectorOption func(*Detector)

// WithFileChecker sets a custom file checker (for testing)
func WithFileChecker(files FileChecker) DetectorOption {
	return func(d *Detector) {
		d.files = files
	}
}

// NewDetector creates a lockfile detector backed by the local filesystem
func NewDetector(opts ...DetectorOption) *Detector {
	d := &Detector{files: filesystem.NewChecker()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect looks for yarn.lock first, then package-lock.json
func (d *Detector) Detect(dir string) (build.Lockfile, error) {
	if d.files.Exists(filepath.Join(dir, string(build.LockfileYarn))) {
		return build.Lockfile{Kind: build.LockfileYarn}, nil
	}

	path := filepath.Join(dir, string(build.LockfileNPM))
	if !d.files.Exists(path) {
		return build.Lockfile{}, nil
	}

	version, err := readLockfileVersion(path)
	if err != nil {
		return build.Lockfile{}, err
	}
	return build.Lockfile{Kind: build.LockfileNPM, Version: version}, nil
}

func readLockfileVersion(path string) (int, error) {
	var lock struct {
		LockfileVersion int `json:"lockfileVersion"`
	}
	if err := filesystem.ReadJSON(path, &lock); err != nil {
		return 0, err
	}
	return lock.LockfileVersion, nil
}

// Ensure Detector implements build.LockfileDetector
var _ build.LockfileDetector = (*Detector)(nil)

var _ FileChecker = (*filesystem.Checker)(nil)
