package build

import "context"

// LockfileDetector inspects a working tree for a package manager lockfile
type LockfileDetector interface {
	Detect(dir string) (Lockfile, error)
}

// Installer installs project dependencies
type Installer interface {
	Install(ctx context.Context, dir string, plan InstallPlan) error
}

// Builder runs the production build of a project
type Builder interface {
	Build(ctx context.Context, dir string) error
}

// Checkout switches a working tree to a given commit
type Checkout interface {
	Checkout(ctx context.Context, dir, ref string) error
}
