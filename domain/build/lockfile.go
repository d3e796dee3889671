package build

import "strings"

// LockfileKind identifies which package manager lockfile a project carries
type LockfileKind string

const (
	LockfileNone LockfileKind = ""
	LockfileYarn LockfileKind = "yarn.lock"
	LockfileNPM  LockfileKind = "package-lock.json"
)

// Lockfile describes the lockfile found in a working tree
type Lockfile struct {
	Kind LockfileKind
	// Version is the package-lock.json lockfileVersion, zero for other kinds
	Version int
}

// Toolchain holds facts about the build host that are detected once at startup
type Toolchain struct {
	NPMVersion string
}

// NPMMajor reports whether the detected npm version has the given major version
func (t Toolchain) NPMMajor(major string) bool {
	v := strings.TrimPrefix(strings.TrimSpace(t.NPMVersion), "v")
	return v == major || strings.HasPrefix(v, major+".")
}

// Command is an executable with its arguments
type Command struct {
	Name string
	Args []string
}

// String returns the command line as it would be typed
func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// InstallPlan is the dependency installation chosen for a working tree
type InstallPlan struct {
	Command Command
	// Warning is set when the plan is a best-effort fallback
	Warning string
}

// NoLockfileWarning is reported when a project has neither lockfile
const NoLockfileWarning = "No package-lock.json or yarn.lock detected! We strongly recommend committing one"

// PlanInstall selects the install command for a lockfile.
//
// yarn projects use a frozen lockfile. npm projects with a version 2 lockfile
// need npm 7, so older npm is bypassed through npx. Without a lockfile a plain
// npm install is used and a warning is attached.
func PlanInstall(lock Lockfile, tc Toolchain) InstallPlan {
	switch lock.Kind {
	case LockfileYarn:
		return InstallPlan{Command: Command{Name: "yarn", Args: []string{"--frozen-lockfile"}}}
	case LockfileNPM:
		if lock.Version == 2 && !tc.NPMMajor("7") {
			return InstallPlan{Command: Command{Name: "npx", Args: []string{"npm@7", "ci"}}}
		}
		return InstallPlan{Command: Command{Name: "npm", Args: []string{"ci"}}}
	default:
		return InstallPlan{
			Command: Command{Name: "npm", Args: []string{"install"}},
			Warning: NoLockfileWarning,
		}
	}
}
