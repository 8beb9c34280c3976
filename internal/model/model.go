// Package model defines the core data types shared across gitgate.
package model

// ChangeCategory is the single label assigned to a pending change set.
type ChangeCategory int

const (
	CategoryGeneric ChangeCategory = iota
	CategoryBugFix
	CategoryTestUpdate
	CategoryDocsUpdate
	CategoryConfigUpdate
	CategoryUIApiIntegration
	CategoryUIOnly
	CategoryApiOnly
	CategoryStateManagement
)

func (c ChangeCategory) String() string {
	switch c {
	case CategoryBugFix:
		return "bugfix"
	case CategoryTestUpdate:
		return "test-update"
	case CategoryDocsUpdate:
		return "docs-update"
	case CategoryConfigUpdate:
		return "config-update"
	case CategoryUIApiIntegration:
		return "ui-api-integration"
	case CategoryUIOnly:
		return "ui"
	case CategoryApiOnly:
		return "api"
	case CategoryStateManagement:
		return "state-management"
	case CategoryGeneric:
		return "generic"
	default:
		return "unknown"
	}
}

// GateKind names a validation gate.
type GateKind int

const (
	GateLint GateKind = iota
	GateBuild
)

func (k GateKind) String() string {
	switch k {
	case GateLint:
		return "lint"
	case GateBuild:
		return "build"
	default:
		return "unknown"
	}
}

// RunConfig is the immutable configuration snapshot for a single run.
// It is resolved once from the command line and passed by reference;
// nothing mutates it afterwards.
type RunConfig struct {
	LintCommand  string
	BuildCommand string
	FixCommand   string

	LintMaxAttempts  int
	BuildMaxAttempts int

	HealEnabled    bool
	AutoFix        bool // legacy: apply the lint fix variant once between retries
	SkipBuild      bool
	AllowProtected bool
	NonInteractive bool
	NoAutoSummary  bool
	Detail         bool
	DryRun         bool

	Summary string // operator-supplied summary, wins over the heuristic one
}

// Defaults returns the configuration for a run targeting an npm-style
// workspace. Every field is overridable from the command line; the commands
// are opaque strings, so any toolchain works.
func Defaults() RunConfig {
	return RunConfig{
		LintCommand:      "npm run lint",
		BuildCommand:     "npm run build",
		FixCommand:       "npm run lint:fix",
		LintMaxAttempts:  3,
		BuildMaxAttempts: 2,
		HealEnabled:      true,
	}
}

// ProtectedBranches is the set of branches gitgate refuses to commit on
// without an explicit override.
var ProtectedBranches = []string{"main", "master"}

// IsProtectedBranch reports whether committing on branch requires the
// override flag.
func IsProtectedBranch(branch string) bool {
	for _, b := range ProtectedBranches {
		if branch == b {
			return true
		}
	}
	return false
}
