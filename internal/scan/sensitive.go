// Package scan flags changed paths that look risky to commit: secrets,
// key material, local overrides, build output, logs. Findings are
// advisory only; they never block a run.
package scan

import "regexp"

// Finding is a flagged path with the rule category that matched.
type Finding struct {
	Path     string
	Category string
}

// Risk-pattern rules, applied in order against each path. Matching is
// case-sensitive on the raw path exactly as git status reports it; paths
// are relative and use the platform's separator as printed. That keeps
// the advisory output reproducible against the status listing the user
// sees, at the cost of missing case-variant names like SECRETS.JSON.
var sensitiveRules = []struct {
	category string
	patterns []*regexp.Regexp
}{
	{
		category: "secret files",
		patterns: compilePatterns(
			`(^|/)\.env(\.|$)`,
			`(^|/)(secrets?|credentials?)\.(json|ya?ml|toml|txt)$`,
		),
	},
	{
		category: "key material",
		patterns: compilePatterns(
			`(^|/)id_(rsa|dsa|ecdsa|ed25519)(\.pub)?$`,
			`\.(pem|key|p12|pfx|keystore)$`,
		),
	},
	{
		category: "local overrides",
		patterns: compilePatterns(
			`\.local\.(json|ya?ml|js|ts)$`,
			`(^|/)local\.settings\.json$`,
			`(^|/)\.npmrc$`,
		),
	},
	{
		category: "build output",
		patterns: compilePatterns(
			`(^|/)(dist|build|out|node_modules|coverage)/`,
		),
	},
	{
		category: "log files",
		patterns: compilePatterns(
			`\.log$`,
		),
	},
}

func compilePatterns(patterns ...string) []*regexp.Regexp {
	var compiled []*regexp.Regexp
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(p))
	}
	return compiled
}

// Flag returns the paths matching any risk rule, in input order. A path
// is reported once, under the first rule that matches it.
func Flag(paths []string) []Finding {
	var findings []Finding
	for _, path := range paths {
		for _, rule := range sensitiveRules {
			matched := false
			for _, re := range rule.patterns {
				if re.MatchString(path) {
					findings = append(findings, Finding{Path: path, Category: rule.category})
					matched = true
					break
				}
			}
			if matched {
				break
			}
		}
	}
	return findings
}
