// Package classify derives a change category and a textual digest from
// the set of changed paths. It has no semantic understanding of the code;
// everything is driven by path patterns and raw diff text.
package classify

import (
	"fmt"
	"regexp"

	"github.com/sprite-ai/gitgate/internal/model"
)

// Path pattern groups. Matching is against the raw path as reported by
// git status, case-insensitive for classification purposes.
var (
	bugfixPattern = regexp.MustCompile(`(?i)(fix|bug|hotfix|patch)`)
	testPattern   = regexp.MustCompile(`(?i)(\.test\.|\.spec\.|_test\.|(^|/)tests?/|(^|/)__tests__/)`)
	docsPattern   = regexp.MustCompile(`(?i)(\.(md|rst|adoc)$|(^|/)docs?/)`)
	configPattern = regexp.MustCompile(`(?i)(\.(json|ya?ml|toml|ini)$|(^|/)\.?config|\.config\.|rc\.(js|cjs|ts)$|\.env)`)
	uiPattern     = regexp.MustCompile(`(?i)(\.(tsx|jsx|vue|svelte|css|scss|less|html)$|(^|/)(components|ui|pages|views|layouts)/)`)
	apiPattern    = regexp.MustCompile(`(?i)((^|/)api/|(^|/)(routes|controllers|endpoints|services)/|client\.(ts|js)$)`)
	statePattern  = regexp.MustCompile(`(?i)(store|redux|reducer|slice|(^|/)state/|context\.(ts|js|tsx|jsx)$)`)
)

// traits summarizes a change set once so each rule is a cheap predicate.
type traits struct {
	count  int
	bugfix bool
	test   bool
	docs   bool
	config bool
	ui     bool
	api    bool
	state  bool
}

func examine(paths []string) traits {
	t := traits{count: len(paths)}
	for _, p := range paths {
		t.bugfix = t.bugfix || bugfixPattern.MatchString(p)
		t.test = t.test || testPattern.MatchString(p)
		t.docs = t.docs || docsPattern.MatchString(p)
		t.config = t.config || configPattern.MatchString(p)
		t.ui = t.ui || uiPattern.MatchString(p)
		t.api = t.api || apiPattern.MatchString(p)
		t.state = t.state || statePattern.MatchString(p)
	}
	return t
}

// rule pairs a predicate with the category it yields. Order matters: the
// chain is evaluated top to bottom and the first match wins.
type rule struct {
	tag  model.ChangeCategory
	when func(t traits) bool
}

var rules = []rule{
	{model.CategoryBugFix, func(t traits) bool { return t.bugfix }},
	{model.CategoryTestUpdate, func(t traits) bool { return t.test && t.count <= 5 }},
	{model.CategoryDocsUpdate, func(t traits) bool { return t.docs && t.count <= 5 }},
	{model.CategoryConfigUpdate, func(t traits) bool { return t.config && t.count <= 6 }},
	{model.CategoryUIApiIntegration, func(t traits) bool { return t.ui && t.api }},
	{model.CategoryUIOnly, func(t traits) bool { return t.ui }},
	{model.CategoryApiOnly, func(t traits) bool { return t.api }},
	{model.CategoryStateManagement, func(t traits) bool { return t.state }},
}

// Classify assigns exactly one category to the change set. Behavior on an
// empty set is undefined; callers short-circuit on "nothing to commit"
// before reaching classification.
func Classify(paths []string) model.ChangeCategory {
	t := examine(paths)
	for _, r := range rules {
		if r.when(t) {
			return r.tag
		}
	}
	return model.CategoryGeneric
}

// Summary returns the heuristic one-line commit summary for a category.
func Summary(cat model.ChangeCategory, paths []string) string {
	n := len(paths)
	switch cat {
	case model.CategoryBugFix:
		return fmt.Sprintf("fix: update %d file(s)", n)
	case model.CategoryTestUpdate:
		return fmt.Sprintf("test: update %d test file(s)", n)
	case model.CategoryDocsUpdate:
		return fmt.Sprintf("docs: update %d doc file(s)", n)
	case model.CategoryConfigUpdate:
		return fmt.Sprintf("config: update %d config file(s)", n)
	case model.CategoryUIApiIntegration:
		return fmt.Sprintf("feat: UI and API changes across %d file(s)", n)
	case model.CategoryUIOnly:
		return fmt.Sprintf("feat: UI changes in %d file(s)", n)
	case model.CategoryApiOnly:
		return fmt.Sprintf("feat: API changes in %d file(s)", n)
	case model.CategoryStateManagement:
		return fmt.Sprintf("refactor: state management changes in %d file(s)", n)
	default:
		return fmt.Sprintf("chore: update %d file(s)", n)
	}
}
