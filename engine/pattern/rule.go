// Package pattern holds the regular-expression rule tables shared by the
// domain gate and the intent classifier.
package pattern

import "regexp"

// Rule is a matching predicate tagged with the label it votes for.
type Rule struct {
	Expr  *regexp.Regexp
	Label string
}

// Match reports whether the rule matches text.
func (r Rule) Match(text string) bool {
	return r.Expr != nil && r.Expr.MatchString(text)
}

// Compile builds one rule per expression, all carrying label. It panics on an
// invalid expression, so tables fail at package initialization.
func Compile(label string, exprs ...string) []Rule {
	rules := make([]Rule, 0, len(exprs))
	for _, e := range exprs {
		rules = append(rules, Rule{Expr: regexp.MustCompile(e), Label: label})
	}
	return rules
}

// Count returns how many rules match text. Each rule contributes at most one,
// however often it occurs in the text.
func Count(rules []Rule, text string) int {
	n := 0
	for _, r := range rules {
		if r.Match(text) {
			n++
		}
	}
	return n
}

// Any reports whether at least one rule matches text.
func Any(rules []Rule, text string) bool {
	for _, r := range rules {
		if r.Match(text) {
			return true
		}
	}
	return false
}

// Matches returns the source expressions of every rule matching text.
func Matches(rules []Rule, text string) []string {
	var out []string
	for _, r := range rules {
		if r.Match(text) {
			out = append(out, r.Expr.String())
		}
	}
	return out
}
