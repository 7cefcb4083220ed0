// Package filter provides ordered, exclude-only rule lists for symbol names.
//
// A rule set is a linear list of (matcher, reason) pairs. Rules are tried in
// order and the first match excludes; a name no rule matches is kept.
package filter

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind selects how a rule pattern is compared against a name.
type Kind string

const (
	// Prefix rules match when the name starts with the pattern.
	Prefix Kind = "prefix"
	// Regex rules match when the pattern finds a match anywhere in the name;
	// anchor with '^' for prefix semantics.
	Regex Kind = "regex"
)

// Rule is a single exclusion rule.
type Rule struct {
	Pattern string
	Kind    Kind
	Reason  string

	re *regexp.Regexp
}

// NewPrefixRule returns a rule excluding names that start with prefix.
func NewPrefixRule(prefix, reason string) Rule {
	return Rule{Pattern: prefix, Kind: Prefix, Reason: reason}
}

// NewRegexRule compiles pattern into a rule.
func NewRegexRule(pattern, reason string) (Rule, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Rule{}, fmt.Errorf("compiling exclusion pattern %q: %w", pattern, err)
	}
	return Rule{Pattern: pattern, Kind: Regex, Reason: reason, re: re}, nil
}

// Matches reports whether the rule applies to name.
func (r Rule) Matches(name string) bool {
	switch r.Kind {
	case Regex:
		return r.re != nil && r.re.MatchString(name)
	default:
		return strings.HasPrefix(name, r.Pattern)
	}
}

// String renders the rule for log output.
func (r Rule) String() string {
	if r.Reason == "" {
		return fmt.Sprintf("%s %q", r.Kind, r.Pattern)
	}
	return fmt.Sprintf("%s %q (%s)", r.Kind, r.Pattern, r.Reason)
}

// RuleSet is an ordered list of exclusion rules.
type RuleSet struct {
	rules []Rule
}

// NewRuleSet builds a rule set evaluated in the given order.
func NewRuleSet(rules ...Rule) RuleSet {
	return RuleSet{rules: rules}
}

// Match returns the first rule that matches name.
func (s RuleSet) Match(name string) (Rule, bool) {
	for _, r := range s.rules {
		if r.Matches(name) {
			return r, true
		}
	}
	return Rule{}, false
}

// Excludes reports whether any rule matches name.
func (s RuleSet) Excludes(name string) bool {
	_, ok := s.Match(name)
	return ok
}

// Len returns the number of rules.
func (s RuleSet) Len() int {
	return len(s.rules)
}

// Rules returns a copy of the rules in evaluation order.
func (s RuleSet) Rules() []Rule {
	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out
}
