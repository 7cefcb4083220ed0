package config

import "github.com/hargabyte/lvextract/internal/filter"

// ReservedRules builds the stage one prefix rules for declarations.
func (c *Config) ReservedRules() filter.RuleSet {
	return prefixRules(c.Functions.ReservedPrefixes)
}

// NameRules compiles the stage two function name patterns.
func (c *Config) NameRules() (filter.RuleSet, error) {
	rules := make([]filter.Rule, 0, len(c.Functions.ExcludeNames))
	for _, rc := range c.Functions.ExcludeNames {
		r, err := filter.NewRegexRule(rc.Pattern, rc.Reason)
		if err != nil {
			return filter.RuleSet{}, err
		}
		rules = append(rules, r)
	}
	return filter.NewRuleSet(rules...), nil
}

// DeclarationFilter builds the two-stage function filter.
func (c *Config) DeclarationFilter() (filter.DeclarationFilter, error) {
	names, err := c.NameRules()
	if err != nil {
		return filter.DeclarationFilter{}, err
	}
	return filter.DeclarationFilter{Reserved: c.ReservedRules(), Names: names}, nil
}

// EnumRules builds the prefix rules applied to enum constant names.
func (c *Config) EnumRules() filter.RuleSet {
	return prefixRules(c.Enums.ExcludePrefixes)
}

func prefixRules(configs []RuleConfig) filter.RuleSet {
	rules := make([]filter.Rule, 0, len(configs))
	for _, rc := range configs {
		rules = append(rules, filter.NewPrefixRule(rc.Pattern, rc.Reason))
	}
	return filter.NewRuleSet(rules...)
}
