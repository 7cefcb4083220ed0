package filter

import "github.com/hargabyte/lvextract/internal/extract"

// Stage identifies which check excluded a declaration.
type Stage int

const (
	// StageNone means the declaration was kept.
	StageNone Stage = iota
	// StageReserved means the whole declaration text began with a reserved prefix.
	StageReserved
	// StageName means the extracted function name matched a name rule.
	StageName
)

// String returns the stage name used in logs and reports.
func (s Stage) String() string {
	switch s {
	case StageReserved:
		return "reserved"
	case StageName:
		return "name"
	default:
		return "none"
	}
}

// Verdict is the outcome of filtering one declaration.
type Verdict struct {
	Keep  bool
	Stage Stage
	Rule  Rule
}

// DeclarationFilter applies the two-stage declaration filter.
type DeclarationFilter struct {
	// Reserved is tested against the start of the declaration text.
	Reserved RuleSet
	// Names is tested against the extracted function identifier.
	Names RuleSet
}

// Check decides whether d is kept. Stage one drops declarations whose text
// begins with a reserved prefix (typedefs, library macros). Stage two drops
// declarations whose function name matches a name rule; declarations without
// an extractable name skip stage two and are kept.
func (f DeclarationFilter) Check(d extract.Declaration) Verdict {
	if r, ok := f.Reserved.Match(d.Text); ok {
		return Verdict{Stage: StageReserved, Rule: r}
	}
	if d.Name == "" {
		return Verdict{Keep: true}
	}
	if r, ok := f.Names.Match(d.Name); ok {
		return Verdict{Stage: StageName, Rule: r}
	}
	return Verdict{Keep: true}
}
