package roles

import (
	"regexp"
	"strings"
)

// RefKind enumerates every way a role_arn string can spell its value. Two
// generations of Terraform expressed "this value is a variable" differently,
// so both forms are first-class here and everything else is either a plain
// literal or a reference this tool doesn't follow.
type RefKind int

const (
	Literal           RefKind = iota // a verbatim ARN (or any other plain string)
	LegacyVariableRef                // "${var.NAME}", the pre-0.12 interpolation form
	ModernVariableRef                // "var.NAME", the bare traversal form
	Unrecognized                     // some other interpolation or traversal, e.g. "data.x.y.arn"
)

func (k RefKind) String() string {
	switch k {
	case Literal:
		return "literal"
	case LegacyVariableRef:
		return "legacy variable reference"
	case ModernVariableRef:
		return "variable reference"
	}
	return "unrecognized reference"
}

// Ref is a classified role_arn string. Name is the variable name for the two
// variable-reference kinds and empty otherwise.
type Ref struct {
	Kind RefKind
	Name string
}

var (
	legacyPattern    = regexp.MustCompile(`^\$\{var\.([^}]+)\}$`)
	modernPattern    = regexp.MustCompile(`^var\.(.+)$`)
	traversalPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_-]*(\.[a-zA-Z0-9_\[\]"-]+)+$`)
)

// Classify is total over all strings: every input falls into exactly one
// RefKind. Matching is exact, never substring, and variable names come back
// verbatim, case intact, for use as lookup keys.
func Classify(s string) Ref {
	if m := legacyPattern.FindStringSubmatch(s); m != nil {
		return Ref{LegacyVariableRef, m[1]}
	}
	if m := modernPattern.FindStringSubmatch(s); m != nil {
		return Ref{ModernVariableRef, m[1]}
	}
	if strings.Contains(s, "${") || traversalPattern.MatchString(s) {
		return Ref{Unrecognized, ""}
	}
	return Ref{Literal, ""}
}
