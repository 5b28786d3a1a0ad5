package roles

import (
	"github.com/src-bin/plancheck/tfplan"
	"github.com/src-bin/plancheck/ui"
)

// VariableSource is the read-only table of resolved plan-time variable
// values. tfplan.Snapshot implements it.
type VariableSource interface {
	Variable(name string) (string, bool)
}

// Resolver turns one provider alias's raw configuration into the role ARN it
// will actually assume at apply time. The empty string is a sentinel meaning
// the alias assumes no role at all, which is always compliant.
type Resolver struct {
	Variables VariableSource
}

// Resolve is a pure function of its argument (and the immutable variables
// table), so resolving the same alias twice yields the same answer and
// aliases never depend on one another.
//
// The literal configuration is considered first and the reference second.
// A role_arn expressed in both forms at once is a configuration smell, but
// when it happens a recognized reference wins. Both branches must run;
// don't collapse the second into an else.
func (r *Resolver) Resolve(pc tfplan.ProviderConfig) string {
	var role string

	// Literal configuration. Only the legacy "${var.NAME}" form counts as a
	// variable here; everything else, the modern "var.NAME" spelling
	// included, is taken verbatim as the ARN.
	if len(pc.Config.AssumeRole) > 0 {
		if arn := pc.Config.AssumeRole[0].RoleArn; arn != nil {
			if ref := Classify(*arn); ref.Kind == LegacyVariableRef {
				role = r.variable(ref.Name)
			} else {
				role = *arn
			}
		}
	}

	// References. Either variable-reference generation resolves and
	// overwrites; an unrecognized reference leaves whatever the literal
	// branch produced (possibly nothing) in place.
	if len(pc.References.AssumeRole) > 0 {
		if refs := pc.References.AssumeRole[0].RoleArn; len(refs) > 0 {
			switch ref := Classify(refs[0]); ref.Kind {
			case LegacyVariableRef, ModernVariableRef:
				role = r.variable(ref.Name)
			}
		}
	}

	return role
}

// variable treats a name that's absent from the plan as "no role assumed"
// rather than an error, with a diagnostic so the operator can tell the
// difference between that and a provider that genuinely assumes nothing.
func (r *Resolver) variable(name string) string {
	value, ok := r.Variables.Variable(name)
	if !ok {
		ui.Printf("variable %q has no value in this plan; treating the assumed role as unset", name)
		return ""
	}
	return value
}
