package roles

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/src-bin/plancheck/tfplan"
)

type variablesMap map[string]string

func (m variablesMap) Variable(name string) (string, bool) {
	value, ok := m[name]
	return value, ok
}

func stringp(s string) *string { return &s }

func roleArn(accountId, rolename string) string {
	return fmt.Sprintf("arn:aws:iam::%s:role/%s", accountId, rolename)
}

func configOnly(roleArn *string) tfplan.ProviderConfig {
	return tfplan.ProviderConfig{
		Type: "aws",
		Config: tfplan.BlockConfig{
			AssumeRole: []tfplan.AssumeRoleConfig{{RoleArn: roleArn}},
		},
	}
}

func refsOnly(roleArn ...string) tfplan.ProviderConfig {
	return tfplan.ProviderConfig{
		Type: "aws",
		References: tfplan.BlockRefs{
			AssumeRole: []tfplan.AssumeRoleRefs{{RoleArn: roleArn}},
		},
	}
}

func TestResolveLiteral(t *testing.T) {
	r := &Resolver{Variables: variablesMap{}}
	arn := roleArn("222222222222", "y")
	assert.Equal(t, arn, r.Resolve(configOnly(stringp(arn))))
}

func TestResolveLegacyVariableConfig(t *testing.T) {
	arn := roleArn("111111111111", "x")
	r := &Resolver{Variables: variablesMap{"role": arn}}
	assert.Equal(t, arn, r.Resolve(configOnly(stringp("${var.role}"))))
}

func TestResolveLegacyVariableReference(t *testing.T) {
	arn := roleArn("111111111111", "x")
	r := &Resolver{Variables: variablesMap{"role": arn}}
	assert.Equal(t, arn, r.Resolve(refsOnly("${var.role}")))
}

func TestResolveModernVariableReference(t *testing.T) {
	arn := roleArn("111111111111", "x")
	r := &Resolver{Variables: variablesMap{"role": arn}}
	assert.Equal(t, arn, r.Resolve(refsOnly("var.role")))
}

// The modern spelling only counts in the references; as a literal
// configuration value it's just a (nonsensical) string and passes through
// verbatim.
func TestResolveModernSpellingInConfigIsLiteral(t *testing.T) {
	r := &Resolver{Variables: variablesMap{"role": roleArn("111111111111", "x")}}
	assert.Equal(t, "var.role", r.Resolve(configOnly(stringp("var.role"))))
}

func TestResolveNoAssumeRole(t *testing.T) {
	r := &Resolver{Variables: variablesMap{}}
	assert.Equal(t, "", r.Resolve(tfplan.ProviderConfig{Type: "aws"}))
}

func TestResolveNilRoleArn(t *testing.T) {
	r := &Resolver{Variables: variablesMap{}}
	assert.Equal(t, "", r.Resolve(configOnly(nil)))
}

func TestResolveUnrecognizedReferenceLeavesConfigResult(t *testing.T) {
	arn := roleArn("222222222222", "y")
	pc := configOnly(stringp(arn))
	pc.References = tfplan.BlockRefs{
		AssumeRole: []tfplan.AssumeRoleRefs{{RoleArn: []string{"data.aws_iam_role.deploy.arn"}}},
	}
	r := &Resolver{Variables: variablesMap{}}
	assert.Equal(t, arn, r.Resolve(pc))
}

// When both forms are present, the reference wins.
func TestResolveReferenceOverwritesConfig(t *testing.T) {
	fromVariable := roleArn("111111111111", "x")
	pc := configOnly(stringp(roleArn("222222222222", "y")))
	pc.References = tfplan.BlockRefs{
		AssumeRole: []tfplan.AssumeRoleRefs{{RoleArn: []string{"var.role"}}},
	}
	r := &Resolver{Variables: variablesMap{"role": fromVariable}}
	assert.Equal(t, fromVariable, r.Resolve(pc))
}

func TestResolveMissingVariable(t *testing.T) {
	r := &Resolver{Variables: variablesMap{}}
	assert.Equal(t, "", r.Resolve(refsOnly("var.role")))
	assert.Equal(t, "", r.Resolve(configOnly(stringp("${var.role}"))))
}

func TestResolveIdempotent(t *testing.T) {
	r := &Resolver{Variables: variablesMap{"role": roleArn("111111111111", "x")}}
	pc := refsOnly("var.role")
	assert.Equal(t, r.Resolve(pc), r.Resolve(pc))
}
