// Package tfconfig builds a tfplan.Snapshot straight from a directory of
// Terraform source, so the compliance check can run before anyone's even
// asked Terraform for a plan. It reads just enough of the language to feed
// the audit: provider blocks and their assume_role.role_arn, variable
// defaults, and local-path module calls (which become the child-module
// tree). Remote and registry modules are skipped; their providers aren't
// visible from the calling configuration anyway.
package tfconfig

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/src-bin/plancheck/tfplan"
)

var rootSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "provider", LabelNames: []string{"type"}},
		{Type: "variable", LabelNames: []string{"name"}},
		{Type: "module", LabelNames: []string{"name"}},
	},
}

var providerSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{{Name: "alias"}},
	Blocks:     []hcl.BlockHeaderSchema{{Type: "assume_role"}},
}

var assumeRoleSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{{Name: "role_arn"}},
}

var variableSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{{Name: "default"}},
}

var moduleSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{{Name: "source"}},
}

func LoadDir(dirname string) (*tfplan.Snapshot, error) {
	dirname, err := filepath.Abs(dirname)
	if err != nil {
		return nil, err
	}
	snapshot := &tfplan.Snapshot{Variables: map[string]string{}}
	if err := loadModule(
		hclparse.NewParser(),
		dirname,
		&snapshot.RootModule,
		snapshot.Variables,
		map[string]bool{},
	); err != nil {
		return nil, err
	}
	return snapshot, nil
}

func loadModule(
	parser *hclparse.Parser,
	dirname string,
	m *tfplan.Module,
	variables map[string]string,
	visiting map[string]bool, // guards module-call cycles on the current path
) error {
	if visiting[dirname] {
		return fmt.Errorf("module call cycle through %s", dirname)
	}
	visiting[dirname] = true
	defer delete(visiting, dirname)

	pathnames, err := filepath.Glob(filepath.Join(dirname, "*.tf"))
	if err != nil {
		return err
	}
	sort.Strings(pathnames) // deterministic tree for a given source checkout

	for _, pathname := range pathnames {
		file, diags := parser.ParseHCLFile(pathname)
		if diags.HasErrors() {
			return diags
		}
		content, _, diags := file.Body.PartialContent(rootSchema)
		if diags.HasErrors() {
			return diags
		}
		for _, block := range content.Blocks {
			switch block.Type {

			case "provider":
				pc, err := providerConfig(block)
				if err != nil {
					return err
				}
				m.Providers = append(m.Providers, pc)

			case "variable":
				name := block.Labels[0]
				if _, ok := variables[name]; ok {
					break // first declaration wins in the flat table
				}
				if value, ok := variableDefault(block); ok {
					variables[name] = value
				}

			case "module":
				child, err := moduleCall(parser, dirname, block, variables, visiting)
				if err != nil {
					return err
				}
				if child != nil {
					m.ChildModules = append(m.ChildModules, child)
				}

			}
		}
	}
	return nil
}

func providerConfig(block *hcl.Block) (tfplan.ProviderConfig, error) {
	pc := tfplan.ProviderConfig{Type: block.Labels[0]}
	content, _, diags := block.Body.PartialContent(providerSchema)
	if diags.HasErrors() {
		return pc, diags
	}

	if attr, ok := content.Attributes["alias"]; ok {
		if v, diags := attr.Expr.Value(nil); !diags.HasErrors() && !v.IsNull() && v.Type().Equals(cty.String) {
			pc.Alias = v.AsString()
		}
	}

	for _, inner := range content.Blocks {
		arContent, _, diags := inner.Body.PartialContent(assumeRoleSchema)
		if diags.HasErrors() {
			return pc, diags
		}
		conf := tfplan.AssumeRoleConfig{}
		refs := tfplan.AssumeRoleRefs{}
		if attr, ok := arContent.Attributes["role_arn"]; ok {
			if vars := attr.Expr.Variables(); len(vars) > 0 {
				for _, traversal := range vars {
					refs.RoleArn = append(refs.RoleArn, traversalString(traversal))
				}
			} else if v, diags := attr.Expr.Value(nil); !diags.HasErrors() && !v.IsNull() && v.Type().Equals(cty.String) {
				s := v.AsString()
				conf.RoleArn = &s
			}
		}
		pc.Config.AssumeRole = append(pc.Config.AssumeRole, conf)
		if len(refs.RoleArn) > 0 {
			pc.References.AssumeRole = append(pc.References.AssumeRole, refs)
		}
		break // Terraform allows at most one assume_role block
	}

	return pc, nil
}

func variableDefault(block *hcl.Block) (string, bool) {
	content, _, diags := block.Body.PartialContent(variableSchema)
	if diags.HasErrors() {
		return "", false
	}
	attr, ok := content.Attributes["default"]
	if !ok {
		return "", false
	}
	v, diags := attr.Expr.Value(nil)
	if diags.HasErrors() || v.IsNull() || !v.Type().Equals(cty.String) {
		return "", false
	}
	return v.AsString(), true
}

func moduleCall(
	parser *hclparse.Parser,
	dirname string,
	block *hcl.Block,
	variables map[string]string,
	visiting map[string]bool,
) (*tfplan.Module, error) {
	content, _, diags := block.Body.PartialContent(moduleSchema)
	if diags.HasErrors() {
		return nil, diags
	}
	attr, ok := content.Attributes["source"]
	if !ok {
		return nil, nil
	}
	v, diags := attr.Expr.Value(nil)
	if diags.HasErrors() || v.IsNull() || !v.Type().Equals(cty.String) {
		return nil, nil
	}
	source := v.AsString()
	if !strings.HasPrefix(source, "./") && !strings.HasPrefix(source, "../") {
		return nil, nil
	}

	child := &tfplan.Module{Name: block.Labels[0]}
	if err := loadModule(parser, filepath.Join(dirname, source), child, variables, visiting); err != nil {
		return nil, err
	}
	return child, nil
}

func traversalString(traversal hcl.Traversal) string {
	parts := []string{traversal.RootName()}
	for _, step := range traversal[1:] {
		if attrStep, ok := step.(hcl.TraverseAttr); ok {
			parts = append(parts, attrStep.Name)
		}
	}
	return strings.Join(parts, ".")
}
