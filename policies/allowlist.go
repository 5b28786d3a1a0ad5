// Package policies holds the allow-list side of plancheck: which role ARNs
// an AWS provider alias is permitted to assume, and the validation that
// compares resolved roles against that list.
package policies

import (
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws/arn"
	"gopkg.in/yaml.v3"

	"github.com/src-bin/plancheck/jsonutil"
	"github.com/src-bin/plancheck/ui"
)

// AllowList is the ordered set of role ARNs that providers may assume. It's
// fixed for the life of one evaluation and membership is exact string
// equality, no globbing, no ARN canonicalization.
type AllowList []string

func (l AllowList) Contains(roleArn string) bool {
	for _, allowed := range l {
		if allowed == roleArn {
			return true
		}
	}
	return false
}

// Document is the on-disk policy file, YAML by default or JSON when the
// pathname says so.
type Document struct {
	AllowedRoleArns []string `json:"allowed_role_arns" yaml:"allowed_role_arns"`
}

func LoadAllowList(pathname string) (AllowList, error) {
	doc := &Document{}
	if strings.HasSuffix(pathname, ".json") {
		if err := jsonutil.Read(pathname, doc); err != nil {
			return nil, fmt.Errorf("reading policy %s: %w", pathname, err)
		}
	} else {
		b, err := os.ReadFile(pathname)
		if err != nil {
			return nil, fmt.Errorf("reading policy %s: %w", pathname, err)
		}
		if err := yaml.Unmarshal(b, doc); err != nil {
			return nil, fmt.Errorf("reading policy %s: %w", pathname, err)
		}
	}

	// A malformed entry can never match a resolved role so it only ever
	// tightens the policy. Warn rather than fail.
	for _, allowed := range doc.AllowedRoleArns {
		if !arn.IsARN(allowed) {
			ui.Printf("allowed role %q in %s doesn't look like an ARN", allowed, pathname)
		}
	}

	return AllowList(doc.AllowedRoleArns), nil
}
