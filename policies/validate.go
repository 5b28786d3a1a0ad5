package policies

import (
	"fmt"
	"sort"
)

// Violation records one provider alias that resolved to a role outside the
// allow-list.
type Violation struct {
	Address string
	RoleArn string
}

func (v Violation) String() string {
	return fmt.Sprintf(
		"AWS provider with alias %s has assumed role %s that is not allowed.",
		v.Address,
		v.RoleArn,
	)
}

// Validate checks every resolved role against the allow-list and returns the
// overall verdict plus one Violation per offending alias, sorted by address
// so output is reproducible. An empty resolved role means the alias assumes
// no role at all and is always compliant; plancheck restricts active role
// assumption, not its absence.
func Validate(resolved map[string]string, allowList AllowList) (bool, []Violation) {
	addresses := make([]string, 0, len(resolved))
	for address := range resolved {
		addresses = append(addresses, address)
	}
	sort.Strings(addresses)

	var violations []Violation
	for _, address := range addresses {
		roleArn := resolved[address]
		if roleArn == "" {
			continue
		}
		if allowList.Contains(roleArn) {
			continue
		}
		violations = append(violations, Violation{address, roleArn})
	}
	return len(violations) == 0, violations
}
