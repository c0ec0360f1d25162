// Package yaml loads license policies from YAML files.
package yaml

import (
	"os"

	"github.com/feluda-dev/feluda"
	"gopkg.in/yaml.v3"
)

// policyFile is the on-disk policy shape.
type policyFile struct {
	Allow        []string          `yaml:"allow"`
	Deny         []string          `yaml:"deny"`
	AllowUnknown bool              `yaml:"allowUnknown"`
	Restrictive  []string          `yaml:"restrictive"`
	Prefer       feluda.Preference `yaml:"prefer"`
}

// LoadPolicy reads and validates a policy from a YAML file.
// A missing file is ENOTFOUND; malformed YAML or invalid policy fields are
// EINVALID.
func LoadPolicy(path string) (feluda.Policy, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return feluda.Policy{}, feluda.Errorf(feluda.ENOTFOUND, "policy file %q does not exist", path)
	} else if err != nil {
		return feluda.Policy{}, err
	}

	var file policyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return feluda.Policy{}, feluda.Errorf(feluda.EINVALID, "parse %s: %v", path, err)
	}

	policy := feluda.Policy{
		Allow:        file.Allow,
		Deny:         file.Deny,
		AllowUnknown: file.AllowUnknown,
		Restrictive:  file.Restrictive,
		Prefer:       file.Prefer,
	}
	if err := policy.Validate(); err != nil {
		return feluda.Policy{}, feluda.Errorf(feluda.EINVALID, "policy %s: %v", path, feluda.ErrorMessage(err))
	}
	return policy, nil
}
