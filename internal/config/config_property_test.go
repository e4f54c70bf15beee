//go:build property
// +build property

package config

import (
	"fmt"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/spf13/viper"

	"github.com/conneroisu/mdinclude/internal/errors"
)

// TestConfigurationProperties tests configuration loading and validation properties
func TestConfigurationProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	// Property: Distinct template/output pairs always validate
	properties.Property("distinct jobs are valid", prop.ForAll(
		func(names []string) bool {
			cfg := Default()
			for i, name := range names {
				cfg.Jobs = append(cfg.Jobs, Job{
					Template: fmt.Sprintf("src/%d-%s.md", i, name),
					Output:   fmt.Sprintf("out/%d-%s.md", i, name),
				})
			}

			return validateConfig(cfg) == nil
		},
		gen.SliceOfN(5, gen.RegexMatch(`^[a-z]{1,10}$`)),
	))

	// Property: Two jobs writing the same output are always rejected
	properties.Property("duplicate outputs are invalid", prop.ForAll(
		func(name string) bool {
			cfg := Default()
			cfg.Jobs = []Job{
				{Template: "a.md", Output: name + ".md"},
				{Template: "b.md", Output: "./" + name + ".md"},
			}

			return validateConfig(cfg) != nil
		},
		gen.RegexMatch(`^[a-z]{1,10}$`),
	))

	// Property: Any key outside the known set is reported by name
	properties.Property("unknown keys are rejected", prop.ForAll(
		func(key string) bool {
			for _, known := range KnownKeys {
				if strings.HasPrefix(known, key) {
					return true
				}
			}

			v := viper.New()
			v.Set(key, "x")

			_, err := LoadFrom(v)
			var e *errors.Error
			return errors.IsUnrecognizedOption(err) &&
				asError(err, &e) && e.Keys[0] == key
		},
		gen.RegexMatch(`^[a-z]{3,12}$`),
	))

	properties.TestingRun(t)
}

func asError(err error, target **errors.Error) bool {
	e, ok := err.(*errors.Error)
	if ok {
		*target = e
	}
	return ok
}
