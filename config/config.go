// Package config manages Specular configuration: the converter option
// surface read by strategies, the frontend loading options, defaults, TOML
// file discovery, persistence, and change watching.
package config

import "github.com/specular-eng/specular/frontend"

// Config is the full configuration surface. The converter core passes it
// through untouched; individual converter strategies read the exclusion
// flags and patterns.
type Config struct {
	// ProjectName is the display name for the generated project root.
	ProjectName string `mapstructure:"project_name" toml:"project_name"`

	// ExternalPattern marks files matching the glob as external.
	ExternalPattern string `mapstructure:"external_pattern" toml:"external_pattern"`

	// IncludeDeclarations converts bodyless declarations as well.
	IncludeDeclarations bool `mapstructure:"include_declarations" toml:"include_declarations"`

	// ExcludeExternals drops reflections from files marked external.
	ExcludeExternals bool `mapstructure:"exclude_externals" toml:"exclude_externals"`

	// ExcludeNotExported drops unexported package-level symbols.
	ExcludeNotExported bool `mapstructure:"exclude_not_exported" toml:"exclude_not_exported"`

	// ExcludePrivate drops unexported struct fields and methods.
	ExcludePrivate bool `mapstructure:"exclude_private" toml:"exclude_private"`

	Frontend FrontendConfig `mapstructure:"frontend" toml:"frontend"`
}

// FrontendConfig holds compiler-frontend loading options. The converter
// core does not interpret these beyond passing them to program creation.
type FrontendConfig struct {
	// Dir is the working directory for package loading.
	Dir string `mapstructure:"dir" toml:"dir"`

	// BuildFlags are extra flags for the underlying build system.
	BuildFlags []string `mapstructure:"build_flags" toml:"build_flags,omitempty"`

	// IncludeTests loads _test.go files as source units.
	IncludeTests bool `mapstructure:"include_tests" toml:"include_tests"`
}

// FrontendOptions converts the frontend section into the options the
// frontend boundary consumes.
func (c *Config) FrontendOptions() frontend.Options {
	return frontend.Options{
		Dir:          c.Frontend.Dir,
		BuildFlags:   c.Frontend.BuildFlags,
		IncludeTests: c.Frontend.IncludeTests,
	}
}
