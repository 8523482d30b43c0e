package config

import "github.com/spf13/viper"

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("project_name", "Documentation")
	v.SetDefault("external_pattern", "")
	v.SetDefault("include_declarations", false)
	v.SetDefault("exclude_externals", false)
	v.SetDefault("exclude_not_exported", false)
	v.SetDefault("exclude_private", false)

	v.SetDefault("frontend.dir", ".")
	v.SetDefault("frontend.build_flags", []string{})
	v.SetDefault("frontend.include_tests", false)
}
