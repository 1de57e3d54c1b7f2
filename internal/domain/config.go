package domain

// Config mirrors ~/.cider/config.yaml.
type Config struct {
	ConfigFormatVersion string           `yaml:"config_format_version"`
	Amend               AmendSettings    `yaml:"amend"`
	Doctor              DoctorSettings   `yaml:"doctor"`
	Output              OutputSettings   `yaml:"output"`
	Identity            IdentitySettings `yaml:"identity"`
}

// AmendSettings controls how metadata documents are rewritten.
type AmendSettings struct {
	Strategy RewriteStrategy `yaml:"strategy"`
}

// DoctorSettings configures the external probes.
type DoctorSettings struct {
	Tools              ToolPaths `yaml:"tools"`
	DeveloperFilter    string    `yaml:"developer_filter"`
	DistributionFilter string    `yaml:"distribution_filter"`
}

// ToolPaths overrides the commands doctor invokes.
type ToolPaths struct {
	Which      string `yaml:"which"`
	Xcodebuild string `yaml:"xcodebuild"`
	Security   string `yaml:"security"`
}

// OutputSettings controls console rendering.
type OutputSettings struct {
	Color ColorMode `yaml:"color"`
}

// IdentitySettings configures PKCS#12 identity loading.
type IdentitySettings struct {
	PasswordEnv string `yaml:"password_env"`
}

// RewriteStrategy selects between literal and structured document rewrites.
type RewriteStrategy string

const (
	StrategyAuto       RewriteStrategy = "auto"
	StrategyLiteral    RewriteStrategy = "literal"
	StrategyStructured RewriteStrategy = "structured"
)

// Valid reports whether s names a known strategy.
func (s RewriteStrategy) Valid() bool {
	switch s {
	case StrategyAuto, StrategyLiteral, StrategyStructured:
		return true
	}
	return false
}

// ColorMode decides when console output is coloured.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)
