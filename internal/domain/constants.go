package domain

// Bundle layout
const (
	// ArchiveExtension is the suffix an amendable archive directory must carry
	ArchiveExtension = ".xcarchive"
	// InfoPlistName is the metadata document name at the bundle root and inside the app
	InfoPlistName = "Info.plist"
	// EmbeddedProfileName is the provisioning profile copied into signed apps
	EmbeddedProfileName = "embedded.mobileprovision"
)

// Metadata document keys
const (
	KeyApplicationProperties = "ApplicationProperties"
	KeyApplicationPath       = "ApplicationPath"
	KeyBundleIdentifier      = "CFBundleIdentifier"
	KeySigningIdentity       = "SigningIdentity"
	KeyTeam                  = "Team"
	KeyBundleExecutable      = "CFBundleExecutable"
)

// Doctor defaults
const (
	DefaultWhichCommand       = "which"
	DefaultXcodebuildCommand  = "xcodebuild"
	DefaultSecurityCommand    = "/usr/bin/security"
	DefaultDeveloperFilter    = "iPhone Developer:"
	DefaultDistributionFilter = "iPhone Distribution:"
	CodesignToolName          = "codesign"
)

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// DocumentFilePermissions is used when a rewritten document has no prior mode
	DocumentFilePermissions = 0o644
	// SecureFilePermissions is used for the config file (rw-------)
	SecureFilePermissions = 0o600
)

// Environment
const (
	// EnvConfigPath overrides the config file location
	EnvConfigPath = "CIDER_CONFIG"
	// EnvDebug enables debug logging when set to 1 or true
	EnvDebug = "CIDER_DEBUG"
	// DefaultPasswordEnv holds the PKCS#12 password unless configured otherwise
	DefaultPasswordEnv = "CIDER_P12_PASSWORD"
)
