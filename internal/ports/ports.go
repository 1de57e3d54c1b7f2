// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// The application services in internal/application depend only on these
// interfaces. Concrete adapters live in internal/infrastructure: the plist
// store, the local command runner, the yaml config loader and the readers for
// provisioning profiles, Mach-O executables and PKCS#12 identities. Tests swap
// any of them for stubs so no real bundle tooling has to be installed.
package ports

import (
	"context"

	"github.com/rickhohler/cider-tool/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.cider/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// CommandRunner starts an external program and waits for it.
// A non-zero exit is reported through the result, not as an error; an error
// means the program could not be started at all.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (domain.CommandResult, error)
}

// MetadataStore reads and rewrites bundle metadata documents.
type MetadataStore interface {
	ReadArchiveMetadata(bundle string) (domain.ArchiveMetadata, error)
	Load(path string) (map[string]interface{}, error)
	StringValue(path, key string) (string, error)
	Replace(path string, keyPath []string, old, replacement string, strategy domain.RewriteStrategy) error
	Set(path string, keyPath []string, value string) error
}

// FieldPrompter asks the operator for a replacement value.
// An empty answer means the field stays unchanged.
type FieldPrompter interface {
	Ask(label, current string) (string, error)
}

// ProfileReader parses an embedded provisioning profile.
type ProfileReader interface {
	ReadProfile(path string) (domain.ProfileSummary, error)
}

// BinaryInspector reports the architectures of a Mach-O executable.
type BinaryInspector interface {
	Architectures(path string) ([]string, error)
}

// IdentityReader opens a PKCS#12 signing identity without using it.
type IdentityReader interface {
	ReadIdentity(path, password string) (domain.SigningIdentity, error)
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
