// Package metadata reads and rewrites the property lists that describe archive
// and application bundles.
package metadata

import (
	"fmt"
	"os"
	"path/filepath"

	"howett.net/plist"

	"github.com/rickhohler/cider-tool/internal/domain"
	"github.com/rickhohler/cider-tool/internal/ports"
)

// PlistStore implements ports.MetadataStore on top of howett.net/plist.
type PlistStore struct {
	logger ports.Logger
}

// NewPlistStore builds a store. A nil logger disables debug output.
func NewPlistStore(logger ports.Logger) *PlistStore {
	return &PlistStore{logger: logger}
}

// Load parses path into a key-value mapping.
func (s *PlistStore) Load(path string) (map[string]interface{}, error) {
	doc, _, err := loadWithFormat(path)
	return doc, err
}

// ReadArchiveMetadata reads <bundle>/Info.plist and extracts ApplicationProperties.
func (s *PlistStore) ReadArchiveMetadata(bundle string) (domain.ArchiveMetadata, error) {
	path := filepath.Join(bundle, domain.InfoPlistName)
	doc, err := s.Load(path)
	if err != nil {
		return domain.ArchiveMetadata{}, err
	}

	props, err := dictionary(doc, domain.KeyApplicationProperties)
	if err != nil {
		return domain.ArchiveMetadata{}, fmt.Errorf("%s: %w", path, err)
	}

	var meta domain.ArchiveMetadata
	fields := []struct {
		key string
		dst *string
	}{
		{domain.KeyApplicationPath, &meta.ApplicationPath},
		{domain.KeyBundleIdentifier, &meta.BundleIdentifier},
		{domain.KeySigningIdentity, &meta.SigningIdentity},
		{domain.KeyTeam, &meta.Team},
	}
	for _, f := range fields {
		value, err := stringValue(props, f.key)
		if err != nil {
			return domain.ArchiveMetadata{}, fmt.Errorf("%s: %w", path, err)
		}
		*f.dst = value
	}
	return meta, nil
}

// StringValue reads a top-level string key from the document at path.
func (s *PlistStore) StringValue(path, key string) (string, error) {
	doc, err := s.Load(path)
	if err != nil {
		return "", err
	}
	value, err := stringValue(doc, key)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return value, nil
}

func (s *PlistStore) debug(msg string, fields map[string]interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, fields)
	}
}

func loadWithFormat(path string) (map[string]interface{}, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, plist.InvalidFormat, fmt.Errorf("read %s: %w: %w", path, domain.ErrIO, err)
	}
	return decode(path, data)
}

func decode(path string, data []byte) (map[string]interface{}, int, error) {
	var doc map[string]interface{}
	format, err := plist.Unmarshal(data, &doc)
	if err != nil {
		return nil, plist.InvalidFormat, fmt.Errorf("parse %s: %w: %v", path, domain.ErrMalformedDocument, err)
	}
	if doc == nil {
		return nil, plist.InvalidFormat, fmt.Errorf("parse %s: %w: top level is not a dictionary", path, domain.ErrMalformedDocument)
	}
	return doc, format, nil
}

func dictionary(doc map[string]interface{}, key string) (map[string]interface{}, error) {
	raw, ok := doc[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrMissingKey, key)
	}
	dict, ok := raw.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a dictionary", domain.ErrMalformedDocument, key)
	}
	return dict, nil
}

// stringAt walks keyPath through nested dictionaries to a string value.
func stringAt(doc map[string]interface{}, keyPath []string) (string, error) {
	if len(keyPath) == 0 {
		return "", fmt.Errorf("%w: empty key path", domain.ErrMissingKey)
	}
	current := doc
	for _, key := range keyPath[:len(keyPath)-1] {
		next, err := dictionary(current, key)
		if err != nil {
			return "", err
		}
		current = next
	}
	return stringValue(current, keyPath[len(keyPath)-1])
}

func stringValue(doc map[string]interface{}, key string) (string, error) {
	raw, ok := doc[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrMissingKey, key)
	}
	value, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s is not a string", domain.ErrMalformedDocument, key)
	}
	return value, nil
}

var _ ports.MetadataStore = (*PlistStore)(nil)
