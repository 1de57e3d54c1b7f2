package metadata

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"howett.net/plist"

	"github.com/rickhohler/cider-tool/internal/domain"
)

// errValueMismatch marks a rewrite that left an unexpected value at the key.
var errValueMismatch = errors.New("rewritten value does not match")

// Replace rewrites every occurrence of old with replacement in the document at
// path using the given strategy. The string at keyPath must read back as the
// substituted value; a literal pass that misses it is undone and redone
// structurally. A document that fails the check is restored.
func (s *PlistStore) Replace(path string, keyPath []string, old, replacement string, strategy domain.RewriteStrategy) error {
	if old == "" {
		return fmt.Errorf("replace in %s: empty search value", path)
	}
	original, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w: %w", path, domain.ErrIO, err)
	}
	doc, format, err := decode(path, original)
	if err != nil {
		return err
	}
	current, err := stringAt(doc, keyPath)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	want := strings.ReplaceAll(current, old, replacement)

	resolved := resolveStrategy(strategy, format)
	s.debug("rewriting metadata document", map[string]interface{}{
		"path":     path,
		"strategy": string(resolved),
		"format":   plist.FormatNames[format],
	})

	if resolved == domain.StrategyLiteral {
		err := replaceLiteral(path, format, old, replacement)
		if err == nil {
			err = verifyValue(path, keyPath, want)
		}
		if err == nil {
			return nil
		}
		if restoreErr := restore(path, original); restoreErr != nil {
			return restoreErr
		}
		if !errors.Is(err, errValueMismatch) {
			return err
		}
		s.debug("literal rewrite missed the key, rewriting structurally", map[string]interface{}{
			"path": path,
			"key":  strings.Join(keyPath, "."),
		})
	}

	if err := s.rewriteStructured(path, format, func(doc map[string]interface{}) {
		replaceStrings(doc, old, replacement)
	}); err != nil {
		return err
	}
	if err := verifyValue(path, keyPath, want); err != nil {
		if restoreErr := restore(path, original); restoreErr != nil {
			return restoreErr
		}
		return err
	}
	return nil
}

func replaceLiteral(path string, format int, old, replacement string) error {
	if format == plist.XMLFormat {
		old, replacement = escapeXMLText(old), escapeXMLText(replacement)
	}
	count, err := ReplaceInFile(path, old, replacement)
	if err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%s: %w: no literal match", path, errValueMismatch)
	}
	return nil
}

// verifyValue re-reads path and checks the string at keyPath.
func verifyValue(path string, keyPath []string, want string) error {
	doc, _, err := loadWithFormat(path)
	if err != nil {
		return fmt.Errorf("after rewrite: %w", err)
	}
	got, err := stringAt(doc, keyPath)
	if err != nil {
		return fmt.Errorf("after rewrite: %s: %w", path, err)
	}
	if got != want {
		return fmt.Errorf("%s: %w: %s is %q, want %q", path, errValueMismatch, strings.Join(keyPath, "."), got, want)
	}
	return nil
}

// restore writes the pre-rewrite bytes back over path.
func restore(path string, original []byte) error {
	mode := os.FileMode(domain.DocumentFilePermissions)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, original, mode); err != nil {
		return fmt.Errorf("restore %s: %w: %w", path, domain.ErrIO, err)
	}
	return nil
}

// Set assigns value at keyPath, creating intermediate dictionaries as needed.
// Used when there is no previous value to substitute.
func (s *PlistStore) Set(path string, keyPath []string, value string) error {
	if len(keyPath) == 0 {
		return fmt.Errorf("set in %s: empty key path", path)
	}
	_, format, err := loadWithFormat(path)
	if err != nil {
		return err
	}
	s.debug("setting metadata key", map[string]interface{}{
		"path": path,
		"key":  strings.Join(keyPath, "."),
	})
	return s.rewriteStructured(path, format, func(doc map[string]interface{}) {
		current := doc
		for _, key := range keyPath[:len(keyPath)-1] {
			next, ok := current[key].(map[string]interface{})
			if !ok {
				next = map[string]interface{}{}
				current[key] = next
			}
			current = next
		}
		current[keyPath[len(keyPath)-1]] = value
	})
}

func (s *PlistStore) rewriteStructured(path string, format int, mutate func(map[string]interface{})) error {
	doc, _, err := loadWithFormat(path)
	if err != nil {
		return err
	}
	mutate(doc)

	var data []byte
	if format == plist.XMLFormat {
		data, err = plist.MarshalIndent(doc, format, "\t")
	} else {
		data, err = plist.Marshal(doc, format)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w: %v", path, domain.ErrMalformedDocument, err)
	}

	mode := os.FileMode(domain.DocumentFilePermissions)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, data, mode); err != nil {
		return fmt.Errorf("write %s: %w: %w", path, domain.ErrIO, err)
	}
	return nil
}

// resolveStrategy maps auto onto a concrete strategy for the document format.
// Literal substitution would corrupt the offset table of a binary plist.
func resolveStrategy(strategy domain.RewriteStrategy, format int) domain.RewriteStrategy {
	switch strategy {
	case domain.StrategyLiteral:
		if format == plist.BinaryFormat {
			return domain.StrategyStructured
		}
		return domain.StrategyLiteral
	case domain.StrategyStructured:
		return domain.StrategyStructured
	}
	if format == plist.BinaryFormat {
		return domain.StrategyStructured
	}
	return domain.StrategyLiteral
}

// replaceStrings substitutes inside every string value, recursing through
// dictionaries and arrays. Keys are left alone.
func replaceStrings(value interface{}, old, replacement string) interface{} {
	switch v := value.(type) {
	case string:
		return strings.ReplaceAll(v, old, replacement)
	case map[string]interface{}:
		for key, item := range v {
			v[key] = replaceStrings(item, old, replacement)
		}
		return v
	case []interface{}:
		for i, item := range v {
			v[i] = replaceStrings(item, old, replacement)
		}
		return v
	default:
		return v
	}
}
