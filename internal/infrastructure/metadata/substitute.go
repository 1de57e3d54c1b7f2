package metadata

import (
	"fmt"
	"os"
	"strings"

	"github.com/rickhohler/cider-tool/internal/domain"
)

// ReplaceInFile replaces every occurrence of old with replacement in the raw
// text of filename and writes the result back over the file.
func ReplaceInFile(filename, old, replacement string) (int, error) {
	info, err := os.Stat(filename)
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w: %w", filename, domain.ErrIO, err)
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w: %w", filename, domain.ErrIO, err)
	}

	text := string(data)
	count := strings.Count(text, old)
	if count == 0 {
		return 0, nil
	}
	text = strings.ReplaceAll(text, old, replacement)

	if err := os.WriteFile(filename, []byte(text), info.Mode().Perm()); err != nil {
		return 0, fmt.Errorf("write %s: %w: %w", filename, domain.ErrIO, err)
	}
	return count, nil
}

var xmlTextEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// escapeXMLText escapes a value the way it appears inside a <string> element.
func escapeXMLText(s string) string {
	return xmlTextEscaper.Replace(s)
}
