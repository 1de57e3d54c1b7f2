package doctor

import (
	"sort"
	"strings"
)

// `security find-certificate` prints one attribute per line. The label line is
// indented by four spaces and otherwise looks like:
//
//	"labl"<blob>="iPhone Developer: Jane Doe (ABCDE12345)"
const (
	labelMarker = `"labl"`
	labelPrefix = `    "labl"<blob>="`
	labelOffset = len(labelPrefix)
)

// ParseCertificateLabels extracts the distinct certificate labels from raw
// `security find-certificate` output, sorted.
func ParseCertificateLabels(output string) []string {
	seen := map[string]struct{}{}
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if !strings.Contains(line, labelMarker) {
			continue
		}
		if label := extractLabel(line); label != "" {
			seen[label] = struct{}{}
		}
	}

	labels := make([]string, 0, len(seen))
	for label := range seen {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// extractLabel reads the canonical line by fixed offset and falls back to the
// quoted text after "<blob>=" for other spacings or hex-prefixed values.
func extractLabel(line string) string {
	if strings.HasPrefix(line, labelPrefix) && strings.HasSuffix(line, `"`) && len(line) > labelOffset {
		return line[labelOffset : len(line)-1]
	}
	_, rest, found := strings.Cut(line, "<blob>=")
	if !found {
		return ""
	}
	start := strings.Index(rest, `"`)
	end := strings.LastIndex(rest, `"`)
	if start < 0 || end <= start {
		return ""
	}
	return rest[start+1 : end]
}
