package helpers

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rickhohler/cider-tool/internal/domain"
)

func TestRendererPlainOutput(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, domain.ColorNever)

	r.Line("header")
	r.Summary(domain.ProbeOK, "fine")
	r.Summary(domain.ProbeWarn, "hmm")
	r.Summary(domain.ProbeError, "broken")
	r.Detail(true, "yes")
	r.Detail(false, "no")

	assert.Equal(t, "header\n[✓] fine\n[!] hmm\n[✗] broken\n    ✓ yes\n    ✗ no\n", out.String())
}

func TestRendererAutoIsPlainWhenNotATerminal(t *testing.T) {
	var out bytes.Buffer
	NewRenderer(&out, domain.ColorAuto).Summary(domain.ProbeOK, "fine")

	assert.Equal(t, "[✓] fine\n", out.String())
}

func TestRendererAlwaysColours(t *testing.T) {
	var out bytes.Buffer
	NewRenderer(&out, domain.ColorAlways).Summary(domain.ProbeError, "broken")

	assert.Contains(t, out.String(), "\x1b[")
	assert.Contains(t, out.String(), "[✗]")
}
