package pretty_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/kumihan/internal/ui/pretty"
)

func TestNewStyles_ColorEnabled(t *testing.T) {
	styles := pretty.NewStyles(true)
	require.NotNil(t, styles)

	assert.NotEmpty(t, styles.NodeType.Render("x"))
	assert.NotEmpty(t, styles.AttrKey.Render("x"))
	assert.NotEmpty(t, styles.Error.Render("x"))
}

func TestNewStyles_ColorDisabled(t *testing.T) {
	styles := pretty.NewStyles(false)
	require.NotNil(t, styles)

	text := "test"
	assert.Equal(t, text, styles.Bold.Render(text), "No-color Bold should not add formatting")
	assert.Equal(t, text, styles.NodeType.Render(text), "No-color NodeType should not add formatting")
	assert.Equal(t, text, styles.Error.Render(text), "No-color Error should not add formatting")
}

func TestIsColorEnabled_AlwaysMode(t *testing.T) {
	var buf bytes.Buffer
	assert.True(t, pretty.IsColorEnabled("always", &buf), "always mode should return true")
}

func TestIsColorEnabled_NeverMode(t *testing.T) {
	assert.False(t, pretty.IsColorEnabled("never", os.Stdout), "never mode should return false")
}

func TestIsColorEnabled_AutoMode_NonTTY(t *testing.T) {
	t.Setenv("FORCE_COLOR", "")

	var buf bytes.Buffer
	assert.False(t, pretty.IsColorEnabled("auto", &buf), "auto mode with non-TTY should return false")
}

func TestIsColorEnabled_AutoMode_ForceColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("FORCE_COLOR", "1")

	var buf bytes.Buffer
	assert.True(t, pretty.IsColorEnabled("auto", &buf), "FORCE_COLOR should enable color on a non-TTY")
	assert.False(t, pretty.IsColorEnabled("NEVER", &buf), "explicit never wins over FORCE_COLOR")
}

func TestIsColorEnabled_AutoMode_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.False(t, pretty.IsColorEnabled("auto", os.Stdout), "auto mode with NO_COLOR set should return false")
}

func TestIsColorEnabled_DefaultsToAuto(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	var buf bytes.Buffer
	assert.False(t, pretty.IsColorEnabled("", &buf), "empty mode with non-TTY should return false")
	assert.False(t, pretty.IsColorEnabled("unknown", &buf), "unknown mode with non-TTY should return false")
}

func TestFormatIssue(t *testing.T) {
	styles := pretty.NewStyles(false)

	assert.Equal(t, "  warning: unknown keyword", styles.FormatIssue(pretty.SeverityWarning, "unknown keyword"))
	assert.Equal(t, "  error: a\n    b", styles.FormatIssue(pretty.SeverityError, "a\nb"))
}

func TestFormatFileHeader(t *testing.T) {
	styles := pretty.NewStyles(false)

	assert.Equal(t, "doc.txt [block]", styles.FormatFileHeader("doc.txt", "block", true))
	assert.Equal(t, "doc.txt [failed] failed", styles.FormatFileHeader("doc.txt", "failed", false))
}
