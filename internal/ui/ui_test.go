package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPanel_PadsToWidestLine(t *testing.T) {
	var out bytes.Buffer
	p := Plain(&out, &out)
	p.Panel([]string{"ab", "abcd"})

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	assert.Equal(t, []string{
		"┌──────┐",
		"│ ab   │",
		"│ abcd │",
		"└──────┘",
	}, lines)
}

func TestPanel_WideRunesAndColour(t *testing.T) {
	var out bytes.Buffer
	p := Plain(&out, &out)
	p.SetColor(true)
	p.Panel([]string{p.C(fgRed, "家電"), "abcd"})

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	assert.Equal(t, "│ "+fgRed+"家電"+reset+" │", lines[1])
	assert.Equal(t, "│ abcd │", lines[2])
}

func TestPrinter_NoColourWhenNotTTY(t *testing.T) {
	var out, errw bytes.Buffer
	p := New(&out, &errw, "classic", false)
	p.OK("saved")
	p.Fail("boom")
	p.Hint("try again")
	assert.Equal(t, "✔ saved\n", out.String())
	assert.Equal(t, "✖ boom\nHint: try again\n", errw.String())
}

func TestPrinter_MonoNeverColours(t *testing.T) {
	var out bytes.Buffer
	p := New(&out, &out, "mono", false)
	p.SetColor(true)
	assert.Equal(t, "x", p.C(fgRed, "x"))
	p.Fail("bad")
	assert.Equal(t, "x bad\n", out.String())
}

func TestThemeByName(t *testing.T) {
	assert.Equal(t, "neon", ThemeByName("NEON").Name)
	assert.Equal(t, "classic", ThemeByName("unknown").Name)
	assert.True(t, ThemeByName("mono").Mono)
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "█████░░░░░  50%", ProgressBar(1, 2, 10))
	assert.Equal(t, "░░░░░   0%", ProgressBar(0, 0, 1))
	assert.Equal(t, "█████ 100%", ProgressBar(2, 2, 5))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcdefg...", Truncate("abcdefghijklmnop", 10))
}
