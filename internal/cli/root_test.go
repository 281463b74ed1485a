package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/law-makers/stageradar/internal/ui"
)

func TestHelpFunc_NoColor(t *testing.T) {
	old := ui.Enabled
	defer func() { ui.Enabled = old }()

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	defer rootCmd.SetOut(nil)

	ui.Enabled = false
	helpFunc(rootCmd, nil)
	out := buf.String()
	if strings.Contains(out, "\033[") {
		t.Errorf("help output contains escape codes with colors disabled:\n%q", out)
	}
	for _, want := range []string{"STAGERADAR", "Commands", "search", "parse"} {
		if !strings.Contains(out, want) {
			t.Errorf("help output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	ui.Enabled = true
	helpFunc(rootCmd, nil)
	if !strings.Contains(buf.String(), ui.ColorCyan) {
		t.Error("expected colored help output")
	}
}
