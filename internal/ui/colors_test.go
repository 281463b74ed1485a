package ui

import "testing"

func TestStyle(t *testing.T) {
	old := Enabled
	defer func() { Enabled = old }()

	Enabled = true
	if got := Success("ok"); got != ColorGreen+"ok"+ColorReset {
		t.Errorf("unexpected %q", got)
	}

	Enabled = false
	if got := Error("failed"); got != "failed" {
		t.Errorf("expected plain text, got %q", got)
	}
}

func TestHelpStyles(t *testing.T) {
	old := Enabled
	defer func() { Enabled = old }()

	Enabled = false
	for _, got := range []string{Title("x"), Heading("x"), Accent("x"), Dim("x")} {
		if got != "x" {
			t.Errorf("expected plain text, got %q", got)
		}
	}

	Enabled = true
	if got := Title("x"); got != ColorBold+ColorCyan+"x"+ColorReset {
		t.Errorf("unexpected %q", got)
	}
}
