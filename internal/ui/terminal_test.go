package ui

import "testing"

func TestShouldUseColor_EnvPrecedence(t *testing.T) {
	tests := []struct {
		name          string
		noColor       string
		clicolorForce string
		clicolor      string
		want          bool
	}{
		{"no_color disables", "1", "", "", false},
		{"no_color wins over force", "1", "1", "", false},
		{"force enables without tty", "", "1", "", true},
		{"force with whitespace", "", " 1 ", "", true},
		{"clicolor zero disables", "", "", "0", false},
		{"force wins over clicolor zero", "", "1", "0", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", tt.noColor)
			t.Setenv("CLICOLOR_FORCE", tt.clicolorForce)
			t.Setenv("CLICOLOR", tt.clicolor)
			if got := ShouldUseColor(); got != tt.want {
				t.Errorf("ShouldUseColor() = %v, want %v", got, tt.want)
			}
		})
	}
}
