package theme

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    Preference
		wantErr bool
	}{
		{"light", Light, false},
		{"dark", Dark, false},
		{" Dark\n", Dark, false},
		{"LIGHT", Light, false},
		{"", Unset, true},
		{"auto", Unset, true},
		{"unset", Unset, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidPreference) {
				t.Errorf("Parse(%q) error should wrap ErrInvalidPreference", tt.input)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseStored(t *testing.T) {
	tests := []struct {
		input string
		want  Preference
		ok    bool
	}{
		{"light", Light, true},
		{"dark", Dark, true},
		{" DARK\n", Unset, false},
		{"Dark", Unset, false},
		{"dark ", Unset, false},
		{"", Unset, false},
		{"unset", Unset, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := parseStored([]byte(tt.input))
			if ok != tt.ok || got != tt.want {
				t.Errorf("parseStored(%q) = %v, %v; want %v, %v", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestPreferenceHelpers(t *testing.T) {
	if Unset.String() != "unset" || Dark.String() != "dark" {
		t.Error("String should name the value")
	}
	if Unset.Resolved() || !Light.Resolved() || !Dark.Resolved() {
		t.Error("only light and dark are resolved")
	}
	if Light.Opposite() != Dark || Dark.Opposite() != Light || Unset.Opposite() != Dark {
		t.Error("Opposite flips light and dark")
	}
	if FromDark(true) != Dark || FromDark(false) != Light {
		t.Error("FromDark maps the OS boolean")
	}
}
