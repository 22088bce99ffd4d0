package theme

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
)

func TestParseEnvValue(t *testing.T) {
	tests := []struct {
		input   string
		want    bool
		wantErr bool
	}{
		{"1", true, false},
		{"true", true, false},
		{"dark", true, false},
		{"0", false, false},
		{"light", false, false},
		{"", false, true},
		{"maybe", false, true},
	}
	for _, tt := range tests {
		got, err := parseEnvValue(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseEnvValue(%q) error = %v", tt.input, err)
		}
		if err != nil && !errors.Is(err, ErrSignalUnavailable) {
			t.Errorf("parseEnvValue(%q) error should be ErrSignalUnavailable", tt.input)
		}
		if got != tt.want {
			t.Errorf("parseEnvValue(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestEnvSignal(t *testing.T) {
	t.Setenv(EnvPrefersDark, "dark")
	dark, err := EnvSignal(EnvPrefersDark).PrefersDark(context.Background())
	if err != nil || !dark {
		t.Errorf("EnvSignal = %v, %v; want dark", dark, err)
	}
}

func TestFirstAvailable(t *testing.T) {
	ctx := context.Background()

	sig := FirstAvailable(nil, Unavailable(), Fixed(true), Fixed(false))
	if dark, err := sig.PrefersDark(ctx); err != nil || !dark {
		t.Errorf("FirstAvailable = %v, %v; want first answering signal", dark, err)
	}

	none := FirstAvailable(Unavailable(), nil)
	if _, err := none.PrefersDark(ctx); !errors.Is(err, ErrSignalUnavailable) {
		t.Errorf("error = %v, want ErrSignalUnavailable", err)
	}
}

// fakeCommands replaces runCommand with canned output keyed by the last
// argument.
func fakeCommands(t *testing.T, outputs map[string]string, errs map[string]error) {
	t.Helper()
	orig := runCommand
	runCommand = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		key := args[len(args)-1]
		if err, ok := errs[key]; ok {
			return nil, err
		}
		return []byte(outputs[key]), nil
	}
	t.Cleanup(func() { runCommand = orig })
}

func TestGnomeColorScheme(t *testing.T) {
	notFound := &exec.Error{Name: "gsettings", Err: exec.ErrNotFound}

	tests := []struct {
		name    string
		outputs map[string]string
		errs    map[string]error
		want    bool
		wantErr bool
	}{
		{name: "prefer dark", outputs: map[string]string{"color-scheme": "'prefer-dark'\n"}, want: true},
		{name: "prefer light", outputs: map[string]string{"color-scheme": "'prefer-light'\n"}, want: false},
		{
			name:    "default falls back to gtk theme",
			outputs: map[string]string{"color-scheme": "'default'\n", "gtk-theme": "'Adwaita-dark'\n"},
			want:    true,
		},
		{
			name:    "default with light gtk theme",
			outputs: map[string]string{"color-scheme": "'default'\n", "gtk-theme": "'Adwaita'\n"},
			want:    false,
		},
		{
			name:    "no gsettings",
			errs:    map[string]error{"color-scheme": notFound, "gtk-theme": notFound},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fakeCommands(t, tt.outputs, tt.errs)
			got, err := gnomeColorScheme(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("gnomeColorScheme = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppleInterfaceStyle(t *testing.T) {
	fakeCommands(t, map[string]string{"AppleInterfaceStyle": "Dark\n"}, nil)
	if dark, err := appleInterfaceStyle(context.Background()); err != nil || !dark {
		t.Errorf("appleInterfaceStyle = %v, %v; want dark", dark, err)
	}

	fakeCommands(t, nil, map[string]error{"AppleInterfaceStyle": &exec.Error{Name: "defaults", Err: exec.ErrNotFound}})
	if _, err := appleInterfaceStyle(context.Background()); !errors.Is(err, ErrSignalUnavailable) {
		t.Errorf("missing defaults tool: error = %v, want ErrSignalUnavailable", err)
	}
}

func TestAppleInterfaceStyleLightMode(t *testing.T) {
	// defaults exits 1 when the key is absent, which is how light mode looks.
	if _, err := exec.LookPath("false"); err != nil {
		t.Skip("false(1) not available")
	}
	orig := runCommand
	runCommand = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return exec.CommandContext(ctx, "false").Output()
	}
	t.Cleanup(func() { runCommand = orig })

	dark, err := appleInterfaceStyle(context.Background())
	if err != nil || dark {
		t.Errorf("appleInterfaceStyle = %v, %v; want light", dark, err)
	}
}

func TestTerminalSignalNotATerminal(t *testing.T) {
	// go test redirects stdout, so the terminal detector cannot answer.
	_, err := TerminalSignal().PrefersDark(context.Background())
	if err != nil && !strings.Contains(err.Error(), "unavailable") {
		t.Errorf("unexpected error: %v", err)
	}
}
