package app

import (
	"testing"

	"github.com/vortechstudio/app-installer/internal/errors"
	"github.com/vortechstudio/app-installer/internal/prompt"
	"github.com/vortechstudio/app-installer/internal/system"
)

func TestNew(t *testing.T) {
	app := New()

	if app == nil {
		t.Fatal("New() returned nil")
	}
	if app.FS == nil {
		t.Error("FS should not be nil")
	}
	if app.Executor == nil {
		t.Error("Executor should not be nil")
	}
	if app.HTTPClient == nil {
		t.Error("HTTPClient should not be nil")
	}
	if app.Confirmer != nil {
		t.Error("Confirmer should be chosen lazily")
	}
}

func TestNew_MultipleOptions(t *testing.T) {
	fsys := system.NewMockFS()
	exec := system.NewMockExecutor()
	confirmer := prompt.NewScripted(nil)

	app := New(WithFileSystem(fsys), WithExecutor(exec), WithConfirmer(confirmer))

	if app.FS != fsys {
		t.Error("WithFileSystem did not set filesystem")
	}
	if app.Executor != exec {
		t.Error("WithExecutor did not set executor")
	}
	if app.Confirmer != confirmer {
		t.Error("WithConfirmer did not set confirmer")
	}
}

func TestLoadManifest(t *testing.T) {
	t.Run("embedded default", func(t *testing.T) {
		app := New(WithFileSystem(system.NewMockFS()))
		m, err := app.LoadManifest("/project", "")
		if err != nil {
			t.Fatalf("LoadManifest() error = %v", err)
		}
		if len(m.Features) != 8 {
			t.Errorf("features = %d, want 8", len(m.Features))
		}
	})

	t.Run("invalid manifest has manifest exit code", func(t *testing.T) {
		fsys := system.NewMockFS()
		fsys.AddFile("/project/installer.toml", []byte("[[features]]\nkey = \"x\"\n"), 0o644)

		_, err := New(WithFileSystem(fsys)).LoadManifest("/project", "")
		if err == nil {
			t.Fatal("expected error")
		}
		if got := errors.GetExitCode(err); got != errors.ExitManifest {
			t.Errorf("exit code = %d, want %d", got, errors.ExitManifest)
		}
	})
}

func TestInstaller(t *testing.T) {
	app := New(WithFileSystem(system.NewMockFS()), WithConfirmer(prompt.Defaults{}))
	m, err := app.LoadManifest("/project", "")
	if err != nil {
		t.Fatal(err)
	}
	if app.Installer("/project", m) == nil {
		t.Error("Installer() returned nil")
	}
}

func TestSetDefault(t *testing.T) {
	original := Default
	defer func() { Default = original }()

	custom := New(WithExecutor(system.NewMockExecutor()))
	SetDefault(custom)
	if Default != custom {
		t.Error("SetDefault did not replace Default")
	}

	ResetDefault()
	if Default == custom {
		t.Error("ResetDefault did not restore a fresh instance")
	}
}
