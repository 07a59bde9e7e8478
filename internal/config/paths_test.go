package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultPaths(t *testing.T) {
	t.Run("uses the user config directory", func(t *testing.T) {
		t.Setenv("FONTGARDEN_CONFIG_DIR", "")

		paths, err := DefaultPaths()
		if err != nil {
			t.Fatalf("DefaultPaths failed: %v", err)
		}

		if paths.Project != "." {
			t.Errorf("Project should be the working directory, got %s", paths.Project)
		}
		if filepath.Base(paths.User) != "fontgarden" {
			t.Errorf("User should end with fontgarden, got: %s", paths.User)
		}
	})

	t.Run("respects FONTGARDEN_CONFIG_DIR", func(t *testing.T) {
		customDir := "/custom/fontgarden/config"
		t.Setenv("FONTGARDEN_CONFIG_DIR", customDir)

		paths, err := DefaultPaths()
		if err != nil {
			t.Fatalf("DefaultPaths failed: %v", err)
		}

		if paths.User != customDir {
			t.Errorf("Expected user dir %s, got %s", customDir, paths.User)
		}
		if paths.UserFile() != filepath.Join(customDir, "config.yaml") {
			t.Errorf("UserFile incorrect: got %s", paths.UserFile())
		}
	})
}

func TestProjectFile(t *testing.T) {
	paths := &Paths{Project: "/work", User: "/home/u/.config/fontgarden"}
	if got := paths.ProjectFile(); got != filepath.Join("/work", ".fontgarden.yaml") {
		t.Errorf("ProjectFile incorrect: got %s", got)
	}
}
