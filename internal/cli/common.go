package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/danieljhkim/fontgarden/internal/categorize"
	"github.com/danieljhkim/fontgarden/internal/config"
	"github.com/danieljhkim/fontgarden/internal/engine"
	"github.com/danieljhkim/fontgarden/internal/fsops"
	"github.com/danieljhkim/fontgarden/internal/logging"
)

// newEngine creates a new engine with real implementations of all dependencies.
func newEngine() *engine.Engine {
	cfg := settings
	if cfg == nil {
		cfg = &config.Config{}
	}
	return engine.New(
		fsops.NewRealFS(),
		categorize.Default(),
		logging.WithComponent(logger, "engine"),
		cfg.EffectiveWorkers(),
	)
}

// formatJSON formats a value as JSON.
func formatJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// formatError formats an error for display.
func formatError(err error) string {
	return errorColor.Sprintf("Error: %v", err)
}

// outputJSON writes a value as indented JSON.
func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
