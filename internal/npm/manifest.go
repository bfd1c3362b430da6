package npm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// manifestName is the npm dependency manifest file.
const manifestName = "package.json"

// InitManifest creates package.json in dir via `npm init -y` and then
// injects the entry point and script entries. The init command is only
// run when no manifest exists yet, so re-running against an existing
// project keeps its manifest.
func (i *Installer) InitManifest(ctx context.Context, dir, main string, scripts map[string]string) error {
	manifestPath := filepath.Join(dir, manifestName)

	if _, err := os.Stat(manifestPath); os.IsNotExist(err) {
		output, runErr := i.runner.Run(ctx, dir, i.npmBin, "init", "-y")
		if runErr != nil {
			return fmt.Errorf("npm: init manifest: %w (output: %s)", runErr, output)
		}
	}

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return fmt.Errorf("npm: read manifest: %w", err)
	}

	var manifest map[string]any
	if err := json.Unmarshal(data, &manifest); err != nil {
		return fmt.Errorf("npm: parse manifest: %w", err)
	}

	if main != "" {
		manifest["main"] = main
	}

	existing, _ := manifest["scripts"].(map[string]any)
	if existing == nil {
		existing = make(map[string]any)
	}
	for name, cmd := range scripts {
		existing[name] = cmd
	}
	manifest["scripts"] = existing

	updated, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("npm: encode manifest: %w", err)
	}
	updated = append(updated, '\n')

	if err := os.WriteFile(manifestPath, updated, 0o644); err != nil {
		return fmt.Errorf("npm: write manifest: %w", err)
	}
	return nil
}
