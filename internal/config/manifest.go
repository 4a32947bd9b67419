package config

import (
	"github.com/BurntSushi/toml"
	"github.com/mitchellh/mapstructure"

	"github.com/ActuallyHappening/cargo-leptos/internal/errors"
)

// cargoManifest holds the parts of Cargo.toml the loader reads.
type cargoManifest struct {
	Package *struct {
		Name     string         `toml:"name"`
		Metadata map[string]any `toml:"metadata"`
	} `toml:"package"`
	Workspace *struct {
		Members  []string       `toml:"members"`
		Metadata map[string]any `toml:"metadata"`
	} `toml:"workspace"`
}

func readManifest(path string) (*cargoManifest, error) {
	var m cargoManifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "cannot parse manifest").
			WithContext("manifest_path", path).
			Fatal().
			Build()
	}
	return &m, nil
}

// packageMetadata returns the [package.metadata.leptos] table, if any.
func (m *cargoManifest) packageMetadata() (any, bool) {
	if m.Package == nil || m.Package.Metadata == nil {
		return nil, false
	}
	raw, ok := m.Package.Metadata["leptos"]
	return raw, ok
}

// workspaceMetadata returns the [[workspace.metadata.leptos]] entries, if any.
func (m *cargoManifest) workspaceMetadata() (any, bool) {
	if m.Workspace == nil || m.Workspace.Metadata == nil {
		return nil, false
	}
	raw, ok := m.Workspace.Metadata["leptos"]
	return raw, ok
}

// decodeMetadata decodes a raw TOML table (or array of tables) into out.
func decodeMetadata(raw any, out any, path string) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "cannot build metadata decoder").Build()
	}
	if err := dec.Decode(raw); err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "invalid leptos metadata").
			WithContext("manifest_path", path).
			Fatal().
			Build()
	}
	return nil
}
