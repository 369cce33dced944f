// Package config provides infrastructure for loading block configurations.
// This package handles file discovery, YAML, JSON and HCL parsing.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pagekit-dev/pagekit/internal/domain/blockconfig"
)

// DefaultFileNames lists the config files looked for in a block folder, in
// order of precedence.
var DefaultFileNames = []string{"config.yaml", "config.yml", "config.json", "config.hcl"}

// BlockConfigLoader loads a block's config file into a blockconfig.Tree.
type BlockConfigLoader struct {
	logger    *slog.Logger
	fileNames []string
}

// NewBlockConfigLoader creates a new block config loader. Empty fileNames
// selects DefaultFileNames.
func NewBlockConfigLoader(logger *slog.Logger, fileNames ...string) *BlockConfigLoader {
	if logger == nil {
		logger = slog.Default()
	}
	if len(fileNames) == 0 {
		fileNames = DefaultFileNames
	}
	return &BlockConfigLoader{
		logger:    logger,
		fileNames: fileNames,
	}
}

// Load finds the first config file in folder and parses it.
// A folder without any config file yields an empty tree and an empty path.
// On failure the returned path names the file that could not be loaded.
func (l *BlockConfigLoader) Load(folder string) (*blockconfig.Tree, string, error) {
	// Security: Use os.OpenRoot so config reads cannot leave the block folder
	root, err := os.OpenRoot(folder)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return blockconfig.Empty(), "", nil
		}
		return nil, folder, fmt.Errorf("failed to open block directory: %w", err)
	}
	defer func() {
		_ = root.Close() // Best-effort cleanup
	}()

	var found string
	for _, name := range l.fileNames {
		info, err := root.Stat(name)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if found != "" {
			l.logger.Debug("ignoring shadowed config file",
				"folder", folder, "file", name, "using", found)
			continue
		}
		found = name
	}

	if found == "" {
		return blockconfig.Empty(), "", nil
	}

	path := filepath.Join(folder, found)

	file, err := root.Open(found)
	if err != nil {
		return nil, path, fmt.Errorf("failed to open config: %w", err)
	}
	defer func() {
		_ = file.Close() // Best-effort cleanup
	}()

	tree, err := l.LoadFromReader(file, found)
	if err != nil {
		return nil, path, err
	}
	return tree, path, nil
}

// LoadFromReader parses r using the format implied by name's extension.
func (l *BlockConfigLoader) LoadFromReader(r io.Reader, name string) (*blockconfig.Tree, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var raw any
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".yaml", ".yml":
		raw, err = decodeYAML(data)
	case ".json":
		raw, err = decodeJSON(data)
	case ".hcl":
		raw, err = decodeHCL(data, name)
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return nil, err
	}

	root, err := blockconfig.FromNative(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to convert config: %w", err)
	}
	return blockconfig.NewTree(root)
}

func decodeYAML(data []byte) (any, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode config YAML: %w", err)
	}
	return raw, nil
}

func decodeJSON(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode config JSON: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("failed to decode config JSON: unexpected data after top-level value")
	}
	return raw, nil
}
