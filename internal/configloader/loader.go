// Package configloader finds, merges and validates gdocmark configuration
// from files, GDOCMARK_* variables and command-line flags.
package configloader

import (
	"context"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gdocmark/pkg/config"
	"github.com/yaklabco/gdocmark/pkg/fsutil"
)

// LoadOptions selects the sources Load consults.
type LoadOptions struct {
	// WorkingDir anchors the project config search. Empty means the
	// process working directory.
	WorkingDir string

	// ExplicitPath is the --config file. It must exist.
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// CLIConfig holds values set by flags; it overrides every other source.
	CLIConfig *config.Config
}

// LoadResult is a resolved configuration and where it came from.
type LoadResult struct {
	Config *config.Config
	Paths  *ConfigPaths

	// LoadedFrom lists the files merged, lowest precedence first.
	LoadedFrom []string

	// Warnings are non-fatal problems such as unknown keys.
	Warnings []string
}

// fileLayer is one configuration file in merge order.
type fileLayer struct {
	name string
	path string
}

func fileLayers(opts LoadOptions, paths *ConfigPaths) []fileLayer {
	var layers []fileLayer
	add := func(name, path string, ignored bool) {
		if !ignored && path != "" {
			layers = append(layers, fileLayer{name, path})
		}
	}
	add("system", paths.System, opts.IgnoreSystemConfig)
	add("user", paths.User, opts.IgnoreUserConfig)
	add("project", paths.Project, opts.IgnoreProjectConfig)
	add("explicit", opts.ExplicitPath, false)
	return layers
}

// Load merges, from lowest to highest precedence, defaults, the system,
// user, project and explicit files, GDOCMARK_* variables and
// opts.CLIConfig, then validates the result.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	if opts.ExplicitPath != "" {
		paths.Explicit = opts.ExplicitPath
	}

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()
	for _, layer := range fileLayers(opts, paths) {
		fileCfg, warnings, err := loadConfigFile(ctx, layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
		result.Warnings = append(result.Warnings, warnings...)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}
	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Message)
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile decodes one YAML (or JSON) file. Unknown keys are
// returned as warnings carrying their line numbers.
func loadConfigFile(ctx context.Context, path string) (*config.Config, []string, error) {
	content, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, nil, err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, nil, fmt.Errorf("parse YAML: %w", err)
	}

	cfg := &config.Config{}
	if len(doc.Content) == 0 {
		return cfg, nil, nil
	}
	if err := doc.Decode(cfg); err != nil {
		return nil, nil, fmt.Errorf("parse YAML: %w", err)
	}
	if err := validateFile(cfg, path); err != nil {
		return nil, nil, err
	}

	var warnings []string
	for _, unknown := range unknownKeys(&doc) {
		warnings = append(warnings, (&ValidationError{
			Field:    unknown.Value,
			FilePath: path,
			Line:     unknown.Line,
			Message:  "unknown key; it will be ignored",
		}).Error())
	}

	return cfg, warnings, nil
}

// unknownKeys returns the top-level mapping keys that no config field
// reads.
func unknownKeys(doc *yaml.Node) []*yaml.Node {
	root := doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil
	}

	known := KnownKeys()
	var unknown []*yaml.Node
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i]
		if !slices.Contains(known, key.Value) {
			unknown = append(unknown, key)
		}
	}
	return unknown
}

// KnownKeys lists the keys accepted in configuration files.
func KnownKeys() []string {
	keys := make([]string, 0, len(config.Keys()))
	for _, k := range config.Keys() {
		keys = append(keys, k.Key)
	}
	return keys
}
