package config_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gdocmark/pkg/config"
)

func TestGenerateTemplate_Minimal(t *testing.T) {
	data, err := config.GenerateTemplate(config.TemplateOptions{})
	require.NoError(t, err)

	content := string(data)
	assert.True(t, strings.HasPrefix(content, "# gdocmark configuration"))
	assert.Contains(t, content, "# start_index: 1\n")

	// Everything is commented out, so it parses to an empty config.
	cfg, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, &config.Config{}, cfg)
}

func TestGenerateTemplate_Full(t *testing.T) {
	data, err := config.GenerateTemplate(config.TemplateOptions{Full: true})
	require.NoError(t, err)

	cfg, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, config.InputAuto, cfg.Format)
	assert.Equal(t, 1, cfg.Start())
	assert.Equal(t, config.FlavorCommonMark, cfg.Flavor)
	assert.True(t, cfg.InspectEnabled())
	assert.Equal(t, config.NormalizationNone, cfg.UnicodeNormalization)
	assert.Contains(t, cfg.Extensions, ".html")
	assert.Contains(t, cfg.Ignore, "vendor/**")
}

func TestGenerateTemplate_JSON(t *testing.T) {
	data, err := config.GenerateTemplate(config.TemplateOptions{Format: "json"})
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Len(t, raw, len(config.Keys()))
	assert.InDelta(t, 1.0, raw["start_index"], 0)

	cfg, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, config.FlavorCommonMark, cfg.Flavor)
}
