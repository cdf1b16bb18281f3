package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabel/classmatch/pkg/model"
)

func TestDefaultConfig(t *testing.T) {
	cfg, err := DefaultConfig()
	require.NoError(t, err)

	assert.Equal(t, 0.80, cfg.AbsoluteThreshold(model.Initial))
	assert.Equal(t, 0.01, cfg.RelativeThreshold(model.Final))
}

func TestParsedLevelsDefaultsToAll(t *testing.T) {
	cfg := &Config{}
	levels, err := cfg.ParsedLevels()
	require.NoError(t, err)
	assert.Len(t, levels, 4)
}

func TestParsedLevelsRejectsUnknownName(t *testing.T) {
	cfg := &Config{Levels: []string{"BOGUS"}}
	_, err := cfg.ParsedLevels()
	assert.Error(t, err)
}
