package config

import (
	"testing"

	"github.com/go-sif/columnar/logging"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	opts := Default()
	require.False(t, opts.SkipNaN)
	require.Equal(t, 1, opts.DDOF)
	require.Equal(t, 1, opts.Parallelism)
	require.True(t, opts.AllowNullFrames)
	require.Equal(t, "INFO", opts.Log.Level)
	require.Equal(t, "text", opts.Log.Format)
}

func TestLoadFull(t *testing.T) {
	opts, err := Load("testdata/full.yaml")
	require.Nil(t, err)
	require.True(t, opts.SkipNaN)
	require.Equal(t, 0, opts.DDOF)
	require.Equal(t, 4, opts.Parallelism)
	require.False(t, opts.AllowNullFrames)
	require.Equal(t, "json", opts.Log.Format)

	lc := opts.LoggingConfig()
	require.Equal(t, logging.DebugLevel, lc.Level)
	require.Equal(t, "json", lc.Format)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	opts, err := Load("testdata/partial.yaml")
	require.Nil(t, err)
	require.Equal(t, 2, opts.Parallelism)
	require.Equal(t, 1, opts.DDOF)
	require.True(t, opts.AllowNullFrames)
	require.Equal(t, "INFO", opts.Log.Level)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load("testdata/missing.yaml")
	require.NotNil(t, err)

	_, err = Load("testdata/bad_level.yaml")
	require.NotNil(t, err)
}
