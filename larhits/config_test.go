package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	larhits "github.com/next-exp/larhits_go/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(filename, []byte(content), 0o644))
	return filename
}

func TestLoadConfiguration(t *testing.T) {
	filename := writeConfig(t, `{
		"file_in": "events.root",
		"file_out": "hits.h5",
		"geometry_file": "geometry.xml",
		"num_workers": 4,
		"legacy_drift_comparison": true
	}`)

	config, err := LoadConfiguration(filename)
	require.NoError(t, err)
	assert.Equal(t, "events.root", config.FileIn)
	assert.Equal(t, "hits.h5", config.FileOut)
	assert.Equal(t, 4, config.NumWorkers)
	assert.True(t, config.LegacyDriftComparison)

	// Defaults survive for the fields not in the file
	assert.Equal(t, larhits.DefaultTreeName, config.TreeName)
	assert.Equal(t, "Full", config.RecoOption)
	assert.Equal(t, 4, config.CompressionLevel)
	assert.True(t, config.WriteData)
	assert.True(t, config.Discard)
}

func TestLoadConfigurationErrors(t *testing.T) {
	_, err := LoadConfiguration(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = LoadConfiguration(writeConfig(t, `{"num_workers": "many"}`))
	assert.Error(t, err)
}

func TestLoadConfigurationEnvironment(t *testing.T) {
	t.Setenv("LARHITS_DB_PASS", "secret")
	t.Setenv("LARHITS_DB_HOST", "conditions.example.org")

	config, err := LoadConfiguration(writeConfig(t, `{"pass": "from-file", "user": "reader"}`))
	require.NoError(t, err)
	assert.Equal(t, "secret", config.Passwd)
	assert.Equal(t, "conditions.example.org", config.Host)
	assert.Equal(t, "reader", config.User)
}

func TestCommandLineOverrides(t *testing.T) {
	fs := flag.NewFlagSet("larhits", flag.ContinueOnError)
	flags := registerFlags(fs)
	require.NoError(t, fs.Parse([]string{"-config", "run.json", "-r", "AllHitsNu", "-e", "other.root", "-n", "5", "-N"}))

	config := defaultConfiguration()
	config.FileIn = "events.root"
	config.Skip = 3
	flags.apply(&config)

	assert.Equal(t, "run.json", *flags.configFile)
	assert.Equal(t, "AllHitsNu", config.RecoOption)
	assert.Equal(t, "other.root", config.FileIn)
	assert.Equal(t, 5, config.MaxEvents)
	assert.True(t, config.DisplayEventNumber)
	assert.Equal(t, 3, config.Skip, "flags not given keep the file value")
	assert.False(t, config.PrintRecoStatus)
}

func TestValidateConfiguration(t *testing.T) {
	config := defaultConfiguration()
	assert.Error(t, validateConfiguration(config), "input file required")

	config.FileIn = "events.root"
	assert.Error(t, validateConfiguration(config), "geometry required")

	config.GeometryFile = "geometry.xml"
	assert.NoError(t, validateConfiguration(config))

	config.GeometryFile = ""
	config.NoDB = false
	assert.NoError(t, validateConfiguration(config), "geometry from database")

	config.Skip = -1
	assert.Error(t, validateConfiguration(config))
}
