package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/synthetic-bedrock/internal/bedrock"
	"github.com/banshee-data/synthetic-bedrock/internal/config"
)

func TestRun_Version(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-version"}, &out))
	assert.True(t, strings.HasPrefix(out.String(), "bedrock-sweep dev"))
}

func TestRun_WritesOutputs(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	args := []string{
		"-quiet",
		"-length", "12",
		"-scale", "2",
		"-scenario", "ran",
		"-fractions", "0.2,0.5,0.8",
		"-output", dir,
		"-run-id", "cli-test",
		"-workers", "2",
	}
	require.NoError(t, run(context.Background(), args, &out))

	runDir := filepath.Join(dir, "cli-test")
	assert.Equal(t, runDir+"\n", out.String())
	for _, name := range []string{accuracyCSVName, summaryName, pngName, htmlName} {
		info, err := os.Stat(filepath.Join(runDir, name))
		require.NoError(t, err, name)
		assert.Greater(t, info.Size(), int64(0), name)
	}

	f, err := os.Open(filepath.Join(runDir, accuracyCSVName))
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 4)
}

func TestRun_RunIDIsSanitized(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	args := []string{"-quiet", "-length", "8", "-fractions", "0.3", "-output", dir, "-run-id", "../outside"}
	require.NoError(t, run(context.Background(), args, &out))

	_, err := os.Stat(filepath.Join(dir, "outside", summaryName))
	assert.NoError(t, err)
}

func TestLoadAndBuild_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"unknown_flag", []string{"-bogus"}, "bogus"},
		{"unknown_scenario", []string{"-scenario", "xyz"}, "unknown error-model scenario"},
		{"bad_fractions", []string{"-fractions", "0.2,2"}, "out of range [0,1]"},
		{"missing_config", []string{"-config", "nope.json"}, "failed to stat"},
		{"display_nan", []string{"-display", "NaN"}, "display_fraction"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := loadAndBuild(t, tc.args)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func loadAndBuild(t *testing.T, args []string) error {
	t.Helper()
	o, fs, err := parseFlags(args, io.Discard)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(o, fs)
	if err != nil {
		return err
	}
	_, err = buildSweepConfig(cfg, o.fractions, o.runID)
	return err
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"length": 40, "scenario": "sys", "offset": 5}`), 0o644))

	o, fs, err := parseFlags([]string{"-config", path, "-offset", "7"}, io.Discard)
	require.NoError(t, err)
	cfg, err := loadConfig(o, fs)
	require.NoError(t, err)

	assert.Equal(t, 40, cfg.GetLength())
	assert.Equal(t, 7, cfg.GetOffset())
	// Flag defaults do not override the file.
	sc, err := cfg.GetScenario()
	require.NoError(t, err)
	assert.Equal(t, bedrock.ScenarioOffset, sc)
}

func TestLoadConfig_UsesDefaultsFileWhenPresent(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.DefaultConfigPath),
		[]byte(`{"length": 33, "scenario": "ind"}`), 0o644))
	t.Chdir(dir)

	o, fs, err := parseFlags([]string{"-scale", "3"}, io.Discard)
	require.NoError(t, err)
	cfg, err := loadConfig(o, fs)
	require.NoError(t, err)

	assert.Equal(t, 33, cfg.GetLength())
	assert.Equal(t, 3, cfg.GetScale())
	sc, err := cfg.GetScenario()
	require.NoError(t, err)
	assert.Equal(t, bedrock.ScenarioIndependent, sc)
}

func TestLoadConfig_InvalidDefaultsFileIsReported(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.DefaultConfigPath), []byte(`{`), 0o644))
	t.Chdir(dir)

	err := loadAndBuild(t, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestBuildSweepConfig_Defaults(t *testing.T) {
	o, fs, err := parseFlags(nil, io.Discard)
	require.NoError(t, err)
	cfg, err := loadConfig(o, fs)
	require.NoError(t, err)

	sc, err := buildSweepConfig(cfg, "", "")
	require.NoError(t, err)
	assert.Equal(t, 100, sc.Length)
	assert.Equal(t, 2, sc.Scale)
	require.Len(t, sc.Fractions, 100)
	assert.Equal(t, 0.01, sc.Fractions[0])
	assert.InDelta(t, 0.99, sc.Fractions[99], 1e-12)
	assert.Equal(t, bedrock.ErrorModel{
		Scenario:  bedrock.ScenarioCombined,
		Offset:    3,
		ErrorRate: 0.05,
		Seed:      2,
		Scale:     2,
	}, sc.Model)
	assert.Equal(t, int64(1), sc.TruthSeed)
	assert.Equal(t, 0.5, sc.DisplayFraction)
	assert.Equal(t, 1, sc.Workers)
}
