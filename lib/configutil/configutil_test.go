package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	BaseUrl string       `json:"base_url"`
	Delay   int          `json:"delay"`
	Nested  nestedConfig `json:"nested"`
}

type nestedConfig struct {
	File string `json:"file"`
}

func write(t testing.TB, path, contents string) {
	err := os.WriteFile(path, []byte(contents), 0600)
	if err != nil {
		t.Fatal(err)
	}
}

func TestReadConfigLocalOverride(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "fbref.json5"), `{
		// comments are allowed
		base_url: "https://fbref.com",
		delay: 8,
		nested: { file: "a.db" },
	}`)
	write(t, filepath.Join(dir, "fbref.local.json5"), `{ delay: 3 }`)

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "fbref.json5"))
	require.NoError(t, err)
	require.Equal(t, testConfig{
		BaseUrl: "https://fbref.com",
		Delay:   3,
		Nested:  nestedConfig{File: "a.db"},
	}, cfg)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "missing.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadWithDefaults(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "fbref.json5"), `{ delay: 15 }`)

	cfg, err := ReadWithDefaults(filepath.Join(dir, "fbref.json5"), testConfig{
		BaseUrl: "https://fbref.com",
		Delay:   8,
		Nested:  nestedConfig{File: "stats.db"},
	})
	require.NoError(t, err)
	require.Equal(t, "https://fbref.com", cfg.BaseUrl)
	require.Equal(t, 15, cfg.Delay)
	require.Equal(t, "stats.db", cfg.Nested.File)

	cfg, err = ReadWithDefaults(filepath.Join(dir, "other.json5"), testConfig{Delay: 8})
	require.NoError(t, err)
	require.Equal(t, 8, cfg.Delay)
}

func TestLoadDotenv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	write(t, path, "FBREF_TEST_SECRET=hunter2\n")
	t.Setenv("FBREF_TEST_SECRET", "")
	os.Unsetenv("FBREF_TEST_SECRET")

	require.NoError(t, LoadDotenv(path, filepath.Join(dir, "missing.env")))

	var secret string
	FromEnv(&secret, "FBREF_TEST_SECRET")
	require.Equal(t, "hunter2", secret)
}
