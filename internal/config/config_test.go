package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapStore is an in-memory Store
type mapStore map[string]string

func (m mapStore) Lookup(key string) (string, bool, error) {
	value, ok := m[key]
	return value, ok, nil
}

type failingStore struct{ err error }

func (f failingStore) Lookup(string) (string, bool, error) {
	return "", false, f.err
}

func TestDefault(t *testing.T) {
	config := Default()
	require.NoError(t, config.Validate())
	assert.Equal(t, 7*24*time.Hour, config.Window())

	tmpl, err := config.ColorTemplate()
	require.NoError(t, err)
	assert.Equal(t, "0.5 1.0 0.5 %f", tmpl.String())
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		store     mapStore
		wantDays  float64
		wantColor string
		wantErr   string
	}{
		{
			name:      "no preferences",
			store:     mapStore{},
			wantDays:  7,
			wantColor: "0.5 1.0 0.5 1",
		},
		{
			name:      "both preferences",
			store:     mapStore{RecentDaysKey: "1.5", RecentColorKey: "1 0 0 1"},
			wantDays:  1.5,
			wantColor: "1 0 0 1",
		},
		{
			name:    "days not a number",
			store:   mapStore{RecentDaysKey: "a week"},
			wantErr: "not a number",
		},
		{
			name:    "days not positive",
			store:   mapStore{RecentDaysKey: "0"},
			wantErr: "RecentDays must be > 0",
		},
		{
			name:    "days NaN",
			store:   mapStore{RecentDaysKey: "NaN"},
			wantErr: "RecentDays must be a finite number",
		},
		{
			name:    "days infinite",
			store:   mapStore{RecentDaysKey: "Inf"},
			wantErr: "RecentDays must be a finite number",
		},
		{
			name:    "days negative infinite",
			store:   mapStore{RecentDaysKey: "-Inf"},
			wantErr: "RecentDays must be a finite number",
		},
		{
			name:    "days overflow the window duration",
			store:   mapStore{RecentDaysKey: "200000"},
			wantErr: "RecentDays must be < 106752",
		},
		{
			name:      "longest representable window",
			store:     mapStore{RecentDaysKey: "106751"},
			wantDays:  106751,
			wantColor: DefaultRecentColor,
		},
		{
			name:    "color missing alpha",
			store:   mapStore{RecentColorKey: "1 0 0"},
			wantErr: "invalid RecentColor",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := Load(tt.store)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Nil(t, config)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDays, config.RecentDays)
			assert.Equal(t, tt.wantColor, config.RecentColor)
		})
	}
}

func TestLoad_StoreError(t *testing.T) {
	boom := errors.New("store unavailable")
	config, err := Load(failingStore{err: boom})
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, config)
}

func TestWindow_NeverNegative(t *testing.T) {
	for _, days := range []string{"0.0001", "7", "106751"} {
		config, err := Load(mapStore{RecentDaysKey: days})
		require.NoError(t, err, "days %s", days)
		assert.Greater(t, config.Window(), time.Duration(0), "days %s", days)
	}
}

func TestWindow_FractionalDays(t *testing.T) {
	config := &Config{RecentDays: 0.5, RecentColor: DefaultRecentColor}
	assert.Equal(t, 12*time.Hour, config.Window())
}

func TestFileStore(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "preferences.yml")

	prefs := `RecentDays: 14
RecentColor: "0.2 0.4 1 1"
Unrelated: yes
`
	require.NoError(t, os.WriteFile(path, []byte(prefs), 0644))

	config, err := Load(NewFileStore(path))
	require.NoError(t, err)
	assert.Equal(t, 14.0, config.RecentDays)
	assert.Equal(t, "0.2 0.4 1 1", config.RecentColor)
}

func TestFileStore_MissingFile(t *testing.T) {
	config, err := Load(NewFileStore("/nonexistent/preferences.yml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), config)
}

func TestFileStore_EmptyValueIsUnset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.yml")
	require.NoError(t, os.WriteFile(path, []byte("RecentDays:\nRecentColor: \"  \"\n"), 0644))

	config, err := Load(NewFileStore(path))
	require.NoError(t, err)
	assert.Equal(t, Default(), config)
}

func TestFileStore_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.yml")
	require.NoError(t, os.WriteFile(path, []byte("- this is\n  not: a map\n"), 0644))

	_, err := Load(NewFileStore(path))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestDefaultFilePath(t *testing.T) {
	t.Setenv(ConfigEnv, "/tmp/custom.yml")
	path, err := DefaultFilePath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.yml", path)

	t.Setenv(ConfigEnv, "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	path, err = DefaultFilePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/xdg", "lineblame", "preferences.yml"), path)
}
