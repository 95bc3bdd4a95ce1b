package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bandwatch/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_RunsCycles(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, ".txt") {
			w.Write([]byte(":Product: 3-Day Forecast\nQuiet conditions expected."))
			return
		}
		w.Write([]byte(`<solar><solardata><solarflux>95</solarflux><kindex>4</kindex></solardata></solar>`))
	}))
	defer upstream.Close()

	t.Setenv("HAMQSL_URL", upstream.URL+"/solarxml.php")
	t.Setenv("NOAA_FORECAST_URL", upstream.URL+"/forecast.txt")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--cycles", "2", "--pause", "0s", "--backend", "memory", "--compact"})
	require.NoError(t, cmd.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)

	var second struct {
		Fresh    bool   `json:"fresh"`
		Forecast string `json:"forecast"`
		Trends   struct {
			SFI string `json:"sfi"`
		} `json:"trends"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.True(t, second.Fresh)
	assert.Equal(t, "Quiet conditions expected.", second.Forecast)
	assert.Equal(t, "same", second.Trends.SFI)
}

func TestRootCmd_Fixtures(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, mocks.SolarFixture),
		[]byte(`<solardata><kindex>6</kindex></solardata>`), 0644))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--backend", "memory", "--fixtures", dir})
	require.NoError(t, cmd.Execute())

	var snap struct {
		Fresh      bool   `json:"fresh"`
		Forecast   string `json:"forecast"`
		Indicators struct {
			KIndex struct {
				Scale string `json:"scale"`
			} `json:"kindex"`
		} `json:"indicators"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &snap))
	assert.True(t, snap.Fresh)
	assert.Equal(t, "G2", snap.Indicators.KIndex.Scale)
	assert.Equal(t, "(NOAA forecast unavailable)", snap.Forecast)
}

func TestRootCmd_RejectsZeroCycles(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--cycles", "0", "--backend", "memory"})
	assert.Error(t, cmd.Execute())
}
