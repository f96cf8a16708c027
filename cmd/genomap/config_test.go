package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mingzhi/genomap"
	"github.com/stretchr/testify/assert"
)

func TestParseConfigDefaults(t *testing.T) {
	registerLogger()

	cmd := cmdConfig{}
	cmd.ParseConfig()
	assert.Equal(t, genomap.DefaultLayout(), cmd.layout)
	assert.Equal(t, "genome_map.png", cmd.outFile)
	assert.Equal(t, "", cmd.cacheFile)
	assert.Equal(t, 8.0, cmd.size)
}

func TestParseConfigEnv(t *testing.T) {
	registerLogger()
	t.Setenv("GENOMAP_OUT", "env.png")
	t.Setenv("GENOMAP_CACHE", "gc.db")
	t.Setenv("GENOMAP_FORWARD_CDS_COLOR", "orange")
	t.Setenv("GENOMAP_TICKS_MAJOR_INTERVAL", "1000000")
	t.Setenv("GENOMAP_WINDOW", "777")
	t.Setenv("GENOMAP_SIZE", "12")

	cmd := cmdConfig{}
	cmd.ParseConfig()
	assert.Equal(t, "env.png", cmd.outFile)
	assert.Equal(t, "gc.db", cmd.cacheFile)
	assert.Equal(t, "orange", cmd.layout.ForwardCDS.Color)
	assert.Equal(t, 1e6, cmd.layout.Ticks.MajorInterval)
	assert.Equal(t, 777, cmd.layout.Window)
	assert.Equal(t, 12.0, cmd.size)

	// untouched keys keep their defaults.
	assert.Equal(t, "blue", cmd.layout.ReverseCDS.Color)
	assert.Equal(t, 90.0, cmd.layout.ForwardCDS.RMin)

	// flags win.
	cmd = cmdConfig{outFile: "flag.svg", window: 100}
	cmd.ParseConfig()
	assert.Equal(t, "flag.svg", cmd.outFile)
	assert.Equal(t, 100, cmd.layout.Window)
}

func TestParseConfigFile(t *testing.T) {
	registerLogger()
	dir := t.TempDir()
	config := `out: ecoli.svg
forward_cds:
  color: orange
gc_skew:
  positive: "#00ff00"
step: 500
`
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "genomap.yaml"), []byte(config), 0644))
	t.Setenv("GENOMAP_STEP", "250")

	cmd := cmdConfig{workspace: dir, config: "genomap.yaml", title: `E. coli\nK-12`}
	cmd.ParseConfig()
	assert.Equal(t, filepath.Join(dir, "ecoli.svg"), cmd.outFile)
	assert.Equal(t, "orange", cmd.layout.ForwardCDS.Color)
	assert.Equal(t, 97.0, cmd.layout.ForwardCDS.RMax)
	assert.Equal(t, "#00ff00", cmd.layout.GCSkew.Positive)
	assert.Equal(t, "purple", cmd.layout.GCSkew.Negative)
	assert.Equal(t, 250, cmd.layout.Step)
	assert.Equal(t, "E. coli\nK-12", cmd.layout.Title)
}
