package main

import (
	"path/filepath"
	"strings"

	"github.com/mingzhi/genomap"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// cmdConfig collects flags and the configure file.
type cmdConfig struct {
	// Flags.
	input     string  // genome file, or FASTA file with --gff.
	gffFile   string  // GFF3 annotations.
	outFile   string  // output figure.
	workspace string  // workspace holding the configure file.
	config    string  // configure file name.
	title     string  // figure title.
	size      float64 // figure width and height in inches.
	window    int     // GC window size.
	step      int     // GC step size.
	cacheFile string  // bolt database of GC series.
	progress  bool    // show progress.

	layout genomap.Layout
}

// ParseConfig reads the configure file, if any, on top of the default layout.
// Every key can also be set by a GENOMAP_ environment variable,
// e.g. GENOMAP_FORWARD_CDS_COLOR for forward_cds.color.
// Flags given on the command line win over both.
func (cmd *cmdConfig) ParseConfig() {
	v := viper.New()
	v.SetEnvPrefix("genomap")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := setDefaults(v, genomap.DefaultLayout()); err != nil {
		ERROR.Fatalf("Cannot set default layout: %v\n", err)
	}
	v.SetDefault("size", 8.0)
	v.SetDefault("out", "")
	v.SetDefault("cache", "")

	if cmd.config != "" {
		configFile := cmd.config
		if !filepath.IsAbs(configFile) && cmd.workspace != "" {
			configFile = filepath.Join(cmd.workspace, configFile)
		}
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			ERROR.Fatalf("Cannot read config %s: %v\n", configFile, err)
		}
		INFO.Printf("Read config %s\n", v.ConfigFileUsed())
	}

	if err := v.Unmarshal(&cmd.layout); err != nil {
		ERROR.Fatalf("Cannot parse config: %v\n", err)
	}
	if cmd.outFile == "" {
		cmd.outFile = v.GetString("out")
	}
	if cmd.cacheFile == "" {
		cmd.cacheFile = v.GetString("cache")
	}

	if cmd.size == 0 {
		cmd.size = v.GetFloat64("size")
	}
	if cmd.title != "" {
		cmd.layout.Title = strings.Replace(cmd.title, "\\n", "\n", -1)
	}
	if cmd.window > 0 {
		cmd.layout.Window = cmd.window
	}
	if cmd.step > 0 {
		cmd.layout.Step = cmd.step
	}
	if cmd.outFile == "" {
		cmd.outFile = "genome_map.png"
	}
	if cmd.workspace != "" && !filepath.IsAbs(cmd.outFile) {
		cmd.outFile = filepath.Join(cmd.workspace, cmd.outFile)
	}
}

// setDefaults registers every layout key with v, so that
// environment variables reach nested keys too.
func setDefaults(v *viper.Viper, layout genomap.Layout) error {
	m := map[string]interface{}{}
	if err := mapstructure.Decode(layout, &m); err != nil {
		return err
	}
	for key, value := range m {
		v.SetDefault(key, value)
	}
	return nil
}
