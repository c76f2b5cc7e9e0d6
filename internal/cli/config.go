package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

// Config holds the settings of a conversion. A TOML file provides the
// base values; flags given on the command line override them.
type Config struct {
	Output         string `toml:"output"`
	AssetDir       string `toml:"asset_dir"`
	HeadersFooters bool   `toml:"headers_footers"`
	InOrderMath    bool   `toml:"in_order_math"`
	OCRLanguage    string `toml:"ocr_language"`
	Verbose        bool   `toml:"verbose"`
}

// DefaultConfig returns the settings used when neither a file nor a flag
// says otherwise.
func DefaultConfig() Config {
	return Config{
		Output:   "output.json",
		AssetDir: ".",
	}
}

// LoadConfig reads a TOML config file over the defaults. Keys missing
// from the file keep their default; unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// applyFlags overrides cfg with every flag set on the command line.
func (c *Config) applyFlags(cmd *cobra.Command) error {
	flags := cmd.Flags()

	var err error
	if flags.Changed("output") {
		if c.Output, err = flags.GetString("output"); err != nil {
			return err
		}
	}
	if flags.Changed("assets") {
		if c.AssetDir, err = flags.GetString("assets"); err != nil {
			return err
		}
	}
	if flags.Changed("headers") {
		if c.HeadersFooters, err = flags.GetBool("headers"); err != nil {
			return err
		}
	}
	if flags.Changed("in-order-math") {
		if c.InOrderMath, err = flags.GetBool("in-order-math"); err != nil {
			return err
		}
	}
	if flags.Changed("ocr") {
		if c.OCRLanguage, err = flags.GetString("ocr"); err != nil {
			return err
		}
	}
	if flags.Changed("verbose") {
		if c.Verbose, err = flags.GetBool("verbose"); err != nil {
			return err
		}
	}
	return nil
}
