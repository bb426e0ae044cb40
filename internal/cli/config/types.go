// Package config provides configuration management for the docxoutline CLI.
package config

// Config holds all CLI configuration options.
type Config struct {
	Output        string   `koanf:"output"`
	Verbose       bool     `koanf:"verbose"`
	HeadingStyles []string `koanf:"heading_styles"`

	// Batch processing
	Recursive    bool   `koanf:"recursive"`
	SkipExisting bool   `koanf:"skip_existing"`
	OutputDir    string `koanf:"output_dir"`
	Workers      int    `koanf:"workers"`

	// HTTP server
	Addr string `koanf:"addr"`

	// ConfigFile is the config file that was loaded, if any
	ConfigFile string `koanf:"-"`
}

// Default configuration values.
const (
	DefaultOutput  = "text"
	DefaultWorkers = 1
	DefaultAddr    = "localhost:8080"
	EnvPrefix      = "DOCXOUTLINE_"
)

// ConfigFileNames are searched in the working directory, in order
var ConfigFileNames = []string{"docxoutline.yaml", "docxoutline.yml"}
