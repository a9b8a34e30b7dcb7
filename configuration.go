package dwaplatform

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables read by LoadConfiguration.
const EnvPrefix = "DWAPLATFORM"

// Configuration selects the remote service. It is bound once per registry.
type Configuration struct {
	// HostName selects the remote base address.
	HostName string `mapstructure:"host_name"`
	// Sandbox selects sandbox routing. How it maps to an address is decided
	// by the transport's host resolver.
	Sandbox bool `mapstructure:"sandbox"`
}

func (c Configuration) validate() error {
	if strings.TrimSpace(c.HostName) == "" {
		return &ValidationError{Field: "hostName", Reason: "is required"}
	}
	return nil
}

// LoadConfiguration reads host_name and sandbox from the file at path, when
// path is not empty, and lets DWAPLATFORM_HOST_NAME and DWAPLATFORM_SANDBOX
// override them. The file format is taken from its extension (json, yaml, toml, ...).
func LoadConfiguration(path string) (Configuration, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("host_name", "")
	v.SetDefault("sandbox", false)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Configuration{}, fmt.Errorf("read configuration %s: %w", path, err)
		}
	}

	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return Configuration{}, fmt.Errorf("decode configuration: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Configuration{}, err
	}
	return cfg, nil
}
