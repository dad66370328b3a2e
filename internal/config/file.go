package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the optional YAML config file. Set fields override the
// environment; unset fields leave it untouched.
type fileConfig struct {
	Port            string   `yaml:"port"`
	Env             string   `yaml:"env"`
	UpstreamBaseURL string   `yaml:"upstream_base_url"`
	CorsOrigins     []string `yaml:"cors_origins"`
	TLSInsecure     *bool    `yaml:"tls_insecure_skip_verify"`
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return err
	}

	if fc.Env == string(EnvProduction) {
		cfg.Env = EnvProduction
	} else if fc.Env == string(EnvDevelopment) {
		cfg.Env = EnvDevelopment
	}
	if fc.Port != "" {
		cfg.Port = fc.Port
	}
	if fc.UpstreamBaseURL != "" {
		cfg.UpstreamBaseURL = fc.UpstreamBaseURL
	}
	if len(fc.CorsOrigins) > 0 {
		cfg.CorsOrigins = fc.CorsOrigins
	}
	if fc.TLSInsecure != nil && cfg.IsDevelopment() {
		cfg.tlsInsecure.Store(*fc.TLSInsecure)
	}

	return nil
}
