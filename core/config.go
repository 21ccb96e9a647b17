package driftcore

import (
	"encoding/json"
	"net/url"
	"os"
	"strings"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

// configs
type ChainOverride struct {
	LocalUrl  string `yaml:"local,omitempty" json:"local,omitempty"`
	RemoteUrl string `yaml:"remote,omitempty" json:"remote,omitempty"`
}

// OverrideConfig is the optional config file applied once at
// startup. Only the endpoint URLs are overridable, a chain's height
// encoding and RPC method stay registry defined.
type OverrideConfig struct {
	Version string                   `yaml:"version,omitempty" json:"version,omitempty"`
	Chains  map[string]ChainOverride `yaml:"chains" json:"chains"`
}

// methods
func NewOverrideConfig() *OverrideConfig {
	cfg := &OverrideConfig{}
	cfg.validateValues()
	return cfg
}

func OverrideConfigFromFile(configPath string) (*OverrideConfig, error) {
	cfg := NewOverrideConfig()
	err := cfg.Load(configPath)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func (self *OverrideConfig) validateValues() error {
	if self.Version == "" {
		self.Version = "1.0"
	}

	for chain, ovr := range self.Chains {
		if _, ok := chainRegistry[chain]; !ok {
			return errors.Errorf("unknown chain %q in config", chain)
		}
		if ovr.LocalUrl != "" {
			if _, err := url.Parse(ovr.LocalUrl); err != nil {
				return errors.Wrap(err, "parse local url")
			}
		}
		if ovr.RemoteUrl != "" {
			if _, err := url.Parse(ovr.RemoteUrl); err != nil {
				return errors.Wrap(err, "parse remote url")
			}
		}
	}
	return nil
}

func (self *OverrideConfig) Load(configPath string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return err
	}
	if strings.HasSuffix(configPath, ".json") {
		return self.LoadJsondata(data)
	} else {
		return self.LoadYamldata(data)
	}
}

func (self *OverrideConfig) LoadYamldata(data []byte) error {
	err := yaml.Unmarshal(data, self)
	if err != nil {
		return err
	}
	return self.validateValues()
}

func (self *OverrideConfig) LoadJsondata(data []byte) error {
	err := json.Unmarshal(data, self)
	if err != nil {
		return err
	}
	return self.validateValues()
}

// Apply rewrites the endpoint URLs of cfg from the override entry
// for its chain, if any.
func (self *OverrideConfig) Apply(cfg *ChainConfig) {
	ovr, ok := self.Chains[cfg.Chain]
	if !ok {
		return
	}
	if ovr.LocalUrl != "" {
		cfg.LocalUrl = ovr.LocalUrl
	}
	if ovr.RemoteUrl != "" {
		cfg.RemoteUrl = ovr.RemoteUrl
	}
}
