// This file is part of Dawstream.
//
// Dawstream is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Dawstream is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Dawstream.  If not, see <https://www.gnu.org/licenses/>.

package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dawstream/dawstream/curated"
	"github.com/dawstream/dawstream/paths"
	"github.com/dawstream/dawstream/track"
)

// Filename is the name of the configuration file in the resource directory.
const Filename = "config.yaml"

// StoreFilename is the name of the default track database in the resource
// directory.
const StoreFilename = "tracks.db"

// List of error patterns returned by the package.
const (
	ConfigError  = "config: %v"
	InvalidValue = "config: invalid value for %s (%v)"
)

// Config is the application configuration.
type Config struct {
	// address for the server to listen on
	Addr string `yaml:"addr"`

	// path to the track database
	Store string `yaml:"store"`

	// tempo used for track documents that do not specify a tempo
	DefaultTempo int `yaml:"default_tempo"`

	// echo the log to stderr
	LogEcho bool `yaml:"log_echo"`

	// origins allowed to open a websocket. an empty list allows only
	// same-origin requests
	Origins []string `yaml:"origins"`

	// directory of static files served by the server. empty for no static
	// files
	Assets string `yaml:"assets"`
}

// Default returns the default configuration. The store path is in the
// resource directory.
func Default() Config {
	store, err := paths.ResourcePath("", StoreFilename)
	if err != nil {
		store = StoreFilename
	}
	return Config{
		Addr:         "localhost:3000",
		Store:        store,
		DefaultTempo: track.DefaultTempo,
		LogEcho:      false,
		Origins:      []string{},
	}
}

// DefaultPath returns the path of the configuration file in the resource
// directory.
func DefaultPath() (string, error) {
	pth, err := paths.ResourcePath("", Filename)
	if err != nil {
		return "", curated.Errorf(ConfigError, err)
	}
	return pth, nil
}

// Load the configuration file over the default configuration.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, curated.Errorf(ConfigError, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), curated.Errorf(ConfigError, err)
	}

	if err := cfg.Validate(); err != nil {
		return Default(), err
	}

	return cfg, nil
}

// Validate checks the configuration values.
func (cfg Config) Validate() error {
	if cfg.Addr == "" {
		return curated.Errorf(InvalidValue, "addr", `""`)
	}
	if cfg.Store == "" {
		return curated.Errorf(InvalidValue, "store", `""`)
	}
	if cfg.DefaultTempo < track.MinTempo {
		return curated.Errorf(InvalidValue, "default_tempo", cfg.DefaultTempo)
	}
	return nil
}

// Save the configuration to the file.
func (cfg Config) Save(path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return curated.Errorf(ConfigError, err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return curated.Errorf(ConfigError, err)
	}
	return nil
}
