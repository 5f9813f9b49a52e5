// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// envConfig are the defaults of the flags. They can be changed by environment
// variables.
type envConfig struct {
	ConfigFile string `env:"GENPACK_INIT_CONFIG"      envDefault:"test/test.ini"`
	PluginDir  string `env:"GENPACK_INIT_PLUGIN_DIR"  envDefault:"./test"`
	LogFile    string `env:"GENPACK_INIT_LOG_FILE"`
	DeviceRoot string `env:"GENPACK_INIT_DEVICE_ROOT"`
}

// loadEnv reads the environment overrides from the given environment. If
// nil, the process environment is used.
func loadEnv(environment map[string]string) (envConfig, error) {
	var cfg envConfig

	err := env.ParseWithOptions(&cfg, env.Options{
		Environment: environment,
	})
	if err != nil {
		return envConfig{}, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}
