// Package config loads the engine's tunables from a YAML file via viper,
// grounded on the teacher's reinforcement.FromYaml: a viper instance reads
// the file, unmarshals into a struct, and documented defaults fill in
// whatever the file leaves unset.
package config

import (
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"multistart/schedule"
)

// EngineConfig holds the tunables a caller typically wants to set from a
// file rather than hardcoding at the call site: how many workers a parallel
// multistarter uses, the timed multistarter's sampling granularity, and the
// base run length ParallelVAL fleets stagger from.
type EngineConfig struct {
	NumWorkers      int           `mapstructure:"num_workers" yaml:"num_workers"`
	TimeUnit        time.Duration `mapstructure:"time_unit" yaml:"time_unit"`
	ParallelVALBase int64         `mapstructure:"parallel_val_base" yaml:"parallel_val_base"`
}

// DefaultNumWorkers is the worker count Load applies when the file leaves
// num_workers unset. The time_unit (1s) and parallel_val_base
// (schedule.DefaultParallelVALBase, 1000) defaults are set in Load itself.
const (
	DefaultNumWorkers = 4
)

// Load reads a YAML config file at path, applying DefaultNumWorkers,
// restart.DefaultTimeUnit-equivalent (1s), and
// schedule.DefaultParallelVALBase wherever the file leaves a field unset.
func Load(path string) (*EngineConfig, error) {
	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetConfigType("yaml")
	vp.AddConfigPath(filepath.Dir(path))

	vp.SetDefault("num_workers", DefaultNumWorkers)
	vp.SetDefault("time_unit", time.Second)
	vp.SetDefault("parallel_val_base", schedule.DefaultParallelVALBase)

	if err := vp.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, "config: failed to read config file")
	}

	cfg := &EngineConfig{}
	if err := vp.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "config: failed to unmarshal config")
	}

	if cfg.NumWorkers < 1 {
		return nil, errors.New("config: num_workers must be >= 1")
	}
	if cfg.TimeUnit <= 0 {
		return nil, errors.New("config: time_unit must be > 0")
	}
	if cfg.ParallelVALBase < 1 {
		return nil, errors.New("config: parallel_val_base must be >= 1")
	}

	return cfg, nil
}

// YAML re-marshals the resolved configuration (file contents plus applied
// defaults) back to YAML, for logging the effective configuration a caller
// is running with.
func (cfg *EngineConfig) YAML() ([]byte, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "config: failed to marshal effective config")
	}
	return out, nil
}
