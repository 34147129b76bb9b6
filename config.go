package brainfuck

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// ToolConfig is what the cmd tools load from config.toml. Missing sections
// fall back to defaults; a missing persistence section means runs aren't
// recorded.
type ToolConfig struct {
	Machine      *MachineConfig      `toml:"machine"`
	Optimization *OptimizationConfig `toml:"optimization"`
	Persistence  *PersistenceConfig  `toml:"persistence"`
}

func DefaultToolConfig() *ToolConfig {
	return &ToolConfig{
		Machine:      DefaultMachineConfig(),
		Optimization: DefaultOptimizationConfig(),
	}
}

func LoadToolConfig(path string) (*ToolConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to load tool config: %w", err)
	}
	defer f.Close()

	var config ToolConfig
	if _, err := toml.NewDecoder(f).Decode(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tool config: %w", err)
	}
	if config.Machine == nil {
		config.Machine = DefaultMachineConfig()
	}
	if config.Optimization == nil {
		config.Optimization = DefaultOptimizationConfig()
	}
	return &config, nil
}
