package config

// LocalConfig holds per-project preferences stored under .nftree/
type LocalConfig struct {
	Network   string `json:"network,omitempty" yaml:"network,omitempty"`
	Artifacts string `json:"artifacts,omitempty" yaml:"artifacts,omitempty"`
}

// ConfigKey represents a configuration key
type ConfigKey string

const (
	ConfigKeyNetwork   ConfigKey = "network"
	ConfigKeyArtifacts ConfigKey = "artifacts"
)

// DefaultLocalConfig returns the default local configuration
func DefaultLocalConfig() *LocalConfig {
	return &LocalConfig{}
}

// ValidConfigKeys returns all valid configuration keys
func ValidConfigKeys() []ConfigKey {
	return []ConfigKey{
		ConfigKeyNetwork,
		ConfigKeyArtifacts,
	}
}

// IsValidConfigKey checks if a key is valid
func IsValidConfigKey(key string) bool {
	for _, validKey := range ValidConfigKeys() {
		if string(validKey) == key || (key == "net" && validKey == ConfigKeyNetwork) {
			return true
		}
	}
	return false
}

// Get returns the value stored under key
func (c *LocalConfig) Get(key ConfigKey) string {
	switch key {
	case ConfigKeyNetwork:
		return c.Network
	case ConfigKeyArtifacts:
		return c.Artifacts
	}
	return ""
}

// Set stores value under key, an empty value clears it
func (c *LocalConfig) Set(key ConfigKey, value string) {
	switch key {
	case ConfigKeyNetwork:
		c.Network = value
	case ConfigKeyArtifacts:
		c.Artifacts = value
	}
}

// NormalizeKey maps aliases to their canonical key
func NormalizeKey(key string) ConfigKey {
	if key == "net" {
		return ConfigKeyNetwork
	}
	return ConfigKey(key)
}
