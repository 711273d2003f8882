package models

// MConfig Structure
type MConfig struct {
	Name     string          `yaml:"name"`
	Host     string          `yaml:"host"`
	Port     int             `yaml:"port"`
	LogLevel string          `yaml:"log_level"`
	Upstream MUpstreamConfig `yaml:"upstream"`
	Network  MNetworkConfig  `yaml:"network"`
	Filter   MFilterConfig   `yaml:"filter"`
	Storage  MStorageConfig  `yaml:"storage"`

	// APIToken comes from the environment at startup, never from YAML.
	APIToken string `yaml:"-"`
}

type MUpstreamConfig struct {
	BaseURL string `yaml:"base_url"`
}

type MNetworkConfig struct {
	RequestTimeout int    `yaml:"timeout"`
	UserAgent      string `yaml:"user_agent"`
}

// MFilterConfig holds the put-screening thresholds.
type MFilterConfig struct {
	MaxDelta        float64 `yaml:"max_delta" json:"max_delta"`
	MinVolume       int     `yaml:"min_volume" json:"min_volume"`
	MinOpenInterest int     `yaml:"min_open_interest" json:"min_open_interest"`
	MaxStrike       float64 `yaml:"max_strike" json:"max_strike"`
}

type MStorageConfig struct {
	DBType             string `yaml:"db_type"`
	DBPath             string `yaml:"db_path"`
	DBConnectionString string `yaml:"db_connection_string"`
	RetentionDays      int    `yaml:"retention_days"`
}
