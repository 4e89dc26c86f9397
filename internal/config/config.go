// Package config loads the study configuration and bootstraps logging.
package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration. Every constant the
// pipeline uses flows from here into constructors; nothing is process-wide
// mutable state.
type Config struct {
	API   APIConfig   `yaml:"api" mapstructure:"api"`
	Study StudyConfig `yaml:"study" mapstructure:"study"`
	Paths PathsConfig `yaml:"paths" mapstructure:"paths"`
	Log   LogConfig   `yaml:"log" mapstructure:"log"`
}

// APIConfig configures the EJScreen REST broker client.
type APIConfig struct {
	BaseURL          string `yaml:"base_url" mapstructure:"base_url"`
	Unit             string `yaml:"unit" mapstructure:"unit"`
	TimeoutSecs      int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RequestDelaySecs int    `yaml:"request_delay_secs" mapstructure:"request_delay_secs"`
}

// Timeout returns the per-request timeout as a duration.
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// RequestDelay returns the inter-request delay as a duration.
func (c APIConfig) RequestDelay() time.Duration {
	return time.Duration(c.RequestDelaySecs) * time.Second
}

// StudyConfig identifies the geographies under study and the state filter
// applied to the tract dataset.
type StudyConfig struct {
	BlockGroups []string `yaml:"block_groups" mapstructure:"block_groups"`
	CityName    string   `yaml:"city_name" mapstructure:"city_name"`
	CityAreaID  string   `yaml:"city_area_id" mapstructure:"city_area_id"`
	StateColumn string   `yaml:"state_column" mapstructure:"state_column"`
	StateValue  string   `yaml:"state_value" mapstructure:"state_value"`
}

// PathsConfig holds the input and output file locations for one run.
type PathsConfig struct {
	BlockGroupCSV string `yaml:"block_group_csv" mapstructure:"block_group_csv"`
	CityCSV       string `yaml:"city_csv" mapstructure:"city_csv"`
	TractCSV      string `yaml:"tract_csv" mapstructure:"tract_csv"`
	FilteredCSV   string `yaml:"filtered_csv" mapstructure:"filtered_csv"`
	Shapefile     string `yaml:"shapefile" mapstructure:"shapefile"`
	MergedGeoJSON string `yaml:"merged_geojson" mapstructure:"merged_geojson"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// anacostiaBlockGroups lists the block groups southeast of the Anacostia
// River that the study covers by default.
var anacostiaBlockGroups = []string{
	"110010074011", "110010074012", "110010074021", "110010074022",
	"110010075011", "110010075012", "110010075021", "110010075022",
	"110010076011", "110010076012", "110010076021", "110010076022",
	"110010077011", "110010077012", "110010077021", "110010077022",
	"110010078011", "110010078012", "110010078021", "110010078022",
	"110010079011", "110010079012", "110010079021", "110010079022",
	"110010080011", "110010080012", "110010080021", "110010080022",
	"110010081011", "110010081012", "110010081021", "110010081022",
	"110010082011", "110010082012", "110010082021", "110010082022",
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("EJSTUDY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("api.base_url", "https://ejscreen.epa.gov/mapper/ejscreenRESTbroker1.aspx")
	v.SetDefault("api.unit", "9035")
	v.SetDefault("api.timeout_secs", 30)
	v.SetDefault("api.request_delay_secs", 1)
	v.SetDefault("study.block_groups", anacostiaBlockGroups)
	v.SetDefault("study.city_name", "Washington")
	v.SetDefault("study.city_area_id", "1150000")
	v.SetDefault("study.state_column", "ST_ABBREV")
	v.SetDefault("study.state_value", "DC")
	v.SetDefault("paths.block_group_csv", "data/processed/block_group/anacostia_ejscreen_data.csv")
	v.SetDefault("paths.city_csv", "data/processed/block_group/dc_ejscreen_data.csv")
	v.SetDefault("paths.tract_csv", "data/raw/EJScreen_2024_Tract_StatePct_with_AS_CNMI_GU_VI.csv")
	v.SetDefault("paths.filtered_csv", "data/processed/tract/DC-filtered_EJScreen_2024_Tract_StatePct_with_AS_CNMI_GU_VI.csv")
	v.SetDefault("paths.shapefile", "data/raw/shapefiles/tl_2024_11_tract/tl_2024_11_tract.shp")
	v.SetDefault("paths.merged_geojson", "data/processed/shapefiles/tract/merged_tracts.geojson")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
