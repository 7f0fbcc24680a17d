package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const configDirName = ".ojassistant"

// Config holds the tool's persistent settings, kept in
// ~/.ojassistant/config.json. Session tokens live in their own cache
// file next to it, not here.
type Config struct {
	WorkDirectory      string `json:"work_directory" mapstructure:"work_directory"`
	AutoSelectCourse   bool   `json:"auto_select_course" mapstructure:"auto_select_course"`
	AutoSelectHomework bool   `json:"auto_select_homework" mapstructure:"auto_select_homework"`
	MaxRecordsToShow   int    `json:"max_records_to_show" mapstructure:"max_records_to_show"`
}

// Dir returns the config directory, creating it if needed.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, configDirName)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return dir, nil
}

func Init() {
	dir, err := Dir()
	if err != nil {
		panic(err)
	}
	viper.AddConfigPath(dir)
	viper.SetConfigName("config")
	viper.SetConfigType("json")
	viper.SetDefault("auto_select_homework", true)
	viper.SetDefault("max_records_to_show", 3)
}

func Load() (*Config, error) {
	err := viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			var cfg Config
			if err := viper.Unmarshal(&cfg); err != nil {
				return nil, err
			}
			return &cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) Save() error {
	viper.Set("work_directory", cfg.WorkDirectory)
	viper.Set("auto_select_course", cfg.AutoSelectCourse)
	viper.Set("auto_select_homework", cfg.AutoSelectHomework)
	viper.Set("max_records_to_show", cfg.MaxRecordsToShow)

	// creates if doesn't exist
	err := viper.SafeWriteConfig()
	if err != nil {
		// if file exists, we overwrite
		return viper.WriteConfig()
	}
	return nil
}

// ResolveWorkDir picks the Java working directory: an explicit override
// wins, then the configured directory, then the current directory.
func (cfg *Config) ResolveWorkDir(override string) (string, error) {
	if override != "" {
		return filepath.Abs(override)
	}
	if cfg.WorkDirectory != "" {
		return filepath.Abs(cfg.WorkDirectory)
	}
	return os.Getwd()
}
