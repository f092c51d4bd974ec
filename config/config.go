package config

import (
	v "github.com/spf13/viper"

	"github.com/itsknk/matrix-server/db"
)

// LoadConfig reads configuration from a configuration file or the environment.
func LoadConfig() error {
	v.SetConfigName("mxkv")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/")
	v.AddConfigPath("$HOME/.mxkv")

	v.SetEnvPrefix("mxkv")
	v.BindEnv("database_path")
	v.BindEnv("database_map_size")
	v.BindEnv("database_max_trees")
	v.BindEnv("database_workers")

	v.SetDefault("database_map_size", db.DefaultMapSize)
	v.SetDefault("database_max_trees", db.DefaultMaxTrees)
	v.SetDefault("database_workers", db.DefaultWorkers)

	return v.ReadInConfig()
}

// Database builds the storage environment configuration from the loaded
// settings.
func Database() db.Config {
	return db.Config{
		Path:     v.GetString("database_path"),
		MapSize:  v.GetInt("database_map_size"),
		MaxTrees: v.GetInt("database_max_trees"),
		Workers:  v.GetInt("database_workers"),
	}
}
