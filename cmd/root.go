package cmd

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/itsknk/matrix-server/config"
	"github.com/itsknk/matrix-server/db"
)

var (
	debug    bool
	cfgFile  string
	dbPath   string
	treeName string
	workers  int
	maxTrees int
	mapSize  int
	engine   *db.Engine
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "mxkv --db-path path",
	Short: "Ordered key-value store administration",
	Long: "mxkv operates on the server's key-value database: named trees\n" +
		"of ordered keys with point reads and writes, atomic counters,\n" +
		"range scans and prefix watches.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debug {
			setDebug()
		}
		loadConfig()
	},
}

// Execute adds all child commands to the root command sets flags appropriately.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func init() {
	// Logger
	formatter := new(logrus.TextFormatter)
	formatter.TimestampFormat = time.RFC3339
	formatter.FullTimestamp = true
	logrus.SetFormatter(formatter)
	logrus.SetOutput(os.Stdout)

	// Database options
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Configuration file")
	RootCmd.PersistentFlags().StringVar(&dbPath, "db-path", "", "Database file location")
	RootCmd.PersistentFlags().StringVar(&treeName, "tree", "default", "Tree to operate on")
	RootCmd.PersistentFlags().IntVar(&workers, "workers", db.DefaultWorkers, "Background scan worker count")
	RootCmd.PersistentFlags().IntVar(&maxTrees, "max-trees", db.DefaultMaxTrees, "Maximum number of trees")
	RootCmd.PersistentFlags().IntVar(&mapSize, "map-size", db.DefaultMapSize, "Virtual map size in bytes")
	RootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug log")
}

// Merge settings from the configuration file, flags taking precedence.
func loadConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
	if err := config.LoadConfig(); err != nil {
		logrus.WithError(err).Debug("no configuration file loaded")
	}
	if dbPath == "" {
		dbPath = config.Database().Path
	}
	if dbPath == "" {
		dbPath = "mxkv.db"
	}
}

// openEngine opens the storage environment. The engine is kept in the
// package variable for closeEngine.
func openEngine() (*db.Engine, error) {
	e, err := db.Open(db.Config{
		Path:     dbPath,
		MapSize:  mapSize,
		MaxTrees: maxTrees,
		Workers:  workers,
	})
	if err != nil {
		return nil, err
	}
	engine = e
	return e, nil
}

// openTree opens the storage environment and the selected tree.
func openTree() (*db.Tree, error) {
	e, err := openEngine()
	if err != nil {
		return nil, err
	}
	tree, err := e.OpenTree(treeName)
	if err != nil {
		e.Close()
		return nil, err
	}
	return tree, nil
}

func closeEngine() {
	if engine != nil {
		if err := engine.Close(); err != nil {
			logrus.WithError(err).Error("closing storage environment")
		}
	}
}

func setDebug() {
	logrus.SetLevel(logrus.DebugLevel)
}
