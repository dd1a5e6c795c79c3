/*
Package commands implements the pledged command line.

Every flag can also be set in $HOME/.pledge/config.yaml or through a
PLEDGE_ prefixed environment variable, eg. PLEDGE_LOG_LEVEL=debug.
*/
package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iov-one/pledge/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	envPrefix         = "PLEDGE"
	defaultConfigFile = "config.yaml"

	flagHome     = "home"
	flagConfig   = "config"
	flagLogLevel = "log-level"
	flagDebug    = "debug"
)

// Config is shared by all commands.
type Config struct {
	Home     string
	CfgFile  string
	LogLevel string
	Debug    bool
}

func defaultHome() string {
	return filepath.Join(os.ExpandEnv("$HOME"), ".pledge")
}

// NewRootCmd returns the pledged command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	conf := &Config{}
	root := &cobra.Command{
		Use:           "pledged",
		Short:         "Conditional escrow node",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeConfig(cmd, conf)
		},
	}
	root.PersistentFlags().StringVar(&conf.Home, flagHome, defaultHome(), "directory to store files under")
	root.PersistentFlags().StringVar(&conf.CfgFile, flagConfig, "", "config file (default is $PLEDGE_HOME/config.yaml)")
	root.PersistentFlags().StringVar(&conf.LogLevel, flagLogLevel, "info", "one of debug, info, error, none")
	root.PersistentFlags().BoolVar(&conf.Debug, flagDebug, false, "return the full error with stack trace to clients")

	root.AddCommand(
		newInitCmd(conf),
		newStartCmd(conf),
		newKeysCmd(conf),
		newExecCmd(conf),
		newQueryCmd(conf),
		newVersionCmd(),
	)
	return root
}

// initializeConfig reads the optional config file and the environment and
// applies them to every flag that was not set on the command line.
func initializeConfig(cmd *cobra.Command, conf *Config) error {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// home decides where the config file is, so it is resolved first
	if f := cmd.Flags().Lookup(flagHome); f != nil && !f.Changed && v.IsSet(flagHome) {
		conf.Home = v.GetString(flagHome)
	}

	cfgFile := conf.CfgFile
	if cfgFile == "" {
		cfgFile = defaultConfigFile
	}
	if !filepath.IsAbs(cfgFile) {
		cfgFile = filepath.Join(conf.Home, cfgFile)
	}
	if fileExists(cfgFile) {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return errors.Wrapf(errors.ErrInput, "config file %s: %s", cfgFile, err)
		}
	}

	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if bindErr != nil || f.Changed || !v.IsSet(f.Name) {
			return
		}
		if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name))); err != nil {
			bindErr = errors.Wrapf(errors.ErrInput, "flag %s: %s", f.Name, err)
		}
	})
	return bindErr
}

// newLogger returns a tendermint logger filtered by the configured level.
func newLogger(conf *Config) (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).With("module", "pledge")
	opt, err := log.AllowLevel(conf.LogLevel)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return log.NewFilter(logger, opt), nil
}

func fileExists(name string) bool {
	_, err := os.Stat(name)
	return err == nil
}
