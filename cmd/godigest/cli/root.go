package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	goDigest "github.com/MrEthical07/goDigest"
)

const envPrefix = "GODIGEST"

// Execute runs the godigest command tree against os.Args.
func Execute() {
	cobra.CheckErr(NewRootCommand().Execute())
}

// app carries state shared by subcommands of one root command.
type app struct {
	v       *viper.Viper
	cfgFile string
}

// NewRootCommand builds the godigest command tree. Each call gets its own
// viper instance so commands can be executed repeatedly in tests.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:          "godigest",
		Short:        "Hash and verify passwords in $id$rounds=N$salt$digest form",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initConfig(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.godigest/godigest.yaml)")
	flags.String("log-level", "warn", "Log level: debug, info, warn or error")
	flags.Int("rounds-min", 0, "Override the minimum round count")
	flags.Int("rounds-max", 0, "Override the maximum round count")
	flags.Bool("no-upgrade", false, "Never issue upgraded hashes from verify")

	root.AddCommand(
		newHashCommand(a),
		newVerifyCommand(a),
		newAlgorithmsCommand(a),
		newReportCommand(a),
	)

	return root
}

func (a *app) initConfig(cmd *cobra.Command) error {
	if a.cfgFile == "" {
		home, err := homedir.Expand("~/.godigest")
		if err != nil {
			return err
		}
		candidate := filepath.Join(home, "godigest.yaml")
		if _, err := os.Stat(candidate); err == nil {
			a.cfgFile = candidate
		}
	} else {
		expanded, err := homedir.Expand(a.cfgFile)
		if err != nil {
			return err
		}
		a.cfgFile = expanded
	}

	// Environment variable support
	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	var bindErr error
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		if err := a.v.BindPFlag(flag.Name, flag); err != nil && bindErr == nil {
			bindErr = err
		}
	})
	return bindErr
}

// config loads the digester configuration: the config file (or environment
// only when there is none) followed by flag overrides.
func (a *app) config() (goDigest.Config, error) {
	var (
		cfg goDigest.Config
		err error
	)
	if a.cfgFile != "" {
		cfg, err = goDigest.LoadConfig(a.cfgFile)
	} else {
		cfg, err = goDigest.LoadConfigFromEnv()
	}
	if err != nil {
		return goDigest.Config{}, err
	}

	if n := a.v.GetInt("rounds-min"); n > 0 {
		cfg.Rounds.Min = n
	}
	if n := a.v.GetInt("rounds-max"); n > 0 {
		cfg.Rounds.Max = n
	}
	if a.v.GetBool("no-upgrade") {
		cfg.Upgrade.Enabled = false
	}

	if err := cfg.Validate(); err != nil {
		return goDigest.Config{}, err
	}
	return cfg, nil
}

func (a *app) logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(a.v.GetString("log-level"))
	if err != nil {
		return nil, fmt.Errorf("log-level: %w", err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

func (a *app) digester() (*goDigest.Digester, *zap.Logger, error) {
	cfg, err := a.config()
	if err != nil {
		return nil, nil, err
	}
	logger, err := a.logger()
	if err != nil {
		return nil, nil, err
	}
	d, err := goDigest.New().WithConfig(cfg).WithLogger(logger).Build()
	if err != nil {
		_ = logger.Sync()
		return nil, nil, err
	}
	return d, logger, nil
}
