package main

import (
	"fmt"
	"strings"

	"github.com/decker502/ticketquiz/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Options 命令行选项（均可用 TICKETQUIZ_ 前缀的环境变量设置）
type Options struct {
	configPath string
	startTime  string
	assetBase  string
	watch      bool
	fullscreen bool
	verbose    bool
	version    bool
}

func (o *Options) validate() error {
	if o.watch && o.configPath == "" {
		return fmt.Errorf("--watch requires --config")
	}
	if o.startTime != "" {
		if _, err := config.ParseStartTime(o.startTime); err != nil {
			return err
		}
	}
	return nil
}

func (o *Options) overrides() config.Overrides {
	return config.Overrides{StartTime: o.startTime, AssetBase: o.assetBase}
}

// loadQuiz 加载外部配置（--config）或嵌入的默认配置，并应用覆盖项
func (o *Options) loadQuiz(path string) (*config.QuizConfig, error) {
	var (
		cfg *config.QuizConfig
		err error
	)
	if path == "" {
		cfg, err = config.LoadEmbeddedQuizConfig()
	} else {
		cfg, err = config.LoadQuizConfig(path)
	}
	if err != nil {
		return nil, err
	}
	if err := o.overrides().Apply(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newCmd(opts *Options) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("TICKETQUIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "ticketquiz",
		Short:         "A countdown-gated picture quiz: enter your name, answer six song questions, get your ticket.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			return run(opts)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&opts.configPath, "config", "c", "", "path to quiz config YAML, defaults to the embedded one (env: TICKETQUIZ_CONFIG)")
	fs.StringVar(&opts.startTime, "start-time", "", "override the countdown target, RFC 3339 with offset (env: TICKETQUIZ_START_TIME)")
	fs.StringVar(&opts.assetBase, "asset-base", "", "override the base URL or directory for relative assets (env: TICKETQUIZ_ASSET_BASE)")
	fs.BoolVarP(&opts.watch, "watch", "w", false, "reload --config when it changes (env: TICKETQUIZ_WATCH)")
	fs.BoolVarP(&opts.fullscreen, "fullscreen", "f", false, "start in fullscreen (env: TICKETQUIZ_FULLSCREEN)")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "display additional output (env: TICKETQUIZ_VERBOSE)")
	fs.BoolVarP(&opts.version, "version", "V", false, "display version and exit (env: TICKETQUIZ_VERSION)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("ticketquiz v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
