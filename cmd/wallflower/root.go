package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/teslashibe/go-wallflower/internal/config"
	"github.com/teslashibe/go-wallflower/internal/log"
)

// app carries state shared by subcommands for one invocation.
type app struct {
	cfgFile string
	v       *viper.Viper
	cfg     config.Config
}

// quietLogs marks commands that own stdout; their logs go only to --log-file.
const quietLogs = "quiet-logs"

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "wallflower",
		Short:         "A shy figure that walks away from noise and toward quiet.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	pf := root.PersistentFlags()
	pf.StringVarP(&a.cfgFile, "config", "c", "", "config file (default is "+config.DefaultFile+")")
	pf.String("log-level", config.DefaultLogLevel, "log level: debug, info, warn, error")
	pf.String("log-file", "", "also write logs to this rotating file")
	pf.Int("fps", config.DefaultFPS, "frames per second")

	root.AddCommand(
		newServeCmd(a),
		newSimulateCmd(a),
		newTermCmd(a),
		newVersionCmd(),
	)
	return root
}

// load reads config, binds flags and sets up logging.
func (a *app) load(cmd *cobra.Command) error {
	v, err := config.New()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	for key, flag := range map[string]string{
		"log.level": "log-level",
		"log.file":  "log-file",
		"fps":       "fps",
	} {
		if f := flags.Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("bind %s: %w", flag, err)
			}
		}
	}
	if err := config.ReadFile(v, a.cfgFile); err != nil {
		return err
	}
	cfg, err := config.Decode(v)
	if err != nil {
		return err
	}

	a.v = v
	a.cfg = cfg
	opts := cfg.Log
	opts.Quiet = cmd.Annotations[quietLogs] == "true"
	log.Setup(opts)
	log.Debug("config loaded", "file", v.ConfigFileUsed(), "fps", cfg.FPS)
	return nil
}
