// Package cmd provides the kafkalens command line: flag and environment
// handling, and StartWeb, which wires the application and serves the HTTP
// view layer until interrupted.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/OliveiraNt/kafkalens/internal/config"
	"github.com/OliveiraNt/kafkalens/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var v = viper.New()

var rootCmd = &cobra.Command{
	Use:   "kafkalens",
	Short: "kafkalens manages Kafka connection profiles and browses broker state",
	Long: `kafkalens keeps named Kafka connection profiles, switches the active
broker session between them and serves read-only broker views over a local
HTTP API.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := config.LoadRuntime(v)
		if err != nil {
			return err
		}
		utils.SetLogLevel(rt.LogLevel)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return StartWeb(ctx, rt)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	f := rootCmd.Flags()
	f.String("http-addr", ":8080", "HTTP listen address")
	f.String("state", "", "state file path (default: ./state.yml or the user config dir)")
	f.Duration("connect-timeout", 10*time.Second, "timeout for one connection test or activation")
	f.Int("connect-retries", 1, "extra attempts after a transient connect failure")
	f.String("client", config.ClientFranz, "kafka client library: franz or sarama")
	f.String("log-level", "info", "log level: debug, info, warn, error")

	config.SetDefaults(v)
	bind := map[string]string{
		"http_addr":       "http-addr",
		"state":           "state",
		"connect_timeout": "connect-timeout",
		"connect_retries": "connect-retries",
		"client":          "client",
		"log_level":       "log-level",
	}
	for key, flag := range bind {
		_ = v.BindPFlag(key, f.Lookup(flag))
	}
	v.SetEnvPrefix(config.EnvPrefix)
	v.AutomaticEnv()
}
