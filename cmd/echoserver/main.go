package main

import (
	"cmp"
	"net/http"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/PugKong/symfony-requests/internal/echo"
)

const defaultListen = "localhost:8000"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var listen, configPath string

	cmd := &cobra.Command{
		Use:          "echoserver",
		Short:        "HTTP server that echoes requests back as JSON or XML",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var fileListen string
			if configPath != "" {
				cfg, err := echo.LoadConfig(configPath)
				if err != nil {
					return err
				}
				fileListen = cfg.Listen
			}

			addr := cmp.Or(listen, os.Getenv("ECHOSERVER_LISTEN"), fileListen, defaultListen)

			log := newLogger()
			log.Info().Str("addr", addr).Msg("listening")

			return http.ListenAndServe(addr, echo.NewHandler(log))
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "listen address (host:port)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")

	return cmd
}

func newLogger() zerolog.Logger {
	if isatty.IsTerminal(os.Stderr.Fd()) {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
