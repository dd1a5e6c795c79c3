package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/iov-one/pledge/cmd/pledged/app"
	"github.com/iov-one/pledge/errors"
	"github.com/spf13/cobra"
	"github.com/tendermint/tendermint/abci/server"
)

const flagBind = "bind"

func newStartCmd(conf *Config) *cobra.Command {
	var bind string
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Run the ABCI server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(conf)
			if err != nil {
				return err
			}
			application, err := app.GenerateApp(conf.Home, logger, conf.Debug)
			if err != nil {
				return err
			}

			logger.Info("Starting ABCI app", "bind", bind)
			svr, err := server.NewServer(bind, "socket", application)
			if err != nil {
				return errors.Wrapf(errors.ErrInput, "cannot create listener: %s", err)
			}
			svr.SetLogger(logger.With("module", "abci-server"))
			if err := svr.Start(); err != nil {
				return errors.Wrap(errors.ErrInput, err.Error())
			}

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			logger.Info("Shutting down", "signal", <-sig)
			return svr.Stop()
		},
	}
	cmd.Flags().StringVar(&bind, flagBind, "tcp://localhost:26658", "address the server listens on")
	return cmd
}
