package command

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/carmelngoyi/ccgoodies/internal/app"
	"github.com/carmelngoyi/ccgoodies/internal/server"
)

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "serve the CC Goodies HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (runErr error) {
			cfg, logger, st, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if err := st.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			grp, ctx := errgroup.WithContext(cmd.Context())

			listener, err := server.Listen(ctx, cfg.Address)
			if err != nil {
				return err
			}

			api := app.New(cfg, logger, st)
			logger.InfoContext(ctx,
				"starting API server...",
				slog.String("address", listener.Addr().String()),
			)
			server.Serve(ctx, grp, api.Server, listener)
			return grp.Wait()
		},
	}
}
