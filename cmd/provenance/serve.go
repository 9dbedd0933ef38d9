package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	provenance "github.com/PageDAO/PageProvenanceService"
	"github.com/PageDAO/PageProvenanceService/pkg/server"
)

func newServeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the provenance form and artifact API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			orch, err := a.orchestrator()
			if err != nil {
				return err
			}
			srv, err := provenance.NewServer(cmd.Context(),
				server.WithOrchestrator(orch),
				server.WithLogger(a.logger.Named("server")),
				server.WithAddr(a.cfg.Server.Addr),
				server.WithShutdownGrace(a.cfg.Server.ShutdownGrace),
				server.WithServiceTitle(a.cfg.Service.Title),
				server.WithTheme(a.cfg.Theme.Name, a.cfg.Theme.Variant),
			)
			if err != nil {
				return err
			}
			a.logger.Info("serving", zap.String("addr", srv.Addr()), zap.String("format", orch.DefaultRenderer()))
			return srv.Run(cmd.Context())
		},
	}
	cmd.Flags().String("addr", "", "listen address (default :8080)")
	cmd.Flags().Duration("shutdown-grace", 0, "time allowed for in-flight requests on shutdown (default 10s)")
	return cmd
}
