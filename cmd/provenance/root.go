package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/PageDAO/PageProvenanceService/internal/config"
	"github.com/PageDAO/PageProvenanceService/internal/logging"
	"github.com/PageDAO/PageProvenanceService/pkg/catalog"
	"github.com/PageDAO/PageProvenanceService/pkg/document"
	"github.com/PageDAO/PageProvenanceService/pkg/model"
	"github.com/PageDAO/PageProvenanceService/pkg/orchestrator"
	"github.com/PageDAO/PageProvenanceService/pkg/renderers/pdf"
)

// app carries what every subcommand needs once flags and config are read.
type app struct {
	cfg    config.Config
	logger *zap.Logger
	styles styles

	configFile string
}

func newRootCommand() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "provenance",
		Short:         "Page Provenance Service",
		Long:          "Collects provenance records for published works and renders them as certified artifacts.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.logger.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default ./provenance.yaml when present)")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-format", "", "log encoding (console, json)")
	flags.String("theme", "", "theme name")
	flags.String("variant", "", "theme variant")
	flags.Bool("strict-catalog", false, "fail instead of printing placeholders for unknown attestations")

	root.AddCommand(
		newServeCommand(a),
		newFillCommand(a),
		newRenderCommand(a),
		newValidateCommand(a),
		newCatalogCommand(a),
	)
	return root
}

var persistentBindings = map[string]string{
	"log.level":             "log-level",
	"log.format":            "log-format",
	"theme.name":            "theme",
	"theme.variant":         "variant",
	"render.strict_catalog": "strict-catalog",
}

func (a *app) init(cmd *cobra.Command) error {
	options := []config.Option{config.WithFile(a.configFile)}
	for key, name := range persistentBindings {
		options = append(options, config.WithFlag(key, cmd.Flags().Lookup(name)))
	}
	if bind, ok := commandBindings[cmd.Name()]; ok {
		for key, name := range bind {
			options = append(options, config.WithFlag(key, cmd.Flags().Lookup(name)))
		}
	}

	cfg, err := config.Load(options...)
	if err != nil {
		return err
	}
	logger, _, err := logging.New(cfg.Log, logging.WithOutput(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger.Named("provenance")
	a.styles = newStyles(cmd.OutOrStdout())
	return nil
}

// commandBindings maps subcommand flags onto config keys.
var commandBindings = map[string]map[string]string{
	"serve":  {"server.addr": "addr", "server.shutdown_grace": "shutdown-grace"},
	"fill":   {"render.default": "format"},
	"render": {"render.default": "format"},
}

// orchestrator builds the rendering pipeline from the resolved config.
func (a *app) orchestrator() (*orchestrator.Orchestrator, error) {
	cat, err := a.catalog()
	if err != nil {
		return nil, err
	}

	builderOptions := []document.Option{
		document.WithServiceTitle(a.cfg.Service.Title),
		document.WithLogger(a.logger.Named("document")),
	}
	if a.cfg.Render.StrictCatalog {
		builderOptions = append(builderOptions, document.WithStrictCatalog())
	}

	options := []orchestrator.Option{
		orchestrator.WithBuilder(document.NewBuilder(cat, builderOptions...)),
		orchestrator.WithDefaultRenderer(a.cfg.Render.Default),
		orchestrator.WithTheme(a.cfg.Theme.Name, a.cfg.Theme.Variant),
		orchestrator.WithLogger(a.logger.Named("orchestrator")),
		orchestrator.WithFooterTemplate(a.cfg.Service.Footer),
	}
	if path := strings.TrimSpace(a.cfg.Logo.Path); path != "" {
		logo, err := orchestrator.LoadLogo(os.DirFS(filepath.Dir(path)), filepath.Base(path))
		if err != nil {
			return nil, fmt.Errorf("provenance: logo: %w", err)
		}
		options = append(options, orchestrator.WithLogos(logo))
	}

	if path := strings.TrimSpace(a.cfg.Render.PDFFont); path != "" {
		fonts, err := pdf.LoadFontFile(path)
		if err != nil {
			return nil, err
		}
		options = append(options, orchestrator.WithPDFOptions(pdf.WithFonts(fonts)))
	}

	orch := orchestrator.New(options...)
	if !orch.HasRenderer(a.cfg.Render.Default) {
		return nil, fmt.Errorf("provenance: unknown format %q (have %s)", a.cfg.Render.Default, strings.Join(orch.Renderers(), ", "))
	}
	return orch, nil
}

func (a *app) catalog() (model.Catalog, error) {
	if path := strings.TrimSpace(a.cfg.Catalog.Path); path != "" {
		return catalog.LoadFile(path)
	}
	return catalog.Default()
}
