package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formfields/internal/server"
	"github.com/goliatone/go-formfields/pkg/openapi"
	"github.com/goliatone/go-formfields/pkg/project"
	"github.com/goliatone/go-formfields/pkg/render"
	"github.com/goliatone/go-formfields/pkg/renderers/tui"
	"github.com/goliatone/go-formfields/pkg/renderers/vanilla"
	"github.com/goliatone/go-formfields/pkg/screen"
)

func (a *app) serveCommand() *cobra.Command {
	var (
		addr         string
		themeVariant string
		templatesDir string
		origins      []string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the form screens over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = a.cfg.Server.Addr
			}
			if !cmd.Flags().Changed("theme-variant") {
				themeVariant = a.cfg.Theme.Variant
			}
			if !cmd.Flags().Changed("templates-dir") {
				templatesDir = a.cfg.Theme.TemplatesDir
			}
			if !cmd.Flags().Changed("cors-origin") {
				origins = a.cfg.Server.CORSOrigins
			}

			kitOptions := []vanilla.Option{vanilla.WithLogger(a.logger)}
			if templatesDir != "" {
				kitOptions = append(kitOptions, vanilla.WithTemplatesDir(templatesDir))
			}
			kit, err := vanilla.NewKit(kitOptions...)
			if err != nil {
				return err
			}
			themeCfg, err := vanilla.DefaultTheme(themeVariant)
			if err != nil {
				return err
			}

			srv, err := server.New(
				server.WithLogger(a.logger),
				server.WithKit(kit),
				server.WithTheme(themeCfg),
				server.WithCORSOrigins(origins...),
			)
			if err != nil {
				return err
			}
			return srv.Run(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from FORMFIELDS_ADDR)")
	cmd.Flags().StringVar(&themeVariant, "theme-variant", "", "theme variant, e.g. dark")
	cmd.Flags().StringVar(&templatesDir, "templates-dir", "", "directory with template overrides")
	cmd.Flags().StringSliceVar(&origins, "cors-origin", nil, "allowed CORS origin (repeatable)")
	return cmd
}

func (a *app) promptCommand() *cobra.Command {
	var (
		variant string
		plain   bool
	)
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Fill the project form in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := screen.ParseVariant(variant)
			if err != nil {
				return err
			}
			styles := tui.DefaultStyles()
			if plain {
				styles = tui.PlainStyles()
			}
			sc, err := screen.New(v, project.NewHandler(), tui.NewNotifier(a.out, styles), screen.WithLogger(a.logger))
			if err != nil {
				return err
			}
			session := tui.New(
				tui.WithPromptDriver(tui.NewSurveyDriver(a.out)),
				tui.WithStyles(styles),
				tui.WithLogger(a.logger),
			)
			return session.Run(cmd.Context(), sc)
		},
	}
	cmd.Flags().StringVar(&variant, "variant", string(screen.VariantAccessor), "binding family: controller or accessor")
	cmd.Flags().BoolVar(&plain, "plain", false, "disable colours")
	return cmd
}

func (a *app) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file.json|file.yaml>",
		Short: "Run the project handler on a submission file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			candidate, err := readCandidate(args[0])
			if err != nil {
				return err
			}
			result := project.NewHandler().CreateProject(cmd.Context(), candidate)
			fmt.Fprintln(a.out, result.Message)
			if !result.Success {
				return errRejected
			}
			return nil
		},
	}
}

func (a *app) openAPICommand() *cobra.Command {
	var asYAML bool
	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Print the OpenAPI document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc := openapi.Document()
			if err := openapi.Validate(cmd.Context(), doc); err != nil {
				return err
			}
			raw, err := openapi.Encode(doc, asYAML)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.out, strings.TrimRight(string(raw), "\n"))
			return err
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print YAML instead of JSON")
	return cmd
}

func (a *app) modelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "model",
		Short: "Print the project form model",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			raw, err := json.MarshalIndent(project.FormModel(), "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.out, string(raw))
			return err
		},
	}
}

func (a *app) previewCommand() *cobra.Command {
	var (
		rendererName string
		themeVariant string
		sets         []string
	)
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render the project form without a session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry := render.NewRegistry()
			renderer, err := vanilla.New(vanilla.WithLogger(a.logger))
			if err != nil {
				return err
			}
			if err := registry.Register(renderer); err != nil {
				return err
			}
			selected, err := registry.Get(rendererName)
			if err != nil {
				return err
			}

			values := make(map[string]any, len(sets))
			for _, set := range sets {
				path, value, ok := strings.Cut(set, "=")
				if !ok || strings.TrimSpace(path) == "" {
					return fmt.Errorf("--set expects path=value, got %q", set)
				}
				values[strings.TrimSpace(path)] = value
			}

			opts := render.RenderOptions{Values: values}
			if themeVariant != "" {
				themeCfg, err := vanilla.DefaultTheme(themeVariant)
				if err != nil {
					return err
				}
				opts.Theme = themeCfg
			}
			out, err := selected.Render(cmd.Context(), project.FormModel(), opts)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.out, string(out))
			return err
		},
	}
	cmd.Flags().StringVar(&rendererName, "renderer", "vanilla", "renderer name")
	cmd.Flags().StringVar(&themeVariant, "theme-variant", "", "theme variant, e.g. dark")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "field value as path=value (repeatable)")
	return cmd
}

func readCandidate(path string) (any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var candidate any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &candidate); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(raw, &candidate); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	}
	return candidate, nil
}
