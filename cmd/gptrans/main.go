package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/zenpl/GPTrans/config"
	"github.com/zenpl/GPTrans/core/model"
	"github.com/zenpl/GPTrans/engine/fitloop"
	"github.com/zenpl/GPTrans/engine/layout"
	"github.com/zenpl/GPTrans/engine/translate"
	"github.com/zenpl/GPTrans/export/epub"
	exhtml "github.com/zenpl/GPTrans/export/html"
	"github.com/zenpl/GPTrans/ocr"
)

type appEnv struct {
	cfg config.Config
	log *zap.Logger
}

func envFromContext(ctx context.Context) *appEnv {
	env, _ := ctx.Value(appEnvKey{}).(*appEnv)
	if env == nil {
		env = &appEnv{}
	}
	return env
}

type appEnvKey struct{}

func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	env := &appEnv{}
	var err error

	configFile := cmd.String("config")
	if configFile != "" {
		env.cfg, err = config.Load(configFile)
	} else {
		env.cfg = config.Default()
	}
	if err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}

	if env.log, err = env.cfg.Logger(); err != nil {
		return ctx, fmt.Errorf("unable to prepare logger: %w", err)
	}
	return context.WithValue(ctx, appEnvKey{}, env), nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) error {
	env := envFromContext(ctx)
	if env.log != nil {
		return env.log.Sync()
	}
	return nil
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

func runRender(ctx context.Context, cmd *cli.Command) error {
	env := envFromContext(ctx)

	ocrFile := cmd.String("ocr")
	if ocrFile == "" {
		return fmt.Errorf("--ocr is required")
	}
	f, err := os.Open(ocrFile)
	if err != nil {
		return fmt.Errorf("unable to open OCR result: %w", err)
	}
	defer f.Close()

	res, err := ocr.Decode(f)
	if err != nil {
		return fmt.Errorf("unable to decode OCR result: %w", err)
	}
	pageID := cmd.String("page-id")
	if pageID == "" {
		pageID = filepath.Base(ocrFile)
	}
	page := ocr.ToPage(pageID, res)

	backend := translate.NewMockBackend()
	glossary := model.Glossary{}
	shorten := translate.Shortener(backend, env.cfg.Translation.SourceLang, env.cfg.Translation.TargetLang, glossary)

	for i, b := range page.Blocks {
		translated, err := translate.TranslateParagraph(ctx, backend, b.TextSource,
			env.cfg.Translation.SourceLang, env.cfg.Translation.TargetLang, glossary, model.LengthNormal)
		if err != nil {
			env.log.Error("translation failed, keeping source", zap.String("block", b.ID), zap.Error(err))
			translated = b.TextSource
		}
		page.Blocks[i].TextTranslated = translated
		page.Blocks[i].HasTranslation = true
	}

	typeset, err := layout.Layout(ctx, page, env.cfg.FitLoop, fitloop.Shortener(shorten))
	if err != nil {
		env.log.Warn("one or more blocks fell back to defaults", zap.Error(err))
	}

	if out := cmd.String("html"); out != "" {
		wf, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("unable to create HTML output: %w", err)
		}
		defer wf.Close()
		if err := exhtml.Render(wf, typeset); err != nil {
			return fmt.Errorf("unable to render HTML: %w", err)
		}
		env.log.Info("wrote HTML", zap.String("path", out))
	}

	if out := cmd.String("epub"); out != "" {
		if err := epub.Generate([]model.TypesetPage{typeset}, out, epub.Options{
			Title:  pageID,
			FixZip: env.cfg.EPUBFixZip,
		}); err != nil {
			return fmt.Errorf("unable to generate EPUB: %w", err)
		}
		env.log.Info("wrote EPUB", zap.String("path", out))
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.Command{
		Name:            "gptrans",
		Usage:           "CJK OCR translation and typesetting engine",
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (YAML)"},
		},
		Commands: []*cli.Command{
			{
				Name:   "render",
				Usage:  "translate and typeset one OCR result, emitting HTML and/or EPUB",
				Action: runRender,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "ocr", Usage: "path to an OCR result JSON `FILE`"},
					&cli.StringFlag{Name: "page-id", Usage: "page identifier, defaults to the OCR file's base name"},
					&cli.StringFlag{Name: "html", Usage: "write a rendered HTML document to `FILE`"},
					&cli.StringFlag{Name: "epub", Usage: "write a packaged EPUB to `FILE`"},
				},
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
