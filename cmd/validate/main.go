// Command validate checks JSON documents against schemas defined in a YAML or
// JSON schema file.
//
//	validate -schemas schemas.yaml -schema user [-locale fr] [-i18n ./translations] user.json ...
//
// Each document's result is printed as JSON. With no document arguments, or
// with "-", the document is read from stdin. The exit status is 0 when every
// document is valid, 1 when any is invalid and 2 on usage or I/O errors.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/dmitrymomot/clientkit/pkg/config"
	"github.com/dmitrymomot/clientkit/pkg/i18n"
	"github.com/dmitrymomot/clientkit/pkg/logger"
	"github.com/dmitrymomot/clientkit/pkg/validator"
)

const (
	exitOK      = 0
	exitInvalid = 1
	exitUsage   = 2
)

type appConfig struct {
	Logger    logger.Config
	Validator validator.Config
	I18nDir   string `env:"I18N_DIR"`
	Locale    string `env:"VALIDATOR_LOCALE" envDefault:"en"`
}

type report struct {
	File string `json:"file"`
	validator.Result
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		schemaFile = fs.String("schemas", "", "schema file (.yaml, .yml or .json)")
		schemaName = fs.String("schema", "", "schema to validate against; optional when the file defines one")
		locale     = fs.String("locale", "", "message locale (default $VALIDATOR_LOCALE or en)")
		i18nDir    = fs.String("i18n", "", "translations directory (default $I18N_DIR)")
		envFile    = fs.String("env", "", "load environment variables from this file first")
		listRules  = fs.Bool("rules", false, "list the available rules and exit")
	)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if *envFile != "" {
		if err := config.LoadEnv(*envFile); err != nil {
			fmt.Fprintln(stderr, err)
			return exitUsage
		}
	}

	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	cfg.Locale = firstSet(*locale, cfg.Locale)
	cfg.I18nDir = firstSet(*i18nDir, cfg.I18nDir)

	log := logger.New(
		logger.WithConfig(cfg.Logger),
		logger.WithOutput(stderr),
		logger.WithContextValue("locale", i18n.LocaleKey()),
	).With(logger.Component("cmd.validate"))

	validator.InitializeDefaultRules()

	if *listRules {
		for _, name := range validator.Default().Names() {
			fmt.Fprintln(stdout, name)
		}
		return exitOK
	}

	if *schemaFile == "" {
		fmt.Fprintln(stderr, "validate: -schemas is required")
		fs.Usage()
		return exitUsage
	}

	schema, err := pickSchema(*schemaFile, *schemaName)
	if err != nil {
		log.Error("cannot load schema", logger.Error(err))
		return exitUsage
	}

	opts := []validator.Option{
		validator.WithConfig(cfg.Validator),
		validator.WithLogger(log),
	}
	if cfg.I18nDir != "" {
		tr, err := loadTranslator(ctx, cfg.I18nDir, cfg.Locale, log)
		if err != nil {
			log.Error("cannot load translations", logger.Error(err))
			return exitUsage
		}
		opts = append(opts, validator.WithTranslator(tr))
	}
	v := validator.New(opts...)

	files := fs.Args()
	if len(files) == 0 {
		files = []string{"-"}
	}

	ctx = i18n.SetLocale(ctx, cfg.Locale)
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")

	code := exitOK
	for _, name := range files {
		data, err := readDocument(name, stdin)
		if err != nil {
			log.Error("cannot read document", slog.String("file", name), logger.Error(err))
			return exitUsage
		}

		res := v.ValidateObject(ctx, schema, data)
		if !res.Success {
			code = exitInvalid
		}
		log.Debug("document validated",
			slog.String("file", name),
			logger.Schema(schema.Name()),
			logger.Count(len(res.Errors)),
			logger.Duration(res.Duration),
		)
		if err := enc.Encode(report{File: name, Result: res}); err != nil {
			log.Error("cannot write result", logger.Error(err))
			return exitUsage
		}
	}
	return code
}

func pickSchema(path, name string) (*validator.Schema, error) {
	schemas, err := validator.LoadSchemaFile(path)
	if err != nil {
		return nil, err
	}
	if name == "" {
		if len(schemas) != 1 {
			return nil, fmt.Errorf("%s defines %d schemas, choose one with -schema", path, len(schemas))
		}
		for _, s := range schemas {
			return s, nil
		}
	}
	schema, ok := schemas[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", validator.ErrUnknownSchema, name)
	}
	return schema, nil
}

func loadTranslator(ctx context.Context, dir, locale string, log *slog.Logger) (*i18n.Translator, error) {
	adapter := i18n.NewDirectoryAdapter(nil, dir).WithLogger(log)
	return i18n.NewTranslator(ctx, adapter,
		i18n.WithDefaultLanguage(locale),
		i18n.WithLogger(log),
	)
}

func readDocument(name string, stdin io.Reader) (map[string]any, error) {
	var r io.Reader = stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var data map[string]any
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return data, nil
}

func firstSet(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
