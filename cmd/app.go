package cmd

import (
	"context"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/lex00/existential-go/config"
	"github.com/lex00/existential-go/discover"
	"github.com/lex00/existential-go/errors"
	"github.com/lex00/existential-go/expand"
	"github.com/lex00/existential-go/generate"
	"github.com/lex00/existential-go/lint"
	"github.com/lex00/existential-go/logger"
)

// App implements every command interface over the real packages. Config
// is loaded on first use, walking up from Dir.
type App struct {
	// Dir is the working directory; empty means the process directory.
	Dir string

	cfg     *config.Config
	cfgPath string
}

// NewApp returns an App rooted at dir.
func NewApp(dir string) *App {
	return &App{Dir: dir}
}

// Config returns the loaded configuration.
func (a *App) Config() (*config.Config, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}
	dir := a.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "getting current directory")
		}
		dir = wd
	}
	cfg, path, err := config.LoadConfigFrom(dir)
	if err != nil {
		return nil, err
	}
	a.cfg, a.cfgPath = cfg, path
	a.log().Debugw("config loaded", logger.FieldConfig, path)
	return cfg, nil
}

func (a *App) log() *zap.SugaredLogger {
	return logger.ComponentLogger("existgen")
}

func (a *App) generator(opts GenerateOptions) (*generate.Generator, error) {
	cfg, err := a.Config()
	if err != nil {
		return nil, err
	}
	suffix := cfg.OutputSuffix
	if opts.Suffix != "" {
		suffix = opts.Suffix
	}
	runtime := cfg.RuntimeImport
	if opts.RuntimePackage != "" {
		runtime = opts.RuntimePackage
	}
	return generate.New(generate.Options{
		Paths:          a.resolve(opts.Paths),
		Dir:            a.Dir,
		Suffix:         suffix,
		RuntimePackage: runtime,
		Walk:           cfg.ParseOptions(),
	}), nil
}

// resolve makes relative paths relative to Dir. Package patterns are left
// to the package loader, which resolves them from Dir.
func (a *App) resolve(paths []string) []string {
	if a.Dir == "" {
		return paths
	}
	out := make([]string, len(paths))
	for i, p := range paths {
		if filepath.IsAbs(p) {
			out[i] = p
			continue
		}
		joined := filepath.Join(a.Dir, p)
		if _, err := os.Stat(joined); err != nil {
			out[i] = p
			continue
		}
		out[i] = joined
	}
	return out
}

// Generate implements Generator.
func (a *App) Generate(ctx context.Context, opts GenerateOptions) (*generate.Result, []string, error) {
	g, err := a.generator(opts)
	if err != nil {
		return nil, nil, err
	}
	res, err := g.Run(ctx)
	if err != nil {
		return nil, nil, err
	}
	if opts.DryRun {
		return res, nil, res.Err()
	}
	changed, err := g.Write(res)
	return res, changed, err
}

// Check implements Checker.
func (a *App) Check(ctx context.Context, opts GenerateOptions) (*generate.Result, []generate.Stale, error) {
	g, err := a.generator(opts)
	if err != nil {
		return nil, nil, err
	}
	res, err := g.Run(ctx)
	if err != nil {
		return nil, nil, err
	}
	if err := res.Err(); err != nil {
		return res, nil, err
	}
	return res, g.Check(res), nil
}

// Describe implements Describer.
func (a *App) Describe(ctx context.Context, path string) ([]expand.Descriptor, error) {
	cfg, err := a.Config()
	if err != nil {
		return nil, err
	}
	paths := a.resolve([]string{path})
	f, err := discover.DiscoverFile(paths[0])
	if err != nil {
		return nil, err
	}
	g := generate.New(generate.Options{RuntimePackage: cfg.RuntimeImport})
	out := g.ExpandFile(f)
	if out.Failed() {
		return nil, errors.Join(out.Diagnostics...)
	}
	return out.Descriptors, nil
}

// Lint implements Linter.
func (a *App) Lint(ctx context.Context, opts LintOptions) ([]lint.Issue, error) {
	cfg, err := a.Config()
	if err != nil {
		return nil, err
	}
	minSeverity, err := lint.ParseSeverity(cfg.Lint.MinSeverity)
	if err != nil {
		return nil, err
	}
	lintCfg := &lint.Config{DisabledRules: cfg.Lint.DisabledRules, MinSeverity: minSeverity}
	rules := lint.DefaultRules(cfg.RuntimeImport)
	walk := cfg.ParseOptions()

	var issues []lint.Issue
	for _, p := range a.resolve(opts.Paths) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		info, err := os.Stat(p)
		if err != nil {
			return nil, errors.Wrapf(err, "linting %s", p)
		}

		if opts.Fix {
			var results []lint.FixResult
			if info.IsDir() {
				results, err = lint.FixDir(p, walk, rules, lintCfg)
			} else {
				results, err = lint.FixFile(p, rules, lintCfg)
			}
			if err != nil {
				return nil, err
			}
			for _, r := range results {
				if r.Fixed {
					a.log().Infow("fixed", logger.FieldFile, r.Issue.File, logger.FieldLine, r.Issue.Line)
				}
			}
		}

		var found []lint.Issue
		if info.IsDir() {
			found, err = lint.LintDir(p, walk, rules, lintCfg)
		} else {
			found, err = lint.LintFile(p, rules, lintCfg)
		}
		if err != nil {
			return nil, err
		}
		issues = append(issues, found...)
	}
	return issues, nil
}

// Init implements Initializer.
func (a *App) Init(ctx context.Context, opts InitOptions) (string, error) {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	if a.Dir != "" && !filepath.IsAbs(dir) {
		dir = filepath.Join(a.Dir, dir)
	}
	path := filepath.Join(dir, config.ConfigFilename)
	if _, err := os.Stat(path); err == nil && !opts.Force {
		return "", errors.WithHint(
			errors.Newf("%s already exists", path),
			"use --force to overwrite it")
	}
	if err := config.SaveConfigTo(config.Default(), path); err != nil {
		return "", err
	}
	return path, nil
}
