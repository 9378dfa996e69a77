package main

import (
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"pkg.jsn.cam/talentfixtures/internal/catalog"
	"pkg.jsn.cam/talentfixtures/internal/config"
	"pkg.jsn.cam/talentfixtures/internal/generate"
	"pkg.jsn.cam/talentfixtures/internal/output"
)

type generateOptions struct {
	configPath string
	generator  string
	count      int
	output     string
	seed       uint64
	catalog    string
	progress   bool
}

func (o *generateOptions) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&o.configPath, "config", "c", "", "YAML config file")
	f.StringVarP(&o.generator, "generator", "g", "", "Generator name (see 'fixturegen list')")
	f.IntVarP(&o.count, "count", "n", 0, "Number of records (default 500)")
	f.StringVarP(&o.output, "output", "o", "", "Output file, .gz for gzip (default args.json)")
	f.Uint64Var(&o.seed, "seed", 0, "Random seed; 0 picks one and logs it")
	f.StringVar(&o.catalog, "catalog", "", "bbolt catalog file to record the run in")
	f.BoolVar(&o.progress, "progress", false, "Show a progress bar")
}

// resolve merges flags over the config file over the defaults
func (o *generateOptions) resolve(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return cfg, err
		}
	}

	f := cmd.Flags()
	if f.Changed("generator") {
		cfg.Generator = o.generator
	}
	if f.Changed("count") {
		cfg.Count = o.count
	}
	if f.Changed("output") {
		cfg.Output = o.output
	}
	if f.Changed("seed") {
		cfg.Seed = o.seed
	}
	if f.Changed("catalog") {
		cfg.Catalog = o.catalog
	}
	return cfg, cfg.Validate()
}

func runGenerate(cmd *cobra.Command, o *generateOptions) error {
	cfg, err := o.resolve(cmd)
	if err != nil {
		return err
	}

	var store catalog.Store
	if cfg.Catalog != "" {
		s, err := catalog.Open(cfg.Catalog)
		if err != nil {
			return err
		}
		defer s.Close()
		store = s
	}

	opts, done := progressOptions(o.progress, cfg.Count, "generating "+cfg.Generator)
	run, res, err := generate.Run(cmd.Context(), cfg, store, opts)
	done()
	if err != nil {
		return err
	}

	if store != nil {
		printf(cmd, "Run %s recorded (seed %d)\n", run.ID, run.Seed)
	}
	printf(cmd, "✅ Generated %s with %d entries\n", res.Path, res.Records)
	return nil
}

// progressOptions returns write options that drive a progress bar on stderr
// when enabled, and a func that finishes the bar.
func progressOptions(enabled bool, count int, desc string) (output.Options, func()) {
	if !enabled {
		return output.Options{}, func() {}
	}

	bar := progressbar.NewOptions(count,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(desc),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
	opts := output.Options{OnRecord: func() { _ = bar.Add(1) }}
	return opts, func() { _ = bar.Finish() }
}
