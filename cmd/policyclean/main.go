package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	yaml "gopkg.in/yaml.v3"

	"github.com/insurekit/policyclean/pkg/io/csvio"
	"github.com/insurekit/policyclean/pkg/io/jsonlio"
	"github.com/insurekit/policyclean/pkg/io/parquetio"
	"github.com/insurekit/policyclean/pkg/policy"
	j "github.com/insurekit/policyclean/pkg/policyclean"
	"github.com/insurekit/policyclean/pkg/profile"
)

var version = "0.1.0-dev"

type Config struct {
	View  string `json:"view" toml:"view" yaml:"view"`
	Input struct {
		Path      string `json:"path" toml:"path" yaml:"path"`
		Type      string `json:"type" toml:"type" yaml:"type"` // csv|jsonl|parquet (default csv)
		Delimiter string `json:"delimiter" toml:"delimiter" yaml:"delimiter"`
	} `json:"input" toml:"input" yaml:"input"`
	Output struct {
		Path      string `json:"path" toml:"path" yaml:"path"`
		Type      string `json:"type" toml:"type" yaml:"type"` // csv|jsonl|parquet (default csv)
		Delimiter string `json:"delimiter" toml:"delimiter" yaml:"delimiter"`
	} `json:"output" toml:"output" yaml:"output"`
	// Extra alias table entries merged over the built-in rule tables.
	TypeAliases  map[string]string `json:"type_aliases" toml:"type_aliases" yaml:"type_aliases"`
	StateAliases map[string]string `json:"state_aliases" toml:"state_aliases" yaml:"state_aliases"`
}

func loadConfig(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch filepath.Ext(path) {
	case ".toml":
		err = toml.Unmarshal(b, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &cfg)
	default:
		err = json.Unmarshal(b, &cfg)
	}
	return cfg, err
}

func ruleConfig(cfg Config) policy.Config {
	rc := policy.DefaultConfig()
	for k, v := range cfg.TypeAliases {
		rc.TypeAliases[k] = v
	}
	for k, v := range cfg.StateAliases {
		// the state stage sees uppercased input
		rc.StateAliases[strings.ToUpper(k)] = strings.ToUpper(v)
	}
	return rc
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func main() {
	showVersion := flag.Bool("version", false, "Print version and exit")
	configPath := flag.String("config", "", "Path to cleaning config (JSON, TOML, or YAML)")
	chunkSize := flag.Int("chunk-size", 0, "Enable two-pass streaming with this many rows per chunk (CSV only). 0 disables streaming.")
	showProfile := flag.Bool("profile", false, "Print a profile of the raw dataset before cleaning")
	flag.Parse()

	if *showVersion {
		fmt.Println("policyclean", version)
		return
	}
	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "no config provided; nothing to do. try --config <file> or --version")
		os.Exit(2)
	}
	cfg, err := loadConfig(*configPath)
	if err != nil {
		fatal(err)
	}
	viewName := cfg.View
	if viewName == "" {
		viewName = "policies_clean"
	}
	rc := ruleConfig(cfg)
	ctx := context.Background()

	if *chunkSize > 0 {
		if err := runStreaming(ctx, cfg, rc, *chunkSize); err != nil {
			fatal(err)
		}
		return
	}

	raw, warnings, err := loadRaw(cfg)
	if err != nil {
		fatal(err)
	}
	if warnings != "" {
		fmt.Fprintln(os.Stderr, "input warnings:", warnings)
	}
	if *showProfile {
		col := profile.NewCollector(raw.Schema(), 5)
		col.ConsumeFrame(raw)
		fmt.Fprint(os.Stderr, col.ReportText())
	}

	n := policy.NewNormalizer(viewName, rc)
	view, err := n.Normalize(ctx, raw)
	if err != nil {
		fatal(err)
	}
	fmt.Fprintf(os.Stderr, "view %q: %d rows\n", view.Name(), view.Rows())
	fmt.Fprint(os.Stderr, n.Report())

	if err := writeView(cfg, view); err != nil {
		fatal(err)
	}
}

func loadRaw(cfg Config) (*j.Frame, string, error) {
	schema := policy.RawSchema()
	switch cfg.Input.Type {
	case "", "csv":
		delim := rune(0)
		if cfg.Input.Delimiter != "" {
			delim = rune(cfg.Input.Delimiter[0])
		}
		r, err := csvio.Open(cfg.Input.Path, csvio.ReaderOptions{HasHeader: true, Delimiter: delim})
		if err != nil {
			return nil, "", err
		}
		defer func() { _ = r.Close() }()
		f, err := r.ReadNamed(schema)
		if err != nil {
			return nil, "", err
		}
		return f, r.Warnings(), nil
	case "jsonl":
		r, err := jsonlio.Open(cfg.Input.Path, jsonlio.ReaderOptions{})
		if err != nil {
			return nil, "", err
		}
		defer func() { _ = r.Close() }()
		f, err := r.ReadAll(schema)
		return f, "", err
	case "parquet":
		f, err := parquetio.ReadAll(cfg.Input.Path, schema)
		return f, "", err
	default:
		return nil, "", fmt.Errorf("unsupported input type %q", cfg.Input.Type)
	}
}

func writeView(cfg Config, view *policy.View) error {
	switch cfg.Output.Type {
	case "", "csv":
		opt := csvio.WriterOptions{}
		if cfg.Output.Delimiter != "" {
			opt.Delimiter = rune(cfg.Output.Delimiter[0])
		}
		return csvio.WriteAll(cfg.Output.Path, view.Frame(), opt)
	case "jsonl":
		return view.WriteJSONL(cfg.Output.Path)
	case "parquet":
		return view.WriteParquet(cfg.Output.Path)
	default:
		return fmt.Errorf("unsupported output type %q", cfg.Output.Type)
	}
}

func runStreaming(ctx context.Context, cfg Config, rc policy.Config, chunkSize int) error {
	if cfg.Input.Type != "" && cfg.Input.Type != "csv" {
		return fmt.Errorf("streaming supports csv input, got %q", cfg.Input.Type)
	}
	if cfg.Output.Type != "" && cfg.Output.Type != "csv" {
		return fmt.Errorf("streaming supports csv output, got %q", cfg.Output.Type)
	}
	opt := csvio.ReaderOptions{HasHeader: true}
	if cfg.Input.Delimiter != "" {
		opt.Delimiter = rune(cfg.Input.Delimiter[0])
	}
	open := func() (j.ChunkSource, error) {
		sr, err := csvio.NewNamedStreamReader(cfg.Input.Path, opt, policy.RawSchema(), chunkSize)
		if err != nil {
			return nil, err
		}
		return sr, nil
	}
	wopt := csvio.WriterOptions{}
	if cfg.Output.Delimiter != "" {
		wopt.Delimiter = rune(cfg.Output.Delimiter[0])
	}
	sink, err := csvio.NewStreamWriter(cfg.Output.Path, policy.CleanSchema(), wopt)
	if err != nil {
		return err
	}
	rep, err := policy.NormalizeStream(ctx, rc, open, sink)
	if err != nil {
		return err
	}
	fmt.Fprint(os.Stderr, rep)
	return nil
}
