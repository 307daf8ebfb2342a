package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigJSON(t *testing.T) {
	path := writeConfig(t, "c.json", `{
		"view": "q3_clean",
		"input": {"path": "in.csv", "type": "csv"},
		"output": {"path": "out.parquet", "type": "parquet"},
		"type_aliases": {"boat": "MARINE"}
	}`)
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.View != "q3_clean" || cfg.Input.Path != "in.csv" || cfg.Output.Type != "parquet" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.TypeAliases["boat"] != "MARINE" {
		t.Fatalf("aliases: %v", cfg.TypeAliases)
	}
}

func TestLoadConfigTOML(t *testing.T) {
	path := writeConfig(t, "c.toml", `
view = "q3_clean"

[input]
path = "in.csv"

[output]
path = "out.csv"

[state_aliases]
"puerto rico" = "PUERTO RICO"
`)
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.View != "q3_clean" || cfg.Input.Path != "in.csv" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	rc := ruleConfig(cfg)
	if rc.StateAliases["PUERTO RICO"] != "PUERTO RICO" {
		t.Fatalf("state aliases not merged uppercased: %v", rc.StateAliases["PUERTO RICO"])
	}
}

func TestLoadConfigYAML(t *testing.T) {
	path := writeConfig(t, "c.yaml", `
view: q3_clean
input:
  path: in.csv
  type: csv
output:
  path: out.jsonl
  type: jsonl
`)
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.View != "q3_clean" || cfg.Output.Type != "jsonl" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestRuleConfigKeepsDefaults(t *testing.T) {
	rc := ruleConfig(Config{})
	if rc.TypeAliases["auto"] != "AUTOMOBILE" {
		t.Fatal("defaults lost")
	}
	if len(rc.DateLayouts) == 0 {
		t.Fatal("date layouts missing")
	}
}
