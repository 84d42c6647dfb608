package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/joho/godotenv"
	"github.com/zclconf/go-cty/cty"
)

// Environment variables consulted by ApplyEnv.
const (
	EnvBaseDir  = "AW_BASE_DIR"
	EnvDatabase = "AW_DATABASE"
	EnvSchema   = "AW_SCHEMA"
	EnvVerbose  = "AW_VERBOSE"
)

// DefaultFileName is the config file picked up by the command line when present.
const DefaultFileName = "adventureworks.hcl"

// Sources holds the resolved path of every source file, one per entity.
type Sources struct {
	Territory            string
	ProductCategories    string
	ProductSubcategories string
	Products             string
	Customers            string
	Sales                []string // imported in order, one commit per file
	Returns              string
}

// Config represents the resolved locations used by the schema initializer and the importer.
type Config struct {
	BaseDir      string
	DatabasePath string
	SchemaPath   string // empty means the embedded schema
	Verbose      bool
	Sources      Sources
}

// SalesYears lists the yearly sales files shipped with the dataset.
var SalesYears = []string{"2020", "2021", "2022"}

// DefaultConfig returns the conventional layout rooted at baseDir:
// database/ for the store and data/ (data/sales/ for yearly sales) for the sources.
func DefaultConfig(baseDir string) *Config {
	dataDir := filepath.Join(baseDir, "data")
	salesDir := filepath.Join(dataDir, "sales")

	sales := make([]string, len(SalesYears))
	for i, year := range SalesYears {
		sales[i] = filepath.Join(salesDir, fmt.Sprintf("AdventureWorks Sales Data %s.csv", year))
	}

	return &Config{
		BaseDir:      baseDir,
		DatabasePath: filepath.Join(baseDir, "database", "adventureworks.db"),
		Sources: Sources{
			Territory:            filepath.Join(dataDir, "AdventureWorks Territory Lookup.csv"),
			ProductCategories:    filepath.Join(dataDir, "AdventureWorks Product Categories Lookup.csv"),
			ProductSubcategories: filepath.Join(dataDir, "AdventureWorks Product Subcategories Lookup.csv"),
			Products:             filepath.Join(dataDir, "AdventureWorks Product Lookup.csv"),
			Customers:            filepath.Join(dataDir, "AdventureWorks Customer Lookup.csv"),
			Sales:                sales,
			Returns:              filepath.Join(dataDir, "AdventureWorks Returns Data.csv"),
		},
	}
}

type fileSources struct {
	Territory            string   `hcl:"territory,optional"`
	ProductCategories    string   `hcl:"product_categories,optional"`
	ProductSubcategories string   `hcl:"product_subcategories,optional"`
	Products             string   `hcl:"products,optional"`
	Customers            string   `hcl:"customers,optional"`
	Sales                []string `hcl:"sales,optional"`
	Returns              string   `hcl:"returns,optional"`
}

type fileConfig struct {
	BaseDir  string       `hcl:"base_dir,optional"`
	Database string       `hcl:"database,optional"`
	Schema   string       `hcl:"schema,optional"`
	Verbose  bool         `hcl:"verbose,optional"`
	Sources  *fileSources `hcl:"sources,block"`
}

// Load reads the configuration from the given HCL file.
// Every attribute is optional. base_dir is resolved against the directory holding the file,
// every other relative path against base_dir.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(content, path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file: %s", diags.Error())
	}

	var raw fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config: %s", diags.Error())
	}

	baseDir := resolve(filepath.Dir(path), raw.BaseDir)
	cfg := DefaultConfig(baseDir)
	cfg.Verbose = raw.Verbose
	override(&cfg.DatabasePath, baseDir, raw.Database)
	override(&cfg.SchemaPath, baseDir, raw.Schema)

	if s := raw.Sources; s != nil {
		override(&cfg.Sources.Territory, baseDir, s.Territory)
		override(&cfg.Sources.ProductCategories, baseDir, s.ProductCategories)
		override(&cfg.Sources.ProductSubcategories, baseDir, s.ProductSubcategories)
		override(&cfg.Sources.Products, baseDir, s.Products)
		override(&cfg.Sources.Customers, baseDir, s.Customers)
		override(&cfg.Sources.Returns, baseDir, s.Returns)
		if len(s.Sales) > 0 {
			cfg.Sources.Sales = make([]string, len(s.Sales))
			for i, p := range s.Sales {
				cfg.Sources.Sales[i] = resolve(baseDir, p)
			}
		}
	}

	return cfg, nil
}

// LoadDotEnv loads a .env file from the working directory if one exists.
// Variables already set in the environment win.
func LoadDotEnv() error {
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}
	if err := godotenv.Load(); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// DefaultBaseDir returns AW_BASE_DIR, or the working directory when it is unset.
// It only picks the root of the default layout; an explicit base directory or config file wins over it.
func DefaultBaseDir() string {
	if base := os.Getenv(EnvBaseDir); base != "" {
		return base
	}
	return "."
}

// ApplyEnv overrides cfg with the AW_DATABASE, AW_SCHEMA and AW_VERBOSE environment variables.
// Relative paths resolve against cfg.BaseDir.
func ApplyEnv(cfg *Config) (*Config, error) {
	override(&cfg.DatabasePath, cfg.BaseDir, os.Getenv(EnvDatabase))
	override(&cfg.SchemaPath, cfg.BaseDir, os.Getenv(EnvSchema))
	if v := os.Getenv(EnvVerbose); v != "" {
		verbose, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value %q: %w", EnvVerbose, v, err)
		}
		cfg.Verbose = verbose
	}
	return cfg, nil
}

// Export writes the configuration to the specified file in HCL format.
func Export(path string, cfg *Config) error {
	f := hclwrite.NewEmptyFile()
	root := f.Body()

	root.SetAttributeValue("base_dir", cty.StringVal(cfg.BaseDir))
	root.SetAttributeValue("database", cty.StringVal(cfg.DatabasePath))
	if cfg.SchemaPath != "" {
		root.SetAttributeValue("schema", cty.StringVal(cfg.SchemaPath))
	}
	root.SetAttributeValue("verbose", cty.BoolVal(cfg.Verbose))
	root.AppendNewline()

	sources := root.AppendNewBlock("sources", nil).Body()
	sources.SetAttributeValue("territory", cty.StringVal(cfg.Sources.Territory))
	sources.SetAttributeValue("product_categories", cty.StringVal(cfg.Sources.ProductCategories))
	sources.SetAttributeValue("product_subcategories", cty.StringVal(cfg.Sources.ProductSubcategories))
	sources.SetAttributeValue("products", cty.StringVal(cfg.Sources.Products))
	sources.SetAttributeValue("customers", cty.StringVal(cfg.Sources.Customers))
	sources.SetAttributeValue("sales", stringList(cfg.Sources.Sales))
	sources.SetAttributeValue("returns", cty.StringVal(cfg.Sources.Returns))

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	_, err = file.Write(f.Bytes())
	if err != nil {
		return fmt.Errorf("failed to write config to file: %w", err)
	}

	return nil
}

func stringList(values []string) cty.Value {
	if len(values) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, len(values))
	for i, v := range values {
		vals[i] = cty.StringVal(v)
	}
	return cty.ListVal(vals)
}

func resolve(base, path string) string {
	if path == "" {
		return base
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

func override(dst *string, base, value string) {
	if value != "" {
		*dst = resolve(base, value)
	}
}
