// Package cli builds the cobra commands behind the createdb, importdata and adventureworks binaries.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/darianmavgo/awload/config"
	"github.com/darianmavgo/awload/importer"
	"github.com/darianmavgo/awload/schema"
)

type options struct {
	configPath string
	baseDir    string
	verbose    bool
}

func (o *options) bind(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&o.configPath, "config", "c", "",
		"HCL config file (default: "+config.DefaultFileName+" in the base directory, if present)")
	cmd.PersistentFlags().StringVar(&o.baseDir, "base-dir", "", "root of the database/ and data/ directories (default: working directory)")
	cmd.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "enable verbose logging")
}

// load resolves the configuration: .env, then the config file, then AW_* variables, then flags.
// The base directory comes from --base-dir, else AW_BASE_DIR, else the working directory; a config
// file found there (or named by --config) sets its own base_dir.
func (o *options) load() (*config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}

	base := o.baseDir
	if base == "" {
		base = config.DefaultBaseDir()
	}

	path := o.configPath
	if path == "" {
		candidate := filepath.Join(base, config.DefaultFileName)
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		}
	}

	var cfg *config.Config
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	} else {
		cfg = config.DefaultConfig(base)
	}

	cfg, err := config.ApplyEnv(cfg)
	if err != nil {
		return nil, err
	}
	if o.verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

func runCreateDB(cmd *cobra.Command, cfg *config.Config) error {
	ddl, err := schema.ReadDDL(cfg.SchemaPath)
	if err != nil {
		return err
	}
	if err := schema.Create(cmd.Context(), cfg.DatabasePath, ddl, cfg.Verbose); err != nil {
		return fmt.Errorf("error creating database: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Database created successfully at %s\n", cfg.DatabasePath)
	return nil
}

func runImport(cmd *cobra.Command, cfg *config.Config) error {
	_, err := importer.Run(cmd.Context(), cfg, cmd.OutOrStdout())
	return err
}

func newCommand(use, short string, run func(*cobra.Command, *config.Config) error) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:          use,
		Short:        short,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			return run(cmd, cfg)
		},
	}
	opts.bind(cmd)
	return cmd
}

// NewCreateDBCommand returns the schema initializer: it deletes the database file and
// recreates every table.
func NewCreateDBCommand() *cobra.Command {
	return newCommand("createdb", "Recreate the AdventureWorks database with an empty schema", runCreateDB)
}

// NewImportCommand returns the data importer: it loads every source file into the database
// created by createdb, in foreign key order.
func NewImportCommand() *cobra.Command {
	return newCommand("importdata", "Import the AdventureWorks source files", runImport)
}

// NewRootCommand returns the adventureworks command grouping both stages.
func NewRootCommand() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "adventureworks",
		Short:        "Build the AdventureWorks SQLite database from its source files",
		SilenceUsage: true,
	}
	opts.bind(root)

	sub := func(use, short string, run func(*cobra.Command, *config.Config) error) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, err := opts.load()
				if err != nil {
					return err
				}
				return run(cmd, cfg)
			},
		}
	}

	root.AddCommand(
		sub("createdb", "Recreate the database with an empty schema", runCreateDB),
		sub("import", "Import the source files into the database", runImport),
		sub("run", "Recreate the database and import every source file", func(cmd *cobra.Command, cfg *config.Config) error {
			if err := runCreateDB(cmd, cfg); err != nil {
				return err
			}
			return runImport(cmd, cfg)
		}),
		newInitConfigCommand(opts),
	)
	return root
}

func newInitConfigCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "init-config [file]",
		Short: "Write the resolved configuration as HCL",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			path := config.DefaultFileName
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.Export(path, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", path)
			return nil
		},
	}
}
