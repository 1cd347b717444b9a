package surrealblocks

import (
	"context"
	"fmt"
)

// Main runs the surrealblocks command line with args, excluding the program name.
func Main(ctx context.Context, args []string) error {
	cmd, config, err := Parse(args)
	if err != nil {
		return fmt.Errorf("failed to parse configuration: %w", err)
	}

	app, err := New(config)
	if err != nil {
		return fmt.Errorf("failed to create app: %w", err)
	}
	defer app.Close()

	switch c := cmd.(type) {
	case *MigrateCommand:
		if err := app.Migrate(ctx, c); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	case *RunCommand:
		if err := app.Run(ctx, c); err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case *ExportCommand:
		if err := app.Export(ctx, c); err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
	case *ImportCommand:
		if err := app.Import(ctx, c); err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
	case *CatalogCommand:
		if err := app.Catalog(ctx, c); err != nil {
			return fmt.Errorf("catalog failed: %w", err)
		}
	default:
		return fmt.Errorf("unknown command: %s", cmd.Name())
	}
	return nil
}
