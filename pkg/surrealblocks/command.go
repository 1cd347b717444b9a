package surrealblocks

// Command is a parsed sub-command. Name matches the command-line word.
type Command interface {
	Name() string
}

type RunCommand struct{}

func (c *RunCommand) Name() string {
	return "run"
}

type MigrateCommand struct{}

func (c *MigrateCommand) Name() string {
	return "migrate"
}

// ExportCommand writes one document as an export file.
type ExportCommand struct {
	ID string
	// OutDir is the directory the file is written to. The file name is
	// derived from the document title.
	OutDir string
}

func (c *ExportCommand) Name() string {
	return "export"
}

// ImportCommand saves the export file at Path as a new document.
type ImportCommand struct {
	Path string
}

func (c *ImportCommand) Name() string {
	return "import"
}

type CatalogCommand struct{}

func (c *CatalogCommand) Name() string {
	return "catalog"
}
