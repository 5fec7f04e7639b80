package config

// Category is a named, ordered group of package names (e.g. "Visualization").
// The same package may appear in more than one category.
type Category struct {
	Name     string
	Packages []string
}

// Catalog is the ordered list of categories to install.
// In YAML it is written as a mapping of category name to package list;
// the mapping order of the file is the install order.
type Catalog struct {
	Categories []Category
}

// ExtraSpec is an additional pinned install triggered by a catalog package.
// - Name: distribution name passed to pip (e.g. torch).
// - Version: exact version pin, installed as name==version when set.
// - IndexURL: alternate package index, passed as --index-url when set.
type ExtraSpec struct {
	Name     string `yaml:"name"`
	Version  string `yaml:"version,omitempty"`
	IndexURL string `yaml:"index_url,omitempty"`
}

// Extras maps a catalog package name to the extra installs it triggers.
// It replaces hardcoded special cases with data.
type Extras map[string][]ExtraSpec

// Config is the top-level structure returned after loading a catalog file.
type Config struct {
	Catalog Catalog `yaml:"catalog"`
	Extras  Extras  `yaml:"extras,omitempty"`
}

// Settings are the runtime options of a run, resolved from command-line
// flags and PYSETUP_* environment variables.
type Settings struct {
	Python      string   // Python interpreter used as "<python> -m pip"
	CatalogPath string   // YAML catalog file; empty means the embedded default
	LogPath     string   // Failure log, overwritten on every run
	ReportPath  string   // Optional JSON run report
	Wheelhouse  string   // Optional directory, archive or URL of pre-built wheels
	Categories  []string // Restrict the run to these categories when non-empty
	ResolveDeps bool     // Run the "pip show" dependency pre-pass
	NoClear     bool     // Skip clearing the terminal at startup
}
