package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/vsinha/compras/pkg/domain/entities"
)

// FileName is the manifest name written by the scenario generator.
const FileName = "manifest.yaml"

// Manifest names every input file of a purchase run.
type Manifest struct {
	Catalog           CatalogSource  `yaml:"catalog"`
	SideTables        SideTables     `yaml:"side_tables"`
	ActiveContracts   []CompanyTable `yaml:"active_contracts,omitempty"`
	ExcludedContracts []CompanyTable `yaml:"excluded_contracts,omitempty"`

	dir string
}

// CatalogSource points at the REPO workbook.
type CatalogSource struct {
	Path  string `yaml:"path"`
	Sheet string `yaml:"sheet,omitempty"`
}

// SideTables holds one pasted-table file per supplier figure. Empty means not supplied.
type SideTables struct {
	MexicoAvailability     string `yaml:"reserv_mexico,omitempty"`
	MexicoBackorder        string `yaml:"bo_mexico,omitempty"`
	PolifiltroAvailability string `yaml:"reserv_polifiltro,omitempty"`
	PolifiltroBackorder    string `yaml:"bo_polifiltro,omitempty"`
	PolifiltroPrice        string `yaml:"precio_polifiltro,omitempty"`
}

// Path returns the file configured for a side table kind.
func (s SideTables) Path(kind entities.SideTableKind) string {
	switch kind {
	case entities.MexicoAvailability:
		return s.MexicoAvailability
	case entities.MexicoBackorder:
		return s.MexicoBackorder
	case entities.PolifiltroAvailability:
		return s.PolifiltroAvailability
	case entities.PolifiltroBackorder:
		return s.PolifiltroBackorder
	case entities.PolifiltroPrice:
		return s.PolifiltroPrice
	default:
		return ""
	}
}

// CompanyTable is one company's contract file.
type CompanyTable struct {
	Company string `yaml:"company,omitempty"`
	Path    string `yaml:"path"`
}

// Load reads a manifest file. Relative paths inside it resolve against its directory.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "manifest: read %s", path)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, eris.Wrapf(err, "manifest: %s", path)
	}
	m.dir = filepath.Dir(path)
	return m, nil
}

// Parse decodes manifest YAML and fills in default company labels.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, eris.Wrap(err, "manifest: decode yaml")
	}
	if strings.TrimSpace(m.Catalog.Path) == "" {
		return nil, eris.New("manifest: catalog.path is required")
	}

	for i := range m.ActiveContracts {
		if strings.TrimSpace(m.ActiveContracts[i].Company) == "" {
			m.ActiveContracts[i].Company = fmt.Sprintf("Empresa_%d", i+1)
		}
	}
	for i := range m.ExcludedContracts {
		if strings.TrimSpace(m.ExcludedContracts[i].Company) == "" {
			m.ExcludedContracts[i].Company = fmt.Sprintf("Excluir_%d", i+1)
		}
	}
	return &m, nil
}

// Save writes the manifest as YAML.
func (m *Manifest) Save(path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return eris.Wrap(err, "manifest: encode yaml")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "manifest: write %s", path)
	}
	return nil
}

// Resolve turns a path from the manifest into one usable from the working directory.
func (m *Manifest) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || m.dir == "" {
		return path
	}
	return filepath.Join(m.dir, path)
}
