package catalog

import (
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/letmevibethatforyou/tripsearch"
	"gopkg.in/yaml.v3"
)

// LoadPackagesFile reads a package list from path.
func LoadPackagesFile(path string) ([]tripsearch.Package, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open package catalog %s", path)
	}
	defer f.Close()

	pkgs, err := LoadPackages(f)
	if err != nil {
		return nil, errors.Wrapf(err, "load package catalog %s", path)
	}
	return pkgs, nil
}

// LoadPackages decodes a YAML or JSON list of packages. JSON is accepted
// because it is a subset of YAML.
func LoadPackages(r io.Reader) ([]tripsearch.Package, error) {
	var pkgs []tripsearch.Package
	if err := yaml.NewDecoder(r).Decode(&pkgs); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.WithSecondaryError(tripsearch.ErrInvalidCatalog, err)
	}
	if err := validatePackages(pkgs); err != nil {
		return nil, err
	}
	return pkgs, nil
}

func validatePackages(pkgs []tripsearch.Package) error {
	seen := make(map[string]struct{}, len(pkgs))
	for i, p := range pkgs {
		if strings.TrimSpace(p.ID) == "" {
			return errors.WithDetailf(tripsearch.ErrInvalidCatalog, "package %d has no id", i)
		}
		if _, dup := seen[p.ID]; dup {
			return errors.WithDetailf(tripsearch.ErrDuplicateID, "package %q", p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}
