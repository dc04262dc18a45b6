// Package catalog loads help-center and tour-package catalogs from YAML
// or JSON files and from DynamoDB.
package catalog

import (
	"bytes"
	_ "embed"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/letmevibethatforyou/tripsearch"
	"gopkg.in/yaml.v3"
)

//go:embed help.yaml
var defaultHelp []byte

// Help is a help-center catalog together with its synonym table.
type Help struct {
	Items    []tripsearch.Item   `yaml:"items"`
	Synonyms tripsearch.Synonyms `yaml:"synonyms"`
}

// DefaultHelp returns the built-in Spanish FAQ catalog.
func DefaultHelp() *Help {
	help, err := LoadHelp(bytes.NewReader(defaultHelp))
	if err != nil {
		panic(errors.Wrap(err, "embedded help catalog"))
	}
	return help
}

// LoadHelpFile reads a help catalog from path.
func LoadHelpFile(path string) (*Help, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open help catalog %s", path)
	}
	defer f.Close()

	help, err := LoadHelp(f)
	if err != nil {
		return nil, errors.Wrapf(err, "load help catalog %s", path)
	}
	return help, nil
}

// LoadHelp decodes and validates a help catalog. Items need a non-blank
// id and title, ids must be unique, and synonyms may only reference
// known ids.
func LoadHelp(r io.Reader) (*Help, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var help Help
	if err := dec.Decode(&help); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.WithSecondaryError(tripsearch.ErrInvalidCatalog, err)
	}

	seen := make(map[string]struct{}, len(help.Items))
	for i, item := range help.Items {
		if strings.TrimSpace(item.ID) == "" {
			return nil, errors.WithDetailf(tripsearch.ErrInvalidCatalog, "item %d has no id", i)
		}
		if strings.TrimSpace(item.Title) == "" {
			return nil, errors.WithDetailf(tripsearch.ErrInvalidCatalog, "item %q has no title", item.ID)
		}
		if _, dup := seen[item.ID]; dup {
			return nil, errors.WithDetailf(tripsearch.ErrDuplicateID, "item %q", item.ID)
		}
		seen[item.ID] = struct{}{}
	}
	for id := range help.Synonyms {
		if _, ok := seen[id]; !ok {
			return nil, errors.WithDetailf(tripsearch.ErrInvalidCatalog, "synonyms reference unknown item %q", id)
		}
	}

	return &help, nil
}
