package menu

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Discover lists the menu files directly under dir, sorted by name. The
// scan is not recursive. Files produced by an earlier run (processed
// documents and index.json) are skipped so that re-running over the same
// directory never feeds the tool its own output.
func Discover(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	paths := make([]string, 0, len(matches))
	for _, path := range matches {
		if isOwnOutput(filepath.Base(path)) {
			continue
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func isOwnOutput(name string) bool {
	if name == indexFileName {
		return true
	}
	return strings.HasPrefix(name, "menu.") && strings.HasSuffix(name, "-processed.json")
}

// Load parses the menu document at path. Numbers are kept as json.Number
// so that untouched parts of the document round-trip byte-exact instead
// of turning integer prices into floats.
func Load(path string) (map[string]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open menu: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.UseNumber()

	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse menu %s: %w", path, err)
	}
	return doc, nil
}

// OutputPath returns where the processed counterpart of the menu at path
// is written: a menu.<name>-processed.json file in the same directory.
func OutputPath(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(path), "menu."+stem+"-processed.json")
}

// WriteDocument serializes doc as indented JSON to path. HTML escaping is
// off: translations may legitimately contain ampersands and angle
// brackets once entity references are decoded.
func WriteDocument(path string, doc any) error {
	var buf strings.Builder
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode menu: %w", err)
	}
	if err := os.WriteFile(path, []byte(buf.String()), 0644); err != nil {
		return fmt.Errorf("failed to write menu: %w", err)
	}
	return nil
}
