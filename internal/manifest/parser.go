package manifest

import (
	"encoding/json"
	"fmt"
	"os"
)

// ParsePackageJSON reads a package.json file and returns its identity fields.
func ParsePackageJSON(path string) (*PackageJSON, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	pkg, err := ParsePackageJSONBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return pkg, nil
}

// ParsePackageJSONBytes decodes package.json content.
func ParsePackageJSONBytes(data []byte) (*PackageJSON, error) {
	var pkg PackageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, err
	}
	return &pkg, nil
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
