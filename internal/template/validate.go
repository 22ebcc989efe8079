package template

import "fmt"

// Validate checks the invariants a resolved config must hold: a known
// package type and non-empty name and version. Version strings are not
// parsed.
func (c *PackageConfig) Validate() error {
	var errs []ValidationError

	if !c.Type.Valid() {
		errs = append(errs, ValidationError{Field: "type", Message: fmt.Sprintf("unknown package type %q (want library or application)", c.Type)})
	}
	if c.Name == "" {
		errs = append(errs, ValidationError{Field: "name", Message: "must not be empty"})
	}
	if c.Version == "" {
		errs = append(errs, ValidationError{Field: "version", Message: "must not be empty"})
	}
	if m := c.Bundles.MainModule; m != nil && m.EntryFile == "" {
		errs = append(errs, ValidationError{Field: "bundles.mainModule.entryFile", Message: "must not be empty"})
	}
	seen := make(map[string]bool)
	for _, aux := range c.Bundles.AuxiliaryModules {
		if seen[aux.Name] {
			errs = append(errs, ValidationError{Field: "bundles.auxiliaryModules", Message: "duplicate module name " + aux.Name})
		}
		seen[aux.Name] = true
	}

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}
