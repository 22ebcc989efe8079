package manifest

import (
	"encoding/json"
	"fmt"
	"strings"
)

// PackageJSON holds the package.json fields the scaffolder reads.
type PackageJSON struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Description     string            `json:"description"`
	Author          Author            `json:"author"`
	Main            string            `json:"main,omitempty"`
	Dependencies    map[string]string `json:"dependencies,omitempty"`
	DevDependencies map[string]string `json:"devDependencies,omitempty"`
}

// Author is the package author. npm accepts both the "Name <email> (url)"
// string form and an object with name, email and url keys.
type Author struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	URL   string `json:"url,omitempty"`
}

// String renders the author in npm's single-string form.
func (a Author) String() string {
	var b strings.Builder
	b.WriteString(a.Name)
	if a.Email != "" {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "<%s>", a.Email)
	}
	if a.URL != "" {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "(%s)", a.URL)
	}
	return b.String()
}

// UnmarshalJSON accepts either a string or an object.
func (a *Author) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = Author{Name: s}
		return nil
	}

	type plain Author
	var obj plain
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("author must be a string or an object: %w", err)
	}
	*a = Author(obj)
	return nil
}
