package generator

import (
	"bytes"
	"encoding/json"
	"sort"
)

const jsonIndent = "    "

// marshalJSON encodes v with four-space indentation and without HTML
// escaping, so author strings like "a <a@b.c>" stay readable. Map keys are
// sorted.
func marshalJSON(v interface{}, prefix string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent(prefix, jsonIndent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// packageJSONKeyOrder is the order top-level package.json keys are written
// in. Keys not listed follow, sorted.
var packageJSONKeyOrder = []string{
	"name",
	"description",
	"version",
	"author",
	"homepage",
	"license",
	"main",
	"types",
	"files",
	"scripts",
	"prettier",
	"dependencies",
	"devDependencies",
	"config",
	"browser",
}

// encodePackageJSON writes m as a package.json document with a stable,
// conventional top-level key order.
func encodePackageJSON(m map[string]interface{}) ([]byte, error) {
	rank := make(map[string]int, len(packageJSONKeyOrder))
	for i, k := range packageJSONKeyOrder {
		rank[k] = i
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, iKnown := rank[keys[i]]
		rj, jKnown := rank[keys[j]]
		switch {
		case iKnown && jKnown:
			return ri < rj
		case iKnown != jKnown:
			return iKnown
		default:
			return keys[i] < keys[j]
		}
	})

	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, k := range keys {
		key, err := marshalJSON(k, "")
		if err != nil {
			return nil, err
		}
		val, err := marshalJSON(m[k], jsonIndent)
		if err != nil {
			return nil, err
		}
		buf.WriteString(jsonIndent)
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(val)
		if i < len(keys)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}
