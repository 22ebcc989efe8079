package generator

import "github.com/pkgtmpl/pkgtmpl/internal/template"

// toolchainDevDependencies are the build and test tools every scaffolded
// package needs. Entries in the config's devTime map replace them.
var toolchainDevDependencies = map[string]string{
	"@types/jest":            "^29.2.4",
	"@types/node":            "^18.11.9",
	"del-cli":                "^5.0.0",
	"jest":                   "^29.3.1",
	"jest-environment-jsdom": "^29.3.1",
	"prettier":               "^2.8.0",
	"ts-jest":                "^29.0.3",
	"ts-loader":              "^9.4.2",
	"ts-node":                "^10.9.1",
	"typescript":             "^4.9.3",
	"webpack":                "^5.75.0",
	"webpack-cli":            "^5.0.0",
}

// bundleFileName is the file webpack emits for the main entry.
func bundleFileName(name string) string {
	return "dist/" + name + ".js"
}

// buildPackageJSON assembles the package.json document for cfg, with the
// config overrides merged last.
func buildPackageJSON(cfg *template.PackageConfig) map[string]interface{} {
	scripts := map[string]interface{}{
		"clean":         "del-cli dist",
		"build":         "yarn build:dev",
		"build:dev":     "yarn clean && webpack --mode development",
		"build:prod":    "yarn clean && webpack --mode production",
		"test":          "jest -i",
		"test-coverage": "jest -i --collect-coverage",
	}
	if cfg.UserGuide {
		scripts["doc"] = "typedoc"
	}

	devDeps := make(map[string]interface{}, len(toolchainDevDependencies)+len(cfg.Dependencies.DevTime))
	for name, v := range toolchainDevDependencies {
		devDeps[name] = v
	}
	if cfg.UserGuide {
		devDeps["typedoc"] = "^0.23.21"
	}
	if cfg.Type == template.Application {
		devDeps["html-webpack-plugin"] = "^5.5.0"
	}
	for name, v := range cfg.Dependencies.DevTime {
		devDeps[name] = v
	}

	deps := make(map[string]interface{})
	for name, v := range cfg.RuntimeDependencies() {
		deps[name] = v
	}

	doc := map[string]interface{}{
		"name":            cfg.Name,
		"description":     cfg.ShortDescription,
		"version":         cfg.Version,
		"license":         "MIT",
		"main":            bundleFileName(cfg.Name),
		"types":           "src/index.ts",
		"files":           []interface{}{"dist", "src/**/*.ts", "!src/tests"},
		"scripts":         scripts,
		"prettier":        map[string]interface{}{"semi": false, "singleQuote": true, "tabWidth": 4},
		"dependencies":    deps,
		"devDependencies": devDeps,
	}
	if cfg.Author != "" {
		doc["author"] = cfg.Author
	}
	if cfg.TestConfigURL != "" {
		doc["config"] = map[string]interface{}{"testConfigUrl": cfg.TestConfigURL}
	}
	if cfg.Type == template.Application {
		// Emitted by html-webpack-plugin from the staged index.html.
		doc["main"] = "dist/index.html"
		delete(doc, "types")
	}

	return deepMerge(doc, cfg.PackageJSONOverrides)
}

// deepMerge merges src into dst and returns dst. Nested objects merge key by
// key; any other value replaces the destination value, and a nil value
// removes the key. src is copied, never aliased.
func deepMerge(dst, src map[string]interface{}) map[string]interface{} {
	for k, v := range src {
		if v == nil {
			delete(dst, k)
			continue
		}
		srcMap, srcIsMap := asMap(v)
		dstMap, dstIsMap := asMap(dst[k])
		if srcIsMap && dstIsMap {
			dst[k] = deepMerge(dstMap, srcMap)
			continue
		}
		if srcIsMap {
			dst[k] = deepMerge(make(map[string]interface{}, len(srcMap)), srcMap)
			continue
		}
		dst[k] = v
	}
	return dst
}

func asMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case map[string]string:
		out := make(map[string]interface{}, len(m))
		for k, s := range m {
			out[k] = s
		}
		return out, true
	default:
		return nil, false
	}
}
