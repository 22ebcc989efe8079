package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkgtmpl/pkgtmpl/internal/branding"
	"github.com/pkgtmpl/pkgtmpl/internal/config"
	"github.com/pkgtmpl/pkgtmpl/internal/manifest"
	"github.com/pkgtmpl/pkgtmpl/internal/template"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Check " + branding.TemplateFile() + " and its manifest",
	Long: `Validate the template description of a project against its schema, and the
package.json it references (if any) against the manifest schema. The resolved
configuration is then checked for the fields generation needs.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		return runValidate(dir, cmd.OutOrStdout())
	},
}

func runValidate(dir string, out io.Writer) error {
	path := template.Path(dir)
	result, err := manifest.ValidateTemplateFile(path)
	if err != nil {
		return err
	}
	if !printIssues(out, path, result) {
		return fmt.Errorf("%s is invalid", path)
	}

	ref, err := manifestRef(path)
	if err != nil {
		return err
	}
	if ref != "" {
		if !filepath.IsAbs(ref) {
			ref = filepath.Join(dir, ref)
		}
		result, err := manifest.ValidatePackageJSONFile(ref)
		if err != nil {
			return err
		}
		if !printIssues(out, ref, result) {
			return fmt.Errorf("%s is invalid", ref)
		}
	}

	loaded, err := template.Load(dir, template.LoadOptions{DefaultAuthor: config.DefaultAuthor()})
	if err != nil {
		return err
	}

	cfg := loaded.Config
	fmt.Fprintf(out, "%s: ok (%s %s@%s, %d auxiliary file(s))\n", path, cfg.Type, cfg.Name, cfg.Version, len(loaded.AuxiliaryFiles))
	return nil
}

// manifestRef returns the manifest key of the template description at path.
func manifestRef(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	var f struct {
		Manifest string `yaml:"manifest"`
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return "", fmt.Errorf("parsing %s: %w", path, err)
	}
	return f.Manifest, nil
}

func printIssues(out io.Writer, path string, result *manifest.ValidationResult) bool {
	if result.Valid {
		return true
	}
	fmt.Fprintf(out, "%s:\n", path)
	for _, issue := range result.Issues {
		fmt.Fprintf(out, "  %s\n", issue)
	}
	return false
}
