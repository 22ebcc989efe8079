package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/pkgtmpl/pkgtmpl/internal/branding"
	"github.com/pkgtmpl/pkgtmpl/internal/config"
	"github.com/pkgtmpl/pkgtmpl/internal/fsutil"
	"github.com/pkgtmpl/pkgtmpl/internal/template"
	"github.com/spf13/cobra"
)

// npm package names, optionally scoped.
var namePattern = regexp.MustCompile(`^(@[a-z0-9-~][a-z0-9-._~]*/)?[a-z0-9-~][a-z0-9-._~]*$`)

type initOptions struct {
	Dir          string
	Type         string
	Name         string
	Version      string
	Description  string
	Author       string
	FromManifest string
	UserGuide    bool
	Force        bool
	Year         int
}

var initOpts initOptions

func init() {
	initCmd.Flags().StringVar(&initOpts.Type, "type", string(template.Library), "Package type (library, application)")
	initCmd.Flags().StringVar(&initOpts.Name, "name", "", "Package name (default: directory name)")
	initCmd.Flags().StringVar(&initOpts.Version, "version", "0.1.0", "Package version")
	initCmd.Flags().StringVar(&initOpts.Description, "description", "", "Short description")
	initCmd.Flags().StringVar(&initOpts.Author, "author", "", "Author (default from config)")
	initCmd.Flags().StringVar(&initOpts.FromManifest, "from-manifest", "", "Take identity from this package.json instead of literal values")
	initCmd.Flags().BoolVar(&initOpts.UserGuide, "user-guide", false, "Generate a typedoc user guide setup")
	initCmd.Flags().BoolVar(&initOpts.Force, "force", false, "Overwrite an existing "+branding.TemplateFile())
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create a starter " + branding.TemplateFile(),
	Long: `Create a starter ` + branding.TemplateFile() + ` in the project directory
(default: current directory). The directory is created if needed.

With --from-manifest the description references an existing package.json and
leaves the identity fields empty so they are read from it at generation time.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := initOpts
		opts.Dir = "."
		if len(args) == 1 {
			opts.Dir = args[0]
		}
		if opts.Author == "" {
			opts.Author = config.DefaultAuthor()
		}
		opts.Year = time.Now().Year()
		return runInit(opts, cmd.OutOrStdout())
	},
}

func runInit(opts initOptions, out io.Writer) error {
	absDir, err := filepath.Abs(opts.Dir)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", opts.Dir, err)
	}

	typ, err := template.ParsePackageType(opts.Type)
	if err != nil {
		return err
	}

	path := template.Path(absDir)
	if _, err := os.Stat(path); err == nil && !opts.Force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", path, err)
	}

	f, err := starterFile(opts, absDir, typ)
	if err != nil {
		return err
	}

	data, err := template.Marshal(f)
	if err != nil {
		return err
	}
	if err := (fsutil.OS{}).WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	fmt.Fprintf(out, "Created %s\n", path)
	fmt.Fprintf(out, "Run '%s generate %s' to scaffold the package.\n", branding.CLIName(), opts.Dir)
	return nil
}

func starterFile(opts initOptions, absDir string, typ template.PackageType) (*template.File, error) {
	cfg := template.New(absDir, typ)
	cfg.UserGuide = opts.UserGuide
	cfg.CopyrightYear = opts.Year
	cfg.Bundles.MainModule = &template.MainModule{EntryFile: "./index.ts"}

	if opts.FromManifest != "" {
		return &template.File{PackageConfig: *cfg, Manifest: filepath.ToSlash(opts.FromManifest)}, nil
	}

	name := opts.Name
	if name == "" {
		name = filepath.Base(absDir)
	}
	if err := validateName(name); err != nil {
		return nil, err
	}

	cfg.Name = name
	cfg.Version = opts.Version
	cfg.ShortDescription = opts.Description
	cfg.Author = opts.Author
	return &template.File{PackageConfig: *cfg}, nil
}

func validateName(name string) error {
	if len(name) > 214 || !namePattern.MatchString(name) {
		return fmt.Errorf("invalid package name %q: must be a lowercase npm package name, optionally @scope/ prefixed", name)
	}
	return nil
}
