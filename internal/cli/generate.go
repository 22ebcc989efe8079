package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/pkgtmpl/pkgtmpl/internal/branding"
	"github.com/pkgtmpl/pkgtmpl/internal/config"
	"github.com/pkgtmpl/pkgtmpl/internal/fsutil"
	"github.com/pkgtmpl/pkgtmpl/internal/generator"
	"github.com/pkgtmpl/pkgtmpl/internal/materialize"
	"github.com/pkgtmpl/pkgtmpl/internal/template"
	"github.com/spf13/cobra"
)

type generateOptions struct {
	Dir          string
	FromManifest string
	Type         string
	TemplateDir  string
	Aux          []string
	AuxSet       bool
}

var generateOpts generateOptions

func init() {
	generateCmd.Flags().StringVar(&generateOpts.FromManifest, "from-manifest", "", "Build the configuration from this package.json instead of "+branding.TemplateFile())
	generateCmd.Flags().StringVar(&generateOpts.Type, "type", string(template.Library), "Package type used with --from-manifest (library, application)")
	generateCmd.Flags().StringVar(&generateOpts.TemplateDir, "template-dir", "", "Project-relative staging directory (default from config)")
	generateCmd.Flags().StringSliceVar(&generateOpts.Aux, "aux", nil, "Auxiliary files to copy, in order (overrides the template)")
	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate [dir]",
	Short: "Generate package boilerplate from " + branding.TemplateFile(),
	Long: `Generate package boilerplate for a project.

The configuration is read from ` + branding.TemplateFile() + ` in the project directory
(default: current directory), or built from an existing package.json with
--from-manifest. Sources are rendered into the staging directory and
src/auto-generated.ts; the auxiliary files are then copied from the staging
directory to the project root, overwriting existing copies.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := generateOpts
		opts.Dir = "."
		if len(args) == 1 {
			opts.Dir = args[0]
		}
		opts.AuxSet = cmd.Flags().Changed("aux")
		if opts.TemplateDir == "" {
			opts.TemplateDir = config.TemplateDir()
		}
		return runGenerate(cmd.Context(), opts, cmd.OutOrStdout(), logger)
	},
}

func runGenerate(ctx context.Context, opts generateOptions, out io.Writer, logger hclog.Logger) error {
	if opts.TemplateDir != "" && !filepath.IsLocal(opts.TemplateDir) {
		return fmt.Errorf("--template-dir %q must be a path inside the project", opts.TemplateDir)
	}

	cfg, aux, err := resolveConfig(opts)
	if err != nil {
		return err
	}
	if opts.AuxSet {
		aux = opts.Aux
	}

	gen, err := generator.New(generator.Options{
		TemplateDir:      opts.TemplateDir,
		UserGuideBaseURL: config.UserGuideBaseURL(),
		DeveloperDocURL:  config.DeveloperDocURL(),
		SourceURL:        config.SourceURL(),
		Writer:           fsutil.OS{},
		Logger:           logger,
	})
	if err != nil {
		return err
	}

	m := materialize.New(materialize.Options{
		Generator:   gen,
		FS:          fsutil.OS{},
		TemplateDir: gen.TemplateDir(),
		Logger:      logger,
	})

	result, err := m.Run(ctx, cfg, aux)
	printCopied(out, result)
	if err != nil {
		return describeFailure(err)
	}
	fmt.Fprintf(out, "%s@%s: %d auxiliary file(s) in %s\n", cfg.Name, cfg.Version, len(result.Copied), result.TargetDirectory)
	return nil
}

func resolveConfig(opts generateOptions) (*template.PackageConfig, []string, error) {
	if opts.FromManifest != "" {
		typ, err := template.ParsePackageType(opts.Type)
		if err != nil {
			return nil, nil, err
		}
		manifestPath := opts.FromManifest
		if !filepath.IsAbs(manifestPath) {
			manifestPath = filepath.Join(opts.Dir, manifestPath)
		}
		cfg, err := template.FromManifest(opts.Dir, manifestPath, typ)
		if err != nil {
			return nil, nil, err
		}
		return cfg, template.DefaultAuxiliaryFiles(cfg), nil
	}

	loaded, err := template.Load(opts.Dir, template.LoadOptions{DefaultAuthor: config.DefaultAuthor()})
	if err != nil {
		if errors.Is(err, template.ErrTemplateNotFound) {
			return nil, nil, fmt.Errorf("%w (run '%s init' to create one, or pass --from-manifest)", err, branding.CLIName())
		}
		return nil, nil, err
	}
	return loaded.Config, loaded.AuxiliaryFiles, nil
}

func printCopied(out io.Writer, result *materialize.Result) {
	for _, name := range result.Copied {
		fmt.Fprintf(out, "  copied %s\n", name)
	}
}

// describeFailure adds a hint to materialization errors. The original error
// stays in the chain for errors.Is/As.
func describeFailure(err error) error {
	var copyErr *materialize.CopyError
	switch {
	case errors.As(err, &copyErr) && copyErr.Reason == materialize.ReasonSourceMissing:
		return fmt.Errorf("%w (is %s listed among the generated files?)", err, copyErr.File)
	case errors.Is(err, materialize.ErrDirectory):
		return fmt.Errorf("%w (the project directory must exist and be writable)", err)
	default:
		return err
	}
}
