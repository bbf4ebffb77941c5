package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dchassin/plot-glm/pkg/errors"
	"github.com/dchassin/plot-glm/pkg/pipeline"
)

const (
	// autotestDir is the folder scanned for test models.
	autotestDir = "autotest"

	// reportFile is the validation report written to the working directory.
	reportFile = "validate.txt"
)

// validateOpts holds the command-line flags for the validate command.
type validateOpts struct {
	workdir   string
	converter string
	noCache   bool
}

// validateCommand creates the validate command. It runs every GLM file
// under <workdir>/autotest through the full pipeline and writes a report
// to validate.txt.
func (c *CLI) validateCommand() *cobra.Command {
	opts := validateOpts{workdir: "."}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Run the autotest models and write a validation report",
		Long: `Validate renders every GLM file found in the autotest folder of the
working directory. Models whose PNG output already exists are counted as
found and skipped. Results are written to validate.txt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.workdir, "workdir", "W", opts.workdir, "working directory")
	cmd.Flags().StringVar(&opts.converter, "converter", "", "converter executable (default gridlabd)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// testResult is the outcome of one autotest model.
type testResult struct {
	File    string
	Status  string // "OK", "FOUND", "FAILED", or "EXCEPTION"
	Details string // converter output or error text
}

// runValidate walks the autotest folder, renders each model, and writes
// the report. It returns an error when any test fails so the process
// exits nonzero.
func (c *CLI) runValidate(ctx context.Context, opts *validateOpts) error {
	testdir := filepath.Join(opts.workdir, autotestDir)
	if _, err := os.Stat(testdir); err != nil {
		return errors.New(errors.ErrCodeFileNotFound, "no %s folder in %s", autotestDir, opts.workdir)
	}

	printInfo("Validating in folder %s", testdir)

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	files, err := listGLMFiles(testdir)
	if err != nil {
		return err
	}

	results := make([]testResult, 0, len(files))
	for _, file := range files {
		results = append(results, c.runTest(ctx, runner, testdir, file, opts))
	}

	reportPath := filepath.Join(opts.workdir, reportFile)
	report, err := os.Create(reportPath)
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	defer report.Close()
	writeReport(report, results)

	return printSummary(results, reportPath)
}

// listGLMFiles returns the GLM file names in dir, sorted.
func listGLMFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".glm") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// runTest renders one autotest model. An existing PNG output counts as
// found; a converter failure counts as FAILED; any other error counts as
// EXCEPTION.
func (c *CLI) runTest(ctx context.Context, runner *pipeline.Runner, testdir, file string, opts *validateOpts) testResult {
	output := filepath.Join(testdir, strings.TrimSuffix(file, ".glm")+".png")
	if _, err := os.Stat(output); err == nil {
		printDetail("Testing %s... FOUND", file)
		return testResult{File: file, Status: "FOUND"}
	}

	sp := newSpinnerWithContext(ctx, fmt.Sprintf("Testing %s", file))
	sp.Start()

	result, err := runner.Execute(ctx, pipeline.Options{
		Input:     file,
		Workdir:   testdir,
		Converter: opts.converter,
		Formats:   []string{pipeline.FormatPNG},
	})
	if err != nil {
		status := "EXCEPTION"
		if code := errors.GetCode(err); code == errors.ErrCodeConverter || code == errors.ErrCodeConverterMissing {
			status = "FAILED"
		}
		sp.StopWithError(fmt.Sprintf("Testing %s... %s", file, status))
		return testResult{File: file, Status: status, Details: err.Error()}
	}

	if werr := os.WriteFile(output, result.Artifacts[pipeline.FormatPNG], 0o644); werr != nil {
		sp.StopWithError(fmt.Sprintf("Testing %s... EXCEPTION", file))
		return testResult{File: file, Status: "EXCEPTION", Details: werr.Error()}
	}

	sp.StopWithSuccess(fmt.Sprintf("Testing %s... OK", file))
	return testResult{File: file, Status: "OK", Details: string(result.ConverterOutput)}
}

// writeReport writes the per-test sections to w, one block per test.
func writeReport(w io.Writer, results []testResult) {
	fmt.Fprintf(w, "*** RUN %s %s\n\n", uuid.NewString(), time.Now().Format(time.RFC3339))
	for _, r := range results {
		if r.Status == "FOUND" {
			continue
		}
		fmt.Fprintf(w, "*** TEST %s %s\n", r.File, r.Status)
		if r.Details != "" {
			fmt.Fprintln(w, strings.TrimRight(r.Details, "\n"))
		}
		fmt.Fprintln(w)
	}
}

// printSummary prints the tested/failed counts and pass percentage, and
// returns an error when any test failed.
func printSummary(results []testResult, reportPath string) error {
	tested := len(results)
	failed := 0
	for _, r := range results {
		if r.Status == "FAILED" || r.Status == "EXCEPTION" {
			failed++
		}
	}

	printDetail("%d tested", tested)
	printDetail("%d failed", failed)
	printFile(reportPath)

	if tested == 0 {
		printWarning("no GLM files found")
		return nil
	}

	passing := 100 - (100*failed)/tested
	if failed > 0 {
		printError("%d%% passing", passing)
		return fmt.Errorf("%d of %d tests failed", failed, tested)
	}
	printSuccess("%d%% passing", passing)
	return nil
}
