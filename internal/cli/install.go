package cli

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dchassin/plot-glm/pkg/errors"
	"github.com/dchassin/plot-glm/pkg/model"
)

// installCommand creates the install command. It copies the executable
// into the GridLAB-D shared tools directory so gridlabd can invoke it.
func (c *CLI) installCommand() *cobra.Command {
	var converter string

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install as a GridLAB-D tool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(converter)
		},
	}

	cmd.Flags().StringVar(&converter, "converter", model.DefaultConverter, "gridlabd executable")

	return cmd
}

// runInstall copies the running executable into
// $(gridlabd --version=install)/share/gridlabd.
func runInstall(converter string) error {
	out, err := exec.Command(converter, "--version=install").Output()
	if err != nil {
		return errors.Wrap(errors.ErrCodeConverterMissing, err,
			"cannot locate the %s install directory", converter)
	}
	root := strings.TrimSpace(string(out))
	if root == "" {
		return errors.New(errors.ErrCodeConverter, "%s reported an empty install directory", converter)
	}

	self, err := os.Executable()
	if err != nil {
		return err
	}

	dest := filepath.Join(root, "share", "gridlabd", filepath.Base(self))
	if err := copyExecutable(self, dest); err != nil {
		return fmt.Errorf("install failed: %w", err)
	}

	printSuccess("Installed %s", dest)
	return nil
}

// copyExecutable copies src to dst, preserving execute permissions.
func copyExecutable(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o755)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
