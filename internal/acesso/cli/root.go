package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/gruas/acesso/internal/acesso/catalog"
	"github.com/gruas/acesso/internal/acesso/service"
	"github.com/gruas/acesso/pkg/slogx"
	"github.com/spf13/cobra"
)

// Version is stamped by the build.
var Version = "v0.1.0"

type app struct {
	catalogPath string
	output      string
}

func NewRootCommand() *cobra.Command {
	return NewRootCommandWithIO(os.Stdout, os.Stderr)
}

func NewRootCommandWithIO(out, errOut io.Writer) *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "acessoctl",
		Short:         "Inspect the access catalog and mint development credentials",
		Long:          "acessoctl validates catalog files, resolves roles, previews menus and guard decisions offline, and generates keys and tokens for local development.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	cmd.PersistentFlags().StringVar(&a.catalogPath, "catalog", os.Getenv("ACESSO_CATALOG_FILE"), "catalog file (default: embedded catalog)")
	cmd.PersistentFlags().StringVarP(&a.output, "output", "o", "text", "output format: text or json")

	cmd.AddCommand(
		newValidateCmd(a),
		newRolesCmd(a),
		newResolveCmd(a),
		newMenuCmd(a),
		newGuardCmd(a),
		newKeygenCmd(),
		newDevTokenCmd(),
		newSubjectKeyCmd(),
	)
	return cmd
}

func (a *app) model() (*catalog.Model, error) {
	m, err := catalog.LoadModel(a.catalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return m, nil
}

func (a *app) service() (*service.AccessService, error) {
	m, err := a.model()
	if err != nil {
		return nil, err
	}
	return service.NewAccessService(m, nil, slogx.Discard()), nil
}

func (a *app) jsonOutput() (bool, error) {
	switch a.output {
	case "text", "":
		return false, nil
	case "json":
		return true, nil
	default:
		return false, fmt.Errorf("unsupported output format %q", a.output)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
