package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/gruas/acesso/internal/acesso/domain"
	"github.com/gruas/acesso/internal/acesso/service"
	"github.com/spf13/cobra"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate and compile the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.model()
			if err != nil {
				return err
			}
			surfaces := make([]string, 0, 2)
			for _, s := range m.Surfaces() {
				surfaces = append(surfaces, string(s))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "catalog ok: %d roles, %d permissions, %d routes, %d legacy redirects, surfaces: %s\n",
				len(m.Resolver.Roles()), len(m.Universe), len(m.Routes.Rules()), len(m.Legacy.Redirects()), strings.Join(surfaces, ", "))
			return nil
		},
	}
}

func newRolesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "roles",
		Short: "List catalog roles, highest rank first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, err := a.jsonOutput()
			if err != nil {
				return err
			}
			svc, err := a.service()
			if err != nil {
				return err
			}
			roles := svc.Roles(commandContext(cmd))
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), roles)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ROLE\tRANK\tHOME\tDESCRIPTION")
			for _, r := range roles {
				fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", r.Name, r.Rank, r.HomePage, r.Description)
			}
			return tw.Flush()
		},
	}
}

func newResolveCmd(a *app) *cobra.Command {
	var surface string
	cmd := &cobra.Command{
		Use:   "resolve ROLE",
		Short: "Print the grants a role resolves to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, err := a.jsonOutput()
			if err != nil {
				return err
			}
			svc, err := a.service()
			if err != nil {
				return err
			}
			perms, err := svc.Permissions(commandContext(cmd), args[0], domain.Surface(surface))
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), perms)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "role: %s (rank %d, home %s)\n", perms.Role, perms.Rank, perms.HomePage)
			if surface != "" {
				fmt.Fprintf(out, "surface: %s\n", surface)
			}
			if len(perms.Grants) == 0 {
				fmt.Fprintln(out, "no grants")
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PERMISSION\tLEVEL")
			for _, g := range perms.Grants {
				fmt.Fprintf(tw, "%s\t%s\n", g.Permission, g.Level)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&surface, "surface", "", "narrow to a surface (dashboard or pwa)")
	return cmd
}

func newMenuCmd(a *app) *cobra.Command {
	var (
		surface string
		active  string
	)
	cmd := &cobra.Command{
		Use:   "menu ROLE",
		Short: "Print the navigation tree a role sees",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, err := a.jsonOutput()
			if err != nil {
				return err
			}
			svc, err := a.service()
			if err != nil {
				return err
			}
			view, err := svc.Menu(commandContext(cmd), args[0], domain.Surface(surface), active)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), view)
			}
			out := cmd.OutOrStdout()
			if !view.Visible {
				fmt.Fprintf(out, "nothing visible on %s\n", view.Surface)
				return nil
			}
			activeIDs := make(map[string]bool, len(view.ActiveTrail))
			for _, id := range view.ActiveTrail {
				activeIDs[id] = true
			}
			view.Menu.Walk(func(e domain.MenuEntry, path []string) bool {
				mark := " "
				if activeIDs[e.ID] {
					mark = "*"
				}
				indent := strings.Repeat("  ", len(path)-1)
				if e.Route != "" {
					fmt.Fprintf(out, "%s%s %s  %s\n", mark, indent, e.Label, e.Route)
				} else {
					fmt.Fprintf(out, "%s%s %s\n", mark, indent, e.Label)
				}
				return true
			})
			fmt.Fprintf(out, "first route: %s\n", view.FirstRoute)
			return nil
		},
	}
	cmd.Flags().StringVar(&surface, "surface", string(domain.SurfaceDashboard), "menu surface (dashboard or pwa)")
	cmd.Flags().StringVar(&active, "active", "", "mark the trail leading to this path")
	return cmd
}

func newGuardCmd(a *app) *cobra.Command {
	var surface string
	cmd := &cobra.Command{
		Use:   "guard ROLE ROUTE",
		Short: "Show the guard decision for a role opening a route",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, err := a.jsonOutput()
			if err != nil {
				return err
			}
			svc, err := a.service()
			if err != nil {
				return err
			}
			d, err := svc.Guard(commandContext(cmd), principal(args[0]), args[1], domain.Surface(surface))
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), d)
			}
			out := cmd.OutOrStdout()
			switch d.Kind {
			case domain.DecisionAllow:
				fmt.Fprintf(out, "allow %s (pattern %s)\n", d.Route, d.MatchedPattern)
			case domain.DecisionRedirect:
				fmt.Fprintf(out, "redirect %s -> %s\n", d.Route, d.CanonicalRoute)
			default:
				fmt.Fprintf(out, "deny %s: %s\n", d.Route, d.Reason)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&surface, "surface", "", "restrict grants to a surface (dashboard or pwa)")
	return cmd
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func principal(role string) service.Principal {
	return service.Principal{Subject: "acessoctl", Role: role}
}
