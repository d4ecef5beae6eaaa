package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pet-adoption-shelter/internal/adapters/auth/jwtauth"
	"pet-adoption-shelter/internal/app"
	"pet-adoption-shelter/internal/domain/listings"
	"pet-adoption-shelter/internal/domain/requests"
	"pet-adoption-shelter/internal/domain/shelter"
	"pet-adoption-shelter/internal/ports/auth"
)

func capacityCmd() *cobra.Command {
	c := &cobra.Command{Use: "capacity", Short: "Show or change the shelter capacity"}
	c.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Show capacity and occupied places",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				capacity, err := a.Shelter.GetShelterCapacity(ctx)
				if err != nil {
					return err
				}
				occupied, err := a.Listings.CurrentShelterSize(ctx)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(shelter.CapacityResponse{Capacity: capacity, Occupied: occupied})
				}
				fmt.Printf("capacity: %d\noccupied: %d\n", capacity, occupied)
				return nil
			})
		},
	})
	c.AddCommand(&cobra.Command{
		Use:   "set <n>",
		Short: "Set capacity (owner only, use --actor)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("capacity must be an integer: %w", err)
			}
			capacity, err := shelter.ParseCapacity(n)
			if err != nil {
				return err
			}
			return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				if err := a.Shelter.SetShelterCapacity(ctx, auth.ParsePrincipal(actor()), capacity); err != nil {
					return err
				}
				fmt.Printf("capacity set to %d\n", capacity)
				return nil
			})
		},
	})
	return c
}

func employeesCmd() *cobra.Command {
	c := &cobra.Command{Use: "employees", Short: "Manage shelter employees (owner only)"}
	c.AddCommand(&cobra.Command{
		Use:   "add <principal>",
		Short: "Add an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				e, err := a.Shelter.AddEmployee(ctx, auth.ParsePrincipal(actor()), auth.ParsePrincipal(args[0]))
				if err != nil {
					return err
				}
				fmt.Printf("added employee %s\n", e.Principal)
				return nil
			})
		},
	})
	c.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List employees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				items, err := a.Shelter.ListEmployees(ctx, auth.ParsePrincipal(actor()))
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(shelter.ToEmployeeResponses(items))
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"Principal", "Added By", "Added At"})
				for _, e := range items {
					tw.AppendRow(table.Row{e.Principal, e.AddedBy, e.AddedAt.Format(time.RFC3339)})
				}
				tw.Render()
				return nil
			})
		},
	})
	return c
}

func listingsCmd() *cobra.Command {
	c := &cobra.Command{Use: "listings", Short: "Inspect adoption listings"}
	c.AddCommand(&cobra.Command{
		Use:   "available",
		Short: "List animals available for adoption",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				items, err := a.Listings.GetAvailableForAdoption(ctx)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(listings.ToListingResponses(items))
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"ID", "Name", "Species", "Breed", "Gender", "Age", "Listed By"})
				for _, l := range items {
					tw.AppendRow(table.Row{l.ID, l.Animal.Name, l.Animal.Species, l.Animal.Breed, l.Animal.Gender, l.Animal.Age, l.ListedBy})
				}
				tw.Render()
				return nil
			})
		},
	})
	c.AddCommand(&cobra.Command{
		Use:   "requests <listing-id>",
		Short: "List adoption requests for a listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				items, err := a.Requests.ListByListing(ctx, args[0])
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(requests.ToRequestResponses(items))
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"ID", "Status", "Submitted By", "Submitted At"})
				for _, r := range items {
					tw.AppendRow(table.Row{r.ID, r.Status, r.SubmittedBy, r.SubmittedAt.Format(time.RFC3339)})
				}
				tw.Render()
				return nil
			})
		},
	})
	return c
}

func configCmd() *cobra.Command {
	c := &cobra.Command{Use: "config", Short: "Inspect configuration"}
	c.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration (secrets redacted)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			out, err := cfg.YAML()
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(out)
			return err
		},
	})
	return c
}

func tokenCmd() *cobra.Command {
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "token <principal>",
		Short: "Sign an HS256 bearer token with auth.jwt_secret (local testing)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			tok, err := jwtauth.Sign(viper.GetString("auth.jwt_secret"), args[0], jwt.RegisteredClaims{
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			})
			if err != nil {
				return err
			}
			fmt.Println(tok)
			return nil
		},
	}
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	return cmd
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
