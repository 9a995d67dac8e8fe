package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/couchcryptid/coastal-data-etl/internal/domain"
	"github.com/couchcryptid/coastal-data-etl/internal/export"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "siteyear",
		Short:        "Inspect and export the coastal survey site-year catalog",
		SilenceUsage: true,
	}
	root.AddCommand(newListCmd(), newGetCmd(), newValidateCmd(), newExportCmd())
	return root
}

func newListCmd() *cobra.Command {
	var region, year string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List site-years, optionally filtered by region or year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := domain.Filter(region, year)
			if asJSON {
				return export.Write(cmd.OutOrStdout(), export.FormatJSON, out)
			}
			return printTable(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVar(&region, "region", "", "only site-years in this region")
	cmd.Flags().StringVar(&year, "year", "", "only site-years surveyed in this year")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id|code>",
		Short: "Show one site-year by catalog ID or code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := domain.Resolve(args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(s)
		},
	}
}

func newValidateCmd() *cobra.Command {
	var pointsPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check catalog invariants and, optionally, that survey records resolve",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := domain.ValidateCatalog(); err != nil {
				return fmt.Errorf("catalog: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "catalog: %d site-years OK\n", len(domain.IDs()))

			if pointsPath == "" {
				return nil
			}
			n, err := validatePoints(pointsPath)
			if err != nil {
				return fmt.Errorf("points: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "points: %d records OK\n", n)
			return nil
		},
	}
	cmd.Flags().StringVar(&pointsPath, "points", "", "JSON array of raw survey records to check against the catalog")
	return cmd
}

// validatePoints parses and enriches every record in a fixture file and
// reports all failures.
func validatePoints(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return 0, fmt.Errorf("decode %s: %w", path, err)
	}

	var errs []error
	for i, rec := range records {
		p, err := domain.ParseRawEvent(domain.RawEvent{Value: rec})
		if err == nil {
			_, err = domain.EnrichSurveyPoint(p)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("record %d: %w", i, err))
		}
	}
	return len(records), errors.Join(errs...)
}

func newExportCmd() *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the catalog as json, json.gz, yaml, csv, parquet or sqlite",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := resolveFormat(format, out)
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				return export.Write(cmd.OutOrStdout(), f, domain.All())
			}
			if err := export.WriteFile(cmd.Context(), out, f, domain.All()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d site-years to %s (%s)\n", len(domain.IDs()), out, f)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "output format; inferred from --out when empty")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path; stdout when empty")
	return cmd
}

func resolveFormat(format, out string) (export.Format, error) {
	if format != "" {
		return export.ParseFormat(format)
	}
	if out == "" || out == "-" {
		return export.FormatJSON, nil
	}
	return export.FormatFromPath(out)
}

func printTable(w io.Writer, records []domain.SiteYear) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tREGION\tSITE\tYEAR\tCODE\tMHW\tMLW\tMTL")
	for _, s := range records {
		mtl := "-"
		if s.MTL != nil {
			mtl = strconv.FormatFloat(*s.MTL, 'f', 2, 64)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%.2f\t%.2f\t%s\n", s.ID, s.Region, s.Site, s.Year, s.Code, s.MHW, s.MLW, mtl)
	}
	return tw.Flush()
}
