/**
* Name:        sheetctl
* Description: 운영용 CLI (시트 초기화, 점검 목록/보고서 내보내기, 자격 증명 점검, 미완료 제출 조회)
* Workflow:    설정 로드 -> bootstrap.Build -> 하위 명령 실행
 */
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/xuri/excelize/v2"

	"VroDaptar_InspectionBackend/internal/bootstrap"
	"VroDaptar_InspectionBackend/internal/config"
	"VroDaptar_InspectionBackend/internal/gcp"
	"VroDaptar_InspectionBackend/internal/inspection"
	"VroDaptar_InspectionBackend/internal/models"
	"VroDaptar_InspectionBackend/internal/sheets"
)

var v = viper.New()

func main() {
	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "sheetctl",
		Short:         "VRO Daptar inspection store maintenance",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("backend", "", "store backend (google or sqlite), overrides STORE_BACKEND")
	root.PersistentFlags().String("sqlite", "", "sqlite database path, overrides SQLITE_PATH")
	_ = v.BindPFlag("STORE_BACKEND", root.PersistentFlags().Lookup("backend"))
	_ = v.BindPFlag("SQLITE_PATH", root.PersistentFlags().Lookup("sqlite"))

	root.AddCommand(initCmd(), listCmd(), dumpCmd(), checkCmd(), pendingCmd())
	return root
}

func loadDeps(ctx context.Context) (*config.Config, *bootstrap.Deps, error) {
	cfg, err := config.LoadWith(v)
	if err != nil {
		return nil, nil, err
	}
	deps, err := bootstrap.Build(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, deps, nil
}

func newService(cfg *config.Config, deps *bootstrap.Deps) (*inspection.Service, error) {
	return inspection.NewService(inspection.ServiceConfig{
		Store:         deps.Store,
		Uploader:      deps.Uploader,
		Journal:       deps.Journal,
		DriveFolderID: cfg.DriveFolderID,
		ScratchDir:    cfg.ScratchDir,
	})
}

func initCmd() *cobra.Command {
	var seed bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create missing sheets and write their header rows",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, deps, err := loadDeps(ctx)
			if err != nil {
				return err
			}
			defer deps.Close()

			initialized, err := bootstrap.InitSheets(ctx, deps.Store, seed)
			if err != nil {
				return err
			}
			if len(initialized) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "all sheets already initialized")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "initialized: %s\n", strings.Join(initialized, ", "))
			return nil
		},
	}
	cmd.Flags().BoolVar(&seed, "seed", false, "add sample questions to a newly created Master_Q")
	return cmd
}

func listCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print every inspection, or write them to an .xlsx file with --out",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, deps, err := loadDeps(ctx)
			if err != nil {
				return err
			}
			defer deps.Close()
			svc, err := newService(cfg, deps)
			if err != nil {
				return err
			}

			records, err := svc.ListInspections(ctx)
			if err != nil {
				return err
			}
			headers := inspectionHeaders()
			if out != "" {
				return writeWorkbook(out, headers, records)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, strings.Join(headers, "\t"))
			for _, rec := range records {
				row := make([]string, len(headers))
				for i, h := range headers {
					row[i] = rec[h]
				}
				fmt.Fprintln(tw, strings.Join(row, "\t"))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write an .xlsx file instead of printing")
	return cmd
}

func dumpCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "dump <inspection-id>",
		Short: "Export one inspection report as .xlsx",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, deps, err := loadDeps(ctx)
			if err != nil {
				return err
			}
			defer deps.Close()
			svc, err := newService(cfg, deps)
			if err != nil {
				return err
			}

			id := args[0]
			if out == "" {
				out = "Report_" + id + ".xlsx"
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := svc.ExportInspection(ctx, id, f); err != nil {
				f.Close()
				os.Remove(out)
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default Report_<id>.xlsx)")
	return cmd
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify credentials and that the store and Drive folder are reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			w := cmd.OutOrStdout()
			cfg, deps, err := loadDeps(ctx)
			if err != nil {
				return err
			}
			defer deps.Close()

			if cfg.StoreBackend == config.BackendGoogle {
				sa, err := gcp.LoadServiceAccount(cfg.CredentialsJSON, cfg.CredentialsFile)
				if err != nil {
					return fmt.Errorf("credentials: %w", err)
				}
				fmt.Fprintf(w, "service account: %s (project %s)\n", sa.ClientEmail, sa.ProjectID)
			}

			questions, err := deps.Store.ReadRange(ctx, models.MasterQuestionRange)
			if err != nil {
				return fmt.Errorf("row store: %w", err)
			}
			fmt.Fprintf(w, "row store (%s): %d question(s) in Master_Q\n", cfg.StoreBackend, len(questions))

			if deps.Drive != nil {
				files, err := deps.Drive.ListRecent(ctx, 5)
				if err != nil {
					return fmt.Errorf("drive: %w", err)
				}
				fmt.Fprintf(w, "drive: %d recent file(s) visible\n", len(files))
				for _, f := range files {
					fmt.Fprintf(w, "  %s  %s\n", f.Id, f.Name)
				}
			}
			return nil
		},
	}
}

func pendingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "List submissions that never reached the completed stage",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, deps, err := loadDeps(ctx)
			if err != nil {
				return err
			}
			defer deps.Close()

			pending, err := deps.Journal.Incomplete(ctx)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSTAGE\tUPDATED\tDETAIL")
			for _, p := range pending {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.InspectionID, p.Stage, p.UpdatedAt.Format(models.TimestampLayout), p.Detail)
			}
			return tw.Flush()
		},
	}
}

func inspectionHeaders() []string {
	for _, l := range models.Layouts {
		if l.Title == "Inspections" {
			return l.Headers
		}
	}
	return nil
}

func writeWorkbook(path string, headers []string, records []sheets.Record) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, rec := range records {
		row := make([]any, len(headers))
		for j, h := range headers {
			row[j] = rec[h]
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}
