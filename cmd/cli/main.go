package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"caseflow/domain/servicecase"
	"caseflow/internal/batch"
	"caseflow/internal/config"
	"caseflow/internal/container"
	"caseflow/internal/report"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "caseflow",
		Short: "Caseflow CLI for repair-or-replace case decisions",
	}

	rootCmd.AddCommand(
		newProcessCmd(),
		newBatchCmd(),
		newRulesCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildContainer() (*container.Container, error) {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return container.New(cfg)
}

func newProcessCmd() *cobra.Command {
	var (
		deviceType string
		brand      string
		age        int
		fault      string
		asReport   bool
	)

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Decide a single service case",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildContainer()
			if err != nil {
				return err
			}
			defer c.Close()

			inputs := servicecase.CaseInputs{
				DeviceType:       deviceType,
				Brand:            brand,
				Age:              age,
				ErrorDescription: fault,
			}
			decision, err := c.CaseService.Process(context.Background(), inputs)
			if err != nil {
				return err
			}
			if asReport {
				fmt.Println(report.Markdown(inputs, decision, time.Now()))
				return nil
			}
			return printJSON(decision)
		},
	}

	cmd.Flags().StringVar(&deviceType, "type", "", "device category (cooktop, oven, dishwasher, ...)")
	cmd.Flags().StringVar(&brand, "brand", "", "device brand")
	cmd.Flags().IntVar(&age, "age", 0, "device age in years")
	cmd.Flags().StringVar(&fault, "fault", "", "fault description")
	cmd.Flags().BoolVar(&asReport, "report", false, "print a markdown report instead of JSON")
	cmd.MarkFlagRequired("type")
	cmd.MarkFlagRequired("brand")
	cmd.MarkFlagRequired("age")
	cmd.MarkFlagRequired("fault")
	return cmd
}

func newBatchCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Process a CSV or XLSX file of service cases",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildContainer()
			if err != nil {
				return err
			}
			defer c.Close()

			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()

			var cases []servicecase.CaseInputs
			switch strings.ToLower(filepath.Ext(file)) {
			case ".csv":
				cases, err = batch.ParseCSV(f)
			case ".xlsx":
				cases, err = batch.ParseXLSX(f)
			default:
				return fmt.Errorf("unsupported file type %q, expected .csv or .xlsx", filepath.Ext(file))
			}
			if err != nil {
				return err
			}

			jobID, err := c.Batch.Submit(context.Background(), cases)
			if err != nil {
				return err
			}

			// The manager runs in the background; poll until it finishes.
			for {
				job, ok := c.Batch.Job(jobID)
				if !ok {
					return fmt.Errorf("batch job %s disappeared", jobID)
				}
				if job.Status == batch.StatusCompleted {
					return printJSON(job)
				}
				time.Sleep(100 * time.Millisecond)
			}
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "path to a CSV or XLSX case file")
	cmd.MarkFlagRequired("file")
	return cmd
}

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Show the active business rule configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildContainer()
			if err != nil {
				return err
			}
			defer c.Close()
			return printJSON(c.CaseService.Rules())
		},
	}
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
