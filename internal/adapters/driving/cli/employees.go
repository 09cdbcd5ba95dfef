package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/docqa-labs/docqa-cli/internal/core/domain"
	"github.com/docqa-labs/docqa-cli/internal/core/services"
)

var employeesCmd = &cobra.Command{
	Use:   "employees [department]",
	Short: "List employees of a department from the roster",
	Args:  cobra.ExactArgs(1),
	RunE:  runEmployees,
}

func init() {
	rootCmd.AddCommand(employeesCmd)
}

func runEmployees(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	retriever, err := a.ingest.Retriever(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to build index: %w", err)
	}

	department := args[0]
	docs, err := retriever.Retrieve(cmd.Context(), department+" department employees", a.cfg.TopK)
	if err != nil {
		return fmt.Errorf("retrieval failed: %w", err)
	}

	records := services.ExtractRecords(docs, department)
	if len(records) == 0 {
		cmd.Printf("No employees found for %q.\n", department)
		return nil
	}

	printRecords(cmd, records)
	cmd.Printf("\n%d employee(s)\n", len(records))
	return nil
}

func printRecords(cmd *cobra.Command, records []domain.EmployeeRecord) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTITLE\tCATEGORY\tHIRED\tAGE\tEMAIL\tDEPARTMENT")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Name, r.Title, r.Category, r.HireDate, r.Age, r.Email, r.Department)
	}
	w.Flush()
}
