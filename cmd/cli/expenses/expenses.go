package expenses

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/crucial707/expense-tracker/cmd/cli/config"
	"github.com/crucial707/expense-tracker/cmd/cli/output"
	"github.com/spf13/cobra"
)

type expense struct {
	ID          int       `json:"id"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

// ==========================
// Init Expenses
// ==========================
func InitExpenses(rootCmd *cobra.Command) {

	expensesCmd := &cobra.Command{
		Use:   "expenses",
		Short: "Manage expenses",
	}

	expensesCmd.AddCommand(
		listCmd(),
		addCmd(),
		updateCmd(),
		deleteCmd(),
		reportCmd(),
	)

	rootCmd.AddCommand(expensesCmd)
}

// ==========================
// LIST
// ==========================
func listCmd() *cobra.Command {
	var page, limit, days int
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses (paginated)",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			q.Set("page", strconv.Itoa(page))
			q.Set("limit", strconv.Itoa(limit))
			if category != "" {
				q.Set("category", category)
			}
			if days > 0 {
				q.Set("days", strconv.Itoa(days))
			}

			var out struct {
				Data struct {
					Expenses   []expense `json:"expenses"`
					TotalCount int       `json:"totalcount"`
					Page       int       `json:"page"`
				} `json:"data"`
			}
			if err := apiGet("/expenses?"+q.Encode(), &out); err != nil {
				return err
			}

			rows := make([][]interface{}, 0, len(out.Data.Expenses))
			for _, e := range out.Data.Expenses {
				rows = append(rows, []interface{}{
					e.ID, e.Category, fmt.Sprintf("%.2f", e.Amount), e.Description, e.Date.Format("2006-01-02"),
				})
			}
			output.RenderTable([]string{"ID", "Category", "Amount", "Description", "Date"}, rows)
			fmt.Printf("Page %d, %d expense(s) total\n", out.Data.Page, out.Data.TotalCount)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number (1-based)")
	cmd.Flags().IntVar(&limit, "limit", 10, "results per page")
	cmd.Flags().StringVar(&category, "category", "", "filter by category")
	cmd.Flags().IntVar(&days, "days", 0, "only expenses from the last N days")

	return cmd
}

// ==========================
// ADD
// ==========================
func addCmd() *cobra.Command {
	var category, description string
	var amount float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an expense",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{
				"category":    category,
				"amount":      amount,
				"description": description,
			}

			var out struct {
				Data expense `json:"data"`
			}
			if err := apiSend("POST", "/expenses", payload, &out); err != nil {
				return err
			}

			fmt.Printf("Added expense %d: %s %.2f\n", out.Data.ID, out.Data.Category, out.Data.Amount)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "expense category")
	cmd.Flags().Float64Var(&amount, "amount", 0, "expense amount")
	cmd.Flags().StringVar(&description, "description", "", "expense description")

	return cmd
}

// ==========================
// UPDATE
// ==========================
func updateCmd() *cobra.Command {
	var id int
	var category, description string
	var amount float64

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update an expense (only supplied flags change)",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Only send fields whose flag was set so the server keeps the rest.
			payload := map[string]interface{}{}
			if cmd.Flags().Changed("category") {
				payload["category"] = category
			}
			if cmd.Flags().Changed("amount") {
				payload["amount"] = amount
			}
			if cmd.Flags().Changed("description") {
				payload["description"] = description
			}

			var out struct {
				Data expense `json:"data"`
			}
			if err := apiSend("PUT", fmt.Sprintf("/expenses/%d", id), payload, &out); err != nil {
				return err
			}

			fmt.Printf("Updated expense %d: %s %.2f\n", out.Data.ID, out.Data.Category, out.Data.Amount)
			return nil
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "expense id")
	cmd.Flags().StringVar(&category, "category", "", "new category")
	cmd.Flags().Float64Var(&amount, "amount", 0, "new amount")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.MarkFlagRequired("id")

	return cmd
}

// ==========================
// DELETE
// ==========================
func deleteCmd() *cobra.Command {
	var id int

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete an expense",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := apiSend("DELETE", fmt.Sprintf("/expenses/%d", id), nil, nil); err != nil {
				return err
			}
			fmt.Printf("Deleted expense %d\n", id)
			return nil
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "expense id")
	cmd.MarkFlagRequired("id")

	return cmd
}

// ==========================
// MONTHLY REPORT
// ==========================
func reportCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Monthly spending report",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/expenses/report/monthly"
			if category != "" {
				path += "?category=" + url.QueryEscape(category)
			}

			var out struct {
				Data []struct {
					Month      string  `json:"month"`
					TotalSpent float64 `json:"total_spent"`
				} `json:"data"`
			}
			if err := apiGet(path, &out); err != nil {
				return err
			}

			rows := make([][]interface{}, 0, len(out.Data))
			for _, m := range out.Data {
				rows = append(rows, []interface{}{m.Month, fmt.Sprintf("%.2f", m.TotalSpent)})
			}
			output.RenderTable([]string{"Month", "Total Spent"}, rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "filter by category")

	return cmd
}

// ==========================
// HTTP helpers
// ==========================

func apiGet(path string, out interface{}) error {
	return apiSend("GET", path, nil, out)
}

func apiSend(method, path string, payload, out interface{}) error {
	tokens, err := config.LoadTokens()
	if err != nil {
		return fmt.Errorf("please login first")
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, config.APIURL()+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(raw))
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return err
		}
	}
	return nil
}
