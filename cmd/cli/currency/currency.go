package currency

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/crucial707/expense-tracker/cmd/cli/config"
	"github.com/spf13/cobra"
)

// InitCurrency registers the convert command on the root command.
func InitCurrency(rootCmd *cobra.Command) {
	rootCmd.AddCommand(convertCmd())
}

func convertCmd() *cobra.Command {
	var amount float64
	var from, to string

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert an amount between currencies",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			q.Set("amount", strconv.FormatFloat(amount, 'f', -1, 64))
			q.Set("from_currency", from)
			q.Set("to_currency", to)

			resp, err := http.Get(config.APIURL() + "/currency/convert-currency?" + q.Encode())
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			raw, _ := io.ReadAll(resp.Body)
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("status %d: %s", resp.StatusCode, string(raw))
			}

			var out struct {
				Data struct {
					ExchangeRate    float64 `json:"exchange_rate"`
					ConvertedAmount float64 `json:"converted_amount"`
				} `json:"data"`
			}
			if err := json.Unmarshal(raw, &out); err != nil {
				return err
			}

			fmt.Printf("%.2f %s = %.2f %s (rate %.4f)\n",
				amount, from, out.Data.ConvertedAmount, to, out.Data.ExchangeRate)
			return nil
		},
	}

	cmd.Flags().Float64Var(&amount, "amount", 0, "amount to convert")
	cmd.Flags().StringVar(&from, "from", "", "source currency code (e.g. USD)")
	cmd.Flags().StringVar(&to, "to", "", "target currency code (e.g. EUR)")
	cmd.MarkFlagRequired("amount")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")

	return cmd
}
