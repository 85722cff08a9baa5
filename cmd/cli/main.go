package main

import (
	"fmt"
	"os"

	"github.com/crucial707/expense-tracker/cmd/cli/auth"
	"github.com/crucial707/expense-tracker/cmd/cli/currency"
	"github.com/crucial707/expense-tracker/cmd/cli/expenses"
	"github.com/crucial707/expense-tracker/cmd/cli/root"
)

func main() {
	auth.InitAuth(root.GetRoot())
	expenses.InitExpenses(root.GetRoot())
	currency.InitCurrency(root.GetRoot())

	if err := root.GetRoot().Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
