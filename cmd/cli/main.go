package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
	token   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bankcore-cli",
		Short: "BankCore CLI tool",
		Long:  `A command line interface for interacting with the BankCore API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the BankCore API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("BANKCORE_TOKEN"), "Session token (or BANKCORE_TOKEN)")

	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(balanceCmd())
	rootCmd.AddCommand(depositCmd())
	rootCmd.AddCommand(withdrawCmd())
	rootCmd.AddCommand(transferCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(consistencyCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func loginCmd() *cobra.Command {
	var accountNumber, pin string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and print a session token",
		Run: func(cmd *cobra.Command, args []string) {
			doPost("/api/v1/auth/login", map[string]any{
				"account_number": accountNumber,
				"pin":            pin,
			})
		},
	}

	cmd.Flags().StringVar(&accountNumber, "account", "", "Account number")
	cmd.Flags().StringVar(&pin, "pin", "", "Account PIN")
	cmd.MarkFlagRequired("account")
	cmd.MarkFlagRequired("pin")

	return cmd
}

func balanceCmd() *cobra.Command {
	var accountNumber string

	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Show the current balance",
		Run: func(cmd *cobra.Command, args []string) {
			doGet("/api/v1/accounts/" + accountNumber + "/balance")
		},
	}

	cmd.Flags().StringVar(&accountNumber, "account", "", "Account number")
	cmd.MarkFlagRequired("account")

	return cmd
}

func depositCmd() *cobra.Command {
	var accountNumber, amount, remarks string

	cmd := &cobra.Command{
		Use:   "deposit",
		Short: "Deposit money into an account",
		Run: func(cmd *cobra.Command, args []string) {
			doPost("/api/v1/ledger/deposit", map[string]any{
				"account_number": accountNumber,
				"amount":         amount,
				"remarks":        remarks,
			})
		},
	}

	cmd.Flags().StringVar(&accountNumber, "account", "", "Account number")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount to deposit")
	cmd.Flags().StringVar(&remarks, "remarks", "", "Optional remarks")
	cmd.MarkFlagRequired("account")
	cmd.MarkFlagRequired("amount")

	return cmd
}

func withdrawCmd() *cobra.Command {
	var accountNumber, amount, remarks string

	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Withdraw money from an account",
		Run: func(cmd *cobra.Command, args []string) {
			doPost("/api/v1/ledger/withdraw", map[string]any{
				"account_number": accountNumber,
				"amount":         amount,
				"remarks":        remarks,
			})
		},
	}

	cmd.Flags().StringVar(&accountNumber, "account", "", "Account number")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount to withdraw")
	cmd.Flags().StringVar(&remarks, "remarks", "", "Optional remarks")
	cmd.MarkFlagRequired("account")
	cmd.MarkFlagRequired("amount")

	return cmd
}

func transferCmd() *cobra.Command {
	var fromAccount, toAccount, amount, remarks string

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer money between two accounts",
		Run: func(cmd *cobra.Command, args []string) {
			doPost("/api/v1/ledger/transfer", map[string]any{
				"from_account": fromAccount,
				"to_account":   toAccount,
				"amount":       amount,
				"remarks":      remarks,
			})
		},
	}

	cmd.Flags().StringVar(&fromAccount, "from", "", "Source account number")
	cmd.Flags().StringVar(&toAccount, "to", "", "Destination account number")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount to transfer")
	cmd.Flags().StringVar(&remarks, "remarks", "", "Optional remarks")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")
	cmd.MarkFlagRequired("amount")

	return cmd
}

func historyCmd() *cobra.Command {
	var accountNumber string
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List an account's transactions, newest first",
		Run: func(cmd *cobra.Command, args []string) {
			path := fmt.Sprintf("/api/v1/accounts/%s/transactions", accountNumber)
			if limit > 0 {
				path = fmt.Sprintf("%s?limit=%d", path, limit)
			}
			doGet(path)
		},
	}

	cmd.Flags().StringVar(&accountNumber, "account", "", "Account number")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum records to return")
	cmd.MarkFlagRequired("account")

	return cmd
}

func consistencyCmd() *cobra.Command {
	var accountNumber string

	cmd := &cobra.Command{
		Use:   "consistency",
		Short: "Replay an account's transaction log against its balance",
		Run: func(cmd *cobra.Command, args []string) {
			doGet("/api/v1/accounts/" + accountNumber + "/consistency")
		},
	}

	cmd.Flags().StringVar(&accountNumber, "account", "", "Account number")
	cmd.MarkFlagRequired("account")

	return cmd
}

func doGet(path string) {
	req, err := http.NewRequest(http.MethodGet, baseURL+path, nil)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}

	doRequest(req)
}

func doPost(path string, payload map[string]any) {
	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("Error encoding request: %v\n", err)
		os.Exit(1)
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+path, bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")

	doRequest(req)
}

func doRequest(req *http.Request) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		fmt.Println(string(body))
	} else {
		fmt.Println(pretty.String())
	}

	if resp.StatusCode >= 400 {
		os.Exit(1)
	}
}
