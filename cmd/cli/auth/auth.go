package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/crucial707/expense-tracker/cmd/cli/config"
	"github.com/spf13/cobra"
)

// InitAuth registers auth-related CLI commands (login, refresh, logout) on the root command.
func InitAuth(rootCmd *cobra.Command) {
	rootCmd.AddCommand(loginCmd(), refreshCmd(), logoutCmd())
}

// loginCmd logs in a user and stores the access/refresh token pair locally.
func loginCmd() *cobra.Command {
	var username string
	var password string
	var register bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the Expense Tracker API",
		Long:  "Authenticate with the Expense Tracker API and store the token pair for subsequent CLI commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || password == "" {
				return fmt.Errorf("username and password are required")
			}

			client := http.DefaultClient
			payload := map[string]string{"username": username, "password": password}

			// Optionally register the user first
			if register {
				if err := callJSONEndpoint(client, "/users/register", payload, nil); err != nil {
					return fmt.Errorf("failed to register user: %w", err)
				}
			}

			var loginResp struct {
				Data config.Tokens `json:"data"`
			}
			if err := callJSONEndpoint(client, "/users/token", payload, &loginResp); err != nil {
				return fmt.Errorf("failed to login: %w", err)
			}
			if loginResp.Data.AccessToken == "" || loginResp.Data.RefreshToken == "" {
				return fmt.Errorf("login succeeded but no tokens returned")
			}

			if err := config.SaveTokens(loginResp.Data); err != nil {
				return fmt.Errorf("failed to save tokens: %w", err)
			}

			fmt.Println("Login successful. Tokens stored locally.")
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username to authenticate as")
	cmd.Flags().StringVar(&password, "password", "", "Password for the user")
	cmd.Flags().BoolVar(&register, "register", false, "Register the user before logging in")

	return cmd
}

// refreshCmd exchanges the stored refresh token for a new access token.
func refreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Refresh the stored access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens, err := config.LoadTokens()
			if err != nil {
				return fmt.Errorf("not logged in: %w", err)
			}

			var refreshResp struct {
				Data struct {
					AccessToken string `json:"access_token"`
				} `json:"data"`
			}
			payload := map[string]string{"refresh_token": tokens.RefreshToken}
			if err := callJSONEndpoint(http.DefaultClient, "/users/refresh", payload, &refreshResp); err != nil {
				return fmt.Errorf("failed to refresh: %w", err)
			}
			if refreshResp.Data.AccessToken == "" {
				return fmt.Errorf("refresh succeeded but no access token returned")
			}

			tokens.AccessToken = refreshResp.Data.AccessToken
			if err := config.SaveTokens(tokens); err != nil {
				return fmt.Errorf("failed to save tokens: %w", err)
			}

			fmt.Println("Access token refreshed.")
			return nil
		},
	}
}

// logoutCmd removes the locally stored token pair.
func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove locally stored tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ClearTokens(); err != nil {
				return err
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func callJSONEndpoint(client *http.Client, path string, payload interface{}, out interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", config.APIURL()+path, bytes.NewBuffer(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return err
		}
	}

	return nil
}
