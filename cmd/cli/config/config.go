package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const defaultAPIURL = "http://localhost:8080"

const tokenFileName = ".expense_tokens"

// APIURL returns the base URL for the Expense Tracker API.
// It can be overridden with the EXPENSE_API_URL environment variable.
func APIURL() string {
	if v := os.Getenv("EXPENSE_API_URL"); v != "" {
		return v
	}
	return defaultAPIURL
}

// Tokens is the locally stored credential pair from a login.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// SaveTokens writes the token pair to the user's home directory with owner-only permissions.
func SaveTokens(t Tokens) error {
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return os.WriteFile(tokenPath(), data, 0600)
}

// LoadTokens reads the stored token pair. Missing file means "not logged in".
func LoadTokens() (Tokens, error) {
	var t Tokens
	data, err := os.ReadFile(tokenPath())
	if err != nil {
		return t, err
	}
	err = json.Unmarshal(data, &t)
	return t, err
}

// ClearTokens removes the stored token pair.
func ClearTokens() error {
	err := os.Remove(tokenPath())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func tokenPath() string {
	dir, _ := os.UserHomeDir()
	return filepath.Join(dir, tokenFileName)
}
