package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

type tokenData struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at,omitempty"`
}

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Operator commands (login, reload)",
}

var (
	loginUser string
	loginPass string
)

var adminLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in as the admin and store the token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if loginPass == "" {
			loginPass = os.Getenv("STOREFRONT_ADMIN_PASSWORD")
		}
		if loginUser == "" || loginPass == "" {
			return errors.New("username and password are required")
		}

		c := newClient()
		defer c.Close()

		res, err := c.Login(cmd.Context(), loginUser, loginPass)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		if err := saveToken(tokenPath, tokenData{Token: res.Token, ExpiresAt: res.ExpiresAt}); err != nil {
			return fmt.Errorf("save token: %w", err)
		}
		fmt.Printf("✅ logged in as %s until %s\n", res.Username, res.ExpiresAt)
		return nil
	},
}

var adminLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := os.Remove(tokenPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		fmt.Println("logged out")
		return nil
	},
}

var adminReloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Reload the catalog on the server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := readToken(tokenPath)
		if err != nil || token == "" {
			return errors.New("no stored token, run `storefront admin login` first")
		}

		c := newClient()
		defer c.Close()
		c.Token = token

		res, err := c.Reload(cmd.Context())
		if err != nil {
			return fmt.Errorf("reload failed: %w", err)
		}
		fmt.Printf("🔄 catalog v%d: %d products\n", res.Version, res.Products)
		return nil
	},
}

func init() {
	adminLoginCmd.Flags().StringVar(&loginUser, "username", "admin", "admin username")
	adminLoginCmd.Flags().StringVar(&loginPass, "password", "", "admin password (or STOREFRONT_ADMIN_PASSWORD)")
	adminCmd.AddCommand(adminLoginCmd, adminLogoutCmd, adminReloadCmd)
}

func saveToken(path string, td tokenData) error {
	if td.Token == "" {
		return errors.New("empty token")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(td, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func readToken(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var td tokenData
	if err := json.Unmarshal(data, &td); err != nil {
		return "", err
	}
	return strings.TrimSpace(td.Token), nil
}
