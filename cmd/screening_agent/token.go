package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/screening-agent/internal/config"
	"github.com/jonathan/screening-agent/internal/server"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Generate an admin JWT for the protected endpoints",
	Long:  "Signs a short-lived admin token with ADMIN_JWT_SECRET. Pass it as a Bearer token to PUT /config and POST /admin/reset.",
	RunE:  runToken,
}

func init() {
	rootCmd.AddCommand(tokenCmd)
}

func runToken(_ *cobra.Command, _ []string) error {
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return err
	}

	token, err := server.NewJWTService(jwtConfig).GenerateToken()
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	fmt.Println(token)
	return nil
}
