package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tourbook/catalog/internal/auth"
)

var (
	tokenUsername string

	rootCmd = &cobra.Command{
		Use:           "catalog",
		Short:         "Tour catalog service: REST and GraphQL APIs for users, zones, tours and salidas",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE:  runServe, // Defined in serve.go
	}

	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the catalog tables",
		Args:  cobra.NoArgs,
		RunE:  runMigrate,
	}

	hashPasswordCmd = &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a bcrypt hash for ADMIN_PASSWORD_HASH (reads stdin when no argument is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runHashPassword,
	}

	tokenCmd = &cobra.Command{
		Use:   "token",
		Short: "Issue an admin JWT signed with JWT_SECRET",
		Args:  cobra.NoArgs,
		RunE:  runToken,
	}
)

func init() {
	tokenCmd.Flags().StringVar(&tokenUsername, "username", "", "subject of the token (defaults to ADMIN_USERNAME)")

	rootCmd.AddCommand(serveCmd, migrateCmd, hashPasswordCmd, tokenCmd)
}

func readPassword(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')

	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	password := strings.TrimRight(line, "\r\n")

	if password == "" {
		return "", fmt.Errorf("password must not be empty")
	}

	return password, nil
}

func runHashPassword(cmd *cobra.Command, args []string) error {
	password, err := readPassword(cmd, args)

	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(password)

	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()

	if err != nil {
		return err
	}

	username := tokenUsername
	if username == "" {
		username = cfg.AdminUsername
	}

	manager, err := newManager(cfg)

	if err != nil {
		return err
	}

	token, err := manager.GenerateJWT(username)

	if err != nil {
		return fmt.Errorf("failed to generate JWT: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
