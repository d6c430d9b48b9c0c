package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"library-backend/internal/domains/user/model"
	"library-backend/pkg/container"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts",
	}
	cmd.AddCommand(newUserCreateCmd())
	return cmd
}

func newUserCreateCmd() *cobra.Command {
	var (
		username, email    string
		driver, sqlitePath string
		admin              bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register an account, prompting for the password",
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := promptPassword(cmd)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(driver, sqlitePath)
			if err != nil {
				return err
			}
			// throttling is irrelevant here
			cfg.Redis.Enabled = false

			c, err := container.NewContainer(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer c.Cleanup()

			role := model.RoleMember
			if admin {
				role = model.RoleAdmin
			}

			resp, err := c.UserService.Register(cmd.Context(), model.RegisterRequest{
				Username: username,
				Email:    email,
				Password: password,
				Role:     string(role),
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created %s %s (%s)\n", resp.Role, resp.Username, resp.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "login name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().BoolVar(&admin, "admin", false, "grant the ADMIN role")
	cmd.Flags().StringVar(&driver, "driver", "", "storage driver: postgres or sqlite")
	cmd.Flags().StringVar(&sqlitePath, "sqlite-path", "", "database file for the sqlite driver")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

// promptPassword reads the password twice without echo. Piped input is read
// as a single line so the command can be scripted.
func promptPassword(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read password: %w", err)
		}
		return strings.TrimSpace(line), nil
	}

	read := func(prompt string) (string, error) {
		fmt.Fprint(cmd.ErrOrStderr(), prompt)
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}

	first, err := read("Password: ")
	if err != nil {
		return "", err
	}
	second, err := read("Repeat password: ")
	if err != nil {
		return "", err
	}
	if first != second {
		return "", errors.New("passwords do not match")
	}
	return first, nil
}
