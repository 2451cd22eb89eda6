package cli

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newLoginCmd(client *Client) *cobra.Command {
	var (
		user     string
		password string
		save     bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the API and obtain a bearer token",
		Long:  "Authenticate and obtain a bearer token. When --user is omitted, the active profile's user is used.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if user == "" {
				profileName, _ := cmd.Root().PersistentFlags().GetString("profile")
				user = loadOrInitUserConfig().ActiveProfile(profileName).User
			}
			if user == "" {
				return fmt.Errorf("--user is required (or set a profile user via 'lend config set-profile')")
			}
			if password == "" {
				pw, err := promptPassword("Password: ")
				if err != nil {
					return fmt.Errorf("read password: %w", err)
				}
				password = pw
			}

			var resp loginPayload
			err := client.post("/api/login", map[string]string{
				"user_id":  user,
				"password": password,
			}, &resp)
			if err != nil {
				return err
			}

			if save {
				cfg := loadOrInitUserConfig()
				p := cfg.Profiles[cfg.CurrentProfile]
				p.User = resp.User.ID
				p.Token = resp.Token
				cfg.Profiles[cfg.CurrentProfile] = p
				if err := SaveUserConfig(cfg); err != nil {
					return fmt.Errorf("save config: %w", err)
				}
			}

			if getOutputFormat(cmd) == "json" {
				return PrintJSON(os.Stdout, resp)
			}
			_, _ = fmt.Fprintf(os.Stdout, "Logged in as %s (%s).\n", resp.User.Name, resp.User.Role)
			if !save {
				_, _ = fmt.Fprintln(os.Stdout, resp.Token)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "User identifier (defaults to the active profile's user)")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")
	cmd.Flags().BoolVar(&save, "save", true, "Save the user and token to the active profile")

	return cmd
}

func newRegisterCmd(client *Client) *cobra.Command {
	var (
		user     string
		name     string
		role     string
		password string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				pw, err := promptPassword("Password: ")
				if err != nil {
					return fmt.Errorf("read password: %w", err)
				}
				password = pw
			}

			var resp userPayload
			err := client.post("/api/register", map[string]string{
				"user_id":  user,
				"name":     name,
				"role":     strings.ToUpper(role),
				"password": password,
			}, &resp)
			if err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return PrintJSON(os.Stdout, resp)
			}
			_, _ = fmt.Fprintf(os.Stdout, "Registered %s (%s).\n", resp.ID, resp.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "User identifier (required)")
	cmd.Flags().StringVar(&name, "name", "", "Display name (required)")
	cmd.Flags().StringVar(&role, "role", "", "Role (ADMIN or STUDENT, default STUDENT)")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

// promptPassword reads a password without echo when stdin is a terminal.
func promptPassword(label string) (string, error) {
	fd := int(syscall.Stdin)
	if !term.IsTerminal(fd) {
		var line string
		if _, err := fmt.Fscanln(os.Stdin, &line); err != nil {
			return "", err
		}
		return strings.TrimSpace(line), nil
	}
	_, _ = fmt.Fprint(os.Stderr, label)
	b, err := term.ReadPassword(fd)
	_, _ = fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}
