package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authentication helpers",
	}

	cmd.AddCommand(newAuthTokenCmd())
	return cmd
}

func newAuthTokenCmd() *cobra.Command {
	var (
		user    string
		name    string
		role    string
		secret  string
		expires time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Generate a dev-mode bearer token and save it to the active profile",
		Long:  "Generate an HS256 bearer token for development and testing. The token is saved to the active profile automatically.",
		Example: `  # Generate a token for the demo student with the default dev secret
  lend auth token --user S001 --secret dev-secret-change-in-production

  # Generate an admin token with custom expiry
  lend auth token --user A001 --role ADMIN --secret mysecret --expires 48h`,
		RunE: func(_ *cobra.Command, _ []string) error {
			now := time.Now()
			claims := jwt.MapClaims{
				"sub": user,
				"iat": now.Unix(),
				"exp": now.Add(expires).Unix(),
			}
			if name != "" {
				claims["name"] = name
			}
			if role != "" {
				claims["role"] = role
			}

			token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
			signed, err := token.SignedString([]byte(secret))
			if err != nil {
				return fmt.Errorf("sign token: %w", err)
			}

			// Save to active profile
			cfg := loadOrInitUserConfig()
			p := cfg.Profiles[cfg.CurrentProfile]
			p.User = user
			p.Token = signed
			cfg.Profiles[cfg.CurrentProfile] = p
			if err := SaveUserConfig(cfg); err != nil {
				return fmt.Errorf("save config: %w", err)
			}

			_, _ = fmt.Fprintln(os.Stdout, signed)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "User identifier (token subject)")
	cmd.Flags().StringVar(&name, "name", "", "Display name claim")
	cmd.Flags().StringVar(&role, "role", "", "Role claim (ADMIN or STUDENT)")
	cmd.Flags().StringVar(&secret, "secret", "", "Signing secret (HS256)")
	cmd.Flags().DurationVar(&expires, "expires", 24*time.Hour, "Token expiry duration")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("secret")

	return cmd
}
