package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/notexe/postly-cli/internal/app"
	"github.com/notexe/postly-cli/internal/session"
	"github.com/notexe/postly-cli/internal/ui"
	"github.com/spf13/cobra"
)

var passwordStdin bool

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)

	loginCmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from stdin")
}

var loginCmd = &cobra.Command{
	Use:   "login [username]",
	Short: "Sign in and store the session token",
	Long: `Sign in to the Postly API. The access token is kept in the session
database (session.db_path) until it expires or you log out.

Examples:
  postly login alice
  echo "$PASSWORD" | postly login alice --password-stdin`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			return runLogin(ctx, cmd, a, args)
		})
	},
}

func runLogin(ctx context.Context, cmd *cobra.Command, a *app.App, args []string) error {
	in := bufio.NewReader(cmd.InOrStdin())

	var username string
	if len(args) > 0 {
		username = args[0]
	} else {
		fmt.Fprint(cmd.ErrOrStderr(), "Username: ")
		line, err := in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read username: %w", err)
		}
		username = strings.TrimSpace(line)
	}
	if username == "" {
		return errors.New("username is required")
	}

	var password string
	if passwordStdin {
		line, err := in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	} else {
		p, err := ui.ReadPassword("Password: ")
		if err != nil {
			return err
		}
		password = p
	}

	tokens, err := a.Client.Login(ctx, username, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	sess, err := a.Sessions.Save(ctx, username, tokens.Access, tokens.Refresh)
	if err != nil {
		return err
	}

	f := formatter(a)
	msg := "Logged in as " + username
	if !sess.ExpiresAt.IsZero() {
		msg += f.FormatDim(" (session valid until " + sess.ExpiresAt.In(a.Location).Format("Jan 2 15:04") + ")")
	}
	printf(cmd, "%s\n", f.FormatSuccess(msg))
	return nil
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			if err := a.Sessions.Clear(ctx); err != nil {
				return err
			}
			printf(cmd, "%s\n", formatter(a).FormatSuccess("Logged out"))
			return nil
		})
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user and profile defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			return runWhoami(ctx, cmd, a)
		})
	},
}

func runWhoami(ctx context.Context, cmd *cobra.Command, a *app.App) error {
	f := formatter(a)

	if a.Config.API.Token == "" {
		sess, err := a.Sessions.Load(ctx)
		if errors.Is(err, session.ErrNoSession) {
			return errors.New("not logged in (run: postly login)")
		}
		if err != nil {
			return err
		}
		if !sess.ExpiresAt.IsZero() && !time.Now().Before(sess.ExpiresAt) {
			return session.ErrExpired
		}
	}

	p, err := a.Client.Profile(ctx)
	if err != nil {
		return fmt.Errorf("could not load profile: %w", err)
	}

	printf(cmd, "%s\n", f.FormatHeader(p.Username))
	printf(cmd, "%s %s\n", f.FormatDim("Default platform:"), p.DefaultPlatform.DisplayName())
	tz := p.Timezone
	if tz == "" {
		tz = "-"
	}
	printf(cmd, "%s %s\n", f.FormatDim("Profile timezone:"), tz)
	printf(cmd, "%s %s\n", f.FormatDim("Calendar timezone:"), a.Location.String())
	printf(cmd, "%s %s\n", f.FormatDim("API:"), a.Client.BaseURL())
	if os.Getenv("POSTLY_TOKEN") != "" {
		printf(cmd, "%s\n", f.FormatDim("Using POSTLY_TOKEN"))
	}
	return nil
}
