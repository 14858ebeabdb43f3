package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tealinux/teasite/internal/api"
)

var loginEmail string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the community backend",
	Long: `Sign in with email and password. The password is read from the
terminal without echo, or from the first line of stdin when piped.
The session is stored according to session.backend.

Examples:
  teasite login --email you@example.org
  echo "$PASSWORD" | teasite login --email you@example.org`,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored session",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)

	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email (required)")
	loginCmd.MarkFlagRequired("email")
}

func readPassword(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
		pw, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(pw), nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	client, manager, err := newBackend(ctx, GetConfig())
	if err != nil {
		return err
	}

	password, err := readPassword(cmd)
	if err != nil {
		return err
	}
	if password == "" {
		return fmt.Errorf("password is required")
	}

	s, err := manager.Login(ctx, client, loginEmail, password)
	if errors.Is(err, api.ErrUnauthorized) {
		return fmt.Errorf("invalid email or password")
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s <%s>\n", s.User.Name, s.User.Email)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	client, manager, err := newBackend(ctx, GetConfig())
	if err != nil {
		return err
	}
	if !manager.Current().Authenticated() {
		fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
		return nil
	}
	if err := manager.Logout(ctx, client); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	client, err := authedClient(ctx, GetConfig())
	if err != nil {
		return err
	}

	user, err := client.Me(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ID:     %d\n", user.ID)
	fmt.Fprintf(out, "Name:   %s\n", user.Name)
	fmt.Fprintf(out, "Email:  %s\n", user.Email)
	fmt.Fprintf(out, "Role:   %s\n", user.Role)
	return nil
}
