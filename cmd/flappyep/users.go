package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/flappyep/internal/auth"
)

var (
	flagUserPassword string
	flagUserVerified bool
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage player accounts",
	Long: `Create, verify and list player accounts.

Examples:
  flappyep users add me@example.com
  flappyep users add me@example.com --verified
  flappyep users verify me@example.com
  flappyep users list`,
}

var usersAddCmd = &cobra.Command{
	Use:   "add <email>",
	Short: "Create an account (prompts for the password)",
	Args:  cobra.ExactArgs(1),
	Run:   runUsersAdd,
}

var usersVerifyCmd = &cobra.Command{
	Use:   "verify <email>",
	Short: "Mark an account's email as verified",
	Args:  cobra.ExactArgs(1),
	Run:   runUsersVerify,
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	Args:  cobra.NoArgs,
	Run:   runUsersList,
}

func init() {
	usersAddCmd.Flags().StringVar(&flagUserPassword, "password", "", "Password (prompted when empty)")
	usersAddCmd.Flags().BoolVar(&flagUserVerified, "verified", false, "Mark the account verified right away")

	usersCmd.AddCommand(usersAddCmd)
	usersCmd.AddCommand(usersVerifyCmd)
	usersCmd.AddCommand(usersListCmd)
}

// readPassword prompts on the terminal without echo, or reads a line from a pipe.
func readPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	fmt.Fprint(os.Stderr, prompt)
	pw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	return string(pw), err
}

func runUsersAdd(_ *cobra.Command, args []string) {
	email := auth.NormalizeEmail(args[0])
	if err := auth.ValidateEmail(email); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", auth.Message(err))
		os.Exit(1)
	}

	password := flagUserPassword
	if password == "" {
		var err error
		if password, err = readPassword("Password: "); err != nil {
			fmt.Fprintf(os.Stderr, "Error reading password: %v\n", err)
			os.Exit(1)
		}
	}

	store := mustOpenStore()
	defer store.Close()

	svc := auth.NewService(store)
	ctx := context.Background()
	if err := svc.Register(ctx, email, password); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", auth.Message(err))
		os.Exit(1)
	}
	if flagUserVerified {
		if err := svc.Verify(ctx, email); err != nil {
			fmt.Fprintf(os.Stderr, "Error verifying account: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Created account %s\n", email)
	if !flagUserVerified {
		fmt.Printf("Run 'flappyep users verify %s' before logging in.\n", email)
	}
}

func runUsersVerify(_ *cobra.Command, args []string) {
	store := mustOpenStore()
	defer store.Close()

	email := auth.NormalizeEmail(args[0])
	if err := auth.NewService(store).Verify(context.Background(), email); err != nil {
		if errors.Is(err, auth.ErrUnknownEmail) {
			fmt.Fprintf(os.Stderr, "Error: %s\n", auth.Message(err))
		} else {
			fmt.Fprintf(os.Stderr, "Error verifying account: %v\n", err)
		}
		os.Exit(1)
	}
	fmt.Printf("Verified %s\n", email)
}

func runUsersList(_ *cobra.Command, _ []string) {
	store := mustOpenStore()
	defer store.Close()

	users, err := store.Users(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing accounts: %v\n", err)
		os.Exit(1)
	}
	if len(users) == 0 {
		fmt.Println("No accounts yet.")
		return
	}

	fmt.Printf("  %-4s  %-32s  %-8s  %s\n", "ID", "Email", "Verified", "Created")
	fmt.Printf("  %-4s  %-32s  %-8s  %s\n", "--", "-----", "--------", "-------")
	for _, u := range users {
		verified := "no"
		if u.Verified {
			verified = "yes"
		}
		fmt.Printf("  %-4d  %-32s  %-8s  %s\n", u.ID, u.Email, verified, u.CreatedAt.Format("2006-01-02 15:04"))
	}
}
