package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/your-org/storefront/internal/domain/user"
)

var (
	username        string
	password        string
	confirmPassword string
)

// registerCmd creates an account
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	Args:  cobra.NoArgs,
	RunE:  runRegister,
}

// loginCmd logs in and persists the session
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and remember the session",
	Args:  cobra.NoArgs,
	RunE:  runLogin,
}

// logoutCmd forgets the session
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the persisted session",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

// whoamiCmd shows the persisted session
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user and wallet balance",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

func init() {
	registerCmd.Flags().StringVarP(&username, "username", "u", "", "Username (at least 6 characters)")
	registerCmd.Flags().StringVarP(&password, "password", "p", "", "Password (at least 6 characters)")
	registerCmd.Flags().StringVar(&confirmPassword, "confirm-password", "", "Password again")

	loginCmd.Flags().StringVarP(&username, "username", "u", "", "Username")
	loginCmd.Flags().StringVarP(&password, "password", "p", "", "Password")
}

func runRegister(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	return st.users.Register(ctx, user.RegisterForm{
		Username:        username,
		Password:        password,
		ConfirmPassword: confirmPassword,
	})
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	sess, err := st.users.Login(ctx, user.LoginForm{Username: username, Password: password})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (wallet: $%s)\n", sess.Username, sess.Balance.StringFixed(2))
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	return st.users.Logout(ctx)
}

func runWhoami(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	sess, err := st.users.Current(ctx)
	if err != nil {
		return err
	}
	if !sess.Authenticated() {
		fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (wallet: $%s)\n", sess.Username, sess.Balance.StringFixed(2))
	return nil
}
