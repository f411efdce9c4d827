package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func loginCMD(cfgPath *string) *cobra.Command {
	var username string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and store a session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(*cfgPath)
			if err != nil {
				return err
			}
			username, password, err := promptCredentials(username)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.General.DefaultTimeout)
			defer cancel()
			if err := a.client.Login(ctx, username, password); err != nil {
				return err
			}
			fmt.Println("logged in")
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	return cmd
}

func logoutCMD(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Destroy the local session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(*cfgPath)
			if err != nil {
				return err
			}
			if err := a.client.Logout(); err != nil {
				return err
			}
			fmt.Println("logged out")
			return nil
		},
	}
}

func registerCMD(cfgPath *string) *cobra.Command {
	var username, email string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(*cfgPath)
			if err != nil {
				return err
			}
			username, password, err := promptCredentials(username)
			if err != nil {
				return err
			}
			if email == "" {
				fmt.Print("email: ")
				reader := bufio.NewReader(os.Stdin)
				line, err := reader.ReadString('\n')
				if err != nil {
					return err
				}
				email = strings.TrimSpace(line)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.General.DefaultTimeout)
			defer cancel()
			if err := a.client.Register(ctx, username, email, password); err != nil {
				return err
			}
			fmt.Println("registered; run `smartsum login` to authenticate")
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&email, "email", "e", "", "email address")
	return cmd
}

func promptCredentials(username string) (string, string, error) {
	reader := bufio.NewReader(os.Stdin)
	if username == "" {
		fmt.Print("username: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", "", err
		}
		username = strings.TrimSpace(line)
	}
	fmt.Print("password: ")
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", "", err
	}
	return username, string(raw), nil
}
