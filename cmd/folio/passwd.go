// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var (
	passwdValue    string
	passwdReset2FA bool
)

var passwdCmd = &cobra.Command{
	Use:   "passwd <username>",
	Short: "Reset a user's password",
	Long: `passwd sets a new password for an account without the current one.
The password comes from --password or, when omitted, the first line of stdin.
With --reset-2fa the account's authenticator enrollment is cleared as well.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		username := args[0]

		password := passwdValue
		if password == "" {
			p, err := readLine(cmd.InOrStdin())
			if err != nil {
				return err
			}
			password = p
		}

		db, err := openDB(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		svc := newService(db, nil)
		if err := svc.ResetPassword(ctx, username, password); err != nil {
			return err
		}
		if passwdReset2FA {
			if err := svc.ResetTOTP(ctx, username); err != nil {
				return err
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "password updated for %s\n", username)
		return nil
	},
}

func init() {
	passwdCmd.Flags().StringVar(&passwdValue, "password", "", "new password (read from stdin when empty)")
	passwdCmd.Flags().BoolVar(&passwdReset2FA, "reset-2fa", false, "also disable two-factor login")
}

// readLine returns the first line of r without its line ending.
func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errors.New("no password given")
	}
	return line, nil
}
