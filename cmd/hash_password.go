package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/swiss-tournament/utils"
	"github.com/urfave/cli/v2"
)

func hashPasswordCommand() *cli.Command {
	return &cli.Command{
		Name:      "hash-password",
		Usage:     "print a bcrypt hash for ORGANIZER_PASSWORD_HASH",
		ArgsUsage: "[password]",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "cost", Value: utils.BcryptCost, Usage: "bcrypt cost"},
		},
		Action: func(c *cli.Context) error {
			password := c.Args().First()
			if password == "" {
				// read one line from stdin so the password stays out of shell history
				line, err := bufio.NewReader(c.App.Reader).ReadString('\n')
				if err != nil && line == "" {
					return errors.New("password is required")
				}
				password = strings.TrimRight(line, "\r\n")
			}
			if password == "" {
				return errors.New("password is required")
			}

			hash, err := utils.HashPasswordWithCost(password, c.Int("cost"))
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}
			fmt.Fprintln(c.App.Writer, hash)
			return nil
		},
	}
}
