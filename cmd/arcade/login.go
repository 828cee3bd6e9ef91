package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var flagName string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the leaderboard",
	Long: `Create or reuse the leaderboard profile for a name and print it.

The name defaults to $ARCADE_PLAYER, then $USER.

Examples:
  arcade login
  arcade login --name Ada --backend postgres --dsn postgres://localhost/arcade`,
	Args: cobra.NoArgs,
	Run:  runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&flagName, "name", "", "Profile name")
}

func runLogin(_ *cobra.Command, _ []string) {
	closeLog := setupLogging(false)
	defer closeLog()

	name := flagName
	if name == "" {
		name = playerName()
	}

	ctx := context.Background()
	sess := openSession(ctx, leaderboardConfig(), name)
	defer sess.close()

	p, err := sess.service.Login(ctx)
	if err != nil {
		fail("login: %v", err)
	}
	fmt.Printf("Logged in as %s\n", p.Name)
	fmt.Printf("  id: %s\n", p.ID)
	if sess.service.Mock() {
		fmt.Println("  (offline profile, scores are not persisted)")
	}
}
