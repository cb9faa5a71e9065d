package client

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

var getFightCmd = &cobra.Command{
	Use:   "get-fight",
	Short: "Show the active fight",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := call(http.MethodGet, "/v1/fights/current", nil)
		if err != nil {
			return fmt.Errorf("failed to get fight: %w", err)
		}
		printJSON(resp)
		return nil
	},
}

var attackCmd = &cobra.Command{
	Use:   "attack [fight-id]",
	Short: "Attack the mob in the active fight",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return fightAction(args[0], "attack")
	},
}

var defendCmd = &cobra.Command{
	Use:   "defend [fight-id]",
	Short: "Defend against the mob's next strike",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return fightAction(args[0], "defend")
	},
}

var fleeCmd = &cobra.Command{
	Use:   "flee [fight-id]",
	Short: "Attempt to flee the active fight",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return fightAction(args[0], "flee")
	},
}

func fightAction(fightID, action string) error {
	resp, err := call(http.MethodPost, fmt.Sprintf("/v1/fights/%s/%s", fightID, action), nil)
	if err != nil {
		return fmt.Errorf("failed to %s: %w", action, err)
	}

	printJSON(resp)

	if gameOver, ok := resp["game_over"].(bool); ok && gameOver {
		fmt.Println("\nThe hero has fallen. The session is over.")
	}
	return nil
}
