package client

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"
)

var moveHeroCmd = &cobra.Command{
	Use:   "move [x] [y]",
	Short: "Move the hero inside the current room",
	Long: `Move the hero to a cell in the current room. Moving onto the room's
exit or entrance transitions between rooms; ordinary moves may trigger
a random encounter. Example:

  move 4 7`,
	Args: cobra.ExactArgs(2),
	RunE: moveHero,
}

func moveHero(cmd *cobra.Command, args []string) error {
	x, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("x must be an integer: %w", err)
	}
	y, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("y must be an integer: %w", err)
	}

	resp, err := call(http.MethodPost, "/v1/games/current/move", map[string]interface{}{
		"x": x,
		"y": y,
	})
	if err != nil {
		return fmt.Errorf("failed to move: %w", err)
	}

	printJSON(resp)

	if _, ok := resp["encounter"]; ok {
		fmt.Println("\nA mob blocks your path! Use attack, defend, or flee.")
	}
	return nil
}
