package client

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"
)

var startGameCmd = &cobra.Command{
	Use:   "start-game [hero-id] [dungeon-name] [room-count]",
	Short: "Start a new play session",
	Long: `Start a session for the given hero in a freshly generated dungeon. Example:

  start-game hero-123 "The Depths" 8`,
	Args: cobra.ExactArgs(3),
	RunE: startGame,
}

func startGame(cmd *cobra.Command, args []string) error {
	roomCount, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("room-count must be an integer: %w", err)
	}

	resp, err := call(http.MethodPost, "/v1/games", map[string]interface{}{
		"hero_id":      args[0],
		"dungeon_name": args[1],
		"room_count":   roomCount,
	})
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	printJSON(resp)
	return nil
}
