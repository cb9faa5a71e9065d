package client

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

var getGameCmd = &cobra.Command{
	Use:   "get-game",
	Short: "Show the current play session",
	Args:  cobra.NoArgs,
	RunE:  getGame,
}

func getGame(cmd *cobra.Command, args []string) error {
	resp, err := call(http.MethodGet, "/v1/games/current", nil)
	if err != nil {
		return fmt.Errorf("failed to get game: %w", err)
	}

	printJSON(resp)
	return nil
}

var deleteGameCmd = &cobra.Command{
	Use:   "delete-game",
	Short: "Delete the current play session",
	Args:  cobra.NoArgs,
	RunE:  deleteGame,
}

func deleteGame(cmd *cobra.Command, args []string) error {
	resp, err := call(http.MethodDelete, "/v1/games/current", nil)
	if err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	printJSON(resp)
	return nil
}
