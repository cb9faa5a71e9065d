package client

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"
)

var generateDungeonCmd = &cobra.Command{
	Use:   "generate-dungeon [name] [room-count]",
	Short: "Generate a new dungeon",
	Long: `Generate a dungeon layout with the given name and room count. Examples:

  generate-dungeon "The Depths" 8
  generate-dungeon Catacombs 20`,
	Args: cobra.ExactArgs(2),
	RunE: generateDungeon,
}

func generateDungeon(cmd *cobra.Command, args []string) error {
	roomCount, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("room-count must be an integer: %w", err)
	}

	fmt.Printf("Generating dungeon %q with %d rooms...\n", args[0], roomCount)

	resp, err := call(http.MethodPost, "/v1/dungeons", map[string]interface{}{
		"name":       args[0],
		"room_count": roomCount,
	})
	if err != nil {
		return fmt.Errorf("failed to generate dungeon: %w", err)
	}

	printJSON(resp)
	return nil
}
