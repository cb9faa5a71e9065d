// Package main is the entry point for the dungeon API server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/crawlforge/dungeon-api/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:   "dungeon-api",
	Short: "Dungeon crawler API server",
	Long:  `Dungeon API generates procedural dungeons and runs the movement and combat core for a single active play session.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
