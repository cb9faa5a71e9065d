// Package client provides test commands for the dungeon API service
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration
)

// ClientCmd is the root command for all client test commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Test client commands for the dungeon API",
	Long:  `Client commands allow you to test the dungeon API by making real HTTP requests.`,
}

func init() {
	// Add persistent flags for all client commands
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "http://localhost:8080", "API server base URL")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	// Dungeon commands
	ClientCmd.AddCommand(generateDungeonCmd)

	// Game commands
	ClientCmd.AddCommand(startGameCmd)
	ClientCmd.AddCommand(getGameCmd)
	ClientCmd.AddCommand(deleteGameCmd)
	ClientCmd.AddCommand(moveHeroCmd)

	// Fight commands
	ClientCmd.AddCommand(getFightCmd)
	ClientCmd.AddCommand(attackCmd)
	ClientCmd.AddCommand(defendCmd)
	ClientCmd.AddCommand(fleeCmd)
}

// call issues a JSON request against the server and decodes the response
func call(method, path string, payload interface{}) (map[string]interface{}, error) {
	client := &http.Client{Timeout: timeout}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, serverAddr+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach server: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNoContent {
		return map[string]interface{}{}, nil
	}

	var decoded map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("server returned %d: %v", resp.StatusCode, decoded["message"])
	}

	return decoded, nil
}

// printJSON pretty-prints a decoded response
func printJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(data))
}
