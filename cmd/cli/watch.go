package main

import (
	"fmt"
	"net/url"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var wsURL string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print catalog events from the server's WebSocket feed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := wsURL
		if endpoint == "" {
			var err error
			if endpoint, err = websocketURL(apiURL, "/ws"); err != nil {
				return fmt.Errorf("ws url: %w", err)
			}
		}

		conn, _, err := websocket.DefaultDialer.DialContext(cmd.Context(), endpoint, nil)
		if err != nil {
			return err
		}
		defer conn.Close()
		log.Infof("[watch] connected to %s", endpoint)

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return err
			}
			fmt.Print(string(msg))
		}
	},
}

func init() {
	watchCmd.Flags().StringVar(&wsURL, "ws", "", "WebSocket URL (defaults to /ws on the API host)")
}

func websocketURL(baseURL, path string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	scheme := "ws"
	if u.Scheme == "https" {
		scheme = "wss"
	}
	return (&url.URL{
		Scheme: scheme,
		Host:   u.Host,
		Path:   path,
	}).String(), nil
}
