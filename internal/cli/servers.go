package cli

import (
	"context"
	"fmt"
)

// ServersCommand loads and renders the network view: the local node, every
// known peer, and the prefectures with their administrative state.
func (a *App) ServersCommand(ctx context.Context) error {
	network, err := a.Discovery.Load(ctx)
	if err != nil {
		fmt.Printf("Could not load the server list: %v\n", err)
		fmt.Println("Check CAV_SERVER_URL and try again.")
		return err
	}

	fmt.Printf("Connected to %s (%s) at %s\n", network.Local.Name, network.Local.ID, network.Local.URL)

	fmt.Println("\nServers:")
	for _, server := range network.Servers {
		marker := " "
		if server.ID == network.Local.ID {
			marker = "*"
		}
		fmt.Printf("%s %-4s %-20s %s\n", marker, server.ID, server.Name, server.URL)
	}

	fmt.Println("\nPrefectures:")
	for _, prefecture := range network.Prefectures {
		state, err := a.Discovery.PrefectureState(ctx, prefecture.ID)
		if err != nil {
			fmt.Printf("  %-4s %-20s (state unavailable: %v)\n", prefecture.ID, prefecture.Label, err)
			continue
		}
		fmt.Printf("  %-4s %-20s %s, month %s\n", prefecture.ID, prefecture.Label, state.Status, state.CurrentMonth)
	}
	return nil
}
