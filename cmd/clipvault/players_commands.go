package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"clipvault/internal/catalog"
)

func newPlayersCommand(ctx *commandContext) *cobra.Command {
	playersCmd := &cobra.Command{
		Use:   "players",
		Short: "Manage the player roster",
	}

	playersCmd.AddCommand(newPlayersListCommand(ctx))
	playersCmd.AddCommand(newPlayersAddCommand(ctx))
	playersCmd.AddCommand(newPlayersRenameCommand(ctx))
	playersCmd.AddCommand(newPlayersRemoveCommand(ctx))

	return playersCmd
}

func newPlayersListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List players",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.client()
			if err != nil {
				return err
			}
			var players []catalog.Player
			if err := client.call(cmd.Context(), "GET", "/api/players", nil, &players); err != nil {
				return err
			}

			rows := make([][]string, 0, len(players))
			for _, p := range players {
				rows = append(rows, []string{strconv.FormatInt(p.ID, 10), p.Name})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "Name"}, rows,
				[]columnAlignment{alignRight, alignLeft}))
			return nil
		},
	}
}

func newPlayersAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.client()
			if err != nil {
				return err
			}
			var player catalog.Player
			payload := map[string]string{"name": args[0]}
			if err := client.call(cmd.Context(), "POST", "/admin/api/players", payload, &player); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added player %d: %s\n", player.ID, player.Name)
			return nil
		},
	}
}

func newPlayersRenameCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a player",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			client, err := ctx.client()
			if err != nil {
				return err
			}
			var player catalog.Player
			payload := map[string]string{"name": args[1]}
			path := fmt.Sprintf("/admin/api/players/%d", id)
			if err := client.call(cmd.Context(), "PUT", path, payload, &player); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed player %d to %s\n", player.ID, player.Name)
			return nil
		},
	}
}

func newPlayersRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			client, err := ctx.client()
			if err != nil {
				return err
			}
			path := fmt.Sprintf("/admin/api/players/%d", id)
			if err := client.call(cmd.Context(), "DELETE", path, nil, nil); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed player %d\n", id)
			return nil
		},
	}
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}
