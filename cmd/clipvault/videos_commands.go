package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"clipvault/internal/catalog"
)

func newVideosCommand(ctx *commandContext) *cobra.Command {
	videosCmd := &cobra.Command{
		Use:   "videos",
		Short: "Manage tournament videos",
	}

	videosCmd.AddCommand(newVideosListCommand(ctx))
	videosCmd.AddCommand(newVideosRemoveCommand(ctx))

	return videosCmd
}

func newVideosListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List videos with their players",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.client()
			if err != nil {
				return err
			}
			var videos []catalog.VideoWithPlayers
			if err := client.call(cmd.Context(), "GET", "/api/videos", nil, &videos); err != nil {
				return err
			}

			rows := make([][]string, 0, len(videos))
			for _, v := range videos {
				names := make([]string, 0, len(v.Players))
				for _, p := range v.Players {
					names = append(names, p.Name)
				}
				rows = append(rows, []string{
					strconv.FormatInt(v.ID, 10),
					v.Name,
					string(v.Type),
					strings.Join(names, ", "),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "File", "Stage", "Players"}, rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft}))
			return nil
		},
	}
}

func newVideosRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a video and its stored file",
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
			path := fmt.Sprintf("/admin/api/videos/%d", id)
			if err := client.call(cmd.Context(), "DELETE", path, nil, nil); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed video %d\n", id)
			return nil
		},
	}
}
