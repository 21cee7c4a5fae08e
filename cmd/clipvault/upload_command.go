package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"clipvault/internal/catalog"
)

type uploadPayload struct {
	FileName    string  `json:"file_name"`
	FileSize    int64   `json:"file_size"`
	ContentType string  `json:"content_type"`
	Type        string  `json:"type"`
	PlayerIDs   []int64 `json:"player_ids"`
}

func newUploadCommand(ctx *commandContext) *cobra.Command {
	var stage string
	var playerIDs []int64

	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a video through the presigned flow",
		Long: "Requests a presigned URL from the daemon, uploads the file " +
			"directly to object storage, then confirms so the catalog row is written.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := os.Stat(args[0])
			if err != nil {
				return fmt.Errorf("stat %s: %w", args[0], err)
			}
			client, err := ctx.client()
			if err != nil {
				return err
			}

			payload := uploadPayload{
				FileName:    filepath.Base(args[0]),
				FileSize:    info.Size(),
				ContentType: "video/mp4",
				Type:        stage,
				PlayerIDs:   playerIDs,
			}

			var presigned struct {
				URL string `json:"url"`
				Key string `json:"key"`
			}
			if err := client.call(cmd.Context(), "POST", "/admin/api/uploads", payload, &presigned); err != nil {
				return err
			}

			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer file.Close()
			if err := client.putFile(cmd.Context(), presigned.URL, file, info.Size(), payload.ContentType); err != nil {
				return err
			}

			var video catalog.Video
			if err := client.call(cmd.Context(), "POST", "/admin/api/uploads/confirm", payload, &video); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Uploaded video %d: %s (%s)\n", video.ID, video.Name, video.Type)
			return nil
		},
	}

	cmd.Flags().StringVar(&stage, "stage", "", "Tournament stage label")
	cmd.Flags().Int64SliceVar(&playerIDs, "player", nil, "Player ID featured in the video (repeatable)")
	_ = cmd.MarkFlagRequired("stage")
	_ = cmd.MarkFlagRequired("player")
	return cmd
}

func newDownloadCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "download <file-name>",
		Short: "Print a time-limited download URL for a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.client()
			if err != nil {
				return err
			}
			var result struct {
				URL string `json:"url"`
			}
			payload := map[string]string{"file_name": args[0]}
			if err := client.call(cmd.Context(), "POST", "/api/downloads", payload, &result); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.URL)
			return nil
		},
	}
}
