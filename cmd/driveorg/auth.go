package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jpmusenge/agentic-drive-organizer/internal/config"
	"github.com/jpmusenge/agentic-drive-organizer/internal/drive"
	"github.com/jpmusenge/agentic-drive-organizer/internal/review"
)

func authCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Authenticate with Google Drive",
		Long: `Run the OAuth2 flow against Google Drive and cache the granted token.

Requires an OAuth client secret file (credentials.json) downloaded from the
Google Cloud console. The cached token is reused by subsequent commands, so
this only needs to be run once, or again after revoking access.`,
		RunE: runAuth,
	}
}

func runAuth(cmd *cobra.Command, _ []string) error {
	cfg := drive.AuthConfig{
		CredentialsFile: config.ExpandPath(viper.GetString("drive.credentials")),
		TokenFile:       config.ExpandPath(viper.GetString("drive.token")),
	}

	slog.Info(review.FormatInfo("Starting Google Drive authentication..."))

	svc, err := drive.NewService(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	// A trivial call proves the token actually works.
	if _, err := drive.NewClient(svc).ListRootFolders(cmd.Context()); err != nil {
		return err
	}

	slog.Info(review.FormatSuccess("Authentication successful! Token cached for future runs."))
	return nil
}
