// Package drive wraps the Google Drive v3 API behind the narrow surfaces the
// engine needs: folder listing, loose-file discovery, content snippets, and
// the folder-create / file-move operations used to apply a plan.
package drive

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// AuthConfig holds the OAuth2 material for the Drive connection.
type AuthConfig struct {
	// CredentialsFile is the OAuth client secret JSON downloaded from the
	// Google Cloud console.
	CredentialsFile string
	// TokenFile is where the granted token is cached between runs.
	TokenFile string
}

// NewService builds an authenticated Drive service, running the interactive
// OAuth flow if no cached token exists.
func NewService(ctx context.Context, cfg AuthConfig) (*drive.Service, error) {
	data, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read credentials from %s: %w", cfg.CredentialsFile, err)
	}

	oauthConfig, err := google.ConfigFromJSON(data, drive.DriveScope)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}

	token, err := getOrCreateToken(ctx, oauthConfig, cfg.TokenFile)
	if err != nil {
		return nil, err
	}

	client := oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, token))
	return drive.NewService(ctx, option.WithHTTPClient(client))
}

// getOrCreateToken loads a cached token, refreshing it if expired, or runs
// the interactive flow when no usable token exists.
func getOrCreateToken(ctx context.Context, oauthConfig *oauth2.Config, tokenFile string) (*oauth2.Token, error) {
	if tokenFile != "" {
		token, err := loadToken(tokenFile)
		if err == nil {
			slog.Info("Loaded existing token from file")
			return refreshTokenIfNeeded(ctx, oauthConfig, token, tokenFile)
		}
		slog.Info("No existing token found, starting OAuth2 flow")
	}

	return authenticateInteractive(ctx, oauthConfig, tokenFile)
}

// authenticateInteractive performs the OAuth2 flow with a local callback server.
func authenticateInteractive(ctx context.Context, oauthConfig *oauth2.Config, tokenFile string) (*oauth2.Token, error) {
	oauthConfig.RedirectURL = "http://localhost:8080/callback"

	codeChan := make(chan string, 1)
	errorChan := make(chan error, 1)

	mux := http.NewServeMux()
	server := &http.Server{Addr: ":8080", Handler: mux}

	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			errorChan <- fmt.Errorf("no authorization code received")
			_, _ = fmt.Fprintf(w, `<html><body>
				<h1>Authentication Failed</h1>
				<p>No authorization code received. Please try again.</p>
				<script>window.setTimeout(function(){window.close();}, 3000);</script>
			</body></html>`)
			return
		}

		codeChan <- code
		_, _ = fmt.Fprintf(w, `<html><body>
			<h1>Authentication Successful!</h1>
			<p>You can close this window and return to the terminal.</p>
			<script>window.setTimeout(function(){window.close();}, 3000);</script>
		</body></html>`)
	})

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			errorChan <- fmt.Errorf("failed to start callback server: %w", err)
		}
	}()

	authURL := oauthConfig.AuthCodeURL("state-token", oauth2.AccessTypeOffline, oauth2.ApprovalForce)

	slog.Info("🔐 Google Drive authentication required")
	slog.Info("Please visit this URL to authenticate", "url", authURL)
	slog.Info("Waiting for authentication...")

	var authCode string
	select {
	case authCode = <-codeChan:
		slog.Info("Received authorization code")
	case err := <-errorChan:
		_ = server.Shutdown(ctx)
		return nil, err
	case <-time.After(5 * time.Minute):
		_ = server.Shutdown(ctx)
		return nil, fmt.Errorf("authentication timeout - no response received within 5 minutes")
	case <-ctx.Done():
		_ = server.Shutdown(ctx)
		return nil, ctx.Err()
	}

	if err := server.Shutdown(ctx); err != nil {
		slog.Warn("Error shutting down callback server", "error", err)
	}

	token, err := oauthConfig.Exchange(ctx, authCode)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	if tokenFile != "" {
		if err := saveToken(tokenFile, token); err != nil {
			slog.Warn("Failed to save token to file", "error", err, "file", tokenFile)
		} else {
			slog.Info("Token saved", "file", tokenFile)
		}
	}

	return token, nil
}

// refreshTokenIfNeeded refreshes the token if it's expired, persisting the
// replacement.
func refreshTokenIfNeeded(ctx context.Context, oauthConfig *oauth2.Config, token *oauth2.Token, tokenFile string) (*oauth2.Token, error) {
	if token.Valid() {
		return token, nil
	}

	slog.Info("Token expired, refreshing...")

	newToken, err := oauthConfig.TokenSource(ctx, token).Token()
	if err != nil {
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}

	if tokenFile != "" {
		if err := saveToken(tokenFile, newToken); err != nil {
			slog.Warn("Failed to save refreshed token", "error", err)
		}
	}

	return newToken, nil
}

func loadToken(tokenFile string) (*oauth2.Token, error) {
	f, err := os.Open(tokenFile) // #nosec G304
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	token := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(token)
	return token, err
}

func saveToken(path string, token *oauth2.Token) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to create token file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := json.NewEncoder(f).Encode(token); err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}

	return nil
}
