package commands

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"minitask/internal/backend/googletasks"
	"minitask/internal/config"
	"minitask/internal/exitcode"
	"minitask/internal/service"
)

const (
	oauthCallbackTimeout = 5 * time.Minute
	tokenExchangeTimeout = 30 * time.Second

	// Callback server tries ports oauthStartPort..oauthStartPort+oauthMaxPortAttempts-1.
	oauthStartPort       = 8085
	oauthMaxPortAttempts = 5
)

func init() {
	Register(&LoginCmd{})
	Register(&LogoutCmd{})
}

// LoginCmd runs the OAuth flow for the google backend.
type LoginCmd struct{}

func (c *LoginCmd) Name() string       { return "login" }
func (c *LoginCmd) Aliases() []string  { return nil }
func (c *LoginCmd) Synopsis() string   { return "Authenticate the google backend" }
func (c *LoginCmd) Usage() string      { return "minitask login" }
func (c *LoginCmd) NeedsBackend() bool { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, svc service.Client, args []string, stdio IO) int {
	// Only the google backend stores OAuth credentials
	if cfg.Backend != config.BackendGoogle {
		fmt.Fprintf(stdio.Err, "error: login is only needed for the %s backend (current: %s)\n", config.BackendGoogle, cfg.Backend)
		return exitcode.UserError
	}

	// Check if oauth_client.json exists
	if !cfg.HasOAuthClient() {
		fmt.Fprintf(stdio.Err, "error: oauth_client.json not found in %s\n\n", cfg.Dir)
		fmt.Fprintln(stdio.Err, "Create a Desktop OAuth client with the Google Tasks API enabled at")
		fmt.Fprintln(stdio.Err, "  https://console.cloud.google.com/apis/credentials")
		fmt.Fprintf(stdio.Err, "and save the downloaded JSON as %s\n", cfg.OAuthClientPath())
		return exitcode.AuthError
	}

	// Load OAuth client config
	clientJSON, err := os.ReadFile(cfg.OAuthClientPath())
	if err != nil {
		fmt.Fprintf(stdio.Err, "error: failed to read oauth_client.json: %v\n", err)
		return exitcode.AuthError
	}
	oauthConfig, err := google.ConfigFromJSON(clientJSON, googletasks.Scope)
	if err != nil {
		fmt.Fprintf(stdio.Err, "error: invalid oauth_client.json: %v\n", err)
		return exitcode.AuthError
	}

	// Check if already logged in (token exists and is valid)
	if cfg.HasToken() && tokenUsable(ctx, cfg, oauthConfig) {
		if !cfg.Quiet {
			fmt.Fprintln(stdio.Out, "already logged in")
		}
		return exitcode.Success
	}

	// Find available port
	port, listener, err := findAvailablePort()
	if err != nil {
		fmt.Fprintln(stdio.Err, "error: could not bind to local port for OAuth callback")
		return exitcode.AuthError
	}
	defer listener.Close()

	// Set redirect URL
	oauthConfig.RedirectURL = fmt.Sprintf("http://localhost:%d/callback", port)
	// Generate PKCE verifier and auth URL
	verifier := oauth2.GenerateVerifier()
	authURL := oauthConfig.AuthCodeURL("state",
		oauth2.AccessTypeOffline,
		oauth2.S256ChallengeOption(verifier),
	)

	// Print URL to stderr
	fmt.Fprintln(stdio.Err, "Open this URL in your browser:")
	fmt.Fprintln(stdio.Err, authURL)

	// Wait for callback or timeout
	code, err := awaitCallback(ctx, listener)
	if err != nil {
		fmt.Fprintf(stdio.Err, "error: %v\n", err)
		return exitcode.AuthError
	}

	// Exchange code for token
	exchangeCtx, cancel := context.WithTimeout(ctx, tokenExchangeTimeout)
	defer cancel()
	token, err := oauthConfig.Exchange(exchangeCtx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		fmt.Fprintf(stdio.Err, "error: failed to exchange code for token: %v\n", err)
		return exitcode.AuthError
	}

	// Ensure config directory exists
	if err := cfg.EnsureDir(); err != nil {
		fmt.Fprintf(stdio.Err, "error: failed to create config directory: %v\n", err)
		return exitcode.AuthError
	}
	// Save token
	if err := saveToken(cfg.TokenPath(), token); err != nil {
		fmt.Fprintf(stdio.Err, "error: failed to save token: %v\n", err)
		return exitcode.AuthError
	}

	printOK(cfg, stdio.Out)
	return exitcode.Success
}

// awaitCallback serves /callback on listener until a code arrives.
func awaitCallback(ctx context.Context, listener net.Listener) (string, error) {
	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "No code in callback", http.StatusBadRequest)
			select {
			case errCh <- fmt.Errorf("no code in callback"):
			default:
			}
			return
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<html><body><h1>Authentication successful</h1><p>You may close this window.</p></body></html>")
		select {
		case codeCh <- code:
		default:
		}
	})

	// Start callback server
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			select {
			case errCh <- err:
			default:
			}
		}
	}()
	// Shutdown server once a result is in
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	select {
	case code := <-codeCh:
		return code, nil
	case err := <-errCh:
		return "", err
	case <-time.After(oauthCallbackTimeout):
		return "", fmt.Errorf("oauth callback timed out")
	case <-ctx.Done():
		return "", fmt.Errorf("cancelled")
	}
}

// findAvailablePort tries to find an available port starting from oauthStartPort.
func findAvailablePort() (int, net.Listener, error) {
	for i := 0; i < oauthMaxPortAttempts; i++ {
		port := oauthStartPort + i
		listener, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", port))
		if err == nil {
			return port, listener, nil
		}
	}
	return 0, nil, fmt.Errorf("no available port found")
}

// tokenUsable reports whether the stored token has a refresh token that
// still yields an access token.
func tokenUsable(ctx context.Context, cfg *config.Config, oauthConfig *oauth2.Config) bool {
	data, err := os.ReadFile(cfg.TokenPath())
	if err != nil {
		return false
	}
	// Parse token; a refresh token is required
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil || token.RefreshToken == "" {
		return false
	}

	// Try to get a valid token - this will refresh if needed
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, err = oauthConfig.TokenSource(ctx, &token).Token()
	return err == nil
}

// saveToken saves an OAuth token to a file with mode 0600.
func saveToken(path string, token *oauth2.Token) error {
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// LogoutCmd removes the stored google token.
type LogoutCmd struct{}

func (c *LogoutCmd) Name() string       { return "logout" }
func (c *LogoutCmd) Aliases() []string  { return nil }
func (c *LogoutCmd) Synopsis() string   { return "Remove stored credentials" }
func (c *LogoutCmd) Usage() string      { return "minitask logout" }
func (c *LogoutCmd) NeedsBackend() bool { return false }

func (c *LogoutCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LogoutCmd) Run(ctx context.Context, cfg *config.Config, svc service.Client, args []string, stdio IO) int {
	// Check if token.json exists
	if !cfg.HasToken() {
		if !cfg.Quiet {
			fmt.Fprintln(stdio.Out, "not logged in")
		}
		return exitcode.Success
	}

	// Delete token.json
	if err := cfg.RemoveToken(); err != nil {
		fmt.Fprintf(stdio.Err, "error: failed to remove token: %v\n", err)
		return exitcode.AuthError
	}

	printOK(cfg, stdio.Out)
	return exitcode.Success
}
