package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
)

const (
	DefaultAuthURL = "https://openrouter.ai/auth"
	DefaultKeysURL = "https://openrouter.ai/api/v1/auth/keys"

	maxKeyResponseBytes = 1 << 20
	callbackPath        = "/callback"
)

var (
	ErrStateMismatch   = errors.New("auth callback state mismatch")
	ErrCallbackTimeout = errors.New("timed out waiting for auth callback")
	ErrMissingState    = errors.New("expected state is required")
)

type AuthorizationRequest struct {
	AuthURL       string
	CallbackURL   string
	CodeChallenge string
}

// BuildAuthorizationURL returns the page where the user approves issuing
// an API key to the callback URL.
func BuildAuthorizationURL(req AuthorizationRequest) (string, error) {
	if req.AuthURL == "" {
		return "", errors.New("auth url is required")
	}
	if req.CallbackURL == "" {
		return "", errors.New("callback url is required")
	}
	if req.CodeChallenge == "" {
		return "", errors.New("code challenge is required")
	}

	parsed, err := url.Parse(req.AuthURL)
	if err != nil {
		return "", fmt.Errorf("parse auth url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("auth url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("auth url host is required")
	}

	q := parsed.Query()
	q.Set("callback_url", req.CallbackURL)
	q.Set("code_challenge", req.CodeChallenge)
	q.Set("code_challenge_method", PKCEChallengeMethodS256)
	parsed.RawQuery = q.Encode()

	return parsed.String(), nil
}

// CallbackServer receives the authorization code on a local listener.
type CallbackServer struct {
	expectedState string
	listener      net.Listener
	server        *http.Server
	resultCh      chan callbackResult
	resultOnce    sync.Once
	closeOnce     sync.Once
}

type callbackResult struct {
	code string
	err  error
}

func StartCallbackServer(listenAddr string, expectedState string) (*CallbackServer, error) {
	if expectedState == "" {
		return nil, ErrMissingState
	}
	if listenAddr == "" {
		listenAddr = "127.0.0.1:0"
	}

	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return nil, fmt.Errorf("listen callback server: %w", err)
	}

	cb := &CallbackServer{
		expectedState: expectedState,
		listener:      listener,
		resultCh:      make(chan callbackResult, 1),
	}

	mux := http.NewServeMux()
	mux.HandleFunc(callbackPath, cb.handleCallback)

	cb.server = &http.Server{Handler: mux}

	go func() {
		if serveErr := cb.server.Serve(cb.listener); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			cb.trySendResult(callbackResult{err: serveErr})
		}
	}()

	return cb, nil
}

// CallbackURL carries the expected state so it comes back with the code.
func (c *CallbackServer) CallbackURL() string {
	port := 0
	if tcpAddr, ok := c.listener.Addr().(*net.TCPAddr); ok {
		port = tcpAddr.Port
	}

	q := url.Values{}
	q.Set("state", c.expectedState)
	return fmt.Sprintf("http://localhost:%d%s?%s", port, callbackPath, q.Encode())
}

// WaitForCode blocks until the callback arrives or ctx is done, then shuts
// the listener down.
func (c *CallbackServer) WaitForCode(ctx context.Context) (string, error) {
	defer c.Close()

	select {
	case result := <-c.resultCh:
		return result.code, result.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", ErrCallbackTimeout
		}
		return "", ctx.Err()
	}
}

func (c *CallbackServer) Close() error {
	var closeErr error
	c.closeOnce.Do(func() {
		closeErr = c.server.Close()
	})
	return closeErr
}

func (c *CallbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if query.Get("state") != c.expectedState {
		c.trySendResult(callbackResult{err: ErrStateMismatch})
		http.Error(w, "state mismatch", http.StatusBadRequest)
		return
	}
	if authError := query.Get("error"); authError != "" {
		c.trySendResult(callbackResult{err: errors.New(authError)})
		http.Error(w, "authorization failed", http.StatusBadRequest)
		return
	}

	code := query.Get("code")
	if code == "" {
		c.trySendResult(callbackResult{err: errors.New("missing authorization code")})
		http.Error(w, "missing code", http.StatusBadRequest)
		return
	}

	c.trySendResult(callbackResult{code: code})
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("The chefs have their key. You can close this window."))
}

func (c *CallbackServer) trySendResult(result callbackResult) {
	c.resultOnce.Do(func() {
		c.resultCh <- result
	})
}

type KeyExchangeRequest struct {
	KeysURL      string
	Code         string
	CodeVerifier string
}

type keyExchangeBody struct {
	Code                string `json:"code"`
	CodeVerifier        string `json:"code_verifier"`
	CodeChallengeMethod string `json:"code_challenge_method"`
}

type keyExchangeResponse struct {
	Key string `json:"key"`
}

// ExchangeCodeForKey trades an authorization code for a provider API key.
func ExchangeCodeForKey(ctx context.Context, client *http.Client, req KeyExchangeRequest) (string, error) {
	if req.Code == "" {
		return "", errors.New("authorization code is required")
	}
	if req.CodeVerifier == "" {
		return "", errors.New("code verifier is required")
	}
	if client == nil {
		client = http.DefaultClient
	}
	keysURL := req.KeysURL
	if keysURL == "" {
		keysURL = DefaultKeysURL
	}

	payload, err := json.Marshal(keyExchangeBody{
		Code:                req.Code,
		CodeVerifier:        req.CodeVerifier,
		CodeChallengeMethod: PKCEChallengeMethodS256,
	})
	if err != nil {
		return "", fmt.Errorf("encode key exchange request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(keysURL, "/"), bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create key exchange request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("exchange code for key: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("key endpoint returned status %d", resp.StatusCode)
	}

	var decoded keyExchangeResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxKeyResponseBytes)).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode key response: %w", err)
	}
	if strings.TrimSpace(decoded.Key) == "" {
		return "", errors.New("key response missing key")
	}

	return decoded.Key, nil
}
