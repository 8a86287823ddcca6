package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/VigyanSetu/WS-Frontend/internal/models"
	"golang.org/x/time/rate"
)

// Client wraps every HTTP call to the workshop registration backend. It
// attaches the current bearer token, normalizes error payloads, and on a
// 401 performs exactly one silent token refresh before replaying the
// original request. Calls are independent: there is no queuing, batching,
// or deduplication, and concurrent 401s may each run their own refresh.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	tokens        TokenSource
	limiter       *rate.Limiter
	onAuthExpired func()
}

// NewClient creates a client for the backend at baseURL. Tokens are read
// from and written to the given source on every call.
func NewClient(baseURL string, tokens TokenSource, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(20), 40),
	}
}

// OnAuthExpired registers the hook fired when a refresh attempt fails and
// the stored token has been cleared. The web layer uses it to force
// navigation to the login view.
func (c *Client) OnAuthExpired(fn func()) {
	c.onAuthExpired = fn
}

// backendError is the error payload shape the backend produces.
type backendError struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

// normalize reduces a failure response to the single *Error shape.
func normalize(status int, body []byte) *Error {
	var payload backendError
	msg := ""
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Detail != "" {
			msg = payload.Detail
		} else if payload.Message != "" {
			msg = payload.Message
		}
	}
	if msg == "" {
		msg = genericMessage
	}
	return &Error{Status: status, Message: msg}
}

// send performs one HTTP round trip and slurps the response body. It never
// retries; retry policy lives in do.
func (c *Client) send(ctx context.Context, method, path string, payload []byte, token string) (int, []byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("backend request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", err)
	}

	return resp.StatusCode, body, nil
}

// credentialPaths are login-style endpoints whose 401s mean "bad
// credentials", not "stale token". Those are surfaced directly instead of
// triggering a refresh.
var credentialPaths = map[string]bool{
	"/auth/login":       true,
	"/auth/admin-login": true,
	"/auth/register":    true,
}

// do runs one backend operation: marshal, rate-limit, send, refresh-and-
// replay once on 401, normalize errors, decode into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	start := time.Now()
	logRequest(method, path)

	token := c.tokens.Token()
	status, data, err := c.send(ctx, method, path, payload, token)
	if err != nil {
		logError(method+" "+path, err)
		return &Error{Status: 0, Message: genericMessage}
	}

	if status == http.StatusUnauthorized && token != "" && !credentialPaths[path] {
		newToken, refreshErr := c.refreshToken(ctx, token)
		if refreshErr != nil {
			// Refresh failed: clear the token and force the login view.
			// The original 401 is what gets surfaced.
			if clearErr := c.tokens.ClearToken(); clearErr != nil {
				logError("clear token", clearErr)
			}
			if c.onAuthExpired != nil {
				c.onAuthExpired()
			}
			logResponse(method, path, status, time.Since(start))
			return normalize(status, data)
		}

		if setErr := c.tokens.SetToken(newToken); setErr != nil {
			logError("store token", setErr)
		}

		// Replay exactly once. A second 401 falls through to normalize
		// below; it is never retried again.
		status, data, err = c.send(ctx, method, path, payload, newToken)
		if err != nil {
			logError(method+" "+path, err)
			return &Error{Status: 0, Message: genericMessage}
		}
	}

	logResponse(method, path, status, time.Since(start))

	if status >= 400 {
		return normalize(status, data)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}

// refreshToken exchanges the current token for a fresh one. It bypasses do
// so a failing refresh can never recurse into another refresh.
func (c *Client) refreshToken(ctx context.Context, token string) (string, error) {
	status, data, err := c.send(ctx, http.MethodGet, "/auth/refresh", nil, token)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", normalize(status, data)
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("decode refresh response: %w", err)
	}
	if resp.Token == "" {
		return "", fmt.Errorf("refresh returned empty token")
	}
	return resp.Token, nil
}

// Credentials is the login payload for regular users.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminCredentials is the payload for the legacy admin login endpoint.
type AdminCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterInput creates a new account.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// ProfileUpdate is the payload for PUT /users/me.
type ProfileUpdate struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// AuthResponse is what every credential exchange returns.
type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (c *Client) Register(ctx context.Context, input RegisterInput) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", input, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", creds, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) AdminLogin(ctx context.Context, creds AdminCredentials) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/admin-login", creds, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me fetches the user the current token belongs to.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Refresh explicitly exchanges the current token for a new one and stores
// it. Used by the session store's periodic refresh.
func (c *Client) Refresh(ctx context.Context) error {
	token := c.tokens.Token()
	if token == "" {
		return &Error{Status: http.StatusUnauthorized, Message: "no token to refresh"}
	}
	newToken, err := c.refreshToken(ctx, token)
	if err != nil {
		return err
	}
	return c.tokens.SetToken(newToken)
}

func (c *Client) UpdateMe(ctx context.Context, input ProfileUpdate) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPut, "/users/me", input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Workshops(ctx context.Context) ([]models.Workshop, error) {
	var out []models.Workshop
	if err := c.do(ctx, http.MethodGet, "/workshops", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Workshop(ctx context.Context, id string) (*models.Workshop, error) {
	var out models.Workshop
	if err := c.do(ctx, http.MethodGet, "/workshops/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateWorkshop(ctx context.Context, w models.Workshop) (*models.Workshop, error) {
	var out models.Workshop
	if err := c.do(ctx, http.MethodPost, "/workshops", w, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateWorkshop(ctx context.Context, id string, w models.Workshop) (*models.Workshop, error) {
	var out models.Workshop
	if err := c.do(ctx, http.MethodPut, "/workshops/"+id, w, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteWorkshop(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/workshops/"+id, nil, nil)
}

// SubmitRegistration is the guest submission path.
func (c *Client) SubmitRegistration(ctx context.Context, draft models.RegistrationDraft) (*models.Registration, error) {
	var out models.Registration
	if err := c.do(ctx, http.MethodPost, "/workshops/register", draft, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitRegistrationWithAccount is the authenticated submission path. It
// accepts the same draft shape as the guest path.
func (c *Client) SubmitRegistrationWithAccount(ctx context.Context, draft models.RegistrationDraft) (*models.Registration, error) {
	var out models.Registration
	if err := c.do(ctx, http.MethodPost, "/workshops/register/with-account", draft, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MyRegistrations returns the current user's registrations.
func (c *Client) MyRegistrations(ctx context.Context) ([]models.Registration, error) {
	var out []models.Registration
	if err := c.do(ctx, http.MethodGet, "/registrations/user", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Registrations(ctx context.Context) ([]models.Registration, error) {
	var out []models.Registration
	if err := c.do(ctx, http.MethodGet, "/registrations", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Registration(ctx context.Context, id string) (*models.Registration, error) {
	var out models.Registration
	if err := c.do(ctx, http.MethodGet, "/registrations/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateRegistration(ctx context.Context, id string, reg models.Registration) (*models.Registration, error) {
	var out models.Registration
	if err := c.do(ctx, http.MethodPut, "/registrations/"+id, reg, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteRegistration(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/registrations/"+id, nil, nil)
}

func (c *Client) Users(ctx context.Context) ([]models.User, error) {
	var out []models.User
	if err := c.do(ctx, http.MethodGet, "/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateUserRole(ctx context.Context, id, role string) (*models.User, error) {
	payload := map[string]string{"role": role}
	var out models.User
	if err := c.do(ctx, http.MethodPut, "/users/"+id+"/role", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+id, nil, nil)
}

func (c *Client) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	var out models.DashboardStats
	if err := c.do(ctx, http.MethodGet, "/admin/dashboard", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
