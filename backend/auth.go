package backend

import (
	"context"
	"net/http"

	"github.com/pkg/errors"

	"github.com/amodkhurasiya/tribal-crafts-server/session"
)

// ErrAdminRequired means admin login succeeded as a user but the account
// carries no admin role.
var ErrAdminRequired = errors.New("admin privileges required")

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User  session.User `json:"user"`
	Token string       `json:"token"`
}

func (c *Client) Login(ctx context.Context, creds Credentials) (session.Session, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", creds, &resp); err != nil {
		return session.Session{}, errors.Wrap(err, "[Client.Login]")
	}
	return session.Session{User: resp.User, Token: resp.Token}, nil
}

// AdminLogin authenticates against the admin endpoint and additionally
// insists the returned account is an admin; the backend has been known to
// answer 200 for plain users here.
func (c *Client) AdminLogin(ctx context.Context, creds Credentials) (session.Session, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/admin-login", "", creds, &resp); err != nil {
		return session.Session{}, errors.Wrap(err, "[Client.AdminLogin]")
	}
	if !resp.User.IsAdmin() {
		return session.Session{}, ErrAdminRequired
	}
	return session.Session{User: resp.User, Token: resp.Token}, nil
}

func (c *Client) Register(ctx context.Context, reg Registration) (session.Session, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", reg, &resp); err != nil {
		return session.Session{}, errors.Wrap(err, "[Client.Register]")
	}
	return session.Session{User: resp.User, Token: resp.Token}, nil
}

// RefreshToken exchanges a token for a fresh one. Any failure is final from
// the caller's point of view: the session layer invalidates on it.
func (c *Client) RefreshToken(ctx context.Context, token string) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/refresh-token", token, nil, &resp); err != nil {
		return "", errors.Wrap(err, "[Client.RefreshToken]")
	}
	if resp.Token == "" {
		return "", errors.New("[Client.RefreshToken] backend returned no token")
	}
	return resp.Token, nil
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	if err := c.do(ctx, http.MethodPost, "/auth/forgot-password", "", body, nil); err != nil {
		return errors.Wrap(err, "[Client.ForgotPassword]")
	}
	return nil
}

func (c *Client) ResetPassword(ctx context.Context, resetToken, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/reset-password/"+resetToken, "", body, nil); err != nil {
		return errors.Wrap(err, "[Client.ResetPassword]")
	}
	return nil
}
