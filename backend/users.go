package backend

import (
	"context"
	"net/http"

	"github.com/pkg/errors"

	"github.com/amodkhurasiya/tribal-crafts-server/session"
)

type ProfileUpdate struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

func (c *Client) Profile(ctx context.Context, token string) (session.User, error) {
	var user session.User
	if err := c.do(ctx, http.MethodGet, "/users/profile", token, nil, &user); err != nil {
		return session.User{}, errors.Wrap(err, "[Client.Profile]")
	}
	return user, nil
}

func (c *Client) UpdateProfile(ctx context.Context, token string, update ProfileUpdate) (session.User, error) {
	var user session.User
	if err := c.do(ctx, http.MethodPut, "/users/profile", token, update, &user); err != nil {
		return session.User{}, errors.Wrap(err, "[Client.UpdateProfile]")
	}
	return user, nil
}

func (c *Client) ChangePassword(ctx context.Context, token, current, next string) error {
	body := map[string]string{"currentPassword": current, "newPassword": next}
	if err := c.do(ctx, http.MethodPost, "/users/change-password", token, body, nil); err != nil {
		return errors.Wrap(err, "[Client.ChangePassword]")
	}
	return nil
}

func (c *Client) DeleteAccount(ctx context.Context, token string) error {
	if err := c.do(ctx, http.MethodDelete, "/users/delete-account", token, nil, nil); err != nil {
		return errors.Wrap(err, "[Client.DeleteAccount]")
	}
	return nil
}
