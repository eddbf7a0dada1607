package platform

import (
	"context"
	"net/http"

	"github.com/frahmantamala/bankseed/internal"
)

// Session is the authenticated caller identity for one sequence of calls. It
// is an immutable value: Login and SelectContext return new Sessions instead
// of mutating shared state, so concurrent branches can each hold their own
// without synchronization.
type Session struct {
	Token string
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login authenticates against the platform and returns a fresh session.
func (c *Client) Login(ctx context.Context, username, password string) (Session, error) {
	var resp loginResponse
	err := c.postExpect(ctx, Session{}, c.config.UsersURL+"/login",
		loginRequest{Username: username, Password: password}, http.StatusOK, &resp)
	if err != nil {
		appErr := internal.NewExternalError("login failed for "+username, err)
		appErr.Code = internal.ErrCodeLoginFailed
		return Session{}, appErr
	}

	c.logger.Debug("logged in", "username", username)
	return Session{Token: resp.Token}, nil
}

type selectContextRequest struct {
	ServiceAgreementID string `json:"serviceAgreementId,omitempty"`
}

type selectContextResponse struct {
	Token string `json:"token"`
}

// SelectContext switches the session to the caller's master service
// agreement and returns the derived session. The input session is unchanged.
func (c *Client) SelectContext(ctx context.Context, session Session) (Session, error) {
	var resp selectContextResponse
	err := c.postExpect(ctx, session, c.config.UsersURL+"/usercontext",
		selectContextRequest{}, http.StatusOK, &resp)
	if err != nil {
		return Session{}, err
	}

	// Some platform versions keep the token stable across context selection.
	if resp.Token == "" {
		return session, nil
	}
	return Session{Token: resp.Token}, nil
}
