package platform

import (
	"context"
	"net/http"

	"github.com/frahmantamala/bankseed/internal"
	"github.com/frahmantamala/bankseed/internal/core/datamodel/user"
)

// Error keys returned when a legal entity or user was already provisioned.
const (
	ErrKeyLegalEntityExists = "legalentities.api.alreadyExists.legalEntity"
	ErrKeyUserExists        = "users.api.alreadyExists.user"
)

// GetUserByExternalID translates an external user ID into the full user
// record. The fixtures are keyed by external ID while most write operations
// need the internal one.
func (c *Client) GetUserByExternalID(ctx context.Context, session Session, externalUserID string) (*user.User, error) {
	var u user.User
	url := c.config.UsersURL + "/users/externalids/" + externalUserID
	if err := c.get(ctx, session, url, &u); err != nil {
		if internal.IsNotFound(err) {
			return nil, internal.NewNotFoundError("user "+externalUserID, internal.ErrCodeUserNotFound)
		}
		return nil, err
	}
	return &u, nil
}

// RetrieveLegalEntityByExternalUserID looks up the legal entity owning the
// given user.
func (c *Client) RetrieveLegalEntityByExternalUserID(ctx context.Context, session Session, externalUserID string) (*user.LegalEntity, error) {
	var le user.LegalEntity
	url := c.config.UsersURL + "/users/externalids/" + externalUserID + "/legalentities"
	if err := c.get(ctx, session, url, &le); err != nil {
		if internal.IsNotFound(err) {
			return nil, internal.NewNotFoundError("legal entity for user "+externalUserID, internal.ErrCodeLegalEntityNotFound)
		}
		return nil, err
	}
	return &le, nil
}

// IngestLegalEntity posts one legal entity; the raw response feeds the
// created/skipped/failed decision.
func (c *Client) IngestLegalEntity(ctx context.Context, session Session, body user.LegalEntityPostRequest) (*http.Response, error) {
	return c.post(ctx, session, c.config.UsersURL+"/legalentities", body)
}

// IngestUser posts one user under an existing legal entity.
func (c *Client) IngestUser(ctx context.Context, session Session, body user.UserPostRequest) (*http.Response, error) {
	return c.post(ctx, session, c.config.UsersURL+"/users", body)
}
