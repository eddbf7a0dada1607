package user

import "errors"

type User struct {
	ID         string `json:"id"`
	ExternalID string `json:"externalId"`
	FullName   string `json:"fullName"`
}

type LegalEntity struct {
	ID         string `json:"id"`
	ExternalID string `json:"externalId"`
	Name       string `json:"name"`
}

type ServiceAgreement struct {
	ID         string `json:"id"`
	ExternalID string `json:"externalId"`
	Name       string `json:"name"`
}

// Context is the resolved identifier snapshot for one user: every write
// operation downstream addresses entities by one of these six fields.
// Immutable once constructed; Validate guards against partial resolution.
type Context struct {
	InternalUserID             string
	ExternalUserID             string
	InternalServiceAgreementID string
	ExternalServiceAgreementID string
	InternalLegalEntityID      string
	ExternalLegalEntityID      string
}

func (c *Context) Validate() error {
	fields := []string{
		c.InternalUserID,
		c.ExternalUserID,
		c.InternalServiceAgreementID,
		c.ExternalServiceAgreementID,
		c.InternalLegalEntityID,
		c.ExternalLegalEntityID,
	}
	for _, f := range fields {
		if f == "" {
			return errors.New("user context is not fully resolved")
		}
	}
	return nil
}

// List is one batch of target users from the JSON fixture.
type List struct {
	ExternalUserIDs []string `json:"externalUserIds"`
}

type LegalEntityPostRequest struct {
	ExternalID       string `json:"externalId"`
	Name             string `json:"name"`
	ParentExternalID string `json:"parentExternalId"`
	Type             string `json:"type"`
}

type UserPostRequest struct {
	ExternalID            string `json:"externalId"`
	LegalEntityExternalID string `json:"legalEntityExternalId"`
	FullName              string `json:"fullName"`
}

// ServiceAgreementPutRequest assigns an external ID to a master service
// agreement that was auto-created without one.
type ServiceAgreementPutRequest struct {
	ExternalID string `json:"externalId"`
}
