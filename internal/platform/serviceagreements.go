package platform

import (
	"context"
	"net/http"

	"github.com/frahmantamala/bankseed/internal"
	"github.com/frahmantamala/bankseed/internal/core/datamodel/user"
)

// GetMasterServiceAgreement returns the master service agreement of a legal
// entity, addressed by the legal entity's internal ID.
func (c *Client) GetMasterServiceAgreement(ctx context.Context, session Session, internalLegalEntityID string) (*user.ServiceAgreement, error) {
	var sa user.ServiceAgreement
	url := c.config.AccessURL + "/legalentities/" + internalLegalEntityID + "/serviceagreements/master"
	if err := c.get(ctx, session, url, &sa); err != nil {
		if internal.IsNotFound(err) {
			return nil, internal.NewNotFoundError("master service agreement of legal entity "+internalLegalEntityID,
				internal.ErrCodeServiceAgreementNotFound)
		}
		return nil, err
	}
	return &sa, nil
}

// RetrieveServiceAgreement fetches a service agreement by internal ID, the
// only lookup that exposes its external ID.
func (c *Client) RetrieveServiceAgreement(ctx context.Context, session Session, internalServiceAgreementID string) (*user.ServiceAgreement, error) {
	var sa user.ServiceAgreement
	url := c.config.AccessURL + "/serviceagreements/" + internalServiceAgreementID
	if err := c.get(ctx, session, url, &sa); err != nil {
		if internal.IsNotFound(err) {
			return nil, internal.NewNotFoundError("service agreement "+internalServiceAgreementID,
				internal.ErrCodeServiceAgreementNotFound)
		}
		return nil, err
	}
	return &sa, nil
}

// UpdateServiceAgreementExternalID assigns an external ID to a master service
// agreement, the only update operation in a seeding run.
func (c *Client) UpdateServiceAgreementExternalID(ctx context.Context, session Session, internalServiceAgreementID, externalID string) error {
	url := c.config.AccessURL + "/serviceagreements/" + internalServiceAgreementID
	return c.put(ctx, session, url, user.ServiceAgreementPutRequest{ExternalID: externalID}, http.StatusOK)
}
