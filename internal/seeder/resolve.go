package seeder

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/bankseed/internal/core/datamodel/user"
	"github.com/frahmantamala/bankseed/internal/platform"
)

// Resolver bridges the addressing mismatch between this tool's fixtures
// (keyed by external IDs) and the platform's write operations (keyed by
// internal IDs).
type Resolver struct {
	client *platform.Client
	logger *slog.Logger
}

func NewResolver(client *platform.Client, logger *slog.Logger) *Resolver {
	return &Resolver{
		client: client,
		logger: logger,
	}
}

// ResolveUserContext walks the strict dependency chain
// user -> legal entity -> master service agreement -> external agreement ID
// and returns the six-field context. The first failing lookup aborts the
// chain; no partial context is ever returned.
func (r *Resolver) ResolveUserContext(ctx context.Context, session platform.Session, externalUserID string) (*user.Context, error) {
	u, err := r.client.GetUserByExternalID(ctx, session, externalUserID)
	if err != nil {
		return nil, err
	}

	legalEntity, err := r.client.RetrieveLegalEntityByExternalUserID(ctx, session, externalUserID)
	if err != nil {
		return nil, err
	}

	masterAgreement, err := r.client.GetMasterServiceAgreement(ctx, session, legalEntity.ID)
	if err != nil {
		return nil, err
	}

	agreement, err := r.client.RetrieveServiceAgreement(ctx, session, masterAgreement.ID)
	if err != nil {
		return nil, err
	}

	userContext := &user.Context{
		InternalUserID:             u.ID,
		ExternalUserID:             externalUserID,
		InternalServiceAgreementID: masterAgreement.ID,
		ExternalServiceAgreementID: agreement.ExternalID,
		InternalLegalEntityID:      legalEntity.ID,
		ExternalLegalEntityID:      legalEntity.ExternalID,
	}
	if err := userContext.Validate(); err != nil {
		return nil, err
	}

	r.logger.Debug("user context resolved",
		"external_user_id", externalUserID,
		"internal_user_id", u.ID,
		"internal_service_agreement_id", masterAgreement.ID,
		"external_service_agreement_id", agreement.ExternalID,
		"internal_legal_entity_id", legalEntity.ID,
		"external_legal_entity_id", legalEntity.ExternalID)

	return userContext, nil
}
