package seeder

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/bankseed/internal/core/datamodel/user"
	"github.com/frahmantamala/bankseed/internal/platform"
)

// LegalEntitiesAndUsersConfigurator provisions one fresh legal entity per
// user batch and the users beneath it.
type LegalEntitiesAndUsersConfigurator struct {
	client *platform.Client
	logger *slog.Logger
}

func NewLegalEntitiesAndUsersConfigurator(client *platform.Client, logger *slog.Logger) *LegalEntitiesAndUsersConfigurator {
	return &LegalEntitiesAndUsersConfigurator{
		client: client,
		logger: logger,
	}
}

// IngestUsersUnderNewLegalEntity creates a legal entity under the external
// root legal entity and every listed user beneath it. The legal entity's
// external ID is derived from the first user so re-runs hit the duplicate
// path instead of multiplying entities.
func (l *LegalEntitiesAndUsersConfigurator) IngestUsersUnderNewLegalEntity(ctx context.Context, session platform.Session, externalUserIDs []string, rootLegalEntityExternalID string) error {
	if len(externalUserIDs) == 0 {
		return nil
	}

	externalLegalEntityID := "le-" + externalUserIDs[0]

	outcome, err := CreateOrSkip(func() (*http.Response, error) {
		return l.client.IngestLegalEntity(ctx, session, user.LegalEntityPostRequest{
			ExternalID:       externalLegalEntityID,
			Name:             "Legal entity " + externalLegalEntityID,
			ParentExternalID: rootLegalEntityExternalID,
			Type:             "CUSTOMER",
		})
	}, platform.ErrKeyLegalEntityExists, nil)
	if err != nil {
		return err
	}

	if outcome == OutcomeSkipped {
		l.logger.Info("legal entity already exists, skipped", "external_legal_entity_id", externalLegalEntityID)
	} else {
		l.logger.Info("legal entity ingested",
			"external_legal_entity_id", externalLegalEntityID,
			"parent_external_legal_entity_id", rootLegalEntityExternalID)
	}

	for _, externalUserID := range externalUserIDs {
		outcome, err := CreateOrSkip(func() (*http.Response, error) {
			return l.client.IngestUser(ctx, session, user.UserPostRequest{
				ExternalID:            externalUserID,
				LegalEntityExternalID: externalLegalEntityID,
				FullName:              externalUserID,
			})
		}, platform.ErrKeyUserExists, nil)
		if err != nil {
			return err
		}

		if outcome == OutcomeSkipped {
			l.logger.Info("user already exists, skipped", "external_user_id", externalUserID)
		} else {
			l.logger.Info("user ingested",
				"external_user_id", externalUserID,
				"external_legal_entity_id", externalLegalEntityID)
		}
	}

	return nil
}
