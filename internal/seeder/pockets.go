package seeder

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/bankseed/internal/core/datamodel/accessgroup"
	"github.com/frahmantamala/bankseed/internal/core/datamodel/arrangement"
	"github.com/frahmantamala/bankseed/internal/core/datamodel/user"
	"github.com/frahmantamala/bankseed/internal/fixture"
	"github.com/frahmantamala/bankseed/internal/platform"
)

// PocketsConfigurator provisions pocket arrangements and pockets. A pocket
// arrangement must exist and be entitled (added to the legal entity's pocket
// data group) before pockets can be created against it.
type PocketsConfigurator struct {
	client *platform.Client
	logger *slog.Logger
}

func NewPocketsConfigurator(client *platform.Client, logger *slog.Logger) *PocketsConfigurator {
	return &PocketsConfigurator{
		client: client,
		logger: logger,
	}
}

// IngestParentPocketArrangement provisions the parent arrangement all of a
// legal entity's pockets nest under (1-to-many mode) and entitles it. An
// already provisioned parent reports an empty ID and touches nothing.
func (p *PocketsConfigurator) IngestParentPocketArrangement(ctx context.Context, session platform.Session, legalEntity user.LegalEntity) (string, error) {
	body := fixture.ParentPocketArrangement(legalEntity.ExternalID)
	return p.ingestPocketArrangement(ctx, session, legalEntity, body)
}

// IngestChildPocketArrangement provisions a standalone pocket arrangement
// (1-to-1 mode) and entitles it.
func (p *PocketsConfigurator) IngestChildPocketArrangement(ctx context.Context, session platform.Session, legalEntity user.LegalEntity) (string, error) {
	body := fixture.ChildPocketArrangement(legalEntity.ExternalID)
	return p.ingestPocketArrangement(ctx, session, legalEntity, body)
}

func (p *PocketsConfigurator) ingestPocketArrangement(ctx context.Context, session platform.Session, legalEntity user.LegalEntity, body arrangement.PostRequest) (string, error) {
	p.logger.Debug("going to ingest a pocket arrangement",
		"external_legal_entity_id", legalEntity.ExternalID,
		"kind", body.Kind)

	var created arrangement.PostResponse
	outcome, err := CreateOrSkip(func() (*http.Response, error) {
		return p.client.IngestArrangement(ctx, session, body)
	}, platform.ErrKeyArrangementExists, &created)
	if err != nil {
		return "", err
	}

	if outcome == OutcomeSkipped {
		p.logger.Info("pocket arrangement already exists, skipped",
			"external_legal_entity_id", legalEntity.ExternalID)
		return "", nil
	}

	p.logger.Info("pocket arrangement ingested",
		"external_legal_entity_id", legalEntity.ExternalID,
		"arrangement_id", created.ID)

	if err := p.client.PostSubscription(ctx, session, body.ExternalID, arrangement.Subscription{Identifier: "pockets"}); err != nil {
		return "", err
	}

	if err := p.updateDataGroupForPockets(ctx, session, created.ID, legalEntity); err != nil {
		return "", err
	}

	return created.ID, nil
}

// updateDataGroupForPockets adds the arrangement to the pocket data group of
// the legal entity's master service agreement, which is what grants the
// pocket service access to it.
func (p *PocketsConfigurator) updateDataGroupForPockets(ctx context.Context, session platform.Session, arrangementID string, legalEntity user.LegalEntity) error {
	externalServiceAgreementID, err := p.externalServiceAgreementID(ctx, session, legalEntity)
	if err != nil {
		return err
	}

	err = p.client.UpdateDataGroupItems(ctx, session, accessgroup.DataGroupItemsPutRequest{
		ExternalServiceAgreementID: externalServiceAgreementID,
		Type:                       accessgroup.DataGroupTypeArrangements,
		Items:                      []string{arrangementID},
	})
	if err != nil {
		return err
	}

	p.logger.Debug("pocket data group updated",
		"arrangement_id", arrangementID,
		"external_service_agreement_id", externalServiceAgreementID)

	return nil
}

func (p *PocketsConfigurator) externalServiceAgreementID(ctx context.Context, session platform.Session, legalEntity user.LegalEntity) (string, error) {
	masterAgreement, err := p.client.GetMasterServiceAgreement(ctx, session, legalEntity.ID)
	if err != nil {
		return "", err
	}

	agreement, err := p.client.RetrieveServiceAgreement(ctx, session, masterAgreement.ID)
	if err != nil {
		return "", err
	}

	return agreement.ExternalID, nil
}

// IngestPockets creates the fixture pockets for the session's user.
func (p *PocketsConfigurator) IngestPockets(ctx context.Context, session platform.Session, externalUserID string) error {
	p.logger.Debug("going to ingest pockets", "external_user_id", externalUserID)

	for _, body := range fixture.Pockets() {
		created, err := p.client.IngestPocket(ctx, session, body)
		if err != nil {
			return err
		}
		p.logger.Info("pocket created",
			"pocket_id", created.ID,
			"name", created.Name,
			"external_user_id", externalUserID)
	}

	return nil
}
