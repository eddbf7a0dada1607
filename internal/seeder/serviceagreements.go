package seeder

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/bankseed/internal/platform"
)

// ServiceAgreementsConfigurator handles the one update operation in a run:
// giving an auto-created master service agreement an external ID so later
// steps can address it by either form.
type ServiceAgreementsConfigurator struct {
	client *platform.Client
	logger *slog.Logger
}

func NewServiceAgreementsConfigurator(client *platform.Client, logger *slog.Logger) *ServiceAgreementsConfigurator {
	return &ServiceAgreementsConfigurator{
		client: client,
		logger: logger,
	}
}

// UpdateMasterServiceAgreementWithExternalID looks up the master service
// agreement of a legal entity and, when it has no external ID yet, assigns a
// deterministic one derived from the legal entity's external ID so re-runs
// converge on the same value.
func (s *ServiceAgreementsConfigurator) UpdateMasterServiceAgreementWithExternalID(ctx context.Context, session platform.Session, internalLegalEntityID, externalLegalEntityID string) error {
	sa, err := s.client.GetMasterServiceAgreement(ctx, session, internalLegalEntityID)
	if err != nil {
		return err
	}

	if sa.ExternalID != "" {
		s.logger.Debug("master service agreement already has an external ID",
			"internal_service_agreement_id", sa.ID,
			"external_service_agreement_id", sa.ExternalID)
		return nil
	}

	externalID := "sa-" + externalLegalEntityID
	if err := s.client.UpdateServiceAgreementExternalID(ctx, session, sa.ID, externalID); err != nil {
		return err
	}

	s.logger.Info("master service agreement updated with external ID",
		"internal_service_agreement_id", sa.ID,
		"external_service_agreement_id", externalID)

	return nil
}
