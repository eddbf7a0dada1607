package seeder

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/bankseed/internal/core/datamodel/accessgroup"
	"github.com/frahmantamala/bankseed/internal/platform"
)

// PermissionsConfigurator assigns the permission triple {user, function
// group, data groups} under a service agreement.
type PermissionsConfigurator struct {
	client *platform.Client
	logger *slog.Logger
}

func NewPermissionsConfigurator(client *platform.Client, logger *slog.Logger) *PermissionsConfigurator {
	return &PermissionsConfigurator{
		client: client,
		logger: logger,
	}
}

func (p *PermissionsConfigurator) AssignPermissions(ctx context.Context, session platform.Session, externalUserID, internalServiceAgreementID, functionName, functionGroupID string, dataGroup *accessgroup.CurrencyDataGroup) error {
	err := p.client.AssignPermissions(ctx, session, accessgroup.PermissionsPostRequest{
		ExternalUserID:             externalUserID,
		InternalServiceAgreementID: internalServiceAgreementID,
		FunctionGroupID:            functionGroupID,
		DataGroupIDs:               dataGroup.IDs(),
	})
	if err != nil {
		return err
	}

	p.logger.Info("permissions assigned",
		"external_user_id", externalUserID,
		"function", functionName,
		"function_group_id", functionGroupID,
		"internal_service_agreement_id", internalServiceAgreementID)

	return nil
}
