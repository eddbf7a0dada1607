package seeder

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/bankseed/internal"
	"github.com/frahmantamala/bankseed/internal/core/datamodel/accessgroup"
	"github.com/frahmantamala/bankseed/internal/core/datamodel/arrangement"
	"github.com/frahmantamala/bankseed/internal/platform"
)

// AccessGroupsConfigurator creates the entitlement primitives: data groups
// over arrangements and function groups over business functions.
type AccessGroupsConfigurator struct {
	client *platform.Client
	logger *slog.Logger
}

func NewAccessGroupsConfigurator(client *platform.Client, logger *slog.Logger) *AccessGroupsConfigurator {
	return &AccessGroupsConfigurator{
		client: client,
		logger: logger,
	}
}

// IngestDataGroupForArrangements creates one data group referencing the
// arrangements by internal ID and returns the data group's internal ID.
func (a *AccessGroupsConfigurator) IngestDataGroupForArrangements(ctx context.Context, session platform.Session, externalServiceAgreementID, name string, arrangementIDs []arrangement.ID) (string, error) {
	items := make([]string, 0, len(arrangementIDs))
	for _, id := range arrangementIDs {
		items = append(items, id.Internal)
	}

	dataGroupID, err := a.client.IngestDataGroup(ctx, session, accessgroup.DataGroupPostRequest{
		Name:                       name,
		Description:                name,
		ExternalServiceAgreementID: externalServiceAgreementID,
		Type:                       accessgroup.DataGroupTypeArrangements,
		Items:                      items,
	})
	if err != nil {
		return "", err
	}

	a.logger.Info("data group ingested",
		"data_group_id", dataGroupID,
		"name", name,
		"external_service_agreement_id", externalServiceAgreementID,
		"arrangements", len(items))

	return dataGroupID, nil
}

// SetupFunctionGroupWithAllPrivileges creates a function group granting every
// privilege of the given function. Used on master service agreements, where
// this run owns the group.
func (a *AccessGroupsConfigurator) SetupFunctionGroupWithAllPrivileges(ctx context.Context, session platform.Session, externalServiceAgreementID string, function accessgroup.Function) (string, error) {
	functionGroupID, err := a.client.IngestFunctionGroup(ctx, session, accessgroup.FunctionGroupPostRequest{
		Name:                       function.Name,
		Description:                function.Name,
		ExternalServiceAgreementID: externalServiceAgreementID,
		Permissions: []accessgroup.FunctionPermission{
			{
				FunctionID: function.FunctionID,
				Privileges: allPrivileges(function),
			},
		},
	})
	if err != nil {
		return "", err
	}

	a.logger.Info("function group ingested",
		"function_group_id", functionGroupID,
		"function", function.Name,
		"external_service_agreement_id", externalServiceAgreementID)

	return functionGroupID, nil
}

// LocateOrIngestFunctionGroup attaches to an existing function group on a
// shared service agreement, creating it only when no earlier run provisioned
// one under the function's name.
func (a *AccessGroupsConfigurator) LocateOrIngestFunctionGroup(ctx context.Context, session platform.Session, externalServiceAgreementID string, function accessgroup.Function) (string, error) {
	functionGroupID, err := a.client.RetrieveFunctionGroupByName(ctx, session, externalServiceAgreementID, function.Name)
	if err == nil {
		a.logger.Debug("function group located",
			"function_group_id", functionGroupID,
			"function", function.Name)
		return functionGroupID, nil
	}
	if !internal.IsNotFound(err) {
		return "", err
	}

	return a.SetupFunctionGroupWithAllPrivileges(ctx, session, externalServiceAgreementID, function)
}

func allPrivileges(function accessgroup.Function) []string {
	privileges := make([]string, 0, len(function.Privileges))
	for _, p := range function.Privileges {
		privileges = append(privileges, p.Privilege)
	}
	return privileges
}
