package seeder

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/frahmantamala/bankseed/internal"
	"github.com/frahmantamala/bankseed/internal/core/datamodel/accessgroup"
	"github.com/frahmantamala/bankseed/internal/core/datamodel/arrangement"
	"github.com/frahmantamala/bankseed/internal/core/datamodel/user"
	"github.com/frahmantamala/bankseed/internal/fixture"
	"github.com/frahmantamala/bankseed/internal/platform"
)

// UsersSetup orchestrates a full seeding run: legal entities and users,
// arrangements bucketed by currency, data groups, function groups and
// permission assignments, plus the optional engagement stages.
type UsersSetup struct {
	client            *platform.Client
	config            *internal.Config
	logger            *slog.Logger
	productSummary    *ProductSummaryConfigurator
	accessGroups      *AccessGroupsConfigurator
	permissions       *PermissionsConfigurator
	serviceAgreements *ServiceAgreementsConfigurator
	legalEntities     *LegalEntitiesAndUsersConfigurator
	engagement        *EngagementConfigurator
	pockets           *PocketsConfigurator
	resolver          *Resolver

	userLists []user.List
}

func NewUsersSetup(client *platform.Client, config *internal.Config, logger *slog.Logger) (*UsersSetup, error) {
	userLists, err := fixture.LoadUserLists(config.Seed.UsersJSON)
	if err != nil {
		return nil, err
	}

	return &UsersSetup{
		client:            client,
		config:            config,
		logger:            logger,
		productSummary:    NewProductSummaryConfigurator(client, logger),
		accessGroups:      NewAccessGroupsConfigurator(client, logger),
		permissions:       NewPermissionsConfigurator(client, logger),
		serviceAgreements: NewServiceAgreementsConfigurator(client, logger),
		legalEntities:     NewLegalEntitiesAndUsersConfigurator(client, logger),
		engagement:        NewEngagementConfigurator(client, logger),
		pockets:           NewPocketsConfigurator(client, logger),
		resolver:          NewResolver(client, logger),
		userLists:         userLists,
	}, nil
}

// adminSession logs in as the configured admin and selects the master
// service agreement context. Each caller gets its own immutable session, so
// concurrent branches never share a mutable login.
func (s *UsersSetup) adminSession(ctx context.Context) (platform.Session, error) {
	session, err := s.client.Login(ctx, s.config.Platform.AdminUsername, s.config.Platform.AdminPassword)
	if err != nil {
		return platform.Session{}, err
	}
	return s.client.SelectContext(ctx, session)
}

// SetupProducts ingests the product catalog arrangements will reference.
func (s *UsersSetup) SetupProducts(ctx context.Context) error {
	session, err := s.adminSession(ctx)
	if err != nil {
		return err
	}
	return s.productSummary.IngestProducts(ctx, session)
}

// SetupUsersWithAndWithoutPermissions runs the entitlement stage: every
// batch from the users fixture gets a fresh legal entity, full entitlements
// and arrangements; the without-permissions cohort only gets the legal
// entity and users, ingested in parallel since the batches are independent.
func (s *UsersSetup) SetupUsersWithAndWithoutPermissions(ctx context.Context) error {
	if !s.config.Ingest.Entitlements {
		s.logger.Info("entitlement ingestion disabled, skipping user setup")
		return nil
	}

	for _, list := range s.userLists {
		session, err := s.adminSession(ctx)
		if err != nil {
			return err
		}

		err = s.legalEntities.IngestUsersUnderNewLegalEntity(ctx, session, list.ExternalUserIDs, s.config.Platform.RootLegalEntityID)
		if err != nil {
			return err
		}

		if err := s.setupUsersWithAllFunctionDataGroupsAndPrivileges(ctx, list.ExternalUserIDs); err != nil {
			return err
		}
	}

	withoutPermissions, err := fixture.LoadUserLists(s.config.Seed.UsersWithoutPermissionsJSON)
	if err != nil {
		return err
	}

	// No errgroup context cancellation here: a failed batch must not stop
	// its independent siblings.
	var g errgroup.Group
	for _, list := range withoutPermissions {
		list := list
		g.Go(func() error {
			session, err := s.adminSession(ctx)
			if err != nil {
				return err
			}
			return s.legalEntities.IngestUsersUnderNewLegalEntity(ctx, session, list.ExternalUserIDs, s.config.Platform.RootLegalEntityID)
		})
	}

	return g.Wait()
}

func (s *UsersSetup) setupUsersWithAllFunctionDataGroupsAndPrivileges(ctx context.Context, externalUserIDs []string) error {
	session, err := s.adminSession(ctx)
	if err != nil {
		return err
	}

	// Master service agreements are auto-created without an external ID;
	// assign one per distinct legal entity before anything addresses them
	// externally.
	legalEntityIDs := make(map[string]string)
	for _, externalUserID := range externalUserIDs {
		legalEntity, err := s.client.RetrieveLegalEntityByExternalUserID(ctx, session, externalUserID)
		if err != nil {
			return err
		}
		legalEntityIDs[legalEntity.ID] = legalEntity.ExternalID
	}

	for internalID, externalID := range legalEntityIDs {
		if err := s.serviceAgreements.UpdateMasterServiceAgreementWithExternalID(ctx, session, internalID, externalID); err != nil {
			return err
		}
	}

	userContexts := make([]*user.Context, 0, len(externalUserIDs))
	agreementLegalEntities := make(map[string]string)
	for _, externalUserID := range externalUserIDs {
		userContext, err := s.resolver.ResolveUserContext(ctx, session, externalUserID)
		if err != nil {
			return err
		}
		userContexts = append(userContexts, userContext)
		agreementLegalEntities[userContext.ExternalServiceAgreementID] = userContext.ExternalLegalEntityID
	}

	agreementDataGroups := make(map[string]*accessgroup.CurrencyDataGroup)
	for externalServiceAgreementID, externalLegalEntityID := range agreementLegalEntities {
		dataGroup, err := s.SetupArrangementsPerDataGroup(ctx, session, externalServiceAgreementID, externalLegalEntityID)
		if err != nil {
			return err
		}
		agreementDataGroups[externalServiceAgreementID] = dataGroup
	}

	for _, userContext := range userContexts {
		dataGroup := agreementDataGroups[userContext.ExternalServiceAgreementID]
		if err := s.setupFunctionGroupsAndAssignPermissions(ctx, session, userContext, dataGroup, true); err != nil {
			return err
		}
	}

	return nil
}

// SetupArrangementsPerDataGroup ingests the three currency-bucketed
// arrangement batches for a legal entity and creates one data group per
// bucket. The three buckets come into existence together: any failure fails
// the whole call rather than leaving one or two buckets populated.
func (s *UsersSetup) SetupArrangementsPerDataGroup(ctx context.Context, session platform.Session, externalServiceAgreementID, externalLegalEntityID string) (*accessgroup.CurrencyDataGroup, error) {
	randomIDs, err := s.productSummary.IngestArrangements(ctx, session, externalLegalEntityID, "", s.config.Seed.RandomCurrencyArrangements)
	if err != nil {
		return nil, err
	}

	eurIDs, err := s.productSummary.IngestArrangements(ctx, session, externalLegalEntityID, arrangement.CurrencyEUR, s.config.Seed.EurCurrencyArrangements)
	if err != nil {
		return nil, err
	}

	usdIDs, err := s.productSummary.IngestArrangements(ctx, session, externalLegalEntityID, arrangement.CurrencyUSD, s.config.Seed.UsdCurrencyArrangements)
	if err != nil {
		return nil, err
	}

	randomGroupID, err := s.accessGroups.IngestDataGroupForArrangements(ctx, session, externalServiceAgreementID, "Random currency arrangements", randomIDs)
	if err != nil {
		return nil, err
	}
	eurGroupID, err := s.accessGroups.IngestDataGroupForArrangements(ctx, session, externalServiceAgreementID, "EUR arrangements", eurIDs)
	if err != nil {
		return nil, err
	}
	usdGroupID, err := s.accessGroups.IngestDataGroupForArrangements(ctx, session, externalServiceAgreementID, "USD arrangements", usdIDs)
	if err != nil {
		return nil, err
	}

	dataGroup := &accessgroup.CurrencyDataGroup{
		RandomCurrencyID: randomGroupID,
		EurCurrencyID:    eurGroupID,
		UsdCurrencyID:    usdGroupID,
	}
	if err := dataGroup.Validate(); err != nil {
		return nil, err
	}

	allIDs := make([]arrangement.ID, 0, len(randomIDs)+len(eurIDs)+len(usdIDs))
	allIDs = append(allIDs, randomIDs...)
	allIDs = append(allIDs, eurIDs...)
	allIDs = append(allIDs, usdIDs...)

	if s.config.Ingest.Transactions {
		var g errgroup.Group
		for _, id := range allIDs {
			id := id
			g.Go(func() error {
				return s.engagement.IngestTransactionsByArrangement(ctx, session, id.External)
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	if s.config.Ingest.BalanceHistory {
		var g errgroup.Group
		for _, id := range allIDs {
			id := id
			g.Go(func() error {
				return s.productSummary.IngestBalanceHistory(ctx, session, id.External)
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	return dataGroup, nil
}

// setupFunctionGroupsAndAssignPermissions walks every function the platform
// lists and ties {user, function group, data groups} together under the
// user's service agreement. Functions are processed in listing order.
func (s *UsersSetup) setupFunctionGroupsAndAssignPermissions(ctx context.Context, session platform.Session, userContext *user.Context, dataGroup *accessgroup.CurrencyDataGroup, masterServiceAgreement bool) error {
	functions, err := s.client.RetrieveFunctions(ctx, session)
	if err != nil {
		return err
	}

	for _, function := range functions {
		var functionGroupID string
		if masterServiceAgreement {
			functionGroupID, err = s.accessGroups.SetupFunctionGroupWithAllPrivileges(ctx, session, userContext.ExternalServiceAgreementID, function)
		} else {
			functionGroupID, err = s.accessGroups.LocateOrIngestFunctionGroup(ctx, session, userContext.ExternalServiceAgreementID, function)
		}
		if err != nil {
			return err
		}

		err = s.permissions.AssignPermissions(ctx, session, userContext.ExternalUserID,
			userContext.InternalServiceAgreementID, function.Name, functionGroupID, dataGroup)
		if err != nil {
			return err
		}
	}

	return nil
}

// SetupContactsPerUser populates each user's address book under that user's
// own session.
func (s *UsersSetup) SetupContactsPerUser(ctx context.Context) error {
	if !s.config.Ingest.Contacts {
		return nil
	}

	return s.forEachUser(func(externalUserID string) error {
		session, err := s.client.Login(ctx, externalUserID, externalUserID)
		if err != nil {
			return err
		}
		session, err = s.client.SelectContext(ctx, session)
		if err != nil {
			return err
		}
		return s.engagement.IngestContacts(ctx, session)
	})
}

// SetupPaymentsPerUser creates payment orders for each user under the admin
// session.
func (s *UsersSetup) SetupPaymentsPerUser(ctx context.Context) error {
	if !s.config.Ingest.Payments {
		return nil
	}

	session, err := s.adminSession(ctx)
	if err != nil {
		return err
	}

	return s.forEachUser(func(externalUserID string) error {
		return s.engagement.IngestPaymentOrders(ctx, session, externalUserID)
	})
}

// SetupConversationsPerUser starts conversations addressed to each user.
func (s *UsersSetup) SetupConversationsPerUser(ctx context.Context) error {
	if !s.config.Ingest.Conversations {
		return nil
	}

	session, err := s.adminSession(ctx)
	if err != nil {
		return err
	}

	return s.forEachUser(func(externalUserID string) error {
		return s.engagement.IngestConversations(ctx, session, externalUserID)
	})
}

// SetupPocketsPerUser provisions a pocket arrangement per user's legal
// entity and the user's pockets on top of it.
func (s *UsersSetup) SetupPocketsPerUser(ctx context.Context) error {
	if !s.config.Ingest.Pockets {
		return nil
	}

	return s.forEachUser(func(externalUserID string) error {
		adminSession, err := s.adminSession(ctx)
		if err != nil {
			return err
		}

		legalEntity, err := s.client.RetrieveLegalEntityByExternalUserID(ctx, adminSession, externalUserID)
		if err != nil {
			return err
		}

		if s.config.Seed.PocketsMode == internal.PocketsModeOneToOne {
			_, err = s.pockets.IngestChildPocketArrangement(ctx, adminSession, *legalEntity)
		} else {
			_, err = s.pockets.IngestParentPocketArrangement(ctx, adminSession, *legalEntity)
		}
		if err != nil {
			return err
		}

		userSession, err := s.client.Login(ctx, externalUserID, externalUserID)
		if err != nil {
			return err
		}
		userSession, err = s.client.SelectContext(ctx, userSession)
		if err != nil {
			return err
		}
		return s.pockets.IngestPockets(ctx, userSession, externalUserID)
	})
}

func (s *UsersSetup) forEachUser(fn func(externalUserID string) error) error {
	for _, list := range s.userLists {
		for _, externalUserID := range list.ExternalUserIDs {
			if err := fn(externalUserID); err != nil {
				return err
			}
		}
	}
	return nil
}
