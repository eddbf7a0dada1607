package seeder_test

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/bankseed/internal"
	"github.com/frahmantamala/bankseed/internal/core/datamodel/accessgroup"
	"github.com/frahmantamala/bankseed/internal/core/datamodel/arrangement"
	"github.com/frahmantamala/bankseed/internal/core/datamodel/user"
	"github.com/frahmantamala/bankseed/internal/platform"
	"github.com/frahmantamala/bankseed/internal/platform/platformtest"
	"github.com/frahmantamala/bankseed/internal/seeder"
)

func writeFixtureFile(dir, name, content string) string {
	path := filepath.Join(dir, name)
	Expect(os.WriteFile(path, []byte(content), 0o600)).To(Succeed())
	return path
}

var _ = Describe("UsersSetup", func() {
	var (
		server *platformtest.Server
		config *internal.Config
		setup  *seeder.UsersSetup
		ctx    context.Context
	)

	newSetup := func() *seeder.UsersSetup {
		client := platform.NewClient(server.Config(), discardLogger())
		s, err := seeder.NewUsersSetup(client, config, discardLogger())
		Expect(err).NotTo(HaveOccurred())
		return s
	}

	BeforeEach(func() {
		ctx = context.Background()

		server = platformtest.NewServer()
		DeferCleanup(server.Close)

		server.AddUser("user-001", "usr-1",
			user.LegalEntity{ID: "LE-42", ExternalID: "le-user-001", Name: "Legal entity le-user-001"},
			"SA-100", "")
		server.SetFunctions([]accessgroup.Function{
			{FunctionID: "1010", Name: "Product Summary", Privileges: []accessgroup.Privilege{
				{Privilege: "view"}, {Privilege: "edit"},
			}},
			{FunctionID: "1020", Name: "Transactions", Privileges: []accessgroup.Privilege{
				{Privilege: "view"},
			}},
		})

		dir := GinkgoT().TempDir()
		usersJSON := writeFixtureFile(dir, "users.json",
			`[{"externalUserIds":["user-001"]}]`)
		withoutJSON := writeFixtureFile(dir, "users-without-permissions.json",
			`[{"externalUserIds":["user-100"]},{"externalUserIds":["user-200"]}]`)

		serviceURLs := server.Config()
		config = &internal.Config{
			Environment: "test",
			Platform: internal.PlatformConfig{
				ArrangementsURL:   serviceURLs.ArrangementsURL,
				AccessURL:         serviceURLs.AccessURL,
				UsersURL:          serviceURLs.UsersURL,
				PocketsURL:        serviceURLs.PocketsURL,
				EngagementURL:     serviceURLs.EngagementURL,
				AdminUsername:     "admin",
				AdminPassword:     "admin",
				RootLegalEntityID: "C000000",
			},
			Ingest: internal.IngestConfig{Entitlements: true},
			Seed: internal.SeedConfig{
				UsersJSON:                   usersJSON,
				UsersWithoutPermissionsJSON: withoutJSON,
				RandomCurrencyArrangements:  2,
				EurCurrencyArrangements:     1,
				UsdCurrencyArrangements:     1,
				PocketsMode:                 internal.PocketsModeOneToMany,
			},
		}

		setup = newSetup()
	})

	Describe("SetupUsersWithAndWithoutPermissions", func() {
		It("provisions arrangements, data groups and permissions for the batch", func() {
			Expect(setup.SetupUsersWithAndWithoutPermissions(ctx)).To(Succeed())

			Expect(server.Arrangements()).To(HaveLen(4))

			dataGroups := server.DataGroups()
			Expect(dataGroups).To(HaveLen(3))
			itemsByName := map[string]int{}
			for _, dg := range dataGroups {
				Expect(dg.ExternalServiceAgreementID).To(Equal("sa-le-user-001"))
				itemsByName[dg.Name] = len(dg.Items)
			}
			Expect(itemsByName).To(Equal(map[string]int{
				"Random currency arrangements": 2,
				"EUR arrangements":             1,
				"USD arrangements":             1,
			}))

			Expect(server.FunctionGroups()).To(HaveLen(2))

			permissions := server.Permissions()
			Expect(permissions).To(HaveLen(2))
			for _, p := range permissions {
				Expect(p.ExternalUserID).To(Equal("user-001"))
				Expect(p.InternalServiceAgreementID).To(Equal("SA-100"))
				Expect(p.DataGroupIDs).To(HaveLen(3))
				seen := map[string]bool{}
				for _, id := range p.DataGroupIDs {
					Expect(id).NotTo(BeEmpty())
					seen[id] = true
				}
				Expect(seen).To(HaveLen(3))
			}
		})

		It("assigns the derived external ID to the master service agreement once", func() {
			Expect(setup.SetupUsersWithAndWithoutPermissions(ctx)).To(Succeed())
			Expect(server.RouteHits("put-agreement")).To(Equal(1))
		})

		It("provisions the without-permissions cohort", func() {
			Expect(setup.SetupUsersWithAndWithoutPermissions(ctx)).To(Succeed())

			Expect(server.HasUser("user-100")).To(BeTrue())
			Expect(server.HasUser("user-200")).To(BeTrue())
			Expect(server.Permissions()).NotTo(ContainElement(HaveField("ExternalUserID", "user-100")))
		})

		It("does not multiply legal entities or users on a re-run", func() {
			Expect(setup.SetupUsersWithAndWithoutPermissions(ctx)).To(Succeed())
			usersAfterFirstRun := server.UserCount()

			Expect(setup.SetupUsersWithAndWithoutPermissions(ctx)).To(Succeed())
			Expect(server.UserCount()).To(Equal(usersAfterFirstRun))
		})

		It("lets independent batches finish when a sibling fails", func() {
			server.FailLegalEntityFor("le-user-100")

			Expect(setup.SetupUsersWithAndWithoutPermissions(ctx)).NotTo(Succeed())
			Expect(server.HasUser("user-200")).To(BeTrue())
		})

		It("fails the whole call when one currency bucket cannot be created", func() {
			server.FailDataGroupNamed("EUR arrangements")

			Expect(setup.SetupUsersWithAndWithoutPermissions(ctx)).NotTo(Succeed())
			Expect(server.Permissions()).To(BeEmpty())
		})

		It("does nothing when entitlement ingestion is disabled", func() {
			config.Ingest.Entitlements = false

			Expect(setup.SetupUsersWithAndWithoutPermissions(ctx)).To(Succeed())
			Expect(server.Arrangements()).To(BeEmpty())
			Expect(server.RouteHits("ingest-legal-entity")).To(BeZero())
		})
	})

	Describe("optional engagement stages", func() {
		BeforeEach(func() {
			config.Ingest.Transactions = true
			config.Ingest.BalanceHistory = true
		})

		It("fans out transactions and balance history per arrangement", func() {
			Expect(setup.SetupUsersWithAndWithoutPermissions(ctx)).To(Succeed())

			arrangements := server.Arrangements()
			Expect(arrangements).To(HaveLen(4))
			for _, a := range arrangements {
				Expect(server.TransactionCount(a.ExternalID)).To(Equal(10))
				Expect(server.BalancePostings(a.ExternalID)).To(Equal(12))
			}
		})
	})

	Describe("SetupProducts", func() {
		It("ingests the catalog under the admin session", func() {
			Expect(setup.SetupProducts(ctx)).To(Succeed())
			Expect(server.ProductCount()).To(Equal(5))
			Expect(server.RouteHits("login")).To(Equal(1))
		})
	})

	Describe("per-user stages", func() {
		It("skips contacts when the toggle is off", func() {
			Expect(setup.SetupContactsPerUser(ctx)).To(Succeed())
			Expect(server.ContactCount()).To(BeZero())
		})

		It("ingests contacts under each user's own session", func() {
			config.Ingest.Contacts = true

			Expect(setup.SetupContactsPerUser(ctx)).To(Succeed())
			Expect(server.ContactCount()).To(Equal(3))
		})

		It("creates payment orders per user", func() {
			config.Ingest.Payments = true

			Expect(setup.SetupPaymentsPerUser(ctx)).To(Succeed())
			Expect(server.PaymentOrderCount()).To(Equal(2))
		})

		It("starts conversations per user", func() {
			config.Ingest.Conversations = true

			Expect(setup.SetupConversationsPerUser(ctx)).To(Succeed())
			Expect(server.ConversationCount()).To(Equal(2))
		})
	})

	Describe("SetupPocketsPerUser", func() {
		BeforeEach(func() {
			config.Ingest.Pockets = true
			// Resolving the pocket data group walks the master agreement,
			// which needs its external ID in place.
			server.AddUser("user-001", "usr-1",
				user.LegalEntity{ID: "LE-42", ExternalID: "le-user-001"},
				"SA-100", "sa-le-user-001")
		})

		It("provisions a parent pocket arrangement and the fixture pockets", func() {
			Expect(setup.SetupPocketsPerUser(ctx)).To(Succeed())

			arrangements := server.Arrangements()
			Expect(arrangements).To(HaveLen(1))
			Expect(arrangements[0].Kind).To(Equal(arrangement.KindPocketParent))
			Expect(server.Subscriptions(arrangements[0].ExternalID)).To(Equal(1))

			puts := server.DataGroupItemPuts()
			Expect(puts).To(HaveLen(1))
			Expect(puts[0].ExternalServiceAgreementID).To(Equal("sa-le-user-001"))
			Expect(puts[0].Items).To(ConsistOf(arrangements[0].ID))

			Expect(server.PocketCount()).To(Equal(3))
		})

		It("touches nothing beyond pockets when the arrangement already exists", func() {
			server.RejectArrangementsAsDuplicates()

			Expect(setup.SetupPocketsPerUser(ctx)).To(Succeed())

			Expect(server.Arrangements()).To(BeEmpty())
			Expect(server.RouteHits("subscriptions")).To(BeZero())
			Expect(server.DataGroupItemPuts()).To(BeEmpty())
			Expect(server.PocketCount()).To(Equal(3))
		})

		It("provisions child arrangements in one-to-one mode", func() {
			config.Seed.PocketsMode = internal.PocketsModeOneToOne

			Expect(setup.SetupPocketsPerUser(ctx)).To(Succeed())

			arrangements := server.Arrangements()
			Expect(arrangements).To(HaveLen(1))
			Expect(arrangements[0].Kind).To(Equal(arrangement.KindPocketChild))
		})
	})
})
