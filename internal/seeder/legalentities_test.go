package seeder_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/bankseed/internal/core/datamodel/user"
	"github.com/frahmantamala/bankseed/internal/platform"
	"github.com/frahmantamala/bankseed/internal/platform/platformtest"
	"github.com/frahmantamala/bankseed/internal/seeder"
)

var _ = Describe("LegalEntitiesAndUsersConfigurator", func() {
	var (
		server       *platformtest.Server
		configurator *seeder.LegalEntitiesAndUsersConfigurator
		session      platform.Session
		ctx          context.Context
	)

	BeforeEach(func() {
		server = platformtest.NewServer()
		DeferCleanup(server.Close)

		client := platform.NewClient(server.Config(), discardLogger())
		configurator = seeder.NewLegalEntitiesAndUsersConfigurator(client, discardLogger())
		session = platform.Session{Token: "tok-admin"}
		ctx = context.Background()
	})

	It("creates one legal entity and every user of the batch", func() {
		err := configurator.IngestUsersUnderNewLegalEntity(ctx, session,
			[]string{"user-010", "user-011"}, "C000000")

		Expect(err).NotTo(HaveOccurred())
		Expect(server.RouteHits("ingest-legal-entity")).To(Equal(1))
		Expect(server.HasUser("user-010")).To(BeTrue())
		Expect(server.HasUser("user-011")).To(BeTrue())
	})

	It("skips entities a previous run already provisioned", func() {
		err := configurator.IngestUsersUnderNewLegalEntity(ctx, session,
			[]string{"user-010", "user-011"}, "C000000")
		Expect(err).NotTo(HaveOccurred())

		err = configurator.IngestUsersUnderNewLegalEntity(ctx, session,
			[]string{"user-010", "user-011"}, "C000000")
		Expect(err).NotTo(HaveOccurred())

		Expect(server.UserCount()).To(Equal(2))
	})

	It("does nothing for an empty batch", func() {
		err := configurator.IngestUsersUnderNewLegalEntity(ctx, session, nil, "C000000")

		Expect(err).NotTo(HaveOccurred())
		Expect(server.RouteHits("ingest-legal-entity")).To(BeZero())
	})

	It("pre-seeded users take the duplicate path", func() {
		server.AddUser("user-001", "usr-1",
			user.LegalEntity{ID: "LE-42", ExternalID: "le-user-001"},
			"SA-100", "sa-le-user-001")

		err := configurator.IngestUsersUnderNewLegalEntity(ctx, session,
			[]string{"user-001"}, "C000000")

		Expect(err).NotTo(HaveOccurred())
		Expect(server.UserCount()).To(Equal(1))
	})
})
