package seeder_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/bankseed/internal"
	"github.com/frahmantamala/bankseed/internal/core/datamodel/user"
	"github.com/frahmantamala/bankseed/internal/platform"
	"github.com/frahmantamala/bankseed/internal/platform/platformtest"
	"github.com/frahmantamala/bankseed/internal/seeder"
)

var _ = Describe("ServiceAgreementsConfigurator", func() {
	var (
		server       *platformtest.Server
		client       *platform.Client
		configurator *seeder.ServiceAgreementsConfigurator
		session      platform.Session
		ctx          context.Context
	)

	BeforeEach(func() {
		server = platformtest.NewServer()
		DeferCleanup(server.Close)

		client = platform.NewClient(server.Config(), discardLogger())
		configurator = seeder.NewServiceAgreementsConfigurator(client, discardLogger())
		session = platform.Session{Token: "tok-admin"}
		ctx = context.Background()
	})

	It("derives the external ID from the legal entity", func() {
		server.AddUser("user-001", "usr-1",
			user.LegalEntity{ID: "LE-42", ExternalID: "le-user-001"},
			"SA-100", "")

		err := configurator.UpdateMasterServiceAgreementWithExternalID(ctx, session, "LE-42", "le-user-001")
		Expect(err).NotTo(HaveOccurred())

		sa, err := client.RetrieveServiceAgreement(ctx, session, "SA-100")
		Expect(err).NotTo(HaveOccurred())
		Expect(sa.ExternalID).To(Equal("sa-le-user-001"))
	})

	It("leaves an already assigned external ID alone", func() {
		server.AddUser("user-001", "usr-1",
			user.LegalEntity{ID: "LE-42", ExternalID: "le-user-001"},
			"SA-100", "sa-custom")

		err := configurator.UpdateMasterServiceAgreementWithExternalID(ctx, session, "LE-42", "le-user-001")
		Expect(err).NotTo(HaveOccurred())

		Expect(server.RouteHits("put-agreement")).To(BeZero())
	})

	It("surfaces a missing master service agreement", func() {
		err := configurator.UpdateMasterServiceAgreementWithExternalID(ctx, session, "LE-unknown", "le-unknown")

		Expect(internal.IsNotFound(err)).To(BeTrue())
		appErr, _ := internal.IsAppError(err)
		Expect(appErr.Code).To(Equal(internal.ErrCodeServiceAgreementNotFound))
	})
})
