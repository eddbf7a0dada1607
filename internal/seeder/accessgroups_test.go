package seeder_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/bankseed/internal/core/datamodel/accessgroup"
	"github.com/frahmantamala/bankseed/internal/core/datamodel/arrangement"
	"github.com/frahmantamala/bankseed/internal/platform"
	"github.com/frahmantamala/bankseed/internal/platform/platformtest"
	"github.com/frahmantamala/bankseed/internal/seeder"
)

var _ = Describe("AccessGroupsConfigurator", func() {
	var (
		server       *platformtest.Server
		configurator *seeder.AccessGroupsConfigurator
		session      platform.Session
		ctx          context.Context
	)

	productSummaryFunction := accessgroup.Function{
		FunctionID: "1010",
		Name:       "Product Summary",
		Privileges: []accessgroup.Privilege{{Privilege: "view"}, {Privilege: "edit"}},
	}

	BeforeEach(func() {
		server = platformtest.NewServer()
		DeferCleanup(server.Close)

		client := platform.NewClient(server.Config(), discardLogger())
		configurator = seeder.NewAccessGroupsConfigurator(client, discardLogger())
		session = platform.Session{Token: "tok-admin"}
		ctx = context.Background()
	})

	Describe("IngestDataGroupForArrangements", func() {
		It("references the arrangements by internal ID", func() {
			ids := []arrangement.ID{
				{Internal: "arr-1", External: "ext-1"},
				{Internal: "arr-2", External: "ext-2"},
			}

			dataGroupID, err := configurator.IngestDataGroupForArrangements(ctx, session, "sa-le-user-001", "EUR arrangements", ids)

			Expect(err).NotTo(HaveOccurred())
			Expect(dataGroupID).NotTo(BeEmpty())

			dataGroups := server.DataGroups()
			Expect(dataGroups).To(HaveLen(1))
			Expect(dataGroups[0].Items).To(Equal([]string{"arr-1", "arr-2"}))
		})
	})

	Describe("SetupFunctionGroupWithAllPrivileges", func() {
		It("creates a fresh group per call", func() {
			first, err := configurator.SetupFunctionGroupWithAllPrivileges(ctx, session, "sa-le-user-001", productSummaryFunction)
			Expect(err).NotTo(HaveOccurred())

			second, err := configurator.SetupFunctionGroupWithAllPrivileges(ctx, session, "sa-le-user-001", productSummaryFunction)
			Expect(err).NotTo(HaveOccurred())

			Expect(first).NotTo(Equal(second))
			Expect(server.FunctionGroups()).To(HaveLen(2))
		})
	})

	Describe("LocateOrIngestFunctionGroup", func() {
		It("creates the group when none exists under the function's name", func() {
			functionGroupID, err := configurator.LocateOrIngestFunctionGroup(ctx, session, "sa-le-user-001", productSummaryFunction)

			Expect(err).NotTo(HaveOccurred())
			Expect(functionGroupID).NotTo(BeEmpty())
			Expect(server.FunctionGroups()).To(HaveLen(1))
		})

		It("attaches to an existing group instead of creating another", func() {
			first, err := configurator.LocateOrIngestFunctionGroup(ctx, session, "sa-le-user-001", productSummaryFunction)
			Expect(err).NotTo(HaveOccurred())

			second, err := configurator.LocateOrIngestFunctionGroup(ctx, session, "sa-le-user-001", productSummaryFunction)
			Expect(err).NotTo(HaveOccurred())

			Expect(second).To(Equal(first))
			Expect(server.FunctionGroups()).To(HaveLen(1))
		})

		It("scopes the lookup to the service agreement", func() {
			first, err := configurator.LocateOrIngestFunctionGroup(ctx, session, "sa-le-user-001", productSummaryFunction)
			Expect(err).NotTo(HaveOccurred())

			other, err := configurator.LocateOrIngestFunctionGroup(ctx, session, "sa-le-user-002", productSummaryFunction)
			Expect(err).NotTo(HaveOccurred())

			Expect(other).NotTo(Equal(first))
		})
	})
})
