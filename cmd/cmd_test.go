package cmd

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("loadConfig", func() {
	Context("in environment-variable mode", func() {
		BeforeEach(func() {
			GinkgoT().Setenv("DOCKER_ENV", "true")
			GinkgoT().Setenv("PLATFORM_ARRANGEMENTS_URL", "http://localhost:8081")
			GinkgoT().Setenv("PLATFORM_ACCESS_URL", "http://localhost:8082")
			GinkgoT().Setenv("PLATFORM_USERS_URL", "http://localhost:8083")
			GinkgoT().Setenv("PLATFORM_ADMIN_PASSWORD", "admin")
		})

		It("keeps the configured users fixture without the flag", func() {
			cfg, err := loadConfig(".")

			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Seed.UsersJSON).To(Equal("./data/users.json"))
		})

		It("honors the users flag override", func() {
			usersJSONOverride = "./custom/users.json"
			DeferCleanup(func() { usersJSONOverride = "" })

			cfg, err := loadConfig(".")

			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Seed.UsersJSON).To(Equal("./custom/users.json"))
		})

		It("surfaces incomplete environments", func() {
			GinkgoT().Setenv("PLATFORM_ADMIN_PASSWORD", "")

			_, err := loadConfig(".")

			Expect(err).To(MatchError(ContainSubstring("admin credentials")))
		})
	})
})
