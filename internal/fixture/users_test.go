package fixture_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/bankseed/internal"
	"github.com/frahmantamala/bankseed/internal/fixture"
)

var _ = Describe("LoadUserLists", func() {
	var dir string

	writeFile := func(name, content string) string {
		path := filepath.Join(dir, name)
		Expect(os.WriteFile(path, []byte(content), 0o600)).To(Succeed())
		return path
	}

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	It("loads every batch in order", func() {
		path := writeFile("users.json",
			`[{"externalUserIds":["user-001","user-002"]},{"externalUserIds":["user-003"]}]`)

		lists, err := fixture.LoadUserLists(path)

		Expect(err).NotTo(HaveOccurred())
		Expect(lists).To(HaveLen(2))
		Expect(lists[0].ExternalUserIDs).To(Equal([]string{"user-001", "user-002"}))
		Expect(lists[1].ExternalUserIDs).To(Equal([]string{"user-003"}))
	})

	It("rejects a missing file", func() {
		_, err := fixture.LoadUserLists(filepath.Join(dir, "nope.json"))

		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Code).To(Equal(internal.ErrCodeFixtureInvalid))
	})

	It("rejects malformed JSON", func() {
		path := writeFile("users.json", `{"externalUserIds":`)

		_, err := fixture.LoadUserLists(path)

		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Code).To(Equal(internal.ErrCodeFixtureInvalid))
	})

	It("rejects a batch without users", func() {
		path := writeFile("users.json",
			`[{"externalUserIds":["user-001"]},{"externalUserIds":[]}]`)

		_, err := fixture.LoadUserLists(path)

		Expect(err).To(MatchError(ContainSubstring("batch 1")))
	})
})
