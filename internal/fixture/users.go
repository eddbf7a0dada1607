package fixture

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/frahmantamala/bankseed/internal"
	"github.com/frahmantamala/bankseed/internal/core/datamodel/user"
)

// LoadUserLists reads the JSON fixture listing target user batches. Each
// entry is one batch that shares a legal entity.
func LoadUserLists(path string) ([]user.List, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, internal.NewValidationError(
			fmt.Sprintf("failed to read users fixture %s: %v", path, err),
			internal.ErrCodeFixtureInvalid)
	}

	var lists []user.List
	if err := json.Unmarshal(raw, &lists); err != nil {
		return nil, internal.NewValidationError(
			fmt.Sprintf("failed to parse users fixture %s: %v", path, err),
			internal.ErrCodeFixtureInvalid)
	}

	for i, list := range lists {
		if len(list.ExternalUserIDs) == 0 {
			return nil, internal.NewValidationError(
				fmt.Sprintf("users fixture %s: batch %d has no externalUserIds", path, i),
				internal.ErrCodeFixtureInvalid)
		}
	}

	return lists, nil
}
