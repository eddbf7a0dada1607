package platform

import (
	"context"
	"net/http"

	"github.com/frahmantamala/bankseed/internal/core/datamodel/pocket"
)

// IngestPocket creates one pocket for the currently selected user context.
func (c *Client) IngestPocket(ctx context.Context, session Session, body pocket.PostRequest) (*pocket.Pocket, error) {
	var p pocket.Pocket
	if err := c.postExpect(ctx, session, c.config.PocketsURL+"/pockets", body, http.StatusCreated, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
