package platform

import (
	"context"
	"net/http"
	neturl "net/url"

	"github.com/frahmantamala/bankseed/internal/core/datamodel/accessgroup"
)

// RetrieveFunctions lists every permission-granting function the platform
// knows. Callers must not rely on the ordering of the result.
func (c *Client) RetrieveFunctions(ctx context.Context, session Session) ([]accessgroup.Function, error) {
	var functions []accessgroup.Function
	if err := c.get(ctx, session, c.config.AccessURL+"/accessgroups/functions", &functions); err != nil {
		return nil, err
	}
	return functions, nil
}

// IngestFunctionGroup creates a function group and returns its internal ID.
func (c *Client) IngestFunctionGroup(ctx context.Context, session Session, body accessgroup.FunctionGroupPostRequest) (string, error) {
	var resp accessgroup.FunctionGroupPostResponse
	url := c.config.AccessURL + "/accessgroups/function-groups"
	if err := c.postExpect(ctx, session, url, body, http.StatusCreated, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// IngestDataGroup creates a data group over a set of arrangement internal IDs
// and returns its internal ID. Partial bucket creation upstream is a
// configuration defect, so anything but 201 is an error here.
func (c *Client) IngestDataGroup(ctx context.Context, session Session, body accessgroup.DataGroupPostRequest) (string, error) {
	var resp accessgroup.DataGroupPostResponse
	url := c.config.AccessURL + "/accessgroups/data-groups"
	if err := c.postExpect(ctx, session, url, body, http.StatusCreated, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// RetrieveFunctionGroupByName locates an existing function group on a
// service agreement, used on shared (non-master) agreements where the group
// was provisioned by an earlier run or another user in the batch.
func (c *Client) RetrieveFunctionGroupByName(ctx context.Context, session Session, externalServiceAgreementID, name string) (string, error) {
	var resp accessgroup.FunctionGroupPostResponse
	url := c.config.AccessURL + "/accessgroups/function-groups?serviceAgreementExternalId=" +
		neturl.QueryEscape(externalServiceAgreementID) + "&name=" + neturl.QueryEscape(name)
	if err := c.get(ctx, session, url, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// UpdateDataGroupItems appends arrangements to an existing data group.
func (c *Client) UpdateDataGroupItems(ctx context.Context, session Session, body accessgroup.DataGroupItemsPutRequest) error {
	url := c.config.AccessURL + "/accessgroups/data-groups/items"
	return c.put(ctx, session, url, body, http.StatusOK)
}

// AssignPermissions ties a user, function group and data groups together
// under a service agreement.
func (c *Client) AssignPermissions(ctx context.Context, session Session, body accessgroup.PermissionsPostRequest) error {
	url := c.config.AccessURL + "/accessgroups/users/permissions"
	return c.postExpect(ctx, session, url, body, http.StatusOK, nil)
}
