package accessgroup

import "errors"

// Function is one permission-granting business function as returned by the
// functions listing.
type Function struct {
	FunctionID string      `json:"functionId"`
	Name       string      `json:"name"`
	Privileges []Privilege `json:"privileges"`
}

type Privilege struct {
	Privilege string `json:"privilege"`
}

type FunctionPermission struct {
	FunctionID string   `json:"functionId"`
	Privileges []string `json:"privileges"`
}

type FunctionGroupPostRequest struct {
	Name                       string               `json:"name"`
	Description                string               `json:"description"`
	ExternalServiceAgreementID string               `json:"externalServiceAgreementId"`
	Permissions                []FunctionPermission `json:"permissions"`
}

type FunctionGroupPostResponse struct {
	ID string `json:"id"`
}

const DataGroupTypeArrangements = "ARRANGEMENTS"

type DataGroupPostRequest struct {
	Name                       string   `json:"name"`
	Description                string   `json:"description"`
	ExternalServiceAgreementID string   `json:"externalServiceAgreementId"`
	Type                       string   `json:"type"`
	Items                      []string `json:"items"`
}

type DataGroupPostResponse struct {
	ID string `json:"id"`
}

// DataGroupItemsPutRequest appends arrangement items to the data group the
// platform resolves from the service agreement, used when entitling pocket
// arrangements after the fact.
type DataGroupItemsPutRequest struct {
	ExternalServiceAgreementID string   `json:"externalServiceAgreementId"`
	Type                       string   `json:"type"`
	Items                      []string `json:"items"`
}

type PermissionsPostRequest struct {
	ExternalUserID             string   `json:"externalUserId"`
	InternalServiceAgreementID string   `json:"serviceAgreementId"`
	FunctionGroupID            string   `json:"functionGroupId"`
	DataGroupIDs               []string `json:"dataGroupIds"`
}

// CurrencyDataGroup groups the three data-group IDs created for one service
// agreement. All three buckets are populated together or the setup that
// produced them failed as a whole.
type CurrencyDataGroup struct {
	RandomCurrencyID string
	EurCurrencyID    string
	UsdCurrencyID    string
}

func (g *CurrencyDataGroup) Validate() error {
	if g.RandomCurrencyID == "" || g.EurCurrencyID == "" || g.UsdCurrencyID == "" {
		return errors.New("currency data group is missing a bucket ID")
	}
	return nil
}

// IDs returns the three bucket IDs in a fixed order.
func (g *CurrencyDataGroup) IDs() []string {
	return []string{g.RandomCurrencyID, g.EurCurrencyID, g.UsdCurrencyID}
}
