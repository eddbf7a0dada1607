package seeder

import (
	"context"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/frahmantamala/bankseed/internal"
	"github.com/frahmantamala/bankseed/internal/core/datamodel/arrangement"
	"github.com/frahmantamala/bankseed/internal/fixture"
	"github.com/frahmantamala/bankseed/internal/platform"
)

// ProductSummaryConfigurator ingests the product catalog, arrangements and
// their balance history.
type ProductSummaryConfigurator struct {
	client *platform.Client
	logger *slog.Logger
}

func NewProductSummaryConfigurator(client *platform.Client, logger *slog.Logger) *ProductSummaryConfigurator {
	return &ProductSummaryConfigurator{
		client: client,
		logger: logger,
	}
}

// IngestProducts posts the product catalog. Products are independent of each
// other, so the batch fans out concurrently; a failure on one product does
// not stop the others.
func (p *ProductSummaryConfigurator) IngestProducts(ctx context.Context, session platform.Session) error {
	var g errgroup.Group

	for _, product := range fixture.Products() {
		product := product
		g.Go(func() error {
			outcome, err := CreateOrSkip(func() (*http.Response, error) {
				return p.client.IngestProduct(ctx, session, product)
			}, platform.ErrKeyProductExists, nil)
			if err != nil {
				p.logger.Error("failed to ingest product", "product", product.ProductKindName, "error", err)
				return err
			}

			if outcome == OutcomeSkipped {
				p.logger.Info("product already exists, skipped", "product", product.ProductKindName)
			} else {
				p.logger.Info("product ingested", "product", product.ProductKindName)
			}
			return nil
		})
	}

	return g.Wait()
}

// IngestArrangement posts one arrangement. A duplicate reports
// OutcomeSkipped with a nil ID since the remote side does not reveal the
// internal ID of the existing arrangement.
func (p *ProductSummaryConfigurator) IngestArrangement(ctx context.Context, session platform.Session, body arrangement.PostRequest) (*arrangement.ID, Outcome, error) {
	if err := body.Validate(); err != nil {
		return nil, OutcomeFailed, internal.NewValidationError(
			"invalid arrangement "+body.ExternalID+": "+err.Error(), internal.ErrCodeFixtureInvalid)
	}

	var created arrangement.PostResponse
	outcome, err := CreateOrSkip(func() (*http.Response, error) {
		return p.client.IngestArrangement(ctx, session, body)
	}, platform.ErrKeyArrangementExists, &created)
	if err != nil {
		return nil, outcome, err
	}

	if outcome == OutcomeSkipped {
		p.logger.Info("arrangement already exists, skipped",
			"external_arrangement_id", body.ExternalID)
		return nil, outcome, nil
	}

	p.logger.Info("arrangement ingested",
		"name", body.Name,
		"currency", body.Currency,
		"product_id", body.ProductID,
		"external_legal_entity_id", body.ExternalLegalEntityID)

	return &arrangement.ID{Internal: created.ID, External: body.ExternalID}, outcome, nil
}

// IngestArrangements posts a generated batch of count arrangements for a
// legal entity. An empty currency gives every arrangement its own randomly
// drawn one. Skipped duplicates are left out of the returned IDs.
func (p *ProductSummaryConfigurator) IngestArrangements(ctx context.Context, session platform.Session, externalLegalEntityID string, currency arrangement.Currency, count int) ([]arrangement.ID, error) {
	bodies := fixture.Arrangements(externalLegalEntityID, currency, count)

	ids := make([]arrangement.ID, 0, len(bodies))
	for _, body := range bodies {
		id, _, err := p.IngestArrangement(ctx, session, body)
		if err != nil {
			return nil, err
		}
		if id != nil {
			ids = append(ids, *id)
		}
	}

	return ids, nil
}

// IngestBalanceHistory posts the generated balance snapshots for one
// arrangement. Items are independent and go out concurrently.
func (p *ProductSummaryConfigurator) IngestBalanceHistory(ctx context.Context, session platform.Session, externalArrangementID string) error {
	var g errgroup.Group

	for _, item := range fixture.BalanceHistory(externalArrangementID) {
		item := item
		g.Go(func() error {
			if err := p.client.IngestBalance(ctx, session, item); err != nil {
				return err
			}
			p.logger.Info("balance history item ingested",
				"external_arrangement_id", externalArrangementID,
				"updated_date", item.UpdatedDate)
			return nil
		})
	}

	return g.Wait()
}
