package pocket

import (
	"time"

	"github.com/shopspring/decimal"
)

type PostRequest struct {
	Name     string          `json:"name"`
	Icon     string          `json:"icon"`
	Goal     decimal.Decimal `json:"goal"`
	Deadline time.Time       `json:"deadline"`
}

type Pocket struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Goal          decimal.Decimal `json:"goal"`
	ArrangementID string          `json:"arrangementId"`
}
