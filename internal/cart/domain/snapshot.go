package domain

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrMalformedSnapshot marks a persisted cart that cannot be restored.
var ErrMalformedSnapshot = errors.New("malformed cart snapshot")

// snapshotRecord is the persisted shape of one line item.
type snapshotRecord struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Price       json.Number `json:"price"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
	Category    string      `json:"category"`
	Quantity    int         `json:"quantity"`
}

// snapshotInput mirrors snapshotRecord with pointers so missing fields are detectable.
type snapshotInput struct {
	ID          *int64           `json:"id"`
	Title       string           `json:"title"`
	Price       *decimal.Decimal `json:"price"`
	Description string           `json:"description"`
	Image       string           `json:"image"`
	Category    string           `json:"category"`
	Quantity    *int             `json:"quantity"`
}

func encodeSnapshot(items []LineItem) ([]byte, error) {
	records := make([]snapshotRecord, 0, len(items))
	for _, item := range items {
		records = append(records, snapshotRecord{
			ID:          item.ID,
			Title:       item.Title,
			Price:       json.Number(item.Price.String()),
			Description: item.Description,
			Image:       item.Image,
			Category:    item.Category,
			Quantity:    item.Quantity,
		})
	}
	return json.Marshal(records)
}

func decodeSnapshot(data []byte) ([]LineItem, error) {
	var inputs *[]snapshotInput
	if err := json.Unmarshal(data, &inputs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	if inputs == nil {
		return nil, fmt.Errorf("%w: not an array", ErrMalformedSnapshot)
	}

	items := make([]LineItem, 0, len(*inputs))
	seen := make(map[int64]bool, len(*inputs))
	for i, in := range *inputs {
		switch {
		case in.ID == nil:
			return nil, fmt.Errorf("%w: item %d has no id", ErrMalformedSnapshot, i)
		case in.Quantity == nil:
			return nil, fmt.Errorf("%w: item %d has no quantity", ErrMalformedSnapshot, i)
		case in.Price == nil:
			return nil, fmt.Errorf("%w: item %d has no price", ErrMalformedSnapshot, i)
		case *in.Quantity < 1:
			return nil, fmt.Errorf("%w: item %d has quantity %d", ErrMalformedSnapshot, i, *in.Quantity)
		case in.Price.IsNegative():
			return nil, fmt.Errorf("%w: item %d has negative price", ErrMalformedSnapshot, i)
		case seen[*in.ID]:
			return nil, fmt.Errorf("%w: duplicate id %d", ErrMalformedSnapshot, *in.ID)
		}
		seen[*in.ID] = true

		items = append(items, LineItem{
			ID:          *in.ID,
			Title:       in.Title,
			Price:       *in.Price,
			Description: in.Description,
			Image:       in.Image,
			Category:    in.Category,
			Quantity:    *in.Quantity,
		})
	}
	return items, nil
}
