package objects

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// Item is the value carried by the feed.
type Item struct {
	ID string `json:"id"`
}

// NewItem returns an item with a fresh random token.
func NewItem() Item {
	return Item{ID: uuid.New().String()}
}

// Equal reports whether both items carry the same token.
func (i Item) Equal(other Item) bool {
	return i.ID == other.ID
}

// ParseItem decodes an item from a JSON object such as {"id":"abc"} or from a
// bare token.
func ParseItem(payload string) (Item, error) {
	payload = strings.TrimSpace(payload)

	var item Item
	if strings.HasPrefix(payload, "{") {
		if err := json.Unmarshal([]byte(payload), &item); err != nil {
			return Item{}, ErrMalformedItem
		}
	} else {
		item.ID = payload
	}

	if item.ID == "" {
		return Item{}, ErrMalformedItem
	}
	return item, nil
}
