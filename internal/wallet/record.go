package wallet

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/five82/cardwallet/internal/logging"
	"github.com/five82/cardwallet/internal/symbol"
)

// record mirrors one element of the /api/cardwallet payload.
type record struct {
	CardID flexString `json:"card_id"`
	Name   string     `json:"name"`
	Code   string     `json:"code"`
	UserID flexString `json:"user_id"`
	Owner  string     `json:"owner"`
	Format *string    `json:"format,omitempty"`
}

// storedCard is either a legacy record (written before cards had a format)
// or a current one. Both resolve to a canonical Card on ingestion.
type storedCard interface {
	canonical() Card
}

type legacyRecord struct {
	record
}

type currentRecord struct {
	record
	format symbol.Format
}

func (r legacyRecord) canonical() Card {
	return r.base(symbol.DefaultFormat)
}

func (r currentRecord) canonical() Card {
	return r.base(r.format)
}

func (r record) base(f symbol.Format) Card {
	return Card{
		ID:               string(r.CardID),
		Name:             r.Name,
		Code:             r.Code,
		OwnerID:          string(r.UserID),
		OwnerDisplayName: r.Owner,
		Format:           f,
	}
}

func classify(r record) storedCard {
	if r.Format == nil || strings.TrimSpace(*r.Format) == "" {
		return legacyRecord{record: r}
	}
	raw := strings.TrimSpace(*r.Format)
	if f, err := symbol.ParseFormat(raw); err == nil {
		return currentRecord{record: r, format: f}
	}
	// Keep unrecognised names so the renderer can report them.
	return currentRecord{record: r, format: symbol.Format(raw)}
}

// DecodeCards parses a list payload and normalizes every record. Records
// repeating an earlier id are dropped.
func DecodeCards(data []byte) ([]Card, error) {
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode cards: %w", err)
	}
	cards := make([]Card, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		card := classify(r).canonical()
		if _, dup := seen[card.ID]; dup {
			logging.Warn("dropping duplicate card id", zap.String("card_id", card.ID))
			continue
		}
		seen[card.ID] = struct{}{}
		cards = append(cards, card)
	}
	return cards, nil
}

// decodeCard parses a single record response.
func decodeCard(data []byte) (Card, bool, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Card{}, false, nil
	}
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return Card{}, false, fmt.Errorf("decode card: %w", err)
	}
	if r.CardID == "" {
		return Card{}, false, nil
	}
	return classify(r).canonical(), true, nil
}

// flexString accepts both JSON strings and numbers.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be string or number: %w", err)
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return err
	}
	*s = flexString(n.String())
	return nil
}
