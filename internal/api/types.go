package api

import (
	"encoding/json"
)

// RegisterCardRequest is the JSON body of the card registration call.
type RegisterCardRequest struct {
	Token      string `json:"token"`
	CardNumber string `json:"cardNumber"`
	Expiration string `json:"expiration"`
	CVV        string `json:"cvv"`
}

// AccountPath holds the identifiers templated into the registration path.
type AccountPath struct {
	ClientID  string
	UserID    string
	AccountID string
}

// Card is the card returned by the tokenization service.
// Raw keeps the response body exactly as received.
type Card struct {
	ID           string `json:"id"`
	Alias        string `json:"alias,omitempty"`
	Expiration   string `json:"expiration,omitempty"`
	Currency     string `json:"currency,omitempty"`
	CardProvider string `json:"cardProvider,omitempty"`
	CardType     string `json:"cardType,omitempty"`
	Status       string `json:"status,omitempty"`
	Token        string `json:"token,omitempty"`

	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the known fields and keeps a copy of data in Raw.
func (c *Card) UnmarshalJSON(data []byte) error {
	type plain Card
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*c = Card(decoded)
	c.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON returns Raw when present so a decoded card re-encodes verbatim.
func (c Card) MarshalJSON() ([]byte, error) {
	if len(c.Raw) > 0 {
		return c.Raw, nil
	}
	type plain Card
	return json.Marshal(plain(c))
}
