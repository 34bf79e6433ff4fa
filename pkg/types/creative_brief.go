package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// DeliverableLine is one entry in a creative brief's deliverable list. The
// type label is free text (brand email metadata, templates, or manual entry);
// only the label and count drive pricing.
type DeliverableLine struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
	Specs string `json:"specs,omitempty"`
}

// CreativeBrief captures the campaign scope attached to a deal, persisted as
// JSONB.
type CreativeBrief struct {
	Campaign        string            `json:"campaign,omitempty"`
	Objective       string            `json:"objective,omitempty"`
	Deliverables    []DeliverableLine `json:"deliverables"`
	Timeline        string            `json:"timeline,omitempty"`
	BrandGuidelines string            `json:"brand_guidelines,omitempty"`
	TalkingPoints   []string          `json:"talking_points,omitempty"`
	Hashtags        string            `json:"hashtags,omitempty"`
}

// Value serializes the brief to JSON.
func (c CreativeBrief) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan decodes JSONB into the brief.
func (c *CreativeBrief) Scan(value interface{}) error {
	if value == nil {
		*c = CreativeBrief{}
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	var decoded CreativeBrief
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}
	*c = decoded
	return nil
}

func asJSON(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported scan type %T", value)
	}
}
