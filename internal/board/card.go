package board

// Label is a board label reference as returned on card payloads.
type Label struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// FieldValue is the value object of a custom field item. The board API
// encodes the checkbox state as the strings "true"/"false".
type FieldValue struct {
	Text    string `json:"text,omitempty"`
	Date    string `json:"date,omitempty"`
	Checked string `json:"checked,omitempty"`
}

// IsChecked reports whether the checkbox value is set.
func (v FieldValue) IsChecked() bool {
	return v.Checked == "true"
}

// CustomFieldItem links a card to one custom field value.
type CustomFieldItem struct {
	IDCustomField string     `json:"idCustomField"`
	Value         FieldValue `json:"value"`
}

// Card is a card on the board service.
type Card struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Desc             string            `json:"desc"`
	Labels           []Label           `json:"labels"`
	CustomFieldItems []CustomFieldItem `json:"customFieldItems"`
}

// LabelIDs returns the card's label ids in payload order.
func (c *Card) LabelIDs() []string {
	ids := make([]string, 0, len(c.Labels))
	for _, l := range c.Labels {
		ids = append(ids, l.ID)
	}
	return ids
}

// CustomFields flattens the card's custom field items into a lookup by
// field id.
func (c *Card) CustomFields() map[string]FieldValue {
	fields := make(map[string]FieldValue, len(c.CustomFieldItems))
	for _, item := range c.CustomFieldItems {
		fields[item.IDCustomField] = item.Value
	}
	return fields
}
