package board

// CreateCardRequest describes a new card.
type CreateCardRequest struct {
	ListID   string
	Name     string
	Desc     string
	LabelIDs []string
}

// UpdateCardRequest carries the card fields pushed on an update. All three
// are always sent together; callers decide whether an update is needed.
type UpdateCardRequest struct {
	Name     string
	Desc     string
	LabelIDs []string
}

// FieldUpdate is a tagged custom-field value: exactly one of date or checked
// is set.
type FieldUpdate struct {
	date    *string
	checked *bool
}

// DateUpdate builds a date-valued custom field update.
func DateUpdate(date string) FieldUpdate {
	return FieldUpdate{date: &date}
}

// CheckedUpdate builds a checkbox-valued custom field update.
func CheckedUpdate(checked bool) FieldUpdate {
	return FieldUpdate{checked: &checked}
}

// Date returns the date value and whether this is a date update.
func (u FieldUpdate) Date() (string, bool) {
	if u.date == nil {
		return "", false
	}
	return *u.date, true
}

// Checked returns the checkbox value and whether this is a checkbox update.
func (u FieldUpdate) Checked() (bool, bool) {
	if u.checked == nil {
		return false, false
	}
	return *u.checked, true
}

// payload renders the API body for the field update.
func (u FieldUpdate) payload() map[string]map[string]string {
	value := map[string]string{}
	switch {
	case u.date != nil:
		value["date"] = *u.date
	case u.checked != nil:
		if *u.checked {
			value["checked"] = "true"
		} else {
			value["checked"] = "false"
		}
	}
	return map[string]map[string]string{"value": value}
}
