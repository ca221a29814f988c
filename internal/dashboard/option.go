package dashboard

import (
	"strings"

	"github.com/idilsaglam/bikerental/internal/model"
)

// Option is a selector entry. ID travels separately from the label, so
// nothing is ever parsed back out of the display string.
type Option struct {
	ID    string
	Label string
}

// String is the display form, "id - label".
func (o Option) String() string {
	if o.Label == "" {
		return o.ID
	}
	return o.ID + " - " + o.Label
}

// UserOptions labels each user with its name.
func UserOptions(users []model.User) []Option {
	out := make([]Option, 0, len(users))
	for _, u := range users {
		out = append(out, Option{ID: u.ID, Label: u.Name})
	}
	return out
}

// AvailableBikeOptions keeps only bikes that can be rented, labelled
// "brand model".
func AvailableBikeOptions(bikes []model.Bike) []Option {
	var out []Option
	for _, b := range bikes {
		if !b.Available() {
			continue
		}
		out = append(out, Option{ID: b.ID, Label: strings.TrimSpace(b.Brand + " " + b.Model)})
	}
	return out
}

// RecordOptions offers records by identifier, as the edit selector does.
func RecordOptions(records []model.Record) []Option {
	out := make([]Option, 0, len(records))
	for _, r := range records {
		out = append(out, Option{ID: r.ID()})
	}
	return out
}
