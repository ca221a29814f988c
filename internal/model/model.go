package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Status is the availability of a bike as the API spells it.
type Status string

const (
	StatusAvailable Status = "disponivel"
	StatusInUse     Status = "em uso"
)

// Statuses lists the selectable statuses in form order.
func Statuses() []Status { return []Status{StatusAvailable, StatusInUse} }

// Bike is a bicycle as served by /bikes.
type Bike struct {
	ID     string `json:"_id"`
	Brand  string `json:"marca"`
	Model  string `json:"modelo"`
	City   string `json:"cidade"`
	Status Status `json:"status"`
}

func (b *Bike) UnmarshalJSON(data []byte) error {
	type plain Bike
	aux := struct {
		*plain
		ID json.RawMessage `json:"_id"`
	}{plain: (*plain)(b)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	id, err := parseID(aux.ID)
	b.ID = id
	return err
}

// Available reports whether the bike can be rented.
func (b Bike) Available() bool { return b.Status == StatusAvailable }

// User is a customer as served by /usuarios.
// BirthDate is free text; nothing checks its format on this side.
type User struct {
	ID        string `json:"_id"`
	Name      string `json:"nome"`
	Document  string `json:"cpf"`
	BirthDate string `json:"data_nascimento"`
}

func (u *User) UnmarshalJSON(data []byte) error {
	type plain User
	aux := struct {
		*plain
		ID json.RawMessage `json:"_id"`
	}{plain: (*plain)(u)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	id, err := parseID(aux.ID)
	u.ID = id
	return err
}

// Loan is an open rental. It disappears from /emprestimos once returned.
type Loan struct {
	ID       string `json:"_id"`
	UserID   string `json:"id_usuario,omitempty"`
	BikeID   string `json:"id_bike,omitempty"`
	LoanedAt string `json:"data_emprestimo,omitempty"`
}

// IDField is the identifier key every API entity carries.
const IDField = "_id"

func (l *Loan) UnmarshalJSON(data []byte) error {
	type plain Loan
	aux := struct {
		*plain
		ID json.RawMessage `json:"_id"`
	}{plain: (*plain)(l)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	id, err := parseID(aux.ID)
	l.ID = id
	return err
}

// parseID accepts an identifier served either as a string or as a number.
// Numbers keep their literal digits.
func parseID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		err := json.Unmarshal(raw, &s)
		return s, err
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("%s: %w", IDField, err)
	}
	return n.String(), nil
}
