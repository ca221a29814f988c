package mockapi

import "github.com/idilsaglam/bikerental/internal/model"

// Snapshot is the whole backend state, as persisted to the data file.
type Snapshot struct {
	Bikes []model.Bike `json:"bikes"`
	Users []model.User `json:"usuarios"`
	Loans []model.Loan `json:"emprestimos"`
}

func (s *Snapshot) normalize() {
	if s.Bikes == nil {
		s.Bikes = []model.Bike{}
	}
	if s.Users == nil {
		s.Users = []model.User{}
	}
	if s.Loans == nil {
		s.Loans = []model.Loan{}
	}
}

func (s Snapshot) clone() Snapshot {
	return Snapshot{
		Bikes: append([]model.Bike{}, s.Bikes...),
		Users: append([]model.User{}, s.Users...),
		Loans: append([]model.Loan{}, s.Loans...),
	}
}

func (s *Snapshot) bike(id string) int {
	for i, b := range s.Bikes {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func (s *Snapshot) user(id string) int {
	for i, u := range s.Users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

func (s *Snapshot) loan(id string) int {
	for i, l := range s.Loans {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// openLoan reports whether a loan references the bike or the user.
func (s *Snapshot) openLoan(match func(model.Loan) bool) bool {
	for _, l := range s.Loans {
		if match(l) {
			return true
		}
	}
	return false
}

func remove[T any](list []T, i int) []T {
	return append(list[:i:i], list[i+1:]...)
}
