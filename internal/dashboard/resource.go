package dashboard

import (
	"fmt"
	"net/url"
)

// Resource is a REST collection of the rental API.
type Resource int

const (
	ResourceBikes Resource = iota
	ResourceUsers
	ResourceLoans
)

// Path is the collection endpoint.
func (r Resource) Path() string {
	switch r {
	case ResourceBikes:
		return "bikes"
	case ResourceUsers:
		return "usuarios"
	case ResourceLoans:
		return "emprestimos"
	}
	panic(fmt.Sprintf("unknown resource %d", int(r)))
}

// ItemPath is the endpoint of one record.
func (r Resource) ItemPath(id string) string { return r.Path() + "/" + url.PathEscape(id) }

// Empty is the placeholder shown when the collection has nothing to list.
func (r Resource) Empty() string {
	switch r {
	case ResourceBikes:
		return "Nenhuma bicicleta encontrada."
	case ResourceUsers:
		return "Nenhum usuário encontrado."
	case ResourceLoans:
		return "Nenhum empréstimo encontrado."
	}
	return "Nada encontrado."
}

// columns are the attributes listed right after _id.
func (r Resource) columns() []string {
	switch r {
	case ResourceBikes:
		return fieldKeys(BikeEntity.Fields)
	case ResourceUsers:
		return fieldKeys(UserEntity.Fields)
	}
	return nil
}

// loanPath is the endpoint opening a loan for user on bike.
func loanPath(userID, bikeID string) string {
	return fmt.Sprintf("%s/usuarios/%s/bikes/%s", ResourceLoans.Path(), url.PathEscape(userID), url.PathEscape(bikeID))
}
