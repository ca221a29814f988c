package dashboard

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/idilsaglam/bikerental/internal/gateway"
	"github.com/idilsaglam/bikerental/internal/model"
)

// Caller is what the controllers need from the gateway.
type Caller interface {
	Do(ctx context.Context, rep gateway.Reporter, req gateway.Request) (json.RawMessage, error)
}

// Controller holds the screen logic. It keeps no state between calls;
// every method fetches what it shows.
type Controller struct {
	api Caller
}

func New(api Caller) *Controller { return &Controller{api: api} }

// Records fetches a whole collection. ok is false when the call failed or
// the body was not a list of objects; the cause is already reported.
func (c *Controller) Records(ctx context.Context, rep gateway.Reporter, res Resource) ([]model.Record, bool) {
	raw, err := c.api.Do(ctx, rep, gateway.Request{Path: res.Path(), Verb: gateway.VerbGet})
	if err != nil {
		return nil, false
	}
	recs, err := gateway.Decode[[]model.Record](raw)
	if err != nil {
		gateway.Error(rep, fmt.Sprintf("Resposta inválida do servidor: %v", err))
		return nil, false
	}
	return recs, true
}

// List builds the table of a list screen. An empty table means the
// placeholder res.Empty() is shown.
func (c *Controller) List(ctx context.Context, rep gateway.Reporter, res Resource) model.Table {
	recs, ok := c.Records(ctx, rep, res)
	if !ok {
		return model.Table{}
	}
	return model.NewTable(recs, res.columns()...)
}

// Create validates f and posts it. Blank required fields are reported and
// nothing is sent. The response must carry the new _id to count as success.
func (c *Controller) Create(ctx context.Context, rep gateway.Reporter, e Entity, f Form) (string, bool) {
	if err := e.Validate(f); err != nil {
		gateway.Error(rep, "Todos os campos são obrigatórios.")
		return "", false
	}
	raw, err := c.api.Do(ctx, rep, gateway.Request{Path: e.Resource.Path(), Verb: gateway.VerbPost, Body: e.Body(f)})
	if err != nil {
		gateway.Error(rep, e.failed)
		return "", false
	}
	id := createdID(raw)
	if id == "" {
		gateway.Error(rep, e.failed)
		return "", false
	}
	if e.showsID {
		gateway.Success(rep, fmt.Sprintf("%s ID do %s: %s", e.created, e.Noun, id))
	} else {
		gateway.Success(rep, e.created)
	}
	return id, true
}

// Update puts the full attribute set of f to the record id.
func (c *Controller) Update(ctx context.Context, rep gateway.Reporter, e Entity, id string, f Form) bool {
	raw, err := c.api.Do(ctx, rep, gateway.Request{Path: e.Resource.ItemPath(id), Verb: gateway.VerbPut, Body: e.Body(f)})
	if !answered(rep, raw, err) {
		return false
	}
	gateway.Success(rep, e.updated)
	return true
}

// Delete removes the record id.
func (c *Controller) Delete(ctx context.Context, rep gateway.Reporter, e Entity, id string) bool {
	raw, err := c.api.Do(ctx, rep, gateway.Request{Path: e.Resource.ItemPath(id), Verb: gateway.VerbDelete})
	if !answered(rep, raw, err) {
		return false
	}
	gateway.Success(rep, e.deleted)
	return true
}

// RentChoices is what the rent screen offers.
type RentChoices struct {
	Users []Option
	Bikes []Option
}

// LoadRent fetches users then bikes and keeps the available bikes. ok is
// false when there is nothing to rent; the reason is reported as info.
func (c *Controller) LoadRent(ctx context.Context, rep gateway.Reporter) (RentChoices, bool) {
	users, uok := fetch[model.User](ctx, c.api, rep, ResourceUsers)
	bikes, bok := fetch[model.Bike](ctx, c.api, rep, ResourceBikes)
	if !uok || !bok || len(users) == 0 || len(bikes) == 0 {
		gateway.Info(rep, "Não foi possível carregar dados de usuários ou bicicletas.")
		return RentChoices{}, false
	}
	choices := RentChoices{Users: UserOptions(users), Bikes: AvailableBikeOptions(bikes)}
	if len(choices.Bikes) == 0 {
		gateway.Info(rep, "Nenhuma bicicleta disponível para aluguel.")
		return RentChoices{}, false
	}
	return choices, true
}

// Rent opens a loan of bike for user and returns the loan id.
func (c *Controller) Rent(ctx context.Context, rep gateway.Reporter, user, bike Option) (string, bool) {
	raw, err := c.api.Do(ctx, rep, gateway.Request{Path: loanPath(user.ID, bike.ID), Verb: gateway.VerbPost})
	id := ""
	if err == nil {
		id = createdID(raw)
	}
	if id == "" {
		gateway.Error(rep, "Falha ao alugar bicicleta.")
		return "", false
	}
	gateway.Success(rep, "Bicicleta alugada com sucesso! ID do empréstimo: "+id)
	return id, true
}

// OpenLoans fetches the active loans for the return screen: the table to
// show and the loan ids to pick from, in the same order.
func (c *Controller) OpenLoans(ctx context.Context, rep gateway.Reporter) (model.Table, []Option) {
	recs, ok := c.Records(ctx, rep, ResourceLoans)
	if !ok || len(recs) == 0 {
		return model.Table{}, nil
	}
	return model.NewTable(recs, ResourceLoans.columns()...), RecordOptions(recs)
}

// Return closes the loan id.
func (c *Controller) Return(ctx context.Context, rep gateway.Reporter, loanID string) bool {
	raw, err := c.api.Do(ctx, rep, gateway.Request{Path: ResourceLoans.ItemPath(loanID), Verb: gateway.VerbDelete})
	if err != nil || !gateway.Truthy(raw) {
		gateway.Error(rep, "Falha ao devolver bicicleta.")
		return false
	}
	gateway.Success(rep, "Bicicleta devolvida com sucesso!")
	return true
}

func fetch[T any](ctx context.Context, api Caller, rep gateway.Reporter, res Resource) ([]T, bool) {
	raw, err := api.Do(ctx, rep, gateway.Request{Path: res.Path(), Verb: gateway.VerbGet})
	if err != nil {
		return nil, false
	}
	out, err := gateway.Decode[[]T](raw)
	if err != nil {
		gateway.Error(rep, fmt.Sprintf("Resposta inválida do servidor: %v", err))
		return nil, false
	}
	return out, true
}

// answered reports whether a call both succeeded and returned something.
// An empty 200 body has not been reported by the gateway yet.
func answered(rep gateway.Reporter, raw json.RawMessage, err error) bool {
	if err != nil {
		return false
	}
	if !gateway.Truthy(raw) {
		gateway.Error(rep, "Resposta vazia do servidor.")
		return false
	}
	return true
}

// createdID extracts _id from a create response, "" when there is none.
func createdID(raw json.RawMessage) string {
	var body model.Record
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	switch body[model.IDField].(type) {
	case string, float64:
		return body.ID()
	}
	return ""
}
