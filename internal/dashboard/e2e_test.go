package dashboard_test

import (
	"context"
	"net"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/bikerental/internal/config"
	"github.com/idilsaglam/bikerental/internal/dashboard"
	"github.com/idilsaglam/bikerental/internal/gateway"
	"github.com/idilsaglam/bikerental/internal/mockapi"
)

func newStack(t *testing.T) (*dashboard.Controller, *mockapi.Server) {
	t.Helper()
	api, err := mockapi.New(mockapi.Options{})
	require.NoError(t, err)
	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)

	gw, err := gateway.New(config.API{BaseURL: srv.URL})
	require.NoError(t, err)
	return dashboard.New(gw), api
}

func TestRentalRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, api := newStack(t)

	var msgs gateway.Messages
	uid, ok := c.Create(ctx, &msgs, dashboard.UserEntity, dashboard.Form{"nome": "Ana", "cpf": "111", "data_nascimento": "2000-01-01"})
	require.True(t, ok, "%v", msgs)
	_, ok = c.Create(ctx, &msgs, dashboard.BikeEntity, dashboard.Form{"marca": "Trek", "modelo": "X1", "cidade": "SP", "status": "em uso"})
	require.True(t, ok, "%v", msgs)
	bid, ok := c.Create(ctx, &msgs, dashboard.BikeEntity, dashboard.Form{"marca": "Caloi", "modelo": "10", "cidade": "RJ", "status": "disponivel"})
	require.True(t, ok, "%v", msgs)

	bikes := c.List(ctx, &msgs, dashboard.ResourceBikes)
	assert.Len(t, bikes.Rows, 2)

	choices, ok := c.LoadRent(ctx, &msgs)
	require.True(t, ok)
	require.Len(t, choices.Bikes, 1)
	assert.Equal(t, bid, choices.Bikes[0].ID)

	loanID, ok := c.Rent(ctx, &msgs, choices.Users[0], choices.Bikes[0])
	require.True(t, ok, "%v", msgs)

	// the rented bike is no longer offered
	msgs = nil
	_, ok = c.LoadRent(ctx, &msgs)
	assert.False(t, ok)

	loans, opts := c.OpenLoans(ctx, &msgs)
	require.Len(t, opts, 1)
	assert.Equal(t, loanID, opts[0].ID)
	assert.Equal(t, []string{uid}, loans.Column("id_usuario"))

	msgs = nil
	require.True(t, c.Return(ctx, &msgs, loanID))
	assert.Empty(t, api.Snapshot().Loans)

	// returning twice: the API answers 404, the dashboard reports failure
	msgs = nil
	assert.False(t, c.Return(ctx, &msgs, loanID))
	assert.Equal(t, gateway.Messages{
		{Level: gateway.LevelWarning, Text: "Recurso não encontrado."},
		{Level: gateway.LevelError, Text: "Falha ao devolver bicicleta."},
	}, msgs)
}

func TestEditThenDelete(t *testing.T) {
	ctx := context.Background()
	c, api := newStack(t)

	id, ok := c.Create(ctx, gateway.Discard, dashboard.UserEntity, dashboard.Form{"nome": "Ana", "cpf": "111", "data_nascimento": "2000-01-01"})
	require.True(t, ok)
	_, ok = c.Create(ctx, gateway.Discard, dashboard.UserEntity, dashboard.Form{"nome": "Bia", "cpf": "222", "data_nascimento": "1999-01-01"})
	require.True(t, ok)

	recs, ok := c.Records(ctx, gateway.Discard, dashboard.ResourceUsers)
	require.True(t, ok)
	form := dashboard.UserEntity.FormFrom(recs[0])
	form["nome"] = "Ana Maria"
	require.True(t, c.Update(ctx, gateway.Discard, dashboard.UserEntity, id, form))

	users := api.Snapshot().Users
	assert.Equal(t, "Ana Maria", users[0].Name)
	assert.Equal(t, "Bia", users[1].Name)

	require.True(t, c.Delete(ctx, gateway.Discard, dashboard.UserEntity, id))
	assert.Len(t, api.Snapshot().Users, 1)
}

func TestUnreachableAPI(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	gw, err := gateway.New(config.API{BaseURL: "http://" + addr})
	require.NoError(t, err)

	var msgs gateway.Messages
	tbl := dashboard.New(gw).List(context.Background(), &msgs, dashboard.ResourceBikes)
	assert.True(t, tbl.Empty())
	require.Len(t, msgs, 1)
	assert.True(t, strings.HasPrefix(msgs[0].Text, "Erro de conexão"), msgs[0].Text)
}
