package mockapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/bikerental/internal/model"
	"github.com/idilsaglam/bikerental/internal/store/jsonstore"
)

func newServer(t *testing.T, opts Options) *Server {
	t.Helper()
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }
	}
	s, err := New(opts)
	require.NoError(t, err)
	return s
}

func do(t *testing.T, s *Server, method, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var out map[string]any
	if strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "{") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec.Code, out
}

func TestListStartsEmpty(t *testing.T) {
	s := newServer(t, Options{})
	for _, path := range []string{"/bikes", "/usuarios", "/emprestimos"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String(), path)
	}
}

func TestBikeCRUD(t *testing.T) {
	s := newServer(t, Options{})

	code, bike := do(t, s, http.MethodPost, "/bikes", `{"marca":"Trek","modelo":"X1","cidade":"SP","status":"disponivel"}`)
	require.Equal(t, http.StatusOK, code)
	id, _ := bike["_id"].(string)
	require.NotEmpty(t, id)

	code, bike = do(t, s, http.MethodPut, "/bikes/"+id, `{"marca":"Trek","modelo":"X2","cidade":"RJ","status":"em uso"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "X2", bike["modelo"])
	assert.Equal(t, "em uso", bike["status"])

	code, _ = do(t, s, http.MethodPut, "/bikes/nope", `{"marca":"a","modelo":"b","cidade":"c","status":"disponivel"}`)
	assert.Equal(t, http.StatusNotFound, code)

	code, bike = do(t, s, http.MethodDelete, "/bikes/"+id, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, id, bike["_id"])
	assert.Empty(t, s.Snapshot().Bikes)
}

func TestCreateRejectsIncomplete(t *testing.T) {
	s := newServer(t, Options{})
	tests := []struct {
		path string
		body string
	}{
		{"/bikes", `{"marca":"Trek","modelo":"X1","status":"disponivel"}`},
		{"/bikes", `{"marca":"Trek","modelo":"X1","cidade":"SP","status":"quebrada"}`},
		{"/usuarios", `{"nome":"Ana","cpf":"111"}`},
		{"/usuarios", `not json`},
	}
	for _, tt := range tests {
		code, body := do(t, s, http.MethodPost, tt.path, tt.body)
		assert.Equal(t, http.StatusBadRequest, code, tt.body)
		assert.NotEmpty(t, body["error"])
	}
}

func TestRentAndReturn(t *testing.T) {
	s := newServer(t, Options{})
	_, user := do(t, s, http.MethodPost, "/usuarios", `{"nome":"Ana","cpf":"111","data_nascimento":"2000-01-01"}`)
	_, bike := do(t, s, http.MethodPost, "/bikes", `{"marca":"Trek","modelo":"X1","cidade":"SP","status":"disponivel"}`)
	uid, bid := user["_id"].(string), bike["_id"].(string)

	code, loan := do(t, s, http.MethodPost, "/emprestimos/usuarios/"+uid+"/bikes/"+bid, "")
	require.Equal(t, http.StatusOK, code)
	lid, _ := loan["_id"].(string)
	require.NotEmpty(t, lid)
	assert.Equal(t, "2024-05-01T10:00:00Z", loan["data_emprestimo"])
	assert.Equal(t, model.StatusInUse, s.Snapshot().Bikes[0].Status)

	// only one open loan per bike
	code, _ = do(t, s, http.MethodPost, "/emprestimos/usuarios/"+uid+"/bikes/"+bid, "")
	assert.Equal(t, http.StatusBadRequest, code)

	// referenced records cannot be deleted while the loan is open
	code, _ = do(t, s, http.MethodDelete, "/bikes/"+bid, "")
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = do(t, s, http.MethodDelete, "/usuarios/"+uid, "")
	assert.Equal(t, http.StatusBadRequest, code)

	code, returned := do(t, s, http.MethodDelete, "/emprestimos/"+lid, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, lid, returned["_id"])
	assert.Equal(t, model.StatusAvailable, s.Snapshot().Bikes[0].Status)
	assert.Empty(t, s.Snapshot().Loans)

	code, _ = do(t, s, http.MethodDelete, "/emprestimos/"+lid, "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestRentUnknown(t *testing.T) {
	s := newServer(t, Options{})
	code, _ := do(t, s, http.MethodPost, "/emprestimos/usuarios/u1/bikes/b1", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestDataFilePersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s := newServer(t, Options{DataFile: path})
	code, _ := do(t, s, http.MethodPost, "/usuarios", `{"nome":"Ana","cpf":"111","data_nascimento":"2000-01-01"}`)
	require.Equal(t, http.StatusOK, code)

	snap, found, err := jsonstore.Load[Snapshot](path)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, snap.Users, 1)
	assert.Equal(t, "Ana", snap.Users[0].Name)

	reloaded := newServer(t, Options{DataFile: path})
	assert.Equal(t, snap.Users, reloaded.Snapshot().Users)
}

func TestFailedSaveKeepsState(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")
	s := newServer(t, Options{DataFile: path})
	code, user := do(t, s, http.MethodPost, "/usuarios", `{"nome":"Ana","cpf":"111","data_nascimento":"2000-01-01"}`)
	require.Equal(t, http.StatusOK, code)
	_, bike := do(t, s, http.MethodPost, "/bikes", `{"marca":"Trek","modelo":"X1","cidade":"SP","status":"disponivel"}`)
	uid, bid := user["_id"].(string), bike["_id"].(string)
	before := s.Snapshot()

	// a regular file where the data directory should be makes every save fail
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	s.opts.DataFile = filepath.Join(blocker, "state.json")

	requests := []struct{ method, path, body string }{
		{http.MethodPost, "/usuarios", `{"nome":"Bia","cpf":"222","data_nascimento":"1999-01-01"}`},
		{http.MethodPut, "/bikes/" + bid, `{"marca":"Caloi","modelo":"10","cidade":"RJ","status":"em uso"}`},
		{http.MethodPost, "/emprestimos/usuarios/" + uid + "/bikes/" + bid, ""},
		{http.MethodDelete, "/usuarios/" + uid, ""},
	}
	for _, r := range requests {
		code, _ := do(t, s, r.method, r.path, r.body)
		assert.Equal(t, http.StatusInternalServerError, code, r.method+" "+r.path)
		assert.Equal(t, before, s.Snapshot(), r.method+" "+r.path)
	}
}

func TestCORSPreflight(t *testing.T) {
	s := newServer(t, Options{Origins: []string{"http://dash.local"}})
	req := httptest.NewRequest(http.MethodOptions, "/bikes", nil)
	req.Header.Set("Origin", "http://dash.local")
	req.Header.Set("Access-Control-Request-Method", "PUT")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "http://dash.local", rec.Header().Get("Access-Control-Allow-Origin"))
}
