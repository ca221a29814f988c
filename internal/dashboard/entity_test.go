package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/bikerental/internal/model"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		entity  Entity
		form    Form
		missing []string
	}{
		{"bike complete", BikeEntity, Form{"marca": "Trek", "modelo": "X1", "cidade": "SP", "status": "disponivel"}, nil},
		{"bike city blank", BikeEntity, Form{"marca": "Trek", "modelo": "X1", "cidade": "", "status": "disponivel"}, []string{"Cidade"}},
		{"bike whitespace", BikeEntity, Form{"marca": " ", "modelo": "X1", "cidade": "SP"}, []string{"Marca"}},
		{"user empty", UserEntity, UserEntity.NewForm(), []string{"Nome", "CPF", "Data de Nascimento"}},
		{"user free-form date", UserEntity, Form{"nome": "Ana", "cpf": "111", "data_nascimento": "ontem"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entity.Validate(tt.form)
			if tt.missing == nil {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.missing, verr.Missing)
		})
	}
}

func TestNewFormSelectorDefaults(t *testing.T) {
	f := BikeEntity.NewForm()
	assert.Equal(t, "disponivel", f["status"])
	assert.Equal(t, "", f["marca"])
}

func TestFormFrom(t *testing.T) {
	rec := model.Record{"_id": "b1", "marca": "Trek", "modelo": "X1", "cidade": "SP", "status": "em uso", "extra": "x"}
	assert.Equal(t, Form{"marca": "Trek", "modelo": "X1", "cidade": "SP", "status": "em uso"}, BikeEntity.FormFrom(rec))

	rec["status"] = "quebrada"
	assert.Equal(t, "em uso", BikeEntity.FormFrom(rec)["status"])
}

func TestFormFromUnknownStatusIsNotAvailable(t *testing.T) {
	rec := model.Record{"_id": "b2", "marca": "Trek", "modelo": "X1", "cidade": "SP", "status": "in_use"}
	f := BikeEntity.FormFrom(rec)
	require.Equal(t, "em uso", f["status"])
	assert.Equal(t, map[string]string{"marca": "Trek", "modelo": "X1", "cidade": "SP", "status": "em uso"}, BikeEntity.Body(f))

	delete(rec, "status")
	assert.Equal(t, "em uso", BikeEntity.FormFrom(rec)["status"])
}

func TestFieldFallbackDefaultsToFirstChoice(t *testing.T) {
	e := Entity{Fields: []Field{{Key: "k", Label: "K", Choices: []string{"a", "b"}}}}
	assert.Equal(t, Form{"k": "a"}, e.FormFrom(model.Record{"k": "z"}))
}

func TestBodyOnlyEntityFields(t *testing.T) {
	f := Form{"nome": "Ana", "cpf": "111", "data_nascimento": "2000-01-01", "_id": "u1"}
	assert.Equal(t, map[string]string{"nome": "Ana", "cpf": "111", "data_nascimento": "2000-01-01"}, UserEntity.Body(f))
}

func TestOptions(t *testing.T) {
	assert.Equal(t, "u1 - Ana", Option{ID: "u1", Label: "Ana"}.String())
	assert.Equal(t, "l5", Option{ID: "l5"}.String())

	// labels containing the separator do not affect the id
	opts := UserOptions([]model.User{{ID: "u1", Name: "Ana - Maria"}})
	assert.Equal(t, "u1", opts[0].ID)
	assert.Equal(t, "u1 - Ana - Maria", opts[0].String())
}

func TestScreensExhaustive(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range Screens() {
		title := s.Title()
		assert.NotContains(t, title, "screen(")
		assert.False(t, seen[title], "duplicate title %q", title)
		seen[title] = true
		assert.NotEmpty(t, s.Header())
	}
	assert.Len(t, seen, 7)
	assert.Equal(t, "Visualizar Bicicletas", ScreenListBikes.String())
}
