package dashboard

import (
	"fmt"
	"strings"

	"github.com/idilsaglam/bikerental/internal/model"
)

// Field is one attribute of a create/edit form. A field with Choices is a
// fixed selector; the others are free text and required. Fallback is the
// choice an edit form shows for a stored value outside Choices; empty means
// the first choice.
type Field struct {
	Key      string
	Label    string
	Choices  []string
	Fallback string
}

// Selector reports whether the field is picked from Choices.
func (f Field) Selector() bool { return len(f.Choices) > 0 }

func (f Field) fallback() string {
	if f.Fallback != "" {
		return f.Fallback
	}
	return f.Choices[0]
}

// Entity describes a resource the manage screens can create, edit and delete.
type Entity struct {
	Resource Resource
	Noun     string
	Fields   []Field

	created   string
	updated   string
	deleted   string
	failed    string
	showsID   bool
	selectBy  string
	addTitle  string
	editTitle string
}

var BikeEntity = Entity{
	Resource: ResourceBikes,
	Noun:     "Bicicleta",
	Fields: []Field{
		{Key: "marca", Label: "Marca"},
		{Key: "modelo", Label: "Modelo"},
		{Key: "cidade", Label: "Cidade"},
		{Key: "status", Label: "Status", Choices: statusChoices(), Fallback: string(model.StatusInUse)},
	},
	created:   "Bicicleta adicionada com sucesso!",
	updated:   "Bicicleta atualizada com sucesso!",
	deleted:   "Bicicleta excluída com sucesso!",
	failed:    "Erro ao adicionar bicicleta. Verifique os dados ou tente novamente.",
	selectBy:  "Selecione uma Bicicleta para Editar ou Excluir",
	addTitle:  "Adicionar Nova Bicicleta",
	editTitle: "Editar ou Excluir Bicicletas Existentes",
}

var UserEntity = Entity{
	Resource: ResourceUsers,
	Noun:     "Usuário",
	Fields: []Field{
		{Key: "nome", Label: "Nome"},
		{Key: "cpf", Label: "CPF"},
		{Key: "data_nascimento", Label: "Data de Nascimento"},
	},
	created:   "Usuário adicionado com sucesso!",
	updated:   "Usuário atualizado com sucesso!",
	deleted:   "Usuário excluído com sucesso!",
	failed:    "Erro ao adicionar usuário. Verifique os dados ou tente novamente.",
	showsID:   true,
	selectBy:  "Selecione um Usuário para Editar ou Excluir",
	addTitle:  "Adicionar Novo Usuário",
	editTitle: "Editar ou Excluir Usuários Existentes",
}

func statusChoices() []string {
	out := make([]string, 0, len(model.Statuses()))
	for _, s := range model.Statuses() {
		out = append(out, string(s))
	}
	return out
}

func fieldKeys(fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Key
	}
	return out
}

// SelectPrompt labels the record selector of the edit section.
func (e Entity) SelectPrompt() string { return e.selectBy }

// AddTitle and EditTitle head the two sections of a manage screen.
func (e Entity) AddTitle() string  { return e.addTitle }
func (e Entity) EditTitle() string { return e.editTitle }

// Form holds field values by key.
type Form map[string]string

// NewForm returns a form with selectors on their first choice and text
// fields blank.
func (e Entity) NewForm() Form {
	f := Form{}
	for _, fd := range e.Fields {
		if fd.Selector() {
			f[fd.Key] = fd.Choices[0]
		} else {
			f[fd.Key] = ""
		}
	}
	return f
}

// FormFrom pre-populates a form with the current values of rec. A selector
// holding a value outside its choices shows the field's fallback, so an
// unknown bike status is never edited into an available one.
func (e Entity) FormFrom(rec model.Record) Form {
	f := Form{}
	for _, fd := range e.Fields {
		v := rec.String(fd.Key)
		if fd.Selector() && !contains(fd.Choices, v) {
			v = fd.fallback()
		}
		f[fd.Key] = v
	}
	return f
}

// Validate checks that every text field has a value. Selectors always do.
func (e Entity) Validate(f Form) error {
	var missing []string
	for _, fd := range e.Fields {
		if fd.Selector() {
			continue
		}
		if strings.TrimSpace(f[fd.Key]) == "" {
			missing = append(missing, fd.Label)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// Body is the JSON payload for create and update: exactly the entity's
// attributes, nothing else from the form.
func (e Entity) Body(f Form) map[string]string {
	body := make(map[string]string, len(e.Fields))
	for _, fd := range e.Fields {
		body[fd.Key] = f[fd.Key]
	}
	return body
}

// ValidationError is a create form submitted with blank required fields.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("campos obrigatórios vazios: %s", strings.Join(e.Missing, ", "))
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
