package ui

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/idilsaglam/bikerental/internal/gateway"
	"github.com/idilsaglam/bikerental/internal/model"
)

func capture(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	SetOutput(&out, &errOut)
	SetTheme("classic")
	SetColorForcing(false, false)
	t.Cleanup(func() { SetOutput(os.Stdout, os.Stderr); SetTheme("classic") })
	return &out, &errOut
}

func TestReporterRoutesByLevel(t *testing.T) {
	out, errOut := capture(t)
	var r Reporter
	r.Report(gateway.Message{Level: gateway.LevelSuccess, Text: "salvo"})
	r.Report(gateway.Message{Level: gateway.LevelInfo, Text: "nada"})
	r.Report(gateway.Message{Level: gateway.LevelWarning, Text: "Recurso não encontrado."})
	r.Report(gateway.Message{Level: gateway.LevelError, Text: "Erro interno do servidor."})

	assert.Equal(t, "✔ salvo\n• nada\n", out.String())
	assert.Equal(t, "⚠ Recurso não encontrado.\n✖ Erro interno do servidor.\n", errOut.String())
}

func TestColorOnlyWhenForced(t *testing.T) {
	out, _ := capture(t)
	OK("plain")
	SetColorForcing(true, false)
	OK("colored")
	assert.Equal(t, "✔ plain\n"+fgGreen+"✔ colored"+reset+"\n", out.String())
}

func TestPanelAlignsUnicode(t *testing.T) {
	out, _ := capture(t)
	Panel([]string{"Usuários", "ab"})
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	assert.Equal(t, []string{
		"┌──────────┐",
		"│ Usuários │",
		"│ ab       │",
		"└──────────┘",
	}, lines)
}

func TestMonoTheme(t *testing.T) {
	out, _ := capture(t)
	SetTheme("mono")
	t.Cleanup(func() { SetColorForcing(false, false) })
	OK("done")
	assert.Equal(t, "ok done\n", out.String())
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "█████░░░░░ 1/2", ProgressBar(1, 2, 10))
	assert.Equal(t, "░░░░░ 0/0", ProgressBar(0, 0, 3))
}

func TestTableRendersEveryRow(t *testing.T) {
	out, _ := capture(t)
	Table("Bicicletas", model.Table{
		Columns: []string{"_id", "marca"},
		Rows:    [][]string{{"b1", "Trek"}, {"b2", "Caloi"}},
	})
	s := out.String()
	assert.Contains(t, s, "Bicicletas")
	assert.Contains(t, s, "Trek")
	assert.Contains(t, s, "Caloi")
}
