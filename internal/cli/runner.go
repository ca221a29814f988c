package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/idilsaglam/bikerental/internal/config"
	"github.com/idilsaglam/bikerental/internal/dashboard"
	"github.com/idilsaglam/bikerental/internal/gateway"
	"github.com/idilsaglam/bikerental/internal/model"
	"github.com/idilsaglam/bikerental/internal/ui"
)

// Exit codes: 0 ok, 1 the operation failed, 2 bad usage or input.
const (
	ExitOK    = 0
	ExitFail  = 1
	ExitUsage = 2
)

// Runner executes one dashboard operation per call, printing as it goes.
type Runner struct {
	ctx context.Context
	ctl *dashboard.Controller
	rep ui.Reporter
}

func New(ctx context.Context, ctl *dashboard.Controller) *Runner {
	return &Runner{ctx: ctx, ctl: ctl}
}

// -------------- listings ----------------

func (r *Runner) List(res dashboard.Resource, title string) int {
	var msgs gateway.Messages
	tbl := r.ctl.List(r.ctx, multi{r.rep, &msgs}, res)
	if tbl.Empty() {
		ui.Info(res.Empty())
		if msgs.Has(gateway.LevelError) {
			return ExitFail
		}
		return ExitOK
	}
	ui.Table(title, tbl)
	if status := tbl.Column("status"); status != nil {
		avail := 0
		for _, s := range status {
			if s == string(model.StatusAvailable) {
				avail++
			}
		}
		ui.Panel([]string{
			ui.C(ui.Current().Title, "Disponíveis") + "  " + ui.C(ui.Current().Success, ui.ProgressBar(avail, len(status), 24)),
		})
	}
	return ExitOK
}

// multi fans a message out to several reporters.
type multi []gateway.Reporter

func (m multi) Report(msg gateway.Message) {
	for _, r := range m {
		r.Report(msg)
	}
}

// -------------- manage ----------------

func (r *Runner) Add(e dashboard.Entity, f dashboard.Form) int {
	var verr *dashboard.ValidationError
	if err := e.Validate(f); errors.As(err, &verr) {
		ui.Fail("Todos os campos são obrigatórios. Faltando: " + strings.Join(verr.Missing, ", "))
		return ExitUsage
	}
	if _, ok := r.ctl.Create(r.ctx, r.rep, e, f); !ok {
		return ExitFail
	}
	return ExitOK
}

// Update starts from the record's current values and overrides only the
// non-empty fields of changes.
func (r *Runner) Update(e dashboard.Entity, id string, changes dashboard.Form) int {
	rec, code := r.find(e, id)
	if rec == nil {
		return code
	}
	form := e.FormFrom(rec)
	for _, fd := range e.Fields {
		v := strings.TrimSpace(changes[fd.Key])
		if v == "" {
			continue
		}
		if fd.Selector() && !oneOf(fd.Choices, v) {
			ui.Fail(fmt.Sprintf("%s: valor inválido %q (use %s)", fd.Label, v, strings.Join(fd.Choices, " | ")))
			return ExitUsage
		}
		form[fd.Key] = v
	}
	if !r.ctl.Update(r.ctx, r.rep, e, id, form) {
		return ExitFail
	}
	return ExitOK
}

func (r *Runner) Remove(e dashboard.Entity, id string) int {
	if rec, code := r.find(e, id); rec == nil {
		return code
	}
	if !r.ctl.Delete(r.ctx, r.rep, e, id) {
		return ExitFail
	}
	return ExitOK
}

// find fetches the collection and picks id, like the edit selector does.
func (r *Runner) find(e dashboard.Entity, id string) (model.Record, int) {
	recs, ok := r.ctl.Records(r.ctx, r.rep, e.Resource)
	if !ok {
		return nil, ExitFail
	}
	for _, rec := range recs {
		if rec.ID() == id {
			return rec, ExitOK
		}
	}
	ui.Fail(fmt.Sprintf("%s não encontrado(a): %s", e.Noun, id))
	ui.Info(fmt.Sprintf("Dica: `bikerental %s ls` lista os ids válidos", command(e.Resource)))
	return nil, ExitUsage
}

// -------------- workflows ----------------

// Rent only accepts a bike the rent screen would offer, i.e. an available one.
func (r *Runner) Rent(userID, bikeID string) int {
	choices, ok := r.ctl.LoadRent(r.ctx, r.rep)
	if !ok {
		return ExitFail
	}
	user, ok := pick(choices.Users, userID)
	if !ok {
		ui.Fail("usuário não encontrado: " + userID)
		return ExitUsage
	}
	bike, ok := pick(choices.Bikes, bikeID)
	if !ok {
		ui.Fail("bicicleta indisponível ou inexistente: " + bikeID)
		ui.Info("Disponíveis: " + joinOptions(choices.Bikes))
		return ExitUsage
	}
	if _, ok := r.ctl.Rent(r.ctx, r.rep, user, bike); !ok {
		return ExitFail
	}
	return ExitOK
}

func (r *Runner) Return(loanID string) int {
	_, loans := r.ctl.OpenLoans(r.ctx, r.rep)
	if len(loans) == 0 {
		ui.Info(dashboard.ResourceLoans.Empty())
		return ExitFail
	}
	if _, ok := pick(loans, loanID); !ok {
		ui.Fail("empréstimo não encontrado: " + loanID)
		ui.Info("Ativos: " + joinOptions(loans))
		return ExitUsage
	}
	if !r.ctl.Return(r.ctx, r.rep, loanID) {
		return ExitFail
	}
	return ExitOK
}

// command is the subcommand managing res.
func command(res dashboard.Resource) string {
	switch res {
	case dashboard.ResourceUsers:
		return "users"
	case dashboard.ResourceLoans:
		return "loans"
	}
	return "bikes"
}

func pick(opts []dashboard.Option, id string) (dashboard.Option, bool) {
	for _, o := range opts {
		if o.ID == id {
			return o, true
		}
	}
	return dashboard.Option{}, false
}

func joinOptions(opts []dashboard.Option) string {
	parts := make([]string, len(opts))
	for i, o := range opts {
		parts[i] = o.String()
	}
	return strings.Join(parts, ", ")
}

func oneOf(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// -------------- auth ----------------

// AuthLogin reads a token from in and saves it.
func AuthLogin(in io.Reader, out io.Writer) int {
	fmt.Fprint(out, "Paste your API token: ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		ui.Fail("read token: " + err.Error())
		return ExitFail
	}
	if err := config.SetToken(line); err != nil {
		ui.Fail("save token: " + err.Error())
		return ExitFail
	}
	ui.OK("logged in")
	return ExitOK
}

func AuthLogout(cfg config.API) int {
	ti, _ := config.ResolveToken(cfg)
	if ti != nil && ti.Source != "file" {
		ui.OK(fmt.Sprintf("token comes from %s (nothing to delete)", ti.Source))
		return ExitOK
	}
	if err := config.DeleteToken(); err != nil {
		ui.Fail("logout: " + err.Error())
		return ExitFail
	}
	ui.OK("logged out")
	return ExitOK
}

func AuthStatus(cfg config.API) int {
	ti, err := config.ResolveToken(cfg)
	if err != nil {
		ui.Fail("token: " + err.Error())
		return ExitFail
	}
	if ti == nil {
		ui.Info("not logged in")
		ui.Info("Run: bikerental auth login")
		return ExitOK
	}
	lines := []string{
		ui.C(ui.Current().Title, "API token"),
		"source: " + ti.Source,
	}
	if !ti.CreatedAt.IsZero() {
		lines = append(lines, "saved:  "+ti.CreatedAt.UTC().Format("2006-01-02 15:04:05Z"))
	}
	lines = append(lines, ui.C(ui.Current().Muted, "env override: BIKERENTAL_API_TOKEN"))
	ui.Panel(lines)
	return ExitOK
}
