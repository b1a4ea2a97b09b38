package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/km-arc/go-inject/app"
	"github.com/km-arc/go-inject/framework/di"
)

// Service identities shared between providers and consumers.
const (
	PrinterService = "printer"
	GreeterService = "greeter"
)

type Printer interface {
	Print(text string)
}

type Greeter interface {
	Greet(name string) string
}

// ── Implementations ──────────────────────────────────────────────────────────

type ConsolePrinter struct {
	out io.Writer
}

func (p *ConsolePrinter) Print(text string) {
	fmt.Fprintln(p.out, text)
}

// PrefixGreeter holds its printer through a service handle resolved at
// construction time.
type PrefixGreeter struct {
	printer di.Ref[Printer]
	prefix  string
}

func (g *PrefixGreeter) Greet(name string) string {
	msg := g.prefix + name + "!"
	g.printer.Get().Print(msg)
	return msg
}

// ── Provider ─────────────────────────────────────────────────────────────────

// GreeterProvider binds the demo services. The greeting prefix is a
// constructor argument captured at registration time.
type GreeterProvider struct {
	di.BaseProvider
	Prefix string
}

func (p *GreeterProvider) Register(b *di.Bindings) {
	prefix := p.Prefix
	if prefix == "" {
		prefix = "Hello, "
	}

	b.Service(PrinterService, "console", func() (any, error) {
		return &ConsolePrinter{out: os.Stdout}, nil
	})
	b.Service(GreeterService, "prefix", func() (any, error) {
		printer, err := di.NewRef[Printer](PrinterService)
		if err != nil {
			return nil, err
		}
		return &PrefixGreeter{printer: printer, prefix: prefix}, nil
	})
}

// ── Entrypoint ───────────────────────────────────────────────────────────────

func main() {
	application := app.New() // loads .env automatically
	application.Register(&GreeterProvider{})

	if err := application.Boot(); err != nil {
		application.Log.Error("boot failed", "error", err)
		os.Exit(1)
	}
	defer application.Shutdown()

	application.Router.Get("/greet/{name}", func(w http.ResponseWriter, r *http.Request) {
		greeter, err := di.Resolve[Greeter](GreeterService)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"greeting": greeter.Greet(chi.URLParam(r, "name")),
		})
	})

	if err := application.Run(); err != nil {
		application.Log.Error("server error", "error", err)
		os.Exit(1)
	}
}
