// Package notify prints short success and failure notices for the CLI.
package notify

import (
	"fmt"
	"io"
)

type Variant string

const (
	VariantSuccess Variant = "success"
	VariantDanger  Variant = "danger"
)

var marks = map[Variant]string{
	VariantSuccess: "✔",
	VariantDanger:  "✖",
}

// Toaster writes notices to w. It holds no state and never fails the
// caller; write errors are dropped.
type Toaster struct {
	w io.Writer
}

func NewToaster(w io.Writer) *Toaster {
	return &Toaster{w: w}
}

func (t *Toaster) Success(title, description string) { t.show(VariantSuccess, title, description) }

func (t *Toaster) Danger(title, description string) { t.show(VariantDanger, title, description) }

func (t *Toaster) show(v Variant, title, description string) {
	if t == nil || t.w == nil {
		return
	}
	if description == "" {
		_, _ = fmt.Fprintf(t.w, "%s %s\n", marks[v], title)
		return
	}
	_, _ = fmt.Fprintf(t.w, "%s %s: %s\n", marks[v], title, description)
}
