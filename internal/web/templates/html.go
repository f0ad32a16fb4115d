// Package templates renders the console page as templ components.
package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
	templruntime "github.com/a-h/templ/runtime"
)

// component builds a templ.Component the way generated templates do: nested
// components share the outermost render's buffer, which is flushed once when
// that render returns.
func component(body func(ctx context.Context, h *html)) templ.Component {
	return templruntime.GeneratedTemplate(func(in templruntime.GeneratedComponentInput) (err error) {
		ctx := in.Context
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		buf, nested := templruntime.GetBuffer(in.Writer)
		if !nested {
			defer func() {
				if releaseErr := templruntime.ReleaseBuffer(buf); err == nil {
					err = releaseErr
				}
			}()
		}
		ctx = templ.InitializeContext(ctx)

		h := &html{w: buf}
		body(ctx, h)
		return h.err
	})
}

// html writes markup to w, remembering the first write error.
type html struct {
	w   io.Writer
	err error
}

// render writes c into the same writer.
func (h *html) render(ctx context.Context, c templ.Component) {
	if h.err != nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

func (h *html) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// text writes s escaped.
func (h *html) text(s string) {
	h.raw(templ.EscapeString(s))
}

// attr writes ` name="value"` with value escaped.
func (h *html) attr(name, value string) {
	h.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// open writes a start tag with alternating attribute names and values.
func (h *html) open(tag string, attrs ...string) {
	h.raw("<" + tag)
	for i := 0; i+1 < len(attrs); i += 2 {
		h.attr(attrs[i], attrs[i+1])
	}
	h.raw(">")
}

func (h *html) close(tag string) {
	h.raw("</" + tag + ">")
}

// element writes <tag attrs>text</tag>.
func (h *html) element(tag, text string, attrs ...string) {
	h.open(tag, attrs...)
	h.text(text)
	h.close(tag)
}

// button writes a one-button form posting to action.
func (h *html) button(action, label, class string, hidden ...string) {
	h.open("form", "method", "post", "action", action, "class", "inline")
	for i := 0; i+1 < len(hidden); i += 2 {
		h.open("input", "type", "hidden", "name", hidden[i], "value", hidden[i+1])
	}
	h.element("button", label, "type", "submit", "class", class)
	h.close("form")
}

func itoa(n int) string { return strconv.Itoa(n) }
