package runtime

import (
	"context"
	"os"

	"github.com/risor-io/risor/object"

	stave "github.com/jward/stave"
	"github.com/jward/stave/internal/abc"
	"github.com/jward/stave/rhythm"
)

// Handle wraps a selection together with its document context so
// scripts can chain selectors and transforms off a single proxied
// value. Every method returns a fresh Handle; scripts never mutate a
// Handle in place.
type Handle struct {
	sel  stave.Selection
	ctxs *abc.Contexts
}

// NewHandle parses ABC source into a whole-file selection handle.
func NewHandle(src string) (*Handle, error) {
	root, doc, err := abc.Parse(src)
	if err != nil {
		return nil, err
	}
	return &Handle{sel: stave.New(root, doc), ctxs: abc.NewContexts(root)}, nil
}

func (h *Handle) wrap(sel stave.Selection) *Handle {
	return &Handle{sel: sel, ctxs: h.ctxs}
}

// Selectors.

func (h *Handle) Notes() *Handle         { return h.wrap(h.sel.SelectNotes()) }
func (h *Handle) Chords() *Handle        { return h.wrap(h.sel.SelectChords()) }
func (h *Handle) Rests() *Handle         { return h.wrap(h.sel.SelectRests()) }
func (h *Handle) Rhythms() *Handle       { return h.wrap(h.sel.SelectRhythms()) }
func (h *Handle) ChordNotes() *Handle    { return h.wrap(h.sel.SelectChordNotes()) }
func (h *Handle) NonChordNotes() *Handle { return h.wrap(h.sel.SelectNonChordNotes()) }
func (h *Handle) Top() *Handle           { return h.wrap(h.sel.SelectTop()) }
func (h *Handle) Bottom() *Handle        { return h.wrap(h.sel.SelectBottom()) }
func (h *Handle) Tune() *Handle          { return h.wrap(h.sel.SelectTune()) }
func (h *Handle) Measures() *Handle      { return h.wrap(h.sel.SelectMeasures()) }
func (h *Handle) System() *Handle        { return h.wrap(h.sel.SelectSystem()) }

func (h *Handle) MeasureRange(start, end int) *Handle {
	return h.wrap(h.sel.SelectMeasureRange(start, end))
}

func (h *Handle) Voices(query string) *Handle {
	return h.wrap(h.sel.SelectVoices(query))
}

func (h *Handle) Range(startLine, startCol, endLine, endCol int) *Handle {
	return h.wrap(h.sel.SelectRange(startLine, startCol, endLine, endCol))
}

// Transforms.

func (h *Handle) Remove() *Handle      { return h.wrap(h.sel.Remove()) }
func (h *Handle) Legato() *Handle      { return h.wrap(h.sel.Legato()) }
func (h *Handle) Consolidate() *Handle { return h.wrap(h.sel.Consolidate()) }

func (h *Handle) Divide(k int64) *Handle   { return h.wrap(h.sel.DivideRhythm(k)) }
func (h *Handle) Multiply(k int64) *Handle { return h.wrap(h.sel.MultiplyRhythm(k)) }

func (h *Handle) SetRhythm(num, den int64) *Handle {
	return h.wrap(h.sel.SetRhythm(rhythm.New(num, den)))
}

func (h *Handle) ToSlash() *Handle {
	return h.wrap(h.sel.ToSlashNotation(h.ctxs))
}

func (h *Handle) InsertVoiceLine(name string) *Handle {
	return h.wrap(h.sel.InsertVoiceLine(name))
}

func (h *Handle) VoiceLinesToInline() *Handle {
	return h.wrap(h.sel.VoiceInfoLineToInline())
}

func (h *Handle) InlineVoicesToLines() *Handle {
	return h.wrap(h.sel.VoiceInlineToInfoLine())
}

// Inspection.

// Text reassembles the full document text.
func (h *Handle) Text() string { return abc.Text(h.sel.Root) }

// Count reports the number of cursors in the selection.
func (h *Handle) Count() int { return len(h.sel.Cursors) }

// makeParseFileFn creates the "parse_file" host function.
//
// parse_file(path) → Handle
func makeParseFileFn() *object.Builtin {
	return object.NewBuiltin("parse_file", func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) != 1 {
			return object.NewArgsError("parse_file", 1, len(args))
		}

		pathStr, ok := args[0].(*object.String)
		if !ok {
			return object.Errorf("parse_file: path must be a string, got %s", args[0].Type())
		}

		src, err := os.ReadFile(pathStr.Value())
		if err != nil {
			return object.Errorf("parse_file: reading %s: %v", pathStr.Value(), err)
		}

		return newHandleObject(string(src))
	})
}

// makeParseSrcFn creates "parse_src" — accepts source text directly.
//
// parse_src(source) → Handle
func makeParseSrcFn() *object.Builtin {
	return object.NewBuiltin("parse_src", func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) != 1 {
			return object.NewArgsError("parse_src", 1, len(args))
		}

		srcStr, ok := args[0].(*object.String)
		if !ok {
			return object.Errorf("parse_src: source must be a string, got %s", args[0].Type())
		}

		return newHandleObject(srcStr.Value())
	})
}

func newHandleObject(src string) object.Object {
	h, err := NewHandle(src)
	if err != nil {
		return object.Errorf("parse: %v", err)
	}
	proxy, err := object.NewProxy(h)
	if err != nil {
		return object.Errorf("parse: proxy error: %v", err)
	}
	return proxy
}

// makeTextFn creates the "text" host function.
//
// text(handle) → string
func makeTextFn() *object.Builtin {
	return object.NewBuiltin("text", func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) != 1 {
			return object.NewArgsError("text", 1, len(args))
		}

		h, errObj := handleArg("text", args[0])
		if errObj != nil {
			return errObj
		}
		return object.NewString(h.Text())
	})
}

// makeWriteFileFn creates "write_file" so edit scripts can save results.
//
// write_file(path, handle)
func makeWriteFileFn() *object.Builtin {
	return object.NewBuiltin("write_file", func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) != 2 {
			return object.NewArgsError("write_file", 2, len(args))
		}

		pathStr, ok := args[0].(*object.String)
		if !ok {
			return object.Errorf("write_file: path must be a string, got %s", args[0].Type())
		}

		h, errObj := handleArg("write_file", args[1])
		if errObj != nil {
			return errObj
		}

		if err := os.WriteFile(pathStr.Value(), []byte(h.Text()), 0o644); err != nil {
			return object.Errorf("write_file: %v", err)
		}
		return object.Nil
	})
}

func handleArg(fn string, arg object.Object) (*Handle, object.Object) {
	proxy, ok := arg.(*object.Proxy)
	if !ok {
		return nil, object.Errorf("%s: expected a selection handle, got %s", fn, arg.Type())
	}
	h, ok := proxy.Interface().(*Handle)
	if !ok {
		return nil, object.Errorf("%s: expected a selection handle, got %T", fn, proxy.Interface())
	}
	return h, nil
}
