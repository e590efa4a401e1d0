//go:build js && wasm

package sectionobserver

import (
	"syscall/js"
	"time"
)

// Browser is the real DOM seen through syscall/js. It implements both
// Document and Scheduler.
type Browser struct {
	win js.Value
	doc js.Value
}

// NewBrowser returns nil when no window/document is reachable, which
// callers pass straight to New to get the no-op behaviour.
func NewBrowser() *Browser {
	win := js.Global().Get("window")
	if win.IsUndefined() || win.IsNull() {
		return nil
	}
	doc := win.Get("document")
	if doc.IsUndefined() || doc.IsNull() {
		return nil
	}
	return &Browser{win: win, doc: doc}
}

// Document returns b as a Document, keeping a nil *Browser a nil interface.
func (b *Browser) Document() Document {
	if b == nil {
		return nil
	}
	return b
}

// Scheduler returns b as a Scheduler, or nil for a nil *Browser.
func (b *Browser) Scheduler() Scheduler {
	if b == nil {
		return nil
	}
	return b
}

func (b *Browser) element(id SectionID) (js.Value, bool) {
	el := b.doc.Call("getElementById", string(id))
	if el.IsNull() || el.IsUndefined() {
		return js.Value{}, false
	}
	return el, true
}

func (b *Browser) Rect(id SectionID) (Rect, bool) {
	el, ok := b.element(id)
	if !ok {
		return Rect{}, false
	}
	r := el.Call("getBoundingClientRect")
	return Rect{Top: r.Get("top").Float(), Bottom: r.Get("bottom").Float()}, true
}

func (b *Browser) HeaderHeight(selector string) (h float64, ok bool) {
	// querySelector throws on malformed selectors.
	defer func() {
		if recover() != nil {
			h, ok = 0, false
		}
	}()
	el := b.doc.Call("querySelector", selector)
	if el.IsNull() || el.IsUndefined() {
		return 0, false
	}
	return el.Call("getBoundingClientRect").Get("height").Float(), true
}

func (b *Browser) ScrollIntoView(id SectionID, behavior Behavior) bool {
	el, ok := b.element(id)
	if !ok {
		return false
	}
	el.Call("scrollIntoView", map[string]any{
		"behavior": string(behavior),
		"block":    "start",
		"inline":   "nearest",
	})
	return true
}

func (b *Browser) Observe(id SectionID, opts WatchOptions, fn func(intersecting bool)) (func(), bool) {
	el, ok := b.element(id)
	if !ok {
		return nil, false
	}
	cb := js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) == 0 || args[0].Length() == 0 {
			return nil
		}
		fn(args[0].Index(0).Get("isIntersecting").Bool())
		return nil
	})
	obs := js.Global().Get("IntersectionObserver").New(cb, map[string]any{
		"threshold":  opts.Threshold,
		"rootMargin": opts.RootMargin(),
	})
	obs.Call("observe", el)
	return func() {
		obs.Call("disconnect")
		cb.Release()
	}, true
}

func (b *Browser) OnScroll(fn func()) func() {
	cb := js.FuncOf(func(js.Value, []js.Value) any {
		fn()
		return nil
	})
	b.win.Call("addEventListener", "scroll", cb, map[string]any{"passive": true})
	return func() {
		b.win.Call("removeEventListener", "scroll", cb)
		cb.Release()
	}
}

func (b *Browser) RequestFrame(fn func()) {
	var cb js.Func
	cb = js.FuncOf(func(js.Value, []js.Value) any {
		cb.Release()
		fn()
		return nil
	})
	b.win.Call("requestAnimationFrame", cb)
}

func (b *Browser) AfterFunc(d time.Duration, fn func()) func() {
	var cb js.Func
	released := false
	cb = js.FuncOf(func(js.Value, []js.Value) any {
		released = true
		cb.Release()
		fn()
		return nil
	})
	handle := b.win.Call("setTimeout", cb, d.Milliseconds())
	return func() {
		if released {
			return
		}
		released = true
		b.win.Call("clearTimeout", handle)
		cb.Release()
	}
}
