//go:build js && wasm

// Command scrollspy highlights the landing page navigation entry of the
// section currently in view. Build it with:
//
//	GOOS=js GOARCH=wasm go build -o static/scrollspy.wasm ./cmd/scrollspy
//	cp "$(go env GOROOT)/lib/wasm/wasm_exec.js" static/
package main

import (
	"log/slog"
	"os"
	"syscall/js"

	"github.com/mahdiarghyani/portfolio/internal/sectionobserver"
)

const navSelector = "#section-nav"

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))

	browser := sectionobserver.NewBrowser()
	if browser == nil {
		slog.Warn("No browsing context, scroll spy disabled")
		return
	}
	doc := js.Global().Get("document")
	nav := doc.Call("querySelector", navSelector)
	if nav.IsNull() {
		slog.Debug("No section navigation on this page")
		return
	}

	attrs := navAttrs{
		Sections: stringOr(nav.Get("dataset").Get("sections")),
		Offset:   stringOr(nav.Get("dataset").Get("offset")),
		Header:   stringOr(nav.Get("dataset").Get("header")),
	}
	opts := attrs.options()
	opts.Enabled = enabledFlag(nav)

	store := sectionobserver.New(browser.Document(), browser.Scheduler())
	consumer := store.Use(opts)
	consumer.Mount()

	links := nav.Call("querySelectorAll", `a[href^="#"]`)
	highlight := func(active sectionobserver.SectionID) {
		for i := range links.Length() {
			link := links.Index(i)
			on := active != sectionobserver.None && sectionFromHref(link.Call("getAttribute", "href").String()) == active
			link.Get("classList").Call("toggle", "is-active", on)
			if on {
				link.Call("setAttribute", "aria-current", "true")
			} else {
				link.Call("removeAttribute", "aria-current")
			}
		}
	}
	store.Subscribe(highlight)
	highlight(consumer.ActiveSection())

	behavior := sectionobserver.BehaviorSmooth
	if js.Global().Call("matchMedia", "(prefers-reduced-motion: reduce)").Get("matches").Bool() {
		behavior = sectionobserver.BehaviorAuto
	}
	onClick := js.FuncOf(func(this js.Value, args []js.Value) any {
		ev := args[0]
		link := ev.Get("target").Call("closest", "a")
		if link.IsNull() {
			return nil
		}
		id := sectionFromHref(link.Call("getAttribute", "href").String())
		if id == sectionobserver.None {
			return nil
		}
		ev.Call("preventDefault")
		consumer.ScrollToSection(id, behavior)
		js.Global().Get("history").Call("replaceState", nil, "", "#"+string(id))
		return nil
	})
	nav.Call("addEventListener", "click", onClick)

	onUnload := js.FuncOf(func(js.Value, []js.Value) any {
		consumer.Unmount()
		return nil
	})
	js.Global().Call("addEventListener", "pagehide", onUnload)

	select {}
}

// enabledFlag ties observation to the nav's data-media query when set,
// so a hidden navigation stops listening to scroll events.
func enabledFlag(nav js.Value) sectionobserver.EnabledSource {
	query := stringOr(nav.Get("dataset").Get("media"))
	if query == "" {
		return nil
	}
	mql := js.Global().Call("matchMedia", query)
	flag := sectionobserver.NewFlag(mql.Get("matches").Bool())
	mql.Call("addEventListener", "change", js.FuncOf(func(_ js.Value, args []js.Value) any {
		flag.Set(args[0].Get("matches").Bool())
		return nil
	}))
	return flag
}

func stringOr(v js.Value) string {
	if v.IsUndefined() || v.IsNull() {
		return ""
	}
	return v.String()
}
