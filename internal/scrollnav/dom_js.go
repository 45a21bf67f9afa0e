//go:build js && wasm

package scrollnav

import (
	"strings"
	"syscall/js"
	"time"
)

// DOM is the browser Document, bound through syscall/js. Everything runs on
// the page's event loop; animation frames drive the Animator.
type DOM struct {
	doc js.Value
	win js.Value

	anim      Animator
	scheduled bool
	onFrame   js.Func

	// Callbacks handed to the browser stay referenced for the page's life.
	funcs []js.Func
}

func NewDOM() *DOM {
	d := &DOM{
		doc: js.Global().Get("document"),
		win: js.Global(),
	}
	d.onFrame = d.retain(func(js.Value, []js.Value) any {
		d.scheduled = false
		v, more := d.anim.Tick(time.Now())
		d.win.Call("scrollTo", 0, v)
		if more {
			d.schedule()
		}
		return nil
	})
	return d
}

// WhenReady runs fn once the document has been parsed.
func (d *DOM) WhenReady(fn func()) {
	if d.doc.Get("readyState").String() != "loading" {
		fn()
		return
	}
	d.doc.Call("addEventListener", "DOMContentLoaded", d.retain(func(js.Value, []js.Value) any {
		fn()
		return nil
	}))
}

func (d *DOM) retain(fn func(js.Value, []js.Value) any) js.Func {
	f := js.FuncOf(fn)
	d.funcs = append(d.funcs, f)
	return f
}

func (d *DOM) schedule() {
	if d.scheduled {
		return
	}
	d.scheduled = true
	d.win.Call("requestAnimationFrame", d.onFrame)
}

func (d *DOM) scrollTop() float64 {
	return d.win.Get("pageYOffset").Float()
}

func (d *DOM) ObserveScroll(container string, offset int) {
	nav := d.doc.Call("querySelector", container)
	if nav.IsNull() {
		return
	}
	spy := NewSpy(offset)
	links := map[string][]js.Value{}

	refresh := func() {
		var targets []Target
		for k := range links {
			delete(links, k)
		}
		list := nav.Call("querySelectorAll", `a[href^="#"]`)
		for i := 0; i < list.Length(); i++ {
			a := list.Index(i)
			hash := a.Get("hash").String()
			el, ok := d.FindByID(fragmentID(hash))
			if !ok {
				continue
			}
			if _, seen := links[hash]; !seen {
				targets = append(targets, Target{ID: hash, Top: d.OffsetTop(el)})
			}
			links[hash] = append(links[hash], a)
		}
		spy.SetTargets(targets)
	}

	// Every "active" entry in the container is the spy's, whoever set it.
	deactivate := func() {
		list := nav.Call("querySelectorAll", "a.active")
		for i := 0; i < list.Length(); i++ {
			list.Index(i).Get("classList").Call("remove", "active")
		}
	}

	process := func() {
		active, changed := spy.Process(
			d.scrollTop(),
			d.doc.Get("documentElement").Get("scrollHeight").Float(),
			d.win.Get("innerHeight").Float(),
		)
		if !changed {
			return
		}
		deactivate()
		for _, a := range links[active] {
			a.Get("classList").Call("add", "active")
		}
	}

	refresh()
	deactivate()
	process()
	d.win.Call("addEventListener", "scroll", d.retain(func(js.Value, []js.Value) any {
		process()
		return nil
	}))
	d.win.Call("addEventListener", "resize", d.retain(func(js.Value, []js.Value) any {
		refresh()
		process()
		return nil
	}))
}

type domClick struct {
	ev   js.Value
	link js.Value
}

func (c domClick) PreventDefault() {
	c.ev.Call("preventDefault")
}

func (c domClick) Hash() string {
	href := c.link.Call("getAttribute", "href")
	if href.IsNull() || !strings.HasPrefix(href.String(), "#") {
		return ""
	}
	return c.link.Get("hash").String()
}

func (d *DOM) OnClick(container string, handler func(ClickEvent)) {
	nav := d.doc.Call("querySelector", container)
	if nav.IsNull() {
		return
	}
	nav.Call("addEventListener", "click", d.retain(func(_ js.Value, args []js.Value) any {
		ev := args[0]
		link := ev.Get("target").Call("closest", "a")
		if link.IsNull() || !nav.Call("contains", link).Bool() {
			return nil
		}
		handler(domClick{ev: ev, link: link})
		return nil
	}))
}

func (d *DOM) FindByID(id string) (Element, bool) {
	if id == "" {
		return nil, false
	}
	el := d.doc.Call("getElementById", id)
	if el.IsNull() {
		return nil, false
	}
	return el, true
}

func (d *DOM) OffsetTop(el Element) float64 {
	v, ok := el.(js.Value)
	if !ok {
		return 0
	}
	return v.Call("getBoundingClientRect").Get("top").Float() + d.scrollTop()
}

func (d *DOM) AnimateScrollTo(value float64, duration time.Duration, easing Easing) {
	d.anim.Start(d.scrollTop(), value, duration, easing, time.Now())
	d.schedule()
}
