//go:build js && wasm

// Command scrollnav is the browser half of the blog theme. Build it with
//
//	GOOS=js GOARCH=wasm go build -o scrollnav.wasm ./cmd/scrollnav
//
// and point the scrollnav.wasm setting at the result.
package main

import "github.com/hwu1001/v1zix.github.io/internal/scrollnav"

func main() {
	dom := scrollnav.NewDOM()
	h := scrollnav.NewHandler()
	dom.WhenReady(func() {
		h.Init(dom)
	})
	// Callbacks need the Go runtime alive.
	select {}
}
