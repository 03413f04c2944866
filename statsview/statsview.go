// Package statsview serves Go runtime statistics of the running emulator in
// the browser.
package statsview

import (
	"fmt"

	"chip8/console"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

// Address the statistics server listens on.
const Address = "localhost:12600"

const url = "/debug/statsview"

// Launch starts the statistics server in the background and reports its URL
// on the console.
func Launch(con console.Console) error {
	go func() {
		viewer.SetConfiguration(viewer.WithAddr(Address))
		mgr := statsview.New()
		mgr.Start()
	}()

	return con.WriteConsole(fmt.Sprintf("stats server available at http://%s%s\n", Address, url))
}

// URL returns the address of the statistics page.
func URL() string {
	return "http://" + Address + url
}
