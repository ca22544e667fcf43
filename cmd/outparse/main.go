// Command outparse extracts typed values from text lines using templates.
//
//	outparse extract -t "x={x}, y={y}" -f x:int -f y:int "x=1, y=2"
//	tail -f app.log | outparse match -c patterns.yaml --watch
//	outparse check -c patterns.yaml
//	outparse schema > catalog.schema.json
//	outparse render -t "x={x}, y={y}" x=1 y=2
package main

import (
	"context"
	"os"
)

func main() {
	cmd := newRootCmd()
	if err := Execute(context.Background(), cmd); err != nil {
		os.Exit(handleError(cmd, err))
	}
	os.Exit(exitSuccess)
}
