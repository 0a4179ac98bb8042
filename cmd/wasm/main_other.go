//go:build !(js && wasm)

package main

import "github.com/smallyu/go-toyecc/internal/log"

func main() {
	log.Init(log.LogLevelError, "stderr", nil)
	log.Fatal("this binary must be built with GOOS=js GOARCH=wasm")
}
