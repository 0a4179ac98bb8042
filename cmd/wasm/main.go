//go:build js && wasm

package main

import (
	"fmt"
	"strconv"
	"syscall/js"

	"github.com/smallyu/go-toyecc/internal/log"
)

func main() {
	c := make(chan struct{})

	log.Init(log.LogLevelInfo, "stdout", nil)
	b := newBinding()

	// Expose Go functions to JS
	js.Global().Set("GoToyECC", map[string]interface{}{
		"NewCurve": wrap(3, func(args []js.Value) (string, error) {
			a, err := int64Arg(args[0])
			if err != nil {
				return "", err
			}
			bb, err := int64Arg(args[1])
			if err != nil {
				return "", err
			}
			p, err := int64Arg(args[2])
			if err != nil {
				return "", err
			}
			return b.NewCurve(a, bb, p), nil
		}),
		"Point": wrap(3, func(args []js.Value) (string, error) {
			x, err := int64Arg(args[1])
			if err != nil {
				return "", err
			}
			y, err := int64Arg(args[2])
			if err != nil {
				return "", err
			}
			return b.Point(handleArg(args[0]), x, y), nil
		}),
		"Infinity": wrap(1, func(args []js.Value) (string, error) {
			return b.Infinity(handleArg(args[0])), nil
		}),
		"Add": wrap(2, func(args []js.Value) (string, error) {
			return b.Add(handleArg(args[0]), handleArg(args[1])), nil
		}),
		"Negate": wrap(1, func(args []js.Value) (string, error) {
			return b.Negate(handleArg(args[0])), nil
		}),
		"ScalarMul": wrap(2, func(args []js.Value) (string, error) {
			k, err := int64Arg(args[1])
			if err != nil {
				return "", err
			}
			return b.ScalarMul(handleArg(args[0]), k), nil
		}),
		"Order": wrap(1, func(args []js.Value) (string, error) {
			return b.Order(handleArg(args[0])), nil
		}),
		"Release": wrap(1, func(args []js.Value) (string, error) {
			return b.Release(handleArg(args[0])), nil
		}),
	})

	log.Info("GoToyECC initialized")
	<-c
}

// wrap checks the argument count and turns argument errors into error JSON.
func wrap(n int, fn func(args []js.Value) (string, error)) js.Func {
	return js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if len(args) != n {
			return errorJSON(fmt.Errorf("expected %d arguments, got %d", n, len(args)))
		}
		out, err := fn(args)
		if err != nil {
			return errorJSON(err)
		}
		return out
	})
}

// int64Arg accepts a JS number or a decimal string, since numbers above 2^53
// lose precision.
func int64Arg(v js.Value) (int64, error) {
	switch v.Type() {
	case js.TypeNumber:
		return int64(v.Float()), nil
	case js.TypeString:
		return strconv.ParseInt(v.String(), 10, 64)
	default:
		return 0, fmt.Errorf("expected a number or string, got %s", v.Type())
	}
}

func handleArg(v js.Value) uint32 {
	if v.Type() != js.TypeNumber {
		return 0
	}
	return uint32(v.Int())
}
