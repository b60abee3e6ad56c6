package main

import (
	"errors"
	"fmt"

	"github.com/born-ml/lantern/lantern"
	"github.com/spf13/cobra"
)

var errSelftest = errors.New("selftest failed")

type check struct {
	name string
	run  func(rt *lantern.Runtime) error
}

var checks = []check{
	{"string vector", checkStringVector},
	{"optional double", checkOptionalDouble},
	{"int64 array copy", checkIntArrayCopy},
	{"bool vector", checkBoolVector},
	{"handle release", checkRelease},
}

func newSelftestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "selftest",
		Short: "Run end-to-end scenarios against a fresh runtime",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := newRuntime(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			log := rt.Logger()
			failed := 0
			for _, c := range checks {
				rt.ClearLastError()
				if err := c.run(rt); err != nil {
					failed++
					log.Error().Err(err).Str("check", c.name).Int("live", rt.Live()).Msg("check failed")
					fmt.Fprintf(cmd.OutOrStdout(), "FAIL  %s: %v\n", c.name, err)
					continue
				}
				log.Debug().Str("check", c.name).Int("live", rt.Live()).Msg("check passed")
				fmt.Fprintf(cmd.OutOrStdout(), "ok    %s\n", c.name)
			}
			if failed > 0 {
				return fmt.Errorf("%w: %d of %d checks", errSelftest, failed, len(checks))
			}
			return nil
		},
	}
}

func checkStringVector(rt *lantern.Runtime) error {
	v := rt.VectorStringNew()
	defer rt.Release(v)

	for _, s := range []string{"a", "b", "c"} {
		rt.VectorStringPushBack(v, s)
	}
	if n := rt.VectorStringSize(v); n != 3 {
		return fmt.Errorf("size = %d, want 3", n)
	}
	if s, ok := rt.VectorStringAt(v, 0); !ok || s != "a" {
		return fmt.Errorf("at(0) = %q, %t", s, ok)
	}
	if s, ok := rt.VectorStringAt(v, 2); !ok || s != "c" {
		return fmt.Errorf("at(2) = %q, %t", s, ok)
	}
	if _, ok := rt.VectorStringAt(v, 3); ok {
		return errors.New("at(3) succeeded")
	}
	if rt.LastError() == nil {
		return errors.New("at(3) recorded no error")
	}
	rt.ClearLastError()
	return nil
}

func checkOptionalDouble(rt *lantern.Runtime) error {
	present := rt.OptionalDouble(3.14, false)
	defer rt.Release(present)
	absent := rt.OptionalDouble(0.0, true)
	defer rt.Release(absent)

	if x, ok := rt.OptionalDoubleValue(present); !ok || x != 3.14 {
		return fmt.Errorf("present = %v, %t", x, ok)
	}
	if _, ok := rt.OptionalDoubleValue(absent); ok {
		return errors.New("absent optional has a value")
	}
	return rt.LastError()
}

func checkIntArrayCopy(rt *lantern.Runtime) error {
	src := []int64{1, 2, 3}
	owned := rt.VectorInt64(src)
	defer rt.Release(owned)
	view := rt.IntArrayRef(src)
	defer rt.Release(view)

	src[0] = 42
	for _, h := range []lantern.Handle{owned, view} {
		if x := rt.IntArrayAt(h, 0); x != 1 {
			return fmt.Errorf("handle %d at(0) = %d, want 1", h, x)
		}
	}
	return rt.LastError()
}

func checkBoolVector(rt *lantern.Runtime) error {
	v := rt.VectorBoolNew()
	defer rt.Release(v)

	pushed := []bool{true, false, true}
	for _, x := range pushed {
		rt.VectorBoolPushBack(v, x)
	}
	if n := rt.VectorBoolSize(v); n != int64(len(pushed)) {
		return fmt.Errorf("size = %d, want %d", n, len(pushed))
	}
	for i, x := range pushed {
		if got := rt.VectorBoolAt(v, int64(i)); got != x {
			return fmt.Errorf("at(%d) = %t, want %t", i, got, x)
		}
	}
	return rt.LastError()
}

func checkRelease(rt *lantern.Runtime) error {
	before := rt.Live()
	h := rt.TensorUndefined()
	if rt.TensorIsDefined(h) {
		return errors.New("undefined tensor reports defined")
	}
	rt.Release(h)
	if rt.Live() != before {
		return fmt.Errorf("live handles = %d, want %d", rt.Live(), before)
	}
	rt.Release(h)
	if rt.LastError() == nil {
		return errors.New("double release recorded no error")
	}
	rt.ClearLastError()
	return nil
}
