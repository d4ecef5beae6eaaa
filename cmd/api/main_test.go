package main

import (
	"errors"
	"fmt"
	"testing"

	"pet-adoption-shelter/internal/domain/errs"
)

func TestExitCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{errs.BadRequest("adoption listing is missing"), 2},
		{fmt.Errorf("submit: %w", errs.NotFound("adoption listing with id %q not found", "x")), 3},
		{errs.Forbidden("only an owner can add an employee"), 4},
		{errors.New("db down"), 1},
	}
	for _, c := range cases {
		if got := exitCode(c.err); got != c.want {
			t.Fatalf("exitCode(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}
