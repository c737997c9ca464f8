package chain

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestIsTransient(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"connection refused", fmt.Errorf("dial tcp: connection refused"), true},
		{"timeout", context.DeadlineExceeded, true},
		{"rate limited", fmt.Errorf("429 too many requests"), true},
		{"revert", fmt.Errorf("execution reverted: paused"), false},
		{"insufficient funds", fmt.Errorf("insufficient funds for gas * price + value"), false},
		{"nonce too low", fmt.Errorf("nonce too low"), false},
		{"underpriced", fmt.Errorf("replacement transaction underpriced"), false},
		{"already known", fmt.Errorf("already known"), false},
		{"intrinsic gas", fmt.Errorf("intrinsic gas too low"), false},
		{"invalid method", fmt.Errorf("json-rpc error -32601"), false},
		{"invalid params", errors.New("the method failed: -32602 invalid params"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := isTransient(tc.err); got != tc.want {
				t.Fatalf("isTransient(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
