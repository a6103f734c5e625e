package debate

import (
	"context"

	"github.com/smhong/meddebate/internal/oracle"
)

// scriptedOracleFunc adapts a plain function to the oracle interface so
// tests can script responses per request.
type scriptedOracleFunc func(oracle.Request) (string, error)

func (f scriptedOracleFunc) Invoke(ctx context.Context, req oracle.Request) (oracle.Response, error) {
	text, err := f(req)
	if err != nil {
		return oracle.Response{}, err
	}
	return oracle.Response{Text: text}, nil
}

func scriptedOracle(f func(oracle.Request) (string, error)) oracle.Oracle {
	return scriptedOracleFunc(f)
}

// scriptedResponses adapts a context-aware function so tests can inspect
// the call context and script full responses including tool metadata.
type scriptedResponses func(context.Context, oracle.Request) (oracle.Response, error)

func (f scriptedResponses) Invoke(ctx context.Context, req oracle.Request) (oracle.Response, error) {
	return f(ctx, req)
}
