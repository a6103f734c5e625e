package intake

import (
	"context"

	"github.com/smhong/meddebate/internal/oracle"
)

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

// scriptedResponses scripts full responses including tool call metadata.
type scriptedResponses func(oracle.Request) (oracle.Response, error)

func (f scriptedResponses) Invoke(ctx context.Context, req oracle.Request) (oracle.Response, error) {
	return f(req)
}
