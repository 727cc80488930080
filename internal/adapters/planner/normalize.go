package planner

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"trip_planner/internal/domain"
)

// Normalized wraps next so every failure it returns is a *domain.RemoteError.
func Normalized(next Transport) Transport { return normalized{next: next} }

type normalized struct{ next Transport }

func (n normalized) Send(ctx context.Context, req Request) (*Response, error) {
	resp, err := n.next.Send(ctx, req)
	if err != nil {
		return resp, Normalize(err)
	}
	return resp, nil
}

// Normalize collapses err into a *domain.RemoteError. The message is the
// server's detail field if there is one, else err's own message, else the
// generic failure text.
func Normalize(err error) error {
	if err == nil {
		return nil
	}
	var re *domain.RemoteError
	if errors.As(err, &re) {
		return re
	}
	var te *TransportError
	if errors.As(err, &te) && te.Response != nil {
		if d := detail(te.Response.Body); d != "" {
			return domain.NewRemoteError(d)
		}
	}
	return domain.NewRemoteError(err.Error())
}

// detail extracts the human-readable message from an error body. FastAPI
// sends either {"detail": "..."} or, for validation failures,
// {"detail": [{"msg": "..."}, ...]}.
func detail(body []byte) string {
	var env struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &env); err != nil || len(env.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(env.Detail, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(env.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if m := strings.TrimSpace(it.Msg); m != "" {
				msgs = append(msgs, m)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}
