package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"tictac/agent"
	"tictac/communication"
	"tictac/experiments/metrics"
	"tictac/game"
)

var ErrRemote = errors.New("remote agent error")

type Option func(a *RemoteAgent)

// WithContext bounds every request of the agent by ctx.
func WithContext(ctx context.Context) Option {
	return func(a *RemoteAgent) {
		if ctx != nil {
			a.ctx = ctx
		}
	}
}

func WithHTTPClient(c *http.Client) Option {
	return func(a *RemoteAgent) {
		a.client = c
	}
}

// RemoteAgent plays by asking an agent service for each move.
type RemoteAgent struct {
	baseURL string
	name    string
	mark    game.Mark
	client  *http.Client
	ctx     context.Context
}

var _ agent.Agent = (*RemoteAgent)(nil)

// NewRemoteAgent returns an agent backed by the service at baseURL. name selects
// the agent the service builds; empty uses the service default.
func NewRemoteAgent(baseURL, name string, mark game.Mark, options ...Option) *RemoteAgent {
	a := &RemoteAgent{
		baseURL: strings.TrimRight(baseURL, "/"),
		name:    name,
		mark:    mark,
		client:  &http.Client{Timeout: time.Minute},
		ctx:     context.Background(),
	}
	for _, option := range options {
		option(a)
	}
	return a
}

func (a *RemoteAgent) Name() string {
	if a.name == "" {
		return "remote"
	}
	return a.name
}

func (a *RemoteAgent) Mark() game.Mark { return a.mark }

func (a *RemoteAgent) Act(state game.State, _ game.Environment) (game.Action, metrics.SearchMetric, error) {
	req := communication.ActRequest{Board: state.Board, Mark: state.Mark, Agent: a.name}
	var resp communication.ActResponse
	if err := a.post(a.ctx, "/act", req, &resp); err != nil {
		return game.NoAction, metrics.SearchMetric{}, err
	}
	return resp.Action, metrics.SearchMetric{}, nil
}

// Ping checks that the service is up.
func (a *RemoteAgent) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/ping", nil)
	if err != nil {
		return err
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("ping %s: %w", a.baseURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ping %s: status %d: %w", a.baseURL, resp.StatusCode, ErrRemote)
	}
	return nil
}

func (a *RemoteAgent) post(ctx context.Context, path string, in, out any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var e communication.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return fmt.Errorf("post %s: status %d: %s: %w", path, resp.StatusCode, e.Error, ErrRemote)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("post %s: decode response: %w", path, err)
	}
	return nil
}
