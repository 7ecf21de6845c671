package session

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/earlysvahn/ollamaq/internal/ollama"
	"github.com/earlysvahn/ollamaq/internal/store"
)

// scriptedInput replays lines and then reports io.EOF.
type scriptedInput struct {
	lines   []string
	prompts []string
}

func (s *scriptedInput) ReadLine(prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

type fakeServer struct {
	tags      string
	reply     string
	status    int
	generates []string
}

func (f *fakeServer) start(t *testing.T) *ollama.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tags":
			io.WriteString(w, f.tags)
		case "/api/generate":
			b, _ := io.ReadAll(r.Body)
			f.generates = append(f.generates, string(b))
			if f.status != 0 {
				w.WriteHeader(f.status)
			}
			io.WriteString(w, f.reply)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return ollama.NewClient(srv.URL)
}

type recorded struct {
	exchanges []store.Exchange
	err       error
}

func (r *recorded) Append(_ context.Context, ex store.Exchange) error {
	r.exchanges = append(r.exchanges, ex)
	return r.err
}

func run(t *testing.T, backend Backend, rec Recorder, lines ...string) (State, string, string, error) {
	t.Helper()
	var out, diag bytes.Buffer
	state, err := Run(context.Background(), Config{
		Backend:  backend,
		Input:    &scriptedInput{lines: lines},
		Out:      &out,
		Err:      &diag,
		Recorder: rec,
	})
	return state, out.String(), diag.String(), err
}

func TestRun_DefaultModelHello(t *testing.T) {
	srv := &fakeServer{
		tags:  `{"models":[{"name":"llama2:7b","size":3825819519}]}`,
		reply: `{"response":"Hi there!"}`,
	}
	state, out, diag, err := run(t, srv.start(t), nil, "", "Hello", "q")

	require.NoError(t, err)
	assert.Empty(t, diag)
	assert.Equal(t, "llama2:7b", state.Model)
	assert.Equal(t, 1, state.Exchanges)
	require.Len(t, srv.generates, 1)
	assert.Equal(t, `{"model":"llama2:7b","prompt":"Hello","stream":false}`, srv.generates[0])
	assert.Contains(t, out, "→ 1. llama2:7b (3.6 GB)")
	assert.Contains(t, out, "\nHi there!\n")
	assert.Contains(t, out, "after 1 exchange. Goodbye!")
}

func TestRun_EmptyCatalog(t *testing.T) {
	srv := &fakeServer{tags: `{"models":[]}`}
	_, out, diag, err := run(t, srv.start(t), nil)

	assert.ErrorIs(t, err, ErrNoModels)
	assert.Contains(t, diag, "No models available")
	assert.NotContains(t, out, "Goodbye")
}

func TestRun_ServerDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	client := ollama.NewClient(srv.URL)
	srv.Close()

	_, _, diag, err := run(t, client, nil, "")
	assert.ErrorIs(t, err, ErrNoModels)
	assert.Contains(t, diag, "[error] fetch models:")
}

func TestRun_SelectionRetriesThenQuits(t *testing.T) {
	srv := &fakeServer{tags: `{"models":[{"name":"mistral","size":1},{"name":"phi3","size":2}]}`}
	state, out, diag, err := run(t, srv.start(t), nil, "abc", "0", "3", "q")

	require.NoError(t, err)
	assert.Empty(t, state.Model)
	assert.Empty(t, srv.generates)
	assert.Equal(t, 1, strings.Count(diag, "Invalid input. Please enter a number."))
	assert.Equal(t, 2, strings.Count(diag, "Invalid choice. Please try again."))
	assert.Contains(t, out, "after 0 exchanges. Goodbye!")
}

func TestRun_SelectByNumber(t *testing.T) {
	srv := &fakeServer{
		tags:  `{"models":[{"name":"mistral","size":1},{"name":"phi3","size":2}]}`,
		reply: `{"response":"ok"}`,
	}
	state, _, _, err := run(t, srv.start(t), nil, "2", "hi", "Q")

	require.NoError(t, err)
	assert.Equal(t, "phi3", state.Model)
	assert.Contains(t, srv.generates[0], `"model":"phi3"`)
}

func TestRun_EmptyQueryIsNotSent(t *testing.T) {
	srv := &fakeServer{
		tags:  `{"models":[{"name":"llama2:7b","size":1}]}`,
		reply: `{"response":"ok"}`,
	}
	state, _, diag, err := run(t, srv.start(t), nil, "", "", "", "q")

	require.NoError(t, err)
	assert.Zero(t, state.Exchanges)
	assert.Empty(t, srv.generates)
	assert.Equal(t, 2, strings.Count(diag, "Empty input"))
}

func TestRun_QueriesAreSentAsTyped(t *testing.T) {
	srv := &fakeServer{
		tags:  `{"models":[{"name":"llama2:7b","size":1}]}`,
		reply: `{"response":"ok"}`,
	}
	state, _, diag, err := run(t, srv.start(t), nil, "", "  Hello ", "   ", " q ", "q", "never sent")

	require.NoError(t, err)
	assert.Equal(t, 3, state.Exchanges)
	assert.NotContains(t, diag, "Empty input")
	assert.Equal(t, []string{
		`{"model":"llama2:7b","prompt":"  Hello ","stream":false}`,
		`{"model":"llama2:7b","prompt":"   ","stream":false}`,
		`{"model":"llama2:7b","prompt":" q ","stream":false}`,
	}, srv.generates)
}

func TestRun_BlankSelectionIsRejected(t *testing.T) {
	srv := &fakeServer{tags: `{"models":[{"name":"llama2:7b","size":1}]}`}
	state, _, diag, err := run(t, srv.start(t), nil, "   ", " q ", "q")

	require.NoError(t, err)
	assert.Empty(t, state.Model)
	assert.Equal(t, 2, strings.Count(diag, "Invalid input. Please enter a number."))
}

func TestRun_MissingResponseFieldPrintsFallback(t *testing.T) {
	srv := &fakeServer{
		tags:  `{"models":[{"name":"llama2:7b","size":1}]}`,
		reply: `{"done":true}`,
	}
	state, out, _, err := run(t, srv.start(t), nil, "", "Hello", "q")

	require.NoError(t, err)
	assert.Equal(t, 1, state.Exchanges)
	assert.Contains(t, out, "\nNo response returned.\n")
}

func TestRun_GenerateFailureKeepsLooping(t *testing.T) {
	srv := &fakeServer{
		tags:   `{"models":[{"name":"llama2:7b","size":1}]}`,
		reply:  `{"error":"model is loading"}`,
		status: http.StatusServiceUnavailable,
	}
	state, _, diag, err := run(t, srv.start(t), nil, "", "Hello", "Again", "q")

	require.NoError(t, err)
	assert.Zero(t, state.Exchanges)
	assert.Len(t, srv.generates, 2)
	assert.Equal(t, 2, strings.Count(diag, "No response from Ollama."))
	assert.Contains(t, diag, "model is loading")
}

func TestRun_MalformedReplyIsReported(t *testing.T) {
	srv := &fakeServer{
		tags:  `{"models":[{"name":"llama2:7b","size":1}]}`,
		reply: `{"response":`,
	}
	state, _, diag, err := run(t, srv.start(t), nil, "", "Hello", "q")

	require.NoError(t, err)
	assert.Zero(t, state.Exchanges)
	assert.Contains(t, diag, "JSON parse error")
}

func TestRun_EOFQuits(t *testing.T) {
	srv := &fakeServer{tags: `{"models":[{"name":"llama2:7b","size":1}]}`}

	state, out, _, err := run(t, srv.start(t), nil)
	require.NoError(t, err)
	assert.Empty(t, state.Model)
	assert.Contains(t, out, "Goodbye!")

	state, _, _, err = run(t, srv.start(t), nil, "")
	require.NoError(t, err)
	assert.Equal(t, "llama2:7b", state.Model)
}

func TestRun_RecordsExchanges(t *testing.T) {
	srv := &fakeServer{
		tags:  `{"models":[{"name":"llama2:7b","size":1}]}`,
		reply: `{"response":"Hi there!"}`,
	}
	rec := &recorded{}
	state, _, _, err := run(t, srv.start(t), rec, "", "Hello", "q")

	require.NoError(t, err)
	require.Len(t, rec.exchanges, 1)
	assert.Equal(t, state.ID, rec.exchanges[0].SessionID)
	assert.Equal(t, "llama2:7b", rec.exchanges[0].Model)
	assert.Equal(t, "Hello", rec.exchanges[0].Prompt)
	assert.Equal(t, "Hi there!", rec.exchanges[0].Response)
}

func TestRun_RecorderFailureIsAWarning(t *testing.T) {
	srv := &fakeServer{
		tags:  `{"models":[{"name":"llama2:7b","size":1}]}`,
		reply: `{"response":"Hi"}`,
	}
	state, _, diag, err := run(t, srv.start(t), &recorded{err: errors.New("disk full")}, "", "Hello", "q")

	require.NoError(t, err)
	assert.Equal(t, 1, state.Exchanges)
	assert.Contains(t, diag, "[warning] failed to save exchange: disk full")
}

func TestRun_PromptsShowDefault(t *testing.T) {
	srv := &fakeServer{tags: `{"models":[{"name":"mistral","size":1},{"name":"llama2:13b","size":1}]}`}
	in := &scriptedInput{lines: []string{"q"}}
	_, err := Run(context.Background(), Config{
		Backend: srv.start(t),
		Input:   in,
		Out:     io.Discard,
		Err:     io.Discard,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Enter model number (default is llama2:13b, press Enter): "}, in.prompts)
}
