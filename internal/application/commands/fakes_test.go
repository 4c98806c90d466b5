package commands

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"nuttxconf/internal/domain"
	"nuttxconf/internal/ports"
)

type fakeSettings struct {
	standard string
	custom   string
}

func (s fakeSettings) ConfigureScriptPath() string       { return s.standard }
func (s fakeSettings) CustomConfigureScriptPath() string { return s.custom }

type fakeWorkspace string

func (w fakeWorkspace) Root() string { return string(w) }

type fakeRunner struct {
	mu        sync.Mutex
	result    *ports.ProcessResult
	err       error
	calls     []ports.ProcessRequest
	untilDone bool // when set, Run behaves like a script that never exits
}

func (r *fakeRunner) Run(ctx context.Context, req ports.ProcessRequest) (*ports.ProcessResult, error) {
	r.mu.Lock()
	r.calls = append(r.calls, req)
	result, err, untilDone := r.result, r.err, r.untilDone
	r.mu.Unlock()

	if untilDone {
		<-ctx.Done()
		return &ports.ProcessResult{PID: 4242, ExitCode: -1}, fmt.Errorf("%s interrupted: %w", req.Command, ctx.Err())
	}
	return result, err
}

type fakePrompter struct {
	mu     sync.Mutex
	choose func(items []string) (string, bool)
	block  chan struct{} // when set, Choose waits for it to close
	called chan struct{} // when set, receives once per call
	titles []string
	items  [][]string
}

func (p *fakePrompter) Choose(ctx context.Context, title string, items []string) (string, bool, error) {
	p.mu.Lock()
	p.titles = append(p.titles, title)
	p.items = append(p.items, items)
	p.mu.Unlock()

	if p.called != nil {
		p.called <- struct{}{}
	}
	if p.block != nil {
		select {
		case <-p.block:
		case <-ctx.Done():
			return "", false, ctx.Err()
		}
	}
	if p.choose == nil {
		return "", false, nil
	}
	choice, ok := p.choose(items)
	return choice, ok, nil
}

func (p *fakePrompter) calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.items)
}

func pick(choice string) func([]string) (string, bool) {
	return func([]string) (string, bool) { return choice, true }
}

type searchCall struct {
	root, board, conf string
}

type fakeSearcher struct {
	matches []string
	err     error
	calls   []searchCall
}

func (s *fakeSearcher) FindConfigDirs(ctx context.Context, root, board, conf string) ([]string, error) {
	s.calls = append(s.calls, searchCall{root, board, conf})
	return s.matches, s.err
}

type fakeOpener struct {
	err    error
	opened chan string
}

func newFakeOpener() *fakeOpener {
	return &fakeOpener{opened: make(chan string, 4)}
}

func (o *fakeOpener) OpenFile(ctx context.Context, path string) error {
	o.opened <- path
	return o.err
}

type fakeStatus struct {
	mu     sync.Mutex
	events []string
}

func (s *fakeStatus) ShowLoading(message string) { s.add("show:" + message) }
func (s *fakeStatus) Writeln(line string)        { s.add("line:" + line) }

func (s *fakeStatus) HideLoading(err error) {
	if err != nil {
		s.add("hide:failed")
		return
	}
	s.add("hide")
}

func (s *fakeStatus) add(e string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

func (s *fakeStatus) snapshot() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.events...)
}

type fakeHistory struct {
	entries []domain.HistoryEntry
	err     error
}

func (h *fakeHistory) Open(string) error { return nil }
func (h *fakeHistory) Close() error      { return nil }

func (h *fakeHistory) Record(ctx context.Context, entry *domain.HistoryEntry) error {
	if h.err != nil {
		return h.err
	}
	h.entries = append(h.entries, *entry)
	return nil
}

func (h *fakeHistory) Recent(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	return h.entries, nil
}

func (h *fakeHistory) LastUsed(ctx context.Context, p domain.Pipeline) (map[domain.Candidate]int64, error) {
	return nil, errors.New("not implemented")
}

// fixture wires the end-to-end scenario: workspace /proj, script
// ${workspaceFolder}/list.sh listing two board1 configurations.
type fixture struct {
	runner   *fakeRunner
	prompter *fakePrompter
	searcher *fakeSearcher
	opener   *fakeOpener
	status   *fakeStatus
	history  *fakeHistory
}

func newFixture() *fixture {
	return &fixture{
		runner: &fakeRunner{result: &ports.ProcessResult{
			PID:    4242,
			Stdout: "board1:confA\nboard1:confB\n",
		}},
		prompter: &fakePrompter{choose: pick("board1:confA")},
		searcher: &fakeSearcher{matches: []string{"./board1/configs/confA"}},
		opener:   newFakeOpener(),
		status:   &fakeStatus{},
		history:  &fakeHistory{},
	}
}

func (f *fixture) deps() Deps {
	return Deps{
		Settings:  fakeSettings{standard: "${workspaceFolder}/list.sh", custom: "${workspaceFolder}/custom.sh"},
		Workspace: fakeWorkspace("/proj"),
		Runner:    f.runner,
		Searcher:  f.searcher,
		Prompter:  f.prompter,
		Opener:    f.opener,
		Status:    f.status,
		History:   f.history,
	}
}
