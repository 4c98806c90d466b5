package finder

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nuttxconf/internal/ports"
)

type stubRunner struct {
	req ports.ProcessRequest
	res *ports.ProcessResult
	err error
}

func (r *stubRunner) Run(_ context.Context, req ports.ProcessRequest) (*ports.ProcessResult, error) {
	r.req = req
	return r.res, r.err
}

func TestFindSearcher_FindConfigDirs(t *testing.T) {
	tests := []struct {
		name    string
		res     *ports.ProcessResult
		err     error
		want    []string
		wantErr bool
	}{
		{
			name: "single match",
			res:  &ports.ProcessResult{PID: 1, Stdout: "./boards/arm/stm32/nucleo/configs/nsh\n"},
			want: []string{"./boards/arm/stm32/nucleo/configs/nsh"},
		},
		{
			name: "several matches keep find order",
			res:  &ports.ProcessResult{PID: 1, Stdout: "./b/nucleo/configs/nsh\n\n./a/nucleo/configs/nsh\n"},
			want: []string{"./b/nucleo/configs/nsh", "./a/nucleo/configs/nsh"},
		},
		{
			name: "no match",
			res:  &ports.ProcessResult{PID: 1},
			want: nil,
		},
		{
			name: "partial read errors keep matches",
			res:  &ports.ProcessResult{PID: 1, ExitCode: 1, Stdout: "./b/nucleo/configs/nsh\n", Stderr: "Permission denied"},
			want: []string{"./b/nucleo/configs/nsh"},
		},
		{
			name:    "failure without output",
			res:     &ports.ProcessResult{PID: 1, ExitCode: 127, Stderr: "find: not found"},
			wantErr: true,
		},
		{
			name:    "runner error",
			res:     &ports.ProcessResult{},
			err:     errors.New("boom"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &stubRunner{res: tt.res, err: tt.err}
			got, err := NewFindSearcher(runner).FindConfigDirs(context.Background(), "/nuttx", "nucleo", "nsh")

			assert.Equal(t, "find", runner.req.Command)
			assert.Equal(t, []string{".", "-type", "d", "-wholename", "*/nucleo/configs/nsh"}, runner.req.Args)
			assert.Equal(t, "/nuttx", runner.req.Dir)

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWalkSearcher_FindConfigDirs(t *testing.T) {
	tree := fstest.MapFS{
		"boards/arm/stm32/nucleo/configs/nsh/defconfig":    {},
		"boards/arm/stm32/nucleo/configs/usbnsh/defconfig": {},
		"boards/risc-v/esp32c3/devkit/configs/nsh/defconfig": {},
		"boards/sim/sim/sim/configs/nsh/defconfig":           {},
		"boards/sim/sim/sim/configs/nucleo":                  {},
		"nucleo/configs/nsh/defconfig":                       {},
	}
	s := &WalkSearcher{fsys: func(string) fs.FS { return tree }}

	tests := []struct {
		name  string
		board string
		conf  string
		want  []string
	}{
		{
			name:  "nested board",
			board: "devkit",
			conf:  "nsh",
			want:  []string{"./boards/risc-v/esp32c3/devkit/configs/nsh"},
		},
		{
			name:  "board at any depth including root",
			board: "nucleo",
			conf:  "nsh",
			want:  []string{"./boards/arm/stm32/nucleo/configs/nsh", "./nucleo/configs/nsh"},
		},
		{
			name:  "files are not matches",
			board: "sim",
			conf:  "nucleo",
			want:  nil,
		},
		{
			name:  "unknown board",
			board: "missing",
			conf:  "nsh",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.FindConfigDirs(context.Background(), "/nuttx", tt.board, tt.conf)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWalkSearcher_OSFilesystem(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "boards", "arm", "nucleo", "configs", "nsh")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	got, err := NewWalkSearcher().FindConfigDirs(context.Background(), root, "nucleo", "nsh")
	require.NoError(t, err)
	assert.Equal(t, []string{"./boards/arm/nucleo/configs/nsh"}, got)
}

func TestWalkSearcher_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tree := fstest.MapFS{"a/nucleo/configs/nsh/defconfig": {}}
	s := &WalkSearcher{fsys: func(string) fs.FS { return tree }}

	_, err := s.FindConfigDirs(ctx, "/", "nucleo", "nsh")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSelecting_FollowsKind(t *testing.T) {
	kind := KindFind
	runner := &stubRunner{res: &ports.ProcessResult{PID: 1, Stdout: "./x/nucleo/configs/nsh\n"}}
	s := NewSelecting(func() string { return kind }, runner)
	s.walk.fsys = func(string) fs.FS { return fstest.MapFS{"y/nucleo/configs/nsh/defconfig": {}} }

	got, err := s.FindConfigDirs(context.Background(), "/nuttx", "nucleo", "nsh")
	require.NoError(t, err)
	assert.Equal(t, []string{"./x/nucleo/configs/nsh"}, got)

	kind = KindWalk
	got, err = s.FindConfigDirs(context.Background(), "/nuttx", "nucleo", "nsh")
	require.NoError(t, err)
	assert.Equal(t, []string{"./y/nucleo/configs/nsh"}, got)
}
