package interpreter

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/doeshing/retroshell/internal/domain"
)

type stubFilesystem struct {
	readContent string
	readErr     error
	listContent string
	listErr     error
	deleteErr   error

	readCalls   []string
	listCalls   []string
	deleteCalls []string
}

func (s *stubFilesystem) Read(_ context.Context, path string) (string, error) {
	s.readCalls = append(s.readCalls, path)
	return s.readContent, s.readErr
}

func (s *stubFilesystem) Write(_ context.Context, path, content string) (string, error) {
	return "", nil
}

func (s *stubFilesystem) List(_ context.Context, path string) (string, error) {
	s.listCalls = append(s.listCalls, path)
	return s.listContent, s.listErr
}

func (s *stubFilesystem) Delete(_ context.Context, path string) (string, error) {
	s.deleteCalls = append(s.deleteCalls, path)
	if s.deleteErr != nil {
		return "", s.deleteErr
	}
	return "Removed " + path, nil
}

func (s *stubFilesystem) Search(context.Context, string) ([]string, error) {
	return nil, nil
}

type stubRunner struct {
	result domain.RunResult
	err    error
	calls  []string
}

func (s *stubRunner) Run(_ context.Context, code string) (domain.RunResult, error) {
	s.calls = append(s.calls, code)
	return s.result, s.err
}

func newTestExecutor(fs *stubFilesystem, runner *stubRunner) *SystemExecutor {
	return NewSystemExecutor(fs, runner, "", nopLogger{})
}

func TestSystemExecutorChangeDirectory(t *testing.T) {
	tests := []struct {
		name    string
		startAt string
		input   string
		want    string
	}{
		{"absolute path replaces", "/home/user", "cd /etc", "/etc"},
		{"dotdot pops a segment", "/home/user", "cd ..", "/home"},
		{"dotdot from root-adjacent stays rooted", "/home", "cd ..", "/"},
		{"dot is a no-op", "/home/user", "cd .", "/home/user"},
		{"relative appends", "/home/user", "cd programs", "/home/user/programs"},
		{"no argument returns home", "/etc", "cd", domain.DefaultHomeDirectory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := newTestExecutor(&stubFilesystem{}, &stubRunner{})
			if tt.startAt != domain.DefaultHomeDirectory {
				res, _ := exec.Execute(context.Background(), Parse("cd "+tt.startAt))
				if res.ExitCode != 0 {
					t.Fatalf("setup cd failed: %+v", res)
				}
			}
			res, handled := exec.Execute(context.Background(), Parse(tt.input))
			if !handled || res.ExitCode != 0 {
				t.Fatalf("cd = %+v handled=%v", res, handled)
			}
			if got := exec.WorkingDirectory(); got != tt.want {
				t.Errorf("working directory = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSystemExecutorChangeDirectoryCollapsesFirstDoubleSlashOnly(t *testing.T) {
	// The relative branch collapses only the first "//" occurrence; the
	// residual-slash behavior from chained navigation is pinned here on
	// purpose.
	exec := newTestExecutor(&stubFilesystem{}, &stubRunner{})

	exec.Execute(context.Background(), Parse("cd /data/"))
	res, _ := exec.Execute(context.Background(), Parse("cd logs"))
	if res.ExitCode != 0 {
		t.Fatalf("cd logs = %+v", res)
	}
	if got := exec.WorkingDirectory(); got != "/data/logs" {
		t.Errorf("working directory = %q, want %q", got, "/data/logs")
	}
}

func TestSystemExecutorPwdIsIdempotent(t *testing.T) {
	exec := newTestExecutor(&stubFilesystem{}, &stubRunner{})

	first, _ := exec.Execute(context.Background(), Parse("pwd"))
	second, _ := exec.Execute(context.Background(), Parse("pwd"))
	if first.Output != second.Output {
		t.Errorf("pwd drifted without cd: %q then %q", first.Output, second.Output)
	}
	if first.Output != domain.DefaultHomeDirectory {
		t.Errorf("pwd = %q, want %q", first.Output, domain.DefaultHomeDirectory)
	}
}

func TestSystemExecutorMissingOperands(t *testing.T) {
	tests := []struct {
		input   string
		wantErr string
	}{
		{"cat", "cat: missing file operand"},
		{"mkdir", "mkdir: missing directory operand"},
		{"rm", "rm: missing file operand"},
		{"cp one", "cp: missing source or destination"},
		{"mv", "mv: missing source or destination"},
		{"run", "run: missing program code"},
		{"load", "load: missing file name"},
		{"save", "save: missing file name"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			fs := &stubFilesystem{}
			runner := &stubRunner{}
			exec := newTestExecutor(fs, runner)

			res, handled := exec.Execute(context.Background(), Parse(tt.input))
			if !handled {
				t.Fatal("command not handled")
			}
			if res.ExitCode != 1 {
				t.Fatalf("exit = %d, want 1", res.ExitCode)
			}
			if res.Err != tt.wantErr {
				t.Errorf("err = %q, want %q", res.Err, tt.wantErr)
			}
			// Usage errors are detected before any capability call.
			if len(fs.readCalls)+len(fs.listCalls)+len(fs.deleteCalls)+len(runner.calls) != 0 {
				t.Error("capability was called despite usage error")
			}
		})
	}
}

func TestSystemExecutorCapabilityFailures(t *testing.T) {
	tests := []struct {
		name    string
		fs      *stubFilesystem
		input   string
		wantErr string
	}{
		{
			name:    "list failure",
			fs:      &stubFilesystem{listErr: errors.New("No such file or directory")},
			input:   "ls missing",
			wantErr: "ls: cannot access 'missing': No such file or directory",
		},
		{
			name:    "read failure",
			fs:      &stubFilesystem{readErr: errors.New("No such file or directory")},
			input:   "cat ghost.txt",
			wantErr: "cat: ghost.txt: No such file or directory",
		},
		{
			name:    "delete failure",
			fs:      &stubFilesystem{deleteErr: errors.New("No such file or directory")},
			input:   "rm ghost.txt",
			wantErr: "rm: cannot remove 'ghost.txt': No such file or directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := newTestExecutor(tt.fs, &stubRunner{})
			res, _ := exec.Execute(context.Background(), Parse(tt.input))
			if res.ExitCode != 1 {
				t.Fatalf("exit = %d, want 1", res.ExitCode)
			}
			if res.Err != tt.wantErr {
				t.Errorf("err = %q, want %q", res.Err, tt.wantErr)
			}
			if res.Output != "" {
				t.Errorf("output = %q, want empty on failure", res.Output)
			}
			if res.DurationMS < 0 {
				t.Errorf("duration = %d, want >= 0", res.DurationMS)
			}
		})
	}
}

func TestSystemExecutorRelativePathsResolveAgainstCwd(t *testing.T) {
	fs := &stubFilesystem{readContent: "data"}
	exec := newTestExecutor(fs, &stubRunner{})

	exec.Execute(context.Background(), Parse("cd /home/user/programs"))
	exec.Execute(context.Background(), Parse("cat hello.bas"))

	if len(fs.readCalls) != 1 || fs.readCalls[0] != "/home/user/programs/hello.bas" {
		t.Errorf("read calls = %v, want resolved absolute path", fs.readCalls)
	}
}

func TestSystemExecutorEcho(t *testing.T) {
	exec := newTestExecutor(&stubFilesystem{}, &stubRunner{})

	res, _ := exec.Execute(context.Background(), Parse("echo hello world"))
	if res.Output != "hello world" || res.ExitCode != 0 {
		t.Fatalf("echo = %+v", res)
	}

	empty, _ := exec.Execute(context.Background(), Parse("echo"))
	if empty.Output != "" || empty.ExitCode != 0 {
		t.Fatalf("bare echo = %+v", empty)
	}
}

func TestSystemExecutorAcknowledgedCommands(t *testing.T) {
	fs := &stubFilesystem{}
	exec := newTestExecutor(fs, &stubRunner{})

	tests := []struct {
		input string
		want  string
	}{
		{"mkdir projects", "Directory created: projects"},
		{"cp a.txt b.txt", "Copied a.txt to b.txt"},
		{"mv a.txt b.txt", "Moved a.txt to b.txt"},
		{"load game.bas", "Program loaded from game.bas"},
		{"save game.bas", "Program saved to game.bas"},
		{"list", "No program loaded"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			res, _ := exec.Execute(context.Background(), Parse(tt.input))
			if res.ExitCode != 0 || res.Output != tt.want {
				t.Errorf("got %+v, want output %q", res, tt.want)
			}
		})
	}
	// These commands are acknowledged, never delegated.
	if len(fs.readCalls)+len(fs.listCalls)+len(fs.deleteCalls) != 0 {
		t.Error("acknowledged command touched the filesystem capability")
	}
}

func TestSystemExecutorRun(t *testing.T) {
	t.Run("joins args and appends explanation", func(t *testing.T) {
		runner := &stubRunner{result: domain.RunResult{
			Output:      "HELLO",
			Success:     true,
			Explanation: "ran on the emulator",
		}}
		exec := newTestExecutor(&stubFilesystem{}, runner)

		res, _ := exec.Execute(context.Background(), Parse(`run 10 PRINT "HELLO"`))
		if res.ExitCode != 0 {
			t.Fatalf("run = %+v", res)
		}
		if len(runner.calls) != 1 || runner.calls[0] != `10 PRINT "HELLO"` {
			t.Errorf("runner received %v", runner.calls)
		}
		if res.Output != "HELLO\nran on the emulator" {
			t.Errorf("output = %q", res.Output)
		}
	})

	t.Run("runner error is reported, not raised", func(t *testing.T) {
		runner := &stubRunner{err: errors.New("bridge unreachable")}
		exec := newTestExecutor(&stubFilesystem{}, runner)

		res, handled := exec.Execute(context.Background(), Parse("run 10 END"))
		if !handled || res.ExitCode != 1 || res.Err != "bridge unreachable" {
			t.Fatalf("run failure = %+v handled=%v", res, handled)
		}
	})

	t.Run("unsuccessful program keeps its output", func(t *testing.T) {
		runner := &stubRunner{result: domain.RunResult{
			Output:  "?SYNTAX ERROR IN 10",
			Success: false,
		}}
		exec := newTestExecutor(&stubFilesystem{}, runner)

		res, _ := exec.Execute(context.Background(), Parse("run 10 BLORT"))
		if res.ExitCode != 1 {
			t.Fatalf("exit = %d, want 1", res.ExitCode)
		}
		if !strings.Contains(res.Output, "?SYNTAX ERROR") {
			t.Errorf("output = %q, want program output preserved", res.Output)
		}
	})
}

func TestSystemExecutorUnknownNameIsNotHandled(t *testing.T) {
	fs := &stubFilesystem{}
	exec := newTestExecutor(fs, &stubRunner{})

	_, handled := exec.Execute(context.Background(), Parse("foobar baz"))
	if handled {
		t.Error("unknown command claimed by system executor; it should fall through")
	}
}
