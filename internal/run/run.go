// Package run executes external build drivers with their output wired to
// ours. Subprocess output goes to stdout along with our own messages so the
// two don't get interleaved badly.
package run

import (
	"os"
	"os/exec"
	"strings"

	"github.com/egor-tensin/cmake-common/internal/msg"
)

// Command runs an executable in the current directory.
func Command(name string, args ...string) error {
	return command("", nil, name, args)
}

// CommandIn runs an executable with the given working directory.
func CommandIn(dir, name string, args ...string) error {
	return command(dir, nil, name, args)
}

// CommandEnv runs an executable with extra KEY=VALUE environment entries.
func CommandEnv(env []string, name string, args ...string) error {
	return command("", env, name, args)
}

func command(dir string, extraEnv []string, name string, args []string) error {
	msg.Info("running: %s %s", name, strings.Join(args, " "))
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	if len(extraEnv) > 0 {
		cmd.Env = append(os.Environ(), extraEnv...)
	}
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stdout
	cmd.Stdin = os.Stdin
	return cmd.Run()
}
