package toolset

import (
	"fmt"
	"strings"

	"github.com/egor-tensin/cmake-common/internal/msg"
	"github.com/egor-tensin/cmake-common/internal/tempfile"
)

// customVersion is the synthetic version tag under which a compiler is
// declared in a generated user config. Without a version tag b2 insists that
// `g++ -dumpversion` matches the declaration, so it has to be forced.
const customVersion = "custom"

type b2Option struct {
	name  string
	value string
}

// userConfig declares a custom compiler for Boost.Build, to be written into a
// user configuration file and referenced with toolset=<compiler>-custom.
type userConfig struct {
	compiler string // toolset family, like gcc or clang
	path     string // compiler executable, may be empty
	options  []b2Option
	// preamble is emitted before the `using` statement; Clang on Windows
	// needs a `project : requirements` block there.
	preamble string
}

func (u *userConfig) toolsetArg() string {
	return "toolset=" + u.compiler + "-" + customVersion
}

func (u *userConfig) format() string {
	var sb strings.Builder
	if u.preamble != "" {
		sb.WriteString(u.preamble)
	}
	sb.WriteString("using ")
	sb.WriteString(u.compiler)
	sb.WriteString(" : ")
	sb.WriteString(customVersion)
	sb.WriteString(" : ")
	if u.path != "" {
		sb.WriteString(u.path)
		sb.WriteString(" ")
	}
	sb.WriteString(":")
	for _, option := range u.options {
		sb.WriteString("\n    <")
		sb.WriteString(option.name)
		sb.WriteString(">")
		sb.WriteString(option.value)
	}
	sb.WriteString("\n;\n")
	return sb.String()
}

// write puts the config into a scoped temp file and renders the b2 arguments
// referencing it. The returned release function removes the file.
func (u *userConfig) write() ([]string, func() error, error) {
	contents := u.format()
	msg.Info("using user config:\n%s", contents)

	path, remove, err := tempfile.Write("", "user_config_", ".jam", []byte(contents))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrAuxiliaryFile, err)
	}
	release := func() error {
		if err := remove(); err != nil {
			return fmt.Errorf("%w: %v", ErrAuxiliaryFile, err)
		}
		return nil
	}
	return []string{u.toolsetArg(), "--user-config=" + path}, release, nil
}
