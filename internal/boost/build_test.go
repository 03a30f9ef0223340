package boost

import (
	"os"
	"strings"
	"testing"

	"github.com/egor-tensin/cmake-common/internal/axis"
	"github.com/egor-tensin/cmake-common/internal/matrix"
	"github.com/egor-tensin/cmake-common/internal/toolset"
)

func argAt(t *testing.T, args []string, prefix string) (int, string) {
	t.Helper()
	for i, arg := range args {
		if strings.HasPrefix(arg, prefix) {
			return i, arg
		}
	}
	t.Fatalf("no argument with prefix %q in %v", prefix, args)
	return -1, ""
}

func TestForEachInvocation_GCCMatrix(t *testing.T) {
	params := BuildParams{
		Platforms: []axis.Platform{axis.PlatformX86, axis.PlatformX64},
		Toolset:   toolset.Spec{Hint: toolset.HintGCC},
		Host:      axis.OSLinux,
	}

	var cells []matrix.Cell
	var configPaths []string
	err := params.ForEachInvocation(func(cell matrix.Cell) error {
		cells = append(cells, cell)

		_, configArg := argAt(t, cell.Args, "--user-config=")
		path := strings.TrimPrefix(configArg, "--user-config=")
		contents, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("the user config must exist during the invocation: %v", err)
		}
		if !strings.Contains(string(contents), "using gcc : custom :") {
			t.Errorf("unexpected user config contents: %q", contents)
		}
		configPaths = append(configPaths, path)
		return nil
	})
	if err != nil {
		t.Fatalf("ForEachInvocation: %v", err)
	}

	// Defaults kick in: Debug and Release, static libraries.
	wantStageDirs := []string{
		"stage/x86/Debug",
		"stage/x86/Release",
		"stage/x64/Debug",
		"stage/x64/Release",
	}
	if len(cells) != len(wantStageDirs) {
		t.Fatalf("expected %d invocations, got %d", len(wantStageDirs), len(cells))
	}
	for i, cell := range cells {
		if cell.StageDir != wantStageDirs[i] {
			t.Errorf("cell %d: stage dir %q, want %q", i, cell.StageDir, wantStageDirs[i])
		}
		if cell.Link != axis.Static {
			t.Errorf("cell %d: link %v, want static", i, cell.Link)
		}
		// Static runtime linking is impossible against glibc.
		if cell.RuntimeLink != axis.Shared {
			t.Errorf("cell %d: runtime link %v, want the coerced shared", i, cell.RuntimeLink)
		}
	}

	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			t.Errorf("user config %s must be removed after the invocation", path)
		}
	}
}

func TestForEachInvocation_ArgOrder(t *testing.T) {
	params := BuildParams{
		Platforms:      []axis.Platform{axis.PlatformX64},
		Configurations: []axis.Configuration{axis.Release},
		Link:           []axis.Linkage{axis.Shared},
		RuntimeLink:    axis.Shared,
		Toolset:        toolset.Spec{Hint: toolset.HintGCC},
		Host:           axis.OSLinux,
		BuildDir:       "b2build",
		B2Args:         []string{"--with-filesystem"},
	}

	var args []string
	err := params.ForEachInvocation(func(cell matrix.Cell) error {
		args = append([]string(nil), cell.Args...)
		return nil
	})
	if err != nil {
		t.Fatalf("ForEachInvocation: %v", err)
	}

	if args[0] != "--build-dir=b2build" {
		t.Errorf("--build-dir must come first, got %v", args)
	}
	stagePos, stageArg := argAt(t, args, "--stagedir=")
	if stageArg != "--stagedir=stage/x64/Release" {
		t.Errorf("stage dir arg = %q", stageArg)
	}
	layoutPos, _ := argAt(t, args, "--layout=system")
	modelPos, modelArg := argAt(t, args, "address-model=")
	if modelArg != "address-model=64" {
		t.Errorf("address model arg = %q", modelArg)
	}
	toolsetPos, _ := argAt(t, args, "toolset=gcc-custom")
	variantPos, _ := argAt(t, args, "variant=release")
	linkPos, _ := argAt(t, args, "link=shared")
	runtimePos, _ := argAt(t, args, "runtime-link=shared")
	extraPos, _ := argAt(t, args, "--with-filesystem")

	order := []int{stagePos, layoutPos, modelPos, toolsetPos, variantPos, linkPos, runtimePos, extraPos}
	for i := 1; i < len(order); i++ {
		if order[i-1] >= order[i] {
			t.Fatalf("arguments out of order: %v", args)
		}
	}
	if args[len(args)-1] != "--with-filesystem" {
		t.Errorf("verbatim extras must come last, got %v", args)
	}
}

func TestForEachInvocation_Verbosity(t *testing.T) {
	run := func(verbose bool) []string {
		params := BuildParams{
			Toolset: toolset.Spec{Hint: toolset.HintGCC},
			Host:    axis.OSLinux,
			Verbose: verbose,
		}
		var args []string
		err := params.ForEachInvocation(func(cell matrix.Cell) error {
			if args == nil {
				args = append([]string(nil), cell.Args...)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("ForEachInvocation: %v", err)
		}
		return args
	}

	quiet := strings.Join(run(false), " ")
	if !strings.Contains(quiet, "warnings=off") || !strings.Contains(quiet, "-d0") {
		t.Errorf("quiet run misses the quiet flags: %s", quiet)
	}
	verbose := strings.Join(run(true), " ")
	for _, flag := range []string{"warnings=all", "-d2", "--debug-configuration"} {
		if !strings.Contains(verbose, flag) {
			t.Errorf("verbose run misses %q: %s", flag, verbose)
		}
	}
}

func TestForEachInvocation_MinGWRequiresPlatform(t *testing.T) {
	params := BuildParams{
		Toolset: toolset.Spec{Hint: toolset.HintMinGW},
		Host:    axis.OSLinux,
	}
	err := params.ForEachInvocation(func(matrix.Cell) error {
		t.Fatal("no invocation must be attempted")
		return nil
	})
	if err == nil {
		t.Fatal("expected an error for mingw with the auto platform")
	}
}
