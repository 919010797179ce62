package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set at release time:
//
//	go build -ldflags "-X github.com/kamusis/vocablink/cmd.version=v0.1.0 \
//	  -X github.com/kamusis/vocablink/cmd.commit=$(git rev-parse HEAD) \
//	  -X github.com/kamusis/vocablink/cmd.buildDate=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	version   = "dev"
	commit    = ""
	buildDate = ""
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show vocablink version and build information",
	RunE:  runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// buildInfo is what `vocablink version` prints.
type buildInfo struct {
	Module, Version, Commit, BuildDate string
}

// currentBuild merges the ldflags values with what the Go toolchain
// embedded, so `go install` builds still report a version and commit.
func currentBuild(bi *debug.BuildInfo) buildInfo {
	info := buildInfo{
		Module:    "github.com/kamusis/vocablink",
		Version:   version,
		Commit:    commit,
		BuildDate: buildDate,
	}
	if bi == nil {
		return info
	}
	if bi.Main.Path != "" {
		info.Module = bi.Main.Path
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.BuildDate == "" {
				info.BuildDate = s.Value
			}
		}
	}
	return info
}

func runVersion(_ *cobra.Command, _ []string) error {
	bi, _ := debug.ReadBuildInfo()
	info := currentBuild(bi)
	fmt.Printf("vocablink:  %s\n", info.Module)
	fmt.Printf("Version:    %s\n", info.Version)
	fmt.Printf("Commit:     %s\n", emptyAsNA(info.Commit))
	fmt.Printf("Build Date: %s\n", emptyAsNA(info.BuildDate))
	fmt.Printf("Go Version: %s\n", runtime.Version())
	fmt.Printf("OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
	return nil
}

func emptyAsNA(s string) string {
	if s == "" {
		return "n/a"
	}
	return s
}
