// Bumps version.txt, commits it and pushes an annotated release tag. The
// update checker compares against these tags, and each release ships the
// catalog revision current at tag time, so the tag message records both.
//
//	go run ./cmd/util/version_bump <patch|minor|major>
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

const versionFile = "version.txt"

// Version is a semantic version with an optional "v" prefix.
type Version struct {
	Major  int
	Minor  int
	Patch  int
	Prefix string
}

// String returns the formatted version string (e.g., "v1.2.4").
func (v Version) String() string {
	return fmt.Sprintf("%s%d.%d.%d", v.Prefix, v.Major, v.Minor, v.Patch)
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run ./cmd/util/version_bump <patch|minor|major>")
		os.Exit(1)
	}
	bumpType := os.Args[1]

	branch, err := gitOutput("branch", "--show-current")
	if err != nil {
		fmt.Println("Error determining current branch:", err)
		os.Exit(1)
	}
	if branch != "main" {
		fmt.Printf("Error: release bumps must be performed on 'main'. Current branch: %q\n", branch)
		os.Exit(1)
	}

	version, err := readVersion()
	if err != nil {
		fmt.Println("Error reading version:", err)
		os.Exit(1)
	}

	switch bumpType {
	case "patch":
		version.Patch++
	case "minor":
		version.Minor++
		version.Patch = 0
	case "major":
		version.Major++
		version.Minor = 0
		version.Patch = 0
	default:
		fmt.Printf("Invalid bump type %q\n", bumpType)
		os.Exit(1)
	}

	if err := os.WriteFile(versionFile, []byte(version.String()), 0644); err != nil {
		fmt.Println("Error writing version file:", err)
		os.Exit(1)
	}

	tagMessage := fmt.Sprintf("Release %s", version)
	if catVersion, err := catalogVersion(); err == nil {
		tagMessage = fmt.Sprintf("Release %s (catalog %s)", version, catVersion)
	}

	steps := [][]string{
		{"add", versionFile},
		{"commit", "-m", fmt.Sprintf("Bump version to %s", version)},
		{"tag", "-a", version.String(), "-m", tagMessage},
		{"push", "origin", version.String()},
	}
	for _, args := range steps {
		if err := gitRun(args...); err != nil {
			fmt.Printf("git %s failed: %v\n", args[0], err)
			os.Exit(1)
		}
	}

	fmt.Printf("Tagged %s\n", version)
}

func readVersion() (Version, error) {
	data, err := os.ReadFile(versionFile)
	if err != nil {
		return Version{}, err
	}

	re := regexp.MustCompile(`^(v?)(\d+)\.(\d+)\.(\d+)$`)
	matches := re.FindStringSubmatch(strings.TrimSpace(string(data)))
	if matches == nil {
		return Version{}, fmt.Errorf("invalid version format: %q", strings.TrimSpace(string(data)))
	}

	major, _ := strconv.Atoi(matches[2])
	minor, _ := strconv.Atoi(matches[3])
	patch, _ := strconv.Atoi(matches[4])

	return Version{Major: major, Minor: minor, Patch: patch, Prefix: matches[1]}, nil
}

// catalogVersion reads the version stamp of the bundled catalog.
func catalogVersion() (string, error) {
	data, err := os.ReadFile("asset/catalog/services.json")
	if err != nil {
		return "", err
	}
	var doc struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return "", err
	}
	return doc.Version, nil
}

func gitRun(args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func gitOutput(args ...string) (string, error) {
	output, err := exec.Command("git", args...).Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(output)), nil
}
