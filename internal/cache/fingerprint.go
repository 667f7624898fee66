package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"runtime/debug"
	"sync"
)

// currentBuild is computed once per process.
var currentBuild = sync.OnceValue(buildID)

// Fingerprint hashes everything besides file content that affects lint
// results: the binary build, directive names, enabled rules and script
// sources. Order of parts matters.
func Fingerprint(parts ...string) string {
	h := sha256.New()
	_, _ = h.Write([]byte(currentBuild()))
	for _, p := range parts {
		_, _ = h.Write([]byte{0})
		_, _ = h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// buildID identifies the running binary by module version and VCS revision.
// Development builds change without either moving, so the executable itself
// is hashed for them.
func buildID() string {
	id := "unknown"
	if info, ok := debug.ReadBuildInfo(); ok {
		id = info.Main.Version
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" || s.Key == "vcs.modified" {
				id += " " + s.Value
			}
		}
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			return id
		}
	}
	if sum, err := executableHash(); err == nil {
		id += " " + sum
	}
	return id
}

func executableHash() (string, error) {
	path, err := os.Executable()
	if err != nil {
		return "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
