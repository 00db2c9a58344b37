package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

var (
	ErrDevBuild      = errors.New("cannot update a development build")
	ErrAlreadyLatest = errors.New("already running the latest version")
	ErrChecksum      = errors.New("checksum mismatch")
)

// UpdateInput selects the release to install. An empty TargetVersion
// means whatever the release endpoint reports as latest.
type UpdateInput struct {
	CurrentVersion string
	TargetVersion  string
}

// UpdateProgress is emitted once per stage so the CLI can narrate the
// update as it runs.
type UpdateProgress struct {
	Stage   string
	Message string
}

const checksumsFile = "checksums.txt"

// releaseArches maps GOARCH values to the arch names the release
// pipeline stamps into asset files.
var releaseArches = map[string]string{
	"amd64": "x86_64",
	"arm64": "arm64",
	"386":   "i386",
}

// Update installs the target release over the running binary. The
// archive is verified against the release's checksums file before any
// byte of the current install is touched.
func (c *Checker) Update(ctx context.Context, input *UpdateInput, progress func(UpdateProgress)) error {
	if input.CurrentVersion == "(devel)" {
		return ErrDevBuild
	}

	tag, err := c.resolveTag(ctx, input, progress)
	if err != nil {
		return err
	}

	asset, err := assetName()
	if err != nil {
		return err
	}

	progress(UpdateProgress{Stage: "download", Message: fmt.Sprintf("Downloading %s...", tag)})
	archive, err := c.fetchAsset(ctx, tag, asset)
	if err != nil {
		return fmt.Errorf("download %s: %w", asset, err)
	}

	progress(UpdateProgress{Stage: "verify", Message: "Verifying checksum..."})
	sums, err := c.fetchAsset(ctx, tag, checksumsFile)
	if err != nil {
		return fmt.Errorf("download %s: %w", checksumsFile, err)
	}
	want, ok := parseChecksums(sums)[asset]
	if !ok {
		return fmt.Errorf("%s does not list %s", checksumsFile, asset)
	}
	if err := verifyChecksum(archive, want); err != nil {
		return err
	}

	progress(UpdateProgress{Stage: "extract", Message: "Extracting binary..."})
	binary, err := extractBinary(archive, asset)
	if err != nil {
		return err
	}

	progress(UpdateProgress{Stage: "apply", Message: "Applying update..."})
	target, err := c.execPath()
	if err != nil {
		return fmt.Errorf("locate running binary: %w", err)
	}
	if err := swapBinary(target, binary); err != nil {
		return fmt.Errorf("install %s: %w", tag, err)
	}

	progress(UpdateProgress{Stage: "done", Message: fmt.Sprintf("Updated to %s", tag)})
	return nil
}

// resolveTag returns the explicit target version, or asks the release
// endpoint for the latest one.
func (c *Checker) resolveTag(ctx context.Context, input *UpdateInput, progress func(UpdateProgress)) (string, error) {
	if input.TargetVersion != "" {
		return input.TargetVersion, nil
	}
	progress(UpdateProgress{Stage: "check", Message: "Checking for latest version..."})
	result, err := c.Check(ctx, &CheckInput{Version: input.CurrentVersion})
	if err != nil {
		return "", fmt.Errorf("check for updates: %w", err)
	}
	if !result.UpdateAvailable {
		return "", ErrAlreadyLatest
	}
	return result.LatestVersion, nil
}

func assetName() (string, error) {
	return assetNameFor(runtime.GOOS, runtime.GOARCH)
}

// assetNameFor mirrors the release pipeline's naming: one universal
// darwin archive, per-arch tarballs for linux, zips for windows.
func assetNameFor(goos, goarch string) (string, error) {
	if goos == "darwin" {
		return "learnpb_Darwin_all.tar.gz", nil
	}
	arch, ok := releaseArches[goarch]
	if !ok {
		return "", fmt.Errorf("no release build for architecture %s", goarch)
	}
	switch goos {
	case "linux":
		return "learnpb_Linux_" + arch + ".tar.gz", nil
	case "windows":
		return "learnpb_Windows_" + arch + ".zip", nil
	}
	return "", fmt.Errorf("no release build for %s", goos)
}

// fetchAsset downloads one file from the tagged release.
func (c *Checker) fetchAsset(ctx context.Context, tag, name string) ([]byte, error) {
	url := fmt.Sprintf("%s/%s/%s/releases/download/%s/%s",
		strings.TrimRight(c.downloadBaseURL, "/"), c.owner, c.repo, tag, name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}

// parseChecksums reads the "hash  filename" lines of a checksums file.
// Lines that don't fit the shape are skipped.
func parseChecksums(data []byte) map[string]string {
	sums := make(map[string]string)
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 2 {
			sums[fields[1]] = fields[0]
		}
	}
	return sums
}

func verifyChecksum(data []byte, wantHex string) error {
	sum := sha256.Sum256(data)
	if got := hex.EncodeToString(sum[:]); got != wantHex {
		return fmt.Errorf("%w: want %s, got %s", ErrChecksum, wantHex, got)
	}
	return nil
}

// extractBinary pulls the learnpb executable out of a release archive.
func extractBinary(archive []byte, asset string) ([]byte, error) {
	if strings.HasSuffix(asset, ".zip") {
		return fromZip(archive, "learnpb.exe")
	}
	return fromTarGz(archive, "learnpb")
}

func fromTarGz(data []byte, name string) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil, fmt.Errorf("%s not found in archive", name)
		}
		if err != nil {
			return nil, fmt.Errorf("read archive: %w", err)
		}
		if hdr.Typeflag == tar.TypeReg && filepath.Base(hdr.Name) == name {
			return io.ReadAll(tr)
		}
	}
}

func fromZip(data []byte, name string) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	for _, f := range zr.File {
		if filepath.Base(f.Name) != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer func() { _ = rc.Close() }()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("%s not found in archive", name)
}

// swapBinary stages the new build next to the target and renames it
// into place, so the swap stays atomic on the same filesystem. The
// staged file is re-read before the rename; a partial write can never
// become the installed binary.
func swapBinary(target string, binary []byte) error {
	info, err := os.Stat(target)
	if err != nil {
		return err
	}

	f, err := os.CreateTemp(filepath.Dir(target), ".learnpb-staged-*")
	if err != nil {
		return err
	}
	staged := f.Name()
	defer func() { _ = os.Remove(staged) }()

	_, werr := f.Write(binary)
	cerr := f.Close()
	if werr != nil {
		return fmt.Errorf("stage binary: %w", werr)
	}
	if cerr != nil {
		return fmt.Errorf("stage binary: %w", cerr)
	}

	onDisk, err := os.ReadFile(staged)
	if err != nil {
		return err
	}
	if !bytes.Equal(onDisk, binary) {
		return fmt.Errorf("%w: staged file does not match extracted binary", ErrChecksum)
	}

	if err := os.Chmod(staged, info.Mode()); err != nil {
		return err
	}
	return os.Rename(staged, target)
}
