package selfupdate

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetNameFor(t *testing.T) {
	tests := []struct {
		name    string
		goos    string
		goarch  string
		want    string
		wantErr bool
	}{
		{"darwin amd64", "darwin", "amd64", "learnpb_Darwin_all.tar.gz", false},
		{"darwin arm64", "darwin", "arm64", "learnpb_Darwin_all.tar.gz", false},
		{"linux amd64", "linux", "amd64", "learnpb_Linux_x86_64.tar.gz", false},
		{"linux arm64", "linux", "arm64", "learnpb_Linux_arm64.tar.gz", false},
		{"windows amd64", "windows", "amd64", "learnpb_Windows_x86_64.zip", false},
		{"unsupported os", "freebsd", "amd64", "", true},
		{"unsupported arch", "linux", "mips", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := assetNameFor(tt.goos, tt.goarch)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseChecksums(t *testing.T) {
	input := "abc123  learnpb_Darwin_all.tar.gz\nbadline\n\ndef456  learnpb_Linux_x86_64.tar.gz\n"
	got := parseChecksums([]byte(input))
	assert.Equal(t, map[string]string{
		"learnpb_Darwin_all.tar.gz":   "abc123",
		"learnpb_Linux_x86_64.tar.gz": "def456",
	}, got)
}

func TestVerifyChecksum(t *testing.T) {
	data := []byte("hello world")
	h := sha256.Sum256(data)
	correctHex := hex.EncodeToString(h[:])

	assert.NoError(t, verifyChecksum(data, correctHex))

	err := verifyChecksum(data, "0000000000000000000000000000000000000000000000000000000000000000")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrChecksum)
}

func buildTarGz(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name:     name,
		Mode:     0755,
		Size:     int64(len(content)),
		Typeflag: tar.TypeReg,
	}))
	_, err := tw.Write(content)
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

func TestExtractBinary(t *testing.T) {
	binaryContent := []byte("#!/bin/sh\necho learnpb")

	t.Run("tar.gz", func(t *testing.T) {
		archive := buildTarGz(t, "learnpb", binaryContent)
		got, err := extractBinary(archive, "learnpb_Darwin_all.tar.gz")
		require.NoError(t, err)
		assert.Equal(t, binaryContent, got)
	})

	t.Run("missing binary", func(t *testing.T) {
		archive := buildTarGz(t, "other-file", binaryContent)
		_, err := extractBinary(archive, "learnpb_Darwin_all.tar.gz")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func newReleaseServer(t *testing.T, tag string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/abhisek/learnpb/releases/latest", r.URL.Path)
		fmt.Fprintf(w, `{"tag_name": %q, "html_url": "https://example.com/release"}`, tag)
	}))
}

func TestCheckUpdateAvailable(t *testing.T) {
	srv := newReleaseServer(t, "v1.2.0")
	defer srv.Close()

	c := NewChecker(WithBaseURLs(srv.URL, srv.URL))
	result, err := c.Check(context.Background(), &CheckInput{Version: "v1.1.0"})
	require.NoError(t, err)
	assert.True(t, result.UpdateAvailable)
	assert.Equal(t, "v1.2.0", result.LatestVersion)
}

func TestCheckAlreadyLatest(t *testing.T) {
	srv := newReleaseServer(t, "v1.1.0")
	defer srv.Close()

	c := NewChecker(WithBaseURLs(srv.URL, srv.URL))
	result, err := c.Check(context.Background(), &CheckInput{Version: "v1.1.0"})
	require.NoError(t, err)
	assert.False(t, result.UpdateAvailable)
}

func TestCheckVersionWithoutPrefix(t *testing.T) {
	srv := newReleaseServer(t, "v1.2.0")
	defer srv.Close()

	c := NewChecker(WithBaseURLs(srv.URL, srv.URL))
	result, err := c.Check(context.Background(), &CheckInput{Version: "1.2.0"})
	require.NoError(t, err)
	assert.False(t, result.UpdateAvailable)
}

func TestUpdateRejectsDevBuild(t *testing.T) {
	c := NewChecker()
	err := c.Update(context.Background(), &UpdateInput{CurrentVersion: "(devel)"}, func(UpdateProgress) {})
	assert.ErrorIs(t, err, ErrDevBuild)
}

func TestSwapBinary(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "learnpb")
	require.NoError(t, os.WriteFile(target, []byte("old build"), 0755))

	require.NoError(t, swapBinary(target, []byte("new build")))

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, []byte("new build"), got)

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())

	// no staged leftovers
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSwapBinaryMissingTarget(t *testing.T) {
	err := swapBinary(filepath.Join(t.TempDir(), "absent"), []byte("x"))
	assert.Error(t, err)
}

// releaseServer serves a latest-release document plus the given assets
// under the release download path.
func releaseServer(t *testing.T, tag string, assets map[string][]byte) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/repos/abhisek/learnpb/releases/latest" {
			fmt.Fprintf(w, `{"tag_name": %q, "html_url": "https://example.com/release"}`, tag)
			return
		}
		prefix := fmt.Sprintf("/abhisek/learnpb/releases/download/%s/", tag)
		if body, ok := assets[strings.TrimPrefix(r.URL.Path, prefix)]; ok {
			_, _ = w.Write(body)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
}

func TestUpdateInstallsLatestRelease(t *testing.T) {
	asset, err := assetName()
	if err != nil || strings.HasSuffix(asset, ".zip") {
		t.Skip("no tarball release for this platform")
	}

	binaryContent := []byte("fresh learnpb build")
	archive := buildTarGz(t, "learnpb", binaryContent)
	archiveHash := sha256.Sum256(archive)

	srv := releaseServer(t, "v2.0.0", map[string][]byte{
		asset:           archive,
		"checksums.txt": []byte(fmt.Sprintf("%s  %s\n", hex.EncodeToString(archiveHash[:]), asset)),
	})
	defer srv.Close()

	dir := t.TempDir()
	target := filepath.Join(dir, "learnpb")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0755))

	c := NewChecker(WithBaseURLs(srv.URL, srv.URL))
	c.execPath = func() (string, error) { return target, nil }

	var stages []string
	err = c.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, func(p UpdateProgress) {
		stages = append(stages, p.Stage)
	})
	require.NoError(t, err)

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, binaryContent, got)
	assert.Equal(t, []string{"check", "download", "verify", "extract", "apply", "done"}, stages)
}

func TestUpdateAlreadyLatest(t *testing.T) {
	srv := releaseServer(t, "v1.0.0", nil)
	defer srv.Close()

	c := NewChecker(WithBaseURLs(srv.URL, srv.URL))
	err := c.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, func(UpdateProgress) {})
	assert.ErrorIs(t, err, ErrAlreadyLatest)
}

func TestUpdateRejectsBadChecksum(t *testing.T) {
	asset, err := assetName()
	if err != nil || strings.HasSuffix(asset, ".zip") {
		t.Skip("no tarball release for this platform")
	}

	archive := buildTarGz(t, "learnpb", []byte("fresh build"))
	srv := releaseServer(t, "v2.0.0", map[string][]byte{
		asset: archive,
		"checksums.txt": []byte(fmt.Sprintf("%s  %s\n",
			"0000000000000000000000000000000000000000000000000000000000000000", asset)),
	})
	defer srv.Close()

	c := NewChecker(WithBaseURLs(srv.URL, srv.URL))
	err = c.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, func(UpdateProgress) {})
	assert.ErrorIs(t, err, ErrChecksum)
}

func TestUpdateMissingAsset(t *testing.T) {
	srv := releaseServer(t, "v2.0.0", nil)
	defer srv.Close()

	c := NewChecker(WithBaseURLs(srv.URL, srv.URL))
	err := c.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, func(UpdateProgress) {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "download")
}
