package selfupdate

import (
	"archive/tar"
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
	"strings"
)

// DevVersion is the version reported by builds without release metadata.
const DevVersion = "(devel)"

// maxDownload bounds any single release download.
const maxDownload = 64 << 20

var (
	ErrDevBuild      = errors.New("cannot update a development build")
	ErrAlreadyLatest = errors.New("already running the latest version")
	ErrChecksum      = errors.New("checksum verification failed")
)

// Stage names a step of Update for progress reporting.
type Stage string

const (
	StageDownload Stage = "download"
	StageVerify   Stage = "verify"
	StageInstall  Stage = "install"
	StageDone     Stage = "done"
)

// Update installs the release described by result over the running binary.
// result must come from Check on the same Checker. progress may be nil.
func (c *Checker) Update(ctx context.Context, result *CheckResult, progress func(Stage, string)) error {
	if progress == nil {
		progress = func(Stage, string) {}
	}
	if result.CurrentVersion == DevVersion {
		return ErrDevBuild
	}
	if !result.UpdateAvailable {
		return ErrAlreadyLatest
	}
	if result.ArchiveURL == "" {
		if _, err := c.archiveName(result.LatestVersion); err != nil {
			return err
		}
		return fmt.Errorf("%w: release %s has no archive for %s/%s",
			ErrUnsupportedPlatform, result.LatestVersion, c.goos, c.goarch)
	}
	if result.ChecksumsURL == "" {
		return fmt.Errorf("release %s publishes no %s", result.LatestVersion, checksumsAsset)
	}

	progress(StageDownload, fmt.Sprintf("Downloading %s...", result.Archive))
	archive, err := c.fetch(ctx, result.ArchiveURL)
	if err != nil {
		return fmt.Errorf("download archive: %w", err)
	}

	progress(StageVerify, "Verifying checksum...")
	sums, err := c.fetch(ctx, result.ChecksumsURL)
	if err != nil {
		return fmt.Errorf("download checksums: %w", err)
	}
	want, err := lookupChecksum(sums, result.Archive)
	if err != nil {
		return err
	}
	if got := sha256.Sum256(archive); hex.EncodeToString(got[:]) != want {
		return fmt.Errorf("%w: %s", ErrChecksum, result.Archive)
	}

	progress(StageInstall, "Installing...")
	target, err := c.execPath()
	if err != nil {
		return fmt.Errorf("resolve executable path: %w", err)
	}
	if err := c.install(archive, target); err != nil {
		return fmt.Errorf("install: %w", err)
	}

	progress(StageDone, fmt.Sprintf("Updated to %s", result.LatestVersion))
	return nil
}

func (c *Checker) fetch(ctx context.Context, url string) ([]byte, error) {
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
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownload+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxDownload {
		return nil, fmt.Errorf("%s exceeds %d bytes", url, maxDownload)
	}
	return data, nil
}

// lookupChecksum finds name in a sha256sum-style listing.
func lookupChecksum(listing []byte, name string) (string, error) {
	sc := bufio.NewScanner(bytes.NewReader(listing))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 2 && strings.TrimPrefix(fields[1], "*") == name {
			return strings.ToLower(fields[0]), nil
		}
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("%w: no entry for %s", ErrChecksum, name)
}

// install streams the binary entry of a tar.gz archive into a temp file next
// to target and renames it into place, keeping target's mode.
func (c *Checker) install(archive []byte, target string) error {
	info, err := os.Stat(target)
	if err != nil {
		return err
	}

	gz, err := gzip.NewReader(bytes.NewReader(archive))
	if err != nil {
		return fmt.Errorf("open gzip: %w", err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("binary %q not found in archive", c.binary)
		}
		if err != nil {
			return fmt.Errorf("read tar: %w", err)
		}
		if hdr.Typeflag == tar.TypeReg && filepath.Base(hdr.Name) == c.binary {
			return replaceFile(tr, target, info.Mode())
		}
	}
}

func replaceFile(r io.Reader, target string, mode os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+"-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := io.Copy(tmp, io.LimitReader(r, maxDownload)); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), mode); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), target)
}
