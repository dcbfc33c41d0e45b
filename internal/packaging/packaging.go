// Package packaging bundles the built site into the zip uploaded to
// static hosting.
package packaging

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const ArchiveName = "hostinger-site.zip"

// Files that must sit at the archive root. .htaccess carries the rewrite
// that sends unknown paths to index.html.
var requiredAtRoot = []string{"index.html", ".htaccess"}

// Layout locates the inputs and outputs relative to the site root.
type Layout struct {
	BuildDir     string
	ArtifactsDir string
	Htaccess     string
}

func DefaultLayout(root string) Layout {
	return Layout{
		BuildDir:     filepath.Join(root, "dist"),
		ArtifactsDir: filepath.Join(root, "artifacts"),
		Htaccess:     filepath.Join(root, "public", ".htaccess"),
	}
}

func (l Layout) ArchivePath() string {
	return filepath.Join(l.ArtifactsDir, ArchiveName)
}

func (l Layout) DistCopy() string {
	return filepath.Join(l.BuildDir, ArchiveName)
}

type Result struct {
	Archive  string
	DistCopy string
	Size     int64
	Entries  int
}

// Package zips the build directory after adding .htaccess to it, checks
// the archive root and copies the archive back into the build directory.
func Package(l Layout) (Result, error) {
	info, err := os.Stat(l.BuildDir)
	if err != nil || !info.IsDir() {
		return Result{}, fmt.Errorf("build directory not found: %s", l.BuildDir)
	}
	if _, err := os.Stat(filepath.Join(l.BuildDir, "index.html")); err != nil {
		return Result{}, fmt.Errorf("index.html not found in build output %s", l.BuildDir)
	}
	log.Println("index.html found")

	if _, err := os.Stat(l.Htaccess); err != nil {
		return Result{}, fmt.Errorf(".htaccess not found at %s: it is required for client-side routing", l.Htaccess)
	}
	if err := copyFile(l.Htaccess, filepath.Join(l.BuildDir, ".htaccess")); err != nil {
		return Result{}, fmt.Errorf("copy .htaccess: %w", err)
	}
	log.Println(".htaccess copied to build directory")

	if err := os.MkdirAll(l.ArtifactsDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create artifacts directory: %w", err)
	}
	archive := l.ArchivePath()
	if err := os.Remove(archive); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Warning: could not remove existing archive: %v", err)
	}

	entries, err := writeArchive(l.BuildDir, archive)
	if err != nil {
		return Result{}, fmt.Errorf("create archive: %w", err)
	}
	if err := VerifyRoot(archive); err != nil {
		return Result{}, err
	}
	log.Println("Verification passed: index.html and .htaccess are at the archive root")

	st, err := os.Stat(archive)
	if err != nil {
		return Result{}, err
	}
	dist := l.DistCopy()
	if err := copyFile(archive, dist); err != nil {
		return Result{}, fmt.Errorf("copy archive to %s: %w", dist, err)
	}
	dst, err := os.Stat(dist)
	if err != nil {
		return Result{}, fmt.Errorf("archive missing at %s after copy: %w", dist, err)
	}
	if dst.Size() != st.Size() {
		return Result{}, fmt.Errorf("file size mismatch: source %d bytes, destination %d bytes", st.Size(), dst.Size())
	}

	return Result{Archive: archive, DistCopy: dist, Size: st.Size(), Entries: entries}, nil
}

// writeArchive zips everything under dir with paths relative to it. A
// previous copy of the archive inside dir is skipped.
func writeArchive(dir, dest string) (int, error) {
	out, err := os.Create(dest)
	if err != nil {
		return 0, err
	}
	zw := zip.NewWriter(out)

	entries := 0
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if rel == "." || rel == ArchiveName {
			return nil
		}
		name := filepath.ToSlash(rel)

		info, err := d.Info()
		if err != nil {
			return err
		}
		hdr, err := zip.FileInfoHeader(info)
		if err != nil {
			return err
		}
		if d.IsDir() {
			hdr.Name = name + "/"
			_, err = zw.CreateHeader(hdr)
			entries++
			return err
		}
		hdr.Name = name
		hdr.Method = zip.Deflate

		w, err := zw.CreateHeader(hdr)
		if err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		_, err = io.Copy(w, f)
		f.Close()
		entries++
		return err
	})

	closeErr := zw.Close()
	if err := out.Close(); closeErr == nil {
		closeErr = err
	}
	if walkErr != nil {
		return 0, walkErr
	}
	return entries, closeErr
}

// VerifyRoot checks that index.html and .htaccess are root entries of the
// archive, with no folder prefix.
func VerifyRoot(archive string) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer r.Close()

	root := map[string]bool{}
	for _, f := range r.File {
		if !strings.Contains(strings.TrimSuffix(f.Name, "/"), "/") {
			root[f.Name] = true
		}
	}
	for _, name := range requiredAtRoot {
		if !root[name] {
			names := make([]string, 0, len(root))
			for n := range root {
				names = append(names, n)
			}
			sort.Strings(names)
			if len(names) > 20 {
				names = names[:20]
			}
			return fmt.Errorf("verification failed: %s is not at the root of the archive (root entries: %s)", name, strings.Join(names, ", "))
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
