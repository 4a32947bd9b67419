package command

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"

	"github.com/ActuallyHappening/cargo-leptos/internal/errors"
)

// CopyDir recursively copies src into dst, creating dst as needed.
func CopyDir(src, dst string) error {
	err := filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if info.IsDir() {
			return os.MkdirAll(target, 0o750)
		}
		return copyFile(path, target)
	})
	if err != nil {
		return errors.WrapError(err, errors.CategoryIO, "cannot copy directory").
			WithContext("src", src).
			WithContext("dst", dst).
			Build()
	}
	return nil
}

func copyFile(src, dst string) error {
	// #nosec G304 -- paths come from the project manifest
	in, err := os.Open(src)
	if err != nil {
		return errors.WrapError(err, errors.CategoryIO, "cannot open file").WithContext("path", src).Build()
	}
	defer in.Close()
	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return errors.WrapError(err, errors.CategoryIO, "cannot create directory").WithContext("path", dst).Build()
	}
	out, err := os.Create(dst)
	if err != nil {
		return errors.WrapError(err, errors.CategoryIO, "cannot create file").WithContext("path", dst).Build()
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return errors.WrapError(err, errors.CategoryIO, "cannot copy file").WithContext("path", dst).Build()
	}
	return out.Close()
}

var precompressExt = map[string]bool{".js": true, ".wasm": true, ".css": true, ".html": true}

// precompress writes a .gz sibling for every compressible file under dir.
func precompress(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !precompressExt[filepath.Ext(path)] {
			return nil
		}
		return gzipFile(path, path+".gz")
	})
}

func gzipFile(src, dst string) error {
	// #nosec G304 -- walking our own output directory
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	zw, err := gzip.NewWriterLevel(out, gzip.BestCompression)
	if err != nil {
		_ = out.Close()
		return err
	}
	if _, err := io.Copy(zw, in); err != nil {
		_ = zw.Close()
		_ = out.Close()
		return errors.WrapError(err, errors.CategoryIO, "cannot compress file").WithContext("path", src).Build()
	}
	if err := zw.Close(); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
