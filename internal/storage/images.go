// Package storage persists uploaded recipe images under the media root.
package storage

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrNotImage = errors.New("uploaded file is not an image")

const recipeImageDir = "recipes"

var mediaRoot = "./media"

func Init(root string) error {
	mediaRoot = root
	return os.MkdirAll(filepath.Join(root, recipeImageDir), 0o755)
}

// SaveImage sniffs the upload's content type and writes it to a
// uuid-named file, returning the path relative to the media root.
// Non-image content is rejected before anything touches disk.
func SaveImage(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()

	if err != nil {
		return "", err
	}
	defer src.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(src, head)

	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", err
	}
	head = head[:n]

	contentType := http.DetectContentType(head)

	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrNotImage
	}

	name := uuid.NewString() + extensionFor(contentType, fh.Filename)
	rel := filepath.Join(recipeImageDir, name)

	dst, err := os.Create(filepath.Join(mediaRoot, rel))

	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := dst.Write(head); err != nil {
		return "", err
	}

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return filepath.ToSlash(rel), nil
}

// RemoveImage deletes a previously stored image. Best effort: a missing
// file is not an error worth surfacing to callers replacing an image.
func RemoveImage(rel string) {
	if rel == "" {
		return
	}

	os.Remove(filepath.Join(mediaRoot, filepath.FromSlash(rel)))
}

func extensionFor(contentType, filename string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/bmp":
		return ".bmp"
	}

	if ext := filepath.Ext(filename); ext != "" {
		return ext
	}

	return ".img"
}
