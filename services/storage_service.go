package services

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

var ErrObjectNotFound = errors.New("object_not_found")

// StorageService is the object store gateway: a local-disk blob store rooted
// at uploads/, with the two path prefixes the app uses. Uploaded images also
// get a JPEG thumbnail under images/thumbs.
type StorageService struct {
	Root string // e.g. "uploads"
}

const (
	PrefixImages    = "images"
	PrefixDocuments = "documents"
	thumbDir        = "thumbs"
	thumbWidth      = 320
)

func NewStorageService(root string) *StorageService {
	if root == "" {
		root = "uploads"
	}
	return &StorageService{Root: root}
}

// ObjectMeta mirrors what the admin dashboard shows per stored object.
type ObjectMeta struct {
	Path        string    `json:"path"`
	Name        string    `json:"name"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	UpdatedAt   time.Time `json:"updated_at"`
	URL         string    `json:"url"`
}

func validPrefix(prefix string) bool {
	return prefix == PrefixImages || prefix == PrefixDocuments
}

// SaveUpload stores a multipart upload under the given prefix and returns
// the relative object path ("images/xxx.jpg").
func (s *StorageService) SaveUpload(file *multipart.FileHeader, prefix string) (string, error) {
	if !validPrefix(prefix) {
		return "", fmt.Errorf("invalid storage prefix %q", prefix)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(file.Filename))
	name := uuid.NewString() + ext

	dir := filepath.Join(s.Root, prefix)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("mkdir uploads dir: %w", err)
	}

	fullpath := filepath.Join(dir, name)
	dst, err := os.Create(fullpath)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("close file: %w", err)
	}

	rel := filepath.ToSlash(filepath.Join(prefix, name))
	if prefix == PrefixImages {
		s.generateThumbnail(fullpath, name)
	}
	return rel, nil
}

// SaveBase64 stores a base64 payload (optionally a data: URL) under the
// given prefix.
func (s *StorageService) SaveBase64(b64, prefix, ext string) (string, error) {
	if !validPrefix(prefix) {
		return "", fmt.Errorf("invalid storage prefix %q", prefix)
	}
	if idx := strings.Index(b64, "base64,"); idx >= 0 {
		b64 = b64[idx+7:]
	}

	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", fmt.Errorf("decode base64: %w", err)
	}

	dir := filepath.Join(s.Root, prefix)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("mkdir uploads dir: %w", err)
	}

	if ext == "" {
		ext = ".jpg"
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	name := fmt.Sprintf("%d%s", time.Now().UnixNano(), ext)
	fullpath := filepath.Join(dir, name)

	if err := os.WriteFile(fullpath, data, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	rel := filepath.ToSlash(filepath.Join(prefix, name))
	if prefix == PrefixImages {
		s.generateThumbnail(fullpath, name)
	}
	return rel, nil
}

// generateThumbnail is best-effort; a non-image payload just skips it.
func (s *StorageService) generateThumbnail(fullpath, name string) {
	img, err := imaging.Open(fullpath)
	if err != nil {
		return
	}
	thumb := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos)

	dir := filepath.Join(s.Root, PrefixImages, thumbDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return
	}
	base := strings.TrimSuffix(name, filepath.Ext(name)) + ".jpg"
	_ = imaging.Save(thumb, filepath.Join(dir, base))
}

// DownloadURL maps an object path onto the statically served /uploads tree.
func (s *StorageService) DownloadURL(path string) string {
	return "/" + filepath.ToSlash(filepath.Join(s.Root, path))
}

func (s *StorageService) Delete(path string) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil {
		if os.IsNotExist(err) {
			return ErrObjectNotFound
		}
		return err
	}
	return nil
}

// List enumerates objects directly under a prefix.
func (s *StorageService) List(prefix string) ([]ObjectMeta, error) {
	if !validPrefix(prefix) {
		return nil, fmt.Errorf("invalid storage prefix %q", prefix)
	}

	dir := filepath.Join(s.Root, prefix)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []ObjectMeta{}, nil
		}
		return nil, err
	}

	out := make([]ObjectMeta, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		rel := filepath.ToSlash(filepath.Join(prefix, e.Name()))
		out = append(out, ObjectMeta{
			Path:        rel,
			Name:        e.Name(),
			Size:        info.Size(),
			ContentType: contentTypeByExt(e.Name()),
			UpdatedAt:   info.ModTime(),
			URL:         s.DownloadURL(rel),
		})
	}
	return out, nil
}

func (s *StorageService) Metadata(path string) (ObjectMeta, error) {
	full, err := s.resolve(path)
	if err != nil {
		return ObjectMeta{}, err
	}
	info, err := os.Stat(full)
	if err != nil {
		if os.IsNotExist(err) {
			return ObjectMeta{}, ErrObjectNotFound
		}
		return ObjectMeta{}, err
	}
	return ObjectMeta{
		Path:        path,
		Name:        info.Name(),
		Size:        info.Size(),
		ContentType: contentTypeByExt(info.Name()),
		UpdatedAt:   info.ModTime(),
		URL:         s.DownloadURL(path),
	}, nil
}

// resolve rejects paths that escape the storage root or use an unknown
// prefix.
func (s *StorageService) resolve(path string) (string, error) {
	clean := filepath.ToSlash(filepath.Clean("/" + path))[1:]
	parts := strings.SplitN(clean, "/", 2)
	if len(parts) < 2 || !validPrefix(parts[0]) {
		return "", fmt.Errorf("invalid object path %q", path)
	}
	return filepath.Join(s.Root, filepath.FromSlash(clean)), nil
}

func contentTypeByExt(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	case ".pdf":
		return "application/pdf"
	case ".txt":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}
