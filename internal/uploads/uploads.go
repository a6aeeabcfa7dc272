// Package uploads validates, stores and serves user-supplied files.
package uploads

import (
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"path"
	"strings"

	"github.com/aarifhsn/nexthire-backend/internal/pdf"
	"github.com/aarifhsn/nexthire-backend/pkg/fsx"
	"github.com/aarifhsn/nexthire-backend/pkg/logx"
	"github.com/aarifhsn/nexthire-backend/pkg/taskq"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// PublicPrefix is the URL prefix every stored file is served under
const PublicPrefix = "/uploads/"

// TaskDeleteAsset removes a replaced upload in the background
const TaskDeleteAsset = "asset.delete"

// DeleteAssetPayload is the payload of a TaskDeleteAsset task
type DeleteAssetPayload struct {
	Path string `json:"path"`
}

// Kind describes one category of upload
type Kind struct {
	Dir      string
	MaxBytes int64
	MaxLabel string
	check    func(data []byte) (ext string, err error)
}

var (
	Resume         = Kind{Dir: "resumes", MaxBytes: 5 << 20, MaxLabel: "5MB", check: checkPDF}
	ProfilePicture = Kind{Dir: "profiles", MaxBytes: 2 << 20, MaxLabel: "2MB", check: checkImage}
	Logo           = Kind{Dir: "logos", MaxBytes: 2 << 20, MaxLabel: "2MB", check: checkImage}
)

// MaxBodySize bounds request bodies so the largest upload plus its multipart
// framing still reaches ReadForm, which reports the per-kind limit.
const MaxBodySize = 6 << 20

func checkPDF(data []byte) (string, error) {
	if _, err := pdf.Inspect(data); err != nil {
		return "", ErrInvalidType().WithMessage("Only PDF files are allowed").WithCause(err)
	}
	return ".pdf", nil
}

func checkImage(data []byte) (string, error) {
	format, err := pdf.DetectImageFormat(data)
	if err != nil {
		return "", ErrInvalidType().WithMessage("Only image files are allowed").WithCause(err)
	}
	switch format {
	case "jpeg":
		return ".jpg", nil
	case "png":
		return ".png", nil
	case "gif":
		return ".gif", nil
	default:
		return "", ErrInvalidType().WithMessage("Only image files are allowed").WithDetail("format", format)
	}
}

// File is a validated upload ready to be stored
type File struct {
	OriginalName string
	Size         int64
	Data         []byte
}

// ReadForm reads the multipart file under field, enforcing the kind's size limit
func ReadForm(c *fiber.Ctx, field string, kind Kind) (*File, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, ErrMissingFile()
	}
	return ReadHeader(header, kind)
}

// ReadHeader reads an already parsed multipart file
func ReadHeader(header *multipart.FileHeader, kind Kind) (*File, error) {
	if header.Size > kind.MaxBytes {
		return nil, ErrTooLarge().
			WithDetail("max_size", kind.MaxLabel).
			WithDetail("size", header.Size)
	}

	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, kind.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read uploaded file: %w", err)
	}
	if int64(len(data)) > kind.MaxBytes {
		return nil, ErrTooLarge().WithDetail("max_size", kind.MaxLabel)
	}

	return &File{
		OriginalName: header.Filename,
		Size:         int64(len(data)),
		Data:         data,
	}, nil
}

// Store writes uploads to a FileSystem and schedules removal of replaced ones
type Store struct {
	fs    fsx.FileSystem
	tasks taskq.Enqueuer
}

// NewStore creates a store. tasks may be nil, in which case removals run inline.
func NewStore(fs fsx.FileSystem, tasks taskq.Enqueuer) *Store {
	return &Store{
		fs:    fs,
		tasks: tasks,
	}
}

// Save validates the content of file for kind and stores it under a random
// name. It returns the public URL.
func (s *Store) Save(ctx context.Context, kind Kind, file *File) (string, error) {
	if int64(len(file.Data)) > kind.MaxBytes {
		return "", ErrTooLarge().WithDetail("max_size", kind.MaxLabel)
	}

	ext, err := kind.check(file.Data)
	if err != nil {
		return "", err
	}

	filePath := s.fs.Join(kind.Dir, uuid.NewString()+ext)
	if err := s.fs.WriteFile(ctx, filePath, file.Data); err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}
	return PublicPrefix + filePath, nil
}

// Discard deletes a file that was stored but never referenced
func (s *Store) Discard(ctx context.Context, url string) {
	p, ok := storagePath(url)
	if !ok {
		return
	}
	if err := s.fs.DeleteFile(ctx, p); err != nil {
		logx.Warnf("uploads: discard %s: %v", p, err)
	}
}

// Replace schedules the removal of a previous upload. Failures are logged;
// a stale file never fails the request that replaced it.
func (s *Store) Replace(ctx context.Context, oldURL string) {
	p, ok := storagePath(oldURL)
	if !ok {
		return
	}

	if s.tasks == nil {
		if err := s.fs.DeleteFile(ctx, p); err != nil {
			logx.Warnf("uploads: delete %s: %v", p, err)
		}
		return
	}

	task, err := taskq.NewTask(TaskDeleteAsset, DeleteAssetPayload{Path: p})
	if err == nil {
		err = s.tasks.Enqueue(ctx, task)
	}
	if err != nil {
		logx.Warnf("uploads: schedule delete of %s: %v", p, err)
	}
}

// HandleDeleteTask is the taskq handler for TaskDeleteAsset
func (s *Store) HandleDeleteTask(ctx context.Context, task taskq.Task) error {
	var payload DeleteAssetPayload
	if err := task.Decode(&payload); err != nil {
		return err
	}
	return s.fs.DeleteFile(ctx, payload.Path)
}

// Serve streams a stored file
// GET /uploads/*
func (s *Store) Serve(c *fiber.Ctx) error {
	p := path.Clean("/" + c.Params("*"))[1:]
	if p == "" {
		return ErrNotFound()
	}

	data, err := s.fs.ReadFile(c.UserContext(), p)
	if err != nil {
		exists, existsErr := s.fs.Exists(c.UserContext(), p)
		if existsErr == nil && !exists {
			return ErrNotFound()
		}
		return fmt.Errorf("read upload %s: %w", p, err)
	}

	if ct := mime.TypeByExtension(path.Ext(p)); ct != "" {
		c.Set(fiber.HeaderContentType, ct)
	}
	c.Set(fiber.HeaderCacheControl, "public, max-age=86400")
	return c.Send(data)
}

// storagePath maps a public URL back to its storage path
func storagePath(url string) (string, bool) {
	if !strings.HasPrefix(url, PublicPrefix) {
		return "", false
	}
	p := path.Clean("/" + strings.TrimPrefix(url, PublicPrefix))[1:]
	return p, p != ""
}
