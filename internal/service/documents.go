package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/auth"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/errdefs"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/models"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/store"
)

// Upload describes a file already placed somewhere by the caller. Only the
// reference is stored.
type Upload struct {
	AssignmentID int64
	Name         string
	Path         string
	Type         models.DocumentType
	ContentType  string
	Size         int64
	Description  string
}

// AttachDocument records an upload against an assignment, authored by the
// user in ctx.
func (s *Service) AttachDocument(ctx context.Context, up Upload) (*models.Document, error) {
	switch {
	case strings.TrimSpace(up.Name) == "":
		return nil, errdefs.Validation("name", "is required")
	case !up.Type.Valid():
		return nil, errdefs.Validation("type", "must be ATTACHMENT, REPORT, EVALUATION or MEMOIR")
	case up.Size < 0:
		return nil, errdefs.Validation("size", "must not be negative")
	}

	var doc *models.Document
	err := s.store.RunAtomic(ctx, func(ctx context.Context, tx store.Store) error {
		author, err := auth.CurrentUser(ctx, tx)
		if err != nil {
			return err
		}
		if author == nil {
			return errdefs.Validation("author", "no user is logged in")
		}
		if _, err := tx.Assignments().Load(ctx, up.AssignmentID); err != nil {
			return err
		}

		now := s.now()
		d := &models.Document{
			AssignmentID: up.AssignmentID,
			AuthorID:     &author.ID,
			Name:         filepath.Base(up.Name),
			StoredName:   storedName(now.UnixMilli(), up.Name),
			Type:         up.Type,
			ContentType:  up.ContentType,
			Size:         up.Size,
			Description:  up.Description,
			UploadedAt:   now,
		}
		d.Path = up.Path
		if d.Path == "" {
			d.Path = filepath.Join(s.docsDir, strconv.FormatInt(up.AssignmentID, 10), d.StoredName)
		}
		if err := tx.Documents().Save(ctx, d); err != nil {
			return err
		}
		doc = d
		return nil
	})
	if err != nil {
		return nil, s.logged("document attached", err, zap.Int64("assignment_id", up.AssignmentID))
	}
	s.logged("document attached", nil, zap.Int64("assignment_id", up.AssignmentID), zap.Int64("document_id", doc.ID))
	return doc, nil
}

// storedName is <unix millis>_<8 hex chars><original extension>.
func storedName(millis int64, original string) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%d_%s%s", millis, id, strings.ToLower(filepath.Ext(original)))
}

func (s *Service) Document(ctx context.Context, id int64) (*models.Document, error) {
	return s.store.Documents().Load(ctx, id)
}

func (s *Service) DeleteDocument(ctx context.Context, id int64) error {
	return s.logged("document deleted", s.store.Documents().Delete(ctx, id), zap.Int64("document_id", id))
}

// DocumentAuthor follows the weak author reference; a missing or dangling
// author is a NotFoundError.
func (s *Service) DocumentAuthor(ctx context.Context, documentID int64) (*models.User, error) {
	d, err := s.store.Documents().Load(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if d.AuthorID == nil {
		return nil, errdefs.NotFound("user", 0)
	}
	return s.store.Users().Load(ctx, *d.AuthorID)
}
