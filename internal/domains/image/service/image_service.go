package service

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/rs/zerolog/log"

	authorservice "gallery-backend/internal/domains/author/service"
	"gallery-backend/internal/domains/image/model"
	"gallery-backend/internal/domains/image/repository"
	"gallery-backend/internal/infrastructure/queue"
	"gallery-backend/internal/infrastructure/storage"
)

// imageService implements ServiceInterface. It owns the upload flow:
// resolve the author, sanitize and store the files, persist the
// record. Replaced blobs are never deleted inline; they are handed to
// the cleanup queue (which may be absent).
type imageService struct {
	repo    repository.RepositoryInterface
	authors authorservice.ServiceInterface
	store   storage.Store
	queue   *queue.Client // nil when Redis is not configured
}

// NewImageService creates a new image service instance.
func NewImageService(
	repo repository.RepositoryInterface,
	authors authorservice.ServiceInterface,
	store storage.Store,
	queueClient *queue.Client,
) ServiceInterface {
	return &imageService{
		repo:    repo,
		authors: authors,
		store:   store,
		queue:   queueClient,
	}
}

func (s *imageService) Create(ctx context.Context, form *model.ImageForm) (*model.ImageData, error) {
	if err := form.ValidateCreate(); err != nil {
		return nil, err
	}

	author, err := s.authors.Resolve(ctx, form.Author)
	if err != nil {
		return nil, err
	}

	mainName, err := s.saveUpload(ctx, form.MainImage)
	if err != nil {
		return nil, err
	}

	subs, err := s.saveSubImages(ctx, form)
	if err != nil {
		return nil, err
	}

	img := &model.ImageData{
		AuthorID:               author.ID,
		MainImagePath:          mainName,
		MainImageHasBackground: form.MainHasBackground,
		SubImages:              subs,
		Tags:                   model.NormalizeTags(form.Tags),
		Comments:               form.Comments,
	}

	created, err := s.repo.Create(ctx, img)
	if err != nil {
		return nil, err
	}
	created.Author = author

	log.Info().
		Int64("image_id", created.ID).
		Int64("author_id", author.ID).
		Int("sub_images", len(subs)).
		Msg("Image created")

	return created, nil
}

func (s *imageService) GetByID(ctx context.Context, id int64) (*model.ImageData, error) {
	if id <= 0 {
		return nil, model.ErrImageNotFound
	}
	return s.repo.GetByID(ctx, id, true)
}

func (s *imageService) GetAll(ctx context.Context) ([]model.ImageData, error) {
	return s.repo.GetAll(ctx, true)
}

// Update applies a partial merge: only the fields the form carries
// change. Tags are replaced whole; the sub-image list is replaced
// whole when new files arrive; a new main image swaps in place.
func (s *imageService) Update(ctx context.Context, id int64, form *model.ImageForm) (*model.ImageData, error) {
	current, err := s.repo.GetByID(ctx, id, true)
	if err != nil {
		return nil, err
	}

	var orphans []string

	if !form.Author.Empty() {
		author, err := s.authors.Resolve(ctx, form.Author)
		if err != nil {
			return nil, err
		}
		current.AuthorID = author.ID
		current.Author = author
	}

	if form.MainImage != nil {
		mainName, err := s.saveUpload(ctx, form.MainImage)
		if err != nil {
			return nil, err
		}
		if current.MainImagePath != mainName {
			orphans = append(orphans, current.MainImagePath)
		}
		current.MainImagePath = mainName
	}

	// The flag merges on its own; it does not require a re-upload.
	if form.MainHasBackgroundPresent {
		current.MainImageHasBackground = form.MainHasBackground
	}

	if len(form.SubImages) > 0 {
		subs, err := s.saveSubImages(ctx, form)
		if err != nil {
			return nil, err
		}
		orphans = append(orphans, diffFilenames(current.SubImageFilenames(), subs)...)
		current.SubImages = subs
	}

	if form.TagsPresent {
		current.Tags = model.NormalizeTags(form.Tags)
	}

	if form.CommentsPresent {
		current.Comments = form.Comments
	}

	if err := s.repo.Update(ctx, current); err != nil {
		return nil, err
	}

	s.enqueueCleanup(ctx, orphans)

	log.Info().
		Int64("image_id", current.ID).
		Msg("Image updated")

	return current, nil
}

func (s *imageService) Delete(ctx context.Context, id int64) error {
	img, err := s.repo.GetByID(ctx, id, false)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	orphans := append([]string{img.MainImagePath}, img.SubImageFilenames()...)
	s.enqueueCleanup(ctx, orphans)

	log.Info().
		Int64("image_id", id).
		Msg("Image deleted")

	return nil
}

func (s *imageService) PublicPath(name string) string {
	return s.store.PublicPath(name)
}

// ========================================
// UPLOAD HELPERS
// ========================================

// saveUpload sanitizes the client filename and streams the file into
// the asset store. Same name overwrites the existing blob.
func (s *imageService) saveUpload(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	name, err := storage.SanitizeFilename(fh.Filename)
	if err != nil {
		return "", err
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("%w: failed to open upload %s: %v", model.ErrStorageFailure, fh.Filename, err)
	}
	defer f.Close()

	stored, err := s.store.Save(ctx, name, f)
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrStorageFailure, err)
	}

	return stored, nil
}

// saveSubImages stores the sub-image uploads in order and binds each
// background flag by upload index.
func (s *imageService) saveSubImages(ctx context.Context, form *model.ImageForm) ([]model.SubImage, error) {
	subs := make([]model.SubImage, 0, len(form.SubImages))
	for i, fh := range form.SubImages {
		name, err := s.saveUpload(ctx, fh)
		if err != nil {
			return nil, err
		}

		hasBackground := false
		if i < len(form.SubHasBackground) {
			hasBackground = form.SubHasBackground[i]
		}

		subs = append(subs, model.SubImage{
			Filename:      name,
			HasBackground: hasBackground,
			Position:      i,
		})
	}
	return subs, nil
}

// diffFilenames returns the old names not reused by the new list.
func diffFilenames(old []string, subs []model.SubImage) []string {
	kept := make(map[string]struct{}, len(subs))
	for _, s := range subs {
		kept[s.Filename] = struct{}{}
	}

	var gone []string
	for _, name := range old {
		if _, ok := kept[name]; !ok {
			gone = append(gone, name)
		}
	}
	return gone
}

func (s *imageService) enqueueCleanup(ctx context.Context, filenames []string) {
	if len(filenames) == 0 {
		return
	}
	if err := s.queue.EnqueueAssetCleanup(ctx, filenames); err != nil {
		// Cleanup is best effort; the record change already committed.
		log.Warn().Err(err).Msg("Failed to enqueue asset cleanup")
	}
}
