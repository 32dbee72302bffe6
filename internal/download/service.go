package download

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/singleflight"

	"github.com/ytget/discord-media-downloader/internal/fetch"
	"github.com/ytget/discord-media-downloader/internal/logger"
	"github.com/ytget/discord-media-downloader/internal/model"
	"github.com/ytget/discord-media-downloader/internal/persist"
)

// TaskIDPrefix prefixes generated request IDs
const TaskIDPrefix = "dl-"

// Service handles download operations
type Service struct {
	fetcher   fetch.Fetcher
	saver     persist.Saver
	endpoints Endpoints

	mu          sync.RWMutex
	downloadDir string
	onUpdate    func(*model.DownloadRequest) // callback for UI updates
	onResult    func(*model.Result)

	inflight singleflight.Group
	workers  sync.WaitGroup
}

var _ Downloader = (*Service)(nil)

// NewService creates a new download service
func NewService(fetcher fetch.Fetcher, saver persist.Saver, endpoints Endpoints, downloadDir string) *Service {
	return &Service{
		fetcher:     fetcher,
		saver:       saver,
		endpoints:   endpoints,
		downloadDir: downloadDir,
	}
}

// SetUpdateCallback sets the callback function for request status updates
func (s *Service) SetUpdateCallback(callback func(*model.DownloadRequest)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onUpdate = callback
}

// SetResultCallback sets the callback function for finished requests
func (s *Service) SetResultCallback(callback func(*model.Result)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onResult = callback
}

// SetDownloadDirectory sets the download directory
func (s *Service) SetDownloadDirectory(dir string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.downloadDir = dir
}

// GetDownloadDirectory returns the current download directory
func (s *Service) GetDownloadDirectory() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.downloadDir
}

// Submit validates the ID before any network access and starts the download
// on a worker goroutine. The result is delivered to the result callback.
func (s *Service) Submit(kind model.MediaKind, mediaID string) (*model.DownloadRequest, error) {
	req, err := s.newRequest(kind, mediaID)
	if err != nil {
		return nil, err
	}
	s.notifyUpdate(req)
	snapshot := *req

	s.workers.Add(1)
	go func() {
		defer s.workers.Done()
		res := s.run(context.Background(), req)
		s.notifyResult(res)
	}()

	return &snapshot, nil
}

// Download runs a request synchronously and returns its result. Invalid IDs
// produce a failed result without any network access.
func (s *Service) Download(ctx context.Context, kind model.MediaKind, mediaID string) *model.Result {
	req, err := s.newRequest(kind, mediaID)
	if err != nil {
		return &model.Result{
			Request: &model.DownloadRequest{Kind: kind, MediaID: mediaID, Status: model.TaskStatusError, LastError: err.Error()},
			Message: "Error: " + err.Error(),
			Err:     err,
		}
	}
	return s.run(ctx, req)
}

// Wait blocks until all submitted requests have finished
func (s *Service) Wait() {
	s.workers.Wait()
}

func (s *Service) newRequest(kind model.MediaKind, mediaID string) (*model.DownloadRequest, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown media kind: %q", kind)
	}
	id, err := model.NormalizeMediaID(mediaID)
	if err != nil {
		return nil, err
	}
	return &model.DownloadRequest{
		ID:          generateTaskID(),
		MediaID:     id,
		Kind:        kind,
		Status:      model.TaskStatusPending,
		RequestedAt: time.Now(),
	}, nil
}

// run executes req. Concurrent requests for the same media share one CDN round trip.
func (s *Service) run(ctx context.Context, req *model.DownloadRequest) *model.Result {
	s.setStatus(req, model.TaskStatusFetching, "")
	slog.Info("Download started", "request", req.ID, "kind", req.Kind, "media_id", req.MediaID)

	key := req.Kind.String() + ":" + req.MediaID
	v, _, shared := s.inflight.Do(key, func() (interface{}, error) {
		return s.execute(ctx, req.Kind, req.MediaID), nil
	})
	if shared {
		slog.Debug("Download coalesced", "request", req.ID, "key", key)
	}

	res := *(v.(*model.Result))
	res.Request = req

	if res.Success {
		s.setStatus(req, model.TaskStatusCompleted, "")
		slog.Info("Download completed", "request", req.ID, "url", res.ResolvedURL, "path", res.LocalPath)
	} else {
		s.setStatus(req, model.TaskStatusError, res.Err.Error())
		slog.Warn("Download failed", "request", req.ID, "kind", req.Kind, "media_id", req.MediaID, logger.Err(res.Err))
	}
	return &res
}

func (s *Service) execute(ctx context.Context, kind model.MediaKind, mediaID string) *model.Result {
	if kind == model.KindSticker {
		return s.downloadSticker(ctx, mediaID)
	}
	return s.downloadEmoji(ctx, mediaID)
}

// downloadSticker fetches the sticker PNG and stores it normalized
func (s *Service) downloadSticker(ctx context.Context, id string) *model.Result {
	url := s.endpoints.StickerURL(id)
	path := filepath.Join(s.GetDownloadDirectory(), model.FileName(model.KindSticker, id, ExtPNG))

	data, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return failure(err)
	}
	if err := s.save(data, path, true); err != nil {
		return failure(err)
	}
	return success(url, path, "Sticker saved: "+path)
}

// downloadEmoji tries the animated GIF first and falls back to the static PNG
// when the CDN answers the GIF request with a non-200 status.
func (s *Service) downloadEmoji(ctx context.Context, id string) *model.Result {
	dir := s.GetDownloadDirectory()

	gifURL := s.endpoints.EmojiURL(id, ExtGIF)
	data, gifErr := s.fetcher.Fetch(ctx, gifURL)
	if gifErr == nil {
		path := filepath.Join(dir, model.FileName(model.KindEmoji, id, ExtGIF))
		if err := s.save(data, path, false); err != nil {
			return failure(err)
		}
		return success(gifURL, path, "Emoji saved: "+path)
	}
	if !fetch.IsStatusError(gifErr) {
		return failure(gifErr)
	}
	slog.Debug("Animated emoji unavailable, trying static", "media_id", id, logger.Err(gifErr))

	pngURL := s.endpoints.EmojiURL(id, ExtPNG)
	data, pngErr := s.fetcher.Fetch(ctx, pngURL)
	if pngErr != nil {
		return failure(joinAttempts(
			fmt.Errorf("gif: %w", gifErr),
			fmt.Errorf("png: %w", pngErr),
		))
	}

	path := filepath.Join(dir, model.FileName(model.KindEmoji, id, ExtPNG))
	if err := s.save(data, path, true); err != nil {
		return failure(err)
	}
	return success(pngURL, path, "Emoji saved: "+path)
}

func (s *Service) save(data []byte, path string, normalize bool) error {
	if err := s.saver.Save(data, path, normalize); err != nil {
		slog.Error("Error saving image", "path", path, "normalize", normalize, logger.Err(err))
		return fmt.Errorf("saving %s: %w", filepath.Base(path), err)
	}
	return nil
}

// setStatus updates the request status and notifies listeners
func (s *Service) setStatus(req *model.DownloadRequest, status model.TaskStatus, lastError string) {
	req.Status = status
	req.LastError = lastError
	if status.IsFinished() {
		req.FinishedAt = time.Now()
	}
	s.notifyUpdate(req)
}

// notifyUpdate calls the update callback with a snapshot of req
func (s *Service) notifyUpdate(req *model.DownloadRequest) {
	s.mu.RLock()
	cb := s.onUpdate
	s.mu.RUnlock()
	if cb != nil {
		snapshot := *req
		cb(&snapshot)
	}
}

// notifyResult calls the result callback if set
func (s *Service) notifyResult(res *model.Result) {
	s.mu.RLock()
	cb := s.onResult
	s.mu.RUnlock()
	if cb != nil {
		snapshot := *res.Request
		out := *res
		out.Request = &snapshot
		cb(&out)
	}
}

func success(url, path, message string) *model.Result {
	return &model.Result{
		Success:     true,
		ResolvedURL: url,
		LocalPath:   path,
		Message:     message,
	}
}

func failure(err error) *model.Result {
	return &model.Result{
		Message: "Error: " + err.Error(),
		Err:     err,
	}
}

// joinAttempts aggregates per-URL failures into a single one-line error
func joinAttempts(errs ...error) error {
	merr := multierror.Append(nil, errs...)
	merr.ErrorFormat = func(es []error) string {
		parts := make([]string, len(es))
		for i, e := range es {
			parts[i] = e.Error()
		}
		return strings.Join(parts, "; ")
	}
	return merr
}

// generateTaskID generates a unique request ID using UUID v7 for time ordering
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(TaskIDPrefix+"%d", time.Now().UnixNano())
	}
	return TaskIDPrefix + id.String()
}
