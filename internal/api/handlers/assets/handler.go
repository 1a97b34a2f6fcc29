package assets

import (
	"errors"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/whalechillz/mas-win-sub025/internal/api/handlers"
	"github.com/whalechillz/mas-win-sub025/internal/integrations/objectstorage"
)

const (
	msgInvalidRequestBody = "요청 본문이 올바르지 않습니다"
	msgInvalidPath        = "파일 경로가 올바르지 않습니다"
	msgMissingFile        = "업로드할 파일이 없습니다"
	msgUnsupportedType    = "이미지 파일만 업로드할 수 있습니다"
	msgFileTooLarge       = "파일이 너무 큽니다"
	msgNotFound           = "파일을 찾을 수 없습니다"
	msgStorage            = "스토리지 요청에 실패했습니다"

	defaultLimit = 100
	maxLimit     = 1000
	maxDelete    = 100
)

// Handler serves the admin image library
type Handler struct {
	storage Storage
	logger  Logger
}

func NewHandler(storage Storage, logger Logger) *Handler {
	return &Handler{
		storage: storage,
		logger:  logger,
	}
}

// List GET /api/v1/admin/assets?prefix=&limit=&offset=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	prefix, ok := cleanPath(r.URL.Query().Get("prefix"), true)
	if !ok {
		handlers.RespondBadRequest(w, msgInvalidPath)
		return
	}

	limit, err := handlers.QueryInt(r, "limit")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPath)
		return
	}
	offset, err := handlers.QueryInt(r, "offset")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPath)
		return
	}
	l, o := defaultLimit, 0
	if limit != nil && *limit > 0 {
		l = min(*limit, maxLimit)
	}
	if offset != nil && *offset > 0 {
		o = *offset
	}

	objects, err := h.storage.List(r.Context(), prefix, l, o)
	if err != nil {
		h.respondStorageError(w, "GET /admin/assets", err)
		return
	}

	out := make([]AssetResponse, 0, len(objects))
	for _, obj := range objects {
		out = append(out, fromObject(prefix, obj, h.storage.PublicURL))
	}
	handlers.RespondJSON(w, http.StatusOK, out)
}

// Upload POST /api/v1/admin/assets (multipart: file, folder)
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, objectstorage.MaxObjectSize+1<<20)
	if err := r.ParseMultipartForm(objectstorage.MaxObjectSize); err != nil {
		h.logger.Warn("POST /admin/assets - Invalid multipart body: %v", err)
		handlers.RespondBadRequest(w, msgFileTooLarge)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handlers.RespondBadRequest(w, msgMissingFile)
		return
	}
	defer file.Close()

	if header.Size > objectstorage.MaxObjectSize {
		handlers.RespondBadRequest(w, msgFileTooLarge)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		handlers.RespondBadRequest(w, msgUnsupportedType)
		return
	}

	folder, ok := cleanPath(r.FormValue("folder"), true)
	if !ok {
		handlers.RespondBadRequest(w, msgInvalidPath)
		return
	}

	objectPath := path.Join(folder, uuid.NewString()+strings.ToLower(path.Ext(header.Filename)))
	if err := h.storage.Upload(r.Context(), objectPath, contentType, file); err != nil {
		h.respondStorageError(w, "POST /admin/assets", err)
		return
	}

	h.logger.Info("POST /admin/assets - Uploaded %s (%d bytes)", objectPath, header.Size)
	handlers.RespondJSON(w, http.StatusCreated, AssetResponse{
		Path:        objectPath,
		Name:        path.Base(objectPath),
		Size:        header.Size,
		ContentType: contentType,
		PublicURL:   h.storage.PublicURL(objectPath),
	})
}

// Move POST /api/v1/admin/assets/move
func (h *Handler) Move(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	from, okFrom := cleanPath(req.From, false)
	to, okTo := cleanPath(req.To, false)
	if !okFrom || !okTo || from == to {
		handlers.RespondBadRequest(w, msgInvalidPath)
		return
	}

	if err := h.storage.Move(r.Context(), from, to); err != nil {
		h.respondStorageError(w, "POST /admin/assets/move", err)
		return
	}

	h.logger.Info("POST /admin/assets/move - %s -> %s", from, to)
	handlers.RespondJSON(w, http.StatusOK, AssetResponse{Path: to, Name: path.Base(to), PublicURL: h.storage.PublicURL(to)})
}

// Delete DELETE /api/v1/admin/assets
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	var req DeleteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if len(req.Paths) == 0 || len(req.Paths) > maxDelete {
		handlers.RespondBadRequest(w, msgInvalidPath)
		return
	}

	paths := make([]string, 0, len(req.Paths))
	for _, p := range req.Paths {
		clean, ok := cleanPath(p, false)
		if !ok {
			handlers.RespondBadRequest(w, msgInvalidPath)
			return
		}
		paths = append(paths, clean)
	}

	if err := h.storage.Remove(r.Context(), paths); err != nil {
		h.respondStorageError(w, "DELETE /admin/assets", err)
		return
	}

	h.logger.Info("DELETE /admin/assets - Removed %d objects", len(paths))
	handlers.RespondJSON(w, http.StatusOK, map[string][]string{"deleted": paths})
}

func (h *Handler) respondStorageError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, objectstorage.ErrNotFound):
		handlers.RespondNotFound(w, msgNotFound)
	case errors.Is(err, objectstorage.ErrInvalidPath):
		handlers.RespondBadRequest(w, msgInvalidPath)
	case errors.Is(err, objectstorage.ErrTooLarge):
		handlers.RespondBadRequest(w, msgFileTooLarge)
	default:
		h.logger.Error("%s - Storage error: %v", route, err)
		handlers.RespondUpstreamError(w, msgStorage, err)
	}
}

// cleanPath normalizes a bucket-relative path and rejects traversal.
// An empty result is only valid when allowEmpty (the bucket root).
func cleanPath(p string, allowEmpty bool) (string, bool) {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return "", allowEmpty
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return "", false
		}
	}
	return p, true
}
