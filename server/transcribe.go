package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kbukum/scribe/errors"
	"github.com/kbukum/scribe/logger"
	"github.com/kbukum/scribe/pipeline"
	"github.com/kbukum/scribe/provider"
	"github.com/kbukum/scribe/storage"
	"github.com/kbukum/scribe/transcription"
	"github.com/kbukum/scribe/util"
)

// FormField is the multipart field carrying the media file.
const FormField = "file"

// Transcriber runs transcription jobs. *pipeline.Orchestrator implements it.
type Transcriber interface {
	Mode() transcription.Mode
	Label() string
	Transcribe(ctx context.Context, job pipeline.Job) (*pipeline.Result, error)
}

// CachedTranscript is a stored result keyed by mode and content hash.
type CachedTranscript struct {
	Text      string    `json:"text"`
	Mode      string    `json:"mode"`
	Segments  int       `json:"segments"`
	CreatedAt time.Time `json:"created_at"`
}

// Handlers serves the transcription API.
type Handlers struct {
	core     Transcriber
	intake   *storage.Intake
	cache    provider.ContextStore[CachedTranscript]
	cacheTTL time.Duration
	log      *logger.Logger
}

// HandlerOption configures Handlers.
type HandlerOption func(*Handlers)

// WithCache enables the transcript cache. Entries expire after ttl; 0 keeps
// them until evicted.
func WithCache(store provider.ContextStore[CachedTranscript], ttl time.Duration) HandlerOption {
	return func(h *Handlers) {
		h.cache = store
		h.cacheTTL = ttl
	}
}

// NewHandlers creates the API handlers.
func NewHandlers(core Transcriber, intake *storage.Intake, log *logger.Logger, opts ...HandlerOption) *Handlers {
	h := &Handlers{
		core:   core,
		intake: intake,
		log:    log.WithComponent("api"),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the API routes under /api.
func (h *Handlers) Register(r gin.IRouter) {
	api := r.Group("/api")
	api.POST("/transcribe", h.Transcribe)
	api.GET("/mode", h.Mode)
}

// Mode reports the active backend for display.
func (h *Handlers) Mode(c *gin.Context) {
	RespondOK(c, ModeResponse{Mode: h.core.Label()})
}

// Transcribe accepts a multipart upload, runs it through the pipeline and
// answers {"text": ...}. The stored upload is deleted before returning.
func (h *Handlers) Transcribe(c *gin.Context) {
	ctx := c.Request.Context()

	fh, err := c.FormFile(FormField)
	if err != nil {
		RespondWithError(c, h.log, h.formError(err))
		return
	}
	if err := h.intake.Check(fh.Filename, fh.Size); err != nil {
		RespondWithError(c, h.log, err)
		return
	}

	f, err := fh.Open()
	if err != nil {
		RespondWithError(c, h.log, errors.Internal(err))
		return
	}
	defer f.Close()

	id := uuid.NewString()
	up, err := h.intake.Accept(ctx, id, fh.Filename, fh.Size, f)
	if err != nil {
		RespondWithError(c, h.log, err)
		return
	}
	defer h.intake.Release(context.WithoutCancel(ctx), up)

	log := h.log.WithContext(logger.ContextWithJobID(ctx, id))
	log.Info("upload accepted", logger.Fields(
		"name", up.Name,
		logger.FieldBytes, up.Size,
	))

	key := string(h.core.Mode()) + ":" + up.SHA256
	if cached := h.lookup(ctx, log, key); cached != nil {
		log.Info("transcript cache hit", logger.Fields("key", key))
		RespondOK(c, TranscribeResponse{Text: cached.Text})
		return
	}

	res, err := h.core.Transcribe(ctx, pipeline.Job{
		ID:        id,
		InputPath: up.Path,
		Size:      up.Size,
	})
	if err != nil {
		RespondWithError(c, h.log, err)
		return
	}

	h.store(ctx, log, key, res)
	RespondOK(c, TranscribeResponse{Text: res.Text})
}

func (h *Handlers) formError(err error) error {
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		return errors.InvalidInput(FormField,
			fmt.Sprintf("file exceeds the %s request limit", util.FormatSize(tooLarge.Limit)))
	}
	if stderrors.Is(err, http.ErrMissingFile) {
		return errors.InvalidInput(FormField, "no file uploaded")
	}
	return errors.InvalidInput(FormField, "malformed multipart request").WithCause(err)
}

func (h *Handlers) lookup(ctx context.Context, log *logger.Logger, key string) *CachedTranscript {
	if h.cache == nil {
		return nil
	}
	cached, err := h.cache.Load(ctx, key)
	if err != nil {
		log.Warn("transcript cache lookup failed", logger.Fields(logger.FieldError, err.Error()))
		return nil
	}
	return cached
}

func (h *Handlers) store(ctx context.Context, log *logger.Logger, key string, res *pipeline.Result) {
	if h.cache == nil {
		return
	}
	entry := &CachedTranscript{
		Text:      res.Text,
		Mode:      string(res.Mode),
		Segments:  res.Segments,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.cache.Save(ctx, key, entry, h.cacheTTL); err != nil {
		log.Warn("transcript cache save failed", logger.Fields(logger.FieldError, err.Error()))
	}
}
