package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/careergraph-backend/internal/domain/resume"
	"github.com/yungbote/careergraph-backend/internal/http/response"
	modresume "github.com/yungbote/careergraph-backend/internal/modules/resume"
	"github.com/yungbote/careergraph-backend/internal/platform/logger"
)

type ResumeUsecases interface {
	Submit(ctx context.Context, raw []byte) (modresume.SubmitOutput, error)
	Parse(ctx context.Context, in modresume.ParseInput) (modresume.ParseOutput, error)
	Profile(ctx context.Context, email string) (*resume.Profile, error)
}

type ResumeHandler struct {
	log            *logger.Logger
	resumes        ResumeUsecases
	uploadMaxBytes int64
}

func NewResumeHandler(log *logger.Logger, resumes ResumeUsecases, uploadMaxBytes int64) *ResumeHandler {
	if uploadMaxBytes <= 0 {
		uploadMaxBytes = 10 << 20
	}
	return &ResumeHandler{
		log:            log.With("handler", "ResumeHandler"),
		resumes:        resumes,
		uploadMaxBytes: uploadMaxBytes,
	}
}

// POST /api/upload
func (h *ResumeHandler) Upload(c *gin.Context) {
	if c.Request.ContentLength > h.uploadMaxBytes {
		response.RespondError(c, http.StatusRequestEntityTooLarge, "file_too_large", errors.New("upload exceeds size limit"))
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.uploadMaxBytes)
	fh, err := c.FormFile("resume")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			response.RespondError(c, http.StatusRequestEntityTooLarge, "file_too_large", err)
		case errors.Is(err, http.ErrMissingFile):
			response.RespondError(c, http.StatusBadRequest, "missing_file", errors.New("no resume uploaded"))
		default:
			response.RespondError(c, http.StatusBadRequest, "invalid_multipart_form", err)
		}
		return
	}
	if strings.TrimSpace(fh.Filename) == "" {
		response.RespondError(c, http.StatusBadRequest, "missing_file", errors.New("no selected file"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_file", err)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_file", err)
		return
	}

	out, err := h.resumes.Parse(c.Request.Context(), modresume.ParseInput{
		Filename: fh.Filename,
		Mime:     fh.Header.Get("Content-Type"),
		Data:     data,
	})
	if err != nil {
		response.RespondAPIError(c, err, "parse_failed")
		return
	}
	if out.Cached {
		c.Header("X-Parse-Cache", "hit")
	} else {
		c.Header("X-Parse-Cache", "miss")
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", out.Document)
}

// POST /api/submit_resume
func (h *ResumeHandler) SubmitResume(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	out, err := h.resumes.Submit(c.Request.Context(), body)
	if err != nil {
		response.RespondAPIError(c, err, "submit_failed")
		return
	}
	response.RespondOK(c, gin.H{
		"message":     "Resume successfully inserted",
		"career_path": out.CareerPath,
		"report":      out.Report,
	})
}

// GET /api/profile?email=
func (h *ResumeHandler) GetProfile(c *gin.Context) {
	p, err := h.resumes.Profile(c.Request.Context(), c.Query("email"))
	if err != nil {
		response.RespondAPIError(c, err, "load_profile_failed")
		return
	}
	response.RespondOK(c, p)
}
