package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/GuhGPG-IEEM/trabalhogestao/internal/models"
	"github.com/GuhGPG-IEEM/trabalhogestao/pkg/config"
	appErrors "github.com/GuhGPG-IEEM/trabalhogestao/pkg/errors"
)

type studyTipRepo interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.StudyTip, error)
	Insert(ctx context.Context, tip *models.StudyTip) error
	Delete(ctx context.Context, studentID, id string) error
}

// SaveStudyTipRequest carries a study-tip bookmark. Both the topic the
// student asked about and the pasted tip text are required.
type SaveStudyTipRequest struct {
	Query string `json:"query" validate:"required"`
	Tips  string `json:"tips" validate:"required"`
}

// AssistantLink is the external AI hand-off target. The server only
// builds the URL; no response from the assistant is ever consumed.
type AssistantLink struct {
	URL    string `json:"url"`
	Prompt string `json:"prompt"`
}

// StudyTipService manages study-tip bookmarks and the assistant hand-off.
type StudyTipService struct {
	tips      studyTipRepo
	cfg       config.StudyTipsConfig
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudyTipService constructs a StudyTipService.
func NewStudyTipService(tips studyTipRepo, cfg config.StudyTipsConfig, validate *validator.Validate, logger *zap.Logger) *StudyTipService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudyTipService{tips: tips, cfg: cfg, validator: validate, logger: logger}
}

// List returns saved tips newest first.
func (s *StudyTipService) List(ctx context.Context, studentID string) ([]models.StudyTip, error) {
	tips, err := s.tips.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list study tips")
	}
	if tips == nil {
		tips = []models.StudyTip{}
	}
	return tips, nil
}

// BuildAssistantLink interpolates the topic into the prompt template and
// returns the assistant URL to open in a new browsing context.
func (s *StudyTipService) BuildAssistantLink(topic string) (*AssistantLink, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "topic is required")
	}

	prompt := fmt.Sprintf(s.cfg.PromptTemplate, topic)
	link := fmt.Sprintf("%s/?q=%s", strings.TrimRight(s.cfg.AssistantOrigin, "/"), url.QueryEscape(prompt))

	return &AssistantLink{URL: link, Prompt: prompt}, nil
}

// Save stores a bookmark. The row is immutable once created; the caller
// prepends it locally, which list ordering (newest first) preserves.
func (s *StudyTipService) Save(ctx context.Context, studentID string, req SaveStudyTipRequest) (*models.StudyTip, error) {
	req.Query = strings.TrimSpace(req.Query)
	req.Tips = strings.TrimSpace(req.Tips)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "query and tips are both required")
	}

	tip := &models.StudyTip{
		StudentID: studentID,
		Query:     req.Query,
		Tips:      req.Tips,
	}
	if err := s.tips.Insert(ctx, tip); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to insert study tip")
	}
	return tip, nil
}

// Delete removes a saved tip.
func (s *StudyTipService) Delete(ctx context.Context, studentID, tipID string) error {
	if err := s.tips.Delete(ctx, studentID, tipID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "study tip not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete study tip")
	}
	return nil
}
