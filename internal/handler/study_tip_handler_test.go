package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GuhGPG-IEEM/trabalhogestao/internal/models"
	"github.com/GuhGPG-IEEM/trabalhogestao/internal/service"
	"github.com/GuhGPG-IEEM/trabalhogestao/pkg/config"
)

type stubStudyTipRepo struct {
	tips []models.StudyTip
}

func (s *stubStudyTipRepo) ListByStudent(ctx context.Context, studentID string) ([]models.StudyTip, error) {
	return s.tips, nil
}

func (s *stubStudyTipRepo) Insert(ctx context.Context, tip *models.StudyTip) error {
	tip.ID = "tip-1"
	s.tips = append([]models.StudyTip{*tip}, s.tips...)
	return nil
}

func (s *stubStudyTipRepo) Delete(ctx context.Context, studentID, id string) error {
	return nil
}

func newStudyTipHandlerFixture(repo *stubStudyTipRepo) *StudyTipHandler {
	cfg := config.StudyTipsConfig{
		AssistantOrigin: "https://gemini.google.com",
		PromptTemplate:  "Me dê dicas de estudo sobre: %s",
	}
	svc := service.NewStudyTipService(repo, cfg, nil, nil)
	deps := stubDashboardDeps{}
	cacheSvc := service.NewCacheService(nil, nil, time.Minute, nil, false)
	dashboardSvc := service.NewDashboardService(deps, deps, deps, deps, cacheSvc, time.Minute, nil)
	return NewStudyTipHandler(svc, dashboardSvc)
}

func TestStudyTipHandlerAssistantLink(t *testing.T) {
	handler := newStudyTipHandlerFixture(&stubStudyTipRepo{})

	rec := httptest.NewRecorder()
	c := authedContext(t, rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/study-tips/assistant-link?topic="+url.QueryEscape("Revolução Francesa"), nil)

	handler.AssistantLink(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	link, _ := envelope.Data["url"].(string)
	assert.True(t, strings.HasPrefix(link, "https://gemini.google.com/?q="))
	assert.Equal(t, "Me dê dicas de estudo sobre: Revolução Francesa", envelope.Data["prompt"])
}

func TestStudyTipHandlerAssistantLinkRequiresTopic(t *testing.T) {
	handler := newStudyTipHandlerFixture(&stubStudyTipRepo{})

	rec := httptest.NewRecorder()
	c := authedContext(t, rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/study-tips/assistant-link", nil)

	handler.AssistantLink(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStudyTipHandlerSave(t *testing.T) {
	repo := &stubStudyTipRepo{}
	handler := newStudyTipHandlerFixture(repo)

	rec := httptest.NewRecorder()
	c := authedContext(t, rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/study-tips",
		strings.NewReader(`{"query":"Frações","tips":"Pratique diariamente."}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Save(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, repo.tips, 1)
	assert.Equal(t, "Frações", repo.tips[0].Query)
}

func TestStudyTipHandlerSaveRejectsEmptyTips(t *testing.T) {
	handler := newStudyTipHandlerFixture(&stubStudyTipRepo{})

	rec := httptest.NewRecorder()
	c := authedContext(t, rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/study-tips",
		strings.NewReader(`{"query":"Frações","tips":"  "}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Save(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
