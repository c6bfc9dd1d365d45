package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adhingra/safarnama/backend/internal/ai"
	"github.com/adhingra/safarnama/backend/internal/domain"
)

const chatBody = `{"messages":[{"role":"user","content":"Where should we eat?"}]}`

func TestAssistantChat_StreamsSSE(t *testing.T) {
	d := newDeps()
	d.assistant.chat = func(_ context.Context, _, _ uuid.UUID, history []ai.Message, emit func(string) error) error {
		require.Len(t, history, 1)
		for _, tok := range []string{"Try ", "beach ", "shacks"} {
			if err := emit(tok); err != nil {
				return err
			}
		}
		return nil
	}
	router := newTestRouter(d)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/trips/"+testTripID.String()+"/assistant", strings.NewReader(chatBody)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, `data: {"token":"Try "}`)
	assert.Contains(t, body, `data: {"token":"beach "}`)
	assert.Contains(t, body, `data: {"token":"shacks"}`)
	assert.True(t, strings.HasSuffix(body, "data: [DONE]\n\n"), "stream must close with the DONE marker")
}

func TestAssistantChat_TokenJSONEscaped(t *testing.T) {
	d := newDeps()
	d.assistant.chat = func(_ context.Context, _, _ uuid.UUID, _ []ai.Message, emit func(string) error) error {
		return emit("line one\nline two")
	}
	router := newTestRouter(d)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/trips/"+testTripID.String()+"/assistant", strings.NewReader(chatBody)))

	require.Equal(t, http.StatusOK, rec.Code)
	// A raw newline inside a data: payload would split the SSE event.
	assert.Contains(t, rec.Body.String(), `data: {"token":"line one\nline two"}`)
}

func TestAssistantChat_PreStreamErrorsKeepJSONStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"rate limited", domain.ErrRateLimited, http.StatusTooManyRequests},
		{"quota exceeded", domain.ErrQuotaExceeded, http.StatusPaymentRequired},
		{"trip missing", domain.ErrNotFound, http.StatusNotFound},
		{"empty history", domain.ErrValidation, http.StatusUnprocessableEntity},
		{"gateway down", domain.ErrUpstream, http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDeps()
			d.assistant.chat = func(_ context.Context, _, _ uuid.UUID, _ []ai.Message, _ func(string) error) error {
				return fmt.Errorf("service.AssistantService.Chat: %w", tt.err)
			}
			router := newTestRouter(d)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, authedRequest(http.MethodPost, "/trips/"+testTripID.String()+"/assistant", strings.NewReader(chatBody)))

			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestAssistantChat_MidStreamErrorDropsDoneMarker(t *testing.T) {
	d := newDeps()
	d.assistant.chat = func(_ context.Context, _, _ uuid.UUID, _ []ai.Message, emit func(string) error) error {
		if err := emit("partial"); err != nil {
			return err
		}
		return fmt.Errorf("service.AssistantService.Chat: %w", domain.ErrUpstream)
	}
	router := newTestRouter(d)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/trips/"+testTripID.String()+"/assistant", strings.NewReader(chatBody)))

	// The status was committed when streaming began.
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data: {"token":"partial"}`)
	assert.NotContains(t, rec.Body.String(), "[DONE]")
}

func TestAssistantChat_BadJSON(t *testing.T) {
	router := newTestRouter(newDeps())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/trips/"+testTripID.String()+"/assistant", strings.NewReader("{")))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
