package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/adhingra/safarnama/backend/internal/ai"
)

// assistantChatRequest carries the conversation so far. The assistant is
// stateless; the client resends the full history each turn.
type assistantChatRequest struct {
	Messages []ai.Message `json:"messages"`
}

// AssistantChat handles POST /trips/{tripID}/assistant. Tokens are
// relayed as Server-Sent Events the moment they arrive, never buffered.
// SSE headers are written lazily on the first token so errors raised
// before streaming begins (missing trip, rate limit, quota) still go out
// as regular JSON with their own status codes. Once streaming has
// started the status is committed; an upstream failure mid-stream simply
// ends the stream without the terminal [DONE] marker.
func (s *Server) AssistantChat(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := authedTrip(w, r)
	if !ok {
		return
	}

	var body assistantChatRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		requestError(w, "request body must be valid JSON")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "internal_error", "streaming unsupported")
		return
	}

	started := false
	beginStream := func() {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		started = true
	}

	emit := func(token string) error {
		if !started {
			beginStream()
		}
		payload, err := json.Marshal(map[string]string{"token": token})
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	}

	// r.Context() is cancelled when the client disconnects, which tears
	// down the upstream model stream with it.
	err := s.assistant.Chat(r.Context(), userID, tripID, body.Messages, emit)
	if err != nil {
		if !started {
			s.respondServiceError(w, r, err, "trip not found")
			return
		}
		s.log.WarnContext(r.Context(), "assistant stream ended early", "error", err)
		return
	}

	if !started {
		beginStream()
	}
	fmt.Fprint(w, "data: [DONE]\n\n")
	flusher.Flush()
}
