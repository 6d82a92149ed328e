package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/websocket"

	"moviecat/internal/transport"
	"moviecat/pkg/domain"
)

// HTTPService talks to the real recommendation endpoints. REST calls go
// through the shared pipeline; the stream dials the websocket endpoint
// directly and authenticates with a first-frame token message.
type HTTPService struct {
	client *transport.Client
	wsURL  string
	tokens transport.TokenSource
	dialer *websocket.Dialer
}

func NewHTTPService(client *transport.Client, wsURL string, tokens transport.TokenSource) *HTTPService {
	return &HTTPService{
		client: client,
		wsURL:  wsURL,
		tokens: tokens,
		dialer: websocket.DefaultDialer,
	}
}

func fetchQuery(params Params) url.Values {
	q := url.Values{}
	if params.K > 0 {
		q.Set("k", strconv.Itoa(params.K))
	}
	if params.Refresh {
		q.Set("refresh", "true")
	}
	return q
}

func (s *HTTPService) ForMe(ctx context.Context, params Params) (domain.RecommendationResponse, error) {
	var resp domain.RecommendationResponse
	if err := s.client.DoJSON(ctx, http.MethodGet, "/me/recommendations", fetchQuery(params), nil, &resp); err != nil {
		return domain.RecommendationResponse{}, err
	}
	return resp, nil
}

func (s *HTTPService) ForUser(ctx context.Context, userID int, params Params) (domain.RecommendationResponse, error) {
	var resp domain.RecommendationResponse
	path := fmt.Sprintf("/users/%d/recommendations", userID)
	if err := s.client.DoJSON(ctx, http.MethodGet, path, fetchQuery(params), nil, &resp); err != nil {
		return domain.RecommendationResponse{}, err
	}
	return resp, nil
}

type wsAuth struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

// Stream opens the websocket and relays frames until the terminal one.
// Cancelling ctx closes the socket and the channel.
func (s *HTTPService) Stream(ctx context.Context, userID, k int) (<-chan domain.StreamMessage, error) {
	target := fmt.Sprintf("%s/users/%d/ws/recommendations?k=%d", s.wsURL, userID, k)
	conn, _, err := s.dialer.DialContext(ctx, target, nil)
	if err != nil {
		return nil, fmt.Errorf("dial recommendation stream: %w", err)
	}

	if token := s.tokens.Token(); token != "" {
		if err := conn.WriteJSON(wsAuth{Type: "auth", Token: token}); err != nil {
			conn.Close()
			return nil, fmt.Errorf("authenticate stream: %w", err)
		}
	}

	out := make(chan domain.StreamMessage)
	done := make(chan struct{})

	// The watcher closes the connection on cancel, which unblocks
	// ReadMessage in the reader.
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
		}
		conn.Close()
	}()
	go func() {
		defer close(out)
		defer close(done)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				if ctx.Err() == nil {
					slog.Warn("recommendation stream closed", "error", err, "userId", userID)
				}
				return
			}
			var msg domain.StreamMessage
			if err := json.Unmarshal(data, &msg); err != nil {
				slog.Warn("recommendation stream frame dropped", "error", err)
				continue
			}
			select {
			case out <- msg:
			case <-ctx.Done():
				return
			}
			if msg.Type == domain.StreamRecommendations || msg.Type == domain.StreamError {
				return
			}
		}
	}()

	return out, nil
}
