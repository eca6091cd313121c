package statsapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/huangsam/fastball/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scheduleBody = `{
  "totalGames": 2,
  "dates": [{
    "date": "2024-04-01",
    "games": [
      {"gamePk": 745001, "link": "/api/v1.1/game/745001/feed/live"},
      {"gamePk": 745002, "link": "/api/v1.1/game/745002/feed/live"}
    ]
  }]
}`

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, NewClient(srv.URL+"/", 5*time.Second, "fastball-test")
}

func TestFetchSchedule(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/schedule/games/", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("sportId"))
		assert.Equal(t, "04/01/2024", r.URL.Query().Get("date"))
		assert.Equal(t, "fastball-test", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(scheduleBody))
	})

	schedule, err := client.FetchSchedule(context.Background(), 1, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	games := schedule.Games()
	require.Len(t, games, 2)
	assert.Equal(t, int64(745001), games[0].GamePk)
}

func TestFetchScheduleErrors(t *testing.T) {
	t.Run("non-2xx is a request error", func(t *testing.T) {
		_, client := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "upstream down", http.StatusBadGateway)
		})
		_, err := client.FetchSchedule(context.Background(), 1, time.Now())
		require.ErrorIs(t, err, ErrRequest)
		assert.Contains(t, err.Error(), "status=502")
		assert.Contains(t, err.Error(), "upstream down")
	})

	t.Run("bad json is a decode error", func(t *testing.T) {
		_, client := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"dates": [`))
		})
		_, err := client.FetchSchedule(context.Background(), 1, time.Now())
		require.ErrorIs(t, err, ErrDecode)
	})

	t.Run("unreachable host is a request error", func(t *testing.T) {
		srv, client := newTestServer(t, func(http.ResponseWriter, *http.Request) {})
		srv.Close()
		_, err := client.FetchSchedule(context.Background(), 1, time.Now())
		require.ErrorIs(t, err, ErrRequest)
	})
}

func TestFetchGameFeed(t *testing.T) {
	feed := `{"gamePk": 745001, "liveData": {"plays": {"allPlays": []}}}`

	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1.1/game/745001/feed/live":
			_, _ = w.Write([]byte(feed))
		case "/api/v1.1/game/745003/feed/live":
			_, _ = w.Write([]byte("<html>oops</html>"))
		default:
			http.NotFound(w, r)
		}
	})

	t.Run("link is followed and body kept verbatim", func(t *testing.T) {
		body, err := client.FetchGameFeed(context.Background(), schema.ScheduledGame{GamePk: 745001, Link: "/api/v1.1/game/745001/feed/live"})
		require.NoError(t, err)
		assert.Equal(t, feed, string(body))
	})

	t.Run("missing link falls back to the feed path", func(t *testing.T) {
		body, err := client.FetchGameFeed(context.Background(), schema.ScheduledGame{GamePk: 745001})
		require.NoError(t, err)
		assert.Equal(t, feed, string(body))
	})

	t.Run("non json feed is a decode error", func(t *testing.T) {
		_, err := client.FetchGameFeed(context.Background(), schema.ScheduledGame{GamePk: 745003})
		require.ErrorIs(t, err, ErrDecode)
	})

	t.Run("not found is a request error", func(t *testing.T) {
		_, err := client.FetchGameFeed(context.Background(), schema.ScheduledGame{GamePk: 1})
		require.ErrorIs(t, err, ErrRequest)
	})
}

func TestURLs(t *testing.T) {
	client := NewClient("https://statsapi.mlb.com", time.Second, "ua")

	assert.Equal(t,
		"https://statsapi.mlb.com/api/v1/schedule/games/?date=07%2F04%2F2024&sportId=1",
		client.ScheduleURL(1, time.Date(2024, 7, 4, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t,
		"https://statsapi.mlb.com/api/v1.1/game/9/feed/live",
		client.GameFeedURL(schema.ScheduledGame{GamePk: 9}))
	assert.Equal(t,
		"https://statsapi.mlb.com/api/v1.1/game/9/feed/live",
		client.GameFeedURL(schema.ScheduledGame{GamePk: 9, Link: "api/v1.1/game/9/feed/live"}))
	assert.Equal(t,
		"https://example.test/feed",
		client.GameFeedURL(schema.ScheduledGame{GamePk: 9, Link: "https://example.test/feed"}))
}
