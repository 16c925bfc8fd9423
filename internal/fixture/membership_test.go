package fixture

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T, opts Options) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(NewServer(zap.NewNop().Sugar(), opts).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (int, []byte) {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func TestListPlansSortedByPrice(t *testing.T) {
	srv := newTestServer(t, Options{Plans: []Plan{
		{ID: "b", Name: "Yearly", Price: 900, Duration: "yearly"},
		{ID: "a", Name: "Monthly", Price: 100, Duration: "monthly"},
	}})

	code, body := get(t, srv.URL+"/api/memberships")
	require.Equal(t, http.StatusOK, code)

	var plans []Plan
	require.NoError(t, json.Unmarshal(body, &plans))
	require.Len(t, plans, 2)
	assert.Equal(t, "a", plans[0].ID)
	assert.Equal(t, "b", plans[1].ID)
}

func TestGetPlan(t *testing.T) {
	srv := newTestServer(t, Options{})

	code, body := get(t, srv.URL+"/api/memberships/plan-quarterly")
	require.Equal(t, http.StatusOK, code)

	var p Plan
	require.NoError(t, json.Unmarshal(body, &p))
	assert.Equal(t, "Pro", p.Name)
	assert.True(t, p.Popular)

	code, body = get(t, srv.URL+"/api/memberships/missing")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Contains(t, string(body), "Membership plan not found")
}

func TestMembershipPage(t *testing.T) {
	t.Run("renders card class", func(t *testing.T) {
		srv := newTestServer(t, Options{RenderDelay: 250 * time.Millisecond})

		code, body := get(t, srv.URL+"/membership")
		require.Equal(t, http.StatusOK, code)
		assert.Regexp(t, `cardClass = \s*"card-gym"`, string(body))
		assert.Regexp(t, `renderDelay = \s*250\s*;`, string(body))
	})

	t.Run("omits card class", func(t *testing.T) {
		srv := newTestServer(t, Options{OmitCardClass: true})

		_, body := get(t, srv.URL+"/membership")
		assert.Contains(t, string(body), `"card-plain"`)
		assert.NotContains(t, string(body), `"card-gym"`)
	})
}
