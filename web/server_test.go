package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopping-dashboard/charts"
	"shopping-dashboard/dashboard"
	"shopping-dashboard/engine"
	"shopping-dashboard/models"
	"shopping-dashboard/utils"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	rows := []models.Transaction{
		{CustomerID: 1, Age: 22, Gender: "Male", Item: "Blouse", Category: "Clothing", PurchaseAmount: 50, Season: "Winter", ShippingType: "Express"},
		{CustomerID: 2, Age: 30, Gender: "Female", Item: "Sneakers", Category: "Footwear", PurchaseAmount: 80, Season: "Summer", ShippingType: "Standard"},
		{CustomerID: 3, Age: 41, Gender: "Male", Item: "Coat", Category: "Outerwear", PurchaseAmount: 150, Season: "Winter", ShippingType: "Express"},
		{CustomerID: 4, Age: 28, Gender: "Female", Item: "Blouse", Category: "Clothing", PurchaseAmount: 40, Season: "Spring", ShippingType: "Free Shipping"},
	}
	logger := utils.NewWriterLogger(io.Discard, utils.LevelError)
	dash := dashboard.New(engine.NewTableView(rows), charts.DefaultOptions(), logger)

	srv, err := NewServer(dash, Options{SessionSecret: "test-secret-key-32-bytes-long!!", Logger: logger})
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func getFrame(t *testing.T, c *http.Client, base string) dashboard.Frame {
	t.Helper()
	resp, err := c.Get(base + "/api/frame")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var f dashboard.Frame
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&f))
	return f
}

func post(t *testing.T, c *http.Client, target string, form url.Values) *http.Response {
	t.Helper()
	resp, err := c.PostForm(target, form)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestIndexRendersDashboard(t *testing.T) {
	_, ts := newTestServer(t)
	c := newClient(t)

	resp, err := c.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `id="dashboard"`)
	assert.Contains(t, string(body), "1. Pie Chart - Sales Distribution by Category")
	assert.Contains(t, string(body), `id="categories_Footwear_0"`)
	assert.NotContains(t, string(body), charts.MsgSunburst)
	assert.NotEmpty(t, resp.Cookies())
}

func TestReconcileFormPostRedirects(t *testing.T) {
	_, ts := newTestServer(t)
	c := newClient(t)

	resp := post(t, c, ts.URL+"/events/reconcile/categories", url.Values{"label": {"Footwear"}})
	assert.Equal(t, http.StatusOK, resp.StatusCode, "redirect is followed to the page")
	assert.Equal(t, "/", resp.Request.URL.Path)

	f := getFrame(t, c, ts.URL)
	assert.Equal(t, 1, f.Rows)
	assert.Equal(t, []string{"Footwear"}, f.Selection.Categories)
}

func TestDatastarRequestGetsPatch(t *testing.T) {
	_, ts := newTestServer(t)
	c := newClient(t)

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/events/reconcile/ageGroups",
		strings.NewReader(url.Values{"label": {"26-35"}}.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Datastar-Request", "true")

	resp, err := c.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")
	assert.Contains(t, string(body), "datastar-patch-elements")
	assert.Contains(t, string(body), "Showing 2 of 4 purchases")
}

func TestClearEndpoint(t *testing.T) {
	_, ts := newTestServer(t)
	c := newClient(t)

	post(t, c, ts.URL+"/events/reconcile/items", url.Values{"label": {"Blouse"}})
	assert.Equal(t, 2, getFrame(t, c, ts.URL).Rows)

	post(t, c, ts.URL+"/events/clear/items", nil)
	f := getFrame(t, c, ts.URL)
	assert.Equal(t, 4, f.Rows)
	assert.Equal(t, uint64(1), f.Selection.ResetCounter)
}

func TestUnknownDimensionIsNotFound(t *testing.T) {
	_, ts := newTestServer(t)
	c := newClient(t)

	resp := post(t, c, ts.URL+"/events/clear/colors", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSidebarEndpoint(t *testing.T) {
	_, ts := newTestServer(t)
	c := newClient(t)

	post(t, c, ts.URL+"/events/sidebar", url.Values{"gender": {"Female"}, "amount_max": {"60"}})
	f := getFrame(t, c, ts.URL)
	assert.Equal(t, 1, f.Rows)
	assert.Equal(t, models.NewRange(22, 41), f.Sidebar.Age, "age range keeps its default")

	resp := post(t, c, ts.URL+"/events/sidebar", url.Values{"age_min": {"abc"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	post(t, c, ts.URL+"/events/reset", nil)
	assert.Equal(t, 4, getFrame(t, c, ts.URL).Rows)
}

func TestSidebarRejectsNonFiniteBounds(t *testing.T) {
	_, ts := newTestServer(t)
	c := newClient(t)

	for _, raw := range []string{"NaN", "Inf", "-Inf", "+Inf"} {
		resp := post(t, c, ts.URL+"/events/sidebar", url.Values{"age_min": {raw}})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, raw)
	}

	f := getFrame(t, c, ts.URL)
	assert.Equal(t, 4, f.Rows)
	assert.Equal(t, models.NewRange(22, 41), f.Sidebar.Age)
}

func TestSessionsAreIsolated(t *testing.T) {
	srv, ts := newTestServer(t)
	a, b := newClient(t), newClient(t)

	post(t, a, ts.URL+"/events/reconcile/categories", url.Values{"label": {"Clothing"}})

	assert.Equal(t, 2, getFrame(t, a, ts.URL).Rows)
	assert.Equal(t, 4, getFrame(t, b, ts.URL).Rows)
	assert.Equal(t, 2, srv.sessions.len())
}

func TestChartPNG(t *testing.T) {
	_, ts := newTestServer(t)
	c := newClient(t)

	resp, err := c.Get(ts.URL + "/charts/pie.png")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.True(t, strings.HasPrefix(string(body), "\x89PNG"))

	resp2, err := c.Get(ts.URL + "/charts/heatmap.png")
	require.NoError(t, err)
	resp2.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp2.StatusCode)
}

func TestRegistrySweep(t *testing.T) {
	srv, _ := newTestServer(t)
	reg := srv.sessions

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	reg.now = func() time.Time { return now }
	id, _ := reg.create()
	reg.create()

	now = now.Add(2 * time.Hour)
	_, ok := reg.get(id)
	require.True(t, ok)

	assert.Equal(t, 1, reg.sweep(time.Hour))
	assert.Equal(t, 1, reg.len())
}
