package handler_test

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newBrowser returns an HTTP client that behaves like a browser: it keeps
// cookies and follows redirects.
func newBrowser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func postForm(t *testing.T, client *http.Client, rawURL string, form url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := client.PostForm(rawURL, form)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func get(t *testing.T, client *http.Client, rawURL string) (*http.Response, string) {
	t.Helper()
	resp, err := client.Get(rawURL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

// TestFullCheckoutFlow walks the whole booking journey: register, login,
// pick "Orange" at PVR Cinemas 1:30 PM, select seats with a duplicate
// token, pay, and verify ticket and dashboard. Two distinct seats at 250
// each must come to 500.
func TestFullCheckoutFlow(t *testing.T) {
	app := newTestApp(t)
	base := app.server.URL
	browser := newBrowser(t)

	// register → redirected to login with a notice
	resp, body := postForm(t, browser, base+"/register", url.Values{
		"name": {"A"}, "email": {"a@x.com"}, "password": {"secret"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/login", resp.Request.URL.Path)
	assert.Contains(t, body, "Registration successful")

	// login → home with the catalog
	resp, body = postForm(t, browser, base+"/login", url.Values{
		"email": {"a@x.com"}, "password": {"secret"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/home", resp.Request.URL.Path)
	assert.Contains(t, body, "Orange")

	// choose the showing → seating page
	resp, body = postForm(t, browser, base+"/booking/Orange", url.Values{
		"theater": {"PVR Cinemas"}, "showtime": {"1:30 PM"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/seating", resp.Request.URL.Path)
	assert.Contains(t, body, "Select Seats")
	assert.Contains(t, body, "PVR Cinemas")

	// duplicate seat token A1 must not inflate the price
	resp, body = postForm(t, browser, base+"/seating", url.Values{
		"selected_seats": {"A1", "A2", "A1"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/payment", resp.Request.URL.Path)
	assert.Contains(t, body, "Total: Rs. 500")
	assert.Contains(t, body, "A1, A2")

	// confirm payment → exactly one booking, ticket shown
	resp, body = postForm(t, browser, base+"/payment", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/ticket", resp.Request.URL.Path)
	assert.Contains(t, body, "Booking Confirmed")
	assert.Contains(t, body, "Rs. 500")
	require.Equal(t, 1, app.bookings.count())

	idMatch := regexp.MustCompile(`<strong>([0-9a-f]{16})</strong>`).FindStringSubmatch(body)
	require.Len(t, idMatch, 2)
	bookingID := idMatch[1]

	// the stored row matches what was checked out
	b, err := app.bookings.GetByBookingID(context.Background(), bookingID)
	require.NoError(t, err)
	assert.Equal(t, "Orange", b.Movie)
	assert.Equal(t, "PVR Cinemas", b.Theater)
	assert.Equal(t, "1:30 PM", b.Showtime)
	assert.Equal(t, "A1,A2", b.Seats)
	assert.Equal(t, 500, b.Total)

	// paying again must not create a second booking
	resp, _ = postForm(t, browser, base+"/payment", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/ticket", resp.Request.URL.Path)
	assert.Equal(t, 1, app.bookings.count())

	// ticket page is idempotently re-enterable
	resp, body = get(t, browser, base+"/ticket")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, bookingID)

	// artifacts render from the same booking
	resp, body = get(t, browser, base+"/ticket/pdf")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(body, "%PDF"))
	resp, body = get(t, browser, base+"/ticket/qr")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(body, "\x89PNG"))

	// dashboard lists exactly this one booking
	resp, body = get(t, browser, base+"/dashboard")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, bookingID)
	assert.Equal(t, 1, strings.Count(body, bookingID))
}

// TestRewinds checks the fail-safe rewind policy: entering a step without
// the prior step's data redirects to an earlier page, never errors.
func TestRewinds(t *testing.T) {
	app := newTestApp(t)
	base := app.server.URL
	browser := newBrowser(t)

	postForm(t, browser, base+"/register", url.Values{
		"name": {"A"}, "email": {"a@x.com"}, "password": {"secret"},
	})
	postForm(t, browser, base+"/login", url.Values{
		"email": {"a@x.com"}, "password": {"secret"},
	})

	for _, path := range []string{"/seating", "/payment", "/ticket"} {
		resp, _ := get(t, browser, base+path)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "/home", resp.Request.URL.Path, "GET %s without state should rewind home", path)
	}
}

// TestSeatingRerendersOnEmptySelection verifies the ignore-and-reprompt
// policy: an empty seat submission re-renders the seating page unchanged.
func TestSeatingRerendersOnEmptySelection(t *testing.T) {
	app := newTestApp(t)
	base := app.server.URL
	browser := newBrowser(t)

	postForm(t, browser, base+"/register", url.Values{
		"name": {"A"}, "email": {"a@x.com"}, "password": {"secret"},
	})
	postForm(t, browser, base+"/login", url.Values{
		"email": {"a@x.com"}, "password": {"secret"},
	})
	postForm(t, browser, base+"/booking/Orange", url.Values{
		"theater": {"PVR Cinemas"}, "showtime": {"1:30 PM"},
	})

	resp, body := postForm(t, browser, base+"/seating", url.Values{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/seating", resp.Request.URL.Path)
	assert.Contains(t, body, "Select Seats")
	assert.Equal(t, 0, app.bookings.count())
}

// TestLegacySeatingField accepts the old composite "theater|time" field.
func TestLegacySeatingField(t *testing.T) {
	app := newTestApp(t)
	base := app.server.URL
	browser := newBrowser(t)

	postForm(t, browser, base+"/register", url.Values{
		"name": {"A"}, "email": {"a@x.com"}, "password": {"secret"},
	})
	postForm(t, browser, base+"/login", url.Values{
		"email": {"a@x.com"}, "password": {"secret"},
	})

	resp, _ := postForm(t, browser, base+"/booking/Orange", url.Values{
		"seating": {"INOX|2:45 PM"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/seating", resp.Request.URL.Path)
}

func TestUnknownMovieIs404(t *testing.T) {
	app := newTestApp(t)
	base := app.server.URL
	browser := newBrowser(t)

	postForm(t, browser, base+"/register", url.Values{
		"name": {"A"}, "email": {"a@x.com"}, "password": {"secret"},
	})
	postForm(t, browser, base+"/login", url.Values{
		"email": {"a@x.com"}, "password": {"secret"},
	})

	resp, body := get(t, browser, base+"/booking/NoSuchMovie")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "Movie not found")
}

// TestConcurrentPaymentSubmitsCreateOneBooking fires several payment POSTs
// at once for the same checkout; the per-session confirmation lock must let
// exactly one row through.
func TestConcurrentPaymentSubmitsCreateOneBooking(t *testing.T) {
	app := newTestApp(t)
	base := app.server.URL
	browser := newBrowser(t)

	postForm(t, browser, base+"/register", url.Values{
		"name": {"A"}, "email": {"a@x.com"}, "password": {"secret"},
	})
	postForm(t, browser, base+"/login", url.Values{
		"email": {"a@x.com"}, "password": {"secret"},
	})
	postForm(t, browser, base+"/booking/Orange", url.Values{
		"theater": {"PVR Cinemas"}, "showtime": {"1:30 PM"},
	})
	postForm(t, browser, base+"/seating", url.Values{
		"selected_seats": {"A1", "A2"},
	})

	const submits = 8
	errs := make(chan error, submits)
	var wg sync.WaitGroup
	for i := 0; i < submits; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := browser.PostForm(base+"/payment", nil)
			if err == nil {
				resp.Body.Close()
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	assert.Equal(t, 1, app.bookings.count())
}
