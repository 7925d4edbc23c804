package ticket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moviemagic/movie-booking/internal/model"
)

func sampleBooking() model.Booking {
	return model.Booking{
		BookingID: "a1b2c3d4e5f60718",
		UserID:    1,
		Movie:     "Orange",
		Theater:   "PVR Cinemas",
		Showtime:  "1:30 PM",
		Seats:     "A1,A2",
		Total:     500,
		CreatedAt: time.Date(2025, 6, 1, 18, 30, 0, 0, time.UTC),
	}
}

func TestPDF(t *testing.T) {
	out, err := PDF(sampleBooking())
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestQR(t *testing.T) {
	out, err := QR(sampleBooking())
	require.NoError(t, err)
	require.True(t, len(out) > 8)
	// PNG signature
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, out[:4])
}
