// Package ticket renders downloadable artifacts for a finalized booking.
// Both functions are pure: they read only the Booking value and return the
// binary artifact, so a failure here can never corrupt stored state.
package ticket

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/moviemagic/movie-booking/internal/model"
)

// PDF renders an A4 ticket receipt for the booking.
func PDF(b model.Booking) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(190, 10, "MovieMagic Ticket")

	pdf.SetFont("Arial", "", 12)
	pdf.Ln(12)
	pdf.Cell(190, 10, fmt.Sprintf("Booking ID: %s", b.BookingID))
	pdf.Ln(10)
	pdf.Cell(190, 10, fmt.Sprintf("Movie: %s", b.Movie))
	pdf.Ln(10)
	pdf.Cell(190, 10, fmt.Sprintf("Theater: %s", b.Theater))
	pdf.Ln(10)
	pdf.Cell(190, 10, fmt.Sprintf("Showtime: %s", b.Showtime))
	pdf.Ln(10)
	pdf.Cell(190, 10, fmt.Sprintf("Seats: %s", b.Seats))
	pdf.Ln(10)
	pdf.Cell(190, 10, fmt.Sprintf("Total: Rs. %d", b.Total))
	pdf.Ln(10)
	pdf.Cell(190, 10, fmt.Sprintf("Booked: %s", b.CreatedAt.Format("2006-01-02 15:04:05")))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// QR encodes the booking summary as a PNG QR code for gate scanning.
func QR(b model.Booking) ([]byte, error) {
	payload := fmt.Sprintf("booking:%s|%s|%s|%s|%s", b.BookingID, b.Movie, b.Theater, b.Showtime, b.Seats)
	return qrcode.Encode(payload, qrcode.Medium, 256)
}
