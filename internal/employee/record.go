// Package employee holds agency staff records and their SQLite-backed store.
package employee

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/tnguyen21/securedesk/internal/placeholder"
)

// DateLayout is the display and storage format for hire dates.
const DateLayout = "2006-01-02"

// Photo dimensions for generated placeholders.
const (
	PhotoWidth  = 640
	PhotoHeight = 480
)

// ErrPhotoAssigned is returned when a record already has a photo.
var ErrPhotoAssigned = errors.New("photo already assigned")

// Record is one employee. Everything but the photo is fixed at creation;
// the photo is attached once, before the record is first displayed.
type Record struct {
	ID         int64
	Department string
	FullName   string
	HireDate   time.Time

	photo image.Image
}

// NewRecord returns a record with the hire date truncated to a calendar day.
func NewRecord(department, fullName string, hired time.Time) *Record {
	return &Record{
		Department: department,
		FullName:   fullName,
		HireDate:   time.Date(hired.Year(), hired.Month(), hired.Day(), 0, 0, 0, 0, time.UTC),
	}
}

// Photo returns the attached image, or nil before AttachPhoto.
func (r *Record) Photo() image.Image { return r.photo }

// AttachPhoto sets the record's photo. It fails if one is already set.
func (r *Record) AttachPhoto(img image.Image) error {
	if r.photo != nil {
		return fmt.Errorf("employee %q: %w", r.FullName, ErrPhotoAssigned)
	}
	r.photo = img
	return nil
}

// HireDateString formats the hire date as YYYY-MM-DD.
func (r *Record) HireDateString() string {
	return r.HireDate.Format(DateLayout)
}

// AttachPlaceholders generates a placeholder photo for every record that
// has none yet.
func AttachPlaceholders(records []*Record) error {
	for _, r := range records {
		if r.photo != nil {
			continue
		}
		img, err := placeholder.Generate(r.FullName, PhotoWidth, PhotoHeight)
		if err != nil {
			return fmt.Errorf("generating photo for %q: %w", r.FullName, err)
		}
		r.photo = img
	}
	return nil
}

// SampleRecords returns the demo staff seeded into a fresh store.
func SampleRecords() []*Record {
	return []*Record{
		NewRecord("Охрана", "Иванов Иван Иванович", time.Date(2018, 3, 12, 0, 0, 0, 0, time.UTC)),
		NewRecord("Администрация", "Петрова Мария Сергеевна", time.Date(2020, 7, 1, 0, 0, 0, 0, time.UTC)),
		NewRecord("Технический отдел", "Сидоров Алексей Петрович", time.Date(2016, 11, 20, 0, 0, 0, 0, time.UTC)),
		NewRecord("Охрана", "Кузнецова Ольга Николаевна", time.Date(2021, 5, 15, 0, 0, 0, 0, time.UTC)),
	}
}
