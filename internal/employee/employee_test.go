package employee

import (
	"context"
	"errors"
	"image"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenStore(context.Background(), filepath.Join(t.TempDir(), "agency.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewRecordTruncatesHireDate(t *testing.T) {
	r := NewRecord("Охрана", "Иванов Иван Иванович", time.Date(2018, 3, 12, 17, 45, 0, 0, time.Local))
	assert.Equal(t, "2018-03-12", r.HireDateString())
	assert.Equal(t, 0, r.HireDate.Hour())
	assert.Nil(t, r.Photo())
}

func TestAttachPhotoOnce(t *testing.T) {
	r := NewRecord("Охрана", "Иванов Иван Иванович", time.Now())
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))

	require.NoError(t, r.AttachPhoto(img))
	assert.Same(t, img, r.Photo())

	err := r.AttachPhoto(image.NewRGBA(image.Rect(0, 0, 2, 2)))
	assert.True(t, errors.Is(err, ErrPhotoAssigned))
	assert.Same(t, img, r.Photo(), "first photo is kept")
}

func TestAttachPlaceholders(t *testing.T) {
	records := SampleRecords()
	existing := image.NewRGBA(image.Rect(0, 0, 1, 1))
	require.NoError(t, records[0].AttachPhoto(existing))

	require.NoError(t, AttachPlaceholders(records))

	assert.Same(t, existing, records[0].Photo())
	for _, r := range records[1:] {
		require.NotNil(t, r.Photo(), r.FullName)
		assert.Equal(t, image.Rect(0, 0, PhotoWidth, PhotoHeight), r.Photo().Bounds())
	}
}

func TestSampleRecords(t *testing.T) {
	records := SampleRecords()
	require.Len(t, records, 4)
	for _, r := range records {
		assert.NotEmpty(t, r.Department)
		assert.NotEmpty(t, r.FullName)
		assert.False(t, r.HireDate.IsZero())
	}
	assert.Equal(t, "Иванов Иван Иванович", records[0].FullName)
}

func TestOpenStoreSeeds(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	records, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 4)

	want := SampleRecords()
	for i, r := range records {
		assert.Equal(t, want[i].Department, r.Department)
		assert.Equal(t, want[i].FullName, r.FullName)
		assert.Equal(t, want[i].HireDateString(), r.HireDateString())
		assert.Positive(t, r.ID)
		assert.Nil(t, r.Photo(), "photos are attached by the caller")
	}

	hash, err := s.PasswordHash(ctx, DefaultUsername)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword(hash, []byte(DefaultPassword)))
}

func TestOpenStoreSeedsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agency.db")
	ctx := context.Background()

	s, err := OpenStore(ctx, path)
	require.NoError(t, err)
	_, err = s.Add(ctx, NewRecord("Охрана", "Смирнов Павел", time.Date(2022, 1, 10, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = OpenStore(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	records, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 5)
	assert.Equal(t, "Смирнов Павел", records[4].FullName)
}

func TestAddRejectsEmptyFields(t *testing.T) {
	s := testStore(t)
	_, err := s.Add(context.Background(), NewRecord("", "Nobody", time.Now()))
	assert.Error(t, err)
	_, err = s.Add(context.Background(), NewRecord("Охрана", "", time.Now()))
	assert.Error(t, err)
}

func TestPasswordHashUnknownAccount(t *testing.T) {
	s := testStore(t)
	_, err := s.PasswordHash(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUnknownAccount)
}

func TestSetPasswordReplaces(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetPassword(ctx, DefaultUsername, "rotated"))
	hash, err := s.PasswordHash(ctx, DefaultUsername)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword(hash, []byte("rotated")))
	assert.Error(t, bcrypt.CompareHashAndPassword(hash, []byte(DefaultPassword)))
}
