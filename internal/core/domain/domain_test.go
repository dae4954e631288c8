package domain_test

import (
	"errors"
	"fmt"
	"geomedia/internal/core/domain"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCoordinates(t *testing.T) {
	valid := [][2]float64{{0, 0}, {90, 180}, {-90, -180}, {48.8566, 2.3522}}
	for _, c := range valid {
		assert.NoError(t, domain.ValidateCoordinates(c[0], c[1]), "lat=%v lng=%v", c[0], c[1])
	}

	invalid := [][2]float64{{90.0001, 0}, {-91, 0}, {0, 180.5}, {0, -181}, {math.NaN(), 0}, {0, math.NaN()}}
	for _, c := range invalid {
		assert.ErrorIs(t, domain.ValidateCoordinates(c[0], c[1]), domain.ErrInvalidCoordinates, "lat=%v lng=%v", c[0], c[1])
	}
}

func TestBounds(t *testing.T) {

	t.Run("validate", func(t *testing.T) {
		assert.NoError(t, domain.Bounds{North: 10, South: -10, East: 20, West: -20}.Validate())
		assert.NoError(t, domain.Bounds{North: 5, South: 5, East: 5, West: 5}.Validate())
		assert.ErrorIs(t, domain.Bounds{North: -10, South: 10, East: 20, West: -20}.Validate(), domain.ErrInvalidBounds)
		assert.ErrorIs(t, domain.Bounds{North: 10, South: -10, East: -20, West: 20}.Validate(), domain.ErrInvalidBounds)
		assert.ErrorIs(t, domain.Bounds{North: 95, South: -10, East: 20, West: -20}.Validate(), domain.ErrInvalidBounds)
		assert.ErrorIs(t, domain.Bounds{North: 10, South: -10, East: 20, West: -200}.Validate(), domain.ErrInvalidBounds)
	})
}

func TestDeriveMediaType(t *testing.T) {
	assert.Equal(t, domain.MediaTypeVideo, domain.DeriveMediaType("video/mp4"))
	assert.Equal(t, domain.MediaTypeVideo, domain.DeriveMediaType("video/quicktime"))
	assert.Equal(t, domain.MediaTypeImage, domain.DeriveMediaType("image/jpeg"))
	assert.Equal(t, domain.MediaTypeImage, domain.DeriveMediaType("application/octet-stream"))
}

func TestDeriveTimeOfDay(t *testing.T) {
	cases := []struct {
		hour     int
		expected domain.TimeOfDay
	}{
		{0, domain.TimeOfDayNight},
		{2, domain.TimeOfDayNight},
		{4, domain.TimeOfDayNight},
		{5, domain.TimeOfDayMorning},
		{8, domain.TimeOfDayMorning},
		{11, domain.TimeOfDayMorning},
		{12, domain.TimeOfDayAfternoon},
		{14, domain.TimeOfDayAfternoon},
		{16, domain.TimeOfDayAfternoon},
		{17, domain.TimeOfDayEvening},
		{19, domain.TimeOfDayEvening},
		{20, domain.TimeOfDayEvening},
		{21, domain.TimeOfDayNight},
		{23, domain.TimeOfDayNight},
	}

	for _, c := range cases {
		t.Run(fmt.Sprintf("%02dh", c.hour), func(t *testing.T) {
			at := time.Date(2025, 6, 1, c.hour, 59, 0, 0, time.UTC)
			assert.Equal(t, c.expected, domain.DeriveTimeOfDay(at))
		})
	}

	t.Run("uses the timestamp location", func(t *testing.T) {
		tokyo := time.FixedZone("JST", 9*60*60)
		at := time.Date(2025, 6, 1, 8, 0, 0, 0, tokyo)

		assert.Equal(t, domain.TimeOfDayMorning, domain.DeriveTimeOfDay(at))
		assert.Equal(t, domain.TimeOfDayNight, domain.DeriveTimeOfDay(at.UTC()))
	})
}

func TestParseTimeOfDay(t *testing.T) {
	tod, err := domain.ParseTimeOfDay("evening")
	require.NoError(t, err)
	assert.Equal(t, domain.TimeOfDayEvening, tod)

	_, err = domain.ParseTimeOfDay("Evening")
	assert.ErrorIs(t, err, domain.ErrInvalidMediaItem)
}

func TestNormalizeTagNames(t *testing.T) {
	assert.Equal(t, "street art", domain.NormalizeTagName("  Street Art "))
	assert.Equal(t,
		[]string{"protest", "urban"},
		domain.NormalizeTagNames([]string{"Protest", "protest", " Urban ", "", "   "}),
	)
	assert.Empty(t, domain.NormalizeTagNames(nil))
}

func TestStatusTransitions(t *testing.T) {

	t.Run("processing", func(t *testing.T) {
		assert.NoError(t, domain.CheckProcessingTransition(domain.ProcessingStatusPending, domain.ProcessingStatusProcessing))
		assert.NoError(t, domain.CheckProcessingTransition(domain.ProcessingStatusProcessing, domain.ProcessingStatusDone))
		assert.NoError(t, domain.CheckProcessingTransition(domain.ProcessingStatusProcessing, domain.ProcessingStatusFailed))
		assert.NoError(t, domain.CheckProcessingTransition(domain.ProcessingStatusFailed, domain.ProcessingStatusPending))
		assert.NoError(t, domain.CheckProcessingTransition(domain.ProcessingStatusDone, domain.ProcessingStatusDone))
		assert.ErrorIs(t,
			domain.CheckProcessingTransition(domain.ProcessingStatusDone, domain.ProcessingStatusPending),
			domain.ErrInvalidStatusTransition)
	})

	t.Run("moderation moves freely", func(t *testing.T) {
		all := []domain.ModerationStatus{domain.ModerationStatusPending, domain.ModerationStatusApproved, domain.ModerationStatusRejected}
		for _, from := range all {
			for _, to := range all {
				assert.NoError(t, domain.CheckModerationTransition(from, to))
			}
		}
	})

	t.Run("parse", func(t *testing.T) {
		_, err := domain.ParseProcessingStatus("archived")
		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
		_, err = domain.ParseModerationStatus("flagged")
		assert.ErrorIs(t, err, domain.ErrInvalidStatus)

		status, err := domain.ParseModerationStatus("approved")
		require.NoError(t, err)
		assert.Equal(t, domain.ModerationStatusApproved, status)
	})
}

func TestErrorKinds(t *testing.T) {
	wrapped := fmt.Errorf("%w: latitude must be between -90 and 90", domain.ErrInvalidCoordinates)

	assert.True(t, domain.IsValidation(wrapped))
	assert.True(t, domain.IsPublic(wrapped))
	assert.True(t, domain.IsNotFound(domain.ErrMediaItemNotFound))
	assert.True(t, domain.IsBusinessRule(domain.ErrInvalidStatusTransition))
	assert.False(t, domain.IsPublic(errors.New("pq: deadlock detected")))
	assert.False(t, domain.IsPublic(domain.ErrObjectNotFound))
}
