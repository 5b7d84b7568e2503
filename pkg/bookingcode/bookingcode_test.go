package bookingcode

import (
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGenerator_Generate(t *testing.T) {
	g := New(" glw ")
	g.newID = func() uuid.UUID {
		return uuid.MustParse("a1b2c3d4-0000-4000-8000-000000000000")
	}

	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "GLW-20261018-HYFW", g.Generate(now))
}

func TestGenerator_SkipsBiasedBytes(t *testing.T) {
	g := New("GLW")
	g.newID = func() uuid.UUID {
		return uuid.MustParse("fffc0001-0203-4000-8000-000000000000")
	}

	assert.Equal(t, "GLW-20261018-0123", g.Generate(time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)))
}

func TestGenerator_DrawsAnotherIDWhenBytesRunOut(t *testing.T) {
	ids := []uuid.UUID{
		uuid.MustParse("fcfdfeff-fcfd-4000-8000-fcfdfeff0023"),
		uuid.MustParse("0a0b0c00-0000-4000-8000-000000000000"),
	}
	calls := 0

	g := New("GLW")
	g.newID = func() uuid.UUID {
		id := ids[calls]
		calls++
		return id
	}

	assert.Equal(t, "GLW-20261018-0ZAB", g.Generate(time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 2, calls)
}

func TestGenerator_GenerateFormat(t *testing.T) {
	g := New("GLW")
	code := g.Generate(time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC))

	assert.Regexp(t, regexp.MustCompile(`^GLW-20260105-[0-9A-Z]{4}$`), code)
}

func TestCheckinPayload(t *testing.T) {
	assert.Equal(t, "https://glow.example/checkin/GLW-20261018-A1B2",
		CheckinPayload("https://glow.example/", "GLW-20261018-A1B2"))
}
