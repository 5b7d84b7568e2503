package bookingcode

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	suffixLength   = 4
	suffixAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	// байты не меньше этого порога отбрасываются, чтобы символы были равновероятны
	unbiasedLimit = 256 - 256%len(suffixAlphabet)
)

// Generator генератор кодов бронирования вида PREFIX-YYYYMMDD-XXXX
type Generator struct {
	prefix string
	newID  func() uuid.UUID
}

// New создает генератор с префиксом бизнеса
func New(prefix string) *Generator {
	return &Generator{
		prefix: strings.ToUpper(strings.TrimSpace(prefix)),
		newID:  uuid.New,
	}
}

// Generate возвращает новый код бронирования
// Дата берется из now в часовом поясе бизнеса
func (g *Generator) Generate(now time.Time) string {
	return fmt.Sprintf("%s-%s-%s", g.prefix, now.Format("20060102"), g.suffix())
}

// suffix набирает символы [0-9A-Z] из случайных байтов UUID v4
func (g *Generator) suffix() string {
	out := make([]byte, 0, suffixLength)
	for len(out) < suffixLength {
		id := g.newID()
		for _, b := range randomBytes(id) {
			if int(b) >= unbiasedLimit {
				continue
			}
			out = append(out, suffixAlphabet[int(b)%len(suffixAlphabet)])
			if len(out) == suffixLength {
				break
			}
		}
	}
	return string(out)
}

// randomBytes байты UUID v4 без битов версии и варианта
func randomBytes(id uuid.UUID) []byte {
	b := make([]byte, 0, 12)
	b = append(b, id[:6]...)
	return append(b, id[10:]...)
}

// CheckinPayload возвращает содержимое QR-кода для отметки о приходе
func CheckinPayload(baseURL, code string) string {
	return fmt.Sprintf("%s/checkin/%s", strings.TrimRight(baseURL, "/"), code)
}
