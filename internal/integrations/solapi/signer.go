package solapi

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02T15:04:05.000Z"

// Signer builds the HMAC-SHA256 Authorization header
type Signer struct {
	apiKey    string
	apiSecret string
	now       func() time.Time
	salt      func() string
}

func NewSigner(apiKey, apiSecret string) *Signer {
	return &Signer{
		apiKey:    apiKey,
		apiSecret: apiSecret,
		now:       time.Now,
		salt:      uuid.NewString,
	}
}

// Header returns a fresh Authorization value; every request needs a new salt
func (s *Signer) Header() string {
	date := s.now().UTC().Format(dateLayout)
	salt := s.salt()
	return fmt.Sprintf("HMAC-SHA256 apiKey=%s, date=%s, salt=%s, signature=%s",
		s.apiKey, date, salt, Sign(s.apiSecret, date, salt))
}

// Sign returns hex(HMAC-SHA256(secret, date+salt))
func Sign(secret, date, salt string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(date + salt))
	return hex.EncodeToString(mac.Sum(nil))
}
