package auth

import (
	"encoding/base64"
	"encoding/json"
	"time"
)

// opaquePayload is the legacy token body: {"userId":1,"exp":<epoch millis>}.
type opaquePayload struct {
	UserID *int   `json:"userId"`
	Exp    *int64 `json:"exp"`
}

// OpaqueCodec issues unsigned base64(JSON) tokens. Kept for compatibility
// with front ends built against the demo API; it is not a security boundary.
type OpaqueCodec struct {
	validity time.Duration
	now      Clock
}

func NewOpaqueCodec(validity time.Duration, now Clock) *OpaqueCodec {
	if now == nil {
		now = time.Now
	}
	return &OpaqueCodec{validity: validity, now: now}
}

func (c *OpaqueCodec) Issue(subjectID int) (string, error) {
	exp := c.now().Add(c.validity).UnixMilli()
	b, err := json.Marshal(opaquePayload{UserID: &subjectID, Exp: &exp})
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

func (c *OpaqueCodec) Verify(token string) (int, bool) {
	raw, ok := decodeBase64(token)
	if !ok {
		return 0, false
	}

	var p opaquePayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return 0, false
	}
	if p.UserID == nil || p.Exp == nil {
		return 0, false
	}
	if *p.Exp < c.now().UnixMilli() {
		return 0, false
	}
	return *p.UserID, true
}

// decodeBase64 accepts padded and unpadded, standard and URL alphabets.
func decodeBase64(s string) ([]byte, bool) {
	for _, enc := range []*base64.Encoding{
		base64.StdEncoding, base64.RawStdEncoding, base64.URLEncoding, base64.RawURLEncoding,
	} {
		if b, err := enc.DecodeString(s); err == nil {
			return b, true
		}
	}
	return nil, false
}
