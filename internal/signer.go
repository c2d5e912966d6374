package internal

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

const signatureField = "merchantSig"

var escaper = strings.NewReplacer(`\`, `\\`, `:`, `\:`)

type Signer struct {
	secret     string // hex encoded HMAC key
	parameters *ParameterSet
}

func NewSigner(secret string, parameters *ParameterSet) *Signer {
	return &Signer{
		secret:     secret,
		parameters: parameters,
	}
}

// CreateSignature signs every parameter except the signature field itself.
func (s *Signer) CreateSignature() (string, error) {
	return Sign(s.secret, Canonicalize(s.parameters.Without(signatureField)))
}

// Canonicalize produces the signing string: escaped keys sorted bytewise,
// followed by their escaped values in the same order, joined by colons.
func Canonicalize(parameters *ParameterSet) string {
	keys := parameters.Keys()
	sort.Strings(keys)

	fields := make([]string, 0, 2*len(keys))
	for _, key := range keys {
		fields = append(fields, escape(key))
	}
	for _, key := range keys {
		fields = append(fields, escape(parameters.Get(key)))
	}
	return strings.Join(fields, ":")
}

// escape replaces \ with \\ and : with \: in a single pass, so an inserted
// backslash is never escaped again.
func escape(value string) string {
	return escaper.Replace(value)
}

// Sign returns the Base64 encoded HMAC-SHA256 of message keyed with the
// hex-decoded secret.
func Sign(secret, message string) (string, error) {
	key, err := hex.DecodeString(secret)
	if err != nil {
		return "", fmt.Errorf("decode secret: %w: %v", ErrInvalidKey, err)
	}
	hash := mac256(message, key)
	return base64.StdEncoding.EncodeToString(hash), nil
}

func mac256(message string, key []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(message))
	return mac.Sum(nil)
}
