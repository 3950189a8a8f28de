package utils // package utils provides helpers for building and verifying table QR targets

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// ErrInvalidQRToken is returned when a QR token fails verification.
var ErrInvalidQRToken = errors.New("invalid qr token")

// qrClaims is the payload of a table token.  Printed QR codes stay on the
// table for months, so the token carries no expiry; rotating QR_SECRET
// invalidates every printed code at once.
type qrClaims struct {
	Table string `json:"tbl"`
	jwt.RegisteredClaims
}

// QRSigner signs and verifies table tokens with an HS256 secret.
type QRSigner struct {
	secret  []byte
	baseURL string
}

// NewQRSigner returns a signer.  baseURL is the customer console origin,
// e.g. "http://localhost:3000".
func NewQRSigner(secret, baseURL string) *QRSigner {
	return &QRSigner{secret: []byte(secret), baseURL: baseURL}
}

// Token signs the table id.
func (s *QRSigner) Token(tableID string) (string, error) {
	claims := qrClaims{
		Table: tableID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  "table",
			IssuedAt: jwt.NewNumericDate(time.Now().UTC()),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Target builds the URL encoded into a table's QR code: the customer
// console page for the table with the signed token as a query parameter.
func (s *QRSigner) Target(tableID string) (string, error) {
	tok, err := s.Token(tableID)
	if err != nil {
		return "", fmt.Errorf("sign qr token: %w", err)
	}
	return fmt.Sprintf("%s/table/%s?token=%s", s.baseURL, url.PathEscape(tableID), url.QueryEscape(tok)), nil
}

// Verify checks the signature and returns the table id carried by token.
func (s *QRSigner) Verify(token string) (string, error) {
	var claims qrClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidQRToken, err)
	}
	if claims.Table == "" {
		return "", fmt.Errorf("%w: missing table", ErrInvalidQRToken)
	}
	return claims.Table, nil
}
