// Package jwtclaims reads the claims of a bearer token without verifying it.
//
// Verification belongs to the server. Nothing in this package proves a token
// is authentic; it only exposes what the token says about itself.
package jwtclaims

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	domainauth "github.com/sportsevents/eventdesk/internal/domain/auth"
	apperrors "github.com/sportsevents/eventdesk/internal/errors"
)

// Subject claims in lookup order. The paired backend signs `id`; `sub` is the registered name.
var subjectKeys = []string{"sub", "id", "userId", "_id"}

var errEmptyToken = errors.New("token is empty")

// Decoder implements ports.SessionDecoder on top of golang-jwt's unverified parser.
type Decoder struct{}

// Decode is DecodeUnverified; it satisfies ports.SessionDecoder.
func (d Decoder) Decode(token string) (domainauth.Claims, error) {
	return d.DecodeUnverified(token)
}

// DecodeUnverified splits the token and decodes its payload segment.
// Every failure is returned as a decode AppError; malformed input never panics.
func (Decoder) DecodeUnverified(token string) (claims domainauth.Claims, err error) {
	defer func() {
		if r := recover(); r != nil {
			claims = domainauth.Claims{}
			err = apperrors.Decode("decode token", fmt.Errorf("parser panic: %v", r))
		}
	}()

	token = strings.TrimSpace(token)
	if token == "" {
		return domainauth.Claims{}, apperrors.Decode("decode token", errEmptyToken)
	}

	mc := jwt.MapClaims{}
	if _, _, perr := jwt.NewParser().ParseUnverified(token, mc); perr != nil {
		return domainauth.Claims{}, apperrors.Decode("decode token", perr)
	}

	exp, perr := mc.GetExpirationTime()
	if perr != nil {
		return domainauth.Claims{}, apperrors.Decode("decode token expiry", perr)
	}

	out := domainauth.Claims{
		Role:    stringClaim(mc, "role"),
		Subject: firstStringClaim(mc, subjectKeys...),
	}
	if exp != nil {
		t := exp.Time
		out.ExpiresAt = &t
	}
	return out, nil
}

func stringClaim(mc jwt.MapClaims, key string) string {
	if v, ok := mc[key].(string); ok {
		return v
	}
	return ""
}

func firstStringClaim(mc jwt.MapClaims, keys ...string) string {
	for _, k := range keys {
		if v := stringClaim(mc, k); v != "" {
			return v
		}
	}
	return ""
}
