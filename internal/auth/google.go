package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	DefaultCertsURL = "https://www.googleapis.com/oauth2/v3/certs"

	keysMaxAge        = time.Hour
	keysMinRefetch    = time.Minute
	certsFetchTimeout = 10 * time.Second
)

var googleIssuers = map[string]bool{
	"accounts.google.com":         true,
	"https://accounts.google.com": true,
}

// Identity is what a verified identity token says about its holder.
type Identity struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

// IdentityProvider exchanges an identity token issued by an external provider
// for the identity it asserts.
type IdentityProvider interface {
	Verify(ctx context.Context, idToken string) (Identity, error)
	Configured() bool
}

type jsonWebKey struct {
	Kid string `json:"kid"`
	Kty string `json:"kty"`
	N   string `json:"n"`
	E   string `json:"e"`
}

type jsonWebKeySet struct {
	Keys []jsonWebKey `json:"keys"`
}

type googleClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	jwt.RegisteredClaims
}

// GoogleVerifier checks Google ID tokens locally: RS256 signature against
// Google's published keys, audience, issuer and expiry.
type GoogleVerifier struct {
	clientID string
	certsURL string
	client   *http.Client

	mu        sync.RWMutex
	keys      map[string]*rsa.PublicKey
	fetchedAt time.Time
}

func NewGoogleVerifier(clientID, certsURL string) *GoogleVerifier {
	if certsURL == "" {
		certsURL = DefaultCertsURL
	}
	return &GoogleVerifier{
		clientID: clientID,
		certsURL: certsURL,
		client:   &http.Client{Timeout: certsFetchTimeout},
		keys:     make(map[string]*rsa.PublicKey),
	}
}

func (v *GoogleVerifier) Configured() bool {
	return v.clientID != ""
}

func (v *GoogleVerifier) ClientID() string {
	return v.clientID
}

func (v *GoogleVerifier) Verify(ctx context.Context, idToken string) (Identity, error) {
	if !v.Configured() {
		return Identity{}, ErrProviderNotConfigured
	}
	idToken = strings.TrimSpace(idToken)
	if idToken == "" {
		return Identity{}, ErrInvalidIdentityToken
	}

	var claims googleClaims
	_, err := jwt.ParseWithClaims(idToken, &claims, func(token *jwt.Token) (interface{}, error) {
		kid, ok := token.Header["kid"].(string)
		if !ok || kid == "" {
			return nil, fmt.Errorf("token missing kid header")
		}
		return v.publicKey(ctx, kid)
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithAudience(v.clientID),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, ErrProviderUnavailable) {
			return Identity{}, err
		}
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidIdentityToken, err)
	}

	if !googleIssuers[claims.Issuer] {
		return Identity{}, fmt.Errorf("%w: wrong issuer", ErrInvalidIdentityToken)
	}
	if claims.Email == "" || !claims.EmailVerified {
		return Identity{}, fmt.Errorf("%w: unverified email", ErrInvalidIdentityToken)
	}

	return Identity{
		Subject: claims.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
		Picture: claims.Picture,
	}, nil
}

// publicKey returns the cached key for kid, refreshing the key set when it is
// stale or does not know kid yet.
func (v *GoogleVerifier) publicKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.mu.RLock()
	key, ok := v.keys[kid]
	age := time.Since(v.fetchedAt)
	v.mu.RUnlock()

	if ok && age < keysMaxAge {
		return key, nil
	}
	if !ok && age < keysMinRefetch && !v.fetchedAt.IsZero() {
		return nil, fmt.Errorf("unknown key id %q", kid)
	}

	if err := v.refresh(ctx); err != nil {
		return nil, err
	}

	v.mu.RLock()
	key, ok = v.keys[kid]
	v.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown key id %q", kid)
	}
	return key, nil
}

func (v *GoogleVerifier) refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.certsURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: certs status %d", ErrProviderUnavailable, resp.StatusCode)
	}

	var set jsonWebKeySet
	if err := json.NewDecoder(resp.Body).Decode(&set); err != nil {
		return fmt.Errorf("%w: decode certs: %v", ErrProviderUnavailable, err)
	}

	keys := make(map[string]*rsa.PublicKey, len(set.Keys))
	for _, jwk := range set.Keys {
		if jwk.Kty != "RSA" {
			continue
		}
		key, err := rsaPublicKey(jwk)
		if err != nil {
			continue
		}
		keys[jwk.Kid] = key
	}

	v.mu.Lock()
	v.keys = keys
	v.fetchedAt = time.Now()
	v.mu.Unlock()
	return nil
}

func rsaPublicKey(jwk jsonWebKey) (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(jwk.N)
	if err != nil {
		return nil, fmt.Errorf("decode modulus: %w", err)
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(jwk.E)
	if err != nil {
		return nil, fmt.Errorf("decode exponent: %w", err)
	}

	var e int
	for _, b := range eBytes {
		e = e<<8 + int(b)
	}
	return &rsa.PublicKey{N: new(big.Int).SetBytes(nBytes), E: e}, nil
}
