/*
 * Copyright 2026 The Yorkie Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yorkie-team/coedit/api/types"
)

var (
	// ErrUnexpectedSigningMethod is returned when the signing method is unexpected.
	ErrUnexpectedSigningMethod = errors.New("unexpected signing method")
)

// UserClaims is a JWT claims struct for a user. The subject is the id of
// the user.
type UserClaims struct {
	jwt.RegisteredClaims

	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

// TokenManager issues and verifies HS256 identity tokens.
type TokenManager struct {
	secretKey     string
	tokenDuration time.Duration
}

// NewTokenManager creates a new TokenManager. Tokens generated with a zero
// duration never expire.
func NewTokenManager(secretKey string, tokenDuration time.Duration) *TokenManager {
	return &TokenManager{
		secretKey:     secretKey,
		tokenDuration: tokenDuration,
	}
}

// Generate generates a new token for the user.
func (m *TokenManager) Generate(user types.User) (string, error) {
	claims := UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  user.ID,
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
		Name:   user.Name,
		Email:  user.Email,
		Avatar: user.Avatar,
	}
	if m.tokenDuration > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(m.tokenDuration))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(m.secretKey))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signedToken, nil
}

// Verify verifies the given token.
func (m *TokenManager) Verify(token string) (*UserClaims, error) {
	claims := &UserClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		_, ok := token.Method.(*jwt.SigningMethodHMAC)
		if !ok {
			return nil, fmt.Errorf("%s: %w", token.Method.Alg(), ErrUnexpectedSigningMethod)
		}
		return []byte(m.secretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	return claims, nil
}

// Authenticate returns the user of the given token.
func (m *TokenManager) Authenticate(_ context.Context, token string) (*types.User, error) {
	if token == "" {
		return nil, fmt.Errorf("empty token: %w", ErrUnauthenticated)
	}

	claims, err := m.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", err, ErrUnauthenticated)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token without subject: %w", ErrUnauthenticated)
	}

	return &types.User{
		ID:     claims.Subject,
		Name:   claims.Name,
		Email:  claims.Email,
		Avatar: claims.Avatar,
	}, nil
}
