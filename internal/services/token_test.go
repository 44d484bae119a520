package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/markjakearzadon/denovi-gobackend/internal/models"
)

func TestTokenService_IssueAndParse(t *testing.T) {
	s := NewTokenService("test-secret", time.Hour)
	u := &models.User{ID: primitive.NewObjectID(), FullName: "Father John"}

	token, err := s.Issue(u)
	require.NoError(t, err)

	claims, err := s.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID.Hex(), claims.Subject)
	assert.Equal(t, "Father John", claims.Name)
}

func TestTokenService_RejectsExpired(t *testing.T) {
	s := NewTokenService("test-secret", time.Minute)
	issuedAt := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return issuedAt }

	token, err := s.Issue(&models.User{ID: primitive.NewObjectID()})
	require.NoError(t, err)

	s.now = func() time.Time { return issuedAt.Add(2 * time.Minute) }
	_, err = s.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_RejectsForeignSignature(t *testing.T) {
	token, err := NewTokenService("other", time.Hour).Issue(&models.User{ID: primitive.NewObjectID()})
	require.NoError(t, err)

	_, err = NewTokenService("test-secret", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewTokenService("test-secret", time.Hour).Parse("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
