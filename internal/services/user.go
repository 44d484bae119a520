package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/markjakearzadon/denovi-gobackend/internal/models"
	"github.com/markjakearzadon/denovi-gobackend/internal/sanitizer"
)

const UserCollectionName = "user"

// UserService manages the administrators of the announcement screen.
type UserService struct {
	collection *mongo.Collection
}

func NewUserService(db *mongo.Database) *UserService {
	return &UserService{collection: db.Collection(UserCollectionName)}
}

// CreateUser stores a new administrator with a bcrypt-hashed password and
// returns its id.
func (s *UserService) CreateUser(ctx context.Context, fullName, email, password string) (string, error) {
	if password == "" {
		return "", errors.New("password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	user := models.User{
		ID:        primitive.NewObjectID(),
		FullName:  sanitizer.Text(fullName, models.MaxCreatedByLength),
		Email:     normalizeEmail(email),
		HPassword: string(hash),
		CreatedAt: time.Now(),
	}

	result, err := s.collection.InsertOne(ctx, user)
	if err != nil {
		return "", err
	}

	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

// Login returns the administrator matching email and password.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := s.collection.FindOne(ctx, bson.M{"email": normalizeEmail(email)}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		log.Error().Err(err).Str("section", "users").Str("method", "Login").Msg("Unable to fetch user")
		return nil, persistenceError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HPassword), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
