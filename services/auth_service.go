package services

import (
	"context"
	"net/http"

	"shutterbay-backend/models"
	"shutterbay-backend/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type UpdateProfileRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Password string `json:"password"`
}

// AuthService owns registration, login and profile maintenance, including the
// favorites list.
type AuthService struct {
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	tokens      *TokenService
}

func NewAuthService(userRepo repository.UserRepository, productRepo repository.ProductRepository, tokens *TokenService) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		productRepo: productRepo,
		tokens:      tokens,
	}
}

// Register creates a new (non-admin) user account.
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*models.User, *ServiceError) {
	if err := ValidatePassword(req.Password); err != nil {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: err.Error()}
	}

	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, &ServiceError{StatusCode: http.StatusConflict, Message: "Email already registered"}
	} else if err != mongo.ErrNoDocuments {
		zap.L().Error("Failed to check existing email", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to register"}
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		zap.L().Error("Failed to hash password", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to register"}
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Phone:    req.Phone,
		Address:  req.Address,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		zap.L().Error("Failed to create user", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to register"}
	}
	return user, nil
}

// Login verifies credentials and issues a bearer token. Invalid email and
// invalid password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, *ServiceError) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return "", nil, &ServiceError{StatusCode: http.StatusUnauthorized, Message: "Invalid email or password"}
		}
		zap.L().Error("Failed to look up user", zap.Error(err))
		return "", nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to log in"}
	}
	if !CheckPassword(user.Password, password) {
		return "", nil, &ServiceError{StatusCode: http.StatusUnauthorized, Message: "Invalid email or password"}
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		zap.L().Error("Failed to sign token", zap.Error(err))
		return "", nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to log in"}
	}
	return token, user, nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, *ServiceError) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "User not found"}
		}
		zap.L().Error("Failed to fetch user", zap.String("user_id", userID.Hex()), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to fetch profile"}
	}
	return user, nil
}

// UpdateProfile applies the provided fields; empty fields are left unchanged.
func (s *AuthService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, req *UpdateProfileRequest) (*models.User, *ServiceError) {
	updates := bson.M{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.Address != "" {
		updates["address"] = req.Address
	}
	if req.Password != "" {
		if err := ValidatePassword(req.Password); err != nil {
			return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: err.Error()}
		}
		hash, err := HashPassword(req.Password)
		if err != nil {
			zap.L().Error("Failed to hash password", zap.Error(err))
			return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to update profile"}
		}
		updates["password"] = hash
	}

	if len(updates) > 0 {
		if err := s.userRepo.Update(ctx, userID, updates); err != nil {
			zap.L().Error("Failed to update user", zap.String("user_id", userID.Hex()), zap.Error(err))
			return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to update profile"}
		}
	}
	return s.GetProfile(ctx, userID)
}

// ListFavorites resolves the user's favorites into product documents.
// References to deleted products are skipped.
func (s *AuthService) ListFavorites(ctx context.Context, userID primitive.ObjectID) ([]models.Product, *ServiceError) {
	user, serr := s.GetProfile(ctx, userID)
	if serr != nil {
		return nil, serr
	}

	resolved, err := s.productRepo.FindByIDs(ctx, user.Favorites)
	if err != nil {
		zap.L().Error("Failed to resolve favorites", zap.String("user_id", userID.Hex()), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to fetch favorites"}
	}

	products := make([]models.Product, 0, len(user.Favorites))
	for _, id := range user.Favorites {
		if product := resolved[id.Hex()]; product != nil {
			product.Resolve()
			products = append(products, *product)
		}
	}
	return products, nil
}

func (s *AuthService) AddFavorite(ctx context.Context, userID, productID primitive.ObjectID) *ServiceError {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if err == mongo.ErrNoDocuments {
			return &ServiceError{StatusCode: http.StatusNotFound, Message: "Product not found"}
		}
		zap.L().Error("Failed to look up product", zap.String("product_id", productID.Hex()), zap.Error(err))
		return &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to update favorites"}
	}
	if err := s.userRepo.AddFavorite(ctx, userID, productID); err != nil {
		zap.L().Error("Failed to add favorite", zap.String("user_id", userID.Hex()), zap.Error(err))
		return &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to update favorites"}
	}
	return nil
}

// RemoveFavorite is idempotent; removing an absent favorite is a no-op.
func (s *AuthService) RemoveFavorite(ctx context.Context, userID, productID primitive.ObjectID) *ServiceError {
	if err := s.userRepo.RemoveFavorite(ctx, userID, productID); err != nil {
		zap.L().Error("Failed to remove favorite", zap.String("user_id", userID.Hex()), zap.Error(err))
		return &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to update favorites"}
	}
	return nil
}
