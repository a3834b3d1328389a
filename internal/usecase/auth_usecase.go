package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"health-marketplace-backend/internal/converter"
	"health-marketplace-backend/internal/delivery/dto"
	"health-marketplace-backend/internal/delivery/http/middleware"
	"health-marketplace-backend/internal/domain/entity"
	"health-marketplace-backend/internal/domain/repository"
	"health-marketplace-backend/internal/service"
	"health-marketplace-backend/pkg/jwt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const birthDateLayout = "2006-01-02"

var (
	ErrInvalidBirthDate    = errors.New("birth_date must be formatted as " + birthDateLayout)
	ErrEmailAlreadyExists  = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	ErrUserNotFound        = errors.New("user not found")
)

type AuthUsecase interface {
	RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.UserResponse, error)
	RegisterProfessional(ctx context.Context, req *dto.RegisterProfessionalRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context) error
	GetCurrentUser(ctx context.Context) (*dto.UserResponse, error)
}

type authUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	userRepo         repository.UserRepository
	patientRepo      repository.PatientProfileRepository
	professionalRepo repository.ProfessionalProfileRepository
	activityRepo     repository.ActivityRepository
	offeringRepo     repository.ProfessionalActivityRepository
	auditService     service.AuditService
	jwtService       *jwt.JWTService
	redisClient      *redis.Client
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	patientRepo repository.PatientProfileRepository,
	professionalRepo repository.ProfessionalProfileRepository,
	activityRepo repository.ActivityRepository,
	offeringRepo repository.ProfessionalActivityRepository,
	auditService service.AuditService,
	jwtService *jwt.JWTService,
	redisClient *redis.Client,
) AuthUsecase {
	return &authUsecase{
		db:               db,
		log:              log,
		userRepo:         userRepo,
		patientRepo:      patientRepo,
		professionalRepo: professionalRepo,
		activityRepo:     activityRepo,
		offeringRepo:     offeringRepo,
		auditService:     auditService,
		jwtService:       jwtService,
		redisClient:      redisClient,
	}
}

// RegisterPatient creates a user with the patient role plus its profile in a
// single transaction. Patients need no approval and can log in immediately.
func (u *authUsecase) RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.UserResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	existing, err := u.userRepo.FindByEmail(tx, req.Email)
	if err != nil {
		u.log.Warnf("Failed to check email %s: %+v", req.Email, err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		RoleID:   entity.RoleIDPatient,
		Email:    req.Email,
		Password: string(hashedPassword),
		FullName: req.FullName,
		Phone:    req.Phone,
	}
	if err := u.userRepo.Create(tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	profile := &entity.PatientProfile{
		UserID:   user.ID,
		Document: req.Document,
		Address:  req.Address,
		City:     req.City,
		State:    req.State,
		Phone:    req.Phone,
	}
	if req.BirthDate != "" {
		birthDate, err := time.Parse(birthDateLayout, req.BirthDate)
		if err != nil {
			return nil, ErrInvalidBirthDate
		}
		profile.BirthDate = &birthDate
	}
	if err := u.patientRepo.Create(tx, profile); err != nil {
		u.log.Warnf("Failed to create patient profile: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogAction(ctx, tx, &user.ID, entity.AuditActionUserRegister, "user", user.ID.String(), nil, map[string]string{"role": "patient"}); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Patient registered: id=%s, email=%s", user.ID, user.Email)
	return converter.UserToResponse(user), nil
}

// RegisterProfessional creates a professional user, their profile in pending
// state, and any initial offerings. Offerings referencing unknown activities
// are skipped rather than failing the whole registration.
func (u *authUsecase) RegisterProfessional(ctx context.Context, req *dto.RegisterProfessionalRequest) (*dto.UserResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	existing, err := u.userRepo.FindByEmail(tx, req.Email)
	if err != nil {
		u.log.Warnf("Failed to check email %s: %+v", req.Email, err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	pending := entity.ApprovalStatusPending
	user := &entity.User{
		RoleID:         entity.RoleIDProfessional,
		Email:          req.Email,
		Password:       string(hashedPassword),
		FullName:       req.FullName,
		Phone:          req.Phone,
		ApprovalStatus: &pending,
	}
	if err := u.userRepo.Create(tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	profile := &entity.ProfessionalProfile{
		UserID:         user.ID,
		DocumentNumber: req.DocumentNumber,
		DiplomaFile:    req.DiplomaFile,
		Bio:            req.Bio,
		ApprovalStatus: entity.ApprovalStatusPending,
	}
	if err := u.professionalRepo.Create(tx, profile); err != nil {
		u.log.Warnf("Failed to create professional profile: %+v", err)
		return nil, err
	}

	for _, o := range req.Offerings {
		activity, err := u.activityRepo.FindByID(tx, o.ActivityID)
		if err != nil {
			u.log.Warnf("Failed to find activity %d: %+v", o.ActivityID, err)
			return nil, err
		}
		if activity == nil {
			u.log.Warnf("Skipping offering with unknown activity %d for professional %d", o.ActivityID, profile.ID)
			continue
		}

		price := decimal.Zero
		if o.Price != "" {
			price, err = decimal.NewFromString(o.Price)
			if err != nil {
				return nil, fmt.Errorf("invalid price %q for activity %d", o.Price, o.ActivityID)
			}
		}
		offering := &entity.ProfessionalActivity{
			ProfessionalID: profile.ID,
			ActivityID:     o.ActivityID,
			Description:    o.Description,
			Price:          price,
			Availability:   o.Availability,
		}
		if err := u.offeringRepo.Create(tx, offering); err != nil {
			u.log.Warnf("Failed to create offering: %+v", err)
			return nil, err
		}
	}

	if err := u.auditService.LogAction(ctx, tx, &user.ID, entity.AuditActionUserRegister, "user", user.ID.String(), nil, map[string]string{"role": "professional"}); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Professional registered: id=%s, email=%s, profile=%d", user.ID, user.Email, profile.ID)
	return converter.UserToResponse(user), nil
}

// Login verifies credentials, issues an access/refresh token pair and records
// both token ids in Redis so they can be revoked before expiry.
func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := u.userRepo.FindByEmail(u.db.WithContext(ctx), req.Email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	tokens, err := u.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := u.auditService.LogAction(ctx, u.db.WithContext(ctx), &user.ID, entity.AuditActionUserLogin, "user", user.ID.String(), nil, nil); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	u.log.Infof("User logged in: id=%s, role=%s", user.ID, entity.RoleName(user.RoleID))
	return tokens, nil
}

// RefreshToken exchanges a valid, unrevoked refresh token for a new token
// pair. The old refresh token is revoked so it can be used only once.
func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}
	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidRefreshToken
	}

	refreshKey := fmt.Sprintf("refresh_token:%s:%s", claims.UserID.String(), claims.TokenID)
	exists, err := u.redisClient.Exists(ctx, refreshKey).Result()
	if err != nil {
		u.log.Warnf("Failed to check refresh token in redis: %+v", err)
		return nil, err
	}
	if exists == 0 {
		return nil, ErrInvalidRefreshToken
	}

	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), claims.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", claims.UserID, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidRefreshToken
	}

	if err := u.redisClient.Del(ctx, refreshKey).Err(); err != nil {
		u.log.Warnf("Failed to revoke old refresh token: %+v", err)
		return nil, err
	}

	return u.issueTokens(ctx, user)
}

// Logout revokes the caller's access token. The refresh token stays valid
// until used or expired; clients drop it on logout.
func (u *authUsecase) Logout(ctx context.Context) error {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return ErrActorNotFound
	}
	tokenID, ok := middleware.GetTokenIDFromContext(ctx)
	if !ok {
		return ErrActorNotFound
	}

	accessKey := fmt.Sprintf("access_token:%s:%s", userID.String(), tokenID)
	if err := u.redisClient.Del(ctx, accessKey).Err(); err != nil {
		u.log.Warnf("Failed to revoke access token: %+v", err)
		return err
	}

	u.log.Infof("User logged out: id=%s", userID)
	return nil
}

// GetCurrentUser returns the authenticated user's record.
func (u *authUsecase) GetCurrentUser(ctx context.Context) (*dto.UserResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrActorNotFound
	}

	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", userID, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

func (u *authUsecase) issueTokens(ctx context.Context, user *entity.User) (*dto.TokenResponse, error) {
	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(user.ID, user.Email, user.RoleID)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}
	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(user.ID, user.Email, user.RoleID)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	if err := u.storeToken(ctx, "access_token", user.ID, accessTokenID, u.jwtService.GetAccessExpiry()); err != nil {
		return nil, err
	}
	if err := u.storeToken(ctx, "refresh_token", user.ID, refreshTokenID, u.jwtService.GetRefreshExpiry()); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

func (u *authUsecase) storeToken(ctx context.Context, prefix string, userID uuid.UUID, tokenID string, expiry time.Duration) error {
	key := fmt.Sprintf("%s:%s:%s", prefix, userID.String(), tokenID)
	if err := u.redisClient.Set(ctx, key, "1", expiry).Err(); err != nil {
		u.log.Warnf("Failed to store token in redis: %+v", err)
		return err
	}
	return nil
}
