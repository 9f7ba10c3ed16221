package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comphub.backend/internal/domain/entities"
	domainerrors "comphub.backend/internal/domain/errors"
	"comphub.backend/internal/interfaces/http/middleware"
	"comphub.backend/internal/usecases"
	"comphub.backend/pkg/jwt"
	"comphub.backend/pkg/storage"
)

type verificationRepoStub struct {
	createFn      func(ctx context.Context, doc *entities.VerificationDocument) error
	getByIDFn     func(ctx context.Context, id uuid.UUID) (*entities.VerificationDocument, error)
	listByUserFn  func(ctx context.Context, userID uuid.UUID) ([]*entities.VerificationDocument, error)
	existsFn      func(ctx context.Context, userID uuid.UUID, docType entities.DocumentType, docNumber string) (bool, error)
	updateFn      func(ctx context.Context, doc *entities.VerificationDocument) error
	listPendingFn func(ctx context.Context, limit, offset int) ([]*entities.VerificationDocument, int64, error)
}

func (s *verificationRepoStub) Create(ctx context.Context, doc *entities.VerificationDocument) error {
	if s.createFn != nil {
		return s.createFn(ctx, doc)
	}
	return nil
}

func (s *verificationRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*entities.VerificationDocument, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *verificationRepoStub) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.VerificationDocument, error) {
	if s.listByUserFn != nil {
		return s.listByUserFn(ctx, userID)
	}
	return nil, nil
}

func (s *verificationRepoStub) Exists(ctx context.Context, userID uuid.UUID, docType entities.DocumentType, docNumber string) (bool, error) {
	if s.existsFn != nil {
		return s.existsFn(ctx, userID, docType, docNumber)
	}
	return false, nil
}

func (s *verificationRepoStub) Update(ctx context.Context, doc *entities.VerificationDocument) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, doc)
	}
	return nil
}

func (s *verificationRepoStub) ListPending(ctx context.Context, limit, offset int) ([]*entities.VerificationDocument, int64, error) {
	if s.listPendingFn != nil {
		return s.listPendingFn(ctx, limit, offset)
	}
	return nil, 0, nil
}

type adminEnv struct {
	router     *gin.Engine
	jwtService *jwt.JWTService
	admin      *entities.User
	buyer      *entities.User
}

func newAdminEnv(t *testing.T, users *userRepoStub, docs *verificationRepoStub) *adminEnv {
	t.Helper()

	admin := &entities.User{
		ID:                 uuid.New(),
		Username:           "admin",
		Email:              "admin@example.com",
		UserType:           entities.UserTypeAdmin,
		VerificationStatus: entities.VerificationVerified,
	}
	buyer := &entities.User{
		ID:                 uuid.New(),
		Username:           "otieno",
		Email:              "otieno@example.com",
		UserType:           entities.UserTypeBuyer,
		VerificationStatus: entities.VerificationPending,
	}

	baseGetByID := users.getByIDFn
	users.getByIDFn = func(ctx context.Context, id uuid.UUID) (*entities.User, error) {
		switch id {
		case admin.ID:
			return admin, nil
		case buyer.ID:
			return buyer, nil
		}
		if baseGetByID != nil {
			return baseGetByID(ctx, id)
		}
		return nil, domainerrors.ErrNotFound
	}

	jwtService := newHandlerJWT()
	audit := newHandlerAudit()
	account := usecases.NewAccountUsecase(users, &profileRepoStub{}, &vendorRepoStub{}, passthroughUOW{}, jwtService, audit)
	verification := usecases.NewVerificationUsecase(docs, users, storage.NewLocalStore(t.TempDir()), audit)
	h := NewAdminHandler(account, verification)

	router := gin.New()
	group := router.Group("/api/v1/admin",
		middleware.AuthMiddleware(jwtService),
		middleware.RequireRole(string(entities.UserTypeAdmin)),
	)
	group.GET("/users", h.ListUsers)
	group.PUT("/users/:id/type", h.ChangeUserType)
	group.PUT("/users/:id/verification-status", h.SetVerificationStatus)
	group.PUT("/users/:id/trust-score", h.UpdateTrustScore)
	group.DELETE("/users/:id", h.DeleteUser)
	group.GET("/verification/pending", h.ListPendingDocuments)
	group.PUT("/verification/documents/:id", h.ReviewDocument)

	return &adminEnv{router: router, jwtService: jwtService, admin: admin, buyer: buyer}
}

func (e *adminEnv) authHeader(t *testing.T, user *entities.User) map[string]string {
	t.Helper()
	pair, err := e.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.UserType))
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + pair.AccessToken}
}

func TestAdminHandler_ListUsers(t *testing.T) {
	users := &userRepoStub{}
	env := newAdminEnv(t, users, &verificationRepoStub{})

	var gotSearch string
	users.listFn = func(_ context.Context, search string, limit, offset int) ([]*entities.User, int64, error) {
		gotSearch = search
		return []*entities.User{env.buyer}, 1, nil
	}

	w := doJSON(t, env.router, http.MethodGet, "/api/v1/admin/users?search=otieno", nil, env.authHeader(t, env.admin))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "otieno", gotSearch)

	body := decodeBody(t, w)
	list, ok := body["users"].([]interface{})
	require.True(t, ok)
	require.Len(t, list, 1)
}

func TestAdminHandler_ListUsers_NonAdminBlocked(t *testing.T) {
	env := newAdminEnv(t, &userRepoStub{}, &verificationRepoStub{})

	w := doJSON(t, env.router, http.MethodGet, "/api/v1/admin/users", nil, env.authHeader(t, env.buyer))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminHandler_ChangeUserType_PromotesToVendor(t *testing.T) {
	users := &userRepoStub{}
	env := newAdminEnv(t, users, &verificationRepoStub{})

	var newType entities.UserType
	users.updateTypeFn = func(_ context.Context, id uuid.UUID, userType entities.UserType) error {
		require.Equal(t, env.buyer.ID, id)
		newType = userType
		return nil
	}

	w := doJSON(t, env.router, http.MethodPut, "/api/v1/admin/users/"+env.buyer.ID.String()+"/type", gin.H{
		"userType": "vendor",
	}, env.authHeader(t, env.admin))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, entities.UserTypeVendor, newType)

	body := decodeBody(t, w)
	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "vendor", user["userType"])
}

func TestAdminHandler_ChangeUserType_InvalidID(t *testing.T) {
	env := newAdminEnv(t, &userRepoStub{}, &verificationRepoStub{})

	w := doJSON(t, env.router, http.MethodPut, "/api/v1/admin/users/not-a-uuid/type", gin.H{
		"userType": "vendor",
	}, env.authHeader(t, env.admin))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid account id", decodeBody(t, w)["error"])
}

func TestAdminHandler_SetVerificationStatus(t *testing.T) {
	users := &userRepoStub{}
	env := newAdminEnv(t, users, &verificationRepoStub{})

	var gotStatus entities.VerificationStatus
	users.setStatusFn = func(_ context.Context, id uuid.UUID, status entities.VerificationStatus, _ time.Time) error {
		require.Equal(t, env.buyer.ID, id)
		gotStatus = status
		return nil
	}

	w := doJSON(t, env.router, http.MethodPut, "/api/v1/admin/users/"+env.buyer.ID.String()+"/verification-status", gin.H{
		"status": "suspended",
	}, env.authHeader(t, env.admin))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, entities.VerificationSuspended, gotStatus)
}

func TestAdminHandler_UpdateTrustScore_OutOfRange(t *testing.T) {
	users := &userRepoStub{}
	env := newAdminEnv(t, users, &verificationRepoStub{})
	users.updateTrustFn = func(_ context.Context, _ uuid.UUID, _ float64) error {
		t.Fatal("out-of-range score must not reach the repository")
		return nil
	}

	w := doJSON(t, env.router, http.MethodPut, "/api/v1/admin/users/"+env.buyer.ID.String()+"/trust-score", gin.H{
		"trustScore": 12.5,
	}, env.authHeader(t, env.admin))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminHandler_DeleteUser(t *testing.T) {
	users := &userRepoStub{}
	env := newAdminEnv(t, users, &verificationRepoStub{})

	var deleted uuid.UUID
	users.softDeleteFn = func(_ context.Context, id uuid.UUID) error {
		deleted = id
		return nil
	}

	w := doJSON(t, env.router, http.MethodDelete, "/api/v1/admin/users/"+env.buyer.ID.String(), nil, env.authHeader(t, env.admin))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, env.buyer.ID, deleted)
}

func TestAdminHandler_ListPendingDocuments(t *testing.T) {
	docs := &verificationRepoStub{}
	env := newAdminEnv(t, &userRepoStub{}, docs)

	doc := &entities.VerificationDocument{
		ID:             uuid.New(),
		UserID:         env.buyer.ID,
		DocumentType:   entities.DocumentNationalID,
		DocumentNumber: "12345678",
		SubmittedAt:    time.Now(),
	}
	docs.listPendingFn = func(_ context.Context, limit, offset int) ([]*entities.VerificationDocument, int64, error) {
		return []*entities.VerificationDocument{doc}, 1, nil
	}

	w := doJSON(t, env.router, http.MethodGet, "/api/v1/admin/verification/pending", nil, env.authHeader(t, env.admin))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	list, ok := body["documents"].([]interface{})
	require.True(t, ok)
	require.Len(t, list, 1)
}

func TestAdminHandler_ReviewDocument_ApproveVerifiesAccount(t *testing.T) {
	users := &userRepoStub{}
	docs := &verificationRepoStub{}
	env := newAdminEnv(t, users, docs)

	doc := &entities.VerificationDocument{
		ID:             uuid.New(),
		UserID:         env.buyer.ID,
		DocumentType:   entities.DocumentNationalID,
		DocumentNumber: "12345678",
		SubmittedAt:    time.Now(),
	}
	docs.getByIDFn = func(_ context.Context, id uuid.UUID) (*entities.VerificationDocument, error) {
		if id == doc.ID {
			return doc, nil
		}
		return nil, domainerrors.ErrNotFound
	}

	var reviewed *entities.VerificationDocument
	docs.updateFn = func(_ context.Context, d *entities.VerificationDocument) error {
		reviewed = d
		return nil
	}

	var promoted entities.VerificationStatus
	users.setStatusFn = func(_ context.Context, id uuid.UUID, status entities.VerificationStatus, _ time.Time) error {
		require.Equal(t, env.buyer.ID, id)
		promoted = status
		return nil
	}

	w := doJSON(t, env.router, http.MethodPut, "/api/v1/admin/verification/documents/"+doc.ID.String(), gin.H{
		"approve": true,
		"notes":   "checks out",
	}, env.authHeader(t, env.admin))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NotNil(t, reviewed)
	assert.True(t, reviewed.IsApproved)
	assert.Equal(t, "checks out", reviewed.VerificationNotes)
	require.True(t, reviewed.VerifiedBy.Valid)
	assert.Equal(t, env.admin.ID, reviewed.VerifiedBy.UUID)
	assert.Equal(t, entities.VerificationVerified, promoted)
}

func TestAdminHandler_ReviewDocument_NotFound(t *testing.T) {
	env := newAdminEnv(t, &userRepoStub{}, &verificationRepoStub{})

	w := doJSON(t, env.router, http.MethodPut, "/api/v1/admin/verification/documents/"+uuid.NewString(), gin.H{
		"approve": false,
		"notes":   "document is blurry",
	}, env.authHeader(t, env.admin))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
