package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"souq/internal/domain/entity"
	"souq/internal/domain/service"
	"souq/internal/infra/persistence/memory"
	"souq/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// testEnv wires the full use case layer against in-memory stores so tests
// exercise real edge mutations instead of mock expectations.
type testEnv struct {
	users      *memory.UserStore
	products   *memory.ProductStore
	categories *memory.CategoryStore
	reviews    *memory.ReviewStore

	graph   *RelationshipGraph
	rating  *RatingService
	cascade *CascadeCoordinator
	authz   usecase.Authorizer
	events  *capturingPublisher
	mail    *capturingMailSender

	userSvc     usecase.UserUsecase
	productSvc  usecase.ProductUsecase
	categorySvc usecase.CategoryUsecase
	reviewSvc   usecase.ReviewUsecase
	wishlistSvc usecase.WishlistUsecase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		users:      memory.NewUserStore(),
		products:   memory.NewProductStore(),
		categories: memory.NewCategoryStore(),
		reviews:    memory.NewReviewStore(),
		events:     &capturingPublisher{},
		mail:       &capturingMailSender{},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	env.graph = NewRelationshipGraph(RelationshipGraphParams{
		Users:      env.users,
		Products:   env.products,
		Categories: env.categories,
		Reviews:    env.reviews,
	})
	env.rating = NewRatingService(RatingServiceParams{
		Products: env.products,
		Reviews:  env.reviews,
	})
	env.authz = NewAuthorizer()
	env.cascade = NewCascadeCoordinator(CascadeCoordinatorParams{
		Users:    env.users,
		Products: env.products,
		Reviews:  env.reviews,
		Graph:    env.graph,
		Rating:   env.rating,
		Events:   env.events,
		Logger:   logger,
	})

	env.userSvc = NewUserService(UserServiceParams{
		Users:   env.users,
		Cascade: env.cascade,
		Authz:   env.authz,
		Tokens:  &staticTokenService{},
		Hasher:  &plainHasher{},
		Mail:    env.mail,
		Logger:  logger,
	})
	env.productSvc = NewProductService(ProductServiceParams{
		Products:   env.products,
		Categories: env.categories,
		Graph:      env.graph,
		Cascade:    env.cascade,
		Authz:      env.authz,
	})
	env.categorySvc = NewCategoryService(CategoryServiceParams{
		Categories: env.categories,
	})
	env.reviewSvc = NewReviewService(ReviewServiceParams{
		Users:    env.users,
		Products: env.products,
		Reviews:  env.reviews,
		Graph:    env.graph,
		Rating:   env.rating,
		Cascade:  env.cascade,
		Authz:    env.authz,
		Events:   env.events,
		Logger:   logger,
	})
	env.wishlistSvc = NewWishlistService(WishlistServiceParams{
		Users:    env.users,
		Products: env.products,
		Graph:    env.graph,
	})

	return env
}

// seedUser creates a user directly in the store.
func (env *testEnv) seedUser(t *testing.T, role entity.Role) *entity.User {
	t.Helper()

	now := time.Now()
	user := &entity.User{
		ID:            uuid.New(),
		Name:          "Test User",
		Email:         uuid.NewString() + "@example.com",
		PasswordHash:  "hash:password",
		Role:          role,
		ProductsOwned: []uuid.UUID{},
		WishList:      []uuid.UUID{},
		Reviews:       []uuid.UUID{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, env.users.Create(context.Background(), user))

	return user
}

// seedCategory creates a category directly in the store.
func (env *testEnv) seedCategory(t *testing.T, name string) *entity.Category {
	t.Helper()

	now := time.Now()
	category := &entity.Category{
		ID:        uuid.New(),
		Name:      name,
		Products:  []uuid.UUID{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, env.categories.Create(context.Background(), category))

	return category
}

// seedProduct creates a product through the product service so every edge
// half ends up where the graph would put it.
func (env *testEnv) seedProduct(t *testing.T, owner *entity.User, category *entity.Category, name string) *entity.Product {
	t.Helper()

	product, err := env.productSvc.AddProduct(context.Background(), owner, &usecase.AddProductInput{
		Name:     name,
		Price:    9.99,
		Category: category.ID,
	})
	require.NoError(t, err)

	return product
}

// seedReview creates a review through the review service, edges included.
func (env *testEnv) seedReview(t *testing.T, author *entity.User, product *entity.Product, rating float64) *entity.Review {
	t.Helper()

	review, err := env.reviewSvc.AddReview(context.Background(), env.reloadUser(t, author.ID), product.ID, &usecase.AddReviewInput{
		Rating:  rating,
		Comment: "test comment",
	})
	require.NoError(t, err)

	return review
}

func (env *testEnv) reloadUser(t *testing.T, id uuid.UUID) *entity.User {
	t.Helper()

	user, err := env.users.FindByID(context.Background(), id)
	require.NoError(t, err)

	return user
}

func (env *testEnv) reloadProduct(t *testing.T, id uuid.UUID) *entity.Product {
	t.Helper()

	product, err := env.products.FindByID(context.Background(), id)
	require.NoError(t, err)

	return product
}

func (env *testEnv) reloadCategory(t *testing.T, id uuid.UUID) *entity.Category {
	t.Helper()

	category, err := env.categories.FindByID(context.Background(), id)
	require.NoError(t, err)

	return category
}

// staticTokenService issues fixed tokens; token contents are covered by the
// jwt service's own tests.
type staticTokenService struct{}

func (s *staticTokenService) GenerateTokens(userID uuid.UUID, role entity.Role) (string, string, error) {
	return "access-" + userID.String(), "refresh-" + userID.String(), nil
}

func (s *staticTokenService) ValidateAccessToken(string) (*service.TokenClaims, error) {
	return nil, nil
}

func (s *staticTokenService) ValidateRefreshToken(string) (*service.TokenClaims, error) {
	return nil, nil
}

func (s *staticTokenService) RefreshTokenDuration() time.Duration {
	return time.Hour
}

// plainHasher keeps hashing deterministic and cheap for service tests.
type plainHasher struct{}

func (h *plainHasher) Hash(password string) (string, error) {
	return "hash:" + password, nil
}

func (h *plainHasher) Check(password, hash string) bool {
	return "hash:"+password == hash
}

// capturingMailSender records sent reset mails; Fail makes delivery error.
type capturingMailSender struct {
	sent []*service.PasswordResetMail
	fail bool
}

func (m *capturingMailSender) SendPasswordReset(_ context.Context, mail *service.PasswordResetMail) error {
	if m.fail {
		return errSMTPDown
	}
	m.sent = append(m.sent, mail)

	return nil
}

var errSMTPDown = &smtpDownError{}

type smtpDownError struct{}

func (e *smtpDownError) Error() string { return "smtp unreachable" }

// capturingPublisher records published catalog events.
type capturingPublisher struct {
	events []*service.CatalogEvent
}

func (p *capturingPublisher) PublishCatalogEvent(_ context.Context, event *service.CatalogEvent) error {
	p.events = append(p.events, event)

	return nil
}

func (p *capturingPublisher) Close() error { return nil }
