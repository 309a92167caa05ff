package main

import (
	"context"
	"log/slog"
	"os"

	"souq/config"
	"souq/internal/delivery"
	"souq/internal/delivery/http"
	"souq/internal/delivery/http/middleware"
	"souq/internal/delivery/http/router/handler"
	"souq/internal/domain/repository"
	"souq/internal/infra/auth"
	logs "souq/internal/infra/log"
	"souq/internal/infra/mail"
	"souq/internal/infra/persistence/memory"
	mongodb "souq/internal/infra/persistence/mongo"
	"souq/internal/infra/pubsub"
	"souq/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
		),
		pubsub.Module,
	)
}

type repoSet struct {
	fx.Out

	Users      repository.UserRepository
	Products   repository.ProductRepository
	Categories repository.CategoryRepository
	Reviews    repository.ReviewRepository
}

// newRepositories wires the persistence layer. Without a mongo section in the
// config the service runs on in-memory stores, which is what dev mode and the
// test suite use.
func newRepositories(lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger) (repoSet, error) {
	if cfg.Mongo == nil {
		logger.Warn("No mongo configuration, falling back to in-memory stores")

		return repoSet{
			Users:      memory.NewUserStore(),
			Products:   memory.NewProductStore(),
			Categories: memory.NewCategoryStore(),
			Reviews:    memory.NewReviewStore(),
		}, nil
	}

	db, err := mongodb.New(mongodb.Params{
		Lifecycle: lc,
		Config:    cfg,
		Logger:    logger,
	})
	if err != nil {
		return repoSet{}, err
	}

	return repoSet{
		Users:      mongodb.NewUserRepository(db),
		Products:   mongodb.NewProductRepository(db),
		Categories: mongodb.NewCategoryRepository(db),
		Reviews:    mongodb.NewReviewRepository(db),
	}, nil
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			newRepositories,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			mail.NewMailSender,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewRelationshipGraph,
			impl.NewAuthorizer,
			impl.NewRatingService,
			impl.NewCascadeCoordinator,
			impl.NewUserService,
			impl.NewProductService,
			impl.NewCategoryService,
			impl.NewReviewService,
			impl.NewWishlistService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewUserHandler,
			handler.NewProductHandler,
			handler.NewCategoryHandler,
			handler.NewReviewHandler,
			handler.NewWishlistHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
