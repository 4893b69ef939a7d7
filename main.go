package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resale/app"
	"resale/domain"
	"resale/infra/postgres"
	"resale/infra/rabbitmq"
	"resale/internal/middleware"
	"resale/internal/notifier"
	"resale/pkg/config"
	"resale/pkg/events"
	"resale/pkg/httperror"
	"resale/pkg/razorpay"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Request any
type Response any

type HandlerInterface[R Request, Res Response] interface {
	Handle(ctx context.Context, req *R) (*Res, error)
}

func handle[R Request, Res Response](handler HandlerInterface[R, Res]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req R

		if err := c.BodyParser(&req); err != nil && !errors.Is(err, fiber.ErrUnprocessableEntity) {
			return writeError(c, httperror.BadRequest(
				"request.invalid_body",
				"Invalid body",
				fiber.Map{"error": err.Error()},
			))
		}

		if err := c.ParamsParser(&req); err != nil {
			return writeError(c, httperror.BadRequest(
				"request.invalid_path_params",
				"Invalid path params",
				fiber.Map{"error": err.Error()},
			))
		}

		if err := c.QueryParser(&req); err != nil {
			return writeError(c, httperror.BadRequest(
				"request.invalid_query_params",
				"Invalid query params",
				fiber.Map{"error": err.Error()},
			))
		}

		if err := c.ReqHeaderParser(&req); err != nil {
			return writeError(c, httperror.BadRequest(
				"request.invalid_headers",
				"Invalid headers",
				fiber.Map{"error": err.Error()},
			))
		}

		ctx := c.UserContext()

		res, err := handler.Handle(ctx, &req)
		if err != nil {
			return writeError(c, err)
		}

		return c.JSON(fiber.Map{
			"success": true,
			"data":    res,
		})
	}
}

// withFiberCtx exposes the raw fiber context to handlers that read multipart
// bodies directly.
func withFiberCtx() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		if ctx == nil {
			ctx = context.Background()
		}
		c.SetUserContext(context.WithValue(ctx, "fiber", c))
		return c.Next()
	}
}

func main() {
	zapConfig := zap.NewDevelopmentConfig()
	zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logger, _ := zapConfig.Build()
	zap.ReplaceGlobals(logger)
	defer logger.Sync()

	appConfig := config.Read()
	zap.L().Info("app starting...", zap.String("service", appConfig.ServiceName))

	server := fiber.New(fiber.Config{
		IdleTimeout:  5 * time.Second,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		Concurrency:  256 * 1024,
	})

	pgRepository := postgres.NewPgRepository(
		appConfig.PostgresHost,
		appConfig.PostgresDatabase,
		appConfig.PostgresUsername,
		appConfig.PostgresPassword,
		appConfig.PostgresPort,
		appConfig.PostgresSSLMode,
	)
	defer pgRepository.Close()

	var eventPublisher events.Publisher
	if appConfig.RabbitMQURL != "" {
		publisher, err := rabbitmq.NewPublisher(appConfig.RabbitMQURL, appConfig.ServiceName)
		if err != nil {
			zap.L().Warn("Event publishing disabled, broker unavailable", zap.Error(err))
		} else {
			eventPublisher = publisher
			defer publisher.Close()
		}
	}

	gateway := razorpay.NewClient(
		appConfig.RazorpayURI,
		appConfig.RazorpayUsername,
		appConfig.RazorpayPassword,
		appConfig.RazorpayAccount,
	)

	dispatcher := notifier.New(pgRepository, 256)
	defer dispatcher.Close()

	authAny := middleware.NewAuthMiddleware()
	authUser := middleware.NewAuthMiddleware(domain.RoleUser, domain.RoleAdmin)
	authAdmin := middleware.NewAuthMiddleware(domain.RoleAdmin)

	api := server.Group("/api/v1")

	// Auth
	api.Post("/auth/signup", handle[app.SignupRequest, app.SignupResponse](app.NewSignupHandler(pgRepository, gateway, eventPublisher)))
	api.Post("/auth/login", handle[app.LoginRequest, app.LoginResponse](app.NewLoginHandler(pgRepository)))
	api.Post("/auth/forgot-password", handle[app.ForgotPasswordRequest, app.ForgotPasswordResponse](app.NewForgotPasswordHandler(pgRepository, eventPublisher)))
	api.Post("/auth/reset-password", handle[app.ResetPasswordRequest, app.ResetPasswordResponse](app.NewResetPasswordHandler(pgRepository)))
	api.Post("/auth/resend-otp", handle[app.ResendOtpRequest, app.ForgotPasswordResponse](app.NewResendOtpHandler(pgRepository, eventPublisher)))
	api.Post("/auth/refresh-token", handle[app.RefreshTokenRequest, app.RefreshTokenResponse](app.NewRefreshTokenHandler(pgRepository)))
	api.Post("/admin/login", handle[app.AdminLoginRequest, app.LoginResponse](app.NewAdminLoginHandler(pgRepository)))

	// Users
	api.Get("/users/profile", authAny, handle[app.GetProfileRequest, app.GetProfileResponse](app.NewGetProfileHandler(pgRepository)))
	api.Put("/users/profile", authAny, handle[app.UpdateProfileRequest, app.UpdateProfileResponse](app.NewUpdateProfileHandler(pgRepository, gateway)))
	api.Put("/users/mobile", authAny, handle[app.UpdateMobileRequest, app.UpdateMobileResponse](app.NewUpdateMobileHandler(pgRepository, eventPublisher)))
	api.Post("/users/mobile/verify", authAny, handle[app.VerifyMobileRequest, app.VerifyMobileResponse](app.NewVerifyMobileHandler(pgRepository)))
	api.Post("/users/mobile/resend-otp", authAny, handle[app.ResendMobileOtpRequest, app.ResendMobileOtpResponse](app.NewResendMobileOtpHandler(pgRepository, eventPublisher)))
	api.Put("/users/fund", authAny, handle[app.UpdateFundRequest, app.UpdateFundResponse](app.NewUpdateFundHandler(pgRepository, gateway)))
	api.Put("/users/password", authAny, handle[app.UpdatePasswordRequest, app.UpdatePasswordResponse](app.NewUpdatePasswordHandler(pgRepository)))

	// Notifications
	api.Get("/users/notifications", authAny, handle[app.ListNotificationsRequest, app.ListNotificationsResponse](app.NewListNotificationsHandler(pgRepository)))
	api.Get("/users/notifications/unread-count", authAny, handle[app.UnreadNotificationsRequest, app.UnreadNotificationsResponse](app.NewUnreadNotificationsHandler(pgRepository)))
	api.Put("/users/notifications/read", authAny, handle[app.ReadNotificationsRequest, app.ReadNotificationsResponse](app.NewReadNotificationsHandler(pgRepository)))
	api.Delete("/users/notifications", authAny, handle[app.DeleteNotificationRequest, app.DeleteNotificationResponse](app.NewDeleteNotificationHandler(pgRepository)))

	// Products
	api.Get("/products/categories", handle[app.GetCategoriesRequest, app.GetCategoriesResponse](app.NewGetCategoriesHandler(pgRepository)))
	api.Get("/products", authUser, handle[app.ListProductsRequest, app.ListProductsResponse](app.NewListProductsHandler(pgRepository)))
	api.Post("/products", authUser, handle[app.CreateProductRequest, app.CreateProductResponse](app.NewCreateProductHandler(pgRepository, dispatcher, eventPublisher)))
	api.Put("/products", authUser, handle[app.UpdateProductRequest, app.UpdateProductResponse](app.NewUpdateProductHandler(pgRepository)))
	api.Put("/products/bid", authAny, handle[app.RespondBidRequest, app.RespondBidResponse](app.NewRespondBidHandler(pgRepository, dispatcher, eventPublisher)))
	api.Get("/products/:productId", authAny, handle[app.GetProductRequest, app.GetProductResponse](app.NewGetProductHandler(pgRepository)))

	// Admin
	api.Get("/admin/users", authAdmin, handle[app.ListUsersRequest, app.ListUsersResponse](app.NewListUsersHandler(pgRepository)))
	api.Put("/admin/users/block", authAdmin, handle[app.BlockUserRequest, app.BlockUserResponse](app.NewBlockUserHandler(pgRepository)))
	api.Get("/admin/products", authAdmin, handle[app.ListProductsRequest, app.ListProductsResponse](app.NewListProductsHandler(pgRepository)))
	api.Post("/admin/products/bid", authAdmin, handle[app.CreateBidRequest, app.CreateBidResponse](app.NewCreateBidHandler(pgRepository, dispatcher, eventPublisher)))
	api.Put("/admin/products/picked-up/date", authAdmin, handle[app.EstimatePickupRequest, app.EstimatePickupResponse](app.NewEstimatePickupHandler(pgRepository, dispatcher, eventPublisher)))
	api.Put("/admin/products/picked-up", authAdmin, handle[app.MarkPickedUpRequest, app.MarkPickedUpResponse](app.NewMarkPickedUpHandler(pgRepository, dispatcher, eventPublisher)))
	api.Put("/admin/products/payout", authAdmin, handle[app.PayoutRequest, app.PayoutResponse](app.NewPayoutHandler(pgRepository, gateway, dispatcher, eventPublisher)))
	api.Post("/admin/categories", authAdmin, handle[app.CreateCategoryRequest, app.CreateCategoryResponse](app.NewCreateCategoryHandler(pgRepository)))
	api.Delete("/admin/categories/:categoryId", authAdmin, handle[app.DeleteCategoryRequest, app.DeleteCategoryResponse](app.NewDeleteCategoryHandler(pgRepository)))

	// Files
	api.Post("/files", authAny, withFiberCtx(), handle[app.UploadFileRequest, app.UploadFileResponse](app.NewUploadFileHandler()))
	api.Delete("/files/*", authAny, handle[app.DeleteFileRequest, app.DeleteFileResponse](app.NewDeleteFileHandler()))

	// Hooks (gateway callbacks, unauthenticated by design)
	api.Post("/hooks", handle[app.CreateHookRequest, app.CreateHookResponse](app.NewCreateHookHandler(pgRepository)))

	go func() {
		if err := server.Listen(fmt.Sprintf("0.0.0.0:%s", appConfig.Port)); err != nil {
			zap.L().Error("Failed to start server", zap.Error(err))
			os.Exit(1)
		}
	}()

	zap.L().Info("Server started on port", zap.String("port", appConfig.Port))

	gracefulShutdown(server)
}

func gracefulShutdown(server *fiber.App) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	zap.L().Info("Shutting down server...")

	if err := server.ShutdownWithTimeout(5 * time.Second); err != nil {
		zap.L().Error("Error during server shutdown", zap.Error(err))
	}

	zap.L().Info("Server gracefully stopped")
}

func writeError(c *fiber.Ctx, err error) error {
	var httpErr *httperror.Error
	if errors.As(err, &httpErr) {
		payload := fiber.Map{
			"success": false,
			"code":    httpErr.Code,
			"message": httpErr.Message,
		}

		if httpErr.Details != nil {
			payload["details"] = httpErr.Details
		}

		if httpErr.Status >= fiber.StatusInternalServerError {
			zap.L().Error("Handler returned server error", zap.String("code", httpErr.Code), zap.Error(httpErr))
		} else {
			zap.L().Warn("Handler returned client error", zap.String("code", httpErr.Code), zap.Error(httpErr))
		}

		return c.Status(httpErr.Status).JSON(payload)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		zap.L().Warn("Fiber validation error", zap.String("message", fiberErr.Message), zap.Error(err))
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"success": false,
			"code":    "request.invalid",
			"message": fiberErr.Message,
		})
	}

	zap.L().Error("Unhandled error", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"code":    "internal_server_error",
		"message": "Internal server error.",
	})
}
