package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	httpadp "lendit-backend/internal/adapter/http"
	idemp "lendit-backend/internal/adapter/middleware"
	"lendit-backend/internal/adapter/repository/mysql"
	"lendit-backend/internal/config"
	domainPayment "lendit-backend/internal/domain/payment"
	"lendit-backend/internal/infrastructure/cache"
	"lendit-backend/internal/infrastructure/db"
	"lendit-backend/internal/usecase/agreement"
	"lendit-backend/internal/usecase/contract"
	"lendit-backend/internal/usecase/payment"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	agreements := mysql.NewAgreementRepository(gdb)
	transactions := mysql.NewTransactionRepository(gdb)
	notifications := mysql.NewNotificationRepository(gdb)
	guow := mysql.NewGormUoW(gdb)

	docs := contract.NewTextGenerator(contract.DirStore{Dir: cfg.ContractsDir})

	agreementUC := agreement.NewUsecase(agreements, notifications, guow, docs)
	paymentUC := payment.NewUsecase(agreements, transactions, notifications, payment.Config{
		MerchantVPA:          cfg.MerchantVPA,
		DefaultCryptoNetwork: domainPayment.Network(cfg.DefaultCryptoNetwork),
	})

	h := httpadp.NewHandler()
	agreementH := httpadp.NewAgreementHandler(agreementUC)
	paymentH := httpadp.NewPaymentHandler(paymentUC)
	notificationH := httpadp.NewNotificationHandler(notifications)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover())
	e.Use(idemp.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))

	// routes
	e.GET("/health", h.Health)

	e.POST("/loan-requests", agreementH.CreateRequest)
	e.GET("/loan-requests", agreementH.BrowseRequests)
	e.GET("/loan-requests/mine", agreementH.MyRequests)
	e.POST("/loan-requests/:agreement_id/claim", agreementH.Claim)
	e.DELETE("/loan-requests/:agreement_id", agreementH.Cancel)

	e.POST("/loan-offers", agreementH.CreateOffer)

	e.GET("/agreements", agreementH.MyAgreements)
	e.GET("/agreements/:agreement_id", agreementH.GetAgreement)
	e.POST("/agreements/:agreement_id/accept", agreementH.Accept)
	e.POST("/agreements/:agreement_id/reject", agreementH.Reject)
	e.POST("/agreements/:agreement_id/complete", agreementH.Complete)
	e.GET("/agreements/:agreement_id/transactions", paymentH.ListTransactions)

	e.GET("/payment-methods", paymentH.Methods)
	e.POST("/payments", paymentH.ProcessPayment)
	e.POST("/transactions/:transaction_id/finalize", paymentH.Finalize)

	e.GET("/notifications", notificationH.List)
	e.POST("/notifications/:notification_id/read", notificationH.MarkRead)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
