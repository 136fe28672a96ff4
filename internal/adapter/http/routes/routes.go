package routes

import (
	"log"
	"os"
	"strconv"

	_ "chapa_billing/docs" // This will be auto-generated
	"chapa_billing/internal/adapter/http/handlers"
	repository2 "chapa_billing/internal/adapter/persistence/repository"
	"chapa_billing/internal/infrastructure/database"
	"chapa_billing/internal/infrastructure/payments"
	"chapa_billing/internal/usecase"
	"chapa_billing/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()

	transactionRepo := repository2.NewTransactionDynamoRepository(ddb)

	var paymentGateway interfaces.IPaymentGateway
	chapaGateway, err := payments.NewChapaGateway(os.Getenv("CHAPA_SECRET_KEY"))
	if err != nil {
		log.Printf("Chapa gateway not configured: %v", err)
	} else {
		paymentGateway = chapaGateway
	}

	transactionUseCase := usecase.NewTransactionUseCase(transactionRepo, paymentGateway)

	transactionHandler := handlers.NewTransactionHandler(transactionUseCase)

	// Public routes
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addTransactionRoutes(v1, transactionHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
