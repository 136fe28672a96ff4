package routes

import (
	"chapa_billing/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathTransactions = "/transactions"
)

func addTransactionRoutes(rg *gin.RouterGroup, transactionHandler *handlers.TransactionHandler) {
	transactions := rg.Group(PathTransactions)
	{
		transactions.POST("", transactionHandler.InitiateTransaction)
		transactions.GET("/:tx_ref", transactionHandler.GetTransactionByTxRef)
		transactions.POST("/:tx_ref/verify", transactionHandler.VerifyTransaction)
	}
}
