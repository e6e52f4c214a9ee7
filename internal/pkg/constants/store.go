package constants

// Document store names
const (
	CollectionTransactions = "transactions"
	TableTransactions      = "transactions"
)
