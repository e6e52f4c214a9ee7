package constants

// Redis key formats
const (
	KeyTransaction          = "transaction:%s"               // Format: transaction:{id}
	KeyTransactionsAll      = "transactions:all"             // Set of every transaction id
	KeyTransactionsYear     = "transactions:year:%d"         // Format: transactions:year:{year}
	KeyUserTransactions     = "user:%s:transactions"         // Format: user:{user_id}:transactions
	KeyUserTransactionsYear = "user:%s:transactions:year:%d" // Format: user:{user_id}:transactions:year:{year}
)
