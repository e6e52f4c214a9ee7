package constants

// NSQ topics
const (
	TopicTransactionCreated = "transaction.created"
)
