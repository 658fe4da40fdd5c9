package rabbitmq

type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// InvalidationQueueName очередь событий, сбрасывающих кэш отчётов.
const InvalidationQueueName = "reports.invalidate"

// GetInvalidationQueues привязывает очередь инвалидации к событиям
// всех четырёх таблиц записей: изменение любой из них делает
// закэшированные отчёты устаревшими.
func GetInvalidationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: InvalidationQueueName, RoutingKey: "financial_entries.changed"},
		{QueueName: InvalidationQueueName, RoutingKey: "subscriptions.changed"},
		{QueueName: InvalidationQueueName, RoutingKey: "subscription_payments.changed"},
		{QueueName: InvalidationQueueName, RoutingKey: "sales.changed"},
	}
}
