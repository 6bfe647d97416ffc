package cmd

type Config struct {
	HTTPPort                  string
	DBHost                    string
	DBPort                    string
	DBUser                    string
	DBPassword                string
	DBName                    string
	DBSslMode                 string
	KafkaHost                 string
	KafkaConsumerGroup        string
	KafkaOrderCreatedTopic    string
	KafkaStockValidationTopic string
	KafkaConsumerWorkers      int
	SendGridAPIKey            string
	SendGridFromName          string
	SendGridFromEmail         string
	ValidationTimeoutMinutes  int
}
