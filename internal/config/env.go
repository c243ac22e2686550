package config

// Environment variables used by the application
const (
	// Ethereum rpc url - should be websockets url, new block notifications
	// require a subscription capable transport.
	RPC_URL_ETHEREUM = "RPC_URL_ETHEREUM"

	// Http api port. Default is 3001
	API_PORT = "API_PORT"

	// Http api bind address. Default is 127.0.0.1
	API_BIND_ADDR = "API_BIND_ADDR"

	// debug, info, warn or error. Default is info
	LOG_LEVEL = "LOG_LEVEL"

	// Symbol used for native asset events and filtering. Default is ETH
	NATIVE_SYMBOL = "NATIVE_SYMBOL"
	// Native whale threshold in whole units. Default is 100
	NATIVE_WHALE_THRESHOLD = "NATIVE_WHALE_THRESHOLD"
	// Reference USD price of the native asset. Default is 2500
	NATIVE_USD_PRICE = "NATIVE_USD_PRICE"

	// Capacity of the recent whale events buffer. Default is 100
	RECENT_EVENTS_CAPACITY = "RECENT_EVENTS_CAPACITY"

	// Delay between upstream connection attempts. Default is 10s
	RECONNECT_BACKOFF = "RECONNECT_BACKOFF"
	// Maximum number of consecutive failed connection attempts, 0 means
	// retry forever. Default is 0
	MAX_RECONNECT_ATTEMPTS = "MAX_RECONNECT_ATTEMPTS"
	// Timeout applied to every upstream rpc call. Default is 15s
	RPC_CALL_TIMEOUT = "RPC_CALL_TIMEOUT"
	// Max concurrent receipt fetches per block. Default is 16
	RECEIPT_CONCURRENCY = "RECEIPT_CONCURRENCY"

	// Outbound queue size of every push subscriber. Default is 64
	SUBSCRIBER_QUEUE_SIZE = "SUBSCRIBER_QUEUE_SIZE"
	// Number of recently emitted event ids remembered for deduplication.
	// Default is 4096
	DEDUP_CACHE_SIZE = "DEDUP_CACHE_SIZE"
	// Time given to in-flight work on shutdown. Default is 5s
	SHUTDOWN_TIMEOUT = "SHUTDOWN_TIMEOUT"

	// Optional json file replacing the built-in token registry
	TOKEN_REGISTRY_FILE = "TOKEN_REGISTRY_FILE"

	// Optional comma separated kafka brokers. Whale events are exported
	// when set.
	KAFKA_BROKERS = "KAFKA_BROKERS"
	// Kafka topic for exported whale events. Default is whale-transactions
	KAFKA_TOPIC = "KAFKA_TOPIC"
)
