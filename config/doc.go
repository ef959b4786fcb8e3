// Package config loads the service configuration.
//
// Values come from config.yml, then a .env file, then the process
// environment, each layer overriding the previous one. Environment variable
// names map onto nested keys by underscores: MODE sets mode,
// OPENAI_API_KEY sets openai.api_key, CACHE_REDIS_ADDR sets cache.redis.addr.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Load applies defaults and validates; remote mode requires an API key.
package config
