package logger

import "go.uber.org/zap"

// New builds a zap logger tuned to the environment: human-readable output
// in development, JSON in production.
func New(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
