package logger

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

var Logger *logrus.Logger

// Initialize sets up the logger with proper configuration
func Initialize() {
	Logger = logrus.New()

	// Set log level based on environment
	logLevel := os.Getenv("LOG_LEVEL")
	var level logrus.Level
	switch logLevel {
	case "DEBUG":
		level = logrus.DebugLevel
	case "INFO":
		level = logrus.InfoLevel
	case "WARN":
		level = logrus.WarnLevel
	case "ERROR":
		level = logrus.ErrorLevel
	default:
		level = logrus.InfoLevel
	}

	Logger.SetLevel(level)
	Logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	// Application logs go to a file when LOG_DIR is set, stdout otherwise
	if logsDir := os.Getenv("LOG_DIR"); logsDir != "" {
		if err := os.MkdirAll(logsDir, 0755); err != nil {
			fmt.Printf("Failed to create logs directory: %v\n", err)
			return
		}

		logFile, err := os.OpenFile(
			fmt.Sprintf("%s/servicedesk.log", logsDir),
			os.O_CREATE|os.O_WRONLY|os.O_APPEND,
			0666,
		)
		if err != nil {
			fmt.Printf("Failed to open log file: %v\n", err)
			return
		}

		Logger.SetOutput(logFile)
	}

	Logger.WithFields(logrus.Fields{
		"log_level": level.String(),
	}).Info("Logging system initialized")
}

// GetLogger returns the configured logger instance
func GetLogger() *logrus.Logger {
	if Logger == nil {
		Initialize()
	}
	return Logger
}

// WithUser creates a logger with user context
func WithUser(userID uint) *logrus.Entry {
	return GetLogger().WithFields(logrus.Fields{
		"user_id":   userID,
		"component": "user_service",
	})
}

// WithIncident creates a logger with incident context
func WithIncident(incidentID uint) *logrus.Entry {
	return GetLogger().WithFields(logrus.Fields{
		"incident_id": incidentID,
		"component":   "incident_service",
	})
}

// WithError creates a logger with error context
func WithError(err error, component string) *logrus.Entry {
	return GetLogger().WithFields(logrus.Fields{
		"error":     err.Error(),
		"component": component,
	})
}

// Log levels convenience functions (with fields)
func Debug(msg string, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	GetLogger().WithFields(fields).Debug(msg)
}

func Info(msg string, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	GetLogger().WithFields(fields).Info(msg)
}

func Warn(msg string, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	GetLogger().WithFields(fields).Warn(msg)
}

func Error(msg string, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	GetLogger().WithFields(fields).Error(msg)
}

func Fatal(msg string, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	GetLogger().WithFields(fields).Fatal(msg)
}
