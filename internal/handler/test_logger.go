package handler

import "pdf-workbench/internal/domain"

// Mock logger used by handler package tests.
type MockHandlerLogger struct {
	errors []string
}

func NewMockHandlerLogger() *MockHandlerLogger {
	return &MockHandlerLogger{}
}

func (l *MockHandlerLogger) Info(msg string, fields ...interface{}) {}
func (l *MockHandlerLogger) Error(msg string, err error, fields ...interface{}) {
	l.errors = append(l.errors, msg)
}
func (l *MockHandlerLogger) Debug(msg string, fields ...interface{}) {}
func (l *MockHandlerLogger) Warn(msg string, fields ...interface{})  {}

var _ domain.Logger = (*MockHandlerLogger)(nil)
