package app

import "github.com/heroiclabs/nakama-common/runtime"

// nopLogger stands in when the Service is used outside a Nakama runtime.
type nopLogger struct{}

var _ runtime.Logger = nopLogger{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) WithField(string, interface{}) runtime.Logger {
	return nopLogger{}
}
func (nopLogger) WithFields(map[string]interface{}) runtime.Logger {
	return nopLogger{}
}
func (nopLogger) Fields() map[string]interface{} {
	return nil
}
