// Haven - Handcrafted Artisan Marketplace
// Copyright 2026 Caleb Morton (cmorton)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cmorton/haven

package events

import (
	"github.com/ThreeDotsLabs/watermill"

	"github.com/cmorton/haven/internal/logging"
)

// wmLogger adapts Watermill's logger interface to zerolog. Watermill's
// trace level collapses into debug.
type wmLogger struct {
	fields watermill.LogFields
}

var _ watermill.LoggerAdapter = wmLogger{}

// NewLoggerAdapter returns a Watermill logger backed by the process
// logger.
func NewLoggerAdapter() watermill.LoggerAdapter {
	return wmLogger{}
}

func (l wmLogger) Error(msg string, err error, fields watermill.LogFields) {
	ev := logging.Error().Err(err)
	for k, v := range l.fields.Add(fields) {
		ev = ev.Interface(k, v)
	}
	ev.Msg(msg)
}

func (l wmLogger) Info(msg string, fields watermill.LogFields) {
	ev := logging.Info()
	for k, v := range l.fields.Add(fields) {
		ev = ev.Interface(k, v)
	}
	ev.Msg(msg)
}

func (l wmLogger) Debug(msg string, fields watermill.LogFields) {
	ev := logging.Debug()
	for k, v := range l.fields.Add(fields) {
		ev = ev.Interface(k, v)
	}
	ev.Msg(msg)
}

func (l wmLogger) Trace(msg string, fields watermill.LogFields) {
	l.Debug(msg, fields)
}

func (l wmLogger) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return wmLogger{fields: l.fields.Add(fields)}
}
