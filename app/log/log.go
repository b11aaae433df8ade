// Copyright 2023 qbee.io
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Supported logs severity levels.
const (
	ERROR = iota
	WARNING
	INFO
	DEBUG
)

var zapLevels = map[int]zapcore.Level{
	ERROR:   zapcore.ErrorLevel,
	WARNING: zapcore.WarnLevel,
	INFO:    zapcore.InfoLevel,
	DEBUG:   zapcore.DebugLevel,
}

var levelNames = map[string]int{
	"ERROR":   ERROR,
	"WARNING": WARNING,
	"INFO":    INFO,
	"DEBUG":   DEBUG,
}

var (
	level       = WARNING
	atomicLevel = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	logger      = newLogger(zapcore.Lock(os.Stderr))
)

// newLogger returns a console logger writing to sink.
// Diagnostics never share a stream with the report, so stderr is the default sink.
func newLogger(sink zapcore.WriteSyncer) *zap.SugaredLogger {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), sink, atomicLevel)

	return zap.New(core).Sugar()
}

func logf(msgLevel int, msg string, args ...any) {
	if level < msgLevel {
		return
	}

	switch msgLevel {
	case ERROR:
		logger.Errorf(msg, args...)
	case WARNING:
		logger.Warnf(msg, args...)
	case INFO:
		logger.Infof(msg, args...)
	default:
		logger.Debugf(msg, args...)
	}
}

// Debugf logs message with DEBUG severity.
func Debugf(msg string, args ...any) {
	logf(DEBUG, msg, args...)
}

// Infof logs message with INFO severity.
func Infof(msg string, args ...any) {
	logf(INFO, msg, args...)
}

// Warnf logs message with WARNING severity.
func Warnf(msg string, args ...any) {
	logf(WARNING, msg, args...)
}

// Errorf logs message with ERROR severity.
func Errorf(msg string, args ...any) {
	logf(ERROR, msg, args...)
}

// SetLevel sets current log level.
func SetLevel(newLevel int) {
	level = newLevel
	atomicLevel.SetLevel(zapLevels[newLevel])
}

// ParseLevel returns log level for its name (DEBUG, INFO, WARNING or ERROR).
func ParseLevel(name string) (int, error) {
	newLevel, ok := levelNames[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unsupported log level: %s", name)
	}

	return newLevel, nil
}

// SetOutput redirects log messages to the provided sink.
func SetOutput(sink zapcore.WriteSyncer) {
	logger = newLogger(sink)
}

// Sync flushes buffered log entries.
func Sync() {
	_ = logger.Sync()
}
