// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package config holds the user-editable runtime configuration of a paper
// frame: the broker connection, topics, wake-up interval and firmware
// location. Records survive restarts through a Store.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

var (
	// ErrTooLong is returned when a value exceeds the capacity of its field.
	ErrTooLong = errors.New("config: value too long")

	// ErrInvalid is returned for values that cannot be parsed or are out of
	// range.
	ErrInvalid = errors.New("config: invalid value")

	// ErrUnknownKey is returned for keys that do not name a field.
	ErrUnknownKey = errors.New("config: unknown key")
)

// Field capacities, in bytes.
const (
	MaxServerLen     = 39
	MaxClientNameLen = 20
	MaxTopicLen      = 127
	MaxURLLen        = 127
	MaxUserLen       = 63
	MaxPasswordLen   = 63
)

// Defaults.
const (
	DefaultPort              = 1883
	DefaultUpdateStatusTopic = "stat/display/needUpdate"
	DefaultCommandTopic      = "cmd/display/upload"
	DefaultSleepTime         = 60 * time.Second
)

// Keys used by FromValues, Values, Get and Set.
const (
	KeyServer       = "server"
	KeyPort         = "port"
	KeyClientName   = "clientName"
	KeyUpdateTopic  = "updateTopic"
	KeyCommandTopic = "commandTopic"
	KeySleepTime    = "sleepTime"
	KeyFirmwareURL  = "firmwareUrl"
	KeyUser         = "user"
	KeyPassword     = "password"
)

// Keys lists every key in display order.
var Keys = []string{
	KeyServer,
	KeyPort,
	KeyClientName,
	KeyUpdateTopic,
	KeyCommandTopic,
	KeySleepTime,
	KeyFirmwareURL,
	KeyUser,
	KeyPassword,
}

// Bounded is a string with a maximum length in bytes.
type Bounded struct {
	value string
	max   int
}

// NewBounded returns s as a Bounded string of at most max bytes. Longer
// values are rejected, never truncated.
func NewBounded(s string, max int) (Bounded, error) {
	if len(s) > max {
		return Bounded{max: max}, fmt.Errorf("%w: %d bytes, at most %d allowed", ErrTooLong, len(s), max)
	}
	return Bounded{value: s, max: max}, nil
}

func mustBounded(s string, max int) Bounded {
	b, err := NewBounded(s, max)
	if err != nil {
		panic(err)
	}
	return b
}

// String returns the value.
func (b Bounded) String() string {
	return b.value
}

// Max returns the capacity of the field.
func (b Bounded) Max() int {
	return b.max
}

// BrokerAuth holds broker credentials. Records without it connect
// anonymously.
type BrokerAuth struct {
	User     Bounded
	Password Bounded
}

// Record is one complete configuration.
type Record struct {
	MQTTServer        Bounded
	MQTTPort          int
	MQTTClientName    Bounded
	UpdateStatusTopic Bounded
	CommandTopic      Bounded
	SleepTime         time.Duration
	FirmwareURL       Bounded

	// Auth is nil for schema version 1 records.
	Auth *BrokerAuth
}

// Default returns a record with all fields at their default value.
func Default() *Record {
	return &Record{
		MQTTServer:        mustBounded("", MaxServerLen),
		MQTTPort:          DefaultPort,
		MQTTClientName:    mustBounded("", MaxClientNameLen),
		UpdateStatusTopic: mustBounded(DefaultUpdateStatusTopic, MaxTopicLen),
		CommandTopic:      mustBounded(DefaultCommandTopic, MaxTopicLen),
		SleepTime:         DefaultSleepTime,
		FirmwareURL:       mustBounded("", MaxURLLen),
	}
}

// Version returns the schema version: 2 when broker credentials are present,
// 1 otherwise.
func (r *Record) Version() int {
	if r.HasBrokerAuth() {
		return 2
	}
	return 1
}

// IsMQTTEnabled reports whether a broker server is configured.
func (r *Record) IsMQTTEnabled() bool {
	return r.MQTTServer.String() != ""
}

// HasBrokerAuth reports whether the record carries broker credentials.
func (r *Record) HasBrokerAuth() bool {
	return r.Auth != nil
}

// FromValues builds a record from key/value pairs, starting from the
// defaults. Providing either auth key makes it a version 2 record.
func FromValues(values map[string]string) (*Record, error) {
	r := Default()
	for _, key := range Keys {
		v, ok := values[key]
		if !ok {
			continue
		}
		if err := r.Set(key, v); err != nil {
			return nil, err
		}
	}
	for key := range values {
		if !isKey(key) {
			return nil, fmt.Errorf("%w %q", ErrUnknownKey, key)
		}
	}
	return r, nil
}

// Values returns the record as key/value pairs. Auth keys are only present
// in version 2 records.
func (r *Record) Values() map[string]string {
	values := make(map[string]string, len(Keys))
	for _, key := range Keys {
		if v, err := r.Get(key); err == nil {
			values[key] = v
		}
	}
	return values
}

func isKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// Get returns the value of one field. Auth keys of a version 1 record
// return ErrUnknownKey.
func (r *Record) Get(key string) (string, error) {
	switch key {
	case KeyServer:
		return r.MQTTServer.String(), nil
	case KeyPort:
		return strconv.Itoa(r.MQTTPort), nil
	case KeyClientName:
		return r.MQTTClientName.String(), nil
	case KeyUpdateTopic:
		return r.UpdateStatusTopic.String(), nil
	case KeyCommandTopic:
		return r.CommandTopic.String(), nil
	case KeySleepTime:
		return strconv.FormatInt(int64(r.SleepTime/time.Second), 10), nil
	case KeyFirmwareURL:
		return r.FirmwareURL.String(), nil
	case KeyUser:
		if r.Auth != nil {
			return r.Auth.User.String(), nil
		}
	case KeyPassword:
		if r.Auth != nil {
			return r.Auth.Password.String(), nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownKey, key)
}

// Set parses and stores the value of one field. The record is unchanged on
// error.
func (r *Record) Set(key, value string) error {
	var err error
	switch key {
	case KeyServer:
		r.MQTTServer, err = setBounded(r.MQTTServer, key, value, MaxServerLen)
	case KeyPort:
		var port int
		if port, err = strconv.Atoi(value); err != nil || port < 1 || port > 65535 {
			return fmt.Errorf("%w: %s %q, want 1..65535", ErrInvalid, key, value)
		}
		r.MQTTPort = port
	case KeyClientName:
		r.MQTTClientName, err = setBounded(r.MQTTClientName, key, value, MaxClientNameLen)
	case KeyUpdateTopic:
		r.UpdateStatusTopic, err = setBounded(r.UpdateStatusTopic, key, value, MaxTopicLen)
	case KeyCommandTopic:
		r.CommandTopic, err = setBounded(r.CommandTopic, key, value, MaxTopicLen)
	case KeySleepTime:
		var secs int64
		if secs, err = strconv.ParseInt(value, 10, 32); err != nil || secs < 1 {
			return fmt.Errorf("%w: %s %q, want whole seconds >= 1", ErrInvalid, key, value)
		}
		r.SleepTime = time.Duration(secs) * time.Second
	case KeyFirmwareURL:
		r.FirmwareURL, err = setBounded(r.FirmwareURL, key, value, MaxURLLen)
	case KeyUser, KeyPassword:
		auth := BrokerAuth{
			User:     mustBounded("", MaxUserLen),
			Password: mustBounded("", MaxPasswordLen),
		}
		if r.Auth != nil {
			auth = *r.Auth
		}
		if key == KeyUser {
			auth.User, err = setBounded(auth.User, key, value, MaxUserLen)
		} else {
			auth.Password, err = setBounded(auth.Password, key, value, MaxPasswordLen)
		}
		if err == nil {
			r.Auth = &auth
		}
	default:
		return fmt.Errorf("%w %q", ErrUnknownKey, key)
	}
	return err
}

func setBounded(old Bounded, key, value string, max int) (Bounded, error) {
	b, err := NewBounded(value, max)
	if err != nil {
		return old, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

// ClearAuth drops the broker credentials, turning the record back into
// version 1.
func (r *Record) ClearAuth() {
	r.Auth = nil
}
